package engine

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/errors"
)

// Shared argument constraints. The last entry repeats, so a one-element
// slice constrains every position.
var (
	numericArgs    = []data.Kind{data.KindAnyNumber}
	lexemeArgs     = []data.Kind{data.KindAnyLexeme}
	integerArgs    = []data.Kind{data.KindInteger}
	multifieldArgs = []data.Kind{data.KindMultifield}
	subStringArgs  = []data.Kind{data.KindInteger, data.KindInteger, data.KindAnyLexeme}
	nthArgs        = []data.Kind{data.KindInteger, data.KindMultifield}
	memberArgs     = []data.Kind{data.KindAnyValue, data.KindMultifield}
)

// builtins is the function table every instance starts with: arithmetic,
// lexeme manipulation, comparison, boolean connectives, type predicates,
// multifield operations and gensym.
var builtins = []clipsruntime.Function{
	{Name: "progn", MinArgs: 0, MaxArgs: -1, Handler: builtinProgn},

	// Arithmetic. Integer arguments stay integer until a float appears;
	// plain division always widens.
	{Name: "+", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinAdd},
	{Name: "-", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinSub},
	{Name: "*", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinMul},
	{Name: "/", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinDivide},
	{Name: "div", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinDiv},
	{Name: "mod", MinArgs: 2, MaxArgs: 2, ArgKinds: numericArgs, Handler: builtinMod},
	{Name: "abs", MinArgs: 1, MaxArgs: 1, ArgKinds: numericArgs, Handler: builtinAbs},
	{Name: "min", MinArgs: 1, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinMin},
	{Name: "max", MinArgs: 1, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinMax},

	// Lexemes.
	{Name: "str-cat", MinArgs: 0, MaxArgs: -1, Handler: builtinStrCat},
	{Name: "sym-cat", MinArgs: 0, MaxArgs: -1, Handler: builtinSymCat},
	{Name: "upcase", MinArgs: 1, MaxArgs: 1, ArgKinds: lexemeArgs, Handler: builtinUpcase},
	{Name: "lowcase", MinArgs: 1, MaxArgs: 1, ArgKinds: lexemeArgs, Handler: builtinLowcase},
	{Name: "str-length", MinArgs: 1, MaxArgs: 1, ArgKinds: lexemeArgs, Handler: builtinStrLength},
	{Name: "sub-string", MinArgs: 3, MaxArgs: 3, ArgKinds: subStringArgs, Handler: builtinSubString},

	// Identity comparison works on any kinds; = and friends are numeric.
	{Name: "eq", MinArgs: 2, MaxArgs: -1, Handler: builtinEq},
	{Name: "neq", MinArgs: 2, MaxArgs: -1, Handler: builtinNeq},
	{Name: "=", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinNumEq},
	{Name: "<>", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinNumNeq},
	{Name: "<", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinLt},
	{Name: ">", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinGt},
	{Name: "<=", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinLe},
	{Name: ">=", MinArgs: 2, MaxArgs: -1, ArgKinds: numericArgs, Handler: builtinGe},

	// Boolean connectives. Anything but the FALSE symbol counts as true.
	{Name: "and", MinArgs: 2, MaxArgs: -1, Handler: builtinAnd},
	{Name: "or", MinArgs: 2, MaxArgs: -1, Handler: builtinOr},
	{Name: "not", MinArgs: 1, MaxArgs: 1, Handler: builtinNot},

	// Type predicates.
	{Name: "numberp", MinArgs: 1, MaxArgs: 1, Handler: kindPredicate(func(k data.Kind) bool { return k.Matches(data.KindAnyNumber) })},
	{Name: "floatp", MinArgs: 1, MaxArgs: 1, Handler: kindPredicate(func(k data.Kind) bool { return k == data.KindFloat })},
	{Name: "integerp", MinArgs: 1, MaxArgs: 1, Handler: kindPredicate(func(k data.Kind) bool { return k == data.KindInteger })},
	{Name: "lexemep", MinArgs: 1, MaxArgs: 1, Handler: kindPredicate(func(k data.Kind) bool { return k.Matches(data.KindAnyLexeme) })},
	{Name: "stringp", MinArgs: 1, MaxArgs: 1, Handler: kindPredicate(func(k data.Kind) bool { return k == data.KindString })},
	{Name: "symbolp", MinArgs: 1, MaxArgs: 1, Handler: kindPredicate(func(k data.Kind) bool { return k == data.KindSymbol })},
	{Name: "multifieldp", MinArgs: 1, MaxArgs: 1, Handler: kindPredicate(func(k data.Kind) bool { return k == data.KindMultifield })},
	{Name: "evenp", MinArgs: 1, MaxArgs: 1, ArgKinds: integerArgs, Handler: builtinEvenp},
	{Name: "oddp", MinArgs: 1, MaxArgs: 1, ArgKinds: integerArgs, Handler: builtinOddp},

	// Multifields.
	{Name: "create$", MinArgs: 0, MaxArgs: -1, Handler: builtinCreate},
	{Name: "length$", MinArgs: 1, MaxArgs: 1, ArgKinds: multifieldArgs, Handler: builtinLength},
	{Name: "nth$", MinArgs: 2, MaxArgs: 2, ArgKinds: nthArgs, Handler: builtinNth},
	{Name: "first$", MinArgs: 1, MaxArgs: 1, ArgKinds: multifieldArgs, Handler: builtinFirst},
	{Name: "rest$", MinArgs: 1, MaxArgs: 1, ArgKinds: multifieldArgs, Handler: builtinRest},
	{Name: "member$", MinArgs: 2, MaxArgs: 2, ArgKinds: memberArgs, Handler: builtinMember},

	{Name: "gensym", MinArgs: 0, MaxArgs: 0, Handler: builtinGensym},
}

// number is one numeric argument in both representations. Integer
// arguments stay exact until an operation forces widening.
type number struct {
	i       int64
	f       float64
	isFloat bool
}

func (n number) widen() float64 {
	if n.isFloat {
		return n.f
	}
	return float64(n.i)
}

func (n number) trunc() int64 {
	if n.isFloat {
		return int64(n.f)
	}
	return n.i
}

func (n number) value(f *clipsruntime.Frame) data.Value {
	if n.isFloat {
		return floatValue(f, n.f)
	}
	return intValue(f, n.i)
}

// numberArg reads the 1-based numeric argument i. The declared constraint
// already guaranteed the kind.
func numberArg(f *clipsruntime.Frame, i int) number {
	v := f.Arg(i)
	if x, ok := v.Float(); ok {
		return number{f: x.Value(), isFloat: true}
	}
	n, _ := v.Integer()
	return number{i: n.Value()}
}

func intArg(f *clipsruntime.Frame, i int) int64 {
	n, _ := f.Arg(i).Integer()
	return n.Value()
}

func lexemeArg(f *clipsruntime.Frame, i int) string {
	s, _ := f.Arg(i).Symbol()
	return s.Text()
}

func boolValue(f *clipsruntime.Frame, b bool) data.Value {
	if b {
		return data.SymbolValue(f.Engine().TrueSymbol())
	}
	return data.SymbolValue(f.Engine().FalseSymbol())
}

func intValue(f *clipsruntime.Frame, n int64) data.Value {
	return data.IntegerValue(f.Engine().InternInteger(n))
}

func floatValue(f *clipsruntime.Frame, x float64) data.Value {
	return data.FloatValue(f.Engine().InternFloat(x))
}

// isFalse applies the engine's truth rule: only the FALSE symbol itself
// is false.
func isFalse(f *clipsruntime.Frame, v data.Value) bool {
	if v.Kind() != data.KindSymbol {
		return false
	}
	s, ok := v.Symbol()
	return ok && s == f.Engine().FalseSymbol()
}

func evalErr(name, detail string) error {
	return errors.New(errors.OpInvoke, errors.KindEvaluation).
		Function(name).
		Detail("%s", detail).Build()
}

func builtinProgn(f *clipsruntime.Frame) (data.Value, error) {
	if f.ArgCount() == 0 {
		return boolValue(f, false), nil
	}
	return f.Arg(f.ArgCount()), nil
}

func builtinAdd(f *clipsruntime.Frame) (data.Value, error) {
	acc := numberArg(f, 1)
	for i := 2; i <= f.ArgCount(); i++ {
		n := numberArg(f, i)
		if acc.isFloat || n.isFloat {
			acc = number{f: acc.widen() + n.widen(), isFloat: true}
		} else {
			acc = number{i: acc.i + n.i}
		}
	}
	return acc.value(f), nil
}

func builtinSub(f *clipsruntime.Frame) (data.Value, error) {
	acc := numberArg(f, 1)
	for i := 2; i <= f.ArgCount(); i++ {
		n := numberArg(f, i)
		if acc.isFloat || n.isFloat {
			acc = number{f: acc.widen() - n.widen(), isFloat: true}
		} else {
			acc = number{i: acc.i - n.i}
		}
	}
	return acc.value(f), nil
}

func builtinMul(f *clipsruntime.Frame) (data.Value, error) {
	acc := numberArg(f, 1)
	for i := 2; i <= f.ArgCount(); i++ {
		n := numberArg(f, i)
		if acc.isFloat || n.isFloat {
			acc = number{f: acc.widen() * n.widen(), isFloat: true}
		} else {
			acc = number{i: acc.i * n.i}
		}
	}
	return acc.value(f), nil
}

func builtinDivide(f *clipsruntime.Frame) (data.Value, error) {
	acc := numberArg(f, 1).widen()
	for i := 2; i <= f.ArgCount(); i++ {
		d := numberArg(f, i).widen()
		if d == 0 {
			return data.VoidValue(), evalErr("/", "division by zero")
		}
		acc /= d
	}
	return floatValue(f, acc), nil
}

func builtinDiv(f *clipsruntime.Frame) (data.Value, error) {
	acc := numberArg(f, 1).trunc()
	for i := 2; i <= f.ArgCount(); i++ {
		d := numberArg(f, i).trunc()
		if d == 0 {
			return data.VoidValue(), evalErr("div", "division by zero")
		}
		acc /= d
	}
	return intValue(f, acc), nil
}

func builtinMod(f *clipsruntime.Frame) (data.Value, error) {
	a, b := numberArg(f, 1), numberArg(f, 2)
	if a.isFloat || b.isFloat {
		if b.widen() == 0 {
			return data.VoidValue(), evalErr("mod", "division by zero")
		}
		return floatValue(f, math.Mod(a.widen(), b.widen())), nil
	}
	if b.i == 0 {
		return data.VoidValue(), evalErr("mod", "division by zero")
	}
	return intValue(f, a.i%b.i), nil
}

func builtinAbs(f *clipsruntime.Frame) (data.Value, error) {
	n := numberArg(f, 1)
	if n.isFloat {
		return floatValue(f, math.Abs(n.f)), nil
	}
	if n.i < 0 {
		return intValue(f, -n.i), nil
	}
	return f.Arg(1), nil
}

func builtinMin(f *clipsruntime.Frame) (data.Value, error) {
	best, bestN := f.Arg(1), numberArg(f, 1)
	for i := 2; i <= f.ArgCount(); i++ {
		n := numberArg(f, i)
		if numLess(n, bestN) {
			best, bestN = f.Arg(i), n
		}
	}
	return best, nil
}

func builtinMax(f *clipsruntime.Frame) (data.Value, error) {
	best, bestN := f.Arg(1), numberArg(f, 1)
	for i := 2; i <= f.ArgCount(); i++ {
		n := numberArg(f, i)
		if numLess(bestN, n) {
			best, bestN = f.Arg(i), n
		}
	}
	return best, nil
}

// catText is the text a value contributes to a concatenation: lexemes
// contribute their bare text, numbers their printed form.
func catText(v data.Value) (string, bool) {
	switch v.Kind() {
	case data.KindSymbol, data.KindString:
		s, _ := v.Symbol()
		return s.Text(), true
	case data.KindInstanceName:
		s, _ := v.Symbol()
		return "[" + s.Text() + "]", true
	case data.KindInteger:
		n, _ := v.Integer()
		return strconv.FormatInt(n.Value(), 10), true
	case data.KindFloat:
		x, _ := v.Float()
		return data.FormatFloat(x.Value()), true
	}
	return "", false
}

func catArgs(f *clipsruntime.Frame) (string, error) {
	var b strings.Builder
	for i := 1; i <= f.ArgCount(); i++ {
		t, ok := catText(f.Arg(i))
		if !ok {
			return "", errors.BadArgument(f.Name(), i, "a printable value", f.Arg(i).Kind().String())
		}
		b.WriteString(t)
	}
	return b.String(), nil
}

func builtinStrCat(f *clipsruntime.Frame) (data.Value, error) {
	text, err := catArgs(f)
	if err != nil {
		return data.VoidValue(), err
	}
	return data.StringValue(f.Engine().InternSymbol(text)), nil
}

func builtinSymCat(f *clipsruntime.Frame) (data.Value, error) {
	text, err := catArgs(f)
	if err != nil {
		return data.VoidValue(), err
	}
	return data.SymbolValue(f.Engine().InternSymbol(text)), nil
}

// recase returns the argument's lexeme transformed but with its original
// kind: strings stay strings, symbols stay symbols.
func recase(f *clipsruntime.Frame, transform func(string) string) (data.Value, error) {
	v := f.Arg(1)
	out := f.Engine().InternSymbol(transform(lexemeArg(f, 1)))
	if v.Kind() == data.KindString {
		return data.StringValue(out), nil
	}
	return data.SymbolValue(out), nil
}

func builtinUpcase(f *clipsruntime.Frame) (data.Value, error) {
	return recase(f, strings.ToUpper)
}

func builtinLowcase(f *clipsruntime.Frame) (data.Value, error) {
	return recase(f, strings.ToLower)
}

func builtinStrLength(f *clipsruntime.Frame) (data.Value, error) {
	return intValue(f, int64(utf8.RuneCountInString(lexemeArg(f, 1)))), nil
}

// builtinSubString takes (sub-string begin end lexeme): the closed
// 1-based character range [begin, end]. Out-of-range bounds clamp; an
// inverted range yields the empty string.
func builtinSubString(f *clipsruntime.Frame) (data.Value, error) {
	begin, end := intArg(f, 1), intArg(f, 2)
	runes := []rune(lexemeArg(f, 3))
	if begin < 1 {
		begin = 1
	}
	if end > int64(len(runes)) {
		end = int64(len(runes))
	}
	var out string
	if begin <= end {
		out = string(runes[begin-1 : end])
	}
	return data.StringValue(f.Engine().InternSymbol(out)), nil
}

// valueEq is the engine's identity test: kinds must match and payloads
// must be the same interned atom, the same entity, or element-wise equal
// multifield ranges.
func valueEq(a, b data.Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch a.Kind() {
	case data.KindVoid:
		return true
	case data.KindSymbol, data.KindString, data.KindInstanceName:
		sa, _ := a.Symbol()
		sb, _ := b.Symbol()
		return sa == sb
	case data.KindInteger:
		na, _ := a.Integer()
		nb, _ := b.Integer()
		return na == nb
	case data.KindFloat:
		fa, _ := a.Float()
		fb, _ := b.Float()
		return fa == fb
	case data.KindMultifield:
		return multifieldEq(a, b)
	default:
		ea, _ := a.Entity()
		eb, _ := b.Entity()
		return ea == eb
	}
}

func multifieldEq(a, b data.Value) bool {
	ma, _ := a.Multifield()
	mb, _ := b.Multifield()
	ab, ae := a.Range()
	bb, be := b.Range()
	if ae-ab != be-bb {
		return false
	}
	for i := 0; ab+i <= ae; i++ {
		if !valueEq(ma.ElementAt(ab+i), mb.ElementAt(bb+i)) {
			return false
		}
	}
	return true
}

func builtinEq(f *clipsruntime.Frame) (data.Value, error) {
	first := f.Arg(1)
	for i := 2; i <= f.ArgCount(); i++ {
		if !valueEq(first, f.Arg(i)) {
			return boolValue(f, false), nil
		}
	}
	return boolValue(f, true), nil
}

func builtinNeq(f *clipsruntime.Frame) (data.Value, error) {
	first := f.Arg(1)
	for i := 2; i <= f.ArgCount(); i++ {
		if valueEq(first, f.Arg(i)) {
			return boolValue(f, false), nil
		}
	}
	return boolValue(f, true), nil
}

func numEq(a, b number) bool {
	if !a.isFloat && !b.isFloat {
		return a.i == b.i
	}
	return a.widen() == b.widen()
}

func numLess(a, b number) bool {
	if !a.isFloat && !b.isFloat {
		return a.i < b.i
	}
	return a.widen() < b.widen()
}

// builtinNumEq compares the first argument against every subsequent one;
// the chained comparisons compare consecutive pairs.
func builtinNumEq(f *clipsruntime.Frame) (data.Value, error) {
	first := numberArg(f, 1)
	for i := 2; i <= f.ArgCount(); i++ {
		if !numEq(first, numberArg(f, i)) {
			return boolValue(f, false), nil
		}
	}
	return boolValue(f, true), nil
}

func builtinNumNeq(f *clipsruntime.Frame) (data.Value, error) {
	first := numberArg(f, 1)
	for i := 2; i <= f.ArgCount(); i++ {
		if numEq(first, numberArg(f, i)) {
			return boolValue(f, false), nil
		}
	}
	return boolValue(f, true), nil
}

func chainCompare(f *clipsruntime.Frame, pred func(a, b number) bool) (data.Value, error) {
	prev := numberArg(f, 1)
	for i := 2; i <= f.ArgCount(); i++ {
		cur := numberArg(f, i)
		if !pred(prev, cur) {
			return boolValue(f, false), nil
		}
		prev = cur
	}
	return boolValue(f, true), nil
}

func builtinLt(f *clipsruntime.Frame) (data.Value, error) {
	return chainCompare(f, numLess)
}

func builtinGt(f *clipsruntime.Frame) (data.Value, error) {
	return chainCompare(f, func(a, b number) bool { return numLess(b, a) })
}

func builtinLe(f *clipsruntime.Frame) (data.Value, error) {
	return chainCompare(f, func(a, b number) bool { return !numLess(b, a) })
}

func builtinGe(f *clipsruntime.Frame) (data.Value, error) {
	return chainCompare(f, func(a, b number) bool { return !numLess(a, b) })
}

func builtinAnd(f *clipsruntime.Frame) (data.Value, error) {
	for i := 1; i <= f.ArgCount(); i++ {
		if isFalse(f, f.Arg(i)) {
			return boolValue(f, false), nil
		}
	}
	return boolValue(f, true), nil
}

func builtinOr(f *clipsruntime.Frame) (data.Value, error) {
	for i := 1; i <= f.ArgCount(); i++ {
		if !isFalse(f, f.Arg(i)) {
			return boolValue(f, true), nil
		}
	}
	return boolValue(f, false), nil
}

func builtinNot(f *clipsruntime.Frame) (data.Value, error) {
	return boolValue(f, isFalse(f, f.Arg(1))), nil
}

func kindPredicate(match func(k data.Kind) bool) clipsruntime.Handler {
	return func(f *clipsruntime.Frame) (data.Value, error) {
		return boolValue(f, match(f.Arg(1).Kind())), nil
	}
}

func builtinEvenp(f *clipsruntime.Frame) (data.Value, error) {
	return boolValue(f, intArg(f, 1)%2 == 0), nil
}

func builtinOddp(f *clipsruntime.Frame) (data.Value, error) {
	return boolValue(f, intArg(f, 1)%2 != 0), nil
}

// builtinCreate assembles a fresh multifield from its arguments,
// splicing multifield arguments in element-wise.
func builtinCreate(f *clipsruntime.Frame) (data.Value, error) {
	var flat []data.Value
	for i := 1; i <= f.ArgCount(); i++ {
		v := f.Arg(i)
		if v.Kind() == data.KindMultifield {
			m, _ := v.Multifield()
			begin, end := v.Range()
			for j := begin; j <= end; j++ {
				flat = append(flat, m.ElementAt(j))
			}
			continue
		}
		flat = append(flat, v)
	}
	m := f.Engine().NewMultifield(len(flat))
	for i, v := range flat {
		m.SetElementAt(i+1, v)
	}
	return data.MultifieldValue(m), nil
}

func builtinLength(f *clipsruntime.Frame) (data.Value, error) {
	begin, end := f.Arg(1).Range()
	n := end - begin + 1
	if n < 0 {
		n = 0
	}
	return intValue(f, int64(n)), nil
}

// builtinNth takes (nth$ index multifield): the 1-based element of the
// argument's range, or the symbol nil when the index falls outside it.
func builtinNth(f *clipsruntime.Frame) (data.Value, error) {
	idx := intArg(f, 1)
	v := f.Arg(2)
	m, _ := v.Multifield()
	begin, end := v.Range()
	pos := begin + int(idx) - 1
	if idx < 1 || pos > end {
		return data.SymbolValue(f.Engine().InternSymbol("nil")), nil
	}
	return m.ElementAt(pos), nil
}

// first$ and rest$ return range views over the argument's store rather
// than fresh copies; element-wise equality treats them the same.
func builtinFirst(f *clipsruntime.Frame) (data.Value, error) {
	v := f.Arg(1)
	m, _ := v.Multifield()
	begin, end := v.Range()
	if end < begin {
		return v, nil
	}
	return data.MultifieldRange(m, begin, begin), nil
}

func builtinRest(f *clipsruntime.Frame) (data.Value, error) {
	v := f.Arg(1)
	m, _ := v.Multifield()
	begin, end := v.Range()
	return data.MultifieldRange(m, begin+1, end), nil
}

func builtinMember(f *clipsruntime.Frame) (data.Value, error) {
	needle := f.Arg(1)
	v := f.Arg(2)
	m, _ := v.Multifield()
	begin, end := v.Range()
	for i := begin; i <= end; i++ {
		if valueEq(needle, m.ElementAt(i)) {
			return intValue(f, int64(i-begin+1)), nil
		}
	}
	return boolValue(f, false), nil
}

func builtinGensym(f *clipsruntime.Frame) (data.Value, error) {
	// The generated-symbol counter is instance state, not part of the
	// public engine surface.
	l, ok := f.Engine().(*Local)
	if !ok {
		return data.VoidValue(), evalErr("gensym", "generated-symbol counter unavailable")
	}
	return data.SymbolValue(l.Gensym()), nil
}
