package convert

import (
	"math"

	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/errors"
)

// Codec is the closed decoder set from engine values to Go values. One
// conversion rule exists per supported target type, selected by the target
// at the call site rather than by branching inside a shared function.
//
// A codec is bound to one engine instance's canonical FALSE symbol, the
// constant the boolean rule compares against by pointer.
type Codec struct {
	falseSym *data.Symbol
}

// NewCodec binds a codec to an instance's canonical FALSE symbol.
func NewCodec(falseSymbol *data.Symbol) Codec {
	return Codec{falseSym: falseSymbol}
}

// Bool converts per the engine's truth rule: true iff the value is a
// Symbol whose payload is not the canonical FALSE atom. Every other
// kind/payload combination is false. The rule is deliberately loose about
// arbitrary non-FALSE symbols; it mirrors the engine's own behavior.
func (c Codec) Bool(v data.Value) bool {
	if v.Kind() != data.KindSymbol {
		return false
	}
	s, ok := v.Symbol()
	return ok && s != c.falseSym
}

// Int64 converts an Integer value.
func (c Codec) Int64(v data.Value) (int64, error) {
	n, ok := v.Integer()
	if !ok {
		return 0, kindErr("int64", data.KindInteger, v.Kind())
	}
	return n.Value(), nil
}

// Int converts an Integer value, checking the platform int range.
func (c Codec) Int(v data.Value) (int, error) {
	n, err := c.Int64(v)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt || n > math.MaxInt {
		return 0, errors.Overflow(n, "int")
	}
	return int(n), nil
}

// Int32 converts an Integer value, checking the int32 range.
func (c Codec) Int32(v data.Value) (int32, error) {
	n, err := c.Int64(v)
	if err != nil {
		return 0, err
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, errors.Overflow(n, "int32")
	}
	return int32(n), nil
}

// Uint32 converts a non-negative Integer value, checking the uint32 range.
func (c Codec) Uint32(v data.Value) (uint32, error) {
	n, err := c.Int64(v)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > math.MaxUint32 {
		return 0, errors.Overflow(n, "uint32")
	}
	return uint32(n), nil
}

// Uint64 converts a non-negative Integer value.
func (c Codec) Uint64(v data.Value) (uint64, error) {
	n, err := c.Int64(v)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errors.Overflow(n, "uint64")
	}
	return uint64(n), nil
}

// Float64 converts a Float value, or widens an Integer one. Floats never
// silently truncate to integer targets; the widening direction is the only
// cross-kind rule.
func (c Codec) Float64(v data.Value) (float64, error) {
	if f, ok := v.Float(); ok {
		return f.Value(), nil
	}
	if n, ok := v.Integer(); ok {
		return float64(n.Value()), nil
	}
	return 0, kindErr("float64", data.KindAnyNumber, v.Kind())
}

// Float32 converts like Float64 with an overflow check on the narrowing.
func (c Codec) Float32(v data.Value) (float32, error) {
	f, err := c.Float64(v)
	if err != nil {
		return 0, err
	}
	narrowed := float32(f)
	if math.IsInf(float64(narrowed), 0) && !math.IsInf(f, 0) {
		return 0, errors.Overflow(f, "float32")
	}
	return narrowed, nil
}

// String converts any lexeme value (Symbol, String, InstanceName) to its
// bare text.
func (c Codec) String(v data.Value) (string, error) {
	s, ok := v.Symbol()
	if !ok {
		return "", kindErr("string", data.KindAnyLexeme, v.Kind())
	}
	return s.Text(), nil
}

// Strings converts a Multifield value by walking its closed [begin, end]
// range in ascending order and appending each element's textual form:
// lexemes contribute their bare text, everything else its rendered form.
func (c Codec) Strings(v data.Value) ([]string, error) {
	m, ok := v.Multifield()
	if !ok {
		return nil, kindErr("[]string", data.KindMultifield, v.Kind())
	}
	begin, end := v.Range()
	out := make([]string, 0, end-begin+1)
	for i := begin; i <= end; i++ {
		elem := m.ElementAt(i)
		if s, ok := elem.Symbol(); ok {
			out = append(out, s.Text())
			continue
		}
		out = append(out, elem.String())
	}
	return out, nil
}

func kindErr(target string, want, got data.Kind) error {
	return errors.New(errors.OpExtract, errors.KindTypeMismatch).
		Type(target).
		Detail("need %s, got %s", want, got).
		Build()
}
