package engine

import (
	"sort"

	"go.uber.org/zap"

	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/errors"
)

// ResolveFunction resolves name against the live function tables. Every
// call returns a fresh reference: definitions may change between calls,
// so references are never cached.
func (l *Local) ResolveFunction(name string) (*clipsruntime.FunctionRef, error) {
	l.mu.Lock()
	fn := l.lookupFunction(name)
	l.mu.Unlock()
	if fn == nil {
		l.log.Debug("function resolution failed",
			zap.String("id", l.id),
			zap.String("function", name))
		return nil, errors.UnknownFunction(name)
	}
	return &clipsruntime.FunctionRef{Name: name, Fn: fn}, nil
}

// DefineFunction registers a user function alongside the builtins. Names
// already taken by a builtin or an earlier definition are rejected.
func (l *Local) DefineFunction(fn clipsruntime.Function) error {
	if fn.Name == "" {
		return errors.Misuse(errors.OpDefine, "function name required")
	}
	if fn.Handler == nil {
		return errors.Misuse(errors.OpDefine, "function handler required")
	}
	if fn.MinArgs < 0 || (fn.MaxArgs >= 0 && fn.MaxArgs < fn.MinArgs) {
		return errors.Misuse(errors.OpDefine, "argument bounds out of order")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lookupFunction(fn.Name) != nil {
		return errors.New(errors.OpDefine, errors.KindAlreadyRegistered).
			Function(fn.Name).
			Detail("function name already defined on this instance").Build()
	}
	l.userFns[fn.Name] = &fn
	l.log.Debug("user function defined",
		zap.String("id", l.id),
		zap.String("function", fn.Name))
	return nil
}

// Functions lists everything callable on the instance, builtins included,
// sorted by name.
func (l *Local) Functions() []clipsruntime.Function {
	l.mu.Lock()
	out := make([]clipsruntime.Function, 0, len(l.builtins)+len(l.userFns))
	for _, fn := range l.builtins {
		out = append(out, *fn)
	}
	for _, fn := range l.userFns {
		out = append(out, *fn)
	}
	l.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Evaluate applies ref's function to its installed argument list. The
// argument count and the declared kinds are checked before the handler
// runs; handler errors come back unwrapped so the caller can attach call
// context.
func (l *Local) Evaluate(ref *clipsruntime.FunctionRef) (data.Value, error) {
	if ref == nil || ref.Fn == nil {
		return data.VoidValue(), errors.Misuse(errors.OpInvoke, "nil function reference")
	}

	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return data.VoidValue(), errors.New(errors.OpInvoke, errors.KindEngineFailure).
			Function(ref.Name).
			Detail("engine instance destroyed").Build()
	}
	args := make([]data.Value, 0, 8)
	for n := ref.Args; n != nil; n = n.Next {
		args = append(args, n.Val)
	}
	l.mu.Unlock()

	fn := ref.Fn
	if len(args) < fn.MinArgs || (fn.MaxArgs >= 0 && len(args) > fn.MaxArgs) {
		return data.VoidValue(), errors.Arity(fn.Name, len(args), fn.MinArgs, fn.MaxArgs)
	}
	for i, a := range args {
		want, ok := argConstraint(fn.ArgKinds, i)
		if !ok {
			break
		}
		if !a.Kind().Matches(want) {
			return data.VoidValue(), errors.BadArgument(fn.Name, i+1, want.String(), a.Kind().String())
		}
	}

	// The handler runs outside the instance lock so it can intern results
	// and allocate multifields through the frame's engine.
	out, err := fn.Handler(clipsruntime.NewFrame(l, fn, args))
	if err != nil {
		l.log.Debug("evaluation failed",
			zap.String("id", l.id),
			zap.String("function", fn.Name),
			zap.Error(err))
		return data.VoidValue(), err
	}
	return out, nil
}

// lookupFunction is the lock-held name lookup. User functions cannot
// shadow builtins, so order is immaterial.
func (l *Local) lookupFunction(name string) *clipsruntime.Function {
	if fn, ok := l.builtins[name]; ok {
		return fn
	}
	if fn, ok := l.userFns[name]; ok {
		return fn
	}
	return nil
}

// argConstraint returns the declared kind for 0-based position i; the
// last entry repeats for the remaining positions.
func argConstraint(kinds []data.Kind, i int) (data.Kind, bool) {
	if len(kinds) == 0 {
		return data.KindVoid, false
	}
	if i >= len(kinds) {
		i = len(kinds) - 1
	}
	return kinds[i], true
}
