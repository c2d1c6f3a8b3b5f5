package runtime

import (
	"strings"

	"go.uber.org/zap"

	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/errors"
)

// builderState tracks where a CallBuilder is in its single-use lifecycle.
type builderState uint8

const (
	stateUnbound      builderState = iota // no function reference yet
	stateReferenceSet                     // bound, no arguments
	stateBuilt                            // bound, one or more arguments
	stateSucceeded                        // invoked, engine reported success
	stateFailed                           // unusable: resolution or invocation failed
	stateClosed                           // argument list released
)

// CallBuilder assembles one engine call step by step: bind a function
// reference, append positional arguments in order, invoke at most once.
// Protocol violations are misuse errors and never reach the engine.
//
// A builder is single-use and confined to one goroutine. Close releases
// the engine-owned argument list exactly once regardless of how far the
// builder got, so callers defer it right after NewCall.
type CallBuilder struct {
	env   *Environment
	log   *zap.Logger
	state builderState
	ref   *clipsruntime.FunctionRef
	head  *clipsruntime.Expr
	tail  *clipsruntime.Expr
	args  []data.Value
}

// NewCall starts an unbound builder against env's instance.
func NewCall(env *Environment) *CallBuilder {
	return &CallBuilder{env: env, log: env.log}
}

// SetFunction resolves name against the instance's live function tables
// and binds the builder to it. Resolution failure is terminal: the
// builder becomes unusable and a fresh one is needed for the next
// attempt.
func (b *CallBuilder) SetFunction(name string) error {
	if b.state != stateUnbound {
		return errors.Misuse(errors.OpResolve, describeState(b.state, "function reference already set"))
	}
	ref, err := b.env.eng.ResolveFunction(name)
	if err != nil {
		b.state = stateFailed
		return err
	}
	b.ref = ref
	b.state = stateReferenceSet
	return nil
}

// Append converts each value and adds the results as positional arguments
// at the tail of the list. Slices, arrays and the variadic pack itself
// flatten element by element; each element is its own argument, never a
// single multifield. Conversion runs for the whole pack before anything
// is installed, so a failed Append adds no arguments and leaves the
// builder usable.
func (b *CallBuilder) Append(vs ...any) error {
	if b.state != stateReferenceSet && b.state != stateBuilt {
		return errors.Misuse(errors.OpBuild, describeState(b.state, ""))
	}
	vals := make([]data.Value, 0, len(vs))
	for _, v := range vs {
		var err error
		vals, err = b.env.encode(vals, v)
		if err != nil {
			return err
		}
	}
	for _, val := range vals {
		node := b.env.eng.NewConstantExpression(val)
		b.env.eng.InstallExpression(node)
		if b.tail == nil {
			b.head = node
			b.ref.Args = node
		} else {
			b.tail.Next = node
		}
		b.tail = node
		b.args = append(b.args, val)
	}
	if len(vals) > 0 {
		b.state = stateBuilt
	}
	return nil
}

// Invoke evaluates the assembled call once. An engine-reported failure is
// terminal for the builder and comes back as an invocation error carrying
// the reconstructed call text, with the engine's error as the cause.
func (b *CallBuilder) Invoke() (data.Value, error) {
	if b.state != stateReferenceSet && b.state != stateBuilt {
		return data.VoidValue(), errors.Misuse(errors.OpInvoke, describeState(b.state, ""))
	}
	out, err := b.env.eng.Evaluate(b.ref)
	if err != nil {
		b.state = stateFailed
		render := b.Render()
		b.log.Debug("invocation failed", zap.String("call", render), zap.Error(err))
		return data.VoidValue(), errors.Invocation(b.ref.Name, render, err)
	}
	b.state = stateSucceeded
	return out, nil
}

// Render reconstructs the pending call in engine syntax: the function
// name and each argument's rendered form, single-space separated, inside
// one parenthesis pair. Invocation errors embed this text.
func (b *CallBuilder) Render() string {
	var sb strings.Builder
	sb.WriteByte('(')
	if b.ref != nil {
		sb.WriteString(b.ref.Name)
	}
	for _, v := range b.args {
		sb.WriteByte(' ')
		sb.WriteString(v.String())
	}
	sb.WriteByte(')')
	return sb.String()
}

// Close releases the engine-owned argument list: deinstall, then reclaim,
// exactly once no matter which state the builder reached. Further calls
// and calls on a nil builder are no-ops, so a deferred Close is always
// safe.
func (b *CallBuilder) Close() {
	if b == nil || b.state == stateClosed {
		return
	}
	if b.head != nil {
		b.env.eng.DeinstallExpression(b.head)
		b.env.eng.ReclaimExpressionList(b.head)
		b.head, b.tail = nil, nil
	}
	if b.ref != nil {
		b.ref.Args = nil
	}
	b.state = stateClosed
}

// describeState names why the current state rejects an operation. fallback
// covers states a specific caller cannot otherwise reach.
func describeState(s builderState, fallback string) string {
	switch s {
	case stateUnbound:
		return "no function reference set"
	case stateSucceeded:
		return "call already invoked"
	case stateFailed:
		return "builder unusable after earlier failure"
	case stateClosed:
		return "builder closed"
	}
	if fallback != "" {
		return fallback
	}
	return "operation not allowed in current state"
}
