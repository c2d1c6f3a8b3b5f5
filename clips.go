package clipsruntime

import (
	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/errors"
)

// Expr is one node of an engine-managed argument chain: a tagged constant
// value plus the link to the next positional argument. Nodes are owned by
// the engine's installed-expression table once installed; callers keep only
// traversal cursors.
type Expr struct {
	Val  data.Value
	Next *Expr
}

// FunctionRef is a resolved handle to a callable engine function together
// with the argument list head assembled for one invocation. References are
// resolved freshly per call and never cached: the engine's definitions may
// change between calls.
type FunctionRef struct {
	Name string
	Fn   *Function
	Args *Expr
}

// Handler is the native implementation of an engine function. It receives
// the evaluated positional arguments through the frame and returns the
// call's result.
type Handler func(f *Frame) (data.Value, error)

// Function describes one callable engine function. Builtins and
// user-defined functions share the shape.
type Function struct {
	Name    string
	MinArgs int
	MaxArgs int // -1 when unbounded
	// ArgKinds constrains positional arguments; the last entry repeats for
	// the remaining positions. Empty means unconstrained.
	ArgKinds []data.Kind
	Handler  Handler
}

// Frame is the argument view a Handler receives. Arguments are numbered
// 1-based, matching the engine's own argument numbering in diagnostics.
type Frame struct {
	fn   *Function
	args []data.Value
	eng  Engine
}

// NewFrame assembles a call frame. Engine implementations build one per
// dispatch; handlers only read it.
func NewFrame(eng Engine, fn *Function, args []data.Value) *Frame {
	return &Frame{fn: fn, args: args, eng: eng}
}

// Engine returns the instance the call is executing against, for handlers
// that intern results or allocate multifields.
func (f *Frame) Engine() Engine { return f.eng }

// Name returns the called function's name.
func (f *Frame) Name() string { return f.fn.Name }

// ArgCount returns the number of positional arguments.
func (f *Frame) ArgCount() int { return len(f.args) }

// Arg returns the 1-based positional argument i.
func (f *Frame) Arg(i int) data.Value { return f.args[i-1] }

// CheckArg returns argument i when its kind satisfies want, which may be a
// union kind. Otherwise it fails naming the function, the position and both
// kinds.
func (f *Frame) CheckArg(i int, want data.Kind) (data.Value, error) {
	v := f.args[i-1]
	if !v.Kind().Matches(want) {
		return data.Value{}, errors.BadArgument(f.fn.Name, i, want.String(), v.Kind().String())
	}
	return v, nil
}

// ExternalType describes an external-address type registered with an engine
// instance. The engine issues an instance-scoped integer id for each
// installed descriptor; ids from one instance are meaningless to another.
type ExternalType struct {
	Name string
	// OnDiscard is invoked when the engine releases a payload of this type,
	// at the latest when the instance closes.
	OnDiscard func(payload any)
}

// Engine is the primitive call surface of one inference engine instance.
// All of the convenience layer is written against it; engine.New provides
// the in-process implementation. An instance is driven by one logical
// thread at a time and implementations gate concurrent entry with an
// instance-scoped lock.
type Engine interface {
	// ID returns the stable instance identifier issued at creation. The
	// external-address registry keys on it rather than on anything
	// address-derived, since addresses can be reused after destruction.
	ID() string

	// Close destroys the instance. Failure is fatal for owned instances:
	// it indicates corrupt engine state and is propagated, never swallowed.
	Close() error

	// ResolveFunction resolves a name against the live function tables.
	ResolveFunction(name string) (*FunctionRef, error)

	// DefineFunction registers a user function alongside the builtins.
	DefineFunction(fn Function) error

	// Functions lists everything callable, builtins included.
	Functions() []Function

	// NewConstantExpression allocates one constant argument node.
	NewConstantExpression(v data.Value) *Expr

	// InstallExpression takes shared ownership of a node: the atoms it
	// references are retained in the instance's tables.
	InstallExpression(e *Expr)

	// DeinstallExpression releases the chain's claim on its atoms.
	DeinstallExpression(e *Expr)

	// ReclaimExpressionList returns a deinstalled chain's nodes to the
	// allocator. The chain must not be traversed afterwards.
	ReclaimExpressionList(e *Expr)

	// Evaluate applies the resolved function to its installed argument
	// list and returns the result value.
	Evaluate(ref *FunctionRef) (data.Value, error)

	// InternSymbol returns the instance's unique atom for text. Valid for
	// the instance's lifetime.
	InternSymbol(text string) *data.Symbol

	// InternInteger returns the instance's unique atom for n.
	InternInteger(n int64) *data.Integer

	// InternFloat returns the instance's unique atom for x.
	InternFloat(x float64) *data.Float

	// TrueSymbol returns the canonical TRUE symbol.
	TrueSymbol() *data.Symbol

	// FalseSymbol returns the canonical FALSE symbol. Boolean conversion
	// compares against it by pointer.
	FalseSymbol() *data.Symbol

	// NewMultifield allocates a sequence store of the given length with a
	// stable handle.
	NewMultifield(length int) *data.Multifield

	// NewExternal stores an opaque payload under a registered type id and
	// returns its tracked wrapper.
	NewExternal(payload any, typeID int) *data.External

	// InstallExternalAddressType installs a type descriptor and issues the
	// instance-scoped id that the extaddr registry records.
	InstallExternalAddressType(desc ExternalType) int

	// Run executes pending rule activations, up to limit when limit >= 0,
	// and returns the number fired.
	Run(limit int64) int64

	// Reset reinitializes working memory.
	Reset()
}
