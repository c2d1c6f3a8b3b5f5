package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Op indicates which operation the error occurred in
type Op string

const (
	OpCreate   Op = "create"   // engine instance creation
	OpDestroy  Op = "destroy"  // engine instance teardown
	OpResolve  Op = "resolve"  // function name resolution
	OpBuild    Op = "build"    // argument list construction
	OpInvoke   Op = "invoke"   // expression evaluation
	OpExtract  Op = "extract"  // result conversion to Go values
	OpRegister Op = "register" // external-address type registration
	OpLookup   Op = "lookup"   // external-address type lookup
	OpCast     Op = "cast"     // external-address payload cast
	OpParse    Op = "parse"    // legacy string-call tokenization
	OpDefine   Op = "define"   // user function definition
	OpFrame    Op = "frame"    // argument access inside a user function
)

// Kind categorizes the error
type Kind string

const (
	KindEngineFailure     Kind = "engine_failure"     // create/destroy of an instance failed
	KindUnknownFunction   Kind = "unknown_function"   // name did not resolve
	KindMisuse            Kind = "builder_misuse"     // operation out of state order
	KindEvaluation        Kind = "evaluation"         // engine-reported call failure
	KindUnregistered      Kind = "unregistered_type"  // external-address type never registered
	KindTypeMismatch      Kind = "type_mismatch"      // external-address payload of another type
	KindAlreadyRegistered Kind = "already_registered" // duplicate external-address registration
	KindBadArgument       Kind = "bad_argument"       // argument kind check failed
	KindArity             Kind = "arity"              // argument count outside declared bounds
	KindOverflow          Kind = "overflow"           // numeric value outside target range
	KindUnsupported       Kind = "unsupported"        // Go value with no engine representation
	KindBadToken          Kind = "bad_token"          // malformed token in a string call
)

// Error is the structured error type used throughout the library
type Error struct {
	Value    any
	Cause    error
	Op       Op
	Kind     Kind
	Function string // offending engine function, if any
	Type     string // Go or registered type name involved
	Render   string // reconstructed call text for evaluation failures
	Detail   string
	Arg      int // 1-based argument position, 0 when not applicable
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Op))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Function != "" {
		b.WriteString(" of \"")
		b.WriteString(e.Function)
		b.WriteByte('"')
	}

	if e.Arg > 0 {
		fmt.Fprintf(&b, ", argument #%d", e.Arg)
	}

	if e.Type != "" {
		b.WriteString(": type ")
		b.WriteString(e.Type)
	}

	if e.Detail != "" {
		if e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Render != "" {
		b.WriteString(" in ")
		b.WriteString(e.Render)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error. Kinds must agree; a target
// with an empty Op matches any operation.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		if t.Op != "" && t.Op != e.Op {
			return false
		}
		return e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(op Op, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Op:   op,
			Kind: kind,
		},
	}
}

// Function sets the engine function name
func (b *Builder) Function(name string) *Builder {
	b.err.Function = name
	return b
}

// Type sets the involved type name
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Arg sets the 1-based argument position
func (b *Builder) Arg(n int) *Builder {
	b.err.Arg = n
	return b
}

// Render sets the reconstructed call text
func (b *Builder) Render(call string) *Builder {
	b.err.Render = call
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// EngineCreate creates an engine creation failure
func EngineCreate(cause error, detail string) *Error {
	return &Error{
		Op:     OpCreate,
		Kind:   KindEngineFailure,
		Detail: detail,
		Cause:  cause,
	}
}

// EngineDestroy creates an engine teardown failure. Fatal on owned
// instances: callers propagate it, never swallow it.
func EngineDestroy(cause error) *Error {
	return &Error{
		Op:     OpDestroy,
		Kind:   KindEngineFailure,
		Detail: "destroy of owned engine instance failed",
		Cause:  cause,
	}
}

// UnknownFunction creates a name resolution failure
func UnknownFunction(name string) *Error {
	return &Error{
		Op:       OpResolve,
		Kind:     KindUnknownFunction,
		Function: name,
	}
}

// Misuse creates a builder state violation
func Misuse(op Op, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindMisuse,
		Detail: detail,
	}
}

// Invocation creates an engine-reported evaluation failure carrying the
// reconstructed call text
func Invocation(function, render string, cause error) *Error {
	return &Error{
		Op:       OpInvoke,
		Kind:     KindEvaluation,
		Function: function,
		Render:   render,
		Detail:   "call failed",
		Cause:    cause,
	}
}

// Unregistered creates a lookup failure for a type never registered with
// the instance
func Unregistered(typeName string) *Error {
	return &Error{
		Op:     OpLookup,
		Kind:   KindUnregistered,
		Type:   typeName,
		Detail: "external-address type not registered with this engine instance",
	}
}

// TypeMismatch creates a cast failure naming the requested target type
func TypeMismatch(typeName string) *Error {
	return &Error{
		Op:     OpCast,
		Kind:   KindTypeMismatch,
		Type:   typeName,
		Detail: "external address holds a different registered type",
	}
}

// AlreadyRegistered creates a duplicate registration failure
func AlreadyRegistered(typeName string) *Error {
	return &Error{
		Op:     OpRegister,
		Kind:   KindAlreadyRegistered,
		Type:   typeName,
		Detail: "external-address type already registered with this engine instance",
	}
}

// BadArgument creates an argument kind check failure
func BadArgument(function string, arg int, want, got string) *Error {
	return &Error{
		Op:       OpFrame,
		Kind:     KindBadArgument,
		Function: function,
		Arg:      arg,
		Detail:   fmt.Sprintf("expected %s, got %s", want, got),
	}
}

// Arity creates an argument count failure
func Arity(function string, got, min, max int) *Error {
	var want string
	switch {
	case max < 0:
		want = fmt.Sprintf("at least %d", min)
	case min == max:
		want = fmt.Sprintf("exactly %d", min)
	default:
		want = fmt.Sprintf("between %d and %d", min, max)
	}
	return &Error{
		Op:       OpInvoke,
		Kind:     KindArity,
		Function: function,
		Detail:   fmt.Sprintf("expected %s argument(s), got %d", want, got),
	}
}

// Overflow creates a numeric conversion failure
func Overflow(value any, targetType string) *Error {
	return &Error{
		Op:     OpExtract,
		Kind:   KindOverflow,
		Type:   targetType,
		Detail: fmt.Sprintf("value %v overflows %s", value, targetType),
		Value:  value,
	}
}

// Unsupported creates an unsupported Go value error
func Unsupported(op Op, goType string) *Error {
	return &Error{
		Op:     op,
		Kind:   KindUnsupported,
		Type:   goType,
		Detail: "no engine representation for this Go type",
	}
}

// BadToken creates a tokenization failure for the legacy string-call path
func BadToken(detail string) *Error {
	return &Error{
		Op:     OpParse,
		Kind:   KindBadToken,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(op Op, kind Kind, cause error, detail string) *Error {
	return &Error{
		Op:     op,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}

// Predicates for callers that only care about the category.

// IsUnknownFunction reports whether err is a name resolution failure
func IsUnknownFunction(err error) bool {
	return errors.Is(err, &Error{Kind: KindUnknownFunction})
}

// IsMisuse reports whether err is a builder state violation
func IsMisuse(err error) bool {
	return errors.Is(err, &Error{Kind: KindMisuse})
}

// IsInvocation reports whether err is an engine-reported call failure
func IsInvocation(err error) bool {
	return errors.Is(err, &Error{Kind: KindEvaluation})
}

// IsUnregistered reports whether err is an unregistered-type lookup failure
func IsUnregistered(err error) bool {
	return errors.Is(err, &Error{Kind: KindUnregistered})
}

// IsTypeMismatch reports whether err is an external-address cast failure
func IsTypeMismatch(err error) bool {
	return errors.Is(err, &Error{Kind: KindTypeMismatch})
}

// IsAlreadyRegistered reports whether err is a duplicate registration failure
func IsAlreadyRegistered(err error) bool {
	return errors.Is(err, &Error{Kind: KindAlreadyRegistered})
}

// IsEngineFailure reports whether err is an instance create/destroy failure
func IsEngineFailure(err error) bool {
	return errors.Is(err, &Error{Kind: KindEngineFailure})
}

// RenderOf extracts the reconstructed call text from an evaluation failure,
// or "" when err carries none.
func RenderOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Render
	}
	return ""
}
