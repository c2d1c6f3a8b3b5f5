// Package errors provides structured error types for the clips-runtime library.
//
// Errors are categorized by Op (which operation failed) and Kind (error
// category). The Error type includes the context a caller needs to diagnose
// an engine-side failure after the fact: the function name, the involved
// type, the 1-based argument position, and for evaluation failures the
// reconstructed text of the attempted call.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.OpInvoke, errors.KindEvaluation).
//		Function("age-of").
//		Render(`(age-of "rex" 7)`).
//		Detail("call failed").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownFunction("no-such-fn")
//	err := errors.TypeMismatch("main.Widget")
//
// All errors implement the standard error interface and support errors.Is/As.
// A target with only a Kind set matches that kind under any operation, which
// is what the package-level predicates rely on.
package errors
