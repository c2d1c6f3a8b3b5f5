// Package clipsruntime provides a typed convenience layer for driving a
// CLIPS-style inference engine.
//
// Calling into such an engine raw means hand-building tagged expression
// lists, pairing every install with a deinstall, and decoding tagged result
// objects. This library makes those calls type-safe and leak-free: a call
// builder with guaranteed argument-list finalization, an external-address
// type registry for safe down-casting of opaque payloads, and a closed
// decoder set for extracting results into Go values.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	clipsruntime/        Root package with the Engine call surface and
//	│                    function/expression types
//	├── runtime/         High-level API: Environment façade and CallBuilder
//	├── engine/          In-process engine: interning, expression table,
//	│                    evaluator and builtin functions
//	├── data/            Tagged values, interned atoms, multifields
//	├── convert/         Closed decoder set from values to Go types
//	├── extaddr/         External-address type registry
//	├── errors/          Structured error types for debugging
//	└── cmd/clips-shell/ Interactive shell over an owned engine
//
// # Quick Start
//
// Create an environment and call engine functions with Go values:
//
//	env, err := runtime.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer env.Close()
//
//	result, err := env.Call("str-cat", "grand ", "total")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result) // "grand total"
//
//	var sum int64
//	if err := env.CallInto(&sum, "+", 1, 2, 3); err != nil {
//	    log.Fatal(err)
//	}
//
// # Argument Building
//
// Call flattens slices and variadic packs into independent positional
// arguments, maps bool onto the engine's canonical TRUE/FALSE symbols, and
// accepts tagging wrappers where the default tag is not wanted:
//
//	env.Call("+", []int{1, 2, 3})             // three arguments, not one
//	env.Call("eq", runtime.Symbol("red"), v)  // symbol, not string
//
// For long argument lists or explicit control, use the builder directly:
//
//	b := runtime.NewCall(env)
//	defer b.Close()
//	if err := b.SetFunction("str-cat"); err != nil { ... }
//	if err := b.Append("grand ", "total"); err != nil { ... }
//	result, err := b.Invoke()
//
// # External Addresses
//
// Opaque Go values cross into the engine as external addresses. Register
// the type once per instance, then casts are checked against the id the
// engine issued:
//
//	reg := extaddr.NewRegistry()
//	if _, err := extaddr.RegisterType[*Sensor](reg, eng, "sensor"); err != nil { ... }
//	sensor, err := extaddr.CastTo[*Sensor](reg, eng, value)
//
// # Thread Safety
//
// An engine instance and its builders are driven by one goroutine at a
// time; the instance gates concurrent entry with its own lock. The
// external-address registry is safe for concurrent use across instances.
package clipsruntime
