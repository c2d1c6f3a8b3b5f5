// Package runtime is the high-level entry point for evaluating engine
// calls from Go. It wraps a single engine instance in an Environment and
// provides typed argument building, one-shot call helpers, and result
// extraction, so most programs never touch expression nodes or atom
// interning directly.
//
// # Quick Start
//
//	env, err := runtime.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer env.MustClose()
//
//	out, err := env.Call("str-cat", "order-", 42)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(out.String()) // "order-42"
//
// # Owned and Borrowed Instances
//
// New creates an environment that owns a fresh engine instance and
// destroys it on Close. Wrap borrows an instance that something else
// created; Close then tears down only the wrapper and leaves the engine
// running. Destroy failure on an owned instance is fatal and is returned
// from Close rather than swallowed; MustClose turns it into a panic.
//
// # Calling Functions
//
// Call resolves a function by name, converts each Go argument, invokes
// once, and releases the argument list on every path:
//
//	out, err := env.Call("+", 1, 2, 3)
//
// CallInto additionally extracts the result into a Go destination:
//
//	var sum int64
//	err := env.CallInto(&sum, "+", 1, 2, 3)
//
// CallString is the legacy path for pre-tokenized text arguments:
//
//	out, err := env.CallString("str-cat", `"a b" c 3`)
//
// # Argument Conversion
//
// Go arguments convert by type: bool becomes the engine's TRUE or FALSE
// symbol, integer types become INTEGER (uint64 values above the int64
// range are an overflow error), float32/float64 become FLOAT, string
// becomes a quoted STRING, and a data.Value passes through as-is. The
// wrapper types steer text at lexeme kinds:
//
//	env.Call("f", runtime.Symbol("red"))         // bare symbol
//	env.Call("f", runtime.InstanceName("valve")) // [valve]
//	env.Call("f", runtime.External{Payload: s})  // external address
//
// Slices and arrays flatten element by element into separate positional
// arguments; they never become a single multifield. Build one explicitly
// when a sequence argument is wanted:
//
//	mf, err := env.BuildMultifield(1, 2, 3)
//	out, err := env.Call("nth$", 2, mf)
//
// # Incremental Calls
//
// CallBuilder exposes the same machinery stepwise for argument lists that
// are assembled across control flow. A builder binds one function
// reference, appends arguments in strict positional order, and invokes at
// most once. Close releases the engine-owned argument list exactly once
// no matter how far the builder got, so it is deferred immediately:
//
//	b := runtime.NewCall(env)
//	defer b.Close()
//	if err := b.SetFunction("member$"); err != nil { ... }
//	if err := b.Append(runtime.Symbol("b")); err != nil { ... }
//	if err := b.Append(mf); err != nil { ... }
//	out, err := b.Invoke()
//
// # External Addresses
//
// Arbitrary Go values travel through calls as external addresses after
// their type is registered once per instance:
//
//	extaddr.RegisterType[*Sensor](env.Registry(), env.Engine(), "sensor")
//	out, err := env.Call("read-sensor", runtime.External{Payload: s})
//	sensor, err := extaddr.CastTo[*Sensor](env.Registry(), env.Engine(), out)
//
// # Errors
//
// Everything surfaced here is an *errors.Error. Builder protocol
// violations are misuse errors and never reach the engine; failures
// reported by the engine during Invoke come back as invocation errors
// carrying the reconstructed call text, with the engine's error as the
// cause.
//
// # Concurrency
//
// An Environment is safe for concurrent calls; the underlying instance
// serializes evaluation. A CallBuilder is single-use and confined to one
// goroutine.
package runtime
