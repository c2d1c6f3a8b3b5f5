package runtime

import (
	"errors"
	"math"
	"testing"

	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/engine"
	clipserrors "github.com/neutronhq/clips-runtime/errors"
	"github.com/neutronhq/clips-runtime/extaddr"
)

// installedNodes reads the engine-side count of live expression nodes, the
// measure builder finalization is verified against.
func installedNodes(t *testing.T, env *Environment) int {
	t.Helper()
	local, ok := env.Engine().(*engine.Local)
	if !ok {
		t.Fatalf("Engine() = %T, want *engine.Local", env.Engine())
	}
	return local.InstalledExpressions()
}

func TestCallBuilder_HappyPath(t *testing.T) {
	env := mustEnv(t)

	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction("str-cat"); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}
	if err := b.Append("foo", Symbol("bar"), 23); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if got, want := b.Render(), `(str-cat "foo" bar 23)`; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}

	out, err := b.Invoke()
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got, want := out.String(), `"foobar23"`; got != want {
		t.Fatalf("Invoke result = %q, want %q", got, want)
	}
}

func TestCallBuilder_ZeroArgumentCall(t *testing.T) {
	env := mustEnv(t)

	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction("gensym"); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}
	out, err := b.Invoke()
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got := out.String(); got != "gen1" {
		t.Fatalf("Invoke result = %q, want gen1", got)
	}
}

func TestCallBuilder_ProtocolViolations(t *testing.T) {
	env := mustEnv(t)

	t.Run("append before SetFunction", func(t *testing.T) {
		b := NewCall(env)
		defer b.Close()
		if err := b.Append(1); !clipserrors.IsMisuse(err) {
			t.Fatalf("Expected misuse, got %v", err)
		}
	})

	t.Run("invoke unbound", func(t *testing.T) {
		b := NewCall(env)
		defer b.Close()
		if _, err := b.Invoke(); !clipserrors.IsMisuse(err) {
			t.Fatalf("Expected misuse, got %v", err)
		}
	})

	t.Run("SetFunction twice", func(t *testing.T) {
		b := NewCall(env)
		defer b.Close()
		if err := b.SetFunction("progn"); err != nil {
			t.Fatalf("SetFunction failed: %v", err)
		}
		if err := b.SetFunction("gensym"); !clipserrors.IsMisuse(err) {
			t.Fatalf("Expected misuse, got %v", err)
		}
	})

	t.Run("operations after invoke", func(t *testing.T) {
		b := NewCall(env)
		defer b.Close()
		if err := b.SetFunction("gensym"); err != nil {
			t.Fatalf("SetFunction failed: %v", err)
		}
		if _, err := b.Invoke(); err != nil {
			t.Fatalf("Invoke failed: %v", err)
		}
		if _, err := b.Invoke(); !clipserrors.IsMisuse(err) {
			t.Fatalf("Expected misuse on second Invoke, got %v", err)
		}
		if err := b.Append(1); !clipserrors.IsMisuse(err) {
			t.Fatalf("Expected misuse on Append after Invoke, got %v", err)
		}
	})

	t.Run("operations after Close", func(t *testing.T) {
		b := NewCall(env)
		if err := b.SetFunction("progn"); err != nil {
			t.Fatalf("SetFunction failed: %v", err)
		}
		b.Close()
		if err := b.Append(1); !clipserrors.IsMisuse(err) {
			t.Fatalf("Expected misuse on Append after Close, got %v", err)
		}
		if _, err := b.Invoke(); !clipserrors.IsMisuse(err) {
			t.Fatalf("Expected misuse on Invoke after Close, got %v", err)
		}
	})
}

func TestCallBuilder_ResolutionFailureIsTerminal(t *testing.T) {
	env := mustEnv(t)

	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction("no-such-function"); !clipserrors.IsUnknownFunction(err) {
		t.Fatalf("Expected unknown function, got %v", err)
	}
	if err := b.SetFunction("progn"); !clipserrors.IsMisuse(err) {
		t.Fatalf("Expected misuse on retry, got %v", err)
	}
	if err := b.Append(1); !clipserrors.IsMisuse(err) {
		t.Fatalf("Expected misuse on Append, got %v", err)
	}
}

func TestCallBuilder_FailedAppendAppendsNothing(t *testing.T) {
	env := mustEnv(t)

	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction("+"); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}

	err := b.Append(40, struct{}{}, 99)
	var e *clipserrors.Error
	if !errors.As(err, &e) || e.Kind != clipserrors.KindUnsupported {
		t.Fatalf("Expected unsupported error, got %v", err)
	}
	if got := b.Render(); got != "(+)" {
		t.Fatalf("Render() after failed Append = %q, want (+)", got)
	}

	// The builder stays usable; the failed pack contributed nothing.
	if err := b.Append(40, 2); err != nil {
		t.Fatalf("Append after failure: %v", err)
	}
	out, err := b.Invoke()
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got := out.String(); got != "42" {
		t.Fatalf("Invoke result = %q, want 42", got)
	}
}

func TestCallBuilder_FlattensSlicesAndArrays(t *testing.T) {
	env := mustEnv(t)

	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction("+"); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}
	if err := b.Append([]any{1, []int{2, 3}}, [2]int64{4, 5}); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if got, want := b.Render(), "(+ 1 2 3 4 5)"; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
	out, err := b.Invoke()
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if got := out.String(); got != "15" {
		t.Fatalf("Invoke result = %q, want 15", got)
	}
}

func TestCallBuilder_FlattenedElementsArePositional(t *testing.T) {
	env := mustEnv(t)

	// The recording function sees the frame the engine materialized, so
	// its ArgCount is the ground truth for how many positional arguments
	// one Append produced.
	var counts []int
	err := env.RegisterFunction(clipsruntime.Function{
		Name:    "record-args",
		MinArgs: 0,
		MaxArgs: -1,
		Handler: func(f *clipsruntime.Frame) (data.Value, error) {
			counts = append(counts, f.ArgCount())
			return data.VoidValue(), nil
		},
	})
	if err != nil {
		t.Fatalf("RegisterFunction failed: %v", err)
	}

	if _, err := env.Call("record-args", []int{1, 2, 3}); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if _, err := env.Call("record-args", 1, []string{"a", "b"}, 2); err != nil {
		t.Fatalf("Call failed: %v", err)
	}

	want := []int{3, 4}
	if len(counts) != len(want) {
		t.Fatalf("Recorded %v calls, want %v", counts, want)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("Call %d saw %d arguments, want %d", i, counts[i], want[i])
		}
	}
}

func TestCallBuilder_ConversionRules(t *testing.T) {
	env := mustEnv(t)

	tests := []struct {
		name string
		arg  any
		want string // rendered argument
	}{
		{"bool true", true, "TRUE"},
		{"bool false", false, "FALSE"},
		{"int", int(7), "7"},
		{"int8", int8(-8), "-8"},
		{"uint32", uint32(9), "9"},
		{"float32", float32(0.5), "0.5"},
		{"float64", 2.0, "2.0"},
		{"string quoted", "a b", `"a b"`},
		{"symbol bare", Symbol("red"), "red"},
		{"instance name", InstanceName("valve"), "[valve]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewCall(env)
			defer b.Close()
			if err := b.SetFunction("progn"); err != nil {
				t.Fatalf("SetFunction failed: %v", err)
			}
			if err := b.Append(tt.arg); err != nil {
				t.Fatalf("Append failed: %v", err)
			}
			if got, want := b.Render(), "(progn "+tt.want+")"; got != want {
				t.Fatalf("Render() = %q, want %q", got, want)
			}
		})
	}
}

func TestCallBuilder_RejectsUnconvertibleValues(t *testing.T) {
	env := mustEnv(t)

	tests := []struct {
		name string
		arg  any
		kind clipserrors.Kind
	}{
		{"untyped nil", nil, clipserrors.KindUnsupported},
		{"void value", data.VoidValue(), clipserrors.KindUnsupported},
		{"map", map[string]int{}, clipserrors.KindUnsupported},
		{"uint64 overflow", uint64(math.MaxUint64), clipserrors.KindOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewCall(env)
			defer b.Close()
			if err := b.SetFunction("progn"); err != nil {
				t.Fatalf("SetFunction failed: %v", err)
			}
			err := b.Append(tt.arg)
			var e *clipserrors.Error
			if !errors.As(err, &e) || e.Kind != tt.kind {
				t.Fatalf("Append(%v) error = %v, want kind %v", tt.arg, err, tt.kind)
			}
		})
	}
}

func TestCallBuilder_InvocationFailureIsTerminal(t *testing.T) {
	env := mustEnv(t)

	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction("/"); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}
	if err := b.Append(1, 0); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	_, err := b.Invoke()
	if !clipserrors.IsInvocation(err) {
		t.Fatalf("Expected invocation error, got %v", err)
	}
	var e *clipserrors.Error
	if !errors.As(err, &e) {
		t.Fatalf("Expected *errors.Error, got %T", err)
	}
	if e.Render != "(/ 1 0)" {
		t.Fatalf("Render in error = %q, want (/ 1 0)", e.Render)
	}
	if e.Cause == nil {
		t.Fatal("Invocation error should carry the engine failure as cause")
	}

	if _, err := b.Invoke(); !clipserrors.IsMisuse(err) {
		t.Fatalf("Expected misuse after failed Invoke, got %v", err)
	}
}

func TestCallBuilder_CloseReleasesExactlyOnce(t *testing.T) {
	env := mustEnv(t)
	baseline := installedNodes(t, env)

	b := NewCall(env)
	if err := b.SetFunction("+"); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}
	if err := b.Append(1, 2, 3); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if got := installedNodes(t, env); got != baseline+3 {
		t.Fatalf("Installed nodes = %d, want %d", got, baseline+3)
	}

	b.Close()
	if got := installedNodes(t, env); got != baseline {
		t.Fatalf("Installed nodes after Close = %d, want %d", got, baseline)
	}
	b.Close()
	if got := installedNodes(t, env); got != baseline {
		t.Fatalf("Installed nodes after second Close = %d, want %d", got, baseline)
	}
}

func TestCallBuilder_CloseNilReceiver(t *testing.T) {
	var b *CallBuilder
	b.Close()
}

func TestCallBuilder_CloseAfterInvokeReleases(t *testing.T) {
	env := mustEnv(t)
	baseline := installedNodes(t, env)

	b := NewCall(env)
	if err := b.SetFunction("+"); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}
	if err := b.Append(20, 22); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if _, err := b.Invoke(); err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}

	b.Close()
	if got := installedNodes(t, env); got != baseline {
		t.Fatalf("Installed nodes after Close = %d, want %d", got, baseline)
	}
}

func TestCallBuilder_ExternalRoundTrip(t *testing.T) {
	type sensor struct{ id string }

	env := mustEnv(t)
	if _, err := extaddr.RegisterType[*sensor](env.Registry(), env.Engine(), "sensor"); err != nil {
		t.Fatalf("RegisterType failed: %v", err)
	}
	err := env.RegisterFunction(clipsruntime.Function{
		Name:     "sensor-id",
		MinArgs:  1,
		MaxArgs:  1,
		ArgKinds: []data.Kind{data.KindExternalAddress},
		Handler: func(f *clipsruntime.Frame) (data.Value, error) {
			s, err := extaddr.CastTo[*sensor](env.Registry(), f.Engine(), f.Arg(1))
			if err != nil {
				return data.VoidValue(), err
			}
			return data.StringValue(f.Engine().InternSymbol(s.id)), nil
		},
	})
	if err != nil {
		t.Fatalf("RegisterFunction failed: %v", err)
	}

	var got string
	if err := env.CallInto(&got, "sensor-id", External{Payload: &sensor{id: "s-17"}}); err != nil {
		t.Fatalf("CallInto failed: %v", err)
	}
	if got != "s-17" {
		t.Fatalf("sensor-id = %q, want s-17", got)
	}
}

func TestCallBuilder_ExternalUnregisteredType(t *testing.T) {
	type widget struct{}

	env := mustEnv(t)
	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction("progn"); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}
	if err := b.Append(External{Payload: &widget{}}); !clipserrors.IsUnregistered(err) {
		t.Fatalf("Expected unregistered error, got %v", err)
	}
}
