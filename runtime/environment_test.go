package runtime

import (
	"testing"

	clipsruntime "github.com/neutronhq/clips-runtime"
	"github.com/neutronhq/clips-runtime/data"
	"github.com/neutronhq/clips-runtime/engine"
	clipserrors "github.com/neutronhq/clips-runtime/errors"
	"github.com/neutronhq/clips-runtime/extaddr"
)

func mustEnv(t *testing.T) *Environment {
	t.Helper()
	env, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { env.Close() })
	return env
}

func TestNew_OwnedLifecycle(t *testing.T) {
	env, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if env.ID() == "" {
		t.Fatal("Expected non-empty environment id")
	}

	out, err := env.Call("+", 20, 22)
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if got := out.String(); got != "42" {
		t.Fatalf("Call result = %q, want 42", got)
	}

	if err := env.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := env.Close(); err != nil {
		t.Fatalf("Second Close = %v, want nil", err)
	}
}

func TestNew_OptionValidation(t *testing.T) {
	if _, err := New(WithLogger(nil)); !clipserrors.IsEngineFailure(err) {
		t.Fatalf("Expected engine failure for nil logger, got %v", err)
	}
	if _, err := New(WithRegistry(nil)); !clipserrors.IsEngineFailure(err) {
		t.Fatalf("Expected engine failure for nil registry, got %v", err)
	}
}

func TestNew_SharedRegistry(t *testing.T) {
	reg := extaddr.NewRegistry()
	env, err := New(WithRegistry(reg))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer env.Close()
	if env.Registry() != reg {
		t.Fatal("Registry() should return the configured registry")
	}
}

func TestWrap_BorrowedLeavesEngineRunning(t *testing.T) {
	eng, err := engine.New()
	if err != nil {
		t.Fatalf("engine.New failed: %v", err)
	}

	env, err := Wrap(eng)
	if err != nil {
		t.Fatalf("Wrap failed: %v", err)
	}
	var got int64
	if err := env.CallInto(&got, "+", 20, 22); err != nil {
		t.Fatalf("CallInto failed: %v", err)
	}
	if got != 42 {
		t.Fatalf("CallInto result = %d, want 42", got)
	}

	if err := env.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := eng.ResolveFunction("gensym"); err != nil {
		t.Fatalf("Engine should survive wrapper Close, resolve failed: %v", err)
	}
	if err := eng.Close(); err != nil {
		t.Fatalf("Engine Close after wrapper: %v", err)
	}
}

func TestWrap_NilEngine(t *testing.T) {
	if _, err := Wrap(nil); !clipserrors.IsMisuse(err) {
		t.Fatalf("Expected misuse for nil engine, got %v", err)
	}
}

func TestClose_OwnedDestroyFailureSurfaces(t *testing.T) {
	env, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// A builder left open keeps expression nodes installed, which the
	// engine refuses to destroy under.
	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction("progn"); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}
	if err := b.Append(1); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	err = env.Close()
	if !clipserrors.IsEngineFailure(err) {
		t.Fatalf("Expected engine failure from Close with leaked builder, got %v", err)
	}
	if err := env.Close(); err != nil {
		t.Fatalf("Second Close = %v, want nil", err)
	}
}

func TestMustClose_PanicsOnDestroyFailure(t *testing.T) {
	env, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	b := NewCall(env)
	defer b.Close()
	if err := b.SetFunction("progn"); err != nil {
		t.Fatalf("SetFunction failed: %v", err)
	}
	if err := b.Append(1); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Error("Expected MustClose to panic on destroy failure")
		}
	}()
	env.MustClose()
}

func TestMustClose_CleanTeardown(t *testing.T) {
	env, err := New()
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	env.MustClose()
}

func TestEnvironment_InternHelpers(t *testing.T) {
	env := mustEnv(t)

	if env.Intern("red") != env.Engine().InternSymbol("red") {
		t.Fatal("Intern should return the engine's atom")
	}
	if env.InternInt(7) != env.Engine().InternInteger(7) {
		t.Fatal("InternInt should return the engine's atom")
	}
	if env.InternFloat(2.5) != env.Engine().InternFloat(2.5) {
		t.Fatal("InternFloat should return the engine's atom")
	}
	if env.True().Text() != "TRUE" || env.False().Text() != "FALSE" {
		t.Fatalf("True/False = %q/%q", env.True().Text(), env.False().Text())
	}
}

func TestEnvironment_RegisterFunction(t *testing.T) {
	env := mustEnv(t)

	err := env.RegisterFunction(clipsruntime.Function{
		Name:     "double",
		MinArgs:  1,
		MaxArgs:  1,
		ArgKinds: []data.Kind{data.KindInteger},
		Handler: func(f *clipsruntime.Frame) (data.Value, error) {
			n, _ := f.Arg(1).Integer()
			return data.IntegerValue(f.Engine().InternInteger(n.Value() * 2)), nil
		},
	})
	if err != nil {
		t.Fatalf("RegisterFunction failed: %v", err)
	}

	var got int64
	if err := env.CallInto(&got, "double", 21); err != nil {
		t.Fatalf("CallInto failed: %v", err)
	}
	if got != 42 {
		t.Fatalf("double(21) = %d, want 42", got)
	}

	found := false
	for _, fn := range env.Functions() {
		if fn.Name == "double" {
			found = true
		}
	}
	if !found {
		t.Fatal("Functions() should list the registered function")
	}
}

func TestEnvironment_RunAndReset(t *testing.T) {
	env := mustEnv(t)
	if fired := env.Run(-1); fired != 0 {
		t.Fatalf("Run(-1) = %d, want 0", fired)
	}

	out, err := env.Call("gensym")
	if err != nil {
		t.Fatalf("gensym failed: %v", err)
	}
	if got := out.String(); got != "gen1" {
		t.Fatalf("First gensym = %q, want gen1", got)
	}
	env.Reset()
	out, err = env.Call("gensym")
	if err != nil {
		t.Fatalf("gensym after Reset failed: %v", err)
	}
	if got := out.String(); got != "gen1" {
		t.Fatalf("gensym after Reset = %q, want gen1", got)
	}
}
