package runtime

import (
	"errors"
	"testing"

	clipserrors "github.com/neutronhq/clips-runtime/errors"
)

func TestCall_Basic(t *testing.T) {
	env := mustEnv(t)

	tests := []struct {
		name string
		fn   string
		args []any
		want string // rendered result
	}{
		{"integer addition", "+", []any{1, 2, 3}, "6"},
		{"division widens", "/", []any{6, 3}, "2.0"},
		{"upcase", "upcase", []any{"abc"}, `"ABC"`},
		{"symbol concatenation", "sym-cat", []any{Symbol("gen"), 7}, "gen7"},
		{"comparison", "<", []any{1, 2, 3}, "TRUE"},
		{"identity", "eq", []any{Symbol("red"), Symbol("red")}, "TRUE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.Call(tt.fn, tt.args...)
			if err != nil {
				t.Fatalf("Call(%s) failed: %v", tt.fn, err)
			}
			if got := out.String(); got != tt.want {
				t.Fatalf("Call(%s) = %q, want %q", tt.fn, got, tt.want)
			}
		})
	}
}

func TestCall_UnknownFunction(t *testing.T) {
	env := mustEnv(t)
	if _, err := env.Call("no-such-function"); !clipserrors.IsUnknownFunction(err) {
		t.Fatalf("Expected unknown function, got %v", err)
	}
}

func TestCall_ReleasesArgumentsOnEveryPath(t *testing.T) {
	env := mustEnv(t)
	baseline := installedNodes(t, env)

	if _, err := env.Call("+", 1, 2); err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if got := installedNodes(t, env); got != baseline {
		t.Fatalf("Installed nodes after success = %d, want %d", got, baseline)
	}

	if _, err := env.Call("+", 1, struct{}{}); err == nil {
		t.Fatal("Expected conversion failure")
	}
	if got := installedNodes(t, env); got != baseline {
		t.Fatalf("Installed nodes after append failure = %d, want %d", got, baseline)
	}

	if _, err := env.Call("/", 1, 0); !clipserrors.IsInvocation(err) {
		t.Fatal("Expected invocation failure")
	}
	if got := installedNodes(t, env); got != baseline {
		t.Fatalf("Installed nodes after invoke failure = %d, want %d", got, baseline)
	}
}

func TestCallInto_Targets(t *testing.T) {
	env := mustEnv(t)

	t.Run("int64", func(t *testing.T) {
		var got int64
		if err := env.CallInto(&got, "+", 40, 2); err != nil {
			t.Fatalf("CallInto failed: %v", err)
		}
		if got != 42 {
			t.Fatalf("got %d, want 42", got)
		}
	})

	t.Run("float64 widens integer result", func(t *testing.T) {
		var got float64
		if err := env.CallInto(&got, "+", 40, 2); err != nil {
			t.Fatalf("CallInto failed: %v", err)
		}
		if got != 42 {
			t.Fatalf("got %v, want 42", got)
		}
	})

	t.Run("string from lexeme", func(t *testing.T) {
		var got string
		if err := env.CallInto(&got, "str-cat", "a", "b"); err != nil {
			t.Fatalf("CallInto failed: %v", err)
		}
		if got != "ab" {
			t.Fatalf("got %q, want ab", got)
		}
	})

	t.Run("bool from comparison", func(t *testing.T) {
		var got bool
		if err := env.CallInto(&got, ">", 2, 1); err != nil {
			t.Fatalf("CallInto failed: %v", err)
		}
		if !got {
			t.Fatal("got false, want true")
		}
	})

	t.Run("strings from multifield", func(t *testing.T) {
		var got []string
		if err := env.CallInto(&got, "create$", Symbol("a"), "b", 3); err != nil {
			t.Fatalf("CallInto failed: %v", err)
		}
		want := []string{"a", "b", "3"}
		if len(got) != len(want) {
			t.Fatalf("got %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("got %v, want %v", got, want)
			}
		}
	})

	t.Run("type mismatch", func(t *testing.T) {
		var got int64
		err := env.CallInto(&got, "str-cat", "a")
		if !clipserrors.IsTypeMismatch(err) {
			t.Fatalf("Expected type mismatch, got %v", err)
		}
	})
}

func TestCallString_LexicalShapes(t *testing.T) {
	env := mustEnv(t)

	tests := []struct {
		name    string
		fn      string
		argLine string
		want    string
	}{
		{"integers", "+", "1 2 3", "6"},
		{"floats", "+", "2.5 0.5", "3.0"},
		{"mixed contagion", "*", "2 1.5", "3.0"},
		{"quoted strings keep spaces", "str-cat", `"a b" c`, `"a bc"`},
		{"bare symbol", "upcase", "foo", "FOO"},
		{"numeric-looking symbol", "sym-cat", "1.2.3 x", "1.2.3x"},
		{"empty quoted string", "str-length", `""`, "0"},
		{"tabs and runs of spaces", "+", " 1\t 2  3 ", "6"},
		{"exponent float", "+", "1e2 0", "100.0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := env.CallString(tt.fn, tt.argLine)
			if err != nil {
				t.Fatalf("CallString(%s, %q) failed: %v", tt.fn, tt.argLine, err)
			}
			if got := out.String(); got != tt.want {
				t.Fatalf("CallString(%s, %q) = %q, want %q", tt.fn, tt.argLine, got, tt.want)
			}
		})
	}
}

func TestCallString_UnterminatedQuote(t *testing.T) {
	env := mustEnv(t)
	_, err := env.CallString("str-cat", `"abc`)
	var e *clipserrors.Error
	if !errors.As(err, &e) || e.Kind != clipserrors.KindBadToken {
		t.Fatalf("Expected bad token error, got %v", err)
	}
}

func TestCallString_EmptyLine(t *testing.T) {
	env := mustEnv(t)
	out, err := env.CallString("gensym", "")
	if err != nil {
		t.Fatalf("CallString failed: %v", err)
	}
	if got := out.String(); got != "gen1" {
		t.Fatalf("CallString(gensym) = %q, want gen1", got)
	}
}

func TestSplitArgLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []token
	}{
		{"empty", "", nil},
		{"bare tokens", "a bc 3", []token{{text: "a"}, {text: "bc"}, {text: "3"}}},
		{"quoted keeps spaces", `"a b" c`, []token{{text: "a b", quoted: true}, {text: "c"}}},
		{"quote ends bare token", `ab"cd"`, []token{{text: "ab"}, {text: "cd", quoted: true}}},
		{"empty quoted", `""`, []token{{text: "", quoted: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitArgLine(tt.line)
			if err != nil {
				t.Fatalf("splitArgLine(%q) failed: %v", tt.line, err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("splitArgLine(%q) = %v, want %v", tt.line, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
