package exprval

import (
	"strings"
	"testing"
)

type mapSource map[string]any

func (m mapSource) Lookup(name string) (any, bool) {
	v, ok := m[name]
	return v, ok
}

type account struct {
	Name    string
	Balance int
}

func TestEval(t *testing.T) {
	src := mapSource{
		"name":  "Ada",
		"count": 3,
		"user":  map[string]any{"profile": map[string]any{"email": "a@b.c"}},
		"acct":  account{Name: "ops", Balance: 12},
		"items": []any{"first", "second"},
	}
	e := New()

	tests := []struct {
		name string
		expr string
		want any
	}{
		{"double quoted literal", `"hello"`, "hello"},
		{"single quoted literal", `'hi'`, "hi"},
		{"int literal", "42", 42},
		{"float literal", "1.5", 1.5},
		{"bool literal", "true", true},
		{"nil literal", "nil", nil},
		{"identifier", "name", "Ada"},
		{"nested map path", "user.profile.email", "a@b.c"},
		{"struct field", "acct.Balance", 12},
		{"slice index", "items.1", "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Eval(tt.expr, src)
			if err != nil {
				t.Fatalf("Eval(%q) error: %v", tt.expr, err)
			}
			if got != tt.want {
				t.Errorf("Eval(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvalErrors(t *testing.T) {
	src := mapSource{"user": map[string]any{"name": "x"}, "n": 1}
	e := New()

	tests := []struct {
		name string
		expr string
		msg  string
	}{
		{"undefined variable", "missing", "undefined variable"},
		{"missing key", "user.age", "no key"},
		{"path through scalar", "n.x", "no attribute"},
		{"empty expression", "  ", "empty expression"},
		{"invalid expression", "1 + 2", "invalid expression"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Eval(tt.expr, src)
			if err == nil {
				t.Fatalf("Eval(%q): expected error", tt.expr)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("Eval(%q) error = %q, want containing %q", tt.expr, err, tt.msg)
			}
		})
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"empty string", "", false},
		{"string", "x", true},
		{"zero", 0, false},
		{"number", 7, true},
		{"empty slice", []any{}, false},
		{"slice", []any{1}, true},
		{"empty map", map[string]any{}, false},
		{"struct value", account{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truthy(tt.v); got != tt.want {
				t.Errorf("Truthy(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}
