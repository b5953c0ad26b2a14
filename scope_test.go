package tplcmp

import "testing"

func TestScopeLookup(t *testing.T) {
	s := NewScope(map[string]any{"a": 1, "b": 2}).Extend(map[string]any{"b": 3})

	tests := []struct {
		name   string
		key    string
		want   any
		wantOK bool
	}{
		{"outer frame", "a", 1, true},
		{"shadowed by inner frame", "b", 3, true},
		{"missing", "c", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := s.Lookup(tt.key)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("Lookup(%q) = (%v, %v), want (%v, %v)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestScopeExtendSharesParentFrames(t *testing.T) {
	parent := NewScope(map[string]any{"a": 1})
	child := parent.Extend(map[string]any{"b": 2})

	if _, ok := parent.Lookup("b"); ok {
		t.Error("child frame leaked into parent")
	}
	if v, _ := child.Lookup("a"); v != 1 {
		t.Error("child cannot see parent frame")
	}
	if parent.Depth() != 1 || child.Depth() != 2 {
		t.Errorf("depths = %d, %d, want 1, 2", parent.Depth(), child.Depth())
	}
}

func TestIsolatedScope(t *testing.T) {
	s := Isolated(map[string]any{"x": 1})
	if s.Depth() != 1 {
		t.Errorf("Depth() = %d, want 1", s.Depth())
	}
	if _, ok := s.Lookup("anything_else"); ok {
		t.Error("isolated scope resolved an unknown name")
	}
}

func TestScopeSet(t *testing.T) {
	s := NewScope(map[string]any{"a": 1}).Extend(map[string]any{})
	s.Set("b", 2)

	if v, _ := s.Lookup("b"); v != 2 {
		t.Error("Set binding not visible")
	}
	// Set must write the deepest frame only.
	base := NewScope(map[string]any{"a": 1})
	if _, ok := base.Extend(map[string]any{}).Lookup("b"); ok {
		t.Error("Set leaked across scopes")
	}
}
