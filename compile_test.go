package tplcmp

import (
	"strings"
	"testing"
)

func TestCompileStructure(t *testing.T) {
	src := `<ul>{% for item in items %}{% component "row" value=item %}{{ item }}{% endcomponent %}{% endfor %}</ul>`
	tpl, err := Compile("page", src)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	if len(tpl.Nodes) != 3 {
		t.Fatalf("root nodes = %d, want 3", len(tpl.Nodes))
	}
	loop, ok := tpl.Nodes[1].(*ForeignNode)
	if !ok {
		t.Fatalf("node 1 = %T, want *ForeignNode", tpl.Nodes[1])
	}
	if loop.Inv.Name != "for" || len(loop.Body) != 1 {
		t.Fatalf("loop = %q with %d children", loop.Inv.Name, len(loop.Body))
	}
	comp, ok := loop.Body[0].(*ComponentNode)
	if !ok {
		t.Fatalf("loop child = %T, want *ComponentNode", loop.Body[0])
	}
	if got := comp.Inv.Args[0].Expr; got != `"row"` {
		t.Errorf("component name expr = %q", got)
	}
	if comp.Inv.RawBody != "{{ item }}" {
		t.Errorf("RawBody = %q, want {{ item }}", comp.Inv.RawBody)
	}
	if _, ok := comp.Body[0].(*VariableNode); !ok {
		t.Errorf("component body child = %T, want *VariableNode", comp.Body[0])
	}
}

func TestCompileSlotFlags(t *testing.T) {
	tpl, err := Compile("card", `{% slot "header" default %}H{% endslot %}{% slot "body" required %}{% endslot %}`)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}

	header := tpl.Nodes[0].(*SlotNode)
	if !header.Default || header.Required {
		t.Errorf("header flags = default:%v required:%v", header.Default, header.Required)
	}
	if len(header.Fallback) != 1 {
		t.Errorf("header fallback nodes = %d, want 1", len(header.Fallback))
	}
	body := tpl.Nodes[1].(*SlotNode)
	if body.Default || !body.Required {
		t.Errorf("body flags = default:%v required:%v", body.Default, body.Required)
	}

	if !tpl.HasDefaultSlot() {
		t.Error("HasDefaultSlot() = false")
	}
	names := tpl.SlotNames()
	if len(names) != 2 {
		t.Errorf("SlotNames() = %v, want 2 names", names)
	}
}

func TestCompileSelfClosing(t *testing.T) {
	tpl, err := Compile("c", `{% slot "icon" / %}`)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	slot := tpl.Nodes[0].(*SlotNode)
	if !slot.Inv.SelfClosing {
		t.Error("slot not marked self-closing")
	}
	if slot.Fallback != nil {
		t.Errorf("self-closing slot has fallback: %v", slot.Fallback)
	}
}

func TestCompileFillBindings(t *testing.T) {
	tpl, err := Compile("c", `{% fill "row" data="d" fallback="fb" %}{{ d.x }}{% endfill %}`)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	fill := tpl.Nodes[0].(*FillNode)
	if fill.DataVar != "d" || fill.FallbackVar != "fb" {
		t.Errorf("bindings = data:%q fallback:%q", fill.DataVar, fill.FallbackVar)
	}
}

func TestCompileInlineForeignTag(t *testing.T) {
	tpl, err := Compile("c", `{% csrf_token %}after`)
	if err != nil {
		t.Fatalf("Compile() error: %v", err)
	}
	foreign := tpl.Nodes[0].(*ForeignNode)
	if foreign.Body != nil {
		t.Errorf("inline foreign tag has body: %v", foreign.Body)
	}
	if len(tpl.Nodes) != 2 {
		t.Errorf("root nodes = %d, want 2", len(tpl.Nodes))
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"unterminated component", `{% component "x" %}body`, "missing {% endcomponent %}"},
		{"unterminated slot", `{% slot "x" %}`, "missing {% endslot %}"},
		{"stray end tag", `{% endslot %}`, "unexpected {% endslot %}"},
		{"mismatched end tag", `{% slot "x" %}{% endfill %}`, "unexpected {% endfill %}"},
		{"component without name", `{% component %}{% endcomponent %}`, "requires a name"},
		{"slot without name", `{% slot %}{% endslot %}`, "requires a name"},
		{"fill binding not literal", `{% fill "x" data=d %}{% endfill %}`, "must be a quoted variable name"},
		{"empty variable", `{{ }}`, "empty variable"},
		{"unclosed quote in tag", `{% fill "x %}{% endfill %}`, "unterminated string literal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile("bad", tt.src)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !IsSyntaxError(err) {
				t.Fatalf("expected SyntaxError, got %T: %v", err, err)
			}
			if !strings.Contains(err.Error(), tt.msg) {
				t.Errorf("error = %q, want containing %q", err, tt.msg)
			}
		})
	}
}
