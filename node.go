package tplcmp

// Node is one element of a compiled template tree. Nodes are created once
// at compile time and shared read-only across every subsequent render of
// the template; no render may mutate node state. The type set is closed -
// render code dispatches with exhaustive type switches, never reflection.
type Node interface {
	Pos() Position
	node()
}

// NodeList is an ordered sequence of sibling nodes.
type NodeList []Node

// TextNode is a literal markup run.
type TextNode struct {
	Text string
	pos  Position
}

func (n *TextNode) Pos() Position { return n.pos }
func (n *TextNode) node()         {}

// VariableNode is a {{ expr }} output site. The expression is opaque to
// the engine and handed to the registry's Evaluator at render time.
type VariableNode struct {
	Expr string
	pos  Position
}

func (n *VariableNode) Pos() Position { return n.pos }
func (n *VariableNode) node()         {}

// ComponentNode is a {% component %} invocation site. Body holds the
// caller-supplied content from which fills are extracted per render.
type ComponentNode struct {
	Inv  *Invocation
	Body NodeList
}

func (n *ComponentNode) Pos() Position { return n.Inv.Pos }
func (n *ComponentNode) node()         {}

// SlotNode is a {% slot %} injection point inside a component's own
// template. NameExpr is resolved per render (names are usually string
// literals but may be expressions). Default and Required are per-occurrence
// flags: the same slot name may appear several times with different flags,
// and each occurrence resolves independently.
type SlotNode struct {
	Inv      *Invocation
	NameExpr string
	Default  bool
	Required bool
	Fallback NodeList
}

func (n *SlotNode) Pos() Position { return n.Inv.Pos }
func (n *SlotNode) node()         {}

// FillNode is a {% fill %} block inside a component invocation's body.
// DataVar and FallbackVar are the binding names declared with data="..."
// and fallback="..." (empty when absent).
type FillNode struct {
	Inv         *Invocation
	NameExpr    string
	DataVar     string
	FallbackVar string
	Body        NodeList
}

func (n *FillNode) Pos() Position { return n.Inv.Pos }
func (n *FillNode) node()         {}

// ForeignNode is a host-language control-flow tag (for, if, ...) that the
// engine treats as an opaque container: its semantics come from a
// registered TagHandler, but its children remain part of the tree so fill
// extraction can discover fills nested inside loops and conditionals.
// Body is nil for inline foreign tags.
type ForeignNode struct {
	Inv  *Invocation
	Body NodeList
}

func (n *ForeignNode) Pos() Position { return n.Inv.Pos }
func (n *ForeignNode) node()         {}

// Template is a compiled template: the immutable node tree plus the source
// it was compiled from. Compile once, render many times.
type Template struct {
	Name   string
	Source string
	Nodes  NodeList

	// Slot inventory, collected at compile time so renders can reject
	// fills targeting slot names the template never declares. Dynamic
	// slot names disable that validation.
	slotNames    map[string]bool
	defaultSlot  bool
	dynamicSlots bool
}

// SlotNames returns the statically known slot names of the template.
func (t *Template) SlotNames() []string {
	names := make([]string, 0, len(t.slotNames))
	for name := range t.slotNames {
		names = append(names, name)
	}
	return names
}

// HasDefaultSlot reports whether any statically named slot occurrence
// carries the default flag.
func (t *Template) HasDefaultSlot() bool { return t.defaultSlot }
