package tplcmp

import (
	"bytes"
	"strings"

	"github.com/a-h/templ"
)

// DefaultFillName is the implicit slot name targeted by body content not
// wrapped in an explicit {% fill %} block.
const DefaultFillName = "default"

// Fill is caller-supplied content targeting one slot name for one render
// call. Exactly one content source is set: a captured node list (Body), a
// pre-rendered string (Content), or an opaque templ component.
//
// A fill closes over the scope stack active at the component tag's call
// site; it never sees the called component's internal scope. That
// asymmetry is an invariant of the engine, not an implementation detail.
type Fill struct {
	Name        string
	Body        NodeList
	Content     string
	Component   templ.Component
	DataVar     string
	FallbackVar string

	hasContent bool
	scope      *Scope
	fills      *FillMap
	pos        Position
}

// StringFill builds a fill from a pre-rendered trusted markup string.
func StringFill(name, content string) *Fill {
	return &Fill{Name: name, Content: content, hasContent: true}
}

// TemplFill builds a fill whose content is an opaque templ component.
// Data and fallback bindings do not apply to opaque fills.
func TemplFill(name string, c templ.Component) *Fill {
	return &Fill{Name: name, Component: c}
}

// FillMap maps slot names to fills for one component invocation at one
// render call. It is built fresh per render - fill content may depend on
// loop or conditional state at the call site - and is immutable once the
// component's own template starts rendering.
type FillMap struct {
	byName map[string]*Fill
	order  []string
}

func newFillMap() *FillMap {
	return &FillMap{byName: map[string]*Fill{}}
}

// Get returns the fill targeting name, if any.
func (m *FillMap) Get(name string) (*Fill, bool) {
	f, ok := m.byName[name]
	return f, ok
}

// Names returns the fill names in the order they were captured.
func (m *FillMap) Names() []string {
	return append([]string(nil), m.order...)
}

// Len returns the number of fills.
func (m *FillMap) Len() int { return len(m.order) }

func (m *FillMap) add(component string, f *Fill) error {
	if _, exists := m.byName[f.Name]; exists {
		return compositionErrorf(component, f.Name,
			"slot %q is filled twice in the same invocation", f.Name)
	}
	m.byName[f.Name] = f
	m.order = append(m.order, f.Name)
	return nil
}

// fillCollector is the side channel of the fill-extraction sub-render.
// While it is attached to a RenderContext, fill nodes register themselves
// here instead of producing output, and everything else the body emits
// (the SCANNING state) accumulates into def as implicit default content.
type fillCollector struct {
	component string
	fills     *FillMap
	def       bytes.Buffer
}

func (col *fillCollector) collect(rc *RenderContext, n *FillNode) error {
	name, err := rc.evalName(n.NameExpr)
	if err != nil {
		return err
	}
	return col.fills.add(col.component, &Fill{
		Name:        name,
		Body:        n.Body,
		DataVar:     n.DataVar,
		FallbackVar: n.FallbackVar,
		scope:       rc.scope,
		fills:       rc.fills,
		pos:         n.Pos(),
	})
}

// extractFills walks a component invocation's body and builds its fill
// map. The walk is a real sub-render with discarded visible output: a fill
// produced three levels down inside {% for %} and {% if %} blocks is still
// captured, because the foreign tags render their children through the
// same context. The body itself is never emitted - only its fills are.
//
// Having both implicit default content and an explicit "default" fill is a
// conflict: a component cannot receive ambient content and an explicit
// default fill at once.
func (rc *RenderContext) extractFills(component string, body NodeList) (*FillMap, error) {
	if len(body) == 0 {
		return newFillMap(), nil
	}

	col := &fillCollector{component: component, fills: newFillMap()}
	sub := rc.fork()
	sub.collector = col
	if err := sub.renderNodes(body, &col.def); err != nil {
		return nil, err
	}

	if content := col.def.String(); strings.TrimSpace(content) != "" {
		if _, ok := col.fills.Get(DefaultFillName); ok {
			return nil, compositionErrorf(component, DefaultFillName,
				"component received both body content and an explicit %q fill", DefaultFillName)
		}
		err := col.fills.add(component, &Fill{
			Name:       DefaultFillName,
			Content:    content,
			hasContent: true,
			scope:      rc.scope,
			fills:      rc.fills,
		})
		if err != nil {
			return nil, err
		}
	}
	return col.fills, nil
}
