package tplcmp

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/pthm/tplcmp/lib/ctxlog"
	"github.com/pthm/tplcmp/lib/exprval"
)

// RenderContext carries the per-call state of one render: the scope stack,
// the enclosing component's fill map, the manifest being accumulated, and
// the render-identifier sequence. Everything here is created fresh per
// top-level render call and never shared across calls; the only shared
// object is the compiled node tree, which is read-only.
//
// Rendering is a synchronous depth-first walk. Nothing suspends; a render
// call either completes or returns an error.
type RenderContext struct {
	ctx      context.Context
	reg      *Registry
	scope    *Scope
	fills    *FillMap
	inst     *Instance
	manifest *Manifest
	seq      *int
	depth    int

	// collector is non-nil only during a fill-extraction sub-render.
	collector *fillCollector

	log *slog.Logger
}

// Context returns the context of the top-level render call.
func (rc *RenderContext) Context() context.Context { return rc.ctx }

// Scope returns the scope stack active at this point of the render.
func (rc *RenderContext) Scope() *Scope { return rc.scope }

// Registry returns the registry driving this render.
func (rc *RenderContext) Registry() *Registry { return rc.reg }

// Instance returns the component instance currently rendering, or nil
// outside any component.
func (rc *RenderContext) Instance() *Instance { return rc.inst }

// fork shallow-copies the context so a sub-render can diverge without
// touching the parent.
func (rc *RenderContext) fork() *RenderContext {
	child := *rc
	return &child
}

// WithScope returns a context identical to rc but rendering against s.
// Tag handlers use this to bind loop variables.
func (rc *RenderContext) WithScope(s *Scope) *RenderContext {
	child := rc.fork()
	child.scope = s
	return child
}

// Eval resolves an expression against the current scope via the
// registry's evaluator.
func (rc *RenderContext) Eval(expr string) (any, error) {
	return rc.reg.evaluator.Eval(expr, rc.scope)
}

// evalName resolves a slot/fill/component name expression, with a fast
// path for string literals.
func (rc *RenderContext) evalName(expr string) (string, error) {
	if s, ok := literalString(expr); ok {
		return s, nil
	}
	v, err := rc.Eval(expr)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("tplcmp: name expression %q must evaluate to a non-empty string, got %T", expr, v)
	}
	return s, nil
}

// RenderNodes renders a node list to w. Exported for TagHandler
// implementations, which must route body content through here so fill
// extraction and slot resolution keep working inside foreign tags.
func (rc *RenderContext) RenderNodes(nodes NodeList, w io.Writer) error {
	return rc.renderNodes(nodes, w)
}

func (rc *RenderContext) renderNodes(nodes NodeList, w io.Writer) error {
	for _, n := range nodes {
		if err := rc.renderNode(n, w); err != nil {
			return err
		}
	}
	return nil
}

func (rc *RenderContext) renderNode(node Node, w io.Writer) error {
	switch n := node.(type) {
	case *TextNode:
		_, err := io.WriteString(w, n.Text)
		return err

	case *VariableNode:
		v, err := rc.Eval(n.Expr)
		if err != nil {
			return fmt.Errorf("tplcmp: %s: %w", n.Pos(), err)
		}
		text, raw, err := formatValue(v)
		if err != nil {
			return err
		}
		if !raw {
			text = Escape(text)
		}
		_, err = io.WriteString(w, text)
		return err

	case *ComponentNode:
		return rc.renderComponent(n, w)

	case *SlotNode:
		return rc.renderSlot(n, w)

	case *FillNode:
		if rc.collector != nil {
			return rc.collector.collect(rc, n)
		}
		return fmt.Errorf("%w at %s", ErrFillOutsideComponent, n.Pos())

	case *ForeignNode:
		h, ok := rc.reg.tagHandler(n.Inv.Name)
		if !ok {
			return fmt.Errorf("%w: %q at %s", ErrUnknownTag, n.Inv.Name, n.Pos())
		}
		return h.RenderTag(rc, n.Inv, n.Body, w)

	default:
		return fmt.Errorf("tplcmp: unknown node type %T at %s", node, node.Pos())
	}
}

// bindKwargs evaluates a tag's keyword occurrences into a single mapping,
// applying the engine-level merge rules: repeated plain keys last-wins
// (the Invocation keeps all occurrences for consumers wanting accumulate
// semantics), spreads expand in place, and aggregate keys fold into a
// nested mapping named after their prefix. The returned key order is the
// encounter order, which downstream identity hashing relies on.
func (rc *RenderContext) bindKwargs(kwargs []Kwarg) (map[string]any, []string, error) {
	bound := map[string]any{}
	var order []string
	aggregates := map[string]bool{}

	set := func(key string, val any, pos Position) error {
		if prefix, sub, isAgg := strings.Cut(key, AggregateSep); isAgg {
			if _, plain := bound[prefix]; plain && !aggregates[prefix] {
				return fmt.Errorf("tplcmp: %s: aggregate key %q conflicts with plain key %q", pos, key, prefix)
			}
			nested, _ := bound[prefix].(map[string]any)
			if nested == nil {
				nested = map[string]any{}
				bound[prefix] = nested
				order = append(order, prefix)
				aggregates[prefix] = true
			}
			nested[sub] = val
			return nil
		}
		if aggregates[key] {
			return fmt.Errorf("tplcmp: %s: plain key %q conflicts with aggregate keys", pos, key)
		}
		if _, seen := bound[key]; !seen {
			order = append(order, key)
		}
		bound[key] = val
		return nil
	}

	for _, kw := range kwargs {
		if kw.Spread {
			v, err := rc.Eval(kw.Expr)
			if err != nil {
				return nil, nil, fmt.Errorf("tplcmp: %s: %w", kw.Pos, err)
			}
			expanded, err := spreadPairs(v)
			if err != nil {
				return nil, nil, fmt.Errorf("tplcmp: %s: spread %q: %w", kw.Pos, kw.Expr, err)
			}
			for _, pair := range expanded {
				if err := set(pair.key, pair.val, kw.Pos); err != nil {
					return nil, nil, err
				}
			}
			continue
		}

		v, err := rc.Eval(kw.Expr)
		if err != nil {
			return nil, nil, fmt.Errorf("tplcmp: %s: %w", kw.Pos, err)
		}
		if err := set(kw.Key, v, kw.Pos); err != nil {
			return nil, nil, err
		}
	}
	return bound, order, nil
}

type kvPair struct {
	key string
	val any
}

// spreadPairs flattens a spread value into key/value pairs. Plain Go maps
// have no order, so keys are sorted to keep renders deterministic.
func spreadPairs(v any) ([]kvPair, error) {
	switch m := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]kvPair, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, kvPair{k, m[k]})
		}
		return pairs, nil
	case map[string]string:
		keys := make([]string, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]kvPair, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, kvPair{k, m[k]})
		}
		return pairs, nil
	default:
		return nil, fmt.Errorf("value of type %T is not a mapping", v)
	}
}

// Truthy reports whether a value counts as true in a template condition.
// Re-exported from the default expression package so tag handlers share
// one notion of truthiness.
func Truthy(v any) bool {
	return exprval.Truthy(v)
}

// RenderOption adjusts a top-level RenderComponent call.
type RenderOption func(*renderCall)

type renderCall struct {
	fills []*Fill
}

// WithFill supplies a fill programmatically for a top-level render,
// the caller-side equivalent of a {% fill %} block:
//
//	reg.RenderComponent(ctx, "card", data,
//	    tplcmp.WithFill(tplcmp.StringFill("header", "<h1>Hi</h1>")),
//	    tplcmp.WithFill(tplcmp.TemplFill("body", bodyTemplate())))
func WithFill(f *Fill) RenderOption {
	return func(call *renderCall) {
		call.fills = append(call.fills, f)
	}
}

// RenderComponent renders one registered component as the root of a
// render call. data becomes the component's keyword arguments; fills may
// be supplied via options. The returned result carries the finished
// markup and the manifest of every component occurrence rendered beneath
// this call.
func (r *Registry) RenderComponent(ctx context.Context, name string, data map[string]any, opts ...RenderOption) (*RenderResult, error) {
	def, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}

	var call renderCall
	for _, opt := range opts {
		opt(&call)
	}

	rc := r.newRenderContext(ctx)
	fills := newFillMap()
	for _, f := range call.fills {
		fc := *f
		fc.scope = rc.scope
		fc.fills = rc.fills
		if err := fills.add(name, &fc); err != nil {
			return nil, err
		}
	}

	kwargs, order := copyData(data)

	var buf bytes.Buffer
	err := rc.invokeComponent(def, nil, kwargs, order, fills, def.Isolated, &buf)
	if err != nil {
		return nil, err
	}
	return &RenderResult{HTML: buf.String(), Manifest: rc.manifest}, nil
}

// RenderTemplate renders a free-standing template (typically a page that
// invokes components) against data.
func (r *Registry) RenderTemplate(ctx context.Context, t *Template, data map[string]any) (*RenderResult, error) {
	rc := r.newRenderContext(ctx)
	if data != nil {
		rc.scope = NewScope(data)
	}

	var buf bytes.Buffer
	if err := rc.renderNodes(t.Nodes, &buf); err != nil {
		return nil, err
	}
	return &RenderResult{HTML: buf.String(), Manifest: rc.manifest}, nil
}

// RenderSource compiles and renders source in one step. The compiled tree
// is discarded; callers rendering repeatedly should Compile once.
func (r *Registry) RenderSource(ctx context.Context, source string, data map[string]any) (*RenderResult, error) {
	t, err := Compile("inline", source)
	if err != nil {
		return nil, err
	}
	return r.RenderTemplate(ctx, t, data)
}

func (r *Registry) newRenderContext(ctx context.Context) *RenderContext {
	seq := 0
	return &RenderContext{
		ctx:      ctx,
		reg:      r,
		scope:    NewScope(),
		fills:    newFillMap(),
		manifest: &Manifest{},
		seq:      &seq,
		log:      ctxlog.FromContext(ctx),
	}
}

// copyData snapshots caller data into a kwargs map with a deterministic
// (sorted) key order.
func copyData(data map[string]any) (map[string]any, []string) {
	kwargs := make(map[string]any, len(data))
	order := make([]string, 0, len(data))
	for k, v := range data {
		kwargs[k] = v
		order = append(order, k)
	}
	sort.Strings(order)
	return kwargs, order
}
