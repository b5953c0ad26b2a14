package tplcmp

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
)

// LifecycleState tracks a component instance through its render call.
type LifecycleState int

const (
	StateCreated LifecycleState = iota
	StateBeforeHook
	StateRendering
	StateAfterHook
	StateDone
	StateErrored
)

func (s LifecycleState) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateBeforeHook:
		return "before_hook"
	case StateRendering:
		return "rendering"
	case StateAfterHook:
		return "after_hook"
	case StateDone:
		return "done"
	case StateErrored:
		return "errored"
	}
	return fmt.Sprintf("LifecycleState(%d)", int(s))
}

// Instance is the render-call-scoped view of one component occurrence:
// resolved positional args, keyword args, the fill map, the scope the
// template will render with, and a render identifier unique to this call.
// Instances are created fresh per call, handed to hooks and extensions,
// and discarded when the call finishes; nothing about them persists.
type Instance struct {
	def      *Definition
	renderID string
	args     []any
	kwargs   map[string]any
	kworder  []string
	fills    *FillMap
	scope    *Scope
	state    LifecycleState
	depth    int
}

// Component returns the component's registered name.
func (i *Instance) Component() string { return i.def.Name }

// RenderID returns the opaque identifier for this render call. External
// collaborators use it to correlate manifest entries and marker
// attributes back to this occurrence.
func (i *Instance) RenderID() string { return i.renderID }

// Args returns the positional arguments of the invocation.
func (i *Instance) Args() []any { return i.args }

// Kwarg returns the bound keyword argument by name.
func (i *Instance) Kwarg(name string) (any, bool) {
	v, ok := i.kwargs[name]
	return v, ok
}

// KwargNames returns the keyword names in encounter order.
func (i *Instance) KwargNames() []string {
	return append([]string(nil), i.kworder...)
}

// Fills returns the fill map assembled for this render call.
func (i *Instance) Fills() *FillMap { return i.fills }

// Scope returns the scope stack the component's template renders with.
// BeforeRender hooks may Set bindings on it; nothing may mutate the
// compiled node tree.
func (i *Instance) Scope() *Scope { return i.scope }

// State returns the instance's lifecycle state.
func (i *Instance) State() LifecycleState { return i.state }

// Depth returns the component nesting depth of this occurrence, zero for
// a render call's root component.
func (i *Instance) Depth() int { return i.depth }

// renderComponent resolves and renders one {% component %} site.
func (rc *RenderContext) renderComponent(n *ComponentNode, w io.Writer) error {
	name, err := rc.evalName(n.Inv.Args[0].Expr)
	if err != nil {
		return err
	}
	def, ok := rc.reg.Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q at %s", ErrUnknownComponent, name, n.Pos())
	}

	// Fills come first: the body walk must run in the caller's scope,
	// before any callee state exists.
	fills, err := rc.extractFills(name, n.Body)
	if err != nil {
		return err
	}

	var args []any
	for _, a := range n.Inv.Args[1:] {
		v, err := rc.Eval(a.Expr)
		if err != nil {
			return fmt.Errorf("tplcmp: %s: %w", a.Pos, err)
		}
		args = append(args, v)
	}
	kwargs, order, err := rc.bindKwargs(n.Inv.Kwargs)
	if err != nil {
		return err
	}

	isolated := def.Isolated || n.Inv.HasFlag("only")
	return rc.invokeComponent(def, args, kwargs, order, fills, isolated, w)
}

// invokeComponent drives the lifecycle state machine for one component
// render: validate inputs, run the before hook, render the template
// through slot resolution, then give the finalize hook the chance to
// substitute output or error before the result is committed. The manifest
// entry and marker wrapping happen only on success, so a failed render
// leaves no external trace.
func (rc *RenderContext) invokeComponent(def *Definition, args []any, kwargs map[string]any, kworder []string, fills *FillMap, isolated bool, w io.Writer) error {
	var scope *Scope
	if isolated {
		scope = Isolated(kwargs)
	} else {
		scope = rc.scope.Extend(kwargs)
	}

	inst := &Instance{
		def:      def,
		renderID: rc.newRenderID(def.Name),
		args:     args,
		kwargs:   kwargs,
		kworder:  kworder,
		fills:    fills,
		scope:    scope,
		state:    StateCreated,
		depth:    rc.depth,
	}

	rc.log.DebugContext(rc.ctx, "render component",
		"component", def.Name, "render_id", inst.renderID, "depth", inst.depth)

	if err := validateFillTargets(def, fills); err != nil {
		return err
	}
	if err := def.validateProps(inst); err != nil {
		return err
	}
	if err := rc.reg.notifyInputValidated(inst); err != nil {
		return err
	}

	inst.state = StateBeforeHook
	if def.BeforeRender != nil {
		if err := def.BeforeRender(rc.ctx, inst); err != nil {
			return &HookError{Component: def.Name, Hook: "before_render", Err: err}
		}
	}
	if err := rc.reg.notifyBeforeRender(inst); err != nil {
		return err
	}

	inst.state = StateRendering
	sub := rc.fork()
	sub.scope = inst.scope
	sub.fills = fills
	sub.inst = inst
	sub.depth = rc.depth + 1
	sub.collector = nil

	var buf bytes.Buffer
	renderErr := sub.renderNodes(def.Template.Nodes, &buf)
	output := buf.String()

	// Second phase of the render contract: the component may replace the
	// output or the error before anything is finalized. This is the whole
	// error-boundary mechanism - a descendant's failure arrives here as
	// renderErr and the hook may swap in substitute markup.
	inst.state = StateAfterHook
	if def.Finalize != nil {
		output, renderErr = def.Finalize(rc.ctx, inst, output, renderErr)
	}
	rc.reg.notifyAfterRender(inst, output, renderErr)

	if renderErr != nil {
		inst.state = StateErrored
		return renderErr
	}

	inst.state = StateDone
	output = injectMarker(output, inst.renderID)
	rc.manifest.add(inst.renderID, def.Name)
	_, err := io.WriteString(w, output)
	return err
}

// validateFillTargets rejects fills aimed at slot names the component's
// template never declares. The "default" fill (implicit body content or
// an explicit fill) needs either a default-flagged slot or a slot
// literally named "default". Templates with dynamically named slots skip
// this check; the names are unknowable until render.
func validateFillTargets(def *Definition, fills *FillMap) error {
	t := def.Template
	if t.dynamicSlots {
		return nil
	}
	for _, name := range fills.Names() {
		if name == DefaultFillName {
			if !t.defaultSlot && !t.slotNames[DefaultFillName] {
				return compositionErrorf(def.Name, name,
					"component has no default slot to receive the supplied content")
			}
			continue
		}
		if !t.slotNames[name] {
			return compositionErrorf(def.Name, name,
				"fill targets unknown slot %q", name)
		}
	}
	return nil
}

// newRenderID mints the opaque identifier for one component occurrence:
// the component name plus a short hash of the name and the call's
// position in the render sequence. Identical renders of the same inputs
// produce identical identifiers, which external caching relies on.
func (rc *RenderContext) newRenderID(name string) string {
	*rc.seq++
	h := sha256.Sum256([]byte(fmt.Sprintf("%s:%d", name, *rc.seq)))
	return name + "-" + hex.EncodeToString(h[:4])
}
