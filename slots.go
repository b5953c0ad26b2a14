package tplcmp

import (
	"bytes"
	"io"
)

// FallbackValue is a slot's own fallback content, bound lazily into a fill
// body under the fill's fallback binding name. The fallback renders in the
// called component's scope, and only if the fill actually uses it - a fill
// may wrap or ignore the fallback without forcing its evaluation.
type FallbackValue struct {
	rc    *RenderContext
	nodes NodeList

	rendered bool
	html     string
	err      error
}

// renderHTML renders the fallback once and caches the result; the output
// is trusted markup.
func (f *FallbackValue) renderHTML() (string, error) {
	if !f.rendered {
		f.rendered = true
		var buf bytes.Buffer
		f.err = f.rc.renderNodes(f.nodes, &buf)
		f.html = buf.String()
	}
	return f.html, f.err
}

// String renders the fallback, satisfying fmt.Stringer for hosts that
// stringify scope values. Errors surface through the enclosing slot
// resolution, not here.
func (f *FallbackValue) String() string {
	s, _ := f.renderHTML()
	return s
}

// renderSlot resolves one slot occurrence against the fill map of the
// enclosing component render. Multiple occurrences of the same slot name
// each resolve independently against the same map, flags evaluated per
// occurrence; ordering between them is template document order.
func (rc *RenderContext) renderSlot(n *SlotNode, w io.Writer) error {
	name, err := rc.evalName(n.NameExpr)
	if err != nil {
		return err
	}

	component := ""
	if rc.inst != nil {
		component = rc.inst.Component()
	}

	fill, filled := rc.fills.Get(name)
	if n.Default && name != DefaultFillName {
		if dfill, ok := rc.fills.Get(DefaultFillName); ok {
			if filled {
				// Filled by name and by default content at once; refusing
				// beats silently picking one.
				return compositionErrorf(component, name,
					"slot %q received both a named fill and default content", name)
			}
			// A default-flagged slot matches the "default" fill even
			// though the names differ literally.
			fill, filled = dfill, true
		}
	}

	if !filled {
		if n.Required {
			return compositionErrorf(component, name, "required slot %q was not filled", name)
		}
		// Unfilled: the slot's own fallback renders in the scope of the
		// called component, not the caller.
		if err := rc.renderNodes(n.Fallback, w); err != nil {
			return err
		}
		if rc.inst != nil {
			rc.reg.notifySlotRendered(rc.inst, name, false)
		}
		return nil
	}

	if err := rc.renderFill(n, fill, w); err != nil {
		return err
	}
	if rc.inst != nil {
		rc.reg.notifySlotRendered(rc.inst, name, true)
	}
	return nil
}

// renderFill emits a matched fill's content. Output is inserted as
// pre-escaped trusted markup; escaping happened once when the content
// became a fill.
func (rc *RenderContext) renderFill(n *SlotNode, fill *Fill, w io.Writer) error {
	switch {
	case fill.Component != nil:
		return fill.Component.Render(rc.ctx, w)

	case fill.hasContent:
		_, err := io.WriteString(w, fill.Content)
		return err

	default:
		frame := map[string]any{}
		if fill.DataVar != "" {
			// Slot data is declared as keywords on the slot tag and
			// evaluated in the called component's scope.
			data, _, err := rc.bindKwargs(n.Inv.Kwargs)
			if err != nil {
				return err
			}
			frame[fill.DataVar] = data
		}
		var fb *FallbackValue
		if fill.FallbackVar != "" {
			fb = &FallbackValue{rc: rc, nodes: n.Fallback}
			frame[fill.FallbackVar] = fb
		}

		// The fill body closes over the caller's scope and fill map as
		// captured at the component tag's call site.
		sub := rc.fork()
		sub.scope = fill.scope.Extend(frame)
		sub.fills = fill.fills
		if err := sub.renderNodes(fill.Body, w); err != nil {
			return err
		}
		if fb != nil && fb.err != nil {
			return fb.err
		}
		return nil
	}
}
