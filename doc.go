// Package tplcmp provides a component composition and slot resolution engine
// for block-structured templates rendered server-side in Go.
//
// tplcmp lets applications define reusable components - a markup template
// plus the data that populates it - and compose them with {% component %}
// tags. Callers inject content into named slots declared by the component's
// own template, with configurable variable-visibility rules and per-render
// isolation.
//
// # Core Concepts
//
// A caller invokes a component and supplies content for its slots:
//
//	{% component "card" %}
//	    {% fill "header" %}<h1>{{ page.title }}</h1>{% endfill %}
//	    Body text becomes the default fill.
//	{% endcomponent %}
//
// Inside card's own template, {% slot %} declares the injection points:
//
//	<div class="card">
//	    {% slot "header" %}<h1>Untitled</h1>{% endslot %}
//	    {% slot "body" default %}{% endslot %}
//	</div>
//
// Fills are matched to slots at render time, so a fill may be produced
// conditionally by a loop or an if block at the call site. Content not
// wrapped in an explicit {% fill %} becomes the implicit "default" fill,
// matched to any slot carrying the default flag.
//
// # Scope Rules
//
// By default a component inherits the caller's scope: ambient variables
// remain visible beneath one extra frame holding the explicit arguments.
// The "only" flag isolates the component so it sees nothing but its
// arguments. Independent of the mode, a fill body always renders against
// the scope at the component tag's call site - never against the called
// component's internal scope. A fill reaches slot-provided data solely
// through its data binding:
//
//	{% slot "row" item=current %}...{% endslot %}
//	{% fill "row" data="d" %}{{ d.item }}{% endfill %}
//
// # Lifecycle
//
// Each render call creates a short-lived Instance carrying the resolved
// args, kwargs, fills, scope, and a unique render identifier. Components
// may declare a BeforeRender hook (runs before the template, may adjust
// the scope) and a Finalize hook (observes output and error, may substitute
// either). Because a descendant's error propagates through each ancestor's
// Finalize, error-boundary components fall out of the generic contract
// with no special-casing in the engine.
//
// # Registration and Rendering
//
// Components are registered explicitly with a Registry:
//
//	reg := tplcmp.NewRegistry()
//	reg.Add(card, sidebar, table)
//	res, err := reg.RenderComponent(ctx, "card", data)
//
// The compiled node tree of every template is immutable after compilation
// and shared across concurrent renders; fill mappings, scopes, and
// instances are created fresh per call. Each successful component render
// appends a (render identifier, component name) entry to the call's
// Manifest and wraps its root fragment with a marker attribute, which is
// what external asset-injection and caching passes key off.
//
// # Design Rationale
//
// The engine favors explicitness over magic:
//   - Explicit registration (no init() side effects)
//   - Explicit lifecycle (BeforeRender/Finalize hooks, ordered extensions)
//   - Explicit state (the manifest is threaded through the render call,
//     never a process-wide singleton)
//   - Explicit collaborators (expression evaluation and control-flow tags
//     are host-pluggable interfaces with minimal built-in defaults)
package tplcmp
