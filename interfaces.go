package tplcmp

import "io"

// Evaluator resolves an opaque expression against a scope stack. The host
// templating language supplies one at registry construction; the engine
// itself never interprets expressions beyond handing them here.
//
// The default evaluator (lib/exprval) handles literals, identifiers, and
// dotted paths - enough for standalone use and for tests.
type Evaluator interface {
	Eval(expr string, scope *Scope) (any, error)
}

// EvaluatorFunc adapts a function to the Evaluator interface.
type EvaluatorFunc func(expr string, scope *Scope) (any, error)

func (f EvaluatorFunc) Eval(expr string, scope *Scope) (any, error) {
	return f(expr, scope)
}

// TagHandler renders a foreign control-flow tag (for, if, ...). The
// handler owns the tag's semantics; the engine only guarantees that
// rendering the body through rc keeps fill extraction and slot resolution
// working inside the tag, no matter how deeply nested.
//
// Handlers must render body content via rc.RenderNodes (adjusting the
// scope with rc.WithScope as needed) rather than walking nodes themselves.
type TagHandler interface {
	RenderTag(rc *RenderContext, inv *Invocation, body NodeList, w io.Writer) error
}

// TagHandlerFunc adapts a function to the TagHandler interface.
type TagHandlerFunc func(rc *RenderContext, inv *Invocation, body NodeList, w io.Writer) error

func (f TagHandlerFunc) RenderTag(rc *RenderContext, inv *Invocation, body NodeList, w io.Writer) error {
	return f(rc, inv, body, w)
}
