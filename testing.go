package tplcmp

import (
	"context"
	"strings"
)

// TestResult holds the output of rendering a component for testing.
type TestResult struct {
	HTML     string
	Manifest *Manifest
}

// HTMLContains reports whether the rendered markup contains s.
func (tr *TestResult) HTMLContains(s string) bool {
	return strings.Contains(tr.HTML, s)
}

// RenderedComponents returns the distinct component names from the
// manifest, for asserting which components a render touched.
func (tr *TestResult) RenderedComponents() []string {
	return tr.Manifest.Components()
}

// TestRender renders a registered component with the given data and
// returns testable output. Use for unit tests of composition logic when
// you control the inputs directly:
//
//	result, err := tplcmp.TestRender(reg, "card", map[string]any{"title": "x"})
//	if !result.HTMLContains("x") {
//	    t.Fatal("missing title")
//	}
func TestRender(reg *Registry, name string, data map[string]any, opts ...RenderOption) (*TestResult, error) {
	res, err := reg.RenderComponent(context.Background(), name, data, opts...)
	if err != nil {
		return nil, err
	}
	return &TestResult{HTML: res.HTML, Manifest: res.Manifest}, nil
}

// TestRenderSource compiles and renders a template source against data,
// for tests exercising call-site composition (fills, loops around fills,
// nested components).
func TestRenderSource(reg *Registry, source string, data map[string]any) (*TestResult, error) {
	res, err := reg.RenderSource(context.Background(), source, data)
	if err != nil {
		return nil, err
	}
	return &TestResult{HTML: res.HTML, Manifest: res.Manifest}, nil
}
