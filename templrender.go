package tplcmp

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Templ exposes a registered component as a templ.Component, so tplcmp
// components drop into templ layouts like any other:
//
//	@reg.Templ("card", map[string]any{"title": "Hi"},
//	    tplcmp.WithFill(tplcmp.TemplFill("body", body())))
//
// The render runs when templ renders the page; render errors surface
// through templ's usual error return.
func (r *Registry) Templ(name string, data map[string]any, opts ...RenderOption) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		res, err := r.RenderComponent(ctx, name, data, opts...)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, res.HTML)
		return err
	})
}

// TemplTemplate exposes a compiled free-standing template as a
// templ.Component.
func (r *Registry) TemplTemplate(t *Template, data map[string]any) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		res, err := r.RenderTemplate(ctx, t, data)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, res.HTML)
		return err
	})
}
