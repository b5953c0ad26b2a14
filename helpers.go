package tplcmp

import (
	"fmt"
	"html"
)

// HTML marks a string as pre-escaped trusted markup. Variable output of an
// HTML value is inserted verbatim; plain strings are escaped. Slot and
// fill output is always HTML at the point of insertion - escaping happens
// once, at the boundary where external input becomes a fill, so nesting
// never double-escapes.
type HTML string

// rawValue is implemented by values whose textual form is trusted markup
// produced by the engine itself (slot fallbacks bound into fills).
type rawValue interface {
	renderHTML() (string, error)
}

// formatValue renders a scope value for variable output. raw reports that
// the text must not be escaped.
func formatValue(v any) (text string, raw bool, err error) {
	switch t := v.(type) {
	case nil:
		return "", false, nil
	case HTML:
		return string(t), true, nil
	case rawValue:
		text, err = t.renderHTML()
		return text, true, err
	case string:
		return t, false, nil
	case fmt.Stringer:
		return t.String(), false, nil
	default:
		return fmt.Sprint(v), false, nil
	}
}

// Escape HTML-escapes untrusted text for insertion into markup.
func Escape(s string) string {
	return html.EscapeString(s)
}
