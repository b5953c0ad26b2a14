// Package exprval implements the minimal expression language the engine
// falls back to when the host does not supply its own evaluator: literals,
// identifiers, and dotted-path traversal over maps and structs.
//
// It deliberately stops there. Filters, operators, and function calls
// belong to the host templating language; the engine only ever asks "what
// value does this expression denote in this scope".
package exprval

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Source resolves a top-level variable name. Scope stacks implement this.
type Source interface {
	Lookup(name string) (any, bool)
}

// Evaluator evaluates expressions against a Source.
type Evaluator struct{}

// New returns the default evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Eval resolves expr against src. Supported forms: single- or
// double-quoted string literals, integer and float literals, true, false,
// nil, bare identifiers, and dotted paths (user.name.first). An undefined
// top-level variable is an error; a missing path segment on a defined
// value is too.
func (e *Evaluator) Eval(expr string, src Source) (any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("exprval: empty expression")
	}

	// Literals first.
	if len(expr) >= 2 {
		q := expr[0]
		if (q == '"' || q == '\'') && expr[len(expr)-1] == q {
			return expr[1 : len(expr)-1], nil
		}
	}
	switch expr {
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "nil", "none", "None":
		return nil, nil
	}
	if i, err := strconv.Atoi(expr); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(expr, 64); err == nil {
		return f, nil
	}

	// Variable lookup, with optional dotted path.
	parts := strings.Split(expr, ".")
	if !isIdent(parts[0]) {
		return nil, fmt.Errorf("exprval: invalid expression %q", expr)
	}
	val, ok := src.Lookup(parts[0])
	if !ok {
		return nil, fmt.Errorf("exprval: undefined variable %q", parts[0])
	}
	for _, part := range parts[1:] {
		next, err := attr(val, part)
		if err != nil {
			return nil, fmt.Errorf("exprval: %q: %w", expr, err)
		}
		val = next
	}
	return val, nil
}

// attr resolves one path segment on a value: map key, struct field, or
// slice/array index.
func attr(val any, name string) (any, error) {
	if val == nil {
		return nil, fmt.Errorf("cannot access %q on nil", name)
	}

	rv := reflect.ValueOf(val)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("cannot access %q on nil", name)
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		mv := rv.MapIndex(reflect.ValueOf(name))
		if !mv.IsValid() {
			return nil, fmt.Errorf("no key %q", name)
		}
		return mv.Interface(), nil
	case reflect.Struct:
		fv := rv.FieldByName(name)
		if !fv.IsValid() || !fv.CanInterface() {
			return nil, fmt.Errorf("no field %q", name)
		}
		return fv.Interface(), nil
	case reflect.Slice, reflect.Array:
		idx, err := strconv.Atoi(name)
		if err != nil {
			return nil, fmt.Errorf("no attribute %q on %s", name, rv.Kind())
		}
		if idx < 0 || idx >= rv.Len() {
			return nil, fmt.Errorf("index %d out of range", idx)
		}
		return rv.Index(idx).Interface(), nil
	default:
		return nil, fmt.Errorf("no attribute %q on %s", name, rv.Kind())
	}
}

// Truthy reports whether a value counts as true in a template condition:
// false for nil, false, zero numbers, empty strings, and empty
// slices/maps/arrays.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
