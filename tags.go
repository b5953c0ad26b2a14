package tplcmp

import (
	"fmt"
	"io"
	"reflect"
	"sort"
)

// Built-in handlers for the default foreign block tags. They carry just
// enough control-flow semantics to exercise composition - fills produced
// inside loops and conditionals - while a full host templating language
// would register its own handlers over these.
func registerBuiltinTags(r *Registry) {
	r.RegisterTag("for", TagHandlerFunc(forTag))
	r.RegisterTag("if", TagHandlerFunc(ifTag))
	r.RegisterTag("with", TagHandlerFunc(withTag))
}

// forTag renders {% for name in expr %}...{% endfor %}, binding name and
// a "forloop" counter frame per iteration.
func forTag(rc *RenderContext, inv *Invocation, body NodeList, w io.Writer) error {
	if len(inv.Args) != 3 || inv.Args[1].Expr != "in" {
		return fmt.Errorf("tplcmp: %s: for tag expects 'for <var> in <expr>'", inv.Pos)
	}
	varName := inv.Args[0].Expr

	coll, err := rc.Eval(inv.Args[2].Expr)
	if err != nil {
		return fmt.Errorf("tplcmp: %s: %w", inv.Args[2].Pos, err)
	}
	items, err := iterate(coll)
	if err != nil {
		return fmt.Errorf("tplcmp: %s: for %q: %w", inv.Pos, inv.Args[2].Expr, err)
	}

	for i, item := range items {
		frame := map[string]any{
			varName: item,
			"forloop": map[string]any{
				"index":  i + 1,
				"index0": i,
				"first":  i == 0,
				"last":   i == len(items)-1,
			},
		}
		if err := rc.WithScope(rc.Scope().Extend(frame)).RenderNodes(body, w); err != nil {
			return err
		}
	}
	return nil
}

// ifTag renders {% if expr %} or {% if not expr %} bodies when the
// condition holds. No else branch; hosts wanting one register their own
// handler.
func ifTag(rc *RenderContext, inv *Invocation, body NodeList, w io.Writer) error {
	negate := false
	args := inv.Args
	if len(args) == 2 && args[0].Expr == "not" {
		negate = true
		args = args[1:]
	}
	if len(args) != 1 {
		return fmt.Errorf("tplcmp: %s: if tag expects a single condition", inv.Pos)
	}

	v, err := rc.Eval(args[0].Expr)
	if err != nil {
		return fmt.Errorf("tplcmp: %s: %w", args[0].Pos, err)
	}
	if Truthy(v) != negate {
		return rc.RenderNodes(body, w)
	}
	return nil
}

// withTag renders its body with the tag's keyword arguments pushed as an
// extra scope frame.
func withTag(rc *RenderContext, inv *Invocation, body NodeList, w io.Writer) error {
	frame, _, err := rc.bindKwargs(inv.Kwargs)
	if err != nil {
		return err
	}
	return rc.WithScope(rc.Scope().Extend(frame)).RenderNodes(body, w)
}

// iterate flattens a collection value into a slice of elements. Maps
// iterate by sorted key to keep renders deterministic.
func iterate(v any) ([]any, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, nil
	case reflect.Map:
		keys := make([]string, 0, rv.Len())
		byKey := make(map[string]any, rv.Len())
		for _, k := range rv.MapKeys() {
			ks := fmt.Sprint(k.Interface())
			keys = append(keys, ks)
			byKey[ks] = rv.MapIndex(k).Interface()
		}
		sort.Strings(keys)
		items := make([]any, 0, len(keys))
		for _, k := range keys {
			items = append(items, byKey[k])
		}
		return items, nil
	default:
		return nil, fmt.Errorf("cannot iterate %T", v)
	}
}
