package tplcmp

import "strings"

// Arg is one positional argument expression of a tag invocation.
type Arg struct {
	Expr string
	Pos  Position
}

// Kwarg is one keyword argument occurrence. Keys may repeat across a tag;
// every occurrence is preserved in declaration order and downstream
// consumers choose the merge policy. A key containing the aggregate
// separator (e.g. "attrs:class") contributes to a nested mapping argument
// named after the prefix. Spread marks a "...expr" occurrence whose mapping
// value expands into keyword arguments at this position.
type Kwarg struct {
	Key    string
	Expr   string
	Spread bool
	Pos    Position
}

// AggregateSep separates the prefix from the subkey in aggregate keyword
// arguments ("attrs:id" contributes subkey "id" to the "attrs" mapping).
const AggregateSep = ":"

// Invocation is the parsed form of one tag occurrence: ordered positional
// arguments, ordered keyword occurrences (repeats kept), boolean flags,
// and the body span for block tags. Invocations are built once at compile
// time and shared read-only across renders; nothing may mutate them
// afterwards.
type Invocation struct {
	Name        string
	Args        []Arg
	Kwargs      []Kwarg
	Flags       []string
	SelfClosing bool
	Pos         Position

	// RawBody is the verbatim source between the opening tag and its end
	// tag. Empty for self-closing and inline tags.
	RawBody string
}

// HasFlag reports whether the bare-word flag was present on the tag.
func (inv *Invocation) HasFlag(name string) bool {
	for _, f := range inv.Flags {
		if f == name {
			return true
		}
	}
	return false
}

// Last returns the final occurrence of key, implementing the last-wins
// merge policy for scalar settings.
func (inv *Invocation) Last(key string) (Kwarg, bool) {
	for i := len(inv.Kwargs) - 1; i >= 0; i-- {
		if !inv.Kwargs[i].Spread && inv.Kwargs[i].Key == key {
			return inv.Kwargs[i], true
		}
	}
	return Kwarg{}, false
}

// Values returns every occurrence of key in declaration order, for
// accumulate-style merge policies (class-name-like attributes).
func (inv *Invocation) Values(key string) []string {
	var out []string
	for _, kw := range inv.Kwargs {
		if !kw.Spread && kw.Key == key {
			out = append(out, kw.Expr)
		}
	}
	return out
}

// JoinValues joins every occurrence of key with sep, in declaration order.
func (inv *Invocation) JoinValues(key, sep string) string {
	return strings.Join(inv.Values(key), sep)
}
