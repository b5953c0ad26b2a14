package tplcmp

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// cacheIdentity is the stable description of "what was rendered" for one
// component occurrence: the component name, its argument values, and an
// identity for each fill's content source - not the evaluated output.
type cacheIdentity struct {
	Component string         `msgpack:"c"`
	Args      []any          `msgpack:"a"`
	Kwargs    map[string]any `msgpack:"k"`
	Fills     []fillIdentity `msgpack:"f"`
}

type fillIdentity struct {
	Name string `msgpack:"n"`
	Kind string `msgpack:"t"`
	Ref  string `msgpack:"r"`
}

// CacheKey derives a stable identity for a component render from its
// instance: equal inputs yield equal keys across processes, so an
// external cache can decide whether an equivalent render already exists.
// The engine itself never caches.
//
// Fill identity uses the fill's source (template position for captured
// bodies, a content digest for string fills), deliberately not the
// rendered output - the whole point is deciding whether to render at all.
// Opaque templ fills contribute only their slot name; renders carrying
// them should generally not be cached. Argument values must be
// msgpack-serializable.
func CacheKey(inst *Instance) (string, error) {
	ident := cacheIdentity{
		Component: inst.Component(),
		Args:      inst.Args(),
		Kwargs:    inst.kwargs,
	}
	for _, name := range inst.Fills().Names() {
		f, _ := inst.Fills().Get(name)
		ident.Fills = append(ident.Fills, identifyFill(f))
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(ident); err != nil {
		return "", fmt.Errorf("tplcmp: cache key for %q: %w", inst.Component(), err)
	}

	sum := sha256.Sum256(buf.Bytes())
	return hex.EncodeToString(sum[:16]), nil
}

func identifyFill(f *Fill) fillIdentity {
	switch {
	case f.Body != nil:
		return fillIdentity{Name: f.Name, Kind: "nodes", Ref: fmt.Sprintf("%s+%d", f.pos, len(f.Body))}
	case f.hasContent:
		sum := sha256.Sum256([]byte(f.Content))
		return fillIdentity{Name: f.Name, Kind: "string", Ref: hex.EncodeToString(sum[:8])}
	default:
		return fillIdentity{Name: f.Name, Kind: "func"}
	}
}
