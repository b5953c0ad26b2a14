package tplcmp

// ManifestEntry attributes one successful component render to its render
// identifier.
type ManifestEntry struct {
	RenderID  string
	Component string
}

// Manifest is the ordered record of every component occurrence rendered
// within one top-level render call. It is threaded explicitly through the
// call - never a process-wide singleton - and entries are appended only
// when a component render completes successfully, so an aborted call
// leaves no partial manifest behind.
//
// External collaborators consume it after the call finishes: an asset
// pass joins entries against component Media via the registry, a cache
// layer joins them against marker attributes in the markup.
type Manifest struct {
	entries []ManifestEntry
}

func (m *Manifest) add(renderID, component string) {
	m.entries = append(m.entries, ManifestEntry{RenderID: renderID, Component: component})
}

// Entries returns the manifest in render-completion order (children
// before their parents, since a parent finishes after its subtree).
func (m *Manifest) Entries() []ManifestEntry {
	return append([]ManifestEntry(nil), m.entries...)
}

// Components returns the distinct component names in first-completion
// order, for asset passes that only need "which components were used".
func (m *Manifest) Components() []string {
	seen := map[string]bool{}
	var names []string
	for _, e := range m.entries {
		if !seen[e.Component] {
			seen[e.Component] = true
			names = append(names, e.Component)
		}
	}
	return names
}
