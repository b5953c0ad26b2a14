package tplcmp

// RenderResult is the outcome of one successful top-level render call:
// the finished markup plus the manifest external passes consume. A failed
// render returns an error and no partial result.
type RenderResult struct {
	HTML     string
	Manifest *Manifest
}
