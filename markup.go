package tplcmp

import "strings"

// MarkerAttr is the attribute added to the first root-level element of
// every component render. External passes locate component boundaries by
// this marker instead of re-parsing markup semantics.
const MarkerAttr = "data-tplc-id"

// injectMarker stamps a component's output with its render identifier.
// The marker lands on the first top-level element's open tag; output with
// no element at all (bare text, comment-only) is bracketed with marker
// comments instead, so the boundary stays recoverable.
func injectMarker(html, id string) string {
	i := 0
	for i < len(html) {
		lt := strings.IndexByte(html[i:], '<')
		if lt < 0 {
			break
		}
		j := i + lt

		if strings.HasPrefix(html[j:], "<!--") {
			end := strings.Index(html[j+4:], "-->")
			if end < 0 {
				break
			}
			i = j + 4 + end + 3
			continue
		}

		if j+1 < len(html) && isTagStart(html[j+1]) {
			gt := strings.IndexByte(html[j:], '>')
			if gt < 0 {
				break
			}
			if strings.Contains(html[j:j+gt], MarkerAttr+`="`) {
				// The root element is a child component's root and already
				// carries its marker; a second attribute of the same name
				// would be invalid HTML and parsers drop it. Bracket with
				// comments so both boundaries stay recoverable.
				break
			}
			insert := j + gt
			if html[insert-1] == '/' {
				insert--
			}
			return html[:insert] + ` ` + MarkerAttr + `="` + Escape(id) + `"` + html[insert:]
		}

		// Doctype, processing instruction, or stray '<': keep scanning.
		i = j + 1
	}

	return "<!--tplc:" + id + "-->" + html + "<!--/tplc:" + id + "-->"
}

func isTagStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
