package tplcmp

import "fmt"

// Position locates a token in template source. Offset is the byte offset
// into the source string; Line and Col are 1-based.
type Position struct {
	Line   int
	Col    int
	Offset int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// TokenKind discriminates the three lexical categories of a template.
type TokenKind int

const (
	// TokenText is literal markup between tags.
	TokenText TokenKind = iota
	// TokenVariable is a {{ expr }} output token.
	TokenVariable
	// TokenTag is a {% ... %} block or inline tag token.
	TokenTag
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenVariable:
		return "variable"
	case TokenTag:
		return "tag"
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// Token is one lexical unit of a template. Text holds the trimmed content
// (for variables and tags, the inside of the delimiters); Raw holds the
// verbatim source slice including delimiters, which the compiler uses to
// recover raw body spans for block tags.
type Token struct {
	Kind TokenKind
	Text string
	Raw  string
	Pos  Position
}

// End returns the byte offset just past this token in the source.
func (t Token) End() int {
	return t.Pos.Offset + len(t.Raw)
}
