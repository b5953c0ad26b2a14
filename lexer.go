package tplcmp

import "strings"

// Lex splits template source into text, variable, and tag tokens with
// source positions. It does not interpret tag contents; that is the tag
// grammar parser's job. An unterminated {{ or {% is a syntax error
// reported at the opening delimiter.
func Lex(source string) ([]Token, error) {
	var (
		tokens []Token
		line   = 1
		col    = 1
		i      = 0
	)

	advance := func(s string) {
		for _, r := range s {
			if r == '\n' {
				line++
				col = 1
			} else {
				col++
			}
		}
		i += len(s)
	}

	for i < len(source) {
		pos := Position{Line: line, Col: col, Offset: i}

		varIdx := strings.Index(source[i:], "{{")
		tagIdx := strings.Index(source[i:], "{%")

		next := varIdx
		kind := TokenVariable
		closer := "}}"
		if next < 0 || (tagIdx >= 0 && tagIdx < next) {
			next = tagIdx
			kind = TokenTag
			closer = "%}"
		}

		if next < 0 {
			// No more delimiters; the remainder is text.
			tokens = append(tokens, Token{Kind: TokenText, Text: source[i:], Raw: source[i:], Pos: pos})
			break
		}

		if next > 0 {
			text := source[i : i+next]
			tokens = append(tokens, Token{Kind: TokenText, Text: text, Raw: text, Pos: pos})
			advance(text)
			pos = Position{Line: line, Col: col, Offset: i}
		}

		end := strings.Index(source[i+2:], closer)
		if end < 0 {
			what := "variable"
			if kind == TokenTag {
				what = "tag"
			}
			return nil, syntaxErrorf(pos, "unterminated %s token", what)
		}

		raw := source[i : i+2+end+2]
		inner := strings.TrimSpace(source[i+2 : i+2+end])
		tokens = append(tokens, Token{Kind: kind, Text: inner, Raw: raw, Pos: pos})
		advance(raw)
	}

	return tokens, nil
}
