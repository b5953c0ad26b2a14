package tplcmp

import "strings"

// ParseTag parses the inside of a {% ... %} token into an Invocation.
// pos must locate the first character of text in the template source.
//
// Grammar, in order of recognition:
//
//	name arg... key=value... flag... [/]
//
// Positional arguments must precede keyword arguments. Keywords may
// repeat; every occurrence is preserved. "...expr" spreads a mapping into
// keyword arguments at that point. Bare words listed in knownFlags are
// boolean flags and may appear anywhere after the name; any other bare
// word is a positional argument. A trailing "/" marks the tag
// self-closing.
//
// Parsing is pure: no I/O and no scope access. Failures name the
// offending token and its position.
func ParseTag(text string, pos Position, knownFlags map[string]bool) (*Invocation, error) {
	s := tagScanner{text: text, pos: pos}

	s.skipSpace()
	name, namePos := s.readWord()
	if name == "" {
		return nil, syntaxErrorf(namePos, "empty tag")
	}

	inv := &Invocation{Name: name, Pos: pos}
	sawKwarg := false

	for {
		s.skipSpace()
		if s.done() {
			return inv, nil
		}
		start := s.position()

		if s.peek() == '/' {
			s.next()
			s.skipSpace()
			if !s.done() {
				return nil, syntaxErrorf(start, "self-closing marker must end the tag")
			}
			inv.SelfClosing = true
			return inv, nil
		}

		if strings.HasPrefix(s.rest(), "...") {
			s.skip(3)
			expr, err := s.readExpr(false)
			if err != nil {
				return nil, err
			}
			if expr == "" {
				return nil, syntaxErrorf(start, "expected expression after spread operator")
			}
			inv.Kwargs = append(inv.Kwargs, Kwarg{Expr: expr, Spread: true, Pos: start})
			sawKwarg = true
			continue
		}

		expr, err := s.readExpr(true)
		if err != nil {
			return nil, err
		}
		if expr == "" {
			return nil, syntaxErrorf(start, "unexpected character %q", s.peek())
		}

		if !s.done() && s.peek() == '=' {
			s.next()
			if !isValidKey(expr) {
				return nil, syntaxErrorf(start, "invalid keyword name %q", expr)
			}
			valPos := s.position()
			val, err := s.readExpr(false)
			if err != nil {
				return nil, err
			}
			if val == "" {
				return nil, syntaxErrorf(valPos, "expected value after %q=", expr)
			}
			inv.Kwargs = append(inv.Kwargs, Kwarg{Key: expr, Expr: val, Pos: start})
			sawKwarg = true
			continue
		}

		if knownFlags[expr] {
			inv.Flags = append(inv.Flags, expr)
			continue
		}
		if sawKwarg {
			return nil, syntaxErrorf(start, "positional argument %q after keyword argument", expr)
		}
		inv.Args = append(inv.Args, Arg{Expr: expr, Pos: start})
	}
}

// parseTagToken parses a lexed tag token, deriving the inner position from
// the token's delimiters.
func parseTagToken(tok Token, knownFlags map[string]bool) (*Invocation, error) {
	inner := innerPosition(tok)
	inv, err := ParseTag(tok.Text, inner, knownFlags)
	if err != nil {
		return nil, err
	}
	inv.Pos = tok.Pos
	return inv, nil
}

// innerPosition locates the first character of the trimmed tag text
// within the token's raw source.
func innerPosition(tok Token) Position {
	lead := 2 // opening delimiter
	for lead < len(tok.Raw) && (tok.Raw[lead] == ' ' || tok.Raw[lead] == '\t' || tok.Raw[lead] == '\n') {
		lead++
	}
	pos := tok.Pos
	for _, r := range tok.Raw[:lead] {
		if r == '\n' {
			pos.Line++
			pos.Col = 1
		} else {
			pos.Col++
		}
	}
	pos.Offset += lead
	return pos
}

// tagScanner walks tag text tracking line/col for error reporting.
type tagScanner struct {
	text string
	i    int
	pos  Position
}

func (s *tagScanner) done() bool { return s.i >= len(s.text) }

func (s *tagScanner) peek() byte {
	if s.done() {
		return 0
	}
	return s.text[s.i]
}

func (s *tagScanner) rest() string { return s.text[s.i:] }

func (s *tagScanner) position() Position { return s.pos }

func (s *tagScanner) next() byte {
	c := s.text[s.i]
	s.i++
	if c == '\n' {
		s.pos.Line++
		s.pos.Col = 1
	} else {
		s.pos.Col++
	}
	s.pos.Offset++
	return c
}

func (s *tagScanner) skip(n int) {
	for j := 0; j < n && !s.done(); j++ {
		s.next()
	}
}

func (s *tagScanner) skipSpace() {
	for !s.done() {
		switch s.peek() {
		case ' ', '\t', '\n', '\r':
			s.next()
		default:
			return
		}
	}
}

// readWord reads a run of identifier characters.
func (s *tagScanner) readWord() (string, Position) {
	start := s.position()
	begin := s.i
	for !s.done() && isWordByte(s.peek()) {
		s.next()
	}
	return s.text[begin:s.i], start
}

// readExpr reads one argument expression: a quoted string (quotes kept so
// the evaluator sees a literal) or a run of non-space characters. When
// stopAtEq is set, an unquoted '=' terminates the expression so the caller
// can detect a keyword argument. An unclosed quote is a syntax error
// reported at the opening quote.
func (s *tagScanner) readExpr(stopAtEq bool) (string, error) {
	begin := s.i
	for !s.done() {
		c := s.peek()
		switch {
		case c == '"' || c == '\'':
			quotePos := s.position()
			quote := s.next()
			for !s.done() && s.peek() != quote {
				s.next()
			}
			if s.done() {
				return "", syntaxErrorf(quotePos, "unterminated string literal")
			}
			s.next()
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			return s.text[begin:s.i], nil
		case stopAtEq && c == '=':
			return s.text[begin:s.i], nil
		default:
			s.next()
		}
	}
	return s.text[begin:s.i], nil
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// isValidKey accepts identifier-style keys with optional aggregate
// separator and dash/dot characters common in attribute names.
func isValidKey(key string) bool {
	if key == "" {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if isWordByte(c) || c == '-' || c == '.' || c == AggregateSep[0] {
			continue
		}
		return false
	}
	return key[0] != AggregateSep[0] && key[len(key)-1] != AggregateSep[0]
}
