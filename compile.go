package tplcmp

import "strings"

// Flag vocabularies per structural tag. Bare words outside these sets are
// positional arguments.
var (
	componentFlags = map[string]bool{"only": true}
	slotFlags      = map[string]bool{"default": true, "required": true}
	fillFlags      = map[string]bool{}
)

// CompileOptions adjusts template compilation.
type CompileOptions struct {
	// BlockTags lists foreign tags that take a body terminated by a
	// matching end tag ({% for %}...{% endfor %}). Foreign tags not listed
	// here compile as inline nodes with no body. Defaults to
	// DefaultBlockTags when nil.
	BlockTags []string
}

// DefaultBlockTags returns the foreign block tags known out of the box.
func DefaultBlockTags() []string {
	return []string{"for", "if", "with"}
}

// Compile builds the immutable node tree for a template source. The
// returned Template is safe for concurrent use by any number of renders.
func Compile(name, source string) (*Template, error) {
	return CompileWithOptions(name, source, CompileOptions{})
}

// CompileWithOptions is Compile with explicit options.
func CompileWithOptions(name, source string, opts CompileOptions) (*Template, error) {
	tokens, err := Lex(source)
	if err != nil {
		return nil, err
	}

	blockTags := opts.BlockTags
	if blockTags == nil {
		blockTags = DefaultBlockTags()
	}
	blocks := make(map[string]bool, len(blockTags))
	for _, t := range blockTags {
		blocks[t] = true
	}

	c := &compiler{tokens: tokens, source: source, blocks: blocks}
	nodes, _, err := c.parseList("", Position{Line: 1, Col: 1})
	if err != nil {
		return nil, err
	}

	t := &Template{Name: name, Source: source, Nodes: nodes, slotNames: map[string]bool{}}
	collectSlotInfo(t, nodes)
	return t, nil
}

// collectSlotInfo inventories the slots a template declares, descending
// through foreign blocks, slot fallbacks, and nested bodies, since a slot
// several levels inside a conditional still resolves at render time.
func collectSlotInfo(t *Template, nodes NodeList) {
	for _, node := range nodes {
		switch n := node.(type) {
		case *SlotNode:
			if name, ok := literalString(n.NameExpr); ok {
				t.slotNames[name] = true
				if n.Default {
					t.defaultSlot = true
				}
			} else {
				t.dynamicSlots = true
			}
			collectSlotInfo(t, n.Fallback)
		case *ForeignNode:
			collectSlotInfo(t, n.Body)
		case *ComponentNode:
			collectSlotInfo(t, n.Body)
		case *FillNode:
			collectSlotInfo(t, n.Body)
		}
	}
}

type compiler struct {
	tokens []Token
	i      int
	source string
	blocks map[string]bool
}

// parseList consumes nodes until the named end tag at this nesting depth,
// or until the token stream ends when end is empty. It returns the end
// token so callers can recover the raw body span.
func (c *compiler) parseList(end string, openPos Position) (NodeList, Token, error) {
	var nodes NodeList

	for c.i < len(c.tokens) {
		tok := c.tokens[c.i]
		c.i++

		switch tok.Kind {
		case TokenText:
			nodes = append(nodes, &TextNode{Text: tok.Text, pos: tok.Pos})

		case TokenVariable:
			if tok.Text == "" {
				return nil, Token{}, syntaxErrorf(tok.Pos, "empty variable token")
			}
			nodes = append(nodes, &VariableNode{Expr: tok.Text, pos: tok.Pos})

		case TokenTag:
			name := tagName(tok.Text)
			if name == end {
				return nodes, tok, nil
			}
			if strings.HasPrefix(name, "end") {
				return nil, Token{}, syntaxErrorf(tok.Pos, "unexpected {%% %s %%}", name)
			}
			node, err := c.parseTag(tok, name)
			if err != nil {
				return nil, Token{}, err
			}
			nodes = append(nodes, node)
		}
	}

	if end != "" {
		return nil, Token{}, syntaxErrorf(openPos, "unterminated tag: missing {%% %s %%}", end)
	}
	return nodes, Token{}, nil
}

func (c *compiler) parseTag(tok Token, name string) (Node, error) {
	switch name {
	case "component":
		inv, err := parseTagToken(tok, componentFlags)
		if err != nil {
			return nil, err
		}
		if len(inv.Args) == 0 {
			return nil, syntaxErrorf(tok.Pos, "component tag requires a name argument")
		}
		n := &ComponentNode{Inv: inv}
		if !inv.SelfClosing {
			body, endTok, err := c.parseList("endcomponent", tok.Pos)
			if err != nil {
				return nil, err
			}
			n.Body = body
			inv.RawBody = c.source[tok.End():endTok.Pos.Offset]
		}
		return n, nil

	case "slot":
		inv, err := parseTagToken(tok, slotFlags)
		if err != nil {
			return nil, err
		}
		if len(inv.Args) == 0 {
			return nil, syntaxErrorf(tok.Pos, "slot tag requires a name argument")
		}
		n := &SlotNode{
			Inv:      inv,
			NameExpr: inv.Args[0].Expr,
			Default:  inv.HasFlag("default"),
			Required: inv.HasFlag("required"),
		}
		if !inv.SelfClosing {
			fallback, endTok, err := c.parseList("endslot", tok.Pos)
			if err != nil {
				return nil, err
			}
			n.Fallback = fallback
			inv.RawBody = c.source[tok.End():endTok.Pos.Offset]
		}
		return n, nil

	case "fill":
		inv, err := parseTagToken(tok, fillFlags)
		if err != nil {
			return nil, err
		}
		if len(inv.Args) == 0 {
			return nil, syntaxErrorf(tok.Pos, "fill tag requires a name argument")
		}
		n := &FillNode{Inv: inv, NameExpr: inv.Args[0].Expr}
		if n.DataVar, err = bindingName(inv, "data"); err != nil {
			return nil, err
		}
		if n.FallbackVar, err = bindingName(inv, "fallback"); err != nil {
			return nil, err
		}
		if !inv.SelfClosing {
			body, endTok, err := c.parseList("endfill", tok.Pos)
			if err != nil {
				return nil, err
			}
			n.Body = body
			inv.RawBody = c.source[tok.End():endTok.Pos.Offset]
		}
		return n, nil

	default:
		inv, err := parseTagToken(tok, nil)
		if err != nil {
			return nil, err
		}
		n := &ForeignNode{Inv: inv}
		if c.blocks[name] && !inv.SelfClosing {
			body, endTok, err := c.parseList("end"+name, tok.Pos)
			if err != nil {
				return nil, err
			}
			n.Body = body
			inv.RawBody = c.source[tok.End():endTok.Pos.Offset]
		}
		return n, nil
	}
}

// bindingName extracts a fill binding declaration (data="d",
// fallback="fb"), which must be a quoted string literal.
func bindingName(inv *Invocation, key string) (string, error) {
	kw, ok := inv.Last(key)
	if !ok {
		return "", nil
	}
	name, ok := literalString(kw.Expr)
	if !ok || name == "" {
		return "", syntaxErrorf(kw.Pos, "%s binding must be a quoted variable name, got %s", key, kw.Expr)
	}
	return name, nil
}

// tagName returns the leading identifier of tag text.
func tagName(text string) string {
	for i := 0; i < len(text); i++ {
		if !isWordByte(text[i]) {
			return text[:i]
		}
	}
	return text
}

// literalString unquotes a string literal expression, reporting whether
// the expression was one.
func literalString(expr string) (string, bool) {
	if len(expr) < 2 {
		return "", false
	}
	q := expr[0]
	if (q == '"' || q == '\'') && expr[len(expr)-1] == q {
		return expr[1 : len(expr)-1], true
	}
	return "", false
}
