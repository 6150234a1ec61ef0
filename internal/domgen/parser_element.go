package domgen

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// parseTag parses an element, component or fragment.
// The current token is '<'. On return the current token is the final '>' or
// '/>' of the construct; the caller reads on in its own lexing mode.
func (p *Parser) parseTag() Node {
	pos := p.pos()
	p.next()

	if p.current.Type == TokenRAngle {
		children, ok := p.parseChildren("")
		if !ok {
			return nil
		}
		p.next()
		if p.current.Type == TokenIdent {
			p.errors.AddErrorf(p.pos(), "mismatched closing tag: expected </>, got </%s>", p.current.Literal)
			return nil
		}
		if !p.expect(TokenRAngle, "'>'") {
			return nil
		}
		return &Fragment{Children: children, Position: pos}
	}

	if !p.expect(TokenIdent, "tag name") {
		return nil
	}
	name := p.current.Literal
	if strings.HasSuffix(name, ".") || strings.Contains(name, "..") {
		p.errors.AddErrorf(p.pos(), "invalid tag name %q", name)
		return nil
	}
	p.next()

	attrs, ok := p.parseAttributes()
	if !ok {
		return nil
	}

	var children []Node
	selfClosing := false
	switch p.current.Type {
	case TokenSlashAngle:
		selfClosing = true
	case TokenRAngle:
		children, ok = p.parseChildren(name)
		if !ok {
			return nil
		}
		closePos := p.pos()
		p.next()
		if p.current.Type != TokenIdent || p.current.Literal != name {
			got := ""
			if p.current.Type == TokenIdent {
				got = p.current.Literal
			}
			p.errors.Add(NewErrorWithHint(closePos,
				"mismatched closing tag: expected </"+name+">, got </"+got+">",
				"<"+name+"> opened at "+pos.String()))
			return nil
		}
		p.next()
		if !p.expect(TokenRAngle, "'>'") {
			return nil
		}
	default:
		p.expect(TokenRAngle, "'>' or '/>'")
		return nil
	}

	if isComponentName(name) {
		return &Component{Name: name, Attributes: attrs, Children: children, Position: pos}
	}
	return &Element{Tag: name, Attributes: attrs, Children: children, SelfClosing: selfClosing, Position: pos}
}

// isComponentName reports whether a tag names a component rather than markup.
func isComponentName(name string) bool {
	if strings.Contains(name, ".") {
		return true
	}
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}

// parseAttributes parses attributes until '>' or '/>'.
func (p *Parser) parseAttributes() ([]Attr, bool) {
	var attrs []Attr
	for {
		switch p.current.Type {
		case TokenIdent:
			attr, ok := p.parseAttribute()
			if !ok {
				return nil, false
			}
			attrs = append(attrs, attr)
		case TokenLBrace:
			spread, ok := p.parseSpread()
			if !ok {
				return nil, false
			}
			attrs = append(attrs, spread)
			p.next()
		default:
			return attrs, true
		}
	}
}

// parseAttribute parses name, name="v", name={expr} or name=<markup/>.
// On return the current token follows the attribute.
func (p *Parser) parseAttribute() (*Attribute, bool) {
	attr := &Attribute{Name: p.current.Literal, Position: p.pos()}
	if strings.Contains(attr.Name, ".") {
		p.errors.AddErrorf(attr.Position, "invalid attribute name %q", attr.Name)
		return nil, false
	}
	p.next()

	if p.current.Type != TokenEquals {
		attr.Value = &BoolLit{Value: true}
		return attr, true
	}
	p.next()

	switch p.current.Type {
	case TokenString:
		attr.Value = &StringLit{Value: html.UnescapeString(p.current.Literal)}
	case TokenLBrace:
		e, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if e == nil {
			p.errors.AddErrorf(attr.Position, "attribute %q has an empty expression", attr.Name)
			return nil, false
		}
		attr.Value = e
	case TokenLAngle:
		n := p.parseTag()
		if n == nil {
			return nil, false
		}
		attr.Value = n.(Value)
	default:
		p.expect(TokenString, "attribute value")
		return nil, false
	}
	p.next()
	return attr, true
}

// parseSpread parses {...expr}. The current token is '{'.
func (p *Parser) parseSpread() (*Spread, bool) {
	pos := p.pos()
	tok := p.lexer.ReadExpr()
	if tok.Type == TokenError {
		return nil, false
	}
	trimmed := strings.TrimLeft(tok.Literal, " \t\r\n")
	if !strings.HasPrefix(trimmed, "...") {
		p.errors.Add(NewErrorWithHint(pos, "expected spread attribute", "attributes inside braces must look like {...props}"))
		return nil, false
	}
	skip := len(tok.Literal) - len(trimmed) + 3
	e := p.newExpr(tok.Literal[skip:], tok.StartPos+skip)
	if e == nil {
		return nil, false
	}
	return &Spread{Expr: e, Position: pos}, true
}

// parseChildren parses children until the closing '</'.
// name is the open tag, or "" for a fragment.
func (p *Parser) parseChildren(name string) ([]Node, bool) {
	var children []Node
	for {
		p.nextChild()
		switch p.current.Type {
		case TokenText:
			if v := html.UnescapeString(cleanText(p.current.Literal)); v != "" {
				children = append(children, &Text{Value: v, Position: p.pos()})
			}
		case TokenLBrace:
			e, ok := p.parseExpr()
			if !ok {
				return nil, false
			}
			if e != nil {
				children = append(children, e)
			}
		case TokenLAngle:
			n := p.parseTag()
			if n == nil {
				return nil, false
			}
			children = append(children, n)
		case TokenLAngleSlash:
			return children, true
		case TokenEOF:
			if name == "" {
				p.errors.AddError(p.pos(), "unterminated fragment")
			} else {
				p.errors.AddErrorf(p.pos(), "unterminated element <%s>", name)
			}
			return nil, false
		default:
			return nil, false
		}
	}
}

// cleanText applies JSX whitespace rules to raw text: lines are trimmed
// except at the outer edges of the text, blank lines are dropped, and the
// remaining lines are joined by single spaces.
func cleanText(raw string) string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	lastNonEmpty := 0
	for i, line := range lines {
		if strings.Trim(line, " \t") != "" {
			lastNonEmpty = i
		}
	}

	var sb strings.Builder
	for i, line := range lines {
		line = strings.ReplaceAll(line, "\t", " ")
		if i > 0 {
			line = strings.TrimLeft(line, " ")
		}
		if i < len(lines)-1 {
			line = strings.TrimRight(line, " ")
		}
		if line == "" {
			continue
		}
		sb.WriteString(line)
		if i != lastNonEmpty {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
