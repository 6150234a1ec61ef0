package domgen

import (
	"context"
	"errors"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/grindlemire/go-domgen/internal/hostjs"
)

// Parser builds markup ASTs for the JSX regions of one host source file.
type Parser struct {
	ctx        context.Context
	filename   string
	source     string
	containers map[int]int
	lineStarts []int

	lexer   *Lexer
	current Token
	errors  *ErrorList
}

// NewParser creates a parser over source. containers comes from the host
// scan and may be nil, in which case expression extents are found lexically.
func NewParser(ctx context.Context, filename, source string, containers map[int]int) *Parser {
	lineStarts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}
	return &Parser{
		ctx:        ctx,
		filename:   filename,
		source:     source,
		containers: containers,
		lineStarts: lineStarts,
		errors:     NewErrorList(),
	}
}

// Errors returns the errors collected so far.
func (p *Parser) Errors() *ErrorList {
	return p.errors
}

// Parse parses every region found by the host scan.
func Parse(ctx context.Context, filename, source string, file *hostjs.File) ([]*Root, error) {
	p := NewParser(ctx, filename, source, file.Containers)
	roots := make([]*Root, 0, len(file.Regions))
	for _, r := range file.Regions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		root := p.ParseRegion(r)
		if root != nil {
			roots = append(roots, root)
		}
	}
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return roots, nil
}

// ParseRegion parses the markup of one region.
// Errors are collected and nil is returned on failure.
func (p *Parser) ParseRegion(r hostjs.Region) *Root {
	n := p.parseAt(r.Start, r.End)
	if n == nil {
		return nil
	}
	return &Root{Node: n, Start: r.OuterStart, End: r.OuterEnd}
}

// parseAt parses one markup expression spanning [start, end) of the source.
func (p *Parser) parseAt(start, end int) Node {
	sub := &Parser{
		ctx:        p.ctx,
		filename:   p.filename,
		source:     p.source,
		containers: p.containers,
		lineStarts: p.lineStarts,
		errors:     p.errors,
	}
	sub.lexer = NewLexerAt(p.filename, p.source, start)
	sub.lexer.containers = p.containers
	sub.lexer.errors = p.errors

	sub.next()
	if sub.current.Type != TokenLAngle {
		p.errors.AddErrorf(sub.pos(), "expected '<', got %s", sub.current.Type)
		return nil
	}
	n := sub.parseTag()
	if n == nil {
		return nil
	}
	if off := sub.lexer.Offset(); off != end {
		p.errors.AddError(p.posAt(off), "unexpected content after markup")
		return nil
	}
	return n
}

// next reads the next token in tag context.
func (p *Parser) next() {
	p.current = p.lexer.Next()
}

// nextChild reads the next token in children context.
func (p *Parser) nextChild() {
	p.current = p.lexer.NextChild()
}

// pos returns the position of the current token.
func (p *Parser) pos() Position {
	return Position{
		File:   p.filename,
		Line:   p.current.Line,
		Column: p.current.Column,
		Offset: p.current.StartPos,
	}
}

// posAt converts a host byte offset to a Position.
func (p *Parser) posAt(offset int) Position {
	line := sort.Search(len(p.lineStarts), func(i int) bool { return p.lineStarts[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	start := p.lineStarts[line]
	if offset > len(p.source) {
		offset = len(p.source)
	}
	return Position{
		File:   p.filename,
		Line:   line + 1,
		Column: utf8.RuneCountInString(p.source[start:offset]) + 1,
		Offset: offset,
	}
}

// expect reports an error unless the current token has type typ.
func (p *Parser) expect(typ TokenType, what string) bool {
	if p.current.Type == typ {
		return true
	}
	if p.current.Type != TokenError {
		p.errors.AddErrorf(p.pos(), "expected %s, got %s", what, describe(p.current))
	}
	return false
}

// describe formats a token for error messages.
func describe(t Token) string {
	switch t.Type {
	case TokenEOF:
		return "end of input"
	case TokenIdent, TokenString, TokenText:
		return t.Type.String() + " " + quoteSnippet(t.Literal)
	}
	return "'" + t.Type.String() + "'"
}

func quoteSnippet(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 20 {
		s = s[:17] + "..."
	}
	return "\"" + s + "\""
}

// parseExpr reads the expression after a '{' and builds an Expr.
// It returns (nil, true) for a comment-only container and (nil, false) on
// error.
func (p *Parser) parseExpr() (*Expr, bool) {
	tok := p.lexer.ReadExpr()
	if tok.Type == TokenError {
		return nil, false
	}
	if isCommentOnly(tok.Literal) {
		return nil, true
	}
	e := p.newExpr(tok.Literal, tok.StartPos)
	return e, e != nil
}

// newExpr analyzes code found at a host offset and parses markup nested in it.
func (p *Parser) newExpr(code string, offset int) *Expr {
	info, err := hostjs.Analyze(p.ctx, code)
	if err != nil {
		var se *hostjs.SyntaxError
		if errors.As(err, &se) {
			p.errors.AddErrorf(p.posAt(offset+min(max(se.Offset, 0), len(code))), "invalid expression: %s", se.Message)
		} else {
			p.errors.AddErrorf(p.posAt(offset), "invalid expression: %v", err)
		}
		return nil
	}

	e := &Expr{Code: code, Position: p.posAt(offset), Info: info}
	for _, r := range info.JSX {
		n := p.parseAt(offset+r.Start, offset+r.End)
		if n == nil {
			return nil
		}
		e.Embedded = append(e.Embedded, Embedded{Node: n, Start: r.OuterStart, End: r.OuterEnd})
	}
	return e
}
