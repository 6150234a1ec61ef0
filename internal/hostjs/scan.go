// Package hostjs parses the JavaScript that surrounds JSX markup.
//
// It uses the tree-sitter JavaScript grammar to find every outermost JSX
// expression in a file, report grammar errors with a location, locate the end
// of the import block, and describe embedded `{...}` expressions so the
// compiler can decide whether they are static or reactive.
package hostjs

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
)

// Region is the byte range of one outermost JSX expression.
//
// Start and End cover the markup itself. OuterStart and OuterEnd additionally
// cover redundant parentheses wrapping it, which the compiler replaces along
// with the markup.
type Region struct {
	Start      int
	End        int
	OuterStart int
	OuterEnd   int
}

// File is the result of scanning a host source file.
type File struct {
	Regions []Region

	// Containers maps the offset of every '{' that opens a JSX expression
	// container to the offset just past its closing '}'.
	Containers map[int]int

	// HeaderOffset is where generated declarations go: directly after the last
	// top-level import, or after a leading shebang line, or 0.
	HeaderOffset int
}

// SyntaxError is a JavaScript grammar error found by the host parser.
type SyntaxError struct {
	Offset  int
	Line    int // 1-based
	Column  int // 1-based, in bytes
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Message)
}

// parse runs the JavaScript grammar over src.
func parse(ctx context.Context, src []byte) (*sitter.Node, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(javascript.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("parsing javascript: %w", err)
	}
	return tree.RootNode(), nil
}

// Scan parses src and locates its JSX regions.
// A grammar error is returned as a *SyntaxError.
func Scan(ctx context.Context, src []byte) (*File, error) {
	root, err := parse(ctx, src)
	if err != nil {
		return nil, err
	}
	if root.HasError() {
		return nil, firstSyntaxError(root, src, 0)
	}

	f := &File{HeaderOffset: headerOffset(root, src)}
	f.Regions = collectRegions(root, root, 0)
	f.Containers = collectContainers(root)
	return f, nil
}

func collectContainers(root *sitter.Node) map[int]int {
	containers := make(map[int]int)
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "jsx_expression" {
			containers[int(n.StartByte())] = int(n.EndByte())
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil {
				walk(c)
			}
		}
	}
	walk(root)
	return containers
}

// collectRegions walks n and returns the outermost JSX nodes, shifted by
// delta so callers can report offsets relative to their own buffers.
// Parentheses are only absorbed while they stay inside limit.
func collectRegions(n, limit *sitter.Node, delta int) []Region {
	var regions []Region
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if isJSX(n) {
			start, end := int(n.StartByte()), int(n.EndByte())
			outer := widenParens(n, limit)
			regions = append(regions, Region{
				Start:      start + delta,
				End:        end + delta,
				OuterStart: int(outer.StartByte()) + delta,
				OuterEnd:   int(outer.EndByte()) + delta,
			})
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil {
				walk(c)
			}
		}
	}
	walk(n)
	return regions
}

func isJSX(n *sitter.Node) bool {
	switch n.Type() {
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return true
	}
	return false
}

// statementParens lists the nodes whose parenthesized child is part of the
// statement syntax rather than a grouping expression.
var statementParens = map[string]bool{
	"if_statement":     true,
	"while_statement":  true,
	"do_statement":     true,
	"switch_statement": true,
	"with_statement":   true,
	"for_in_statement": true,
}

// widenParens climbs out of parenthesized expressions that wrap only n.
func widenParens(n, limit *sitter.Node) *sitter.Node {
	outer := n
	for {
		p := outer.Parent()
		if p == nil || p.Type() != "parenthesized_expression" || p.NamedChildCount() != 1 {
			return outer
		}
		if p.StartByte() < limit.StartByte() || p.EndByte() > limit.EndByte() {
			return outer
		}
		if gp := p.Parent(); gp != nil && statementParens[gp.Type()] {
			return outer
		}
		outer = p
	}
}

// headerOffset finds the insertion point for generated declarations.
func headerOffset(root *sitter.Node, src []byte) int {
	offset := 0
	if len(src) > 1 && src[0] == '#' && src[1] == '!' {
		for offset < len(src) && src[offset] != '\n' {
			offset++
		}
		if offset < len(src) {
			offset++
		}
	}
	for i := 0; i < int(root.NamedChildCount()); i++ {
		c := root.NamedChild(i)
		if c == nil || c.Type() != "import_statement" {
			continue
		}
		end := int(c.EndByte())
		if end < len(src) && src[end] == '\n' {
			end++
		}
		if end > offset {
			offset = end
		}
	}
	return offset
}

// firstSyntaxError returns the first ERROR or MISSING node in document order.
// delta is subtracted from reported offsets.
func firstSyntaxError(root *sitter.Node, src []byte, delta int) *SyntaxError {
	var found *sitter.Node
	var walk func(n *sitter.Node) bool
	walk = func(n *sitter.Node) bool {
		if n.Type() == "ERROR" || n.IsMissing() {
			found = n
			return true
		}
		if !n.HasError() {
			return false
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil && walk(c) {
				return true
			}
		}
		return false
	}
	if !walk(root) {
		found = root
	}

	at := found
	open := unclosedTag(found)
	if open != nil {
		at = open
	}
	pt := at.StartPoint()
	se := &SyntaxError{
		Offset: int(at.StartByte()) - delta,
		Line:   int(pt.Row) + 1,
		Column: int(pt.Column) + 1,
	}
	switch {
	case open != nil:
		if name := open.ChildByFieldName("name"); name != nil {
			se.Message = fmt.Sprintf("unterminated element <%s>", name.Content(src))
		} else {
			se.Message = "unterminated fragment"
		}
	case found.IsMissing():
		se.Message = fmt.Sprintf("missing %q", found.Type())
	case found.Type() == "ERROR":
		se.Message = fmt.Sprintf("unexpected %s", snippet(src, found))
	default:
		se.Message = "syntax error"
	}
	return se
}

// unclosedTag returns the innermost opening tag inside an error node that
// has no matching closing tag, or nil.
func unclosedTag(n *sitter.Node) *sitter.Node {
	if n.Type() != "ERROR" {
		return nil
	}
	var last *sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "jsx_opening_element" && !closed(n) {
			last = n
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			if c := n.Child(i); c != nil {
				walk(c)
			}
		}
	}
	walk(n)
	return last
}

func closed(open *sitter.Node) bool {
	p := open.Parent()
	if p == nil || p.Type() != "jsx_element" {
		return false
	}
	for i := 0; i < int(p.ChildCount()); i++ {
		if c := p.Child(i); c != nil && c.Type() == "jsx_closing_element" && !c.IsMissing() && !c.HasError() {
			return true
		}
	}
	return false
}

// snippet quotes the first line of a node's text, truncated.
func snippet(src []byte, n *sitter.Node) string {
	text := n.Content(src)
	for i, r := range text {
		if r == '\n' {
			text = text[:i]
			break
		}
	}
	if len(text) > 24 {
		text = text[:24] + "..."
	}
	if text == "" {
		return "end of input"
	}
	return fmt.Sprintf("%q", text)
}
