package hostjs

import (
	"context"
	"math"
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ExprKind is the syntactic shape of an embedded expression.
type ExprKind int

const (
	KindOther ExprKind = iota
	KindLiteral
	KindIdentifier
	KindCall
	KindMember
	KindConditional
	KindLogical
	KindFunction
	KindJSX
	KindObject
	KindArray
)

var kindNames = map[ExprKind]string{
	KindOther:       "other",
	KindLiteral:     "literal",
	KindIdentifier:  "identifier",
	KindCall:        "call",
	KindMember:      "member",
	KindConditional: "conditional",
	KindLogical:     "logical",
	KindFunction:    "function",
	KindJSX:         "jsx",
	KindObject:      "object",
	KindArray:       "array",
}

func (k ExprKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Span is a half-open byte range relative to the analyzed code.
type Span struct {
	Start int
	End   int
}

// Branches describes a conditional or logical expression.
// For `a ? b : c` Op is "?", for `a && b` Op is "&&" and Else is empty.
type Branches struct {
	Op   string
	Test Span
	Then Span
	Else Span
}

// Expr describes one embedded JavaScript expression.
type Expr struct {
	Kind ExprKind

	// Constant is set when every value in the expression is a literal.
	Constant bool

	// Reactive is set when the expression calls a function or reads a member
	// outside any nested function or markup.
	Reactive bool

	// Value holds the text of a literal that can be placed verbatim in markup.
	// Inline reports whether Value is usable.
	Value  string
	Inline bool

	// Nullish is set for null, undefined and boolean literals, which render
	// nothing as children.
	Nullish bool

	// Callee is the callee name of a zero-argument call like `count()`.
	Callee string

	Branches *Branches

	// JSX lists the outermost markup regions nested in the expression.
	JSX []Region
}

// Analyze parses code as a single JavaScript expression and describes it.
// Offsets in the result are relative to code.
func Analyze(ctx context.Context, code string) (*Expr, error) {
	// The newline keeps a trailing line comment from swallowing the paren.
	wrapped := "(" + code + "\n)"
	src := []byte(wrapped)
	root, err := parse(ctx, src)
	if err != nil {
		return nil, err
	}
	if root.HasError() {
		return nil, firstSyntaxError(root, src, 1)
	}

	n := unwrap(root)
	if n == nil {
		return nil, &SyntaxError{Line: 1, Column: 1, Message: "expected an expression"}
	}

	a := &analysis{src: src}
	e := &Expr{
		Kind:     a.kind(n),
		Constant: a.constant(n),
		Reactive: a.reactive(n),
		JSX:      collectRegions(n, n, -1),
	}
	a.literal(n, e)
	if e.Kind == KindCall {
		e.Callee = a.zeroArgCallee(n)
	}
	e.Branches = a.branches(n)
	return e, nil
}

// unwrap returns the expression inside program > expression_statement > ( ... ).
func unwrap(root *sitter.Node) *sitter.Node {
	if root.NamedChildCount() != 1 {
		return nil
	}
	stmt := root.NamedChild(0)
	if stmt == nil || stmt.Type() != "expression_statement" {
		return nil
	}
	n := stmt.NamedChild(0)
	if n == nil || n.Type() != "parenthesized_expression" {
		return nil
	}
	return stripParens(n)
}

func stripParens(n *sitter.Node) *sitter.Node {
	for n != nil && n.Type() == "parenthesized_expression" {
		var inner *sitter.Node
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c != nil && c.Type() != "comment" {
				inner = c
				break
			}
		}
		if inner == nil {
			return nil
		}
		n = inner
	}
	return n
}

type analysis struct {
	src []byte
}

func (a *analysis) text(n *sitter.Node) string {
	return n.Content(a.src)
}

// span converts node offsets to offsets relative to the unwrapped code.
func (a *analysis) span(n *sitter.Node) Span {
	return Span{Start: int(n.StartByte()) - 1, End: int(n.EndByte()) - 1}
}

func (a *analysis) kind(n *sitter.Node) ExprKind {
	switch n.Type() {
	case "string", "number", "template_string", "true", "false", "null", "undefined", "regex":
		if n.Type() == "template_string" && hasNamedChild(n, "template_substitution") {
			return KindOther
		}
		return KindLiteral
	case "unary_expression":
		if a.signedNumber(n) {
			return KindLiteral
		}
	case "identifier":
		return KindIdentifier
	case "call_expression":
		return KindCall
	case "member_expression", "subscript_expression":
		return KindMember
	case "ternary_expression":
		return KindConditional
	case "binary_expression":
		switch a.operator(n) {
		case "&&", "||", "??":
			return KindLogical
		}
	case "arrow_function", "function", "function_expression", "generator_function":
		return KindFunction
	case "jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return KindJSX
	case "object":
		return KindObject
	case "array":
		return KindArray
	}
	return KindOther
}

func (a *analysis) operator(n *sitter.Node) string {
	if op := n.ChildByFieldName("operator"); op != nil {
		return op.Type()
	}
	return ""
}

func (a *analysis) signedNumber(n *sitter.Node) bool {
	op := a.operator(n)
	arg := n.ChildByFieldName("argument")
	return (op == "-" || op == "+") && arg != nil && arg.Type() == "number"
}

// constant reports whether n is built only from literals.
func (a *analysis) constant(n *sitter.Node) bool {
	switch a.kind(n) {
	case KindLiteral:
		return true
	case KindObject:
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c == nil || c.Type() == "comment" {
				continue
			}
			if c.Type() != "pair" {
				return false
			}
			v := c.ChildByFieldName("value")
			if v == nil || !a.constant(stripParens(v)) {
				return false
			}
			if k := c.ChildByFieldName("key"); k != nil && k.Type() == "computed_property_name" {
				return false
			}
		}
		return true
	case KindArray:
		for i := 0; i < int(n.NamedChildCount()); i++ {
			c := n.NamedChild(i)
			if c == nil || c.Type() == "comment" {
				continue
			}
			if !a.constant(stripParens(c)) {
				return false
			}
		}
		return true
	}
	return false
}

// reactive reports whether evaluating n reads through a call or member
// access. Nested functions and markup are not evaluated and are skipped.
func (a *analysis) reactive(n *sitter.Node) bool {
	switch n.Type() {
	case "call_expression", "member_expression", "subscript_expression", "new_expression":
		return true
	case "arrow_function", "function", "function_expression", "generator_function",
		"jsx_element", "jsx_self_closing_element", "jsx_fragment":
		return false
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil && a.reactive(c) {
			return true
		}
	}
	return false
}

// literal fills Value, Inline and Nullish for literal expressions.
func (a *analysis) literal(n *sitter.Node, e *Expr) {
	if e.Kind != KindLiteral {
		return
	}
	raw := a.text(n)
	switch n.Type() {
	case "number", "unary_expression":
		if printsAsWritten(raw) {
			e.Value, e.Inline = raw, true
		}
	case "string":
		if !hasNamedChild(n, "escape_sequence") && len(raw) >= 2 {
			e.Value, e.Inline = raw[1:len(raw)-1], true
		}
	case "template_string":
		if !strings.Contains(raw, `\`) && len(raw) >= 2 {
			e.Value, e.Inline = raw[1:len(raw)-1], true
		}
	case "true", "false", "null", "undefined":
		e.Nullish = true
	}
}

// printsAsWritten reports whether the numeric literal raw is spelled the way
// JavaScript converts it to a string, so it can be copied into markup as is.
// Hex, exponent, separator, BigInt and non-canonical decimal forms are not.
func printsAsWritten(raw string) bool {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsInf(f, 0) {
		return false
	}
	if abs := math.Abs(f); abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return false
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if s == "-0" {
		s = "0"
	}
	return s == raw
}

// zeroArgCallee returns the callee of `f()`. Method calls keep their
// receiver and are not reduced.
func (a *analysis) zeroArgCallee(n *sitter.Node) string {
	fn := n.ChildByFieldName("function")
	args := n.ChildByFieldName("arguments")
	if fn == nil || args == nil || args.Type() != "arguments" {
		return ""
	}
	for i := 0; i < int(args.NamedChildCount()); i++ {
		if c := args.NamedChild(i); c != nil && c.Type() != "comment" {
			return ""
		}
	}
	if fn.Type() != "identifier" {
		return ""
	}
	return a.text(fn)
}

func (a *analysis) branches(n *sitter.Node) *Branches {
	switch a.kind(n) {
	case KindConditional:
		test := n.ChildByFieldName("condition")
		then := n.ChildByFieldName("consequence")
		els := n.ChildByFieldName("alternative")
		if test == nil || then == nil || els == nil {
			return nil
		}
		return &Branches{Op: "?", Test: a.span(test), Then: a.span(then), Else: a.span(els)}
	case KindLogical:
		left := n.ChildByFieldName("left")
		right := n.ChildByFieldName("right")
		if left == nil || right == nil {
			return nil
		}
		return &Branches{Op: a.operator(n), Test: a.span(left), Then: a.span(right)}
	}
	return nil
}

func hasNamedChild(n *sitter.Node, typ string) bool {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if c := n.NamedChild(i); c != nil && c.Type() == typ {
			return true
		}
	}
	return false
}
