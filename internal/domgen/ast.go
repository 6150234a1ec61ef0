package domgen

import "github.com/grindlemire/go-domgen/internal/hostjs"

// Node is the interface implemented by all markup nodes.
type Node interface {
	node()         // marker method to ensure type safety
	Pos() Position // returns the source position of the node
}

// Root is one outermost markup expression found in the host source.
type Root struct {
	Node Node

	// Start and End are the host byte range replaced by the generated code,
	// including redundant wrapping parentheses.
	Start int
	End   int
}

// Element is a lowercase tag that becomes DOM markup.
type Element struct {
	Tag         string
	Attributes  []Attr
	Children    []Node
	SelfClosing bool
	Position    Position
}

func (e *Element) node()         {}
func (e *Element) Pos() Position { return e.Position }

// Component is a capitalized or dotted tag that lowers to a component call.
type Component struct {
	Name       string
	Attributes []Attr
	Children   []Node
	Position   Position
}

func (c *Component) node()         {}
func (c *Component) Pos() Position { return c.Position }

// Fragment is a <>...</> group of children.
type Fragment struct {
	Children []Node
	Position Position
}

func (f *Fragment) node()         {}
func (f *Fragment) Pos() Position { return f.Position }

// Text is static text between tags, already whitespace-normalized with
// HTML entities decoded.
type Text struct {
	Value    string
	Position Position
}

func (t *Text) node()         {}
func (t *Text) Pos() Position { return t.Position }

// Expr is a {...} JavaScript expression container.
type Expr struct {
	Code     string
	Position Position // position of the first byte of Code

	// Info describes the expression's syntax. It is filled by the parser.
	Info *hostjs.Expr

	// Embedded holds parsed markup nested in Code, in source order,
	// paired with Info.JSX.
	Embedded []Embedded

	// Dynamic is set by the analyzer.
	Dynamic bool
}

func (e *Expr) node()         {}
func (e *Expr) Pos() Position { return e.Position }

// Embedded is markup nested in an expression.
type Embedded struct {
	Node  Node
	Start int // outer range relative to Expr.Code
	End   int
}

// Attr is the interface for element and component attributes.
type Attr interface {
	attr()
	Pos() Position
}

// Attribute is a name with a static or dynamic value.
type Attribute struct {
	Name     string
	Value    Value
	Position Position
}

func (a *Attribute) attr()         {}
func (a *Attribute) Pos() Position { return a.Position }

// Spread is a {...props} attribute.
type Spread struct {
	Expr     *Expr
	Position Position
}

func (s *Spread) attr()         {}
func (s *Spread) Pos() Position { return s.Position }

// Value is an attribute value.
type Value interface {
	value()
}

// StringLit is a quoted attribute value with entities decoded.
type StringLit struct {
	Value string
}

func (s *StringLit) value() {}

// BoolLit is a shorthand attribute like <input disabled />.
type BoolLit struct {
	Value bool
}

func (b *BoolLit) value() {}

// Expr, Element, Component and Fragment can also be attribute values.
func (e *Expr) value()      {}
func (e *Element) value()   {}
func (c *Component) value() {}
func (f *Fragment) value()  {}

// isDynamic reports whether an attribute value is classified dynamic.
func isDynamic(v Value) bool {
	e, ok := v.(*Expr)
	return ok && e.Dynamic
}
