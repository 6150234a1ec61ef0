package domgen

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// BindingKind is the kind of DOM update a binding performs.
type BindingKind int

const (
	BindInsert BindingKind = iota
	BindAttribute
	BindProperty
	BindClass
	BindStyle
	BindEvent
	BindRef
	BindSpread
)

var bindingKindNames = map[BindingKind]string{
	BindInsert:    "insert",
	BindAttribute: "attribute",
	BindProperty:  "property",
	BindClass:     "class",
	BindStyle:     "style",
	BindEvent:     "event",
	BindRef:       "ref",
	BindSpread:    "spread",
}

func (k BindingKind) String() string {
	if name, ok := bindingKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("BindingKind(%d)", k)
}

// Binding records one emitted binding statement.
type Binding struct {
	Template string // template the binding belongs to
	Instance int    // instantiation site of that template within the file
	Path     []int  // element path for attributes, placeholder path for inserts
	Kind     BindingKind
	Name     string // attribute, property or event name
	Expr     string // source expression
	Reactive bool   // wrapped in an effect or passed as an accessor
	Pos      Position
}

// PropKind classifies a lowered component property.
type PropKind int

const (
	PropStatic  PropKind = iota // plain value
	PropDynamic                 // getter
	PropElement                 // eagerly instantiated markup
	PropSpread                  // merged spread object
)

var propKindNames = map[PropKind]string{
	PropStatic:  "static",
	PropDynamic: "getter",
	PropElement: "element",
	PropSpread:  "spread",
}

func (k PropKind) String() string {
	if name, ok := propKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PropKind(%d)", k)
}

// Prop is one property of a component call.
type Prop struct {
	Name string
	Kind PropKind
}

// ComponentCall records one lowered component.
type ComponentCall struct {
	Name  string
	Props []Prop
	Pos   Position
}

// Generator emits JavaScript for analyzed markup.
type Generator struct {
	opts Options
	x    *extractor

	elCounter   int
	condCounter int

	helpers    map[string]bool
	events     []string
	bindings   []Binding
	components []ComponentCall
}

// newGenerator creates a generator over an extraction result.
func newGenerator(opts Options, x *extractor) *Generator {
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	return &Generator{
		opts:    opts,
		x:       x,
		helpers: make(map[string]bool),
	}
}

// Generate returns the expression that replaces a root node.
func (g *Generator) Generate(n Node) string {
	return g.node(n)
}

// node emits any markup node as an expression.
func (g *Generator) node(n Node) string {
	switch n := n.(type) {
	case *Element:
		return g.element(n)
	case *Component:
		return g.component(n)
	case *Fragment:
		return g.fragment(n)
	case *Text:
		return jsString(n.Value)
	case *Expr:
		return g.exprCode(n)
	}
	return "undefined"
}

// use records a runtime helper and returns its name.
func (g *Generator) use(helper string) string {
	g.helpers[helper] = true
	return helper
}

// Helpers returns the runtime helpers used so far, sorted.
func (g *Generator) Helpers() []string {
	out := make([]string, 0, len(g.helpers))
	for h := range g.helpers {
		out = append(out, h)
	}
	sort.Strings(out)
	return out
}

// addEvent records a delegated event name once.
func (g *Generator) addEvent(name string) {
	for _, e := range g.events {
		if e == name {
			return
		}
	}
	g.events = append(g.events, name)
}

// nextElVar returns the next element variable: _el$, _el$2, _el$3...
func (g *Generator) nextElVar() string {
	g.elCounter++
	if g.elCounter == 1 {
		return "_el$"
	}
	return fmt.Sprintf("_el$%d", g.elCounter)
}

// nextCondVar returns the next memoized condition variable.
func (g *Generator) nextCondVar() string {
	g.condCounter++
	if g.condCounter == 1 {
		return "_c$"
	}
	return fmt.Sprintf("_c$%d", g.condCounter)
}

// codeWriter accumulates indented lines.
type codeWriter struct {
	buf    bytes.Buffer
	indent int
	unit   string
}

func (g *Generator) newWriter() *codeWriter {
	return &codeWriter{unit: g.opts.Indent}
}

// writeln writes s with indentation. Every line of a multi-line s gets the
// current indentation.
func (w *codeWriter) writeln(s string) {
	prefix := strings.Repeat(w.unit, w.indent)
	for i, line := range strings.Split(s, "\n") {
		if i > 0 || line != "" {
			w.buf.WriteString(prefix)
		}
		w.buf.WriteString(line)
		w.buf.WriteByte('\n')
	}
}

// writef writes a formatted line with indentation.
func (w *codeWriter) writef(format string, args ...any) {
	w.writeln(fmt.Sprintf(format, args...))
}

// String returns the written code without its trailing newline.
func (w *codeWriter) String() string {
	return strings.TrimSuffix(w.buf.String(), "\n")
}

// jsString quotes s as a JavaScript double-quoted string.
func jsString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
