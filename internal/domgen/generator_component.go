package domgen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/grindlemire/go-domgen/internal/hostjs"
)

// component lowers a component tag to createComponent(Name, props).
func (g *Generator) component(c *Component) string {
	idx := len(g.components)
	g.components = append(g.components, ComponentCall{Name: c.Name, Pos: c.Position})
	var props []Prop

	var parts []string // mergeProps arguments
	var fields []string
	flush := func() {
		if len(fields) > 0 {
			parts = append(parts, g.object(fields))
			fields = nil
		}
	}

	for _, attr := range c.Attributes {
		switch attr := attr.(type) {
		case *Spread:
			flush()
			parts = append(parts, g.exprCode(attr.Expr))
			props = append(props, Prop{Name: attr.Expr.Code, Kind: PropSpread})
		case *Attribute:
			field, kind := g.prop(attr.Name, attr.Value)
			fields = append(fields, field)
			props = append(props, Prop{Name: attr.Name, Kind: kind})
		}
	}
	if field, kind, ok := g.childrenProp(c.Children); ok {
		fields = append(fields, field)
		props = append(props, Prop{Name: "children", Kind: kind})
	}
	flush()
	g.components[idx].Props = props

	var arg string
	switch len(parts) {
	case 0:
		arg = "{}"
	case 1:
		arg = parts[0]
	default:
		arg = fmt.Sprintf("%s(%s)", g.use("mergeProps"), strings.Join(parts, ", "))
	}
	return fmt.Sprintf("%s(%s, %s)", g.use("createComponent"), c.Name, arg)
}

// prop emits one property field. Dynamic expressions become getters, markup
// is instantiated eagerly and everything else is a plain value.
func (g *Generator) prop(name string, v Value) (string, PropKind) {
	key := propKey(name)
	switch v := v.(type) {
	case *Expr:
		code := g.exprCode(v)
		switch {
		case v.Info.Kind == hostjs.KindJSX:
			return key + ": " + code, PropElement
		case !v.Dynamic:
			return key + ": " + code, PropStatic
		}
		return g.getter(key, code), PropDynamic
	case Node:
		return key + ": " + g.node(v), PropElement
	case *StringLit:
		return key + ": " + jsString(v.Value), PropStatic
	case *BoolLit:
		return fmt.Sprintf("%s: %t", key, v.Value), PropStatic
	}
	return key + ": undefined", PropStatic
}

// childrenProp emits the children field. Text and static expressions are
// plain values; markup and dynamic expressions are getters.
func (g *Generator) childrenProp(children []Node) (string, PropKind, bool) {
	switch len(children) {
	case 0:
		return "", PropStatic, false
	case 1:
		switch c := children[0].(type) {
		case *Text:
			return "children: " + jsString(c.Value), PropStatic, true
		case *Expr:
			code := g.exprCode(c)
			if !c.Dynamic && c.Info.Kind != hostjs.KindJSX {
				return "children: " + code, PropStatic, true
			}
			return g.getter("children", code), PropDynamic, true
		default:
			return g.getter("children", g.node(c)), PropDynamic, true
		}
	}
	return g.getter("children", g.array(children)), PropDynamic, true
}

// fragment lowers <>...</> to its single child or an array.
func (g *Generator) fragment(f *Fragment) string {
	switch len(f.Children) {
	case 0:
		return "[]"
	case 1:
		return g.item(f.Children[0])
	}
	return g.array(f.Children)
}

// array emits children as an array literal, one item per line.
func (g *Generator) array(children []Node) string {
	w := g.newWriter()
	w.writeln("[")
	w.indent++
	for i, c := range children {
		item := g.item(c)
		if i < len(children)-1 {
			item += ","
		}
		w.writeln(item)
	}
	w.indent--
	w.writeln("]")
	return w.String()
}

// item emits one child value of an array or fragment.
func (g *Generator) item(n Node) string {
	if e, ok := n.(*Expr); ok {
		v, _ := g.accessor(e)
		return v
	}
	return g.node(n)
}

// getter emits `get key() { return code; }`.
func (g *Generator) getter(key, code string) string {
	w := g.newWriter()
	w.writef("get %s() {", key)
	w.indent++
	w.writef("return %s;", code)
	w.indent--
	w.writeln("}")
	return w.String()
}

// object emits an object literal with one field per line.
func (g *Generator) object(fields []string) string {
	w := g.newWriter()
	w.writeln("{")
	w.indent++
	for i, f := range fields {
		if i < len(fields)-1 {
			f += ","
		}
		w.writeln(f)
	}
	w.indent--
	w.writeln("}")
	return w.String()
}

// propKey returns name as an object key, quoted unless it is an identifier.
func propKey(name string) string {
	for i, r := range name {
		if r == '_' || r == '$' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return jsString(name)
	}
	if name == "" {
		return `""`
	}
	return name
}
