package domgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/grindlemire/go-domgen/internal/hostjs"
)

// element emits the instantiation of a native element tree.
// Without bindings this is a bare template call; otherwise an IIFE that
// resolves element references, applies bindings in document order and
// returns the root.
func (g *Generator) element(el *Element) string {
	p := g.x.plans[el]
	if len(p.sites) == 0 {
		return p.tmpl.Name + "()"
	}

	w := g.newWriter()
	w.writeln("(() => {")
	w.indent++

	vars := map[string]string{"": g.nextElVar()}
	w.writef("const %s = %s();", vars[""], p.tmpl.Name)
	for _, path := range g.refPaths(p) {
		v := g.nextElVar()
		w.writef("const %s = %s;", v, walkExpr(path, vars))
		vars[pathKey(path)] = v
	}

	for _, s := range p.sites {
		w.writeln(g.bindSite(p, s, vars))
	}

	w.writef("return %s;", vars[""])
	w.indent--
	w.writeln("})()")
	return w.String()
}

// refPaths returns every non-root node path that needs a variable, in
// document order. Ancestors of referenced nodes are included.
func (g *Generator) refPaths(p *plan) [][]int {
	seen := make(map[string]bool)
	var paths [][]int
	add := func(path []int) {
		for i := 1; i <= len(path); i++ {
			prefix := path[:i]
			if k := pathKey(prefix); !seen[k] {
				seen[k] = true
				paths = append(paths, prefix)
			}
		}
	}
	for _, s := range p.sites {
		switch s.kind {
		case siteAttr:
			add(s.path)
		case siteInsert:
			add(s.parent)
			if g.opts.MarkerRefs {
				add(s.path)
			}
		}
	}
	sort.Slice(paths, func(i, j int) bool { return comparePaths(paths[i], paths[j]) < 0 })
	return paths
}

// comparePaths orders paths in document order.
func comparePaths(a, b []int) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] - b[i]
		}
	}
	return len(a) - len(b)
}

func pathKey(path []int) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}

// walkExpr builds the DOM walk to path from the closest declared node:
// a previous sibling if one has a variable, the parent otherwise.
func walkExpr(path []int, vars map[string]string) string {
	parent := path[:len(path)-1]
	idx := path[len(path)-1]
	for j := idx - 1; j >= 0; j-- {
		if v, ok := vars[pathKey(appendPath(parent, j))]; ok {
			return v + strings.Repeat(".nextSibling", idx-j)
		}
	}
	return vars[pathKey(parent)] + ".firstChild" + strings.Repeat(".nextSibling", idx)
}

// bindSite emits the statement for one dynamic site.
func (g *Generator) bindSite(p *plan, s site, vars map[string]string) string {
	switch {
	case s.kind == siteInsert:
		anchor := "null"
		if g.opts.MarkerRefs {
			anchor = vars[pathKey(s.path)]
		}
		value, reactive := g.insertValue(s.child)
		b := Binding{Kind: BindInsert, Path: s.path, Reactive: reactive, Pos: s.child.Pos()}
		if e, ok := s.child.(*Expr); ok {
			b.Expr = e.Code
		}
		g.record(p, b)
		return fmt.Sprintf("%s(%s, %s, %s);", g.use("insert"), vars[pathKey(s.parent)], value, anchor)

	case s.spread != nil:
		g.record(p, Binding{Kind: BindSpread, Path: s.path, Expr: s.spread.Expr.Code, Reactive: true, Pos: s.spread.Position})
		return fmt.Sprintf("%s(%s, %s);", g.use("spread"), vars[pathKey(s.path)], g.exprCode(s.spread.Expr))
	}
	return g.attrBinding(p, s, vars[pathKey(s.path)])
}

func (g *Generator) record(p *plan, b Binding) {
	b.Template = p.tmpl.Name
	b.Instance = p.instance
	g.bindings = append(g.bindings, b)
}

// attrBinding emits an attribute, property, event or ref binding on el.
func (g *Generator) attrBinding(p *plan, s site, el string) string {
	attr := s.attr
	b := Binding{Path: s.path, Name: attr.Name, Pos: attr.Position}

	var code string
	var info *hostjs.Expr
	switch v := attr.Value.(type) {
	case *Expr:
		code = g.exprCode(v)
		info = v.Info
		b.Expr = v.Code
		b.Reactive = v.Dynamic && v.Info.Reactive
	case Node:
		code = g.node(v)
	case *StringLit:
		code = jsString(v.Value)
	case *BoolLit:
		code = strconv.FormatBool(v.Value)
	}

	var stmt string
	switch {
	case attr.Name == "ref":
		b.Kind, b.Reactive = BindRef, false
		if info != nil && info.Kind == hostjs.KindFunction {
			stmt = fmt.Sprintf("%s(%s, %s);", g.use("use"), code, el)
		} else {
			stmt = fmt.Sprintf("typeof %s === \"function\" ? %s(%s, %s) : %s = %s;", code, g.use("use"), code, el, code, el)
		}

	case isEventAttr(attr.Name):
		b.Kind, b.Reactive = BindEvent, false
		name, direct := eventName(attr.Name)
		b.Name = name
		if !direct && g.opts.Delegation && delegatedEvents[name] {
			g.addEvent(name)
			g.use("delegateEvents")
			stmt = fmt.Sprintf("%s.$$%s = %s;", el, name, code)
		} else {
			stmt = fmt.Sprintf("%s.addEventListener(%s, %s);", el, jsString(name), code)
		}

	default:
		var set string
		set, b.Kind = g.attrSetter(el, attr.Name, code)
		if b.Reactive {
			stmt = fmt.Sprintf("%s(() => %s);", g.use("effect"), set)
		} else {
			stmt = set + ";"
		}
	}

	g.record(p, b)
	return stmt
}

// domProperties maps JSX names that are set as element properties.
var domProperties = map[string]string{
	"id":            "id",
	"value":         "value",
	"checked":       "checked",
	"selected":      "selected",
	"muted":         "muted",
	"multiple":      "multiple",
	"disabled":      "disabled",
	"hidden":        "hidden",
	"readOnly":      "readOnly",
	"readonly":      "readOnly",
	"indeterminate": "indeterminate",
	"innerHTML":     "innerHTML",
	"textContent":   "textContent",
	"innerText":     "innerText",
}

// attrSetter returns the expression applying value to attribute name of el.
func (g *Generator) attrSetter(el, name, value string) (string, BindingKind) {
	switch name {
	case "class", "className":
		return fmt.Sprintf("%s(%s, %s)", g.use("className"), el, value), BindClass
	case "style":
		return fmt.Sprintf("%s(%s, %s)", g.use("style"), el, value), BindStyle
	}
	if prop, ok := domProperties[name]; ok {
		return fmt.Sprintf("%s.%s = %s", el, prop, value), BindProperty
	}
	return fmt.Sprintf("%s(%s, %s, %s)", g.use("setAttribute"), el, jsString(templateAttrName(name)), value), BindAttribute
}

// isEventAttr reports whether an attribute name is an event handler.
func isEventAttr(name string) bool {
	return strings.HasPrefix(name, "on") && len(name) > 2
}

// eventName returns the DOM event for a handler attribute and whether it
// must bypass delegation. on:name keeps its exact spelling.
func eventName(attr string) (string, bool) {
	if strings.HasPrefix(attr, "on:") {
		return attr[3:], true
	}
	name := strings.ToLower(attr[2:])
	if name == "doubleclick" {
		name = "dblclick"
	}
	return name, false
}
