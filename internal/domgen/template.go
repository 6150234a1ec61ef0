package domgen

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// markerComment is the placeholder left where a dynamic child is inserted.
const markerComment = "<!--#-->"

// Template is one deduplicated static markup blueprint.
type Template struct {
	ID   int    // 1-based, first-seen order
	Name string // _tmpl$N
	HTML string
	Refs int // number of instantiation sites
}

// templateTable deduplicates templates by their canonical markup.
type templateTable struct {
	byHTML map[string]*Template
	list   []*Template
}

func newTemplateTable() *templateTable {
	return &templateTable{byHTML: make(map[string]*Template)}
}

// register returns the template for markup, creating it on first sight.
func (t *templateTable) register(markup string) *Template {
	if tmpl, ok := t.byHTML[markup]; ok {
		tmpl.Refs++
		return tmpl
	}
	id := len(t.list) + 1
	tmpl := &Template{ID: id, Name: fmt.Sprintf("_tmpl$%d", id), HTML: markup, Refs: 1}
	t.byHTML[markup] = tmpl
	t.list = append(t.list, tmpl)
	return tmpl
}

// siteKind distinguishes the two places a binding can attach.
type siteKind int

const (
	siteAttr   siteKind = iota // attribute, event, ref or spread on an element
	siteInsert                 // dynamic child at a placeholder
)

// site is one dynamic position inside a template.
type site struct {
	kind siteKind
	path []int // owning element for attributes, placeholder for inserts

	// parent is the element path an insert attaches to.
	parent []int

	attr   *Attribute
	spread *Spread
	child  Node
}

// plan is the extraction result for one native element tree.
type plan struct {
	tmpl     *Template
	instance int
	sites    []site
}

// extractor collapses native element trees into templates, visiting nested
// markup in document order so template numbering follows first appearance.
type extractor struct {
	templates *templateTable
	plans     map[*Element]*plan
	instances int
}

func newExtractor() *extractor {
	return &extractor{
		templates: newTemplateTable(),
		plans:     make(map[*Element]*plan),
	}
}

// extract visits a node and everything nested in it.
func (x *extractor) extract(n Node) {
	switch n := n.(type) {
	case *Element:
		p := x.buildPlan(n)
		x.plans[n] = p
		for _, s := range p.sites {
			switch {
			case s.attr != nil:
				x.extractValue(s.attr.Value)
			case s.spread != nil:
				x.extract(s.spread.Expr)
			case s.child != nil:
				x.extract(s.child)
			}
		}
	case *Component:
		for _, attr := range n.Attributes {
			switch attr := attr.(type) {
			case *Attribute:
				x.extractValue(attr.Value)
			case *Spread:
				x.extract(attr.Expr)
			}
		}
		for _, c := range n.Children {
			x.extract(c)
		}
	case *Fragment:
		for _, c := range n.Children {
			x.extract(c)
		}
	case *Expr:
		for _, emb := range n.Embedded {
			x.extract(emb.Node)
		}
	}
}

func (x *extractor) extractValue(v Value) {
	if n, ok := v.(Node); ok {
		x.extract(n)
	}
}

// buildPlan renders the template markup of el and records its dynamic sites.
func (x *extractor) buildPlan(el *Element) *plan {
	x.instances++
	p := &plan{instance: x.instances}
	var sb strings.Builder
	x.render(&sb, el, nil, p)
	p.tmpl = x.templates.register(sb.String())
	return p
}

func (x *extractor) render(sb *strings.Builder, el *Element, path []int, p *plan) {
	sb.WriteString("<")
	sb.WriteString(el.Tag)
	for _, attr := range el.Attributes {
		switch attr := attr.(type) {
		case *Spread:
			p.sites = append(p.sites, site{kind: siteAttr, path: path, spread: attr})
		case *Attribute:
			if !renderStaticAttr(sb, attr) {
				p.sites = append(p.sites, site{kind: siteAttr, path: path, attr: attr})
			}
		}
	}
	sb.WriteString(">")

	index := 0
	inText := false
	text := func(s string) {
		if s == "" {
			return
		}
		if !inText {
			index++
			inText = true
		}
		sb.WriteString(escapeTemplate(html.EscapeString(s)))
	}
	insert := func(child Node) {
		marker := appendPath(path, index)
		p.sites = append(p.sites, site{kind: siteInsert, path: marker, parent: path, child: child})
		sb.WriteString(markerComment)
		index++
		inText = false
	}

	for _, child := range el.Children {
		switch child := child.(type) {
		case *Text:
			text(child.Value)
		case *Expr:
			switch {
			case !child.Dynamic && child.Info.Inline:
				text(child.Info.Value)
			case !child.Dynamic && child.Info.Nullish:
			default:
				insert(child)
			}
		case *Element:
			x.render(sb, child, appendPath(path, index), p)
			index++
			inText = false
		default:
			insert(child)
		}
	}

	if !voidElements[el.Tag] {
		sb.WriteString("</")
		sb.WriteString(el.Tag)
		sb.WriteString(">")
	}
}

// renderStaticAttr writes attr into the template if its value is known at
// compile time. It returns false when the attribute needs a binding.
func renderStaticAttr(sb *strings.Builder, attr *Attribute) bool {
	if attr.Name == "ref" || (isEventAttr(attr.Name) && !isStringValue(attr.Value)) {
		return false
	}
	name := templateAttrName(attr.Name)

	switch v := attr.Value.(type) {
	case *StringLit:
		writeAttr(sb, name, v.Value)
		return true
	case *BoolLit:
		if v.Value {
			sb.WriteString(" ")
			sb.WriteString(name)
		}
		return true
	case *Expr:
		if v.Dynamic {
			return false
		}
		switch {
		case v.Info.Inline:
			writeAttr(sb, name, v.Info.Value)
			return true
		case v.Info.Nullish:
			if strings.TrimSpace(v.Code) == "true" {
				sb.WriteString(" ")
				sb.WriteString(name)
			}
			return true
		}
	}
	return false
}

func isStringValue(v Value) bool {
	_, ok := v.(*StringLit)
	return ok
}

func writeAttr(sb *strings.Builder, name, value string) {
	sb.WriteString(" ")
	sb.WriteString(name)
	sb.WriteString(`="`)
	sb.WriteString(escapeTemplate(html.EscapeString(value)))
	sb.WriteString(`"`)
}

// templateAttrName maps JSX attribute names to their HTML spelling.
func templateAttrName(name string) string {
	switch name {
	case "className":
		return "class"
	case "htmlFor":
		return "for"
	}
	return name
}

// escapeTemplate escapes text for a JavaScript template literal.
func escapeTemplate(s string) string {
	if !strings.ContainsAny(s, "`\\$") {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] == '`' || s[i] == '\\':
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		case s[i] == '$' && i+1 < len(s) && s[i+1] == '{':
			sb.WriteString(`\$`)
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

func appendPath(path []int, i int) []int {
	out := make([]int, len(path)+1)
	copy(out, path)
	out[len(path)] = i
	return out
}
