package domgen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grindlemire/go-domgen/internal/hostjs"
	"golang.org/x/net/html/atom"
)

// Analyzer classifies expressions as static or dynamic and validates
// built-in components.
type Analyzer struct {
	builtIns map[string]BuiltIn
	errors   *ErrorList
	warnings []*Error
}

// NewAnalyzer creates an analyzer that checks the given built-ins.
func NewAnalyzer(builtIns map[string]BuiltIn) *Analyzer {
	return &Analyzer{
		builtIns: builtIns,
		errors:   NewErrorList(),
	}
}

// Analyze annotates every root. It returns an error if validation fails.
func (a *Analyzer) Analyze(roots []*Root) error {
	for _, r := range roots {
		a.analyzeNode(r.Node)
	}
	return a.errors.Err()
}

// Warnings returns non-fatal diagnostics such as unknown tag names.
func (a *Analyzer) Warnings() []*Error {
	return a.warnings
}

func (a *Analyzer) analyzeNode(n Node) {
	switch n := n.(type) {
	case *Element:
		a.checkTag(n)
		a.analyzeAttrs(n.Attributes)
		a.analyzeChildren(n.Children)
	case *Component:
		a.analyzeAttrs(n.Attributes)
		a.analyzeChildren(n.Children)
		a.checkBuiltIn(n)
	case *Fragment:
		a.analyzeChildren(n.Children)
	case *Expr:
		a.classify(n)
	}
}

func (a *Analyzer) analyzeChildren(children []Node) {
	for _, c := range children {
		a.analyzeNode(c)
	}
}

func (a *Analyzer) analyzeAttrs(attrs []Attr) {
	for _, attr := range attrs {
		switch attr := attr.(type) {
		case *Attribute:
			switch v := attr.Value.(type) {
			case *Expr:
				a.classify(v)
			case Node:
				a.analyzeNode(v)
			}
		case *Spread:
			a.classify(attr.Expr)
			attr.Expr.Dynamic = true
		}
	}
}

// classify marks e dynamic unless it is a literal, a function value or
// stand-alone markup. Nested markup is analyzed too.
func (a *Analyzer) classify(e *Expr) {
	switch {
	case e.Info.Constant:
		e.Dynamic = false
	case e.Info.Kind == hostjs.KindFunction, e.Info.Kind == hostjs.KindJSX:
		e.Dynamic = false
	default:
		e.Dynamic = true
	}
	for _, emb := range e.Embedded {
		a.analyzeNode(emb.Node)
	}
}

// checkTag validates a native element.
func (a *Analyzer) checkTag(el *Element) {
	if voidElements[el.Tag] && len(el.Children) > 0 {
		a.errors.AddErrorf(el.Position, "void element <%s> cannot have children", el.Tag)
	}
	if strings.ContainsAny(el.Tag, "-:") || atom.Lookup([]byte(el.Tag)) != 0 {
		return
	}
	w := NewErrorf(el.Position, "unknown element <%s>", el.Tag)
	w.Hint = suggest(el.Tag, commonTags)
	a.warnings = append(a.warnings, w)
}

// checkBuiltIn validates the props of a recognized control-flow component.
func (a *Analyzer) checkBuiltIn(c *Component) {
	bi, ok := a.builtIns[c.Name]
	if !ok {
		return
	}

	present := make(map[string]bool)
	hasSpread := false
	var unknown []*Attribute
	for _, attr := range c.Attributes {
		switch attr := attr.(type) {
		case *Attribute:
			present[attr.Name] = true
			if len(bi.Props) > 0 && !contains(bi.Props, attr.Name) && attr.Name != "ref" {
				unknown = append(unknown, attr)
			}
		case *Spread:
			hasSpread = true
		}
	}

	for _, attr := range unknown {
		hint := suggest(attr.Name, bi.Props)
		if hint == "" {
			hint = fmt.Sprintf("<%s> accepts %s", c.Name, strings.Join(bi.Props, ", "))
		}
		a.errors.Add(NewErrorWithHint(attr.Position, fmt.Sprintf("unknown prop %q on <%s>", attr.Name, c.Name), hint))
	}

	if hasSpread {
		return
	}
	for _, req := range bi.Required {
		if present[req] {
			continue
		}
		var given []string
		for name := range present {
			given = append(given, name)
		}
		sort.Strings(given)
		hint := ""
		for _, g := range given {
			if h := suggest(g, []string{req}); h != "" {
				hint = fmt.Sprintf("%q looks like a misspelling of %q", g, req)
				break
			}
		}
		a.errors.Add(NewErrorWithHint(c.Position, fmt.Sprintf("<%s> requires the %q prop", c.Name, req), hint))
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// voidElements never have a closing tag.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// commonTags feeds "did you mean" hints for unknown elements.
var commonTags = []string{
	"a", "article", "aside", "button", "canvas", "div", "footer", "form",
	"h1", "h2", "h3", "header", "img", "input", "label", "li", "main", "nav",
	"ol", "option", "p", "section", "select", "span", "table", "tbody", "td",
	"textarea", "th", "thead", "tr", "ul", "svg", "path",
}
