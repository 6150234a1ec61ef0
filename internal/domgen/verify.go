package domgen

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// VerifyPlaceholders re-tokenizes every template and checks that its
// placeholder markers correspond one-to-one with the insert bindings of each
// instantiation site.
func (r *Result) VerifyPlaceholders() error {
	errs := NewErrorList()

	markers := make(map[string][]string, len(r.Templates))
	for _, t := range r.Templates {
		markers[t.Name] = markerPaths(t.HTML)
	}

	type instance struct {
		template string
		paths    []string
		pos      Position
	}
	instances := make(map[int]*instance)
	var order []int
	for _, b := range r.Bindings {
		inst, ok := instances[b.Instance]
		if !ok {
			inst = &instance{template: b.Template, pos: b.Pos}
			instances[b.Instance] = inst
			order = append(order, b.Instance)
		}
		if b.Kind == BindInsert {
			inst.paths = append(inst.paths, pathKey(b.Path))
		}
	}

	used := make(map[string]bool)
	for _, id := range order {
		inst := instances[id]
		used[inst.template] = true
		want := markers[inst.template]
		got := append([]string(nil), inst.paths...)
		sort.Strings(got)
		if strings.Join(want, " ") != strings.Join(got, " ") {
			errs.AddErrorf(inst.pos, "template %s has placeholders at [%s] but inserts at [%s]",
				inst.template, strings.Join(want, " "), strings.Join(got, " "))
		}
	}
	for _, t := range r.Templates {
		if len(markers[t.Name]) > 0 && !used[t.Name] {
			errs.AddErrorf(Position{}, "template %s has placeholders but no inserts", t.Name)
		}
	}
	return errs.Err()
}

// markerPaths returns the sorted child-index paths of every placeholder in
// a template, relative to its root element.
func markerPaths(markup string) []string {
	z := html.NewTokenizer(strings.NewReader(markup))

	var paths []string
	var stack [][]int // path of each open element
	var counts []int  // children seen per open element
	var inText []bool

	child := func() []int {
		d := len(stack) - 1
		p := appendPath(stack[d], counts[d])
		counts[d]++
		inText[d] = false
		return p
	}

	for {
		switch z.Next() {
		case html.ErrorToken:
			sort.Strings(paths)
			return paths
		case html.StartTagToken, html.SelfClosingTagToken:
			name, _ := z.TagName()
			var p []int
			if len(stack) > 0 {
				p = child()
			} else {
				p = []int{}
			}
			if voidElements[string(name)] {
				continue
			}
			stack = append(stack, p)
			counts = append(counts, 0)
			inText = append(inText, false)
		case html.EndTagToken:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
				counts = counts[:len(counts)-1]
				inText = inText[:len(inText)-1]
			}
		case html.TextToken:
			if d := len(stack) - 1; d >= 0 && !inText[d] {
				counts[d]++
				inText[d] = true
			}
		case html.CommentToken:
			if len(stack) == 0 {
				continue
			}
			p := child()
			if string(z.Text()) == "#" {
				paths = append(paths, pathKey(p))
			}
		}
	}
}

// String formats a binding for inspection output.
func (b Binding) String() string {
	path := pathKey(b.Path)
	if path == "" {
		path = "root"
	}
	s := fmt.Sprintf("%s %s@%s", b.Template, b.Kind, path)
	if b.Name != "" {
		s += " " + b.Name
	}
	if b.Expr != "" {
		s += " = " + strings.TrimSpace(b.Expr)
	}
	return s
}
