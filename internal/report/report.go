// Package report renders compilation results as a standalone HTML page.
package report

import (
	"fmt"
	"io"
	"strings"

	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"github.com/grindlemire/go-domgen/internal/domgen"
)

const stylesheet = `
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; margin-bottom: 2rem; }
th, td { border: 1px solid #ccc; padding: 0.25rem 0.5rem; text-align: left; vertical-align: top; }
th { background: #f4f4f4; }
pre { margin: 0; white-space: pre-wrap; }
.reactive { color: #0a7d32; font-weight: bold; }
.warn { color: #a65e00; }
`

// Write renders res for file as an HTML document.
func Write(w io.Writer, file string, res *domgen.Result) error {
	return Page(file, res).Render(w)
}

// Page builds the report document.
func Page(file string, res *domgen.Result) g.Node {
	return h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.TitleEl(g.Text("domgen: "+file)),
				h.StyleEl(g.Raw(stylesheet)),
			),
			h.Body(
				h.H1(g.Text(file)),
				h.P(g.Textf("%d templates, %d bindings, %d components, helpers: %s",
					len(res.Templates), len(res.Bindings), len(res.Components), helperList(res.Helpers))),
				g.If(len(res.Warnings) > 0, warnings(res.Warnings)),
				h.H2(g.Text("Templates")),
				templates(res.Templates),
				h.H2(g.Text("Bindings")),
				bindings(res.Bindings),
				h.H2(g.Text("Components")),
				components(res.Components),
			),
		),
	)
}

func helperList(helpers []string) string {
	if len(helpers) == 0 {
		return "none"
	}
	return strings.Join(helpers, ", ")
}

func warnings(ws []*domgen.Error) g.Node {
	return h.Ul(h.Class("warn"),
		g.Map(ws, func(w *domgen.Error) g.Node {
			return h.Li(g.Text(w.Error()))
		}),
	)
}

func templates(ts []*domgen.Template) g.Node {
	return h.Table(
		h.THead(h.Tr(h.Th(g.Text("Name")), h.Th(g.Text("Uses")), h.Th(g.Text("Markup")))),
		h.TBody(g.Map(ts, func(t *domgen.Template) g.Node {
			return h.Tr(
				h.Td(g.Text(t.Name)),
				h.Td(g.Textf("%d", t.Refs)),
				h.Td(h.Pre(h.Code(g.Text(t.HTML)))),
			)
		})),
	)
}

func bindings(bs []domgen.Binding) g.Node {
	return h.Table(
		h.THead(h.Tr(
			h.Th(g.Text("Template")),
			h.Th(g.Text("Kind")),
			h.Th(g.Text("Path")),
			h.Th(g.Text("Name")),
			h.Th(g.Text("Expression")),
			h.Th(g.Text("Line")),
		)),
		h.TBody(g.Map(bs, func(b domgen.Binding) g.Node {
			return h.Tr(
				h.Td(g.Textf("%s #%d", b.Template, b.Instance)),
				h.Td(g.If(b.Reactive, h.Class("reactive")), g.Text(b.Kind.String())),
				h.Td(g.Text(path(b.Path))),
				h.Td(g.Text(b.Name)),
				h.Td(h.Pre(h.Code(g.Text(strings.TrimSpace(b.Expr))))),
				h.Td(g.Textf("%d", b.Pos.Line)),
			)
		})),
	)
}

func components(cs []domgen.ComponentCall) g.Node {
	return h.Table(
		h.THead(h.Tr(h.Th(g.Text("Component")), h.Th(g.Text("Props")), h.Th(g.Text("Line")))),
		h.TBody(g.Map(cs, func(c domgen.ComponentCall) g.Node {
			props := make([]string, len(c.Props))
			for i, p := range c.Props {
				props[i] = fmt.Sprintf("%s (%s)", p.Name, p.Kind)
			}
			return h.Tr(
				h.Td(g.Text(c.Name)),
				h.Td(g.Text(strings.Join(props, ", "))),
				h.Td(g.Textf("%d", c.Pos.Line)),
			)
		})),
	)
}

func path(p []int) string {
	if len(p) == 0 {
		return "root"
	}
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ".")
}
