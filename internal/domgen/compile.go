package domgen

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/grindlemire/go-domgen/internal/hostjs"
	"github.com/grindlemire/go-domgen/internal/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer trace.Tracer = otel.Tracer("github.com/grindlemire/go-domgen/internal/domgen")

// Result is the output of compiling one source file.
type Result struct {
	Code       string
	Templates  []*Template
	Bindings   []Binding
	Components []ComponentCall
	Helpers    []string // runtime helpers referenced by Code, sorted
	Events     []string // delegated events, in first-use order
	SourceMap  *SourceMap
	Warnings   []*Error
}

// Compiler compiles JSX sources with fixed options. It holds no mutable
// state and may be shared between goroutines.
type Compiler struct {
	opts Options
}

// NewCompiler creates a compiler. A nil BuiltIns map gets the defaults.
func NewCompiler(opts Options) *Compiler {
	if opts.BuiltIns == nil {
		opts.BuiltIns = DefaultBuiltIns()
	}
	if opts.Indent == "" {
		opts.Indent = "    "
	}
	return &Compiler{opts: opts}
}

// Options returns the compiler's options.
func (c *Compiler) Options() Options {
	return c.opts
}

// Compile compiles src with opts. See [Compiler.Compile].
func Compile(ctx context.Context, filename string, src []byte, opts Options) (*Result, error) {
	return NewCompiler(opts).Compile(ctx, filename, src)
}

// Compile runs host scan, parse, analysis, extraction and emission over src
// and splices the generated code into the host source. On any error no
// output is returned.
func (c *Compiler) Compile(ctx context.Context, filename string, src []byte) (res *Result, err error) {
	ctx, span := tracer.Start(ctx, "domgen.Compile", trace.WithAttributes(
		attribute.String("file", filename),
		attribute.Int("bytes", len(src)),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "compile failed")
		}
		span.End()
	}()

	source := string(src)
	var file *hostjs.File
	var roots []*Root
	analyzer := NewAnalyzer(c.opts.BuiltIns)

	err = stage(ctx, "scan", func(ctx context.Context) error {
		var err error
		file, err = c.scan(ctx, filename, src)
		if err == nil {
			log.Scan("scanned host source", "file", filename, "regions", len(file.Regions))
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, "parse", func(ctx context.Context) error {
		var err error
		roots, err = Parse(ctx, filename, source, file)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = stage(ctx, "analyze", func(ctx context.Context) error {
		return analyzer.Analyze(roots)
	})
	if err != nil {
		return nil, err
	}

	x := newExtractor()
	g := newGenerator(c.opts, x)
	generated := make([]string, len(roots))
	err = stage(ctx, "emit", func(ctx context.Context) error {
		for _, r := range roots {
			x.extract(r.Node)
		}
		for i, r := range roots {
			generated[i] = g.Generate(r.Node)
		}
		if len(x.templates.list) > 0 {
			g.use("template")
		}
		log.Emit("generated markup", "file", filename,
			"templates", len(x.templates.list), "bindings", len(g.bindings))
		return nil
	})
	if err != nil {
		return nil, err
	}

	res = &Result{
		Templates:  x.templates.list,
		Bindings:   g.bindings,
		Components: g.components,
		Helpers:    g.Helpers(),
		Events:     g.events,
		SourceMap:  NewSourceMap(filename),
		Warnings:   analyzer.Warnings(),
	}
	res.Code = c.splice(source, file, roots, generated, res)
	span.SetAttributes(
		attribute.Int("templates", len(res.Templates)),
		attribute.Int("bindings", len(res.Bindings)),
	)
	if log.Enabled() {
		log.Compile("compiled", "file", filename, "roots", len(roots), "helpers", strings.Join(res.Helpers, ","))
		for _, w := range res.Warnings {
			log.Warn(w.Message, "pos", w.Pos.String())
		}
	}
	return res, nil
}

// stage runs fn in its own span unless ctx is already done.
func stage(ctx context.Context, name string, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx, span := tracer.Start(ctx, name)
	defer span.End()
	if err := fn(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, name+" failed")
		return err
	}
	return nil
}

// scan runs the host scanner and converts grammar errors to an ErrorList.
func (c *Compiler) scan(ctx context.Context, filename string, src []byte) (*hostjs.File, error) {
	file, err := hostjs.Scan(ctx, src)
	if err == nil {
		return file, nil
	}
	var se *hostjs.SyntaxError
	if !errors.As(err, &se) {
		return nil, fmt.Errorf("scanning %s: %w", filename, err)
	}
	errs := NewErrorList()
	errs.AddErrorf(Position{File: filename, Line: se.Line, Column: se.Column, Offset: se.Offset}, "syntax error: %s", se.Message)
	return nil, errs.Err()
}

// edit replaces source[start:end] with text.
type edit struct {
	start, end int
	text       string
	root       bool
}

// splice applies generated code, declarations and the delegation footer to
// the host source.
func (c *Compiler) splice(source string, file *hostjs.File, roots []*Root, generated []string, res *Result) string {
	at := file.HeaderOffset
	if len(roots) > 0 && roots[0].Start < at {
		at = 0
	}

	edits := make([]edit, 0, len(roots)+1)
	if header := c.header(res.Templates, res.Helpers); header != "" {
		if at > 0 && source[at-1] != '\n' {
			header = "\n" + header
		}
		if at < len(source) && source[at] != '\n' {
			header += "\n"
		}
		edits = append(edits, edit{start: at, end: at, text: header})
	}
	for i, r := range roots {
		code := strings.ReplaceAll(generated[i], "\n", "\n"+lineIndent(source, r.Start))
		edits = append(edits, edit{start: r.Start, end: r.End, text: code, root: true})
	}
	sort.SliceStable(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var w outWriter
	cur := 0
	for _, e := range edits {
		w.write(source[cur:e.start])
		if e.root {
			line, col := lineCol(source, e.start)
			res.SourceMap.AddMapping(SourceMapping{
				JSLine:  w.line,
				JSCol:   w.col,
				JSXLine: line,
				JSXCol:  col,
				Length:  e.end - e.start,
				Lines:   countLines(e.text),
			})
		}
		w.write(e.text)
		cur = e.end
	}
	w.write(source[cur:])

	if len(res.Events) > 0 {
		quoted := make([]string, len(res.Events))
		for i, ev := range res.Events {
			quoted[i] = jsString(ev)
		}
		if w.sb.Len() > 0 && w.col != 0 {
			w.write("\n")
		}
		w.write(fmt.Sprintf("\ndelegateEvents([%s]);\n", strings.Join(quoted, ", ")))
	}
	return w.sb.String()
}

// header returns the helper import and template declarations.
func (c *Compiler) header(templates []*Template, helpers []string) string {
	var sb strings.Builder
	if c.opts.Module != "" && len(helpers) > 0 {
		list := strings.Join(helpers, ", ")
		if c.opts.Format == ModuleCJS {
			fmt.Fprintf(&sb, "const { %s } = require(%s);\n", list, jsString(c.opts.Module))
		} else {
			fmt.Fprintf(&sb, "import { %s } from %s;\n", list, jsString(c.opts.Module))
		}
	}
	for _, t := range templates {
		fmt.Fprintf(&sb, "const %s = /*#__PURE__*/template(`%s`);\n", t.Name, t.HTML)
	}
	return sb.String()
}

// outWriter builds output while tracking the 0-indexed line and column.
type outWriter struct {
	sb   strings.Builder
	line int
	col  int
}

func (w *outWriter) write(s string) {
	w.sb.WriteString(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		w.line += strings.Count(s, "\n")
		w.col = len(s) - i - 1
	} else {
		w.col += len(s)
	}
}

// lineIndent returns the leading whitespace of the line containing offset.
func lineIndent(source string, offset int) string {
	start := strings.LastIndexByte(source[:offset], '\n') + 1
	end := start
	for end < len(source) && (source[end] == ' ' || source[end] == '\t') {
		end++
	}
	if end > offset {
		end = offset
	}
	return source[start:end]
}

// lineCol returns the 0-indexed line and byte column of offset.
func lineCol(source string, offset int) (int, int) {
	line := strings.Count(source[:offset], "\n")
	return line, offset - (strings.LastIndexByte(source[:offset], '\n') + 1)
}
