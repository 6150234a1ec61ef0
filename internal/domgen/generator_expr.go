package domgen

import (
	"github.com/grindlemire/go-domgen/internal/hostjs"
)

// exprCode returns e's source with nested markup replaced by generated code.
func (g *Generator) exprCode(e *Expr) string {
	return g.codeRange(e, 0, len(e.Code))
}

// codeRange is exprCode restricted to e.Code[from:to].
func (g *Generator) codeRange(e *Expr, from, to int) string {
	var out []byte
	cur := from
	for _, emb := range e.Embedded {
		if emb.Start < from || emb.End > to {
			continue
		}
		out = append(out, e.Code[cur:emb.Start]...)
		out = append(out, g.node(emb.Node)...)
		cur = emb.End
	}
	out = append(out, e.Code[cur:to]...)
	return string(out)
}

// insertValue returns the value passed to insert for a dynamic child and
// whether it is a reactive accessor.
func (g *Generator) insertValue(child Node) (string, bool) {
	if e, ok := child.(*Expr); ok {
		return g.accessor(e)
	}
	return g.node(child), false
}

// accessor shapes an expression for insertion. Identifiers and
// non-reactive values pass through, f() becomes f, reactive conditionals
// over markup are memoized and other reactive expressions become thunks.
func (g *Generator) accessor(e *Expr) (string, bool) {
	info := e.Info
	if !e.Dynamic || !info.Reactive {
		return g.exprCode(e), false
	}
	switch {
	case info.Callee != "" && len(e.Embedded) == 0:
		return info.Callee, true
	case g.opts.WrapConditionals && g.conditionalMarkup(e):
		return g.memoConditional(e), true
	case info.Kind == hostjs.KindObject:
		return "() => (" + g.exprCode(e) + ")", true
	}
	return "() => " + g.exprCode(e), true
}

// conditionalMarkup reports whether e is a ternary or && whose branches
// contain markup.
func (g *Generator) conditionalMarkup(e *Expr) bool {
	b := e.Info.Branches
	if b == nil || (b.Op != "?" && b.Op != "&&") {
		return false
	}
	for _, emb := range e.Embedded {
		if emb.Start >= b.Then.Start {
			return true
		}
	}
	return false
}

// memoConditional emits a conditional whose test is evaluated on its own,
// memoized when MemoWrapper is set.
func (g *Generator) memoConditional(e *Expr) string {
	b := e.Info.Branches
	c := g.nextCondVar()
	test := g.codeRange(e, b.Test.Start, b.Test.End)

	w := g.newWriter()
	w.writeln("(() => {")
	w.indent++
	if g.opts.MemoWrapper {
		w.writef("const %s = %s(() => !!(%s));", c, g.use("memo"), test)
	} else {
		w.writef("const %s = () => !!(%s);", c, test)
	}
	then := g.codeRange(e, b.Then.Start, b.Then.End)
	if b.Op == "?" {
		els := g.codeRange(e, b.Else.Start, b.Else.End)
		w.writef("return () => %s() ? %s : %s;", c, then, els)
	} else {
		w.writef("return () => %s() && %s;", c, then)
	}
	w.indent--
	w.writeln("})()")
	return w.String()
}
