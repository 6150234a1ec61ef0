package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/grindlemire/go-domgen/internal/domgen"
)

const (
	ansiReset  = "\x1b[0m"
	ansiBold   = "\x1b[1m"
	ansiRed    = "\x1b[31m"
	ansiYellow = "\x1b[33m"
	ansiCyan   = "\x1b[36m"
)

// printer writes compiler diagnostics, colored when the output is a terminal.
type printer struct {
	w     io.Writer
	color bool
}

// newPrinter creates a printer for f. Color is used only if f is a terminal.
func newPrinter(f *os.File) *printer {
	return &printer{w: f, color: term.IsTerminal(int(f.Fd()))}
}

func (p *printer) paint(code, s string) string {
	if !p.color {
		return s
	}
	return code + s + ansiReset
}

// errors prints err. Compiler error lists are printed one diagnostic per line.
func (p *printer) errors(err error) {
	var list *domgen.ErrorList
	if !errors.As(err, &list) {
		fmt.Fprintf(p.w, "%s %v\n", p.paint(ansiRed, "error:"), err)
		return
	}
	for _, e := range list.Errors() {
		p.diagnostic(e, ansiRed, "error")
	}
}

// warnings prints non-fatal diagnostics.
func (p *printer) warnings(ws []*domgen.Error) {
	for _, w := range ws {
		p.diagnostic(w, ansiYellow, "warning")
	}
}

// notice prints a warning that is not tied to a source position.
func (p *printer) notice(msg string) {
	fmt.Fprintf(p.w, "%s %s\n", p.paint(ansiYellow, "warning:"), msg)
}

func (p *printer) diagnostic(e *domgen.Error, color, label string) {
	fmt.Fprintf(p.w, "%s: %s %s\n", p.paint(ansiBold, e.Pos.String()), p.paint(color, label+":"), e.Message)
	if e.Hint != "" {
		fmt.Fprintf(p.w, "    %s %s\n", p.paint(ansiCyan, "hint:"), e.Hint)
	}
}
