package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/grindlemire/go-domgen/internal/domgen"
	"github.com/grindlemire/go-domgen/internal/report"
)

// runInspect implements the inspect subcommand.
// It compiles one file and prints what the compiler extracted.
func runInspect(args []string) error {
	var htmlPath string
	var rest []string
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--html":
			if i+1 >= len(args) {
				return fmt.Errorf("--html requires a value")
			}
			i++
			htmlPath = args[i]
		case strings.HasPrefix(args[i], "--html="):
			htmlPath = strings.TrimPrefix(args[i], "--html=")
		default:
			rest = append(rest, args[i])
		}
	}

	cfg, err := parseGenerateArgs(rest)
	if err != nil {
		return err
	}
	if len(cfg.paths) != 1 || !strings.HasSuffix(cfg.paths[0], ".jsx") {
		return fmt.Errorf("inspect needs exactly one .jsx file")
	}
	inputPath := cfg.paths[0]

	res, err := compileFile(context.Background(), domgen.NewCompiler(cfg.opts), inputPath, false)
	if err != nil {
		newPrinter(os.Stderr).errors(err)
		return fmt.Errorf("%s had errors", inputPath)
	}
	newPrinter(os.Stderr).warnings(res.Warnings)

	if htmlPath != "" {
		f, err := os.Create(htmlPath)
		if err != nil {
			return fmt.Errorf("creating report: %w", err)
		}
		defer f.Close()
		if err := report.Write(f, inputPath, res); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		return f.Close()
	}

	return printInspection(os.Stdout, res)
}

// printInspection writes templates, bindings and components as text tables.
func printInspection(w io.Writer, res *domgen.Result) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "TEMPLATE\tUSES\tMARKUP")
	for _, t := range res.Templates {
		fmt.Fprintf(tw, "%s\t%d\t%s\n", t.Name, t.Refs, t.HTML)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "BINDING\tREACTIVE\tLINE")
	for _, b := range res.Bindings {
		fmt.Fprintf(tw, "%s\t%t\t%d\n", b, b.Reactive, b.Pos.Line)
	}
	fmt.Fprintln(tw)

	fmt.Fprintln(tw, "COMPONENT\tPROPS\tLINE")
	for _, c := range res.Components {
		props := make([]string, len(c.Props))
		for i, p := range c.Props {
			props[i] = p.Name + ":" + p.Kind.String()
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\n", c.Name, strings.Join(props, " "), c.Pos.Line)
	}
	fmt.Fprintln(tw)

	fmt.Fprintf(tw, "helpers: %s\n", strings.Join(res.Helpers, ", "))
	if len(res.Events) > 0 {
		fmt.Fprintf(tw, "delegated events: %s\n", strings.Join(res.Events, ", "))
	}
	return tw.Flush()
}
