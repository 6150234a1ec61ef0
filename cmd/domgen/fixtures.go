package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/grindlemire/go-domgen/internal/domgen"
)

// runTest implements the test subcommand.
// It runs every .txtar fixture in a directory and prints a diff per failure.
func runTest(args []string) error {
	verbose := false
	var dirs []string
	for _, arg := range args {
		if arg == "-v" || arg == "--verbose" {
			verbose = true
		} else {
			dirs = append(dirs, arg)
		}
	}
	if len(dirs) == 0 {
		dirs = []string{"testdata"}
	}

	failed := 0
	total := 0
	for _, dir := range dirs {
		fixtures, err := domgen.LoadFixtures(dir)
		if err != nil {
			return err
		}
		total += len(fixtures)
		failed += runFixtures(context.Background(), os.Stdout, fixtures, verbose)
	}

	if total == 0 {
		return fmt.Errorf("no fixtures found")
	}
	fmt.Printf("%d passed, %d failed\n", total-failed, failed)
	if failed > 0 {
		return fmt.Errorf("%d fixture(s) failed", failed)
	}
	return nil
}

// runFixtures runs fixtures and returns the number that failed.
func runFixtures(ctx context.Context, w io.Writer, fixtures []*domgen.Fixture, verbose bool) int {
	failed := 0
	for _, f := range fixtures {
		diff, err := f.Run(ctx)
		switch {
		case err != nil:
			failed++
			fmt.Fprintf(w, "FAIL %s\n%s\n", f.Name, indent(err.Error()))
		case diff != "":
			failed++
			fmt.Fprintf(w, "FAIL %s (-want +got)\n%s\n", f.Name, indent(diff))
		case verbose:
			fmt.Fprintf(w, "ok   %s\n", f.Name)
		}
	}
	return failed
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = "    " + l
	}
	return strings.Join(lines, "\n")
}
