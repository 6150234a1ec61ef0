package domgen

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// Fixture is a golden compilation case stored as a txtar archive with an
// input.jsx section, an output.js section and an optional options section.
type Fixture struct {
	Name    string
	Input   string
	Output  string
	Options Options
}

// LoadFixture reads a fixture archive.
func LoadFixture(path string) (*Fixture, error) {
	ar, err := txtar.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return parseFixture(strings.TrimSuffix(filepath.Base(path), ".txtar"), ar)
}

// LoadFixtures reads every *.txtar fixture in dir.
func LoadFixtures(dir string) ([]*Fixture, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.txtar"))
	if err != nil {
		return nil, err
	}
	fixtures := make([]*Fixture, 0, len(paths))
	for _, p := range paths {
		f, err := LoadFixture(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		fixtures = append(fixtures, f)
	}
	return fixtures, nil
}

func parseFixture(name string, ar *txtar.Archive) (*Fixture, error) {
	f := &Fixture{Name: name, Options: DefaultOptions()}
	var haveInput, haveOutput bool
	for _, file := range ar.Files {
		data := string(file.Data)
		switch file.Name {
		case "input.jsx":
			f.Input, haveInput = data, true
		case "output.js":
			f.Output, haveOutput = data, true
		case "options":
			if err := applyFixtureOptions(&f.Options, data); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("unknown fixture section %q", file.Name)
		}
	}
	if !haveInput || !haveOutput {
		return nil, fmt.Errorf("fixture needs input.jsx and output.js sections")
	}
	return f, nil
}

// applyFixtureOptions reads one option per line: module=<m>, cjs,
// no-delegation, no-wrap or marker-refs.
func applyFixtureOptions(opts *Options, data string) error {
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
		case strings.HasPrefix(line, "module="):
			opts.Module = strings.TrimPrefix(line, "module=")
		case line == "cjs":
			opts.Format = ModuleCJS
		case line == "no-delegation":
			opts.Delegation = false
		case line == "no-wrap":
			opts.WrapConditionals = false
		case line == "no-memo":
			opts.MemoWrapper = false
		case line == "marker-refs":
			opts.MarkerRefs = true
		default:
			return fmt.Errorf("unknown fixture option %q", line)
		}
	}
	return nil
}

// Run compiles the fixture input and returns a diff against the expected
// output, or "" when they match after normalization.
func (f *Fixture) Run(ctx context.Context) (string, error) {
	res, err := Compile(ctx, f.Name+".jsx", []byte(f.Input), f.Options)
	if err != nil {
		return "", err
	}
	if err := res.VerifyPlaceholders(); err != nil {
		return "", err
	}
	return cmp.Diff(NormalizeOutput(f.Output), NormalizeOutput(res.Code)), nil
}

// NormalizeOutput trims every line and drops blank lines and line comments,
// so generated code can be compared independent of indentation.
func NormalizeOutput(code string) []string {
	var lines []string
	for _, line := range strings.Split(code, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
