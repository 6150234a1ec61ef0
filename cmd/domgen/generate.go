package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/grindlemire/go-domgen/internal/domgen"
	"github.com/grindlemire/go-domgen/internal/log"
)

// generateConfig holds the parsed generate and check arguments.
type generateConfig struct {
	verbose   bool
	jobs      int
	output    string
	sourcemap bool
	verify    bool
	opts      domgen.Options
	paths     []string
}

// parseGenerateArgs parses generate options. Flags taking a value accept
// both "--flag value" and "--flag=value".
func parseGenerateArgs(args []string) (*generateConfig, error) {
	cfg := &generateConfig{jobs: 4, opts: domgen.DefaultOptions()}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		name, value, hasValue := strings.Cut(arg, "=")
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			cfg.paths = append(cfg.paths, arg)
			continue
		}

		takeValue := func() (string, error) {
			if hasValue {
				return value, nil
			}
			if i+1 >= len(args) {
				return "", fmt.Errorf("%s requires a value", name)
			}
			i++
			return args[i], nil
		}

		switch name {
		case "-v", "--verbose":
			cfg.verbose = true
		case "--cjs":
			cfg.opts.Format = domgen.ModuleCJS
		case "--no-delegation":
			cfg.opts.Delegation = false
		case "--dev":
			cfg.opts.MemoWrapper = false
			cfg.verify = true
		case "--marker-refs":
			cfg.opts.MarkerRefs = true
		case "--sourcemap":
			cfg.sourcemap = true
		case "--module":
			v, err := takeValue()
			if err != nil {
				return nil, err
			}
			cfg.opts.Module = v
		case "-o", "--output":
			v, err := takeValue()
			if err != nil {
				return nil, err
			}
			cfg.output = v
		case "-j", "--jobs":
			v, err := takeValue()
			if err != nil {
				return nil, err
			}
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid job count %q", v)
			}
			cfg.jobs = n
		default:
			return nil, fmt.Errorf("unknown option %s", arg)
		}
	}

	// Default to current directory if no paths specified
	if len(cfg.paths) == 0 {
		cfg.paths = []string{"."}
	}
	return cfg, nil
}

// fileResult is the outcome of compiling one input.
type fileResult struct {
	path string
	res  *domgen.Result
	err  error
}

// runGenerate implements the generate subcommand.
// It compiles .jsx files and writes the corresponding .js files.
func runGenerate(args []string) error {
	cfg, err := parseGenerateArgs(args)
	if err != nil {
		return err
	}
	return generate(cfg, true)
}

// generate compiles every input in parallel and reports diagnostics in
// input order. Output files are written only when write is set.
func generate(cfg *generateConfig, write bool) error {
	if cfg.verbose {
		log.SetOutput(os.Stderr, slog.LevelDebug)
	}

	files, err := collectJSXFiles(cfg.paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .jsx files found")
	}
	if cfg.output != "" && len(files) != 1 {
		return fmt.Errorf("--output needs exactly one input file, got %d", len(files))
	}

	if cfg.verbose {
		fmt.Fprintf(os.Stderr, "Found %d .jsx file(s)\n", len(files))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	compiler := domgen.NewCompiler(cfg.opts)
	results := make([]fileResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.jobs)
	for i, inputPath := range files {
		g.Go(func() error {
			res, err := compileFile(ctx, compiler, inputPath, cfg.verify)
			if err == nil && write {
				err = writeResult(inputPath, res, cfg)
			}
			results[i] = fileResult{path: inputPath, res: res, err: err}
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	p := newPrinter(os.Stderr)
	var errorCount int
	for _, r := range results {
		if r.err != nil {
			p.errors(r.err)
			errorCount++
			continue
		}
		p.warnings(r.res.Warnings)
	}
	if write {
		if msg := missingModule(cfg.opts, results); msg != "" {
			p.notice(msg)
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("%d file(s) had errors", errorCount)
	}
	if cfg.verbose {
		fmt.Fprintf(os.Stderr, "Successfully processed %d file(s)\n", len(files))
	}
	return nil
}

// missingModule describes runtime helpers that generated code calls without
// importing them, or returns "" when a module is set or nothing is used.
func missingModule(opts domgen.Options, results []fileResult) string {
	if opts.Module != "" {
		return ""
	}
	seen := make(map[string]bool)
	var helpers []string
	for _, r := range results {
		if r.res == nil {
			continue
		}
		for _, h := range r.res.Helpers {
			if !seen[h] {
				seen[h] = true
				helpers = append(helpers, h)
			}
		}
	}
	if len(helpers) == 0 {
		return ""
	}
	sort.Strings(helpers)
	return fmt.Sprintf("output uses %s without importing them; pass --module to add the import",
		strings.Join(helpers, ", "))
}

// compileFile reads and compiles one input.
func compileFile(ctx context.Context, c *domgen.Compiler, inputPath string, verify bool) (*domgen.Result, error) {
	source, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	res, err := c.Compile(ctx, inputPath, source)
	if err != nil {
		return nil, err
	}
	if verify {
		if err := res.VerifyPlaceholders(); err != nil {
			return nil, err
		}
	}
	log.Generate("compiled file", "file", inputPath, "templates", len(res.Templates), "bindings", len(res.Bindings))
	return res, nil
}

// writeResult writes the compiled code and, if requested, its source map.
func writeResult(inputPath string, res *domgen.Result, cfg *generateConfig) error {
	if cfg.output == "-" {
		_, err := os.Stdout.WriteString(res.Code)
		return err
	}

	outputPath := cfg.output
	if outputPath == "" {
		outputPath = outputFileName(inputPath)
	}
	if err := os.WriteFile(outputPath, []byte(res.Code), 0644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	log.Generate("wrote output", "input", inputPath, "output", outputPath)

	if cfg.sourcemap {
		data, err := res.SourceMap.ToJSON()
		if err != nil {
			return fmt.Errorf("encoding source map: %w", err)
		}
		if err := os.WriteFile(domgen.SourceMapFileName(outputPath), data, 0644); err != nil {
			return fmt.Errorf("writing source map: %w", err)
		}
	}
	return nil
}
