// Package main provides the CLI tool for the JSX to DOM compiler.
//
// Usage:
//
//	domgen generate [path...]    Compile .jsx files to .js
//	domgen check [path...]       Check .jsx files without writing output
//	domgen inspect file.jsx      Print templates, bindings and components
//	domgen test dir              Run golden fixtures
//	domgen help                  Show help
//
// Examples:
//
//	domgen generate ./...          Recursively find and compile all .jsx files
//	domgen generate ./components   Process a specific directory
//	domgen generate app.jsx        Process a specific file
//	domgen check app.jsx           Check syntax without generating
package main

import (
	"fmt"
	"os"

	"github.com/grindlemire/go-domgen/internal/log"
)

const version = "0.1.0"

const usage = `domgen - compile JSX markup to fine-grained reactive DOM code

Usage:
  domgen <command> [options] [path...]

Commands:
  generate    Compile .jsx files to .js (use --module to import runtime helpers)
  check       Check .jsx files without writing output
  inspect     Print the templates, bindings and components of one file
  test        Run .txtar golden fixtures in a directory
  version     Print version information
  help        Show this help message

Set DOMGEN_DEBUG=/path/to/file to append debug logs to a file.

Generate options:
  -v                Verbose output and debug logging
  -j N              Compile up to N files in parallel (default 4)
  --module m        Import runtime helpers from module m
  --cjs             Write the helper import as require()
  --no-delegation   Attach every event handler directly
  --dev             Evaluate conditional tests without memo() and verify placeholders
  --marker-refs     Pass placeholder nodes as insert anchors
  --output file     Write to file instead of x.js (single input, - for stdout)
  --sourcemap       Also write x.js.map

Examples:
  domgen generate ./...                    Recursively process all .jsx files
  domgen generate --module solid-js/web .  Compile files in a directory
  domgen generate --output - app.jsx       Print compiled output
  domgen check -v ./...                    Check all files
  domgen inspect --html report.html app.jsx
  domgen test ./testdata                   Run golden fixtures
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	if len(argv) < 1 {
		fmt.Print(usage)
		return 1
	}

	if logFile, err := log.FromEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	} else {
		defer logFile.Close()
	}

	command := argv[0]
	args := argv[1:]
	log.Debug("running command", "command", command, "args", args)

	var err error
	switch command {
	case "generate":
		err = runGenerate(args)
	case "check":
		err = runCheck(args)
	case "inspect":
		err = runInspect(args)
	case "test":
		err = runTest(args)
	case "version":
		fmt.Printf("domgen version %s\n", version)
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", command)
		fmt.Print(usage)
		return 1
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
