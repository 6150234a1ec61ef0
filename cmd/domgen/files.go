package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// collectJSXFiles finds all .jsx files from the given paths.
// Supports:
//   - Direct file paths: "app.jsx"
//   - Directory paths: "./components"
//   - Recursive pattern: "./..."
func collectJSXFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			files = append(files, p)
		}
	}

	for _, path := range paths {
		if strings.HasSuffix(path, "/...") || path == "..." {
			root := strings.TrimSuffix(strings.TrimSuffix(path, "..."), "/")
			if root == "" {
				root = "."
			}

			err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() && p != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				if !d.IsDir() && strings.HasSuffix(p, ".jsx") {
					add(p)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("walking %s: %w", root, err)
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}

		if info.IsDir() {
			// Collect all .jsx files in directory (non-recursive)
			entries, err := os.ReadDir(path)
			if err != nil {
				return nil, fmt.Errorf("reading directory %s: %w", path, err)
			}
			for _, entry := range entries {
				if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".jsx") {
					add(filepath.Join(path, entry.Name()))
				}
			}
		} else if strings.HasSuffix(path, ".jsx") {
			add(path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// skipDir reports whether a recursive walk should skip a directory.
func skipDir(name string) bool {
	return name == "node_modules" || strings.HasPrefix(name, ".")
}

// outputFileName converts a .jsx filename to its output .js filename.
//
//	app.jsx            -> app.js
//	components/nav.jsx -> components/nav.js
func outputFileName(inputPath string) string {
	return strings.TrimSuffix(inputPath, ".jsx") + ".js"
}
