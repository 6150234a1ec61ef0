package hostjs

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestScan_Regions(t *testing.T) {
	type tc struct {
		input  string
		inner  []string
		outer  []string
		header int
	}

	tests := map[string]tc{
		"no markup": {
			input: "const x = 1;\n",
		},
		"single element": {
			input: "const a = <div>hi</div>;\n",
			inner: []string{"<div>hi</div>"},
			outer: []string{"<div>hi</div>"},
		},
		"parenthesized return": {
			input: "function App() {\n    return (\n        <p/>\n    );\n}\n",
			inner: []string{"<p/>"},
			outer: []string{"(\n        <p/>\n    )"},
		},
		"nested markup is one region": {
			input: "const a = <div>{ok ? <b/> : <i/>}</div>;\n",
			inner: []string{"<div>{ok ? <b/> : <i/>}</div>"},
			outer: []string{"<div>{ok ? <b/> : <i/>}</div>"},
		},
		"two regions": {
			input: "const a = <a/>;\nconst b = (<b/>);\n",
			inner: []string{"<a/>", "<b/>"},
			outer: []string{"<a/>", "(<b/>)"},
		},
		"if condition parens are kept": {
			input: "if (<a/>) {}\n",
			inner: []string{"<a/>"},
			outer: []string{"<a/>"},
		},
		"header after imports": {
			input:  "import { a } from \"a\";\nimport b from \"b\";\nconst x = 1;\n",
			header: len("import { a } from \"a\";\nimport b from \"b\";\n"),
		},
		"header after shebang": {
			input:  "#!/usr/bin/env node\nconst x = 1;\n",
			header: len("#!/usr/bin/env node\n"),
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f, err := Scan(context.Background(), []byte(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(f.Regions) != len(tt.inner) {
				t.Fatalf("got %d regions, want %d", len(f.Regions), len(tt.inner))
			}
			for i, r := range f.Regions {
				if got := tt.input[r.Start:r.End]; got != tt.inner[i] {
					t.Errorf("region %d inner = %q, want %q", i, got, tt.inner[i])
				}
				if got := tt.input[r.OuterStart:r.OuterEnd]; got != tt.outer[i] {
					t.Errorf("region %d outer = %q, want %q", i, got, tt.outer[i])
				}
			}
			if f.HeaderOffset != tt.header {
				t.Errorf("HeaderOffset = %d, want %d", f.HeaderOffset, tt.header)
			}
		})
	}
}

func TestScan_SyntaxErrors(t *testing.T) {
	type tc struct {
		input string
		line  int
	}

	tests := map[string]tc{
		"unbalanced expression": {
			input: "const a = 1;\nconst b = (2;\n",
			line:  2,
		},
		"unterminated element": {
			input: "const a = <div>\n",
			line:  2,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Scan(context.Background(), []byte(tt.input))
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if se.Line < 1 || se.Line > tt.line {
				t.Errorf("error line = %d, want at most %d", se.Line, tt.line)
			}
			if se.Message == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestScan_UnterminatedElement(t *testing.T) {
	type tc struct {
		input   string
		message string
		line    int
		column  int
	}

	tests := map[string]tc{
		"innermost open tag": {
			input:   "const a = <div><span>;",
			message: "unterminated element <span>",
			line:    1,
			column:  16,
		},
		"open tag on a later line": {
			input:   "const a = 1;\nconst b = <p>\n",
			message: "unterminated element <p>",
			line:    2,
			column:  11,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Scan(context.Background(), []byte(tt.input))
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("expected *SyntaxError, got %v", err)
			}
			if se.Message != tt.message {
				t.Errorf("Message = %q, want %q", se.Message, tt.message)
			}
			if se.Line != tt.line || se.Column != tt.column {
				t.Errorf("position = %d:%d, want %d:%d", se.Line, se.Column, tt.line, tt.column)
			}
		})
	}
}

func TestScan_Containers(t *testing.T) {
	src := "const a = <p title={t}>It's {ok && <b>don't</b>}</p>;\n"
	f, err := Scan(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"{t}", "{ok && <b>don't</b>}"}
	for _, w := range want {
		start := strings.Index(src, w)
		end, ok := f.Containers[start]
		if !ok {
			t.Errorf("no container recorded for %q", w)
			continue
		}
		if got := src[start:end]; got != w {
			t.Errorf("container = %q, want %q", got, w)
		}
	}
}
