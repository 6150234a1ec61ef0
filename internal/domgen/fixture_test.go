package domgen

import (
	"context"
	"testing"
)

func TestFixtures(t *testing.T) {
	fixtures, err := LoadFixtures("testdata")
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}
	if len(fixtures) == 0 {
		t.Fatal("no fixtures found")
	}

	for _, f := range fixtures {
		t.Run(f.Name, func(t *testing.T) {
			diff, err := f.Run(context.Background())
			if err != nil {
				t.Fatalf("compile failed: %v", err)
			}
			if diff != "" {
				t.Errorf("output mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNormalizeOutput(t *testing.T) {
	type tc struct {
		input    string
		expected []string
	}

	tests := map[string]tc{
		"trims and drops blanks": {
			input:    "  a\n\n\tb  \n",
			expected: []string{"a", "b"},
		},
		"drops line comments": {
			input:    "// header\nx();\n  // inner\n",
			expected: []string{"x();"},
		},
		"empty": {
			input:    "",
			expected: nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := NormalizeOutput(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %q, want %q", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("line %d = %q, want %q", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestApplyFixtureOptions(t *testing.T) {
	opts := DefaultOptions()
	err := applyFixtureOptions(&opts, "# comment\nmodule=solid-js/web\ncjs\nno-delegation\nno-wrap\nno-memo\nmarker-refs\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Module != "solid-js/web" || opts.Format != ModuleCJS || opts.Delegation || opts.WrapConditionals || opts.MemoWrapper || !opts.MarkerRefs {
		t.Errorf("options not applied: %+v", opts)
	}

	if err := applyFixtureOptions(&opts, "ssr"); err == nil {
		t.Error("expected error for unknown option")
	}
}
