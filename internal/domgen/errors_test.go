package domgen

import (
	"testing"
)

func TestError_Format(t *testing.T) {
	type tc struct {
		err      *Error
		expected string
	}

	pos := Position{File: "app.jsx", Line: 3, Column: 7}
	tests := map[string]tc{
		"plain": {
			err:      NewError(pos, "unexpected '}' in text"),
			expected: "app.jsx:3:7: error: unexpected '}' in text",
		},
		"formatted": {
			err:      NewErrorf(Position{Line: 1, Column: 2}, "unknown prop %q", "wen"),
			expected: `1:2: error: unknown prop "wen"`,
		},
		"with hint": {
			err:      NewErrorWithHint(pos, "unknown element <buton>", `did you mean "button"?`),
			expected: `app.jsx:3:7: error: unknown element <buton> (did you mean "button"?)`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorList(t *testing.T) {
	el := NewErrorList()
	if el.HasErrors() || el.Err() != nil || el.Error() != "" {
		t.Fatal("new list should be empty")
	}

	el.AddError(Position{Line: 1, Column: 1}, "first")
	el.AddErrorf(Position{Line: 2, Column: 1}, "second %d", 2)

	if n := len(el.Errors()); n != 2 {
		t.Fatalf("got %d errors, want 2", n)
	}
	if want := "1:1: error: first\n2:1: error: second 2"; el.Error() != want {
		t.Errorf("Error() = %q, want %q", el.Error(), want)
	}

	errs := el.Errors()
	errs[0] = nil
	if el.Errors()[0] == nil {
		t.Error("Errors() should return a copy")
	}
}

func TestSuggest(t *testing.T) {
	type tc struct {
		name       string
		candidates []string
		expected   string
	}

	tests := map[string]tc{
		"missing letter": {
			name:       "buton",
			candidates: commonTags,
			expected:   `did you mean "button"?`,
		},
		"extra letter": {
			name:       "whenn",
			candidates: []string{"when", "fallback", "keyed"},
			expected:   `did you mean "when"?`,
		},
		"case insensitive": {
			name:       "FALLBAK",
			candidates: []string{"when", "fallback"},
			expected:   `did you mean "fallback"?`,
		},
		"closest wins": {
			name:       "ec",
			candidates: []string{"each-of-many", "each"},
			expected:   `did you mean "each"?`,
		},
		"no match": {
			name:       "zzz",
			candidates: []string{"when", "fallback"},
			expected:   "",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := suggest(tt.name, tt.candidates); got != tt.expected {
				t.Errorf("suggest(%q) = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}
