package domgen

import (
	"strings"
	"testing"
)

func TestAnalyzer_Classification(t *testing.T) {
	type tc struct {
		expr    string
		dynamic bool
	}

	tests := map[string]tc{
		"string literal":    {expr: `"x"`, dynamic: false},
		"number literal":    {expr: `42`, dynamic: false},
		"null":              {expr: `null`, dynamic: false},
		"constant object":   {expr: `{a: 1}`, dynamic: false},
		"constant array":    {expr: `[1, "a"]`, dynamic: false},
		"arrow function":    {expr: `() => 1`, dynamic: false},
		"markup":            {expr: `<b/>`, dynamic: false},
		"identifier":        {expr: `name`, dynamic: true},
		"signal call":       {expr: `count()`, dynamic: true},
		"member access":     {expr: `user.name`, dynamic: true},
		"ternary":           {expr: `a ? b : c`, dynamic: true},
		"object with reads": {expr: `{a: b()}`, dynamic: true},
		"template literal":  {expr: "`a${b}`", dynamic: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			roots := parseSource(t, "const a = <p>{"+tt.expr+"}</p>;")
			a := NewAnalyzer(DefaultBuiltIns())
			if err := a.Analyze(roots); err != nil {
				t.Fatalf("analyze failed: %v", err)
			}
			e, ok := roots[0].Node.(*Element).Children[0].(*Expr)
			if !ok {
				t.Fatalf("child is %T, want *Expr", roots[0].Node.(*Element).Children[0])
			}
			if e.Dynamic != tt.dynamic {
				t.Errorf("Dynamic = %v, want %v", e.Dynamic, tt.dynamic)
			}
		})
	}
}

func TestAnalyzer_SpreadIsDynamic(t *testing.T) {
	roots := parseSource(t, `const a = <div {...{id: "x"}}/>;`)
	if err := NewAnalyzer(DefaultBuiltIns()).Analyze(roots); err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	spread := roots[0].Node.(*Element).Attributes[0].(*Spread)
	if !spread.Expr.Dynamic {
		t.Error("spread should be dynamic")
	}
}

func TestAnalyzer_Errors(t *testing.T) {
	type tc struct {
		input    string
		messages []string
		hints    []string
	}

	tests := map[string]tc{
		"missing required prop": {
			input:    `const a = <Show>{x}</Show>;`,
			messages: []string{`<Show> requires the "when" prop`},
			hints:    []string{""},
		},
		"misspelled prop": {
			input: `const a = <Show wen={x}>{y}</Show>;`,
			messages: []string{
				`unknown prop "wen" on <Show>`,
				`<Show> requires the "when" prop`,
			},
			hints: []string{
				`did you mean "when"?`,
				`"wen" looks like a misspelling of "when"`,
			},
		},
		"unknown prop without a close match": {
			input:    `const a = <For each={xs} zzz={1}>{f}</For>;`,
			messages: []string{`unknown prop "zzz" on <For>`},
			hints:    []string{"<For> accepts each, fallback, children"},
		},
		"void element with children": {
			input:    `const a = <input>x</input>;`,
			messages: []string{"void element <input> cannot have children"},
			hints:    []string{""},
		},
		"nested in expression": {
			input:    `const a = <div>{ok && <Match>x</Match>}</div>;`,
			messages: []string{`<Match> requires the "when" prop`},
			hints:    []string{""},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			roots := parseSource(t, tt.input)
			a := NewAnalyzer(DefaultBuiltIns())
			err := a.Analyze(roots)
			if err == nil {
				t.Fatal("expected an error")
			}
			errs := err.(*ErrorList).Errors()
			if len(errs) != len(tt.messages) {
				t.Fatalf("got %d errors, want %d: %v", len(errs), len(tt.messages), err)
			}
			for i, e := range errs {
				if e.Message != tt.messages[i] {
					t.Errorf("error %d message = %q, want %q", i, e.Message, tt.messages[i])
				}
				if e.Hint != tt.hints[i] {
					t.Errorf("error %d hint = %q, want %q", i, e.Hint, tt.hints[i])
				}
			}
		})
	}
}

func TestAnalyzer_Accepts(t *testing.T) {
	tests := map[string]string{
		"spread satisfies required props": `const a = <Show {...p}>x</Show>;`,
		"dynamic accepts any prop":        `const a = <Dynamic component={C} anything={1}/>;`,
		"ref on built-in":                 `const a = <Portal ref={el}>x</Portal>;`,
		"user component":                  `const a = <Card whatever={1}/>;`,
	}

	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			roots := parseSource(t, input)
			if err := NewAnalyzer(DefaultBuiltIns()).Analyze(roots); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAnalyzer_Warnings(t *testing.T) {
	type tc struct {
		input string
		warn  string
		hint  string
	}

	tests := map[string]tc{
		"unknown tag": {
			input: `const a = <buton/>;`,
			warn:  "unknown element <buton>",
			hint:  `did you mean "button"?`,
		},
		"custom element": {
			input: `const a = <my-widget/>;`,
		},
		"known tag": {
			input: `const a = <section/>;`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			roots := parseSource(t, tt.input)
			a := NewAnalyzer(DefaultBuiltIns())
			if err := a.Analyze(roots); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			warnings := a.Warnings()
			if tt.warn == "" {
				if len(warnings) != 0 {
					t.Errorf("unexpected warnings: %v", warnings)
				}
				return
			}
			if len(warnings) != 1 {
				t.Fatalf("got %d warnings, want 1", len(warnings))
			}
			if warnings[0].Message != tt.warn || !strings.Contains(warnings[0].Hint, tt.hint) {
				t.Errorf("warning = %q (%q)", warnings[0].Message, warnings[0].Hint)
			}
		})
	}
}
