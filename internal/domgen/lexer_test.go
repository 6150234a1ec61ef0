package domgen

import (
	"testing"
)

func TestLexer_TagTokens(t *testing.T) {
	type tc struct {
		input    string
		expected []Token
	}

	tests := map[string]tc{
		"empty": {
			input:    "",
			expected: []Token{{Type: TokenEOF, Literal: "", Line: 1, Column: 1}},
		},
		"open tag": {
			input: "<div>",
			expected: []Token{
				{Type: TokenLAngle, Literal: "<", Line: 1, Column: 1},
				{Type: TokenIdent, Literal: "div", Line: 1, Column: 2},
				{Type: TokenRAngle, Literal: ">", Line: 1, Column: 5},
				{Type: TokenEOF, Literal: "", Line: 1, Column: 6},
			},
		},
		"closing tag": {
			input: "</div>",
			expected: []Token{
				{Type: TokenLAngleSlash, Literal: "</", Line: 1, Column: 1},
				{Type: TokenIdent, Literal: "div", Line: 1, Column: 3},
				{Type: TokenRAngle, Literal: ">", Line: 1, Column: 6},
				{Type: TokenEOF, Literal: "", Line: 1, Column: 7},
			},
		},
		"self close with attributes": {
			input: `<input type="text" on:click data-id='x' />`,
			expected: []Token{
				{Type: TokenLAngle, Literal: "<", Line: 1, Column: 1},
				{Type: TokenIdent, Literal: "input", Line: 1, Column: 2},
				{Type: TokenIdent, Literal: "type", Line: 1, Column: 8},
				{Type: TokenEquals, Literal: "=", Line: 1, Column: 12},
				{Type: TokenString, Literal: "text", Line: 1, Column: 13},
				{Type: TokenIdent, Literal: "on:click", Line: 1, Column: 20},
				{Type: TokenIdent, Literal: "data-id", Line: 1, Column: 29},
				{Type: TokenEquals, Literal: "=", Line: 1, Column: 36},
				{Type: TokenString, Literal: "x", Line: 1, Column: 37},
				{Type: TokenSlashAngle, Literal: "/>", Line: 1, Column: 41},
				{Type: TokenEOF, Literal: "", Line: 1, Column: 43},
			},
		},
		"member tag across lines": {
			input: "<Foo.Bar\n  x>",
			expected: []Token{
				{Type: TokenLAngle, Literal: "<", Line: 1, Column: 1},
				{Type: TokenIdent, Literal: "Foo.Bar", Line: 1, Column: 2},
				{Type: TokenIdent, Literal: "x", Line: 2, Column: 3},
				{Type: TokenRAngle, Literal: ">", Line: 2, Column: 4},
				{Type: TokenEOF, Literal: "", Line: 2, Column: 5},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewLexer("test.jsx", tt.input)
			for i, want := range tt.expected {
				got := l.Next()
				got.StartPos = 0
				if got != want {
					t.Fatalf("token %d: got %v, want %v", i, got, want)
				}
			}
			if l.Errors().HasErrors() {
				t.Errorf("unexpected errors: %v", l.Errors())
			}
		})
	}
}

func TestLexer_ChildTokens(t *testing.T) {
	type tc struct {
		input    string
		types    []TokenType
		literals []string
	}

	tests := map[string]tc{
		"text then tag": {
			input:    "Hello <b>",
			types:    []TokenType{TokenText, TokenLAngle},
			literals: []string{"Hello ", "<"},
		},
		"text then expression": {
			input:    "a {",
			types:    []TokenType{TokenText, TokenLBrace},
			literals: []string{"a ", "{"},
		},
		"closing": {
			input:    "x</",
			types:    []TokenType{TokenText, TokenLAngleSlash},
			literals: []string{"x", "</"},
		},
		"eof": {
			input:    "tail",
			types:    []TokenType{TokenText, TokenEOF},
			literals: []string{"tail", ""},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewLexer("test.jsx", tt.input)
			for i := range tt.types {
				got := l.NextChild()
				if got.Type != tt.types[i] || got.Literal != tt.literals[i] {
					t.Fatalf("token %d: got %v, want %s(%q)", i, got, tt.types[i], tt.literals[i])
				}
			}
		})
	}
}

func TestLexer_StrayBrace(t *testing.T) {
	l := NewLexer("test.jsx", "a } b")
	l.NextChild()
	tok := l.NextChild()
	if tok.Type != TokenError {
		t.Fatalf("expected error token, got %v", tok)
	}
	errs := l.Errors().Errors()
	if len(errs) != 1 || errs[0].Hint == "" {
		t.Errorf("expected one error with a hint, got %v", errs)
	}
}

func TestLexer_ReadExpr(t *testing.T) {
	type tc struct {
		input    string
		expected string
		rest     rune
	}

	tests := map[string]tc{
		"simple":          {input: "{name}!", expected: "name", rest: '!'},
		"nested braces":   {input: "{{a: {b: 1}}}x", expected: "{a: {b: 1}}", rest: 'x'},
		"string brace":    {input: `{"}" + a}x`, expected: `"}" + a`, rest: 'x'},
		"template":        {input: "{`a ${b + `}`} c`}x", expected: "`a ${b + `}`} c`", rest: 'x'},
		"line comment":    {input: "{a // }\n}x", expected: "a // }\n", rest: 'x'},
		"block comment":   {input: "{/* } */}x", expected: "/* } */", rest: 'x'},
		"escaped quote":   {input: `{'it\'s'}x`, expected: `'it\'s'`, rest: 'x'},
		"arrow function":  {input: "{() => { go(); }}x", expected: "() => { go(); }", rest: 'x'},
		"spread":          {input: "{...props}x", expected: "...props", rest: 'x'},
		"trailing at eof": {input: "{a}", expected: "a", rest: 0},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewLexer("test.jsx", tt.input)
			if tok := l.NextChild(); tok.Type != TokenLBrace {
				t.Fatalf("expected '{', got %v", tok)
			}
			tok := l.ReadExpr()
			if tok.Type != TokenExpr {
				t.Fatalf("expected expression, got %v (%v)", tok, l.Errors())
			}
			if tok.Literal != tt.expected {
				t.Errorf("literal = %q, want %q", tok.Literal, tt.expected)
			}
			if l.ch != tt.rest {
				t.Errorf("next char = %q, want %q", l.ch, tt.rest)
			}
		})
	}
}

func TestLexer_ReadExprUsesContainers(t *testing.T) {
	src := "<p>{ok && <b>don't</b>}</p>"
	open := 3
	l := NewLexerAt("test.jsx", src, open)
	l.containers = map[int]int{open: len(src) - len("</p>")}
	if tok := l.NextChild(); tok.Type != TokenLBrace {
		t.Fatalf("expected '{', got %v", tok)
	}
	tok := l.ReadExpr()
	if tok.Literal != "ok && <b>don't</b>" {
		t.Errorf("literal = %q", tok.Literal)
	}
	if tok.StartPos != open+1 {
		t.Errorf("StartPos = %d, want %d", tok.StartPos, open+1)
	}
}

func TestLexer_Unterminated(t *testing.T) {
	type tc struct {
		input string
		read  func(l *Lexer) Token
	}

	tests := map[string]tc{
		"expression": {
			input: "{a + (b",
			read: func(l *Lexer) Token {
				l.NextChild()
				return l.ReadExpr()
			},
		},
		"string": {
			input: `"abc`,
			read:  func(l *Lexer) Token { return l.Next() },
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			l := NewLexer("test.jsx", tt.input)
			if tok := tt.read(l); tok.Type != TokenError {
				t.Errorf("expected error token, got %v", tok)
			}
			if !l.Errors().HasErrors() {
				t.Error("expected an error")
			}
		})
	}
}

func TestNewLexerAt_Position(t *testing.T) {
	src := "const a = 1;\nconst b = <div/>;\n"
	l := NewLexerAt("test.jsx", src, 23)
	tok := l.Next()
	if tok.Type != TokenLAngle || tok.Line != 2 || tok.Column != 11 || tok.StartPos != 23 {
		t.Errorf("got %v at offset %d", tok, tok.StartPos)
	}
}

func TestIsCommentOnly(t *testing.T) {
	tests := map[string]bool{
		"/* note */":         true,
		"  // line\n":        true,
		"/* a */ /* b */":    true,
		"":                   true,
		"a /* note */":       false,
		"/* unterminated":    false,
		"// line\nvalue":     false,
		"/* note */ value()": false,
	}

	for input, expected := range tests {
		t.Run(input, func(t *testing.T) {
			if got := isCommentOnly(input); got != expected {
				t.Errorf("isCommentOnly(%q) = %v, want %v", input, got, expected)
			}
		})
	}
}
