package domgen

import "fmt"

// TokenType represents the type of a lexical token.
type TokenType int

const (
	// Special tokens
	TokenEOF   TokenType = iota // end of input
	TokenError                  // lexer error

	// Tag context
	TokenIdent       // tag or attribute name: div, Foo.Bar, on:click, data-x
	TokenString      // attribute string: "..." or '...'
	TokenLAngle      // <
	TokenLAngleSlash // </
	TokenRAngle      // >
	TokenSlashAngle  // />
	TokenEquals      // =
	TokenLBrace      // {

	// Children context
	TokenText // raw text between tags

	// Composite tokens
	TokenExpr // JavaScript expression inside {}
)

// tokenNames maps token types to their string names for debugging.
var tokenNames = map[TokenType]string{
	TokenEOF:         "EOF",
	TokenError:       "Error",
	TokenIdent:       "Ident",
	TokenString:      "String",
	TokenLAngle:      "<",
	TokenLAngleSlash: "</",
	TokenRAngle:      ">",
	TokenSlashAngle:  "/>",
	TokenEquals:      "=",
	TokenLBrace:      "{",
	TokenText:        "Text",
	TokenExpr:        "Expr",
}

// String returns a human-readable name for the token type.
func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TokenType(%d)", t)
}

// Token represents a lexical token with its type, literal value, and source position.
type Token struct {
	Type     TokenType
	Literal  string
	Line     int
	Column   int
	StartPos int // byte offset in source where token starts
}

// String returns a debug representation of the token.
func (t Token) String() string {
	if t.Literal == "" {
		return fmt.Sprintf("%s at %d:%d", t.Type, t.Line, t.Column)
	}
	lit := t.Literal
	if len(lit) > 20 {
		lit = lit[:17] + "..."
	}
	return fmt.Sprintf("%s(%q) at %d:%d", t.Type, lit, t.Line, t.Column)
}

// Position represents a source code location for error reporting.
type Position struct {
	File   string
	Line   int
	Column int
	Offset int // byte offset in the host source
}

// String returns a formatted position string.
func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}
