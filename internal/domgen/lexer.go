package domgen

import (
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes JSX markup inside a host source file.
//
// Markup is context sensitive, so the parser picks the mode for every token:
// Next lexes inside a tag, NextChild lexes between tags, and ReadExpr reads a
// raw JavaScript expression after a '{'.
type Lexer struct {
	filename string
	source   string
	pos      int  // current position in source
	readPos  int  // next position to read
	ch       rune // current character
	line     int  // current line (1-based)
	column   int  // current column (1-based)

	// Track the start position of current token
	tokenLine     int
	tokenColumn   int
	tokenStartPos int // byte offset where current token starts

	// containers maps the offset of each '{' that opens an expression
	// container to the offset just past its closing '}'.
	containers map[int]int

	errors *ErrorList
}

// NewLexer creates a new Lexer for the given source.
func NewLexer(filename, source string) *Lexer {
	return NewLexerAt(filename, source, 0)
}

// NewLexerAt creates a Lexer that starts reading at a byte offset of source.
func NewLexerAt(filename, source string, offset int) *Lexer {
	lineStart := strings.LastIndexByte(source[:offset], '\n') + 1
	l := &Lexer{
		filename: filename,
		source:   source,
		readPos:  offset,
		line:     1 + strings.Count(source[:offset], "\n"),
		column:   utf8.RuneCountInString(source[lineStart:offset]),
		errors:   NewErrorList(),
	}
	l.readChar()
	return l
}

// Errors returns any errors encountered during lexing.
func (l *Lexer) Errors() *ErrorList {
	return l.errors
}

// Offset returns the byte offset of the current character.
func (l *Lexer) Offset() int {
	return l.pos
}

// readChar advances to the next character in the source.
func (l *Lexer) readChar() {
	prevWasNewline := l.ch == '\n'

	if l.readPos >= len(l.source) {
		l.ch = 0 // EOF
		l.pos = l.readPos
		if prevWasNewline {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		return
	}

	r, size := utf8.DecodeRuneInString(l.source[l.readPos:])
	l.ch = r
	l.pos = l.readPos
	l.readPos += size

	if prevWasNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

// peekChar returns the next character without advancing.
func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.source) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.source[l.readPos:])
	return r
}

// startToken marks the beginning of a new token.
func (l *Lexer) startToken() {
	l.tokenLine = l.line
	l.tokenColumn = l.column
	l.tokenStartPos = l.pos
}

// makeToken creates a token with the current start position.
func (l *Lexer) makeToken(typ TokenType, literal string) Token {
	return Token{
		Type:     typ,
		Literal:  literal,
		Line:     l.tokenLine,
		Column:   l.tokenColumn,
		StartPos: l.tokenStartPos,
	}
}

// position returns the current token Position for error reporting.
func (l *Lexer) position() Position {
	return Position{
		File:   l.filename,
		Line:   l.tokenLine,
		Column: l.tokenColumn,
		Offset: l.tokenStartPos,
	}
}

// Next returns the next token inside a tag.
func (l *Lexer) Next() Token {
	l.skipWhitespace()
	l.startToken()

	switch l.ch {
	case 0:
		return l.makeToken(TokenEOF, "")
	case '<':
		return l.readOpenAngle()
	case '>':
		l.readChar()
		return l.makeToken(TokenRAngle, ">")
	case '/':
		if l.peekChar() == '>' {
			l.readChar()
			l.readChar()
			return l.makeToken(TokenSlashAngle, "/>")
		}
	case '=':
		l.readChar()
		return l.makeToken(TokenEquals, "=")
	case '{':
		l.readChar()
		return l.makeToken(TokenLBrace, "{")
	case '"', '\'':
		return l.readString()
	}

	if isNameStart(l.ch) {
		return l.readName()
	}

	ch := l.ch
	l.readChar()
	l.errors.AddErrorf(l.position(), "unexpected character %q in tag", ch)
	return l.makeToken(TokenError, string(ch))
}

// NextChild returns the next token between tags: text, '{', '<' or '</'.
func (l *Lexer) NextChild() Token {
	l.startToken()

	switch l.ch {
	case 0:
		return l.makeToken(TokenEOF, "")
	case '<':
		return l.readOpenAngle()
	case '{':
		l.readChar()
		return l.makeToken(TokenLBrace, "{")
	case '}':
		l.readChar()
		l.errors.Add(NewErrorWithHint(l.position(), "unexpected '}' in text", "use {'}'} for a literal brace"))
		return l.makeToken(TokenError, "}")
	}

	start := l.pos
	for l.ch != 0 && l.ch != '<' && l.ch != '{' && l.ch != '}' {
		l.readChar()
	}
	return l.makeToken(TokenText, l.source[start:l.pos])
}

// readOpenAngle reads '<' or '</'.
func (l *Lexer) readOpenAngle() Token {
	l.readChar()
	l.skipWhitespace()
	if l.ch == '/' {
		l.readChar()
		return l.makeToken(TokenLAngleSlash, "</")
	}
	return l.makeToken(TokenLAngle, "<")
}

// readName reads a tag or attribute name.
func (l *Lexer) readName() Token {
	start := l.pos
	for isNameChar(l.ch) {
		l.readChar()
	}
	return l.makeToken(TokenIdent, l.source[start:l.pos])
}

// readString reads a quoted attribute value. JSX strings have no escapes.
func (l *Lexer) readString() Token {
	quote := l.ch
	l.readChar()
	start := l.pos
	for l.ch != quote {
		if l.ch == 0 {
			l.errors.AddError(l.position(), "unterminated string literal")
			return l.makeToken(TokenError, l.source[start:l.pos])
		}
		l.readChar()
	}
	value := l.source[start:l.pos]
	l.readChar()
	return l.makeToken(TokenString, value)
}
