package domgen

import "strings"

// ReadExpr reads a JavaScript expression inside {}, handling nested braces.
// This is called by the parser after the lexer produced TokenLBrace, so the
// '{' has already been consumed. The closing '}' is consumed but is not part
// of the returned literal.
func (l *Lexer) ReadExpr() Token {
	open := l.pos - 1
	l.startToken()
	start := l.pos

	if end, ok := l.containers[open]; ok && end-1 >= l.pos {
		for l.pos < end-1 && l.ch != 0 {
			l.readChar()
		}
	} else if !l.skipCode() {
		l.errors.AddError(l.position(), "unterminated expression: unmatched '{'")
		return l.makeToken(TokenError, l.source[start:l.pos])
	}

	if l.ch != '}' {
		l.errors.AddError(l.position(), "unterminated expression: unmatched '{'")
		return l.makeToken(TokenError, l.source[start:l.pos])
	}
	code := l.source[start:l.pos]
	l.readChar()
	return l.makeToken(TokenExpr, code)
}

// skipCode advances over JavaScript until the '}' closing the current depth.
// Returns false at end of input.
func (l *Lexer) skipCode() bool {
	depth := 0
	for l.ch != 0 {
		switch l.ch {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return true
			}
			depth--
		case '"', '\'':
			l.skipQuoted()
			continue
		case '`':
			l.skipTemplate()
			continue
		case '/':
			if l.peekChar() == '/' {
				for l.ch != 0 && l.ch != '\n' {
					l.readChar()
				}
				continue
			}
			if l.peekChar() == '*' {
				l.skipBlockComment()
				continue
			}
		}
		l.readChar()
	}
	return false
}

// skipQuoted skips a single or double quoted string literal.
func (l *Lexer) skipQuoted() {
	quote := l.ch
	l.readChar()
	for l.ch != 0 && l.ch != quote && l.ch != '\n' {
		if l.ch == '\\' {
			l.readChar()
		}
		l.readChar()
	}
	if l.ch == quote {
		l.readChar()
	}
}

// skipTemplate skips a template literal including ${...} substitutions.
func (l *Lexer) skipTemplate() {
	l.readChar()
	for l.ch != 0 && l.ch != '`' {
		switch {
		case l.ch == '\\':
			l.readChar()
		case l.ch == '$' && l.peekChar() == '{':
			l.readChar()
			l.readChar()
			if !l.skipCode() {
				return
			}
		}
		l.readChar()
	}
	if l.ch == '`' {
		l.readChar()
	}
}

func (l *Lexer) skipBlockComment() {
	l.readChar()
	l.readChar()
	for l.ch != 0 && !(l.ch == '*' && l.peekChar() == '/') {
		l.readChar()
	}
	if l.ch != 0 {
		l.readChar()
		l.readChar()
	}
}

// isCommentOnly reports whether code holds nothing but whitespace and
// comments, as in a {/* note */} container.
func isCommentOnly(code string) bool {
	s := strings.TrimSpace(code)
	for s != "" {
		switch {
		case strings.HasPrefix(s, "//"):
			i := strings.IndexByte(s, '\n')
			if i < 0 {
				return true
			}
			s = s[i+1:]
		case strings.HasPrefix(s, "/*"):
			i := strings.Index(s[2:], "*/")
			if i < 0 {
				return false
			}
			s = s[i+4:]
		default:
			return false
		}
		s = strings.TrimSpace(s)
	}
	return true
}
