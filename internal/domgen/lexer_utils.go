package domgen

import "unicode"

// skipWhitespace skips spaces, tabs and newlines.
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readChar()
	}
}

// isNameStart returns true if ch can start a JSX name.
func isNameStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '$'
}

// isNameChar returns true if ch can continue a JSX name.
// Names may be dotted (Foo.Bar), namespaced (on:click) or dashed (data-id).
func isNameChar(ch rune) bool {
	return isNameStart(ch) || unicode.IsDigit(ch) || ch == '-' || ch == '.' || ch == ':'
}
