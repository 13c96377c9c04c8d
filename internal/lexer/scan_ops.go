package lexer

import (
	"zara/internal/token"
)

func (lx *Lexer) matchPunctuation() (token.Kind, bool) {
	switch lx.cursor.Peek() {
	case '{', '}', ',', ';', '(', ')', '[', ']':
		lx.cursor.Bump()
		return token.Punctuation, true
	}
	return token.Invalid, false
}

// Жадность: сначала 2-символьные, затем 1-символьные.
// Одиночные '&' и '|' операторами не являются.
func (lx *Lexer) matchOperator() (token.Kind, bool) {
	switch {
	case lx.try2('&', '&'),
		lx.try2('|', '|'),
		lx.try2('=', '='),
		lx.try2('>', '='),
		lx.try2('<', '='):
		return token.Operator, true
	}

	switch lx.cursor.Peek() {
	case '+', '-', '*', '/', '>', '<', '=', '!':
		lx.cursor.Bump()
		return token.Operator, true
	}
	return token.Invalid, false
}
