package lexer

import (
	"fmt"

	"zara/internal/diag"
	"zara/internal/token"
)

// "..." с escape \b \t \n \r \f \" \\. Сырой перевод строки внутри запрещён.
// При ошибке частичный токен отбрасывается, сканирование продолжается
// сразу после открывающей кавычки.
func (lx *Lexer) matchString() (token.Kind, bool) {
	start := lx.cursor.Mark()
	if !lx.cursor.Eat('"') {
		return token.Invalid, false
	}
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			return token.StringLiteral, true
		case '\n':
			return lx.abandonString(start, diag.LexUnterminatedString, "newline in string literal")
		case '\\':
			lx.cursor.Bump()
			if lx.cursor.EOF() {
				return lx.abandonString(start, diag.LexUnterminatedString, "unterminated string literal")
			}
			if esc := lx.cursor.Peek(); !isEscape(esc) {
				return lx.abandonString(start, diag.LexBadEscape, fmt.Sprintf("invalid escape sequence %q", "\\"+string(rune(esc))))
			}
			lx.cursor.Bump()
		default:
			lx.cursor.Bump()
		}
	}
	return lx.abandonString(start, diag.LexUnterminatedString, "unterminated string literal")
}

// abandonString репортит ошибку на весь частичный литерал и откатывает
// курсор на позицию сразу после открывающей кавычки.
func (lx *Lexer) abandonString(start Mark, code diag.Code, msg string) (token.Kind, bool) {
	lx.errLex(code, '"', lx.cursor.SpanFrom(start), msg)
	lx.cursor.Reset(start + 1)
	return skip, true
}

func isEscape(b byte) bool {
	switch b {
	case 'b', 't', 'n', 'r', 'f', '"', '\\':
		return true
	}
	return false
}
