package lexer

import "zara/internal/token"

// # ... до конца строки; сам '\n' остаётся пробельным символом.
func (lx *Lexer) matchLineComment() (token.Kind, bool) {
	if !lx.cursor.Eat('#') {
		return token.Invalid, false
	}
	lx.cursor.EatWhile(func(b byte) bool { return b != '\n' })
	return skip, true
}

// ** ... ** закрывается первой же парой "**". Незакрытый "**" комментарием
// не считается: дальше его разберут как два оператора '*'.
func (lx *Lexer) matchBlockComment() (token.Kind, bool) {
	if !lx.try2('*', '*') {
		return token.Invalid, false
	}
	for !lx.cursor.EOF() {
		if lx.try2('*', '*') {
			return skip, true
		}
		if lx.cursor.Bump() == '*' {
			// одиночная '*' внутри комментария обязана иметь за собой не-'*'
			if lx.cursor.EOF() {
				break
			}
			lx.cursor.Bump()
		}
	}
	return token.Invalid, false
}
