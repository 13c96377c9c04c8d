package lexer

import (
	"zara/internal/token"
)

// [+-]?[0-9]+\.[0-9]+([eE][+-]?[0-9]+)?
// Неполная экспонента ("1.5e", "1.5e+") в токен не входит.
func (lx *Lexer) matchFloat() (token.Kind, bool) {
	if isSign(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if !lx.eatDigits() || !lx.cursor.Eat('.') || !lx.eatDigits() {
		return token.Invalid, false
	}

	exp := lx.cursor.Mark()
	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		lx.cursor.Bump()
		if isSign(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		if !lx.eatDigits() {
			lx.cursor.Reset(exp)
		}
	}
	return token.Float, true
}

// [+-]?[0-9]+
func (lx *Lexer) matchConstant() (token.Kind, bool) {
	if isSign(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	if !lx.eatDigits() {
		return token.Invalid, false
	}
	return token.Constant, true
}
