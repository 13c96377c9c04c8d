package lexer

import (
	"zara/internal/token"
)

const elseIfTail = "-if"

// matchKeyword принимает только целое слово из зарезервированного набора:
// "integer" не распадается на "int" + "eger". "else-if" — одно ключевое слово.
func (lx *Lexer) matchKeyword() (token.Kind, bool) {
	start := lx.cursor.Off
	if !lx.eatWord() {
		return token.Invalid, false
	}
	word := string(lx.file.Content[start:lx.cursor.Off])

	if word == "else" && lx.eatElseIfTail() {
		return token.Keyword, true
	}
	if token.IsReserved(word) {
		return token.Keyword, true
	}
	return token.Invalid, false
}

// [A-Za-z][A-Za-z0-9]*, зарезервированные слова переклассифицируются в Keyword.
func (lx *Lexer) matchIdentifier() (token.Kind, bool) {
	start := lx.cursor.Off
	if !lx.eatWord() {
		return token.Invalid, false
	}
	return token.LookupReserved(string(lx.file.Content[start:lx.cursor.Off])), true
}

func (lx *Lexer) eatWord() bool {
	if !isLetter(lx.cursor.Peek()) {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.EatWhile(isLetterOrDigit)
	return true
}

// eatElseIfTail съедает "-if", если за ним не продолжается слово.
func (lx *Lexer) eatElseIfTail() bool {
	off := int(lx.cursor.Off)
	content := lx.file.Content
	end := off + len(elseIfTail)
	if end > len(content) || string(content[off:end]) != elseIfTail {
		return false
	}
	if end < len(content) && isLetterOrDigit(content[end]) {
		return false
	}
	lx.cursor.Off += uint32(len(elseIfTail))
	return true
}
