package lexer

import (
	"zara/internal/token"
)

// skip — правило совпало, но токена нет (комментарий, восстановление после ошибки).
const skip = token.Invalid

// rule пробует сопоставить лексему в текущей позиции.
// При ok=false позиция курсора не важна: scan откатит её сам.
type rule struct {
	name  string
	match func(lx *Lexer) (token.Kind, bool)
}

// Порядок значим: первое совпадение побеждает, длина не сравнивается.
var rules = [...]rule{
	{"line-comment", (*Lexer).matchLineComment},
	{"block-comment", (*Lexer).matchBlockComment},
	{"keyword", (*Lexer).matchKeyword},
	{"float", (*Lexer).matchFloat},
	{"constant", (*Lexer).matchConstant},
	{"identifier", (*Lexer).matchIdentifier},
	{"punctuation", (*Lexer).matchPunctuation},
	{"string", (*Lexer).matchString},
	{"operator", (*Lexer).matchOperator},
}

// RuleNames lists the scanning rules in priority order.
func RuleNames() []string {
	names := make([]string, len(rules))
	for i := range rules {
		names[i] = rules[i].name
	}
	return names
}
