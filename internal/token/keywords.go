package token

// reserved заполняется один раз при инициализации пакета и дальше только читается.
var reserved = map[string]struct{}{
	"func":     {},
	"int":      {},
	"float":    {},
	"string":   {},
	"arr":      {},
	"stack":    {},
	"while":    {},
	"if":       {},
	"else":     {},
	"else-if":  {},
	"do":       {},
	"for":      {},
	"return":   {},
	"continue": {},
	"break":    {},
	"in":       {},
}

// typeKeywords are the reserved words that name a type.
var typeKeywords = map[string]struct{}{
	"func":   {},
	"int":    {},
	"float":  {},
	"string": {},
	"arr":    {},
	"stack":  {},
}

// IsReserved reports whether word is a reserved word. Case-sensitive.
func IsReserved(word string) bool {
	_, ok := reserved[word]
	return ok
}

// LookupReserved classifies an identifier-shaped lexeme: Keyword if it is
// reserved, Identifier otherwise.
func LookupReserved(ident string) Kind {
	if IsReserved(ident) {
		return Keyword
	}
	return Identifier
}

// IsTypeKeyword reports whether word is one of the type-naming keywords
// (func, int, float, string, arr, stack).
func IsTypeKeyword(word string) bool {
	_, ok := typeKeywords[word]
	return ok
}

// ReservedWords returns the reserved set in declaration order.
func ReservedWords() []string {
	return []string{
		"func", "int", "float", "string", "arr", "stack",
		"while", "if", "else", "else-if", "do", "for",
		"return", "continue", "break", "in",
	}
}
