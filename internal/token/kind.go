package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero value; the lexer never emits it.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// Keyword is a reserved word.
	Keyword
	// Float is a literal like 12.5 or -1.0e3.
	Float
	// Constant is an integer literal.
	Constant
	// Identifier is a user name that is not reserved.
	Identifier
	// Punctuation is one of { } , ; ( ) [ ].
	Punctuation
	// StringLiteral is a double-quoted string, quotes included.
	StringLiteral
	// Operator is one of + - * / > < && == >= <= = ! ||.
	Operator
)

var kindNames = [...]string{
	Invalid:       "INVALID",
	EOF:           "EOF",
	Keyword:       "KEYWORD",
	Float:         "FLOAT",
	Constant:      "CONSTANT",
	Identifier:    "IDENTIFIER",
	Punctuation:   "PUNCTUATION",
	StringLiteral: "STRING_LITERAL",
	Operator:      "OPERATOR",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return Invalid, false
}
