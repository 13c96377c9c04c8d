// Package token defines lexical token kinds and the reserved-word set of Zara.
// Invariants:
//   - Token.Text is exactly the matched source bytes.
//   - Token.Span matches Text exactly (Start..End).
//   - Whitespace and comments never become tokens.
//   - Reserved words are case-sensitive; "Int" is an identifier.
package token
