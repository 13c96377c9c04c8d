package lexer

import (
	"fmt"

	"zara/internal/diag"
	"zara/internal/source"
)

// Error is a recovered lexical error. Scanning always continues after one.
type Error struct {
	Code diag.Code
	Char rune // offending character; for string errors the opening quote
	Span source.Span
	Msg  string
}

func (e Error) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Code.ID(), e.Span, e.Msg)
}

func (lx *Lexer) errLex(code diag.Code, ch rune, sp source.Span, msg string) {
	lx.errs = append(lx.errs, Error{Code: code, Char: ch, Span: sp, Msg: msg})
	if lx.opts.Reporter != nil {
		diag.ReportError(lx.opts.Reporter, code, sp, msg).Emit()
	}
}

// Errors returns the lexical errors recovered so far, in source order.
func (lx *Lexer) Errors() []Error {
	return lx.errs
}
