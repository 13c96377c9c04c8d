package lexer

import (
	"fmt"
	"iter"

	"zara/internal/diag"
	"zara/internal/source"
	"zara/internal/token"
)

// Lexer turns one source file into tokens on demand. It is single-use:
// a new input needs a new Lexer.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // 1 элементный буфер для токена
	errs   []Error
}

// New returns a lexer positioned at the start of file.
func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// File returns the file being scanned.
func (lx *Lexer) File() *source.File { return lx.file }

// Next возвращает следующий значимый токен.
// После конца входа всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		lx.cursor.EatWhile(isSpace)
		if lx.cursor.EOF() {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}

		start := lx.cursor.Mark()
		kind, ok := lx.scan()
		if !ok {
			lx.skipIllegal()
			continue
		}
		if kind == skip {
			continue
		}
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: lx.file.Text(sp)}
	}
}

// Peek возвращает следующий токен, не потребляя его.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// Tokens yields the remaining tokens lazily. EOF is not yielded.
func (lx *Lexer) Tokens() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok := lx.Next()
			if tok.Kind == token.EOF || !yield(tok) {
				return
			}
		}
	}
}

// scan прогоняет правила по порядку; первое совпавшее побеждает.
func (lx *Lexer) scan() (token.Kind, bool) {
	start := lx.cursor.Mark()
	for i := range rules {
		if kind, ok := rules[i].match(lx); ok {
			return kind, true
		}
		lx.cursor.Reset(start)
	}
	return token.Invalid, false
}

// skipIllegal сообщает о символе, не подошедшем ни под одно правило, и пропускает ровно его.
func (lx *Lexer) skipIllegal() {
	start := lx.cursor.Mark()
	r, _ := lx.peekRune()
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, r, sp, fmt.Sprintf("illegal character %q", r))
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
