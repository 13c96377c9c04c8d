package diagfmt

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"zara/internal/source"
	"zara/internal/token"
)

// TokenOutput — токен в виде для json/msgpack.
type TokenOutput struct {
	Kind  string `json:"kind" msgpack:"kind"`
	Text  string `json:"text" msgpack:"text"`
	Start uint32 `json:"start" msgpack:"start"`
	End   uint32 `json:"end" msgpack:"end"`
	Line  uint32 `json:"line" msgpack:"line"`
	Col   uint32 `json:"col" msgpack:"col"`
}

// TokenStream is the per-file document written by the json and msgpack formats.
type TokenStream struct {
	File   string        `json:"file" msgpack:"file"`
	Tokens []TokenOutput `json:"tokens" msgpack:"tokens"`
}

// BuildTokenStream resolves positions for tokens of one file. EOF is dropped.
func BuildTokenStream(path string, tokens []token.Token, fs *source.FileSet) TokenStream {
	out := TokenStream{File: path, Tokens: make([]TokenOutput, 0, len(tokens))}
	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}
		start, _ := fs.Resolve(tok.Span)
		out.Tokens = append(out.Tokens, TokenOutput{
			Kind:  tok.Kind.String(),
			Text:  tok.Text,
			Start: tok.Span.Start,
			End:   tok.Span.End,
			Line:  start.Line,
			Col:   start.Col,
		})
	}
	return out
}

const kindColumn = 16

// FormatTokensPretty выводит токены в человекочитаемом формате:
//
//	  1: KEYWORD          "func"   at 1:1
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	textWidth := 0
	for _, tok := range tokens {
		textWidth = max(textWidth, runewidth.StringWidth(strconv.Quote(tok.Text)))
	}
	for i, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}
		start, _ := fs.Resolve(tok.Span)
		_, err := fmt.Fprintf(w, "%3d: %s %s at %d:%d\n",
			i+1,
			runewidth.FillRight(tok.Kind.String(), kindColumn),
			runewidth.FillRight(strconv.Quote(tok.Text), textWidth),
			start.Line, start.Col)
		if err != nil {
			return err
		}
	}
	return nil
}

// FormatTokensJSON выводит токены в JSON формате
func FormatTokensJSON(w io.Writer, streams ...TokenStream) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(streams) == 1 {
		return enc.Encode(streams[0])
	}
	return enc.Encode(streams)
}

// FormatTokensMsgpack writes each stream as one msgpack value, back to back.
func FormatTokensMsgpack(w io.Writer, streams ...TokenStream) error {
	enc := msgpack.NewEncoder(w)
	for i := range streams {
		if err := enc.Encode(&streams[i]); err != nil {
			return fmt.Errorf("msgpack encode %s: %w", streams[i].File, err)
		}
	}
	return nil
}

// DecodeTokensMsgpack reads streams written by FormatTokensMsgpack until EOF.
func DecodeTokensMsgpack(r io.Reader) ([]TokenStream, error) {
	dec := msgpack.NewDecoder(r)
	var out []TokenStream
	for {
		var ts TokenStream
		if err := dec.Decode(&ts); err != nil {
			if errors.Is(err, io.EOF) {
				return out, nil
			}
			return out, fmt.Errorf("msgpack decode: %w", err)
		}
		out = append(out, ts)
	}
}
