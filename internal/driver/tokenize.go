package driver

import (
	"context"
	"fmt"
	"strconv"

	"zara/internal/diag"
	"zara/internal/lexer"
	"zara/internal/source"
	"zara/internal/token"
	"zara/internal/trace"
)

// TokenizeResult holds one lexed file. Tokens ends with the EOF token.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Errors  []lexer.Error
	Bag     *diag.Bag
}

// Tokenize loads path from disk and lexes it.
func Tokenize(ctx context.Context, path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return tokenizeFile(ctx, fs, fs.Get(fileID), maxDiagnostics), nil
}

// TokenizeSource lexes in-memory content registered under name.
func TokenizeSource(ctx context.Context, name string, content []byte, maxDiagnostics int) *TokenizeResult {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return tokenizeFile(ctx, fs, fs.Get(fileID), maxDiagnostics)
}

func tokenizeFile(ctx context.Context, fs *source.FileSet, file *source.File, maxDiagnostics int) *TokenizeResult {
	bag := diag.NewBag(maxDiagnostics)
	tokens, errs := lexFile(ctx, file, bag)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Errors:  errs,
		Bag:     bag,
	}
}

// lexFile прогоняет лексер до EOF включительно.
func lexFile(ctx context.Context, file *source.File, bag *diag.Bag) ([]token.Token, []lexer.Error) {
	sp := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "lex:"+file.Path, trace.CurrentSpan(ctx))

	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	// грубая оценка: токен на каждые ~4 байта
	tokens := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	sp.WithExtra("tokens", strconv.Itoa(len(tokens)-1)).
		WithExtra("errors", strconv.Itoa(len(lx.Errors()))).
		End("")
	return tokens, lx.Errors()
}
