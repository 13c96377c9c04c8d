package fuzztests

import (
	"testing"

	"zara/internal/diag"
	"zara/internal/lexer"
	"zara/internal/source"
	"zara/internal/testkit"
	"zara/internal/token"
)

const maxFuzzInput = 1 << 16 // 64 KiB

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}

func FuzzLexerTokens(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.zr", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(64)
		lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})

		// каждый шаг съедает хотя бы байт, так что токенов не больше длины входа
		var tokens []token.Token
		for range len(file.Content) + 2 {
			tok := lx.Next()
			tokens = append(tokens, tok)
			if tok.Kind == token.EOF {
				break
			}
		}
		if err := testkit.CheckTokenInvariants(tokens, file); err != nil {
			t.Fatalf("token invariants: %v", err)
		}
		for _, e := range lx.Errors() {
			if e.Span.End > e.Span.Start && e.Span.End > uint32(len(file.Content)) {
				t.Fatalf("error span %v beyond content", e.Span)
			}
		}
	})
}
