package testkit

import (
	"strings"
	"testing"

	"zara/internal/diag"
	"zara/internal/lexer"
	"zara/internal/source"
	"zara/internal/symbols"
	"zara/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.zr", []byte(src)))
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: diag.NewBag(16)}})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, file
		}
	}
}

func TestCheckTokenInvariantsAcceptsLexerOutput(t *testing.T) {
	for _, src := range []string{"", "int x = 1;", "a $ b \"open\n** c"} {
		tokens, file := lexAll(t, src)
		if err := CheckTokenInvariants(tokens, file); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestCheckTokenInvariantsRejects(t *testing.T) {
	tokens, file := lexAll(t, "int x;")

	noEOF := tokens[:len(tokens)-1]
	if err := CheckTokenInvariants(noEOF, file); err == nil || !strings.Contains(err.Error(), "want EOF") {
		t.Errorf("missing EOF: %v", err)
	}

	swapped := append([]token.Token(nil), tokens...)
	swapped[0], swapped[1] = swapped[1], swapped[0]
	if err := CheckTokenInvariants(swapped, file); err == nil || !strings.Contains(err.Error(), "overlaps") {
		t.Errorf("out of order: %v", err)
	}

	wrongText := append([]token.Token(nil), tokens...)
	wrongText[1].Text = "y"
	if err := CheckTokenInvariants(wrongText, file); err == nil || !strings.Contains(err.Error(), "does not match") {
		t.Errorf("wrong text: %v", err)
	}
}

func TestCheckReportInvariants(t *testing.T) {
	tb := symbols.New(symbols.Options{})
	_ = tb.Insert("a", symbols.KindInt, nil, symbols.Global)
	tb.PushScope("f")
	_ = tb.Insert("a", symbols.KindInt, 1, symbols.Local)
	if err := CheckReportInvariants(tb.Dump()); err != nil {
		t.Fatal(err)
	}

	rep := tb.Dump()
	rep.Scopes[1].Entries = append(rep.Scopes[1].Entries, rep.Scopes[1].Entries[0])
	if err := CheckReportInvariants(rep); err == nil {
		t.Fatal("duplicate must be rejected")
	}
	if err := CheckReportInvariants(symbols.Report{}); err == nil {
		t.Fatal("empty report must be rejected")
	}
}
