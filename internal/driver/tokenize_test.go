package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"zara/internal/source"
	"zara/internal/token"
)

func TestTokenizeNormalizesAndEndsWithEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.zr")
	if err := os.WriteFile(path, []byte("int a;\r\nreturn a;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := Tokenize(context.Background(), path, 8)
	if err != nil {
		t.Fatal(err)
	}
	if res.File.Flags&source.FileNormalizedCRLF == 0 {
		t.Fatal("expected CRLF normalization flag")
	}
	// после нормализации '\r' не превращается в ошибку лексера
	if res.Bag.Len() != 0 || len(res.Errors) != 0 {
		t.Fatalf("unexpected diagnostics %v", res.Bag.Items())
	}
	last := res.Tokens[len(res.Tokens)-1]
	if last.Kind != token.EOF || len(res.Tokens) != 7 {
		t.Fatalf("tokens = %d, last = %v", len(res.Tokens), last.Kind)
	}
}

func TestTokenizeSourceRespectsDiagnosticCap(t *testing.T) {
	res := TokenizeSource(context.Background(), "cap.zr", []byte("$ $ $ $"), 2)
	if len(res.Errors) != 4 {
		t.Fatalf("side list must keep all errors, got %d", len(res.Errors))
	}
	if res.Bag.Len() != 2 {
		t.Fatalf("bag must be capped at 2, got %d", res.Bag.Len())
	}
}
