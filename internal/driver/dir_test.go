package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		p := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestTokenizeDirOrderAndDiagnostics(t *testing.T) {
	root := writeTree(t, map[string]string{
		"b.zr":         "return n;",
		"a.zr":         "int x = 1;",
		"sub/c.zr":     "x @ y",
		".hidden/d.zr": "int",
		"notes.txt":    "not zara",
	})

	events := make(chan ProgressEvent, 64)
	_, results, err := TokenizeDir(context.Background(), root, DirOptions{
		MaxDiagnostics: 8,
		Jobs:           2,
		Progress:       ChannelSink{Ch: events},
	})
	if err != nil {
		t.Fatal(err)
	}
	close(events)

	want := []string{"a.zr", "b.zr", filepath.Join("sub", "c.zr")}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(results))
	}
	for i, r := range results {
		rel, _ := filepath.Rel(root, r.Path)
		if rel != want[i] {
			t.Errorf("result %d = %s, want %s", i, rel, want[i])
		}
	}

	// последний токен всегда EOF
	if n := len(results[0].Tokens); n != 6 {
		t.Fatalf("a.zr: expected 5 tokens + EOF, got %d", n)
	}
	if results[2].Bag.Len() != 1 || len(results[2].Errors) != 1 || results[2].Errors[0].Char != '@' {
		t.Fatalf("c.zr: unexpected diagnostics %v", results[2].Bag.Items())
	}

	final := map[string]Status{}
	for ev := range events {
		final[ev.File] = ev.Status
	}
	if final[results[0].Path] != StatusDone || final[results[2].Path] != StatusError {
		t.Fatalf("unexpected final statuses %v", final)
	}
}

func TestTokenizeDirEmpty(t *testing.T) {
	fs, results, err := TokenizeDir(context.Background(), t.TempDir(), DirOptions{})
	if err != nil || results != nil || fs == nil {
		t.Fatalf("fs=%v results=%v err=%v", fs, results, err)
	}
}

func TestTokenizeDirCancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.zr": "x"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, _, err := TokenizeDir(ctx, root, DirOptions{}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestTokenCacheRoundTrip(t *testing.T) {
	root := writeTree(t, map[string]string{"a.zr": "func f(int n) { return n; } $"})
	cache, err := NewTokenCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	_, first, err := TokenizeDir(context.Background(), root, DirOptions{MaxDiagnostics: 8, Cache: cache})
	if err != nil {
		t.Fatal(err)
	}
	_, second, err := TokenizeDir(context.Background(), root, DirOptions{MaxDiagnostics: 8, Cache: cache})
	if err != nil {
		t.Fatal(err)
	}

	a, b := first[0], second[0]
	if a.Cached || !b.Cached {
		t.Fatalf("cached flags: first=%v second=%v", a.Cached, b.Cached)
	}
	if len(a.Tokens) != len(b.Tokens) {
		t.Fatalf("token count %d vs %d", len(a.Tokens), len(b.Tokens))
	}
	for i := range a.Tokens {
		if a.Tokens[i].Kind != b.Tokens[i].Kind || a.Tokens[i].Text != b.Tokens[i].Text || a.Tokens[i].Span.Start != b.Tokens[i].Span.Start {
			t.Fatalf("token %d differs: %+v vs %+v", i, a.Tokens[i], b.Tokens[i])
		}
	}
	if b.Bag.Len() != 1 || b.Bag.Items()[0].Code != a.Bag.Items()[0].Code {
		t.Fatalf("cached diagnostics not replayed: %v", b.Bag.Items())
	}

	if err := cache.Clear(); err != nil {
		t.Fatal(err)
	}
	_, third, err := TokenizeDir(context.Background(), root, DirOptions{MaxDiagnostics: 8, Cache: cache})
	if err != nil || third[0].Cached {
		t.Fatalf("expected miss after Clear, cached=%v err=%v", third[0].Cached, err)
	}
}

func TestTokenizeDirSamples(t *testing.T) {
	root := filepath.Join("..", "..", "testdata", "samples")
	_, results, err := TokenizeDir(context.Background(), root, DirOptions{MaxDiagnostics: 32})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(results))
	}
	for _, r := range results {
		broken := filepath.Base(r.Path) == "errors.zr"
		if r.Bag.HasErrors() != broken {
			t.Errorf("%s: HasErrors=%v, diagnostics %v", r.Path, r.Bag.HasErrors(), r.Bag.Items())
		}
		if len(r.Tokens) < 10 {
			t.Errorf("%s: only %d tokens", r.Path, len(r.Tokens))
		}
	}
}
