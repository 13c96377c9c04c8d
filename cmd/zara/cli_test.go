package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zara/internal/diagfmt"
)

// runCLI runs zara with an empty config so a stray zara.toml cannot leak in.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), manifestName)
	if werr := os.WriteFile(cfg, nil, 0o600); werr != nil {
		t.Fatal(werr)
	}
	return runCLIWithConfig(t, cfg, args...)
}

func runCLIWithConfig(t *testing.T, cfg string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	c := newCLI()
	var out, errOut bytes.Buffer
	c.root.SetOut(&out)
	c.root.SetErr(&errOut)
	err = c.run(append([]string{"--config", cfg}, args...))
	return out.String(), errOut.String(), err
}

func writeSource(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(src), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSymbolsListing(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.zr", "int x;\nx = 1;\n")
	stdout, stderr, err := runCLI(t, "symbols", "--format", "listing", path)
	if err != nil {
		t.Fatalf("symbols: %v\n%s", err, stderr)
	}
	want := "Symbol Table:\n" +
		"Name: int, Type: type, Value: <none>\n" +
		"Name: x, Type: identifier, Value: <none>\n"
	if stdout != want {
		t.Fatalf("listing:\n%s\nwant:\n%s", stdout, want)
	}
	if stderr != "" {
		t.Fatalf("unexpected stderr %q", stderr)
	}
}

func TestSymbolsJSON(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.zr", "float y;")
	stdout, _, err := runCLI(t, "symbols", "--format", "json", path)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Scopes []struct {
			Global  bool `json:"global"`
			Symbols []struct {
				Name string `json:"name"`
				Kind string `json:"kind"`
			} `json:"symbols"`
		} `json:"scopes"`
	}
	if err := json.Unmarshal([]byte(stdout), &doc); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if len(doc.Scopes) != 1 || !doc.Scopes[0].Global || len(doc.Scopes[0].Symbols) != 2 {
		t.Fatalf("unexpected dump %+v", doc)
	}
	if s := doc.Scopes[0].Symbols[1]; s.Name != "y" || s.Kind != "identifier" {
		t.Fatalf("second symbol = %+v", s)
	}
}

func TestSymbolsConfigAndFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := writeManifest(t, dir, "[symbols]\nscoped = true\n[output]\nformat = \"listing\"\n")
	path := writeSource(t, dir, "main.zr", "int a; { b; }")

	stdout, stderr, err := runCLIWithConfig(t, cfg, "symbols", "--events", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(stdout, "Symbol Table:\n") {
		t.Fatalf("config format not applied:\n%s", stdout)
	}
	if !strings.Contains(stderr, "push") || !strings.Contains(stderr, "dropped=1") {
		t.Fatalf("config scoped not applied, events:\n%s", stderr)
	}

	_, stderr, err = runCLIWithConfig(t, cfg, "symbols", "--events", "--scoped=false", path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(stderr, "push") {
		t.Fatalf("explicit flag must win over config, events:\n%s", stderr)
	}
}

func TestSymbolsStrictDiagnostics(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.zr", "x; }\n")
	_, stderr, err := runCLI(t, "symbols", "--scoped", "--strict", "--diag-format", "short", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "error SYM3002") || !strings.Contains(stderr, ":1:4 unmatched '}'") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestTokenizeFileJSON(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.zr", "int x = 42;")
	stdout, stderr, err := runCLI(t, "tokenize", "--format", "json", path)
	if err != nil {
		t.Fatalf("tokenize: %v\n%s", err, stderr)
	}
	var stream diagfmt.TokenStream
	if err := json.Unmarshal([]byte(stdout), &stream); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	var kinds []string
	for _, tok := range stream.Tokens {
		kinds = append(kinds, tok.Kind+":"+tok.Text)
	}
	want := "KEYWORD:int IDENTIFIER:x OPERATOR:= CONSTANT:42 PUNCTUATION:;"
	if got := strings.Join(kinds, " "); got != want {
		t.Fatalf("tokens = %s, want %s", got, want)
	}
}

func TestTokenizeReportsLexErrors(t *testing.T) {
	path := writeSource(t, t.TempDir(), "bad.zr", "a $ b")
	stdout, stderr, err := runCLI(t, "tokenize", "--diag-format", "short", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "error LEX1001") || !strings.Contains(stderr, "bad.zr:1:3") {
		t.Fatalf("stderr = %q", stderr)
	}
	if strings.Count(stdout, "IDENTIFIER") != 2 {
		t.Fatalf("lexing must continue past the bad character:\n%s", stdout)
	}
}

func TestTokenizeDirMsgpackWithCache(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	writeSource(t, src, "a.zr", "int a;")
	writeSource(t, src, "nested/b.zr", "float b;")
	cacheDir := filepath.Join(dir, "cache")

	args := []string{"tokenize", "--format", "msgpack", "--ui", "off", "--cache-dir", cacheDir, "--timings", src}
	stdout, stderr, err := runCLI(t, args...)
	if err != nil {
		t.Fatalf("first run: %v\n%s", err, stderr)
	}
	streams, err := diagfmt.DecodeTokensMsgpack(strings.NewReader(stdout))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(streams) != 2 || len(streams[0].Tokens) != 3 || len(streams[1].Tokens) != 3 {
		t.Fatalf("streams = %+v", streams)
	}
	if !strings.HasSuffix(streams[1].File, filepath.Join("nested", "b.zr")) {
		t.Fatalf("second stream file = %q", streams[1].File)
	}
	if !strings.Contains(stderr, "2 files, 0 cached") {
		t.Fatalf("first run timings:\n%s", stderr)
	}

	_, stderr, err = runCLI(t, args...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "2 files, 2 cached") {
		t.Fatalf("second run must hit the cache:\n%s", stderr)
	}

	_, stderr, err = runCLI(t, append([]string{"tokenize", "--clear-cache"}, args[1:]...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "2 files, 0 cached") {
		t.Fatalf("cleared cache must be cold:\n%s", stderr)
	}
}

func TestTokenizeRejectsUnknownFormat(t *testing.T) {
	path := writeSource(t, t.TempDir(), "main.zr", "int x;")
	if _, _, err := runCLI(t, "tokenize", "--format", "xml", path); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestVersionJSON(t *testing.T) {
	stdout, _, err := runCLI(t, "version", "--format", "json", "--hash")
	if err != nil {
		t.Fatal(err)
	}
	var payload map[string]string
	if err := json.Unmarshal([]byte(stdout), &payload); err != nil {
		t.Fatal(err)
	}
	if payload["tool"] != "zara" || payload["version"] == "" || payload["git_commit"] == "" {
		t.Fatalf("payload = %v", payload)
	}
	if _, ok := payload["build_date"]; ok {
		t.Fatal("build_date requires --date")
	}
}

func TestTraceToFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "main.zr", "int x;")
	tracePath := filepath.Join(dir, "trace.ndjson")

	_, _, err := runCLI(t, "--trace", tracePath, "--trace-level", "detail", "tokenize", path)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 4 {
		t.Fatalf("expected driver and file spans, got:\n%s", data)
	}
	for _, line := range lines {
		if !json.Valid([]byte(line)) {
			t.Fatalf("not ndjson: %q", line)
		}
	}
	if !strings.Contains(string(data), "lex:") {
		t.Fatalf("missing file span:\n%s", data)
	}
}
