package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zara/internal/diag"
	"zara/internal/symbols"
	"zara/internal/trace"
)

const factorialSrc = `
func factorial(int n) {
    if (n > 1) {
        return n * factorial(n - 1);
    } else {
        return 1;
    }
}
`

func globalNames(tb *symbols.Table) string {
	var names []string
	for _, sym := range tb.Dump().Global().Entries {
		names = append(names, sym.Name+":"+string(sym.Kind))
	}
	return strings.Join(names, ",")
}

func TestCollectDefaultMode(t *testing.T) {
	res := TokenizeSource(context.Background(), "fact.zr", []byte(factorialSrc), 16)
	table := Collect(context.Background(), res.Tokens, res.Bag, CollectOptions{})

	want := "func:type,factorial:identifier,int:type,n:identifier"
	if got := globalNames(table); got != want {
		t.Fatalf("globals = %s, want %s", got, want)
	}
	if table.Depth() != 0 || len(table.Dump().Locals()) != 0 {
		t.Fatal("default mode must not open scopes")
	}
	if res.Bag.Len() != 0 {
		t.Fatalf("unexpected diagnostics %v", res.Bag.Items())
	}
}

func TestCollectScopedMode(t *testing.T) {
	src := "func f(int n) { int x; { x; } }"
	res := TokenizeSource(context.Background(), "scoped.zr", []byte(src), 16)

	var pushes, maxDepth int
	obs := symbols.ObserverFunc(func(ev symbols.Event) {
		if ev.Op == symbols.OpPush {
			pushes++
			maxDepth = max(maxDepth, ev.Depth)
		}
	})
	table := Collect(context.Background(), res.Tokens, res.Bag, CollectOptions{Scoped: true, WarnShadow: true, Observer: obs})

	if pushes != 2 || maxDepth != 2 || table.Depth() != 0 {
		t.Fatalf("pushes=%d maxDepth=%d depth=%d", pushes, maxDepth, table.Depth())
	}
	if got := globalNames(table); got != "func:type,f:identifier,int:type,n:identifier" {
		t.Fatalf("globals = %s", got)
	}
	if _, ok := table.Lookup("x"); ok {
		t.Fatal("x must be gone after its scopes were popped")
	}

	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.SymShadowed || items[0].Severity != diag.SevWarning {
		t.Fatalf("expected one shadow warning, got %v", items)
	}
	if got := res.File.Text(items[0].Primary); got != "x" {
		t.Fatalf("warning points at %q", got)
	}
}

func TestCollectStrictUnderflow(t *testing.T) {
	src := "x } }"
	for _, strict := range []bool{false, true} {
		res := TokenizeSource(context.Background(), "u.zr", []byte(src), 16)
		Collect(context.Background(), res.Tokens, res.Bag, CollectOptions{Scoped: true, Strict: strict})

		if !strict {
			if res.Bag.Len() != 0 {
				t.Fatalf("permissive mode reported %v", res.Bag.Items())
			}
			continue
		}
		items := res.Bag.Items()
		if len(items) != 2 {
			t.Fatalf("expected 2 underflow errors, got %v", items)
		}
		for _, d := range items {
			if d.Code != diag.SymScopeUnderflow || !strings.Contains(d.Message, "unmatched '}'") {
				t.Fatalf("unexpected diagnostic %+v", d)
			}
		}
	}
}

// Top-level identifiers stay global in scoped mode, so strict mode only
// ever reports underflow and never drops a name.
func TestCollectStrictOnlyReportsUnderflow(t *testing.T) {
	res := TokenizeSource(context.Background(), "s.zr", []byte("x } y { z } } w"), 16)
	var ops []string
	obs := symbols.ObserverFunc(func(ev symbols.Event) {
		ops = append(ops, ev.Op.String())
	})
	table := Collect(context.Background(), res.Tokens, res.Bag, CollectOptions{Scoped: true, Strict: true, Observer: obs})

	items := res.Bag.Items()
	if len(items) != 2 {
		t.Fatalf("diagnostics = %d, want 2", len(items))
	}
	for _, d := range items {
		if d.Code != diag.SymScopeUnderflow {
			t.Errorf("code = %s, want %s", d.Code.ID(), diag.SymScopeUnderflow.ID())
		}
	}
	if got, want := globalNames(table), "x:identifier,y:identifier,w:identifier"; got != want {
		t.Fatalf("globals = %s, want %s", got, want)
	}
	if _, ok := table.Lookup("z"); ok {
		t.Fatalf("z survived its scope")
	}
	for _, op := range ops {
		if op == symbols.OpDrop.String() {
			t.Fatalf("unexpected drop event in %v", ops)
		}
	}
	if got := strings.Join(ops, " "); !strings.Contains(got, "push insert pop") {
		t.Fatalf("ops = %s, want z inserted inside a block", got)
	}
}

func TestCollectEmitsTraceEvents(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)

	res := TokenizeSource(ctx, "t.zr", []byte("int a;"), 16)
	Collect(ctx, res.Tokens, res.Bag, CollectOptions{})

	var names []string
	for _, ev := range ring.Snapshot() {
		names = append(names, ev.Kind.String()+":"+ev.Name)
	}
	got := strings.Join(names, " ")
	for _, want := range []string{"begin:lex:t.zr", "end:lex:t.zr", "begin:collect", "point:symbols.insert", "end:collect"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q in %s", want, got)
		}
	}
}

func TestCollectFileSharesBag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main.zr")
	if err := os.WriteFile(path, []byte("int a; $\n}"), 0o600); err != nil {
		t.Fatal(err)
	}
	res, err := CollectFile(context.Background(), path, 16, CollectOptions{Scoped: true, Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	codes := []diag.Code{}
	for _, d := range res.Bag.Items() {
		codes = append(codes, d.Code)
	}
	if len(codes) != 2 || codes[0] != diag.LexUnknownChar || codes[1] != diag.SymScopeUnderflow {
		t.Fatalf("codes = %v", codes)
	}
	if _, ok := res.Table.Lookup("a"); !ok {
		t.Fatal("a not collected")
	}

	if _, err := CollectFile(context.Background(), filepath.Join(t.TempDir(), "missing.zr"), 16, CollectOptions{}); err == nil {
		t.Fatal("expected load error")
	}
}
