package driver

import (
	"context"
	"errors"
	"fmt"

	"zara/internal/diag"
	"zara/internal/source"
	"zara/internal/symbols"
	"zara/internal/token"
	"zara/internal/trace"
)

// CollectOptions control how declarations are gathered from a token stream.
type CollectOptions struct {
	// Scoped opens a "block" scope on '{' and closes it on '}'; identifiers
	// inside braces go to the innermost scope.
	Scoped bool
	// Strict reports an unmatched '}' as SYM3002. Identifiers only go to a
	// local scope while one is open, so the collector never hits
	// ErrNoLocalScope.
	Strict bool
	// WarnShadow reports SYM3003 when a local hides an outer symbol.
	WarnShadow bool
	Observer   symbols.Observer
}

const blockScope = "block"

// Collect walks tokens once and records declarations: every identifier as
// "identifier", every type keyword as "type" in the global scope.
// Symbol errors are reported to bag; the pass never stops early.
func Collect(ctx context.Context, tokens []token.Token, bag *diag.Bag, opts CollectOptions) *symbols.Table {
	tr := trace.FromContext(ctx)
	sp := trace.Begin(tr, trace.ScopePass, "collect", trace.CurrentSpan(ctx))

	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	var cur token.Token

	observers := []symbols.Observer{symbols.TraceObserver(tr, sp.ID()), opts.Observer}
	if opts.WarnShadow {
		observers = append(observers, symbols.ObserverFunc(func(ev symbols.Event) {
			if ev.Op == symbols.OpInsert && ev.Shadows && !ev.Overwrote {
				diag.ReportWarning(reporter, diag.SymShadowed, cur.Span,
					fmt.Sprintf("%q shadows a symbol from an outer scope", ev.Symbol.Name)).Emit()
			}
		}))
	}
	table := symbols.New(symbols.Options{
		Strict:   opts.Strict,
		Observer: symbols.Observers(observers...),
	})

	for _, tok := range tokens {
		cur = tok
		var err error
		switch {
		case tok.Kind == token.EOF:
			// конец потока
		case tok.IsIdent():
			target := symbols.Global
			if opts.Scoped && table.Depth() > 0 {
				target = symbols.Local
			}
			err = table.Insert(tok.Text, symbols.KindIdentifier, nil, target)
		case tok.IsKeyword() && token.IsTypeKeyword(tok.Text):
			err = table.Insert(tok.Text, symbols.KindType, nil, symbols.Global)
		case opts.Scoped && tok.Is(token.Punctuation, "{"):
			table.PushScope(blockScope)
		case opts.Scoped && tok.Is(token.Punctuation, "}"):
			err = table.PopScope()
		}
		if err != nil {
			reportSymbolError(reporter, tok.Span, err)
		}
	}

	sp.WithExtra("symbols", fmt.Sprint(table.Len())).
		WithExtra("open_scopes", fmt.Sprint(table.Depth())).
		End("")
	return table
}

func reportSymbolError(r diag.Reporter, span source.Span, err error) {
	code := diag.SymInfo
	if errors.Is(err, symbols.ErrScopeUnderflow) {
		code = diag.SymScopeUnderflow
		err = fmt.Errorf("unmatched '}': %w", err)
	}
	diag.ReportError(r, code, span, err.Error()).Emit()
}

// CollectResult bundles the lexed file with the table built from it.
type CollectResult struct {
	*TokenizeResult
	Table *symbols.Table
}

// CollectFile lexes path and collects its declarations. Lexical and symbol
// diagnostics share one bag.
func CollectFile(ctx context.Context, path string, maxDiagnostics int, opts CollectOptions) (*CollectResult, error) {
	res, err := Tokenize(ctx, path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	return &CollectResult{
		TokenizeResult: res,
		Table:          Collect(ctx, res.Tokens, res.Bag, opts),
	}, nil
}
