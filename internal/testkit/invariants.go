package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"zara/internal/source"
	"zara/internal/symbols"
	"zara/internal/token"
)

// CheckTokenInvariants runs a minimal set of invariants on a lexed stream:
// 1) the stream ends with exactly one EOF, placed at the end of the content
// 2) every other token has a non-empty span inside the file, in source order
// 3) token text is the source slice under its span
func CheckTokenInvariants(tokens []token.Token, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	if len(tokens) == 0 {
		return fmt.Errorf("empty stream: EOF missing")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	// 1) EOF
	last := tokens[len(tokens)-1]
	if last.Kind != token.EOF {
		return fmt.Errorf("stream ends with %s, want EOF", last.Kind)
	}
	if last.Span.Start != lenContent || !last.Span.Empty() {
		return fmt.Errorf("EOF span %v, want empty at %d", last.Span, lenContent)
	}

	// 2) и 3)
	var prevEnd uint32
	for i, tok := range tokens[:len(tokens)-1] {
		sp := tok.Span
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			return fmt.Errorf("token %d: unexpected kind %s", i, tok.Kind)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("token %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.Empty() {
			return fmt.Errorf("token %d: empty span %v", i, sp)
		}
		if sp.End > lenContent {
			return fmt.Errorf("token %d: span end beyond content: %d > %d", i, sp.End, lenContent)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("token %d: span %v overlaps previous token ending at %d", i, sp, prevEnd)
		}
		if got := sf.Text(sp); got != tok.Text {
			return fmt.Errorf("token %d: text %q does not match source %q", i, tok.Text, got)
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckReportInvariants validates the shape of a table dump: the global scope
// comes first, local levels run 1..n, and no scope holds a name twice.
func CheckReportInvariants(rep symbols.Report) error {
	if len(rep.Scopes) == 0 || !rep.Scopes[0].Global {
		return fmt.Errorf("dump must start with the global scope")
	}
	for i, sc := range rep.Scopes {
		if i > 0 {
			if sc.Global {
				return fmt.Errorf("scope %d: second global scope", i)
			}
			if sc.Level != i {
				return fmt.Errorf("scope %d: level %d", i, sc.Level)
			}
		}
		seen := make(map[string]struct{}, len(sc.Entries))
		for _, sym := range sc.Entries {
			if sym.Name == "" {
				return fmt.Errorf("scope %d: empty symbol name", i)
			}
			if _, dup := seen[sym.Name]; dup {
				return fmt.Errorf("scope %d: duplicate symbol %q", i, sym.Name)
			}
			seen[sym.Name] = struct{}{}
		}
	}
	return nil
}
