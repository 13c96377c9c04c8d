package symbols

import (
	"fmt"
	"slices"
	"strings"
)

// ScopeReport is one scope in a Report.
type ScopeReport struct {
	Label   string
	Global  bool
	Level   int // 0 for global, 1 for the outermost local scope
	Entries []Symbol
}

// Report is a snapshot of the table: global first, then local scopes
// outermost to innermost, entries in insertion order.
type Report struct {
	Scopes []ScopeReport
}

// Dump takes a snapshot. Later table mutations do not affect it.
func (t *Table) Dump() Report {
	rep := Report{Scopes: make([]ScopeReport, 0, 1+len(t.locals))}
	rep.Scopes = append(rep.Scopes, ScopeReport{
		Label:   t.global.label,
		Global:  true,
		Entries: slices.Clone(t.global.entries),
	})
	for i, s := range t.locals {
		rep.Scopes = append(rep.Scopes, ScopeReport{
			Label:   s.label,
			Level:   i + 1,
			Entries: slices.Clone(s.entries),
		})
	}
	return rep
}

// Global returns the global scope section.
func (r Report) Global() ScopeReport {
	if len(r.Scopes) == 0 {
		return ScopeReport{Label: "global", Global: true}
	}
	return r.Scopes[0]
}

// Locals returns the local sections, outermost first.
func (r Report) Locals() []ScopeReport {
	if len(r.Scopes) <= 1 {
		return nil
	}
	return r.Scopes[1:]
}

// String renders the listing:
//
//	Symbol Table:
//	Name: n, Type: int, Value: <none>
//
//	Local Scope 1 (function):
//	Name: result, Type: int, Value: <none>
func (r Report) String() string {
	var sb strings.Builder
	sb.WriteString("Symbol Table:\n")
	for _, sym := range r.Global().Entries {
		sb.WriteString(sym.String())
		sb.WriteByte('\n')
	}
	for _, sc := range r.Locals() {
		fmt.Fprintf(&sb, "\nLocal Scope %d", sc.Level)
		if sc.Label != "" {
			fmt.Fprintf(&sb, " (%s)", sc.Label)
		}
		sb.WriteString(":\n")
		for _, sym := range sc.Entries {
			sb.WriteString(sym.String())
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
