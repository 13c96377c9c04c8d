package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"zara/internal/symbols"
)

var (
	scopeHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	columnStyle      = lipgloss.NewStyle().Faint(true)
)

// FormatSymbolsPretty renders a dump as one aligned table per scope:
//
//	global
//	  NAME       KIND        VALUE
//	  factorial  func        <none>
func FormatSymbolsPretty(w io.Writer, rep symbols.Report, useColor bool) error {
	header := func(s string) string { return s }
	dim := header
	if useColor {
		header = func(s string) string { return scopeHeaderStyle.Render(s) }
		dim = func(s string) string { return columnStyle.Render(s) }
	}

	var sb strings.Builder
	for i, sc := range rep.Scopes {
		if i > 0 {
			sb.WriteByte('\n')
		}
		title := "global"
		if !sc.Global {
			title = fmt.Sprintf("local %d", sc.Level)
			if sc.Label != "" {
				title += " (" + sc.Label + ")"
			}
		}
		sb.WriteString(header(title))
		sb.WriteByte('\n')

		if len(sc.Entries) == 0 {
			sb.WriteString(dim("  (empty)"))
			sb.WriteByte('\n')
			continue
		}

		nameW, kindW := len("NAME"), len("KIND")
		for _, sym := range sc.Entries {
			nameW = max(nameW, runewidth.StringWidth(sym.Name))
			kindW = max(kindW, runewidth.StringWidth(string(sym.Kind)))
		}
		row := func(name, kind, value string) string {
			return "  " + runewidth.FillRight(name, nameW) + "  " + runewidth.FillRight(kind, kindW) + "  " + value
		}
		sb.WriteString(dim(strings.TrimRight(row("NAME", "KIND", "VALUE"), " ")))
		sb.WriteByte('\n')
		for _, sym := range sc.Entries {
			sb.WriteString(row(sym.Name, string(sym.Kind), valueString(sym.Value)))
			sb.WriteByte('\n')
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func valueString(v any) string {
	if v == nil {
		return "<none>"
	}
	return fmt.Sprint(v)
}

type symbolJSON struct {
	Name  string `json:"name"`
	Kind  string `json:"kind"`
	Value any    `json:"value"`
}

type scopeJSON struct {
	Label   string       `json:"label"`
	Global  bool         `json:"global"`
	Level   int          `json:"level"`
	Symbols []symbolJSON `json:"symbols"`
}

// FormatSymbolsJSON writes the dump as {"scopes":[...]} in dump order.
func FormatSymbolsJSON(w io.Writer, rep symbols.Report) error {
	out := struct {
		Scopes []scopeJSON `json:"scopes"`
	}{Scopes: make([]scopeJSON, 0, len(rep.Scopes))}

	for _, sc := range rep.Scopes {
		sj := scopeJSON{Label: sc.Label, Global: sc.Global, Level: sc.Level, Symbols: make([]symbolJSON, 0, len(sc.Entries))}
		for _, sym := range sc.Entries {
			sj.Symbols = append(sj.Symbols, symbolJSON{Name: sym.Name, Kind: string(sym.Kind), Value: sym.Value})
		}
		out.Scopes = append(out.Scopes, sj)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
