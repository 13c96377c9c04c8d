package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/safecast"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"zara/internal/diag"
	"zara/internal/source"
)

type palette struct {
	err, warn, info, note, gutter, caret, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		note:   color.New(color.FgGreen),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		bold:   color.New(color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.note, p.gutter, p.caret, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Порядок — как в bag.Items(); сортировка и дедупликация на вызывающем.
//
//	error[LEX1001]: illegal character '$'
//	  --> main.zr:3:7
//	   |
//	 3 |     x = $y;
//	   |         ^
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) error {
	p := newPalette(opts.Color)
	items := bag.Items()
	if opts.Max > 0 && opts.Max < len(items) {
		items = items[:opts.Max]
	}

	var sb strings.Builder
	for i := range items {
		d := &items[i]
		sev := strings.ToLower(d.Severity.String())
		sb.WriteString(p.severity(d.Severity).Sprintf("%s[%s]", sev, d.Code.ID()))
		sb.WriteString(": ")
		sb.WriteString(p.bold.Sprint(d.Message))
		sb.WriteByte('\n')

		writeSnippet(&sb, p, fs, d.Primary, opts)

		if opts.ShowNotes {
			for _, n := range d.Notes {
				sb.WriteString(p.note.Sprint("  = note"))
				sb.WriteString(": ")
				sb.WriteString(n.Msg)
				if f := fs.Get(n.Span.File); f != nil {
					start, _ := fs.Resolve(n.Span)
					fmt.Fprintf(&sb, " (%s:%d:%d)", displayPath(f, fs, opts.PathMode), start.Line, start.Col)
				}
				sb.WriteByte('\n')
			}
		}
		sb.WriteByte('\n')
	}
	if hidden := bag.Len() - len(items); hidden > 0 {
		fmt.Fprintf(&sb, "... and %d more diagnostic(s)\n", hidden)
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeSnippet(sb *strings.Builder, p palette, fs *source.FileSet, span source.Span, opts PrettyOpts) {
	f := fs.Get(span.File)
	if f == nil {
		return
	}
	start, end := fs.Resolve(span)
	sb.WriteString(p.gutter.Sprint("  --> "))
	fmt.Fprintf(sb, "%s:%d:%d\n", displayPath(f, fs, opts.PathMode), start.Line, start.Col)

	ctx, err := safecast.Conv[uint32](max(opts.Context, 0))
	if err != nil {
		ctx = 0
	}
	first := start.Line - min(ctx, start.Line-1)
	last := start.Line + ctx
	width := len(fmt.Sprint(last))
	blank := strings.Repeat(" ", width+1)

	sb.WriteString(p.gutter.Sprint(blank + " |"))
	sb.WriteByte('\n')
	for ln := first; ln <= last; ln++ {
		line := f.GetLine(ln)
		if ln > start.Line && line == "" {
			break
		}
		sb.WriteString(p.gutter.Sprintf(" %*d |", width, ln))
		if line != "" {
			sb.WriteByte(' ')
			sb.WriteString(expandTabs(line))
		}
		sb.WriteByte('\n')
		if ln == start.Line {
			sb.WriteString(p.gutter.Sprint(blank + " |"))
			sb.WriteByte(' ')
			sb.WriteString(underline(line, start, end, p))
			sb.WriteByte('\n')
		}
	}
}

// underline строит "   ^~~~" под диапазоном в пределах одной строки.
// Ширина считается в колонках терминала, а не в байтах.
func underline(line string, start, end source.LineCol, p palette) string {
	startCol := clampCol(start.Col, line)
	endCol := len(line)
	if end.Line == start.Line {
		endCol = clampCol(end.Col, line)
	}
	pad := runewidth.StringWidth(expandTabs(line[:startCol]))
	n := runewidth.StringWidth(expandTabs(line[startCol:max(endCol, startCol)]))
	marks := "^"
	if n > 1 {
		marks += strings.Repeat("~", n-1)
	}
	return strings.Repeat(" ", pad) + p.caret.Sprint(marks)
}

func clampCol(col uint32, line string) int {
	c, err := safecast.Conv[int](col)
	if err != nil || c < 1 {
		return 0
	}
	return min(c-1, len(line))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
