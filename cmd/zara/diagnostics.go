package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"zara/internal/diag"
	"zara/internal/diagfmt"
	"zara/internal/source"
)

// diagOutput is how diagnostics are printed to stderr.
type diagOutput struct {
	format   string
	color    bool
	pathMode diagfmt.PathMode
}

func readDiagOutput(cmd *cobra.Command, w io.Writer) (diagOutput, error) {
	pf := cmd.Root().PersistentFlags()
	format, err := pf.GetString("diag-format")
	if err != nil {
		return diagOutput{}, fmt.Errorf("failed to get diag-format flag: %w", err)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	switch format {
	case "pretty", "short", "json":
	default:
		return diagOutput{}, fmt.Errorf("invalid --diag-format value %q (expected pretty|short|json)", format)
	}
	pathFlag, err := pf.GetString("path-mode")
	if err != nil {
		return diagOutput{}, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	pathMode, err := diagfmt.ParsePathMode(pathFlag)
	if err != nil {
		return diagOutput{}, err
	}
	colored, err := useColor(cmd, w)
	if err != nil {
		return diagOutput{}, err
	}
	return diagOutput{format: format, color: colored, pathMode: pathMode}, nil
}

// render пишет диагностику bag в w; пустой bag ничего не выводит.
func (o diagOutput) render(w io.Writer, bag *diag.Bag, fs *source.FileSet) error {
	if bag == nil || bag.Len() == 0 {
		return nil
	}
	bag.Dedup()
	bag.Sort()
	switch o.format {
	case "short":
		_, err := fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         o.pathMode,
			IncludeNotes:     true,
		})
	default:
		return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     o.color,
			Context:   1,
			PathMode:  o.pathMode,
			ShowNotes: true,
		})
	}
}
