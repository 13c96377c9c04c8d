package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"zara/internal/diagfmt"
	"zara/internal/driver"
	"zara/internal/observ"
	"zara/internal/symbols"
)

func newSymbolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "symbols [flags] file.zr",
		Short: "Collect declarations of a zara source file into a symbol table",
		Long: `Symbols lexes a zara source file and records its identifiers and type
keywords in a symbol table, then prints the table scope by scope`,
		Args: cobra.ExactArgs(1),
		RunE: runSymbols,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|listing)")
	cmd.Flags().Bool("scoped", false, "open a local scope for every {...} block")
	cmd.Flags().Bool("strict", false, "report unmatched '}' as errors")
	cmd.Flags().Bool("warn-shadow", false, "warn when a local symbol hides an outer one")
	cmd.Flags().Bool("events", false, "print every table mutation to stderr")
	return cmd
}

func runSymbols(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "json", "listing":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	var opts driver.CollectOptions
	if opts.Scoped, err = cmd.Flags().GetBool("scoped"); err != nil {
		return fmt.Errorf("failed to get scoped flag: %w", err)
	}
	if opts.Strict, err = cmd.Flags().GetBool("strict"); err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}
	if opts.WarnShadow, err = cmd.Flags().GetBool("warn-shadow"); err != nil {
		return fmt.Errorf("failed to get warn-shadow flag: %w", err)
	}
	events, err := cmd.Flags().GetBool("events")
	if err != nil {
		return fmt.Errorf("failed to get events flag: %w", err)
	}
	if events {
		opts.Observer = eventPrinter(cmd.ErrOrStderr())
	}

	pf := cmd.Root().PersistentFlags()
	maxDiagnostics, err := pf.GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	quiet, _ := pf.GetBool("quiet")
	timings, _ := pf.GetBool("timings")

	diagOut, err := readDiagOutput(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	timer := observ.NewTimer()
	var result *driver.CollectResult
	err = timer.Measure("collect", func() error {
		var cerr error
		result, cerr = driver.CollectFile(cmd.Context(), path, maxDiagnostics, opts)
		return cerr
	})
	if err != nil {
		return fmt.Errorf("symbol collection failed: %w", err)
	}

	if err := diagOut.render(cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
		return err
	}

	rep := result.Table.Dump()
	out := cmd.OutOrStdout()
	err = timer.Measure("render", func() error {
		switch format {
		case "json":
			return diagfmt.FormatSymbolsJSON(out, rep)
		case "listing":
			_, werr := io.WriteString(out, rep.String())
			return werr
		default:
			colored, cerr := useColor(cmd, out)
			if cerr != nil {
				return cerr
			}
			return diagfmt.FormatSymbolsPretty(out, rep, colored)
		}
	})
	if err != nil {
		return err
	}

	if timings && !quiet {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	return nil
}

// eventPrinter печатает мутации таблицы по одной в строке.
func eventPrinter(w io.Writer) symbols.Observer {
	return symbols.ObserverFunc(func(ev symbols.Event) {
		switch ev.Op {
		case symbols.OpInsert, symbols.OpDrop:
			fmt.Fprintf(w, "%-9s %s %s -> %s depth=%d", ev.Op, ev.Symbol.Name, ev.Symbol.Kind, ev.Target, ev.Depth)
			if ev.Overwrote {
				fmt.Fprint(w, " overwrote")
			}
			if ev.Shadows {
				fmt.Fprint(w, " shadows")
			}
			fmt.Fprintln(w)
		case symbols.OpPop:
			fmt.Fprintf(w, "%-9s %s depth=%d dropped=%d\n", ev.Op, ev.Scope, ev.Depth, ev.Dropped)
		default:
			fmt.Fprintf(w, "%-9s %s depth=%d\n", ev.Op, ev.Scope, ev.Depth)
		}
	})
}
