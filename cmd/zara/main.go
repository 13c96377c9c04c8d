package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"zara/internal/prof"
	"zara/internal/version"
)

// cli bundles the command tree with the tracing teardown set up by PersistentPreRunE.
type cli struct {
	root    *cobra.Command
	cleanup func(error)
	profile *prof.Session
}

// newCLI builds the command tree. Each call returns independent flag state.
func newCLI() *cli {
	c := &cli{}
	root := &cobra.Command{
		Use:           "zara",
		Short:         "Zara language front end",
		Long:          `zara tokenizes Zara sources and collects their declarations into a scoped symbol table`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyProjectConfig(cmd); err != nil {
				return err
			}
			session, err := setupProfiling(cmd)
			if err != nil {
				return err
			}
			c.profile = session
			cleanup, err := setupTracing(cmd)
			if err != nil {
				return err
			}
			c.cleanup = cleanup
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to keep per file")
	pf.String("diag-format", "pretty", "diagnostics format (pretty|short|json)")
	pf.String("path-mode", "auto", "how file paths are shown (auto|absolute|relative|basename)")
	pf.String("config", "", "path to zara.toml (default: search upwards from the working directory)")
	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	pf.String("trace-format", "auto", "trace output format (auto|text|ndjson)")
	pf.Int("trace-ring-size", 4096, "events kept by the ring tracer")
	pf.Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 disables)")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	root.AddCommand(newTokenizeCmd(), newSymbolsCmd(), newVersionCmd())
	root.SetContext(context.Background())
	c.root = root
	return c
}

// run executes args and finalizes tracing with the command's outcome.
func (c *cli) run(args []string) error {
	c.root.SetArgs(args)
	err := c.root.Execute()
	if c.cleanup != nil {
		c.cleanup(err)
		c.cleanup = nil
	}
	if perr := c.profile.Stop(); perr != nil {
		fmt.Fprintf(c.root.ErrOrStderr(), "profile: %v\n", perr)
	}
	return err
}

func main() {
	if err := newCLI().run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed, color.Bold).Sprint("error:"), err)
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color for output written to w.
func useColor(cmd *cobra.Command, w io.Writer) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		return isTerminal(w), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}
