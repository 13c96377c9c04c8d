package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"zara/internal/diagfmt"
	"zara/internal/driver"
	"zara/internal/observ"
	"zara/internal/source"
)

func newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.zr|directory>",
		Short: "Tokenize zara source files",
		Long:  `Tokenize breaks a zara source file, or every .zr file under a directory, into its tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	cmd.Flags().Int("jobs", 0, "max parallel files (0=auto)")
	cmd.Flags().Bool("cache", false, "reuse tokens of unchanged files from the on-disk cache")
	cmd.Flags().String("cache-dir", "", "cache directory (default: user cache dir)")
	cmd.Flags().Bool("clear-cache", false, "drop every cached entry before tokenizing")
	return cmd
}

type tokenizeOptions struct {
	format         string
	maxDiagnostics int
	quiet          bool
	timings        bool
}

func readTokenizeOptions(cmd *cobra.Command) (tokenizeOptions, error) {
	var opts tokenizeOptions
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	opts.format = strings.ToLower(format)
	switch opts.format {
	case "pretty", "json", "msgpack":
	default:
		return opts, fmt.Errorf("unknown format: %s", format)
	}
	pf := cmd.Root().PersistentFlags()
	if opts.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return opts, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if opts.quiet, err = pf.GetBool("quiet"); err != nil {
		return opts, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if opts.timings, err = pf.GetBool("timings"); err != nil {
		return opts, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return opts, nil
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	opts, err := readTokenizeOptions(cmd)
	if err != nil {
		return err
	}
	diagOut, err := readDiagOutput(cmd, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	timer := observ.NewTimer()
	if st.IsDir() {
		err = runTokenizeDir(cmd, path, opts, diagOut, timer)
	} else {
		err = runTokenizeFile(cmd, path, opts, diagOut, timer)
	}
	if err != nil {
		return err
	}

	if opts.timings && !opts.quiet {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}
	return nil
}

func runTokenizeFile(cmd *cobra.Command, path string, opts tokenizeOptions, diagOut diagOutput, timer *observ.Timer) error {
	idx := timer.Begin("lex")
	result, err := driver.Tokenize(cmd.Context(), path, opts.maxDiagnostics)
	if err != nil {
		timer.End(idx, "failed")
		return fmt.Errorf("tokenization failed: %w", err)
	}
	timer.End(idx, fmt.Sprintf("%d tokens", len(result.Tokens)-1))

	if err := diagOut.render(cmd.ErrOrStderr(), result.Bag, result.FileSet); err != nil {
		return err
	}

	return timer.Measure("render", func() error {
		out := cmd.OutOrStdout()
		if opts.format == "pretty" {
			return diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
		}
		return writeTokenStreams(out, opts.format, diagfmt.BuildTokenStream(path, result.Tokens, result.FileSet))
	})
}

func runTokenizeDir(cmd *cobra.Command, dir string, opts tokenizeOptions, diagOut diagOutput, timer *observ.Timer) error {
	dirOpts := driver.DirOptions{MaxDiagnostics: opts.maxDiagnostics}
	var err error
	if dirOpts.Jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if dirOpts.Cache, err = openCache(cmd); err != nil {
		return err
	}
	uiFlag, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}

	idx := timer.Begin("lex")
	var (
		fileSet *source.FileSet
		results []driver.TokenizeDirResult
	)
	if !opts.quiet && shouldUseTUI(mode, cmd.ErrOrStderr()) {
		files, listErr := driver.ListSourceFiles(dir)
		if listErr != nil {
			timer.End(idx, "failed")
			return fmt.Errorf("tokenization failed: %w", listErr)
		}
		fileSet, results, err = runTokenizeDirWithUI(cmd.Context(), cmd.ErrOrStderr(), dir, files, dirOpts)
	} else {
		fileSet, results, err = driver.TokenizeDir(cmd.Context(), dir, dirOpts)
	}
	if err != nil {
		timer.End(idx, "failed")
		return fmt.Errorf("tokenization failed: %w", err)
	}
	cached := 0
	for _, r := range results {
		if r.Cached {
			cached++
		}
	}
	timer.End(idx, fmt.Sprintf("%d files, %d cached", len(results), cached))

	for _, r := range results {
		if err := diagOut.render(cmd.ErrOrStderr(), r.Bag, fileSet); err != nil {
			return err
		}
	}

	return timer.Measure("render", func() error {
		out := cmd.OutOrStdout()
		if opts.format == "pretty" {
			return writeTokensPretty(out, results, fileSet)
		}
		streams := make([]diagfmt.TokenStream, 0, len(results))
		for _, r := range results {
			streams = append(streams, diagfmt.BuildTokenStream(r.Path, r.Tokens, fileSet))
		}
		return writeTokenStreams(out, opts.format, streams...)
	})
}

func openCache(cmd *cobra.Command) (*driver.TokenCache, error) {
	enabled, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	dir, err := cmd.Flags().GetString("cache-dir")
	if err != nil {
		return nil, fmt.Errorf("failed to get cache-dir flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return nil, fmt.Errorf("failed to get clear-cache flag: %w", err)
	}

	var cache *driver.TokenCache
	switch {
	case dir != "":
		cache, err = driver.NewTokenCache(dir)
	case enabled || clearCache:
		cache, err = driver.OpenTokenCache("zara")
	default:
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if clearCache {
		if err := cache.Clear(); err != nil {
			return nil, fmt.Errorf("clear token cache: %w", err)
		}
	}
	return cache, nil
}

func writeTokensPretty(out io.Writer, results []driver.TokenizeDirResult, fs *source.FileSet) error {
	for i, r := range results {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(out, "==> %s <==\n", r.Path); err != nil {
			return err
		}
		if len(r.Tokens) == 0 {
			continue
		}
		if err := diagfmt.FormatTokensPretty(out, r.Tokens, fs); err != nil {
			return err
		}
	}
	return nil
}

func writeTokenStreams(out io.Writer, format string, streams ...diagfmt.TokenStream) error {
	if format == "msgpack" {
		return diagfmt.FormatTokensMsgpack(out, streams...)
	}
	return diagfmt.FormatTokensJSON(out, streams...)
}
