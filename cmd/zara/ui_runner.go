package main

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"zara/internal/driver"
	"zara/internal/source"
	"zara/internal/ui"
)

type tokenizeDirOutcome struct {
	fileSet *source.FileSet
	results []driver.TokenizeDirResult
	err     error
}

// runTokenizeDirWithUI runs TokenizeDir in the background and renders its
// progress events until the channel is closed.
func runTokenizeDirWithUI(ctx context.Context, out io.Writer, dir string, files []string, opts driver.DirOptions) (*source.FileSet, []driver.TokenizeDirResult, error) {
	events := make(chan driver.ProgressEvent, 256)
	outcomeCh := make(chan tokenizeDirOutcome, 1)

	go func() {
		optsCopy := opts
		optsCopy.Progress = driver.ChannelSink{Ch: events}
		fs, results, err := driver.TokenizeDir(ctx, dir, optsCopy)
		outcomeCh <- tokenizeDirOutcome{fileSet: fs, results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("tokenize "+dir, files, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithContext(ctx))
	_, uiErr := program.Run()
	// модель могла выйти по ctrl+c раньше, чем закрылся канал
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.fileSet, outcome.results, uiErr
	}
	return outcome.fileSet, outcome.results, outcome.err
}
