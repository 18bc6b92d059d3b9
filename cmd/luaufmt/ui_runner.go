package main

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"luaufmt/internal/driver"
	"luaufmt/internal/ui"
)

type formatOutcome struct {
	results []driver.FormatResult
	err     error
}

// formatWithUI runs the batch in the background and renders its progress
// until every file has reported.
func formatWithUI(ctx context.Context, title string, paths []string, opts driver.FormatOptions) ([]driver.FormatResult, error) {
	files, err := driver.CollectSourceFiles(ctx, paths)
	if err != nil {
		return nil, err
	}
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan formatOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.FormatPaths(ctx, paths, opts)
		outcomeCh <- formatOutcome{results: res, err: err}
		close(events)
	}()

	model := ui.NewProgressModel(title, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	_, uiErr := program.Run()
	if uiErr != nil {
		// keep the workers from blocking on a channel nobody reads
		go func() {
			for range events {
			}
		}()
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
