package ui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"numerus/internal/driver"
)

type checkOutcome struct {
	results []*driver.CheckResult
	err     error
}

// RunCheck checks paths while the progress model renders to out.
func RunCheck(ctx context.Context, title string, paths []string, opts driver.CheckOptions, jobs int, out io.Writer) ([]*driver.CheckResult, error) {
	events := make(chan driver.CheckEvent, 256)
	outcomeCh := make(chan checkOutcome, 1)

	go func() {
		// CheckFiles закрывает events сам
		res, err := driver.CheckFiles(ctx, paths, opts, jobs, events)
		outcomeCh <- checkOutcome{results: res, err: err}
	}()

	model := NewProgressModel(title, paths, events)
	program := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))
	_, uiErr := program.Run()
	// модель может выйти раньше (Ctrl+C), дочитываем события, чтобы не заблокировать воркеров
	go func() {
		for range events {
		}
	}()
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.results, uiErr
	}
	return outcome.results, outcome.err
}
