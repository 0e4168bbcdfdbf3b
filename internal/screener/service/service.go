package service

import (
	"context"
	"errors"
	"sync"

	"golang-bandar-screener/pkg/logger"
)

var (
	// ErrNoStockData is returned when no snapshot could be retrieved.
	ErrNoStockData = errors.New("no stock data retrieved")
	// ErrRunInProgress is returned when another screening run holds the run guard.
	ErrRunInProgress = errors.New("screening run already in progress")
)

// ProgressReporter receives human readable progress lines of a run.
type ProgressReporter interface {
	Report(ctx context.Context, line string)
}

// ProgressFunc adapts a function to ProgressReporter.
type ProgressFunc func(ctx context.Context, line string)

func (f ProgressFunc) Report(ctx context.Context, line string) { f(ctx, line) }

// ProgressRecorder keeps every reported line, logs it and forwards it to next.
type ProgressRecorder struct {
	mu    sync.Mutex
	lines []string
	log   *logger.Logger
	next  ProgressReporter
}

// NewProgressRecorder creates a ProgressRecorder. next may be nil.
func NewProgressRecorder(log *logger.Logger, next ProgressReporter) *ProgressRecorder {
	return &ProgressRecorder{log: log, next: next}
}

func (p *ProgressRecorder) Report(ctx context.Context, line string) {
	p.mu.Lock()
	p.lines = append(p.lines, line)
	p.mu.Unlock()
	if p.log != nil {
		p.log.InfoContext(ctx, line)
	}
	if p.next != nil {
		p.next.Report(ctx, line)
	}
}

// Lines returns a copy of the reported lines.
func (p *ProgressRecorder) Lines() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.lines))
	copy(out, p.lines)
	return out
}

// RunError is returned by a failed screening run together with its progress lines.
type RunError struct {
	RunID    string
	Progress []string
	Err      error
}

func (e *RunError) Error() string { return e.Err.Error() }

func (e *RunError) Unwrap() error { return e.Err }
