// Package loop runs the fetch-and-display cycle: kill the viewer, pull the
// latest image, relaunch the viewer, sleep, repeat. No step's failure stops
// the loop; the next cycle is the only recovery mechanism.
package loop

import (
	"context"
	"time"

	"github.com/nillhb/plantframe/internal/fetch"
	"github.com/nillhb/plantframe/internal/journal"
	"github.com/nillhb/plantframe/internal/logging"
	"github.com/nillhb/plantframe/internal/viewer"
)

// ExitReason indicates why the loop stopped.
type ExitReason int

const (
	ExitReasonUnknown   ExitReason = iota
	ExitReasonCanceled             // Context canceled (signal or parent)
	ExitReasonMaxCycles            // Hit the configured cycle limit
)

// String returns a human-readable description of the exit reason.
func (r ExitReason) String() string {
	switch r {
	case ExitReasonCanceled:
		return "canceled"
	case ExitReasonMaxCycles:
		return "max cycles"
	default:
		return "unknown"
	}
}

// Result contains the outcome of a loop execution.
type Result struct {
	Reason ExitReason
	Cycles int
}

// Options holds configuration for creating a Loop instance.
type Options struct {
	Fetcher fetch.Fetcher
	Viewer  viewer.Manager
	Journal *journal.Store // optional; nil disables cycle recording
	Logger  *logging.Logger

	// Interval is the pause between cycles.
	Interval time.Duration

	// MaxCycles stops the loop after N cycles. 0 means run forever.
	MaxCycles int
}

// Loop drives the fetch-and-display cycle.
type Loop struct {
	fetcher   fetch.Fetcher
	viewer    viewer.Manager
	journal   *journal.Store
	log       *logging.Logger
	interval  time.Duration
	maxCycles int
	cycle     int
}

// New creates a Loop from the given options.
func New(opts Options) *Loop {
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	return &Loop{
		fetcher:   opts.Fetcher,
		viewer:    opts.Viewer,
		journal:   opts.Journal,
		log:       log,
		interval:  opts.Interval,
		maxCycles: opts.MaxCycles,
	}
}

// Run executes cycles until the context is canceled or the cycle limit is
// reached. The interval sleep happens after each cycle, so cancellation
// mid-sleep still exits promptly.
func (l *Loop) Run(ctx context.Context) Result {
	for {
		if ctx.Err() != nil {
			return Result{Reason: ExitReasonCanceled, Cycles: l.cycle}
		}

		l.cycle++
		l.runCycle(ctx)

		if l.maxCycles > 0 && l.cycle >= l.maxCycles {
			return Result{Reason: ExitReasonMaxCycles, Cycles: l.cycle}
		}

		timer := time.NewTimer(l.interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return Result{Reason: ExitReasonCanceled, Cycles: l.cycle}
		case <-timer.C:
		}
	}
}

// runCycle performs one kill/fetch/launch sequence. Errors are logged and
// journaled but never short-circuit the remaining steps.
func (l *Loop) runCycle(ctx context.Context) {
	start := time.Now()
	log := l.log.With("cycle", l.cycle)

	if err := l.viewer.Kill(ctx); err != nil {
		log.Warn("viewer kill failed", "err", err)
	}

	fetchErr := l.fetcher.Fetch(ctx)
	if fetchErr != nil {
		log.Warn("fetch failed, keeping previous image", "err", fetchErr)
	} else {
		log.Debug("fetch ok")
	}

	if err := l.viewer.Launch(ctx); err != nil {
		log.Warn("viewer launch failed", "err", err)
	}

	log.Info("cycle complete", "fetch_ok", fetchErr == nil, "duration", time.Since(start).Round(time.Millisecond))

	l.record(start, fetchErr)
}

// record appends the cycle outcome to the journal.
func (l *Loop) record(start time.Time, fetchErr error) {
	if l.journal == nil {
		return
	}

	entry := journal.Entry{
		Cycle:      l.cycle,
		StartedAt:  start,
		FetchOK:    fetchErr == nil,
		DurationMS: time.Since(start).Milliseconds(),
	}
	if fetchErr != nil {
		entry.FetchError = fetchErr.Error()
	}

	if err := l.journal.Append(entry); err != nil {
		l.log.Warn("failed to record cycle", "err", err)
	}
}
