package profiler

import (
	"log/slog"
	"time"
)

// ProfilerOption is a functional option applied to a Profiler by NewProfiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often a report is logged.
//
// Parameters:
//   - interval: the reporting interval
//
// Returns:
//   - ProfilerOption: option function to apply
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithLogger sets the logger reports are written to.
func WithLogger(logger *slog.Logger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLevel sets the level reports are logged at.
func WithLevel(level slog.Level) ProfilerOption {
	return func(p *Profiler) {
		p.level = level
	}
}

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}
