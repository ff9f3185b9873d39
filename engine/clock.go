package engine

import "time"

// Clock reports elapsed seconds since the loop started. Values may regress (for example
// after a wall clock adjustment); the loop clamps them so animation time never runs backwards.
type Clock interface {
	Elapsed() float64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() float64

// Elapsed calls f.
func (f ClockFunc) Elapsed() float64 { return f() }

type wallClock struct {
	start time.Time
}

// NewWallClock returns a Clock measuring monotonic time from now.
func NewWallClock() Clock {
	return &wallClock{start: time.Now()}
}

func (c *wallClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}
