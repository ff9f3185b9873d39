package engine

import (
	"context"
	"time"

	"github.com/Carmen-Shannon/haunted-house/engine/window"
)

// FrameScheduler invokes tick once per frame until it stops. Ticks run on the calling
// goroutine, one at a time.
type FrameScheduler interface {
	// Run blocks, calling tick once per frame, until the scheduler ends or ctx is done.
	//
	// Parameters:
	//   - ctx: cancels the run
	//   - tick: the per-frame callback
	//
	// Returns:
	//   - error: ctx.Err() when cancelled, otherwise nil
	Run(ctx context.Context, tick func()) error
}

type windowScheduler struct {
	window window.Window
}

// NewWindowScheduler ticks once per iteration of the window's event loop, after pending
// input and resize events have been dispatched.
//
// Parameters:
//   - w: the window whose message loop drives the frames
//
// Returns:
//   - FrameScheduler: the scheduler
func NewWindowScheduler(w window.Window) FrameScheduler {
	return &windowScheduler{window: w}
}

func (s *windowScheduler) Run(ctx context.Context, tick func()) error {
	s.window.SetUpdateCallback(func() {
		if ctx.Err() != nil {
			_ = s.window.Close()
			return
		}
		tick()
	})
	s.window.ProcessMessages()
	return ctx.Err()
}

type fixedScheduler struct {
	interval time.Duration
	frames   int
	sleep    func(time.Duration)
}

// NewFixedScheduler ticks at a fixed rate without a window. frames bounds the number of
// ticks; 0 runs until ctx is done. A non-positive fps ticks as fast as possible.
//
// Parameters:
//   - fps: target ticks per second
//   - frames: tick budget, or 0 for unbounded
//
// Returns:
//   - FrameScheduler: the scheduler
func NewFixedScheduler(fps float64, frames int) FrameScheduler {
	s := &fixedScheduler{frames: frames, sleep: time.Sleep}
	if fps > 0 {
		s.interval = time.Duration(float64(time.Second) / fps)
	}
	return s
}

func (s *fixedScheduler) Run(ctx context.Context, tick func()) error {
	for n := 0; s.frames == 0 || n < s.frames; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		tick()
		if remaining := s.interval - time.Since(start); remaining > 0 {
			s.sleep(remaining)
		}
	}
	return nil
}
