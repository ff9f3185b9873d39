package engine

import (
	"log/slog"

	"github.com/Carmen-Shannon/haunted-house/engine/profiler"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
)

// RenderLoopOption is a functional option for configuring a RenderLoop.
// Use the With* functions to create options that are applied directly to the loop instance.
type RenderLoopOption func(*renderLoop)

// WithGraph sets the scene graph drawn each tick.
//
// Parameters:
//   - g: the scene graph
//
// Returns:
//   - RenderLoopOption: option function to apply
func WithGraph(g *scene.Graph) RenderLoopOption {
	return func(l *renderLoop) {
		l.graph = g
	}
}

// WithAnimator adds a time-driven updater. Animators run in the order they were added,
// before the camera update.
//
// Parameters:
//   - a: the animator, typically the light rig
//
// Returns:
//   - RenderLoopOption: option function to apply
func WithAnimator(a Animator) RenderLoopOption {
	return func(l *renderLoop) {
		l.animators = append(l.animators, a)
	}
}

// WithCameraRig sets the camera rig updated each tick.
func WithCameraRig(rig CameraRig) RenderLoopOption {
	return func(l *renderLoop) {
		l.camera = rig
	}
}

// WithRenderer sets the draw sink.
func WithRenderer(s Sink) RenderLoopOption {
	return func(l *renderLoop) {
		l.sink = s
	}
}

// WithClock replaces the wall clock.
func WithClock(c Clock) RenderLoopOption {
	return func(l *renderLoop) {
		l.clock = c
	}
}

// WithScheduler sets the frame scheduler used by Run.
//
// Parameters:
//   - s: a window or fixed-rate scheduler
//
// Returns:
//   - RenderLoopOption: option function to apply
func WithScheduler(s FrameScheduler) RenderLoopOption {
	return func(l *renderLoop) {
		l.scheduler = s
	}
}

// WithProfiler enables per-tick profiling. A nil profiler disables it.
func WithProfiler(p *profiler.Profiler) RenderLoopOption {
	return func(l *renderLoop) {
		l.profiler = p
	}
}

// WithLogger sets the logger for frame errors and recovered panics.
func WithLogger(logger *slog.Logger) RenderLoopOption {
	return func(l *renderLoop) {
		if logger != nil {
			l.logger = logger
		}
	}
}
