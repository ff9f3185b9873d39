// Package engine drives the haunted house: each tick samples the clock, advances the light
// rig and camera, and submits the scene graph to the renderer.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/profiler"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
)

// LoopState is the lifecycle state of a RenderLoop. There is no terminal state; the loop
// runs until its scheduler returns.
type LoopState int

const (
	StateIdle LoopState = iota
	StateRunning
)

func (s LoopState) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// ErrIncomplete is returned by NewRenderLoop when a required component is missing.
var ErrIncomplete = errors.New("render loop is missing a component")

// Animator advances time-driven scene state. light.Rig satisfies it.
type Animator interface {
	Update(t float64)
}

// CameraRig owns the camera and its damped controller. camera.Rig satisfies it.
type CameraRig interface {
	Camera() camera.Camera
	Update() bool
	Resize(state viewport.State)
}

// Sink receives one draw per tick. renderer.Renderer satisfies it.
type Sink interface {
	Render(g *scene.Graph, cam camera.Camera) error
	SetOutputSize(width, height int, pixelRatio float64)
}

// renderLoop implements the RenderLoop interface.
type renderLoop struct {
	mu *sync.Mutex

	graph     *scene.Graph
	animators []Animator
	camera    CameraRig
	sink      Sink
	clock     Clock
	scheduler FrameScheduler
	profiler  *profiler.Profiler
	logger    *slog.Logger

	state   LoopState
	elapsed float64
	frames  uint64
	failed  uint64
}

// RenderLoop is the per-frame driver.
//
// Ticks and resize handling happen on one goroutine: the scheduler dispatches window events
// between ticks, so a tick never observes a half-applied resize.
type RenderLoop interface {
	// Tick runs one frame: sample the clock, update animators, update the camera, draw,
	// then record profiler statistics. Animator and camera panics are recovered and logged;
	// the frame is still drawn.
	Tick()

	// Run installs Tick on the scheduler and blocks until the scheduler returns.
	//
	// Parameters:
	//   - ctx: cancels the run
	//
	// Returns:
	//   - error: the scheduler's error
	Run(ctx context.Context) error

	// Attach subscribes the camera and then the sink to viewport resizes and applies the
	// current viewport state to both.
	//
	// Parameters:
	//   - v: the viewport
	Attach(v *viewport.Viewport)

	// State returns the lifecycle state.
	State() LoopState

	// Elapsed returns the clamped clock value used by the most recent tick.
	Elapsed() float64

	// Frames returns the number of ticks run.
	Frames() uint64

	// FailedFrames returns the number of ticks whose draw returned an error.
	FailedFrames() uint64
}

var _ RenderLoop = &renderLoop{}

// NewRenderLoop creates a RenderLoop from the provided options. A graph, camera rig and
// sink are required; the clock defaults to wall time and the scheduler to 60 fps headless.
//
// Parameters:
//   - options: functional options configuring the loop
//
// Returns:
//   - RenderLoop: the idle loop
//   - error: ErrIncomplete if a required component is missing
func NewRenderLoop(options ...RenderLoopOption) (RenderLoop, error) {
	l := &renderLoop{
		mu:     &sync.Mutex{},
		state:  StateIdle,
		logger: slog.Default(),
	}
	for _, opt := range options {
		opt(l)
	}

	var missing []string
	if l.graph == nil {
		missing = append(missing, "graph")
	}
	if l.camera == nil {
		missing = append(missing, "camera")
	}
	if l.sink == nil {
		missing = append(missing, "renderer")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %v", ErrIncomplete, missing)
	}

	if l.clock == nil {
		l.clock = NewWallClock()
	}
	if l.scheduler == nil {
		l.scheduler = NewFixedScheduler(60, 0)
	}
	return l, nil
}

func (l *renderLoop) Tick() {
	l.mu.Lock()
	defer l.mu.Unlock()

	t := l.clock.Elapsed()
	if t < l.elapsed {
		t = l.elapsed
	}
	l.elapsed = t
	l.state = StateRunning

	for _, a := range l.animators {
		l.recovered("animator update", func() { a.Update(t) })
	}
	l.recovered("camera update", func() { l.camera.Update() })

	if err := l.sink.Render(l.graph, l.camera.Camera()); err != nil {
		l.failed++
		l.logger.Error("frame draw failed", "frame", l.frames+1, "error", err)
	}
	l.frames++

	if l.profiler != nil {
		l.profiler.Tick(slog.Uint64("frames", l.frames), slog.Float64("elapsed", t))
	}
}

// recovered runs fn and logs a panic instead of propagating it.
func (l *renderLoop) recovered(stage string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("recovered from panic", "stage", stage, "frame", l.frames+1, "panic", r)
		}
	}()
	fn()
}

func (l *renderLoop) Run(ctx context.Context) error {
	l.logger.Info("render loop starting", "nodes", l.graph.Len())
	err := l.scheduler.Run(ctx, l.Tick)
	l.logger.Info("render loop stopped", "frames", l.Frames(), "failed", l.FailedFrames())
	return err
}

func (l *renderLoop) Attach(v *viewport.Viewport) {
	v.OnResize(func(s viewport.State) {
		l.camera.Resize(s)
	})
	v.OnResize(func(s viewport.State) {
		l.sink.SetOutputSize(s.Width, s.Height, s.PixelRatio)
	})
	s := v.State()
	l.camera.Resize(s)
	l.sink.SetOutputSize(s.Width, s.Height, s.PixelRatio)
}

func (l *renderLoop) State() LoopState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

func (l *renderLoop) Elapsed() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.elapsed
}

func (l *renderLoop) Frames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.frames
}

func (l *renderLoop) FailedFrames() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failed
}
