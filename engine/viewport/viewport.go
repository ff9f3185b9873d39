// Package viewport tracks the logical drawing surface size and device pixel ratio, and fans
// resize notifications out to the camera and renderer.
package viewport

import (
	"errors"
	"fmt"
	"sync"
)

// MaxPixelRatio caps the device pixel ratio used for the drawing buffer.
const MaxPixelRatio = 2.0

// ErrViewportDegenerate reports a requested width or height below one pixel. The viewport is
// clamped rather than left degenerate.
var ErrViewportDegenerate = errors.New("viewport degenerate")

// State is an immutable snapshot of the viewport.
type State struct {
	// Width is the logical surface width, at least 1.
	Width int
	// Height is the logical surface height, at least 1.
	Height int
	// PixelRatio is the device pixel ratio capped at MaxPixelRatio.
	PixelRatio float64
}

// Aspect returns Width / Height.
func (s State) Aspect() float32 {
	return float32(s.Width) / float32(s.Height)
}

// BufferSize returns the drawing buffer size in physical pixels.
func (s State) BufferSize() (width, height uint32) {
	return uint32(float64(s.Width)*s.PixelRatio + 0.5), uint32(float64(s.Height)*s.PixelRatio + 0.5)
}

// Listener receives the applied viewport state after every resize.
type Listener func(State)

// Viewport holds the current ViewportState. All mutation goes through Resize.
type Viewport struct {
	mu        *sync.Mutex
	state     State
	listeners []Listener
}

// New creates a viewport using the same clamping as Resize. A degenerate initial size is
// clamped silently; callers that care can inspect Normalize directly.
//
// Parameters:
//   - width, height: logical surface size
//   - devicePixelRatio: the display's pixel ratio
//
// Returns:
//   - *Viewport: the new viewport
func New(width, height int, devicePixelRatio float64) *Viewport {
	state, _ := Normalize(width, height, devicePixelRatio)
	return &Viewport{
		mu:    &sync.Mutex{},
		state: state,
	}
}

// Normalize applies the viewport clamping rule: width and height at least 1, pixel ratio
// at most MaxPixelRatio, non-positive pixel ratios treated as 1.
//
// Returns:
//   - State: the clamped state
//   - error: wraps ErrViewportDegenerate when width or height had to be clamped
func Normalize(width, height int, devicePixelRatio float64) (State, error) {
	var err error
	if width < 1 || height < 1 {
		err = fmt.Errorf("%w: requested %dx%d", ErrViewportDegenerate, width, height)
	}
	ratio := devicePixelRatio
	if ratio <= 0 {
		ratio = 1
	}
	return State{
		Width:      max(width, 1),
		Height:     max(height, 1),
		PixelRatio: min(ratio, MaxPixelRatio),
	}, err
}

// State returns the current snapshot.
func (v *Viewport) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// OnResize registers a listener. Listeners run in registration order after the new state is
// in place.
func (v *Viewport) OnResize(l Listener) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.listeners = append(v.listeners, l)
}

// Resize swaps in the clamped state and notifies listeners with it. A degenerate request is
// still applied in clamped form; the returned error is informational.
//
// Parameters:
//   - width, height: logical surface size
//   - devicePixelRatio: the display's pixel ratio
//
// Returns:
//   - State: the applied state
//   - error: wraps ErrViewportDegenerate when clamping occurred
func (v *Viewport) Resize(width, height int, devicePixelRatio float64) (State, error) {
	state, err := Normalize(width, height, devicePixelRatio)

	v.mu.Lock()
	v.state = state
	listeners := make([]Listener, len(v.listeners))
	copy(listeners, v.listeners)
	v.mu.Unlock()

	for _, l := range listeners {
		l(state)
	}
	return state, err
}
