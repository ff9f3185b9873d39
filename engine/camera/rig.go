package camera

import (
	"sync"

	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
	"github.com/chewxy/math32"
)

// PointerButton identifies which pointer button started a drag.
type PointerButton int

const (
	// PointerRotate orbits the camera around its target.
	PointerRotate PointerButton = iota
	// PointerPan translates the camera and its target.
	PointerPan
)

// Rig couples a perspective Camera with its damped orbit controller and translates raw
// pointer input into controller deltas. It is advanced once per frame by Update.
type Rig struct {
	mu *sync.Mutex

	camera     Camera
	controller CameraController

	dragging   bool
	button     PointerButton
	lastX      float32
	lastY      float32
	viewHeight float32
}

// NewRig creates the scene camera: positioned at (4, 2, 5) looking at the origin with the
// default perspective settings and damping enabled.
//
// Parameters:
//   - state: initial viewport state, used for the aspect ratio
//   - options: extra controller options; they apply before the eye is placed, so a
//     target or radius bounds given here shape the starting orbit
//
// Returns:
//   - *Rig: the camera rig
func NewRig(state viewport.State, options ...CameraControllerOption) *Rig {
	opts := append([]CameraControllerOption{WithTarget(0, 0, 0)}, options...)
	opts = append(opts, WithPosition(4, 2, 5))
	ctrl := NewCameraController(opts...)

	return &Rig{
		mu:         &sync.Mutex{},
		camera:     NewCamera(WithAspect(state.Aspect()), WithController(ctrl)),
		controller: ctrl,
		viewHeight: float32(state.Height),
	}
}

// Camera returns the rig's camera.
func (r *Rig) Camera() Camera {
	return r.camera
}

// Controller returns the rig's orbit controller.
func (r *Rig) Controller() CameraController {
	return r.controller
}

// Resize applies a viewport change: the aspect ratio becomes width/height and drag
// sensitivity follows the new height. Field of view and clip planes are untouched.
func (r *Rig) Resize(state viewport.State) {
	r.mu.Lock()
	r.viewHeight = float32(state.Height)
	r.mu.Unlock()
	r.camera.SetAspect(state.Aspect())
}

// PointerDown starts a drag at the given logical cursor position.
func (r *Rig) PointerDown(button PointerButton, x, y float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dragging = true
	r.button = button
	r.lastX, r.lastY = x, y
}

// PointerMove converts cursor motion during a drag into queued rotation or a pan.
// A full viewport height of horizontal drag is one full turn.
func (r *Rig) PointerMove(x, y float32) {
	r.mu.Lock()
	if !r.dragging {
		r.mu.Unlock()
		return
	}
	dx, dy := x-r.lastX, y-r.lastY
	r.lastX, r.lastY = x, y
	button, height := r.button, max(r.viewHeight, 1)
	r.mu.Unlock()

	switch button {
	case PointerRotate:
		r.controller.RotateLeft(2 * math32.Pi * dx / height)
		r.controller.RotateUp(2 * math32.Pi * dy / height)
	case PointerPan:
		// World units per pixel at the target distance.
		scale := 2 * r.controller.Radius() * math32.Tan(r.camera.Fov()/2) / height
		r.controller.PanRight(-dx * scale)
		r.controller.PanUp(dy * scale)
	}
}

// PointerUp ends the current drag. Queued rotation keeps easing out through Update.
func (r *Rig) PointerUp() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dragging = false
}

// Scroll queues a dolly. Positive offsets (wheel up) move toward the target.
func (r *Rig) Scroll(offset float32) {
	r.controller.Dolly(offset)
}

// Update advances damping by one step and recomputes the camera matrices.
//
// Returns:
//   - bool: true if the camera moved
func (r *Rig) Update() bool {
	moved := r.controller.Update()
	r.camera.Update()
	return moved
}
