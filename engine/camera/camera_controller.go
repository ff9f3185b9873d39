package camera

// CameraController defines the orbit control system.
// Controllers own positional state (position, target). Camera reads from controller
// and computes view/projection matrices. Input is queued as rotation and dolly deltas
// which Update applies; with damping enabled only a fraction of the remaining delta is
// applied per step so the camera eases to rest after input stops.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPosition places the camera at a world-space position, deriving radius, azimuth and
	// elevation relative to the current target.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Update applies one step of the pending rotation and dolly input.
	//
	// Returns:
	//   - bool: true if the camera moved during this step
	Update() bool
}

// orbitCameraController defines orbit-specific control methods.
// Provides orbit controls using spherical coordinates (radius, azimuth, elevation)
// relative to the target/pivot point.
type orbitCameraController interface {
	// RotateLeft queues a rotation around the vertical axis. Positive angles move the camera to the left.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotateLeft(angle float32)

	// RotateUp queues a rotation toward the pole. Positive angles raise the camera.
	//
	// Parameters:
	//   - angle: rotation in radians
	RotateUp(angle float32)

	// Dolly queues a change of orbit radius. Positive steps move toward the target.
	//
	// Parameters:
	//   - steps: number of zoom steps, scaled by ZoomSpeed
	Dolly(steps float32)

	// Radius returns the current orbit radius (distance from target).
	//
	// Returns:
	//   - float32: current distance from target
	Radius() float32

	// Azimuth returns the current horizontal angle in radians.
	Azimuth() float32

	// Elevation returns the current vertical angle in radians.
	Elevation() float32

	// MinElevation returns the minimum allowed elevation.
	MinElevation() float32

	// MaxElevation returns the maximum allowed elevation.
	MaxElevation() float32

	// DampingFactor returns the fraction of pending input applied per Update. Zero disables damping.
	DampingFactor() float32

	// ZoomSpeed returns the dolly speed multiplier.
	ZoomSpeed() float32
}

// planarCameraController defines panning methods that translate both position and target.
type planarCameraController interface {
	// PanRight moves position and target along the camera's right axis.
	//
	// Parameters:
	//   - delta: distance in world units, scaled by PanSpeed
	PanRight(delta float32)

	// PanUp moves position and target along the camera's up axis.
	//
	// Parameters:
	//   - delta: distance in world units, scaled by PanSpeed
	PanUp(delta float32)

	// PanSpeed returns the pan speed multiplier.
	PanSpeed() float32
}
