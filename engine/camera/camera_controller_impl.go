package camera

import (
	"sync"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/chewxy/math32"
)

// restEpsilon is the angular/scale change below which the controller counts as idle.
const restEpsilon = 1e-6

// cameraControllerImpl is the single implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	// Camera position (computed from target + spherical coords)
	position [3]float32
	target   [3]float32

	// Spherical coordinates (offset from target)
	radius    float32
	azimuth   float32 // Horizontal angle around Y axis
	elevation float32 // Vertical angle from horizontal plane

	// Pending input
	azimuthDelta   float32
	elevationDelta float32
	dollyScale     float32

	// Orbit constraints
	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	dampingFactor float32
	zoomSpeed     float32
	panSpeed      float32
}

// Compile-time interface compliance check
var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a new damped orbit controller.
// Defaults: damping factor 0.05, radius bounds [0.5, 50], elevation limited just short of the poles.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:     &sync.Mutex{},
		target: [3]float32{0, 0, 0},

		radius:     5.0,
		dollyScale: 1,

		minRadius:    0.5,
		maxRadius:    50.0,
		minElevation: -math32.Pi/2 + 0.001,
		maxElevation: math32.Pi/2 - 0.001,

		dampingFactor: 0.05,
		zoomSpeed:     1.0,
		panSpeed:      1.0,
	}

	for _, option := range options {
		option(cc)
	}

	cc.updatePosition()
	return cc
}

// --- internal helpers ---

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	sinElev, cosElev := math32.Sincos(cc.elevation)
	sinAzim, cosAzim := math32.Sincos(cc.azimuth)

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

// placeAt derives spherical coordinates from a world-space eye position.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) placeAt(x, y, z float32) {
	dx := x - cc.target[0]
	dy := y - cc.target[1]
	dz := z - cc.target[2]
	r := math32.Sqrt(dx*dx + dy*dy + dz*dz)
	if r < 1e-8 {
		return
	}
	cc.radius = common.Clamp(r, cc.minRadius, cc.maxRadius)
	cc.azimuth = math32.Atan2(dx, dz)
	cc.elevation = common.Clamp(math32.Asin(dy/r), cc.minElevation, cc.maxElevation)
	cc.updatePosition()
}

// localAxes computes the camera's right and up axes consistent with the LookAt matrix.
// If position and target coincide, all returned components are zero.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) localAxes() (rx, ry, rz, ux, uy, uz float32) {
	bx := cc.position[0] - cc.target[0]
	by := cc.position[1] - cc.target[1]
	bz := cc.position[2] - cc.target[2]
	bLen := math32.Sqrt(bx*bx + by*by + bz*bz)
	if bLen < 1e-8 {
		return
	}
	bx /= bLen
	by /= bLen
	bz /= bLen

	// right = normalize(cross(worldUp, backward)) = (bz, 0, -bx)
	rx = bz
	rz = -bx
	rLen := math32.Sqrt(rx*rx + rz*rz)
	if rLen < 1e-8 {
		return
	}
	rx /= rLen
	rz /= rLen

	// up = cross(backward, right)
	ux = by*rz - bz*ry
	uy = bz*rx - bx*rz
	uz = bx*ry - by*rx
	return
}

func (cc *cameraControllerImpl) translate(dx, dy, dz float32) {
	cc.target[0] += dx
	cc.target[1] += dy
	cc.target[2] += dz
	cc.position[0] += dx
	cc.position[1] += dy
	cc.position[2] += dz
}

// --- CameraController shared methods ---

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.placeAt(x, y, z)
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target[0] = x
	cc.target[1] = y
	cc.target[2] = z
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	prevAzimuth, prevElevation, prevRadius := cc.azimuth, cc.elevation, cc.radius

	if cc.dampingFactor > 0 {
		cc.azimuth += cc.azimuthDelta * cc.dampingFactor
		cc.elevation += cc.elevationDelta * cc.dampingFactor
		cc.azimuthDelta *= 1 - cc.dampingFactor
		cc.elevationDelta *= 1 - cc.dampingFactor
	} else {
		cc.azimuth += cc.azimuthDelta
		cc.elevation += cc.elevationDelta
		cc.azimuthDelta = 0
		cc.elevationDelta = 0
	}
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)

	cc.radius = common.Clamp(cc.radius*cc.dollyScale, cc.minRadius, cc.maxRadius)
	cc.dollyScale = 1

	cc.updatePosition()

	return math32.Abs(cc.azimuth-prevAzimuth) > restEpsilon ||
		math32.Abs(cc.elevation-prevElevation) > restEpsilon ||
		math32.Abs(cc.radius-prevRadius) > restEpsilon
}

// --- orbitCameraController implementation ---

func (cc *cameraControllerImpl) RotateLeft(angle float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuthDelta -= angle
}

func (cc *cameraControllerImpl) RotateUp(angle float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevationDelta += angle
}

func (cc *cameraControllerImpl) Dolly(steps float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dollyScale *= math32.Pow(0.95, steps*cc.zoomSpeed)
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxElevation
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}

// --- planarCameraController implementation ---

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	rx, ry, rz, _, _, _ := cc.localAxes()
	offset := delta * cc.panSpeed
	cc.translate(rx*offset, ry*offset, rz*offset)
}

func (cc *cameraControllerImpl) PanUp(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	_, _, _, ux, uy, uz := cc.localAxes()
	offset := delta * cc.panSpeed
	cc.translate(ux*offset, uy*offset, uz*offset)
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}
