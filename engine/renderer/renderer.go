// Package renderer is the draw-call sink of the engine. It flattens a scene graph and camera
// into a Frame and hands it to a backend: WebGPU on a window surface, or a headless backend
// that only counts.
package renderer

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoSurface is returned when the WebGPU backend is requested without a surface.
var ErrNoSurface = errors.New("renderer: no surface descriptor")

// SurfaceSource provides the platform surface the WebGPU backend presents to.
// window.Window satisfies it.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// Stats summarizes the most recent frame.
type Stats struct {
	Frames   uint64
	Rebuilds uint64
	Draws    int
	Lights   int
	// Textures counts material channels whose texture was ready and sampled.
	Textures int
	Width    int
	Height   int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     rendererBackend
	list        drawList
	stats       Stats
	logger      *slog.Logger

	width      int
	height     int
	pixelRatio float64

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
}

// Renderer defines the interface for the rendering sink.
//
// Render is called once per tick from the render loop; SetOutputSize is called by the
// viewport whenever the window is resized. Both run on the render thread.
type Renderer interface {
	// SetOutputSize resizes the render target. The physical size is the logical size times
	// the pixel ratio, rounded, and at least 1 on each axis.
	//
	// Parameters:
	//   - width: logical width
	//   - height: logical height
	//   - pixelRatio: device pixels per logical pixel
	SetOutputSize(width, height int, pixelRatio float64)

	// OutputSize returns the physical render target size.
	OutputSize() (width, height int)

	// Render draws the graph as seen by cam.
	//
	// Parameters:
	//   - g: the scene graph
	//   - cam: the camera
	//
	// Returns:
	//   - error: the backend's submission error, if any
	Render(g *scene.Graph, cam camera.Camera) error

	// Frames returns the number of frames submitted.
	Frames() uint64

	// Stats returns statistics for the most recent frame.
	Stats() Stats

	// BackendType returns the selected backend.
	BackendType() RendererBackendType

	// SetPresentMode sets the surface present mode, applied on the next resize.
	SetPresentMode(mode PresentMode)

	// Release frees the backend.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with the given backend.
//
// Parameters:
//   - backendType: the backend to use
//   - surface: the surface source, required for BackendTypeWGPU and ignored otherwise
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the renderer
//   - error: an error if the backend could not be initialized
func NewRenderer(backendType RendererBackendType, surface SurfaceSource, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		logger:      slog.Default(),
		width:       1,
		height:      1,
		pixelRatio:  1,
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeHeadless:
		r.backend = newHeadlessRendererBackend()
	case BackendTypeWGPU:
		if surface == nil || surface.SurfaceDescriptor() == nil {
			return nil, ErrNoSurface
		}
		b, err := newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create wgpu backend: %w", err)
		}
		r.backend = b
	default:
		return nil, fmt.Errorf("unknown renderer backend %d", backendType)
	}

	r.backend.SetPresentMode(r.presentMode)
	w, h := physicalSize(r.width, r.height, r.pixelRatio)
	r.backend.Configure(w, h)
	r.stats.Width, r.stats.Height = w, h
	return r, nil
}

func physicalSize(width, height int, ratio float64) (int, int) {
	if ratio <= 0 {
		ratio = 1
	}
	w := int(math.Round(float64(width) * ratio))
	h := int(math.Round(float64(height) * ratio))
	return max(w, 1), max(h, 1)
}

func (r *renderer) SetOutputSize(width, height int, pixelRatio float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height, r.pixelRatio = width, height, pixelRatio
	w, h := physicalSize(width, height, pixelRatio)
	if w == r.stats.Width && h == r.stats.Height {
		return
	}
	r.backend.Configure(w, h)
	r.stats.Width, r.stats.Height = w, h
	r.logger.Debug("renderer resized", "width", w, "height", h, "pixelRatio", pixelRatio)
}

func (r *renderer) OutputSize() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats.Width, r.stats.Height
}

func (r *renderer) Render(g *scene.Graph, cam camera.Camera) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rebuilt := r.list.refresh(g)
	if rebuilt {
		r.stats.Rebuilds++
	}
	f := r.list.frame(cam)
	f.Number = r.stats.Frames + 1
	f.Width, f.Height = r.stats.Width, r.stats.Height
	f.Rebuilt = rebuilt

	if err := r.backend.Draw(f); err != nil {
		return fmt.Errorf("frame %d: %w", f.Number, err)
	}

	r.stats.Frames = f.Number
	r.stats.Draws = len(f.Items)
	r.stats.Lights = len(f.Lights)
	r.stats.Textures = readyTextures(f)
	return nil
}

func readyTextures(f *Frame) int {
	seen := make(map[material.Material]bool)
	count := 0
	for _, item := range f.Items {
		if seen[item.Material] {
			continue
		}
		seen[item.Material] = true
		for _, c := range material.Channels() {
			if item.Material.Texture(c) != nil {
				count++
			}
		}
	}
	return count
}

func (r *renderer) Frames() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats.Frames
}

func (r *renderer) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stats
}

func (r *renderer) BackendType() RendererBackendType {
	return r.backendType
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.SetPresentMode(mode)
}

func (r *renderer) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backend.Release()
}
