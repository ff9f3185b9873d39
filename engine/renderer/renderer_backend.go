package renderer

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU-based rendering backend.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeHeadless builds every frame on the CPU and discards it. Used for tests,
	// profiling and scene export without a display.
	BackendTypeHeadless
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeHeadless:
		return "headless"
	default:
		return "unknown"
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// rendererBackend draws prepared frames. Backends never walk the scene graph themselves;
// the renderer flattens it into a Frame first.
type rendererBackend interface {
	// Configure resizes the render target in physical pixels.
	//
	// Parameters:
	//   - width: target width in pixels, at least 1
	//   - height: target height in pixels, at least 1
	Configure(width, height int)

	// SetPresentMode changes the present mode. Takes effect on the next Configure.
	SetPresentMode(mode PresentMode)

	// Draw encodes and submits one frame.
	//
	// Parameters:
	//   - f: the flattened frame
	//
	// Returns:
	//   - error: an error if the frame could not be submitted
	Draw(f *Frame) error

	// Release frees every backend resource.
	Release()
}
