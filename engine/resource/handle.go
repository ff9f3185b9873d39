package resource

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/haunted-house/common"
)

// State is the load state of a Handle.
type State int32

const (
	// StatePending means the load has been requested but not finished.
	StatePending State = iota
	// StateReady means the texture data is available.
	StateReady
	// StateFailed means the load failed; the handle never becomes ready.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Handle is an opaque reference to an asynchronously loaded texture. Handles are created
// pending and transition exactly once to ready or failed. Readers on the render thread
// poll State each frame and bind the texture once it is ready.
type Handle interface {
	// Key returns the path the texture was requested with.
	Key() string

	// State returns the current load state.
	State() State

	// Texture returns the decoded pixels, or nil unless the handle is ready.
	Texture() *common.TextureStagingData

	// Sampler returns the addressing, filtering and tiling requested for this texture.
	Sampler() common.SamplerStagingData

	// Err returns the load failure, wrapping ErrResourceUnavailable, or nil.
	Err() error
}

type handleImpl struct {
	key     string
	sampler common.SamplerStagingData

	// texture and err are written once before state is published.
	texture *common.TextureStagingData
	err     error
	state   atomic.Int32
}

var _ Handle = &handleImpl{}

func newHandle(key string, sampler common.SamplerStagingData) *handleImpl {
	return &handleImpl{key: key, sampler: sampler}
}

func (h *handleImpl) Key() string {
	return h.key
}

func (h *handleImpl) State() State {
	return State(h.state.Load())
}

func (h *handleImpl) Texture() *common.TextureStagingData {
	if h.State() != StateReady {
		return nil
	}
	return h.texture
}

func (h *handleImpl) Sampler() common.SamplerStagingData {
	return h.sampler
}

func (h *handleImpl) Err() error {
	if h.State() != StateFailed {
		return nil
	}
	return h.err
}

func (h *handleImpl) resolve(tex common.TextureStagingData) {
	h.texture = &tex
	h.state.Store(int32(StateReady))
}

func (h *handleImpl) fail(err error) {
	h.err = err
	h.state.Store(int32(StateFailed))
}

// Ready reports whether h is non-nil and loaded.
func Ready(h Handle) bool {
	return h != nil && h.State() == StateReady
}
