package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResizeAppliesAspectAndCapsPixelRatio(t *testing.T) {
	v := New(800, 600, 1)

	state, err := v.Resize(1920, 1080, 3)
	require.NoError(t, err)
	assert.Equal(t, State{Width: 1920, Height: 1080, PixelRatio: 2}, state)
	assert.Equal(t, float32(1920)/float32(1080), state.Aspect())
	assert.Equal(t, state, v.State())
}

func TestResizeClampsZeroHeight(t *testing.T) {
	v := New(800, 600, 1)

	var state State
	var err error
	require.NotPanics(t, func() {
		state, err = v.Resize(800, 0, 1)
	})
	assert.ErrorIs(t, err, ErrViewportDegenerate)
	assert.Equal(t, 1, state.Height)
	assert.Equal(t, float32(800), state.Aspect())
}

func TestInitialSetupUsesResizeRule(t *testing.T) {
	v := New(0, 720, 2.5)
	assert.Equal(t, State{Width: 1, Height: 720, PixelRatio: 2}, v.State())

	v = New(640, 480, 0)
	assert.Equal(t, 1.0, v.State().PixelRatio)
}

func TestListenersRunInOrderWithAppliedState(t *testing.T) {
	v := New(100, 100, 1)

	var calls []string
	var seen State
	v.OnResize(func(s State) {
		calls = append(calls, "camera")
		// The new state is visible to listeners.
		seen = v.State()
	})
	v.OnResize(func(State) { calls = append(calls, "renderer") })

	_, err := v.Resize(300, 200, 1.5)
	require.NoError(t, err)
	assert.Equal(t, []string{"camera", "renderer"}, calls)
	assert.Equal(t, State{Width: 300, Height: 200, PixelRatio: 1.5}, seen)
}

func TestBufferSize(t *testing.T) {
	w, h := State{Width: 101, Height: 50, PixelRatio: 1.5}.BufferSize()
	assert.Equal(t, uint32(152), w)
	assert.Equal(t, uint32(75), h)
}
