package light

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/tweak"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGhostOneKnownPoints(t *testing.T) {
	p := GhostPositions(0)[0]
	assert.InDelta(t, 4, p[0], 1e-6)
	assert.InDelta(t, 0, p[1], 1e-6)
	assert.InDelta(t, 0, p[2], 1e-6)

	p = GhostPositions(math.Pi)[0]
	assert.InDelta(t, 0, p[0], 1e-3)
	assert.InDelta(t, 0, p[1], 1e-3)
	assert.InDelta(t, 4, p[2], 1e-3)
}

func TestUpdateIsIdempotent(t *testing.T) {
	r := NewRig()
	r.Update(12.75)
	first := [GhostCount][3]float32{}
	for i := range GhostCount {
		first[i] = r.Ghost(i).Position()
	}

	r.Update(3)
	r.Update(12.75)
	for i := range GhostCount {
		assert.Equal(t, first[i], r.Ghost(i).Position())
	}
	assert.Equal(t, GhostPositions(12.75), first)
}

func TestGhostThreeRadiusVaries(t *testing.T) {
	for _, tt := range []float64{0, 1, 5, 17.3} {
		p := GhostPositions(tt)[2]
		assert.InDelta(t, math.Sin(4*tt)+math.Sin(2.5*tt), p[1], 1e-6)
		a := -0.18 * tt
		assert.InDelta(t, math.Cos(a)*(7+math.Sin(0.32*tt)), p[0], 1e-5)
	}
}

func TestRigFixedLights(t *testing.T) {
	r := NewRig()

	assert.Equal(t, LightTypeAmbient, r.Ambient().Type())
	assert.Equal(t, float32(0.12), r.Ambient().Intensity())
	assert.Equal(t, common.MustHexColor("#b9d5ff"), r.Ambient().Color())
	assert.False(t, r.Ambient().CastsShadows())

	moon := r.Moon()
	assert.Equal(t, [3]float32{4, 5, -2}, moon.Position())
	require.True(t, moon.CastsShadows())
	assert.Equal(t, ShadowConfig{MapWidth: 256, MapHeight: 256, Near: DefaultShadowNear, Far: 15, Bias: -0.005}, moon.Shadow())

	for i, hex := range []string{"#ff00ff", "#00ffff", "#ffff00"} {
		g := r.Ghost(i)
		assert.Equal(t, common.MustHexColor(hex), g.Color())
		assert.Equal(t, float32(2), g.Intensity())
		assert.Equal(t, float32(3), g.Range())
		assert.True(t, g.CastsShadows())
	}
	assert.Len(t, r.Lights(), 6)
}

func TestMoonDirectionFollowsPosition(t *testing.T) {
	r := NewRig()
	d := r.Moon().Direction()
	l := float32(math.Sqrt(16 + 25 + 4))
	assert.InDelta(t, -4/l, d[0], 1e-6)
	assert.InDelta(t, -5/l, d[1], 1e-6)
	assert.InDelta(t, 2/l, d[2], 1e-6)
}

func TestRegisterTweaks(t *testing.T) {
	r := NewRig()
	reg := tweak.NewRegistry()
	require.NoError(t, r.RegisterTweaks(reg))

	_, err := reg.Set("ambient.intensity", 2)
	require.NoError(t, err)
	assert.Equal(t, float32(1), r.Ambient().Intensity())

	_, err = reg.Set("moon.position.y", -7)
	require.NoError(t, err)
	assert.Equal(t, [3]float32{4, -5, -2}, r.Moon().Position())

	applied, err := reg.Set("moon.position.x", 1.234)
	require.NoError(t, err)
	got, err := reg.Get("moon.position.x")
	require.NoError(t, err)
	assert.Equal(t, got, applied)
	assert.Equal(t, float64(float32(1.234)), applied)

	// Frame updates leave tweaked values alone.
	r.Update(1)
	r.Update(2)
	v, err := reg.Get("moon.position.y")
	require.NoError(t, err)
	assert.Equal(t, -5.0, v)

	assert.ErrorIs(t, r.RegisterTweaks(reg), tweak.ErrDuplicateProperty)
}
