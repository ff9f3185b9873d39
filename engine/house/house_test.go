package house

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/Carmen-Shannon/haunted-house/engine/resource"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted replays fixed values and then repeats 0.5.
type scripted struct {
	values []float64
	next   int
}

func (s *scripted) Float64() float64 {
	if s.next >= len(s.values) {
		return 0.5
	}
	v := s.values[s.next]
	s.next++
	return v
}

func testTextures(t *testing.T, fail func(key string) bool) Textures {
	t.Helper()
	rs := resource.NewResourceSet(resource.WithLoader(resource.LoaderFunc(func(key string) (common.TextureStagingData, error) {
		if fail != nil && fail(key) {
			return common.TextureStagingData{}, errors.New("not found")
		}
		return common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}, nil
	})))
	t.Cleanup(rs.Close)
	tex := RequestTextures(rs, "textures")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, rs.Wait(ctx))
	return tex
}

func TestGraveFieldFromScriptedSource(t *testing.T) {
	// angle, radius, rotZ, rotY for the first two graves
	rnd := &scripted{values: []float64{
		0.1 / (2 * math.Pi), 0.25, 0.0, 1.0,
		4.2 / (2 * math.Pi), 0.5, 0.5, 0.5,
	}}
	graves := GenerateGraves(rnd, geometry.NewBox(0.6, 0.8, 0.2), material.NewMaterial())
	require.Len(t, graves, GraveCount)

	r0 := 3 + 0.25*6
	p := graves[0].Position()
	assert.InDelta(t, math.Cos(0.1)*r0, p[0], 1e-6)
	assert.InDelta(t, 0.3, p[1], 1e-6)
	assert.InDelta(t, math.Sin(0.1)*r0, p[2], 1e-6)
	rot := graves[0].Rotation()
	assert.InDelta(t, -0.2, rot[2], 1e-9)
	assert.InDelta(t, 0.2, rot[1], 1e-9)
	assert.Zero(t, rot[0])

	p = graves[1].Position()
	assert.InDelta(t, math.Cos(4.2)*6, p[0], 1e-6)
	assert.InDelta(t, math.Sin(4.2)*6, p[2], 1e-6)
}

func TestGraveFieldBounds(t *testing.T) {
	geom := geometry.NewBox(0.6, 0.8, 0.2)
	mat := material.NewMaterial()
	for _, seed := range []float64{0, 0.999999999999} {
		graves := GenerateGraves(&scripted{values: repeat(seed, 4*GraveCount)}, geom, mat)
		for _, g := range graves {
			p := g.Position()
			r := math.Hypot(p[0], p[2])
			assert.GreaterOrEqual(t, r, GraveMinRadius-1e-9)
			assert.Less(t, r, GraveMaxRadius)
			assert.Equal(t, GraveHeight, p[1])
			assert.Same(t, geom, g.Geometry())
			assert.Same(t, mat, g.Material())
			assert.True(t, g.CastsShadow())
		}
	}
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestBuildLayout(t *testing.T) {
	rig := light.NewRig()
	tab, err := Build(testTextures(t, nil), WithSeed(7), WithLights(rig.Lights()...))
	require.NoError(t, err)

	assert.Len(t, tab.Graves.Children(), GraveCount)
	assert.Len(t, tab.Bushes, 4)
	assert.Len(t, tab.Lights, len(rig.Lights()))
	assert.Equal(t, 1+1+3+4+1+GraveCount+1+len(rig.Lights()), tab.Graph.Len())

	assert.Equal(t, 1.25, tab.Walls.Position()[1])
	assert.Equal(t, 3.0, tab.Roof.Position()[1])
	assert.InDelta(t, math.Pi/4, tab.Roof.Rotation()[1], 1e-12)
	assert.Equal(t, 2.01, tab.Door.Position()[2])
	assert.InDelta(t, -math.Pi/2, tab.Floor.Rotation()[0], 1e-12)
	assert.True(t, tab.Floor.ReceivesShadow())
	assert.Equal(t, material.SideFront, tab.Floor.Material().ShadowSide())
	assert.True(t, tab.Door.Material().Transparent())
	assert.Equal(t, float32(0.1), tab.Door.Material().DisplacementScale())

	assert.Equal(t, 0.15, tab.Bushes[3].Scale()[0])
	assert.Equal(t, 2.6, tab.Bushes[3].Position()[2])
	assert.Same(t, tab.Bushes[0].Geometry(), tab.Bushes[3].Geometry())
	assert.Same(t, tab.Bushes[0].Material(), tab.Bushes[3].Material())

	require.NotNil(t, tab.Graph.Fog())
	assert.Equal(t, float32(FogFar), tab.Graph.Fog().Far)
	assert.Equal(t, tab.Graph.Fog().Color, tab.Graph.Background())

	ghost := tab.LightNode(rig.Ghost(0))
	require.NotNil(t, ghost)
	rig.Update(0)
	assert.InDelta(t, 4, ghost.Position()[0], 1e-6)
}

func TestBuildIsDeterministicForSeed(t *testing.T) {
	tex := testTextures(t, nil)
	a, err := Build(tex, WithSeed(42))
	require.NoError(t, err)
	b, err := Build(tex, WithSeed(42))
	require.NoError(t, err)
	assert.Equal(t, int64(42), a.Seed)
	for i, g := range a.Graves.Children() {
		assert.Equal(t, g.Position(), b.Graves.Children()[i].Position())
	}
}

func TestDefaultBuildsPickFreshLayouts(t *testing.T) {
	tex := testTextures(t, nil)
	a, err := Build(tex)
	require.NoError(t, err)
	b, err := Build(tex)
	require.NoError(t, err)

	require.NotZero(t, a.Seed)
	require.NotZero(t, b.Seed)
	assert.NotEqual(t, a.Seed, b.Seed)
	assert.NotEqual(t, a.Graves.Children()[0].Position(), b.Graves.Children()[0].Position())

	// the reported seed reproduces the layout
	c, err := Build(tex, WithSeed(a.Seed))
	require.NoError(t, err)
	for i, g := range a.Graves.Children() {
		assert.Equal(t, g.Position(), c.Graves.Children()[i].Position())
	}
}

func TestAmbientOcclusionSurfacesHaveSecondaryUVs(t *testing.T) {
	tab, err := Build(testTextures(t, nil))
	require.NoError(t, err)
	require.NoError(t, tab.CheckAmbientOcclusionUVs())

	for _, n := range []*scene.Node{tab.Walls, tab.Door, tab.Floor} {
		require.True(t, n.Material().UsesAmbientOcclusion(), n.Name())
		assert.Len(t, n.Geometry().UV2(), len(n.Geometry().UVs()), n.Name())
	}
	assert.False(t, tab.Roof.Geometry().HasUV2())
}

func TestCheckAmbientOcclusionUVsReportsViolations(t *testing.T) {
	tab, err := Build(testTextures(t, nil))
	require.NoError(t, err)

	h := tab.Walls.Material().Handle(material.ChannelAmbientOcclusion)
	tab.Roof.Material().Bind(material.ChannelAmbientOcclusion, h)
	err = tab.CheckAmbientOcclusionUVs()
	assert.ErrorIs(t, err, ErrMissingSecondaryUV)
	assert.Contains(t, err.Error(), "roof")
}

func TestFailedTexturesLeaveChannelsUnbound(t *testing.T) {
	tex := testTextures(t, func(key string) bool { return strings.HasPrefix(key, "textures/door/") })
	tab, err := Build(tex)
	require.NoError(t, err)

	door := tab.Door.Material()
	assert.False(t, door.Bound(material.ChannelColor))
	assert.Nil(t, door.Texture(material.ChannelColor))
	assert.True(t, tab.Walls.Material().Bound(material.ChannelColor))
	assert.NotNil(t, tab.Walls.Material().Texture(material.ChannelColor))
}

func TestGrassTexturesRepeat(t *testing.T) {
	tex := testTextures(t, nil)
	for c, h := range tex.Grass {
		assert.Equal(t, [2]float32{GrassRepeat, GrassRepeat}, h.Sampler().Repeat, c.String())
	}
	assert.Equal(t, [2]float32{1, 1}, tex.Door[material.ChannelColor].Sampler().Repeat)
	assert.Len(t, tex.Door, 7)
	assert.Len(t, tex.Bricks, 4)
	assert.Equal(t, "textures/door/height.jpg", tex.Door[material.ChannelDisplacement].Key())
}
