package renderer

import (
	"context"
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/Carmen-Shannon/haunted-house/engine/resource"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/Carmen-Shannon/haunted-house/engine/viewport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHeadless(t *testing.T, options ...RendererBuilderOption) (Renderer, *headlessRendererBackend) {
	t.Helper()
	r, err := NewRenderer(BackendTypeHeadless, nil, options...)
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r, r.(*renderer).backend.(*headlessRendererBackend)
}

func testCamera() camera.Camera {
	return camera.NewRig(viewport.State{Width: 800, Height: 600, PixelRatio: 1}).Camera()
}

func TestWGPUBackendRequiresSurface(t *testing.T) {
	_, err := NewRenderer(BackendTypeWGPU, nil)
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestOutputSizeIsRoundedPhysical(t *testing.T) {
	r, backend := newHeadless(t, WithOutputSize(800, 600, 1))
	w, h := r.OutputSize()
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, h)

	r.SetOutputSize(801, 601, 1.5)
	w, h = r.OutputSize()
	assert.Equal(t, 1202, w)
	assert.Equal(t, 902, h)
	assert.Equal(t, 1202, backend.width)
	assert.Equal(t, 902, backend.height)

	r.SetOutputSize(0, 0, 2)
	w, h = r.OutputSize()
	assert.Equal(t, 1, w)
	assert.Equal(t, 1, h)
}

func TestDrawListRebuildsOnlyOnStructuralChange(t *testing.T) {
	r, backend := newHeadless(t)
	g := scene.NewGraph()
	cam := testCamera()
	box := geometry.NewBox(1, 1, 1)
	mat := material.NewMaterial()

	n := scene.NewNode("a", scene.WithMesh(box, mat))
	require.NoError(t, g.AddChild(g.Root(), n))

	require.NoError(t, r.Render(g, cam))
	assert.True(t, backend.last.Rebuilt)
	n.SetPosition(3, 0, 0)
	require.NoError(t, r.Render(g, cam))
	assert.False(t, backend.last.Rebuilt)
	assert.Equal(t, float32(3), backend.last.Items[0].World[12])
	assert.Equal(t, uint64(1), r.Stats().Rebuilds)

	require.NoError(t, g.AddChild(g.Root(), scene.NewNode("b", scene.WithMesh(box, mat))))
	require.NoError(t, r.Render(g, cam))
	assert.True(t, backend.last.Rebuilt)

	stats := r.Stats()
	assert.Equal(t, uint64(3), stats.Frames)
	assert.Equal(t, uint64(2), stats.Rebuilds)
	assert.Equal(t, 2, stats.Draws)
	assert.Equal(t, uint64(3), r.Frames())
	assert.Equal(t, uint64(4), backend.draws)
}

func TestTransparentItemsDrawBackToFront(t *testing.T) {
	r, backend := newHeadless(t)
	g := scene.NewGraph()
	box := geometry.NewBox(1, 1, 1)
	glass := material.NewMaterial(material.WithTransparent(true))

	// The test camera sits at (4, 2, 5).
	near := scene.NewNode("near", scene.WithMesh(box, glass), scene.WithPosition(4, 2, 3))
	far := scene.NewNode("far", scene.WithMesh(box, glass), scene.WithPosition(-4, 0, -6))
	solid := scene.NewNode("solid", scene.WithMesh(box, material.NewMaterial()))
	require.NoError(t, g.AddChild(g.Root(), near))
	require.NoError(t, g.AddChild(g.Root(), solid))
	require.NoError(t, g.AddChild(g.Root(), far))

	require.NoError(t, r.Render(g, testCamera()))
	items := backend.last.Items
	require.Len(t, items, 3)
	assert.Same(t, solid, items[0].Node)
	assert.Same(t, far, items[1].Node)
	assert.Same(t, near, items[2].Node)
}

func TestFrameCarriesEnabledLightsAndFog(t *testing.T) {
	r, backend := newHeadless(t)
	fog := scene.Fog{Color: [3]float32{0.1, 0.2, 0.3}, Near: 1, Far: 15}
	g := scene.NewGraph(scene.WithFog(fog), scene.WithBackground(fog.Color))

	on := light.NewLight(light.LightTypePoint, light.WithName("on"))
	off := light.NewLight(light.LightTypePoint, light.WithName("off"), light.WithEnabled(false))
	require.NoError(t, g.AddChild(g.Root(), scene.NewNode("on", scene.WithLight(on))))
	require.NoError(t, g.AddChild(g.Root(), scene.NewNode("off", scene.WithLight(off))))

	require.NoError(t, r.Render(g, testCamera()))
	f := backend.last
	require.Len(t, f.Lights, 1)
	assert.Same(t, on, f.Lights[0])
	require.NotNil(t, f.Fog)
	assert.Equal(t, fog, *f.Fog)
	assert.Equal(t, fog.Color, f.Background)
	assert.Empty(t, f.Items)
	assert.Equal(t, 1, r.Stats().Lights)
}

func TestStatsCountReadyTexturesOncePerMaterial(t *testing.T) {
	rs := resource.NewResourceSet(resource.WithLoader(resource.LoaderFunc(func(key string) (common.TextureStagingData, error) {
		if key == "bad.jpg" {
			return common.TextureStagingData{}, errors.New("missing")
		}
		return common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}, nil
	})))
	defer rs.Close()

	mat := material.NewMaterial(
		material.WithTexture(material.ChannelColor, rs.Load("color.jpg")),
		material.WithTexture(material.ChannelRoughness, rs.Load("bad.jpg")),
	)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, rs.Wait(ctx))

	r, _ := newHeadless(t)
	g := scene.NewGraph()
	box := geometry.NewBox(1, 1, 1)
	for _, name := range []string{"a", "b"} {
		require.NoError(t, g.AddChild(g.Root(), scene.NewNode(name, scene.WithMesh(box, mat))))
	}
	require.NoError(t, r.Render(g, testCamera()))
	assert.Equal(t, 1, r.Stats().Textures)
}

func TestMarshalSizes(t *testing.T) {
	box := geometry.NewBox(1, 1, 1)
	assert.Len(t, marshalVertices(box), box.VertexCount()*gpuVertexSize)
	assert.Len(t, marshalIndices(box), len(box.Indices())*4)
	assert.Len(t, marshalMaterialUniforms(material.NewMaterial(), [2]float32{1, 1}), materialUniformSize)
	assert.Len(t, marshalObjectUniforms([16]float32{}), objectUniformSize)
}

func TestObjectUniformsCarryNormalMatrix(t *testing.T) {
	var world [16]float32
	common.Identity(world[:])
	world[0] = 2
	world[12] = 5

	buf := marshalObjectUniforms(world)
	at := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	assert.Equal(t, float32(5), at(12))
	assert.InDelta(t, 0.5, at(16+0), 1e-6)
	assert.InDelta(t, 1, at(16+5), 1e-6)
	// translation moves to the bottom row of the inverse transpose and is ignored for w=0
	assert.InDelta(t, 0, at(16+12), 1e-6)
}

func TestFrameUniformsCapPointLights(t *testing.T) {
	f := &Frame{}
	for range MaxPointLights + 3 {
		f.Lights = append(f.Lights, light.NewLight(light.LightTypePoint))
	}
	f.Lights = append(f.Lights, light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.5)))

	data := marshalFrameUniforms(f)
	require.Len(t, data, frameUniformSize)
	assert.Equal(t, uint32(MaxPointLights), binary.LittleEndian.Uint32(data[frameUniformSize-16:]))
}

func TestMaterialUniformsHoldDisplacementUntilReady(t *testing.T) {
	block := make(chan struct{})
	pending := resource.NewResourceSet(resource.WithLoader(resource.LoaderFunc(func(string) (common.TextureStagingData, error) {
		<-block
		return common.TextureStagingData{}, nil
	})))
	defer pending.Close()
	defer close(block)

	m := material.NewMaterial(
		material.WithDisplacementScale(0.1),
		material.WithTexture(material.ChannelDisplacement, pending.Load("door/height.jpg")),
	)
	data := marshalMaterialUniforms(m, [2]float32{1, 1})
	assert.Zero(t, binary.LittleEndian.Uint32(data[24:28]))
}
