package exporter

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGraph(t *testing.T) *scene.Graph {
	t.Helper()
	g := scene.NewGraph()
	box := geometry.NewBox(0.6, 0.8, 0.2)
	stone := material.NewMaterial(material.WithName("grave"))
	floor := geometry.NewPlane(20, 20, 1, 1)
	floor.EnsureUV2()
	grass := material.NewMaterial(material.WithName("grass"), material.WithSide(material.SideDouble))

	graves := scene.NewNode("graves", scene.WithChildren(
		scene.NewNode("grave-00", scene.WithMesh(box, stone), scene.WithPosition(3, 0.3, 0)),
		scene.NewNode("grave-01", scene.WithMesh(box, stone), scene.WithRotation(0, math.Pi/2, 0)),
	))
	require.NoError(t, g.AddChild(g.Root(), graves))
	require.NoError(t, g.AddChild(g.Root(), scene.NewNode("floor", scene.WithMesh(floor, grass))))
	ghost := light.NewLight(light.LightTypePoint, light.WithPosition(4, 0, 0))
	require.NoError(t, g.AddChild(g.Root(), scene.NewNode("ghost", scene.WithLight(ghost))))
	return g
}

func TestExportOneNodePerSceneNode(t *testing.T) {
	g := testGraph(t)
	doc, err := Export(g)
	require.NoError(t, err)

	count := 0
	for range g.Traverse(nil) {
		count++
	}
	assert.Len(t, doc.Nodes, count)
	require.Len(t, doc.Scenes, 1)
	assert.Equal(t, []uint32{0}, doc.Scenes[0].Nodes)
	assert.Len(t, doc.Nodes[0].Children, 3)

	byName := make(map[string]*gltf.Node)
	for _, n := range doc.Nodes {
		byName[n.Name] = n
	}
	assert.Equal(t, [3]float32{3, 0.3, 0}, byName["grave-00"].Translation)
	assert.InDelta(t, math.Sqrt2/2, byName["grave-01"].Rotation[1], 1e-6)
	assert.Equal(t, [3]float32{4, 0, 0}, byName["ghost"].Translation)
	assert.Nil(t, byName["ghost"].Mesh)
	assert.Len(t, byName["graves"].Children, 2)
}

func TestExportDeduplicatesMeshesAndMaterials(t *testing.T) {
	doc, err := Export(testGraph(t))
	require.NoError(t, err)

	assert.Len(t, doc.Meshes, 2)
	assert.Len(t, doc.Materials, 2)
	var graves []uint32
	for _, n := range doc.Nodes {
		if n.Mesh != nil && n.Name != "floor" {
			graves = append(graves, *n.Mesh)
		}
	}
	require.Len(t, graves, 2)
	assert.Equal(t, graves[0], graves[1])

	grass := doc.Materials[1]
	assert.Equal(t, "grass", grass.Name)
	assert.True(t, grass.DoubleSided)
	assert.Equal(t, gltf.AlphaOpaque, grass.AlphaMode)
}

func TestExportSecondaryUVOnlyWhenPresent(t *testing.T) {
	doc, err := Export(testGraph(t))
	require.NoError(t, err)

	for _, m := range doc.Meshes {
		attrs := m.Primitives[0].Attributes
		for _, name := range []string{"POSITION", "NORMAL", "TEXCOORD_0"} {
			assert.Contains(t, attrs, name, m.Name)
		}
		_, hasUV2 := attrs["TEXCOORD_1"]
		assert.Equal(t, m.Name == "plane", hasUV2, m.Name)
	}

	pos := doc.Accessors[doc.Meshes[1].Primitives[0].Attributes["POSITION"]]
	assert.Equal(t, []float32{-10, -10, 0}, pos.Min)
	assert.Equal(t, []float32{10, 10, 0}, pos.Max)
	assert.Equal(t, uint32(len(doc.Buffers[0].Data)), doc.Buffers[0].ByteLength)
}

func TestWriteGLB(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteGLB(&buf, testGraph(t)))
	require.Greater(t, buf.Len(), 12)
	assert.Equal(t, "glTF", buf.String()[:4])
	assert.Equal(t, uint32(2), binary.LittleEndian.Uint32(buf.Bytes()[4:8]))
	assert.Equal(t, uint32(buf.Len()), binary.LittleEndian.Uint32(buf.Bytes()[8:12]))

	assert.ErrorIs(t, WriteGLB(&buf, nil), ErrEmptyGraph)
}
