package geometry

import (
	"testing"

	"github.com/flywave/go3d/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexCounts(t *testing.T) {
	tests := []struct {
		name     string
		geometry Geometry
		vertices int
		indices  int
	}{
		{"walls", NewBox(4, 2.5, 4), 24, 36},
		{"roof", NewCone(3.5, 1, 4), 10 + 4 + 5, 4*3 + 4*3},
		{"bush", NewSphere(1, 16, 16), 17 * 17, (16*16*2 - 2*16) * 3},
		{"floor", NewPlane(20, 20, 1, 1), 4, 6},
		{"door", NewPlane(2.2, 2.2, 100, 100), 101 * 101, 100 * 100 * 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.vertices, tt.geometry.VertexCount())
			assert.Len(t, tt.geometry.Normals(), tt.vertices)
			assert.Len(t, tt.geometry.UVs(), tt.vertices)
			assert.Len(t, tt.geometry.Indices(), tt.indices)
			for _, i := range tt.geometry.Indices() {
				require.Less(t, int(i), tt.vertices)
			}
		})
	}
}

func TestBoxBounds(t *testing.T) {
	minimum, maximum := NewBox(4, 2.5, 4).Bounds()
	assert.Equal(t, vec3.T{-2, -1.25, -2}, minimum)
	assert.Equal(t, vec3.T{2, 1.25, 2}, maximum)
}

func TestConeApexAndBase(t *testing.T) {
	g := NewCone(3.5, 1, 4)
	minimum, maximum := g.Bounds()
	assert.InDelta(t, 0.5, maximum[1], 1e-6)
	assert.InDelta(t, -0.5, minimum[1], 1e-6)
	assert.InDelta(t, 3.5, maximum[2], 1e-6)
	assert.Equal(t, 4, g.Descriptor().RadialSegments)
}

func TestPlaneFacesPositiveZ(t *testing.T) {
	g := NewPlane(2, 2, 1, 1)
	for _, n := range g.Normals() {
		assert.Equal(t, vec3.T{0, 0, 1}, n)
	}
	assert.Equal(t, vec3.T{-1, 1, 0}, g.Positions()[0])
}

func TestSphereNormalsAreUnit(t *testing.T) {
	g := NewSphere(1, 16, 16)
	for _, n := range g.Normals() {
		assert.InDelta(t, 1, n.Length(), 1e-5)
	}
}

func TestEnsureUV2MatchesPrimary(t *testing.T) {
	g := NewPlane(20, 20, 1, 1)
	assert.False(t, g.HasUV2())
	assert.Nil(t, g.UV2())

	g.EnsureUV2()
	require.True(t, g.HasUV2())
	assert.Equal(t, g.UVs(), g.UV2())
	assert.Len(t, g.UV2(), len(g.UVs()))

	// Idempotent.
	uv2 := g.UV2()
	g.EnsureUV2()
	assert.Same(t, &uv2[0], &g.UV2()[0])
}
