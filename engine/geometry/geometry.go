// Package geometry generates indexed triangle meshes for the primitive shapes used by the
// scene: boxes, cones, spheres and planes. Vertex layouts follow the common
// WebGL-style conventions (counter-clockwise faces, +Y up, UV origin bottom-left).
package geometry

import (
	"fmt"
	"sync"

	"github.com/flywave/go3d/vec2"
	"github.com/flywave/go3d/vec3"
)

// Shape identifies the primitive a Geometry was generated from.
type Shape int

const (
	ShapeBox Shape = iota
	ShapeCone
	ShapeSphere
	ShapePlane
)

func (s Shape) String() string {
	switch s {
	case ShapeBox:
		return "box"
	case ShapeCone:
		return "cone"
	case ShapeSphere:
		return "sphere"
	case ShapePlane:
		return "plane"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// Descriptor holds the dimensions a Geometry was generated with. Fields that do not apply
// to a shape are zero.
type Descriptor struct {
	Shape          Shape
	Width          float32
	Height         float32
	Depth          float32
	Radius         float32
	WidthSegments  int
	HeightSegments int
	DepthSegments  int
	RadialSegments int
}

type geometryImpl struct {
	mu *sync.Mutex

	descriptor Descriptor
	positions  []vec3.T
	normals    []vec3.T
	uvs        []vec2.T
	uv2        []vec2.T
	indices    []uint32
}

// Geometry is an immutable indexed mesh plus an optional secondary UV channel.
// A Geometry may be shared by many scene nodes.
type Geometry interface {
	// Descriptor returns the shape parameters.
	Descriptor() Descriptor

	// Positions returns the vertex positions.
	Positions() []vec3.T

	// Normals returns one unit normal per vertex.
	Normals() []vec3.T

	// UVs returns the primary texture coordinates, one per vertex.
	UVs() []vec2.T

	// UV2 returns the secondary texture coordinates, or nil if none were derived.
	// When present it has exactly as many entries as UVs.
	UV2() []vec2.T

	// HasUV2 reports whether a secondary UV channel is present.
	HasUV2() bool

	// EnsureUV2 derives the secondary UV channel from the primary one if it is not
	// already present. Ambient-occlusion maps sample this channel.
	EnsureUV2()

	// Indices returns triangle vertex indices, three per face.
	Indices() []uint32

	// VertexCount returns the number of vertices.
	VertexCount() int

	// Bounds returns the axis-aligned bounding box of the positions.
	Bounds() (minimum, maximum vec3.T)
}

var _ Geometry = &geometryImpl{}

func newGeometry(d Descriptor, b *builder) *geometryImpl {
	return &geometryImpl{
		mu:         &sync.Mutex{},
		descriptor: d,
		positions:  b.positions,
		normals:    b.normals,
		uvs:        b.uvs,
		indices:    b.indices,
	}
}

func (g *geometryImpl) Descriptor() Descriptor {
	return g.descriptor
}

func (g *geometryImpl) Positions() []vec3.T {
	return g.positions
}

func (g *geometryImpl) Normals() []vec3.T {
	return g.normals
}

func (g *geometryImpl) UVs() []vec2.T {
	return g.uvs
}

func (g *geometryImpl) UV2() []vec2.T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.uv2
}

func (g *geometryImpl) HasUV2() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.uv2 != nil && len(g.uv2) == len(g.uvs)
}

func (g *geometryImpl) EnsureUV2() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.uv2 != nil && len(g.uv2) == len(g.uvs) {
		return
	}
	g.uv2 = make([]vec2.T, len(g.uvs))
	copy(g.uv2, g.uvs)
}

func (g *geometryImpl) Indices() []uint32 {
	return g.indices
}

func (g *geometryImpl) VertexCount() int {
	return len(g.positions)
}

func (g *geometryImpl) Bounds() (minimum, maximum vec3.T) {
	if len(g.positions) == 0 {
		return
	}
	minimum, maximum = g.positions[0], g.positions[0]
	for _, p := range g.positions[1:] {
		for i := range 3 {
			minimum[i] = min(minimum[i], p[i])
			maximum[i] = max(maximum[i], p[i])
		}
	}
	return
}

// builder accumulates vertex attributes while a shape is generated.
type builder struct {
	positions []vec3.T
	normals   []vec3.T
	uvs       []vec2.T
	indices   []uint32
}

func (b *builder) vertex(p, n vec3.T, uv vec2.T) {
	b.positions = append(b.positions, p)
	b.normals = append(b.normals, n)
	b.uvs = append(b.uvs, uv)
}

func (b *builder) quad(a, bb, c, d uint32) {
	b.indices = append(b.indices, a, bb, d, bb, c, d)
}

func (b *builder) count() uint32 {
	return uint32(len(b.positions))
}
