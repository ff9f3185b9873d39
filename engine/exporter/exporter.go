// Package exporter writes a snapshot of a scene graph as glTF 2.0.
package exporter

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
	"github.com/qmuntal/gltf"
)

// Generator is written to the asset block of exported documents.
const Generator = "haunted-house"

// ErrEmptyGraph is returned when there is nothing to export.
var ErrEmptyGraph = errors.New("exporter: graph is nil")

// builder accumulates one document. Meshes and materials are keyed by identity so shared
// geometry and materials are written once.
type builder struct {
	doc       *gltf.Document
	data      *bytes.Buffer
	meshes    map[geometry.Geometry]uint32
	materials map[material.Material]uint32
}

// Export converts the graph into a glTF document with one node per scene node. The
// binary payload is held in the document's single buffer.
//
// Parameters:
//   - g: the graph to export
//
// Returns:
//   - *gltf.Document: the document
//   - error: an error if the graph is nil or a buffer could not be written
func Export(g *scene.Graph) (*gltf.Document, error) {
	if g == nil {
		return nil, ErrEmptyGraph
	}
	b := &builder{
		doc: &gltf.Document{
			Asset:   gltf.Asset{Version: "2.0", Generator: Generator},
			Buffers: []*gltf.Buffer{{}},
		},
		data:      &bytes.Buffer{},
		meshes:    make(map[geometry.Geometry]uint32),
		materials: make(map[material.Material]uint32),
	}

	index := make(map[*scene.Node]uint32, g.Len()+1)
	for n := range g.Traverse(nil) {
		index[n] = uint32(len(b.doc.Nodes))
		node, err := b.node(n)
		if err != nil {
			return nil, fmt.Errorf("node %q: %w", n.Name(), err)
		}
		b.doc.Nodes = append(b.doc.Nodes, node)
	}
	for n, i := range index {
		for _, c := range n.Children() {
			b.doc.Nodes[i].Children = append(b.doc.Nodes[i].Children, index[c])
		}
	}

	var root uint32
	b.doc.Scenes = []*gltf.Scene{{Name: "scene", Nodes: []uint32{index[g.Root()]}}}
	b.doc.Scene = &root
	b.doc.Buffers[0].Data = b.data.Bytes()
	b.doc.Buffers[0].ByteLength = uint32(b.data.Len())
	return b.doc, nil
}

// WriteGLB exports the graph and encodes it as binary glTF.
//
// Parameters:
//   - w: destination
//   - g: the graph to export
//
// Returns:
//   - error: an export or encoding error
func WriteGLB(w io.Writer, g *scene.Graph) error {
	doc, err := Export(g)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode glb: %w", err)
	}
	return nil
}

func (b *builder) node(n *scene.Node) (*gltf.Node, error) {
	p, r, s := n.Position(), n.Rotation(), n.Scale()
	node := &gltf.Node{
		Name:        n.Name(),
		Translation: [3]float32{float32(p[0]), float32(p[1]), float32(p[2])},
		Rotation:    common.EulerToQuaternion(r[0], r[1], r[2]),
		Scale:       [3]float32{float32(s[0]), float32(s[1]), float32(s[2])},
	}
	if !n.Drawable() {
		return node, nil
	}
	mesh, err := b.mesh(n.Geometry(), n.Material())
	if err != nil {
		return nil, err
	}
	node.Mesh = &mesh
	return node, nil
}

// mesh returns the index of the glTF mesh for g, writing it on first use. A geometry is
// exported with the material of the first node that draws it.
func (b *builder) mesh(g geometry.Geometry, m material.Material) (uint32, error) {
	if i, ok := b.meshes[g]; ok {
		return i, nil
	}

	attributes := gltf.Attribute{}
	lo, hi := g.Bounds()
	pos, err := b.accessor(g.Positions(), len(g.Positions()), gltf.AccessorVec3, gltf.TargetArrayBuffer)
	if err != nil {
		return 0, err
	}
	b.doc.Accessors[pos].Min = lo[:]
	b.doc.Accessors[pos].Max = hi[:]
	attributes["POSITION"] = pos

	if attributes["NORMAL"], err = b.accessor(g.Normals(), len(g.Normals()), gltf.AccessorVec3, gltf.TargetArrayBuffer); err != nil {
		return 0, err
	}
	if attributes["TEXCOORD_0"], err = b.accessor(g.UVs(), len(g.UVs()), gltf.AccessorVec2, gltf.TargetArrayBuffer); err != nil {
		return 0, err
	}
	if g.HasUV2() {
		if attributes["TEXCOORD_1"], err = b.accessor(g.UV2(), len(g.UV2()), gltf.AccessorVec2, gltf.TargetArrayBuffer); err != nil {
			return 0, err
		}
	}
	indices, err := b.accessor(g.Indices(), len(g.Indices()), gltf.AccessorScalar, gltf.TargetElementArrayBuffer)
	if err != nil {
		return 0, err
	}
	b.doc.Accessors[indices].ComponentType = gltf.ComponentUint

	mat := b.material(m)
	i := uint32(len(b.doc.Meshes))
	b.doc.Meshes = append(b.doc.Meshes, &gltf.Mesh{
		Name: g.Descriptor().Shape.String(),
		Primitives: []*gltf.Primitive{{
			Attributes: attributes,
			Indices:    &indices,
			Material:   &mat,
			Mode:       gltf.PrimitiveTriangles,
		}},
	})
	b.meshes[g] = i
	return i, nil
}

// accessor appends data to the buffer behind a new buffer view and returns the accessor
// index. Every element type used here is 4-byte aligned.
func (b *builder) accessor(data any, count int, typ gltf.AccessorType, target gltf.Target) (uint32, error) {
	offset := b.data.Len()
	if err := binary.Write(b.data, binary.LittleEndian, data); err != nil {
		return 0, err
	}
	view := uint32(len(b.doc.BufferViews))
	b.doc.BufferViews = append(b.doc.BufferViews, &gltf.BufferView{
		Buffer:     0,
		ByteOffset: uint32(offset),
		ByteLength: uint32(b.data.Len() - offset),
		Target:     target,
	})
	i := uint32(len(b.doc.Accessors))
	b.doc.Accessors = append(b.doc.Accessors, &gltf.Accessor{
		BufferView:    &view,
		ComponentType: gltf.ComponentFloat,
		Count:         uint32(count),
		Type:          typ,
	})
	return i, nil
}

func (b *builder) material(m material.Material) uint32 {
	if i, ok := b.materials[m]; ok {
		return i
	}
	color := m.BaseColor()
	metal, rough := m.Metalness(), m.Roughness()
	gm := &gltf.Material{
		Name: m.Name(),
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: &color,
			MetallicFactor:  &metal,
			RoughnessFactor: &rough,
		},
		DoubleSided: m.Side() == material.SideDouble,
		AlphaMode:   gltf.AlphaOpaque,
	}
	if m.Transparent() {
		gm.AlphaMode = gltf.AlphaBlend
	}
	i := uint32(len(b.doc.Materials))
	b.doc.Materials = append(b.doc.Materials, gm)
	b.materials[m] = i
	return i
}
