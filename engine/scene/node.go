package scene

import (
	"sync/atomic"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	dvec3 "github.com/flywave/go3d/float64/vec3"
)

// nodeCount is an atomic counter used to give every node a unique identity.
var nodeCount atomic.Uint64

// Node is an element of the scene tree: a local transform, optional drawable content
// (geometry and material) or an attached light, and an ordered list of children.
// A node has at most one parent; the Graph owns the root.
type Node struct {
	id   uint64
	name string

	position dvec3.T
	rotation dvec3.T // Euler angles in radians, XYZ order
	scale    dvec3.T

	geometry       geometry.Geometry
	material       material.Material
	light          light.Light
	castsShadow    bool
	receivesShadow bool

	parent   *Node
	children []*Node
	graph    *Graph
}

// NewNode creates a detached node with an identity transform.
//
// Parameters:
//   - name: a human-readable label, not required to be unique
//   - options: functional options to configure the node
//
// Returns:
//   - *Node: the new node
func NewNode(name string, options ...NodeOption) *Node {
	n := &Node{
		id:    nodeCount.Add(1),
		name:  name,
		scale: dvec3.T{1, 1, 1},
	}
	for _, opt := range options {
		opt(n)
	}
	return n
}

// ID returns the node's unique identity.
func (n *Node) ID() uint64 { return n.id }

// Name returns the node's label.
func (n *Node) Name() string { return n.name }

// Parent returns the parent node, or nil for roots and detached nodes.
func (n *Node) Parent() *Node { return n.parent }

// Children returns the ordered children. The slice must not be modified.
func (n *Node) Children() []*Node { return n.children }

// Graph returns the graph the node is attached to, or nil.
func (n *Node) Graph() *Graph { return n.graph }

// Geometry returns the node's geometry, or nil for groups and lights.
func (n *Node) Geometry() geometry.Geometry { return n.geometry }

// Material returns the node's material, or nil.
func (n *Node) Material() material.Material { return n.material }

// Light returns the attached light, or nil.
func (n *Node) Light() light.Light { return n.light }

// Drawable reports whether the node carries both geometry and material.
func (n *Node) Drawable() bool { return n.geometry != nil && n.material != nil }

// CastsShadow reports whether the node's geometry is rendered into shadow maps.
func (n *Node) CastsShadow() bool { return n.castsShadow }

// ReceivesShadow reports whether shadows are applied to the node's surface.
func (n *Node) ReceivesShadow() bool { return n.receivesShadow }

// Position returns the local translation. Nodes carrying a light report the light's position.
func (n *Node) Position() dvec3.T {
	if n.light != nil {
		p := n.light.Position()
		return dvec3.T{float64(p[0]), float64(p[1]), float64(p[2])}
	}
	return n.position
}

// Rotation returns the local Euler rotation in radians.
func (n *Node) Rotation() dvec3.T { return n.rotation }

// Scale returns the local scale.
func (n *Node) Scale() dvec3.T { return n.scale }

// SetPosition sets the local translation.
func (n *Node) SetPosition(x, y, z float64) {
	n.position = dvec3.T{x, y, z}
}

// SetRotation sets the local Euler rotation in radians.
func (n *Node) SetRotation(x, y, z float64) {
	n.rotation = dvec3.T{x, y, z}
}

// SetScale sets the local scale.
func (n *Node) SetScale(x, y, z float64) {
	n.scale = dvec3.T{x, y, z}
}

// LocalMatrix returns the column-major local transform.
func (n *Node) LocalMatrix() [16]float32 {
	var m [16]float32
	p, r, s := n.Position(), n.rotation, n.scale
	common.BuildModelMatrix(m[:], p[0], p[1], p[2], r[0], r[1], r[2], s[0], s[1], s[2])
	return m
}

// WorldMatrix composes the local transforms from the root down to this node.
func (n *Node) WorldMatrix() [16]float32 {
	m := n.LocalMatrix()
	for p := n.parent; p != nil; p = p.parent {
		pm := p.LocalMatrix()
		common.Mul4(m[:], pm[:], m[:])
	}
	return m
}

// Add appends children to a detached node while a subtree is being assembled. Once the
// node is attached to a graph, use Graph.AddChild instead so the graph can track the change.
//
// Children are attached only if every one of them is valid.
//
// Returns:
//   - error: wraps ErrInvalidParent if n is attached, a child already has a parent, a
//     child is an ancestor of n, or a child is listed twice
func (n *Node) Add(children ...*Node) error {
	if n.graph != nil {
		return invalidParent("node %q is attached to a graph; use Graph.AddChild", n.name)
	}
	seen := make(map[*Node]bool, len(children))
	for _, c := range children {
		if err := n.checkChild(c); err != nil {
			return err
		}
		if seen[c] {
			return invalidParent("node %q is listed twice", c.name)
		}
		seen[c] = true
	}
	for _, c := range children {
		c.parent = n
		n.children = append(n.children, c)
	}
	return nil
}

func (n *Node) checkChild(c *Node) error {
	switch {
	case c == nil:
		return invalidParent("nil child")
	case c == n:
		return invalidParent("node %q cannot parent itself", n.name)
	case c.parent != nil:
		return invalidParent("node %q already has parent %q", c.name, c.parent.name)
	case c.graph != nil:
		return invalidParent("node %q already belongs to a graph", c.name)
	}
	for a := n; a != nil; a = a.parent {
		if a == c {
			return invalidParent("attaching %q under %q would create a cycle", c.name, n.name)
		}
	}
	return nil
}
