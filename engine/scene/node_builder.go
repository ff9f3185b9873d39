package scene

import (
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
)

// NodeOption is a functional option for configuring a Node.
type NodeOption func(n *Node)

// WithMesh attaches geometry and material. Both may be shared with other nodes.
//
// Parameters:
//   - g: the geometry
//   - m: the material
//
// Returns:
//   - NodeOption: option function to apply
func WithMesh(g geometry.Geometry, m material.Material) NodeOption {
	return func(n *Node) {
		n.geometry = g
		n.material = m
	}
}

// WithLight attaches a light. The node's position mirrors the light's position.
func WithLight(l light.Light) NodeOption {
	return func(n *Node) {
		n.light = l
	}
}

// WithPosition sets the local translation.
func WithPosition(x, y, z float64) NodeOption {
	return func(n *Node) {
		n.SetPosition(x, y, z)
	}
}

// WithRotation sets the local Euler rotation in radians.
func WithRotation(x, y, z float64) NodeOption {
	return func(n *Node) {
		n.SetRotation(x, y, z)
	}
}

// WithScale sets a uniform local scale.
func WithScale(s float64) NodeOption {
	return func(n *Node) {
		n.SetScale(s, s, s)
	}
}

// WithCastShadow marks the node as a shadow caster.
func WithCastShadow(cast bool) NodeOption {
	return func(n *Node) {
		n.castsShadow = cast
	}
}

// WithReceiveShadow marks the node as a shadow receiver.
func WithReceiveShadow(receive bool) NodeOption {
	return func(n *Node) {
		n.receivesShadow = receive
	}
}

// WithChildren assembles a detached subtree. Panics if a child is already parented, which
// is a construction bug.
func WithChildren(children ...*Node) NodeOption {
	return func(n *Node) {
		if err := n.Add(children...); err != nil {
			panic(err)
		}
	}
}
