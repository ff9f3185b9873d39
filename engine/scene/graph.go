// Package scene holds the tree of nodes that makes up the rendered tableau, plus scene-wide
// settings such as fog and the background color.
package scene

import (
	"errors"
	"fmt"
	"iter"
	"sync"
)

// ErrInvalidParent is returned when a node cannot be attached: the parent is not in the
// graph, the node is already attached, or the attachment would create a cycle.
var ErrInvalidParent = errors.New("invalid parent")

func invalidParent(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParent, fmt.Sprintf(format, args...))
}

// Fog fades geometry linearly into Color between Near and Far view distances.
type Fog struct {
	Color [3]float32
	Near  float32
	Far   float32
}

// Graph owns the root node and tracks structural changes. Mutation and traversal happen
// on the render thread; the graph is not safe for concurrent structural changes.
type Graph struct {
	mu         *sync.Mutex
	root       *Node
	version    uint64
	size       int
	fog        *Fog
	background [3]float32
}

// NewGraph creates a graph with an empty root group.
//
// Parameters:
//   - options: functional options to configure the graph
//
// Returns:
//   - *Graph: the new graph
func NewGraph(options ...GraphOption) *Graph {
	root := NewNode("root")
	g := &Graph{
		mu:   &sync.Mutex{},
		root: root,
		size: 1,
	}
	root.graph = g
	for _, opt := range options {
		opt(g)
	}
	return g
}

// Root returns the root node.
func (g *Graph) Root() *Node { return g.root }

// Version increases on every structural change. Consumers caching derived data compare
// versions to know when to rebuild.
func (g *Graph) Version() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.version
}

// Len returns the number of nodes in the graph, including the root.
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.size
}

// Fog returns the scene fog, or nil if disabled.
func (g *Graph) Fog() *Fog { return g.fog }

// SetFog enables fog, or disables it when f is nil.
func (g *Graph) SetFog(f *Fog) { g.fog = f }

// Background returns the clear color.
func (g *Graph) Background() [3]float32 { return g.background }

// SetBackground sets the clear color.
func (g *Graph) SetBackground(rgb [3]float32) { g.background = rgb }

// AddChild attaches node, with any subtree already assembled under it, as the last child
// of parent.
//
// Parameters:
//   - parent: a node already in this graph
//   - node: a detached node
//
// Returns:
//   - error: wraps ErrInvalidParent when parent is not in this graph or node cannot be attached
func (g *Graph) AddChild(parent, node *Node) error {
	if parent == nil || parent.graph != g {
		return invalidParent("parent is not part of this graph")
	}
	if node == g.root {
		return invalidParent("the root cannot be re-parented")
	}
	if err := parent.checkChild(node); err != nil {
		return err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	node.parent = parent
	parent.children = append(parent.children, node)
	for n := range walk(node) {
		n.graph = g
		g.size++
	}
	g.version++
	return nil
}

// Remove detaches node and its whole subtree from the graph.
//
// Returns:
//   - error: wraps ErrInvalidParent when node is the root or not in this graph
func (g *Graph) Remove(node *Node) error {
	if node == nil || node.graph != g {
		return invalidParent("node is not part of this graph")
	}
	if node == g.root {
		return invalidParent("the root cannot be removed")
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	p := node.parent
	for i, c := range p.children {
		if c == node {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	node.parent = nil
	for n := range walk(node) {
		n.graph = nil
		g.size--
	}
	g.version++
	return nil
}

// Traverse yields root and every descendant in depth-first pre-order. The sequence is lazy
// and can be restarted; breaking out of a range loop stops the walk.
func (g *Graph) Traverse(root *Node) iter.Seq[*Node] {
	if root == nil {
		root = g.root
	}
	return walk(root)
}

// Walk visits nodes like Traverse until visit returns false.
func (g *Graph) Walk(root *Node, visit func(*Node) bool) {
	for n := range g.Traverse(root) {
		if !visit(n) {
			return
		}
	}
}

// Find returns the first node in pre-order with the given name, or nil.
func (g *Graph) Find(name string) *Node {
	for n := range g.Traverse(nil) {
		if n.name == name {
			return n
		}
	}
	return nil
}

func walk(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		stack := []*Node{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(n) {
				return
			}
			for i := len(n.children) - 1; i >= 0; i-- {
				stack = append(stack, n.children[i])
			}
		}
	}
}
