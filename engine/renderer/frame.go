package renderer

import (
	"sort"

	"github.com/Carmen-Shannon/haunted-house/engine/camera"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
)

// DrawItem is one drawable node flattened for a frame.
type DrawItem struct {
	Node     *scene.Node
	Geometry geometry.Geometry
	Material material.Material
	World    [16]float32
	// Depth is the squared distance from the camera to the node origin.
	Depth float32
}

// Frame is everything a backend needs to draw one image.
type Frame struct {
	Number uint64
	// Width and Height are physical pixels.
	Width  int
	Height int

	Background     [3]float32
	Fog            *scene.Fog
	ViewProjection [16]float32
	CameraPosition [3]float32

	// Items lists opaque items in scene order followed by transparent items back to front.
	Items  []DrawItem
	Lights []light.Light

	// Rebuilt is true when the draw list was re-derived from the graph for this frame.
	Rebuilt bool
}

// drawList caches the drawable and light nodes of a graph. It is re-derived only when the
// graph's structural version changes; transforms and lights are sampled every frame.
type drawList struct {
	graph     *scene.Graph
	version   uint64
	drawables []*scene.Node
	lights    []light.Light
}

func (d *drawList) refresh(g *scene.Graph) bool {
	v := g.Version()
	if d.graph == g && d.version == v {
		return false
	}
	d.graph, d.version = g, v
	d.drawables = d.drawables[:0]
	d.lights = d.lights[:0]
	for n := range g.Traverse(nil) {
		if n.Drawable() {
			d.drawables = append(d.drawables, n)
		}
		if l := n.Light(); l != nil {
			d.lights = append(d.lights, l)
		}
	}
	return true
}

func (d *drawList) frame(cam camera.Camera) *Frame {
	f := &Frame{
		Background:     d.graph.Background(),
		Fog:            d.graph.Fog(),
		ViewProjection: cam.ViewProjectionMatrix(),
	}
	cx, cy, cz := cam.Position()
	f.CameraPosition = [3]float32{cx, cy, cz}

	var transparent []DrawItem
	for _, n := range d.drawables {
		item := DrawItem{
			Node:     n,
			Geometry: n.Geometry(),
			Material: n.Material(),
			World:    n.WorldMatrix(),
		}
		dx, dy, dz := item.World[12]-cx, item.World[13]-cy, item.World[14]-cz
		item.Depth = dx*dx + dy*dy + dz*dz
		if item.Material.Transparent() {
			transparent = append(transparent, item)
			continue
		}
		f.Items = append(f.Items, item)
	}
	sort.SliceStable(transparent, func(i, j int) bool {
		return transparent[i].Depth > transparent[j].Depth
	})
	f.Items = append(f.Items, transparent...)

	for _, l := range d.lights {
		if l.Enabled() {
			f.Lights = append(f.Lights, l)
		}
	}
	return f
}
