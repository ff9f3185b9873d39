// Package house assembles the haunted-house tableau: the house itself, its bushes, a
// randomized field of graves, the floor and one node per light.
package house

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
)

// ErrMissingSecondaryUV is reported for a surface whose material binds an
// ambient-occlusion texture but whose geometry has no matching secondary UV channel.
var ErrMissingSecondaryUV = errors.New("ambient occlusion without secondary uv")

const (
	// FogColor is used for both the fog and the clear color so the horizon disappears.
	FogColor = "#262837"
	FogNear  = 1
	FogFar   = 15
)

type bush struct {
	scale    float64
	position [3]float64
}

var bushes = [4]bush{
	{0.5, [3]float64{0.8, 0.2, 2.2}},
	{0.25, [3]float64{1.4, 0.1, 2.1}},
	{0.4, [3]float64{-0.8, 0.1, 2.2}},
	{0.15, [3]float64{-1, 0.05, 2.6}},
}

// Tableau is the built scene with direct references to its named parts.
type Tableau struct {
	Graph  *scene.Graph
	House  *scene.Node
	Walls  *scene.Node
	Roof   *scene.Node
	Door   *scene.Node
	Bushes []*scene.Node
	Graves *scene.Node
	Floor  *scene.Node
	Lights []*scene.Node

	// Seed is the seed of the grave field's random source, or 0 when the source was
	// injected with WithRand.
	Seed int64
}

// Build assembles the tableau. Everything is placed at fixed coordinates except the graves,
// whose layout comes from the configured random source.
//
// Parameters:
//   - textures: handles from RequestTextures; missing or failed ones leave channels unbound
//   - options: functional options to configure the build
//
// Returns:
//   - *Tableau: the built scene
//   - error: wraps scene.ErrInvalidParent if the tree could not be assembled
func Build(textures Textures, options ...BuilderOption) (*Tableau, error) {
	b := &builder{logger: slog.Default()}
	for _, opt := range options {
		opt(b)
	}
	var seed int64
	if b.rnd == nil {
		seed = b.seed
		for seed == 0 {
			seed = rand.Int63()
		}
		b.rnd = rand.New(rand.NewSource(seed))
	}

	fog := common.MustHexColor(FogColor)
	t := &Tableau{
		Graph: scene.NewGraph(
			scene.WithFog(scene.Fog{Color: fog, Near: FogNear, Far: FogFar}),
			scene.WithBackground(fog),
		),
		Seed: seed,
	}

	t.Walls = scene.NewNode("walls",
		scene.WithMesh(
			geometry.NewBox(4, 2.5, 4),
			material.NewMaterial(append(textures.Bricks.options(), material.WithName("bricks"))...),
		),
		scene.WithPosition(0, 1.25, 0),
		scene.WithCastShadow(true),
	)
	t.Roof = scene.NewNode("roof",
		scene.WithMesh(
			geometry.NewCone(3.5, 1, 4),
			material.NewMaterial(material.WithName("roof"), material.WithHexColor("#b35f45")),
		),
		scene.WithPosition(0, 2.5+0.5, 0),
		scene.WithRotation(0, math.Pi*0.25, 0),
	)
	t.Door = scene.NewNode("door",
		scene.WithMesh(
			geometry.NewPlane(2.2, 2.2, 100, 100),
			material.NewMaterial(append(textures.Door.options(),
				material.WithName("door"),
				material.WithTransparent(true),
				material.WithDisplacementScale(0.1),
			)...),
		),
		scene.WithPosition(0, 1, 2+0.01),
	)

	bushGeometry := geometry.NewSphere(1, 16, 16)
	bushMaterial := material.NewMaterial(material.WithName("bush"), material.WithHexColor("#89c854"))
	for i, bs := range bushes {
		t.Bushes = append(t.Bushes, scene.NewNode(fmt.Sprintf("bush-%d", i+1),
			scene.WithMesh(bushGeometry, bushMaterial),
			scene.WithScale(bs.scale),
			scene.WithPosition(bs.position[0], bs.position[1], bs.position[2]),
			scene.WithCastShadow(true),
		))
	}

	t.House = scene.NewNode("house")
	if err := t.House.Add(append([]*scene.Node{t.Walls, t.Roof, t.Door}, t.Bushes...)...); err != nil {
		return nil, fmt.Errorf("failed to assemble house: %w", err)
	}

	t.Graves = scene.NewNode("graves")
	graveMaterial := material.NewMaterial(material.WithName("grave"), material.WithHexColor("#b2b6b1"))
	if err := t.Graves.Add(GenerateGraves(b.rnd, geometry.NewBox(0.6, 0.8, 0.2), graveMaterial)...); err != nil {
		return nil, fmt.Errorf("failed to assemble graves: %w", err)
	}

	t.Floor = scene.NewNode("floor",
		scene.WithMesh(
			geometry.NewPlane(20, 20, 1, 1),
			material.NewMaterial(append(textures.Grass.options(),
				material.WithName("grass"),
				material.WithShadowSide(material.SideFront),
			)...),
		),
		scene.WithRotation(-math.Pi*0.5, 0, 0),
		scene.WithReceiveShadow(true),
	)

	for _, n := range []*scene.Node{t.House, t.Graves, t.Floor} {
		if err := t.Graph.AddChild(t.Graph.Root(), n); err != nil {
			return nil, fmt.Errorf("failed to attach %s: %w", n.Name(), err)
		}
	}
	for _, l := range b.lights {
		n := scene.NewNode(l.Name(), scene.WithLight(l))
		if err := t.Graph.AddChild(t.Graph.Root(), n); err != nil {
			return nil, fmt.Errorf("failed to attach light %s: %w", l.Name(), err)
		}
		t.Lights = append(t.Lights, n)
	}

	derived := deriveSecondaryUVs(t.Graph)
	b.logger.Info("built scene",
		"nodes", t.Graph.Len(),
		"graves", len(t.Graves.Children()),
		"lights", len(t.Lights),
		"secondaryUVs", derived,
		"seed", seed,
	)
	return t, nil
}

// deriveSecondaryUVs copies the primary UV channel into the secondary one for every
// drawable whose material uses an ambient-occlusion texture. Returns how many geometries
// gained a channel.
func deriveSecondaryUVs(g *scene.Graph) int {
	count := 0
	for n := range g.Traverse(nil) {
		if !n.Drawable() || !n.Material().UsesAmbientOcclusion() || n.Geometry().HasUV2() {
			continue
		}
		n.Geometry().EnsureUV2()
		count++
	}
	return count
}

// CheckAmbientOcclusionUVs reports every drawable whose material uses an
// ambient-occlusion texture without a secondary UV channel as long as the primary one.
//
// Returns:
//   - error: nil, or ErrMissingSecondaryUV joined once per offending node
func (t *Tableau) CheckAmbientOcclusionUVs() error {
	var errs []error
	for n := range t.Graph.Traverse(nil) {
		if !n.Drawable() || !n.Material().UsesAmbientOcclusion() {
			continue
		}
		g := n.Geometry()
		if !g.HasUV2() || len(g.UV2()) != len(g.UVs()) {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), ErrMissingSecondaryUV))
		}
	}
	return errors.Join(errs...)
}

// LightNode returns the node carrying l, or nil.
func (t *Tableau) LightNode(l light.Light) *scene.Node {
	for _, n := range t.Lights {
		if n.Light() == l {
			return n
		}
	}
	return nil
}
