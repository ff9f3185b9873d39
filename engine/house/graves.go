package house

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/Carmen-Shannon/haunted-house/engine/scene"
)

const (
	// GraveCount is the number of graves scattered around the house.
	GraveCount = 50
	// GraveHeight is the y coordinate of every grave center.
	GraveHeight = 0.3
	// GraveMinRadius and GraveMaxRadius bound the distance of a grave from the origin.
	GraveMinRadius = 3.0
	GraveMaxRadius = 9.0
	// GraveJitter is the full width of the random tilt applied about Y and Z, in radians.
	GraveJitter = 0.4
)

// Rand is the random source used for grave placement. *math/rand.Rand satisfies it; tests
// inject scripted sources.
type Rand interface {
	// Float64 returns a value in [0, 1).
	Float64() float64
}

// GenerateGraves creates the grave field. Each grave draws four values from rnd in order:
// angle, radius, tilt about Z and tilt about Y. All graves share geom and mat.
//
// Parameters:
//   - rnd: the random source
//   - geom: grave geometry
//   - mat: grave material
//
// Returns:
//   - []*scene.Node: GraveCount detached nodes
func GenerateGraves(rnd Rand, geom geometry.Geometry, mat material.Material) []*scene.Node {
	graves := make([]*scene.Node, GraveCount)
	for i := range graves {
		angle := rnd.Float64() * math.Pi * 2
		radius := GraveMinRadius + rnd.Float64()*(GraveMaxRadius-GraveMinRadius)
		if radius >= GraveMaxRadius {
			radius = math.Nextafter(GraveMaxRadius, 0)
		}
		rotZ := (rnd.Float64() - 0.5) * GraveJitter
		rotY := (rnd.Float64() - 0.5) * GraveJitter

		graves[i] = scene.NewNode(fmt.Sprintf("grave-%02d", i),
			scene.WithMesh(geom, mat),
			scene.WithPosition(math.Cos(angle)*radius, GraveHeight, math.Sin(angle)*radius),
			scene.WithRotation(0, rotY, rotZ),
			scene.WithCastShadow(true),
		)
	}
	return graves
}
