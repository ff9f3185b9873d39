package light

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/haunted-house/engine/tweak"
)

// GhostCount is the number of orbiting ghost lights.
const GhostCount = 3

// Rig owns every light in the tableau: the ambient fill, the moon, the door lamp and the
// ghosts. Ghost positions are a pure function of elapsed time and are written by Update.
type Rig struct {
	ambient Light
	moon    Light
	door    Light
	ghosts  [GhostCount]Light
}

// NewRig creates the lights with their fixed colors, intensities and shadow settings.
func NewRig() *Rig {
	r := &Rig{
		ambient: NewLight(LightTypeAmbient,
			WithName("ambient"),
			WithHexColor("#b9d5ff"),
			WithIntensity(0.12),
		),
		moon: NewLight(LightTypeDirectional,
			WithName("moon"),
			WithHexColor("#b9d5ff"),
			WithIntensity(0.12),
			WithPosition(4, 5, -2),
			WithCastsShadows(Shadow(256, 15, -0.005)),
		),
		door: NewLight(LightTypePoint,
			WithName("door"),
			WithHexColor("#ffff00"),
			WithIntensity(2),
			WithRange(5),
			WithPosition(2, 2, 2),
			WithCastsShadows(Shadow(256, 7, -0.005)),
		),
	}

	colors := [GhostCount]string{"#ff00ff", "#00ffff", "#ffff00"}
	for i, c := range colors {
		r.ghosts[i] = NewLight(LightTypePoint,
			WithName(fmt.Sprintf("ghost%d", i+1)),
			WithHexColor(c),
			WithIntensity(2),
			WithRange(3),
			WithCastsShadows(Shadow(256, 7, 0)),
		)
	}
	r.Update(0)
	return r
}

// Ambient returns the ambient light.
func (r *Rig) Ambient() Light { return r.ambient }

// Moon returns the directional moon light.
func (r *Rig) Moon() Light { return r.moon }

// Door returns the point light above the door.
func (r *Rig) Door() Light { return r.door }

// Ghost returns ghost i in [0, GhostCount).
func (r *Rig) Ghost(i int) Light { return r.ghosts[i] }

// Lights returns every light in a stable order: ambient, moon, door, ghosts.
func (r *Rig) Lights() []Light {
	lights := []Light{r.ambient, r.moon, r.door}
	return append(lights, r.ghosts[:]...)
}

// Update writes the ghost positions for elapsed time t in seconds. Calling it twice with
// the same t produces identical positions.
func (r *Rig) Update(t float64) {
	for i, p := range GhostPositions(t) {
		r.ghosts[i].SetPosition(p[0], p[1], p[2])
	}
}

// GhostPositions evaluates the three ghost paths at elapsed time t.
//
//	ghost1: a = 0.5t;   (4 cos a, sin 3t, 4 sin a)
//	ghost2: a = -0.32t; (5 cos a, sin 4t + sin 2.5t, 5 sin a)
//	ghost3: a = -0.18t; ((7 + sin 0.32t) cos a, sin 4t + sin 2.5t, (7 + sin 0.5t) sin a)
func GhostPositions(t float64) [GhostCount][3]float32 {
	a1 := 0.5 * t
	a2 := -0.32 * t
	a3 := -0.18 * t
	bob := math.Sin(4*t) + math.Sin(2.5*t)

	return [GhostCount][3]float32{
		vec(math.Cos(a1)*4, math.Sin(3*t), math.Sin(a1)*4),
		vec(math.Cos(a2)*5, bob, math.Sin(a2)*5),
		vec(math.Cos(a3)*(7+math.Sin(0.32*t)), bob, math.Sin(a3)*(7+math.Sin(0.5*t))),
	}
}

func vec(x, y, z float64) [3]float32 {
	return [3]float32{float32(x), float32(y), float32(z)}
}

// RegisterTweaks exposes the ambient intensity and the moon position to a debug panel.
func (r *Rig) RegisterTweaks(reg *tweak.Registry) error {
	props := []tweak.Property{{
		Name: "ambient.intensity", Min: 0, Max: 1, Step: 0.001,
		Get: func() float64 { return float64(r.ambient.Intensity()) },
		Set: func(v float64) { r.ambient.SetIntensity(float32(v)) },
	}}
	for axis, label := range []string{"x", "y", "z"} {
		props = append(props, tweak.Property{
			Name: "moon.position." + label, Min: -5, Max: 5, Step: 0.001,
			Get: func() float64 { return float64(r.moon.Position()[axis]) },
			Set: func(v float64) {
				p := r.moon.Position()
				p[axis] = float32(v)
				r.moon.SetPosition(p[0], p[1], p[2])
			},
		})
	}
	for _, p := range props {
		if err := reg.Register(p); err != nil {
			return err
		}
	}
	return nil
}
