package material

import (
	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/resource"
)

// MaterialBuilderOption is a functional option for configuring a Material.
type MaterialBuilderOption func(*material)

// WithName sets the name identifier of the material.
//
// Parameters:
//   - name: the material name
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name to the material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithBaseColor sets the RGBA base color of the material.
//
// Parameters:
//   - color: the base color as RGBA values
//
// Returns:
//   - MaterialBuilderOption: a function that applies the base color to the material
func WithBaseColor(color [4]float32) MaterialBuilderOption {
	return func(m *material) {
		m.baseColor = color
	}
}

// WithHexColor sets an opaque base color from a "#rrggbb" literal. Panics on malformed input.
func WithHexColor(hex string) MaterialBuilderOption {
	rgba := common.RGBA(common.MustHexColor(hex), 1)
	return func(m *material) {
		m.baseColor = rgba
	}
}

// WithMetalness sets the metalness factor.
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = metalness
	}
}

// WithRoughness sets the roughness factor.
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithDisplacementScale sets the displacement height scale.
func WithDisplacementScale(scale float32) MaterialBuilderOption {
	return func(m *material) {
		m.displacementScale = scale
	}
}

// WithTransparent enables alpha blending.
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = transparent
	}
}

// WithSide sets which faces are rendered.
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}

// WithShadowSide sets which faces cast shadows.
func WithShadowSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.shadowSide = side
	}
}

// WithTexture binds a resource handle to a channel. Nil handles are ignored.
//
// Parameters:
//   - c: the channel to bind
//   - h: the texture handle
//
// Returns:
//   - MaterialBuilderOption: a function that binds the channel
func WithTexture(c Channel, h resource.Handle) MaterialBuilderOption {
	return func(m *material) {
		if h != nil && c >= 0 && c < channelCount {
			m.channels[c] = h
		}
	}
}
