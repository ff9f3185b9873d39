package light

// DefaultShadowMapSize is the width and height in texels of a shadow depth texture
// when a light does not override it.
const DefaultShadowMapSize = 512

// DefaultShadowNear is the default near plane of a light's shadow projection.
const DefaultShadowNear float32 = 0.5

// DefaultShadowFar is the default far plane of a light's shadow projection.
const DefaultShadowFar float32 = 500.0

// ShadowConfig holds the shadow map parameters of a shadow-casting light.
type ShadowConfig struct {
	// MapWidth and MapHeight are the depth texture dimensions in texels.
	MapWidth, MapHeight uint32
	// Near and Far bound the shadow projection.
	Near, Far float32
	// Bias is the constant depth offset applied to shadow comparisons to reduce acne.
	Bias float32
}

// DefaultShadowConfig returns the shadow parameters used when a light does not configure its own.
func DefaultShadowConfig() ShadowConfig {
	return ShadowConfig{
		MapWidth:  DefaultShadowMapSize,
		MapHeight: DefaultShadowMapSize,
		Near:      DefaultShadowNear,
		Far:       DefaultShadowFar,
	}
}

// Shadow returns a square shadow map of the given size with the given far plane and bias.
func Shadow(size uint32, far, bias float32) ShadowConfig {
	return ShadowConfig{
		MapWidth:  size,
		MapHeight: size,
		Near:      DefaultShadowNear,
		Far:       far,
		Bias:      bias,
	}
}
