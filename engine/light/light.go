package light

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient represents uniform light with no position or direction.
	// It lifts every fragment equally and never casts shadows.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with parallel rays, oriented from its
	// position toward its target. Used for distant sources like the moon. No distance
	// attenuation.
	LightTypeDirectional

	// LightTypePoint represents a light that emits in all directions from a position.
	// Attenuates with distance up to a configurable range.
	LightTypePoint
)

// String returns the lower-case light kind.
func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	default:
		return "unknown"
	}
}

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	name         string
	lightType    LightType
	position     [3]float32
	target       [3]float32
	direction    [3]float32
	color        [3]float32
	intensity    float32
	lightRange   float32
	enabled      bool
	castsShadows bool
	shadow       ShadowConfig
}

// Light defines the interface for a light source in the scene.
// All light types share this interface; type-specific properties (e.g. range for
// point lights) return their stored values but are ignored by kinds they do not apply to.
// Lights are owned by the Rig and only mutated between frames on the render thread.
type Light interface {
	// Name returns the light's identifier, used for scene node names and logging.
	Name() string

	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (ambient, directional or point)
	Type() LightType

	// Position returns the world-space position of the light.
	// Meaningless for ambient lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Direction returns the normalized direction from the light's position toward its
	// target. Only meaningful for directional lights.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Range returns the maximum attenuation distance for point lights.
	// Beyond this distance the light contributes zero energy. Zero means unbounded.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light is eligible for shadow map generation.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// Shadow returns the shadow map parameters. Only consulted when CastsShadows is true.
	Shadow() ShadowConfig

	// SetPosition sets the world-space position of the light. Directional lights
	// re-derive their direction toward the target.
	//
	// Parameters:
	//   - x, y, z: position components
	SetPosition(x, y, z float32)

	// SetColor sets the RGB color of the light.
	//
	// Parameters:
	//   - r, g, b: color components
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the intensity value
	SetIntensity(intensity float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with defaults (white, intensity 1,
// unbounded range, no shadows) and any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		name:      lightType.String(),
		lightType: lightType,
		direction: [3]float32{0, -1, 0},
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
		enabled:   true,
		shadow:    DefaultShadowConfig(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.updateDirection()
	return l
}

func (l *lightImpl) Name() string {
	return l.name
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	return l.position
}

func (l *lightImpl) Direction() [3]float32 {
	return l.direction
}

func (l *lightImpl) Color() [3]float32 {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Range() float32 {
	return l.lightRange
}

func (l *lightImpl) Enabled() bool {
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	return l.castsShadows && l.lightType != LightTypeAmbient
}

func (l *lightImpl) Shadow() ShadowConfig {
	return l.shadow
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.position = [3]float32{x, y, z}
	l.updateDirection()
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.enabled = enabled
}

func (l *lightImpl) updateDirection() {
	if l.lightType != LightTypeDirectional {
		return
	}
	d := normalize3(
		l.target[0]-l.position[0],
		l.target[1]-l.position[1],
		l.target[2]-l.position[2],
	)
	if d != [3]float32{} {
		l.direction = d
	}
}
