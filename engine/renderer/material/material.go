package material

import (
	"sync"

	"github.com/Carmen-Shannon/haunted-house/engine/resource"
)

// Channel names a texture slot of a material.
type Channel int

const (
	ChannelColor Channel = iota
	ChannelAlpha
	ChannelAmbientOcclusion
	ChannelNormal
	ChannelDisplacement
	ChannelMetalness
	ChannelRoughness

	channelCount
)

var channelNames = [channelCount]string{
	"color", "alpha", "ambientOcclusion", "normal", "displacement", "metalness", "roughness",
}

func (c Channel) String() string {
	if c < 0 || c >= channelCount {
		return "unknown"
	}
	return channelNames[c]
}

// Channels lists every channel in declaration order.
func Channels() []Channel {
	out := make([]Channel, channelCount)
	for i := range out {
		out[i] = Channel(i)
	}
	return out
}

// Side selects which faces a material renders or casts shadows from.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// material is the implementation of the Material interface.
type material struct {
	mu *sync.Mutex

	name              string
	baseColor         [4]float32
	metalness         float32
	roughness         float32
	displacementScale float32
	transparent       bool
	side              Side
	shadowSide        Side
	channels          [channelCount]resource.Handle
}

// Material defines the interface for a surface description shared by scene nodes.
//
// Texture channels hold resource handles that may still be loading. A channel counts as
// bound only while its handle is not failed; Texture returns a handle only once it is ready,
// so the renderer picks textures up as they arrive without the scene being rebuilt.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// BaseColor retrieves the RGBA color multiplied with the color channel.
	//
	// Returns:
	//   - [4]float32: the base color as RGBA values
	BaseColor() [4]float32

	// Metalness retrieves the metalness factor.
	//
	// Returns:
	//   - float32: the metalness factor
	Metalness() float32

	// Roughness retrieves the roughness factor.
	//
	// Returns:
	//   - float32: the roughness factor
	Roughness() float32

	// DisplacementScale is the world-space height of a fully white displacement texel.
	DisplacementScale() float32

	// Transparent reports whether the material is alpha blended.
	Transparent() bool

	// Side returns which faces are rendered.
	Side() Side

	// ShadowSide returns which faces cast shadows.
	ShadowSide() Side

	// Handle returns the handle assigned to a channel regardless of its load state, or nil.
	Handle(c Channel) resource.Handle

	// Bound reports whether a channel has a handle that has not failed.
	Bound(c Channel) bool

	// Texture returns the channel's handle if it is ready, otherwise nil.
	Texture(c Channel) resource.Handle

	// BoundChannels lists channels for which Bound is true.
	BoundChannels() []Channel

	// UsesAmbientOcclusion reports whether an ambient-occlusion texture is assigned. Geometry
	// drawn with such a material must carry a secondary UV channel.
	UsesAmbientOcclusion() bool

	// Bind assigns a handle to a channel. A nil handle unbinds it.
	Bind(c Channel, h resource.Handle)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults: white, metalness 0, roughness 1, opaque, front-face rendering.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:        &sync.Mutex{},
		baseColor: [4]float32{1, 1, 1, 1},
		metalness: 0.0,
		roughness: 1.0,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) DisplacementScale() float32 {
	return m.displacementScale
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) Side() Side {
	return m.side
}

func (m *material) ShadowSide() Side {
	return m.shadowSide
}

func (m *material) Handle(c Channel) resource.Handle {
	if c < 0 || c >= channelCount {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.channels[c]
}

func (m *material) Bound(c Channel) bool {
	h := m.Handle(c)
	return h != nil && h.State() != resource.StateFailed
}

func (m *material) Texture(c Channel) resource.Handle {
	h := m.Handle(c)
	if !resource.Ready(h) {
		return nil
	}
	return h
}

func (m *material) BoundChannels() []Channel {
	var out []Channel
	for c := range channelCount {
		if m.Bound(c) {
			out = append(out, c)
		}
	}
	return out
}

func (m *material) UsesAmbientOcclusion() bool {
	return m.Handle(ChannelAmbientOcclusion) != nil
}

func (m *material) Bind(c Channel, h resource.Handle) {
	if c < 0 || c >= channelCount {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.channels[c] = h
}
