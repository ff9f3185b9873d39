package renderer

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/geometry"
	"github.com/Carmen-Shannon/haunted-house/engine/light"
	"github.com/Carmen-Shannon/haunted-house/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
)

// SceneShaderSource is the WGSL module used for every scene draw.
//
//go:embed assets/scene.wgsl
var SceneShaderSource string

// MaxPointLights matches MAX_POINT_LIGHTS in the scene shader.
const MaxPointLights = 8

// Bind group indices and sizes used by the scene shader.
const (
	groupFrame    = 0
	groupMaterial = 1
	groupObject   = 2

	frameUniformSize    = 64 + 6*16 + MaxPointLights*32 + 16
	materialUniformSize = 3 * 16
	objectUniformSize   = 2 * 64

	// materialTextureBinding is the binding of the first channel texture; channel c lives at
	// materialTextureBinding + c.
	materialSamplerBinding = 1
	materialTextureBinding = 2
)

// GPUVertex is the interleaved vertex layout of the scene shader: 40 bytes.
type GPUVertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
	UV       [2]float32 // offset 24
	UV2      [2]float32 // offset 32
}

const gpuVertexSize = 40

var sceneVertexLayout = wgpu.VertexBufferLayout{
	ArrayStride: gpuVertexSize,
	StepMode:    wgpu.VertexStepModeVertex,
	Attributes: []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		{Format: wgpu.VertexFormatFloat32x2, Offset: 32, ShaderLocation: 3},
	},
}

func sceneBindGroupLayouts() []wgpu.BindGroupLayoutDescriptor {
	both := wgpu.ShaderStageVertex | wgpu.ShaderStageFragment
	materialEntries := []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: both,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: materialUniformSize},
		},
		{
			Binding:    materialSamplerBinding,
			Visibility: both,
			Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering},
		},
	}
	for _, c := range material.Channels() {
		materialEntries = append(materialEntries, wgpu.BindGroupLayoutEntry{
			Binding:    uint32(materialTextureBinding + int(c)),
			Visibility: both,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
			},
		})
	}
	return []wgpu.BindGroupLayoutDescriptor{
		groupFrame: {
			Label: "Frame Uniforms",
			Entries: []wgpu.BindGroupLayoutEntry{{
				Binding:    0,
				Visibility: both,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: frameUniformSize},
			}},
		},
		groupMaterial: {
			Label:   "Material",
			Entries: materialEntries,
		},
		groupObject: {
			Label: "Object Uniforms",
			Entries: []wgpu.BindGroupLayoutEntry{{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: objectUniformSize},
			}},
		},
	}
}

// packer writes little-endian float32 and uint32 values into a byte slice.
type packer struct {
	buf []byte
	off int
}

func (p *packer) f32(values ...float32) {
	for _, v := range values {
		binary.LittleEndian.PutUint32(p.buf[p.off:], math.Float32bits(v))
		p.off += 4
	}
}

func (p *packer) u32(values ...uint32) {
	for _, v := range values {
		binary.LittleEndian.PutUint32(p.buf[p.off:], v)
		p.off += 4
	}
}

func (p *packer) skip(n int) {
	p.off += n
}

// marshalVertices interleaves a geometry's channels into GPUVertex layout. Geometry
// without a secondary UV channel repeats the primary one.
func marshalVertices(g geometry.Geometry) []byte {
	positions, normals, uvs, uv2 := g.Positions(), g.Normals(), g.UVs(), g.UV2()
	if len(uv2) != len(uvs) {
		uv2 = uvs
	}
	p := packer{buf: make([]byte, len(positions)*gpuVertexSize)}
	for i := range positions {
		p.f32(positions[i][0], positions[i][1], positions[i][2])
		p.f32(normals[i][0], normals[i][1], normals[i][2])
		p.f32(uvs[i][0], uvs[i][1])
		p.f32(uv2[i][0], uv2[i][1])
	}
	return p.buf
}

func marshalIndices(g geometry.Geometry) []byte {
	p := packer{buf: make([]byte, len(g.Indices())*4)}
	p.u32(g.Indices()...)
	return p.buf
}

// marshalFrameUniforms packs the FrameUniforms struct of the scene shader.
func marshalFrameUniforms(f *Frame) []byte {
	p := packer{buf: make([]byte, frameUniformSize)}
	p.f32(f.ViewProjection[:]...)
	p.f32(f.CameraPosition[0], f.CameraPosition[1], f.CameraPosition[2], 1)
	if f.Fog != nil {
		p.f32(f.Fog.Color[0], f.Fog.Color[1], f.Fog.Color[2], 1)
		p.f32(f.Fog.Near, f.Fog.Far, 0, 0)
	} else {
		p.skip(32)
	}

	var ambient, moonDir, moonColor [3]float32
	var points []light.Light
	for _, l := range f.Lights {
		c, k := l.Color(), l.Intensity()
		switch l.Type() {
		case light.LightTypeAmbient:
			for i := range ambient {
				ambient[i] += c[i] * k
			}
		case light.LightTypeDirectional:
			moonDir = l.Direction()
			moonColor = [3]float32{c[0] * k, c[1] * k, c[2] * k}
		case light.LightTypePoint:
			if len(points) < MaxPointLights {
				points = append(points, l)
			}
		}
	}
	p.f32(ambient[0], ambient[1], ambient[2], 0)
	p.f32(moonDir[0], moonDir[1], moonDir[2], 0)
	p.f32(moonColor[0], moonColor[1], moonColor[2], 0)
	for i := range MaxPointLights {
		if i >= len(points) {
			p.skip(32)
			continue
		}
		l := points[i]
		pos, c, k := l.Position(), l.Color(), l.Intensity()
		p.f32(pos[0], pos[1], pos[2], l.Range())
		p.f32(c[0]*k, c[1]*k, c[2]*k, 0)
	}
	p.u32(uint32(len(points)), 0, 0, 0)
	return p.buf
}

// marshalMaterialUniforms packs MaterialUniforms. Displacement is disabled until its texture
// is ready, since the placeholder texture is white.
func marshalMaterialUniforms(m material.Material, repeat [2]float32) []byte {
	p := packer{buf: make([]byte, materialUniformSize)}
	c := m.BaseColor()
	p.f32(c[:]...)
	displacement := float32(0)
	if m.Texture(material.ChannelDisplacement) != nil {
		displacement = m.DisplacementScale()
	}
	p.f32(m.Metalness(), m.Roughness(), displacement, 0)
	p.f32(repeat[0], repeat[1], 0, 0)
	return p.buf
}

// marshalObjectUniforms packs the model matrix followed by its inverse transpose, which
// transforms normals. A singular model matrix falls back to the model matrix itself.
func marshalObjectUniforms(world [16]float32) []byte {
	p := packer{buf: make([]byte, objectUniformSize)}
	p.f32(world[:]...)

	normal := world
	var inv [16]float32
	if common.Invert4(inv[:], world[:]) {
		for c := range 4 {
			for r := range 4 {
				normal[c*4+r] = inv[r*4+c]
			}
		}
	}
	p.f32(normal[:]...)
	return p.buf
}
