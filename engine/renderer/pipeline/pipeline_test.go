package pipeline

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("scene/side-0", "// wgsl")

	assert.Equal(t, "scene/side-0", p.PipelineKey())
	assert.Equal(t, "vs_main", p.VertexEntry())
	assert.Equal(t, "fs_main", p.FragmentEntry())
	assert.True(t, p.DepthTestEnabled())
	assert.True(t, p.DepthWriteEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Equal(t, wgpu.CullModeNone, p.CullMode())
	assert.Equal(t, wgpu.FrontFaceCCW, p.FrontFace())
	assert.Nil(t, p.RenderPipeline())
}

func TestPipelineOptions(t *testing.T) {
	layout := wgpu.VertexBufferLayout{ArrayStride: 40}
	p := NewPipeline("scene/side-2/blend", "",
		WithVertexLayouts(layout),
		WithBindGroupLayouts(wgpu.BindGroupLayoutDescriptor{Label: "Frame"}, wgpu.BindGroupLayoutDescriptor{Label: "Material"}),
		WithCullMode(wgpu.CullModeFront),
		WithBlendEnabled(true),
		WithDepthWriteEnabled(false),
	)

	assert.Len(t, p.VertexLayouts(), 1)
	assert.EqualValues(t, 40, p.VertexLayouts()[0].ArrayStride)
	assert.Len(t, p.BindGroupLayoutDescriptors(), 2)
	assert.Equal(t, wgpu.CullModeFront, p.CullMode())
	assert.True(t, p.BlendEnabled())
	assert.False(t, p.DepthWriteEnabled())
	assert.NotNil(t, p.BlendState())
}
