package bind_group_provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewBindGroupProviderIsEmpty(t *testing.T) {
	p := NewBindGroupProvider("Material grass", WithBuffer(0, nil))

	assert.Equal(t, "Material grass", p.Label())
	assert.Nil(t, p.BindGroup())
	assert.Nil(t, p.Buffer(0))
	assert.Nil(t, p.TextureView(0))
	assert.Nil(t, p.VertexBuffer())
	assert.Nil(t, p.IndexBuffer())
	assert.Zero(t, p.IndexCount())

	p.SetMesh(nil, nil, 36)
	assert.Equal(t, 36, p.IndexCount())

	// nil resources are skipped on release
	p.SetTexture(0, nil, nil)
	p.Release()
	assert.Nil(t, p.BindGroup())
}
