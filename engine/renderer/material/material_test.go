package material

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/Carmen-Shannon/haunted-house/engine/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	m := NewMaterial()
	assert.Equal(t, [4]float32{1, 1, 1, 1}, m.BaseColor())
	assert.Equal(t, float32(1), m.Roughness())
	assert.Equal(t, SideFront, m.ShadowSide())
	assert.Empty(t, m.BoundChannels())
	assert.False(t, m.UsesAmbientOcclusion())
}

func TestChannelsFollowHandleState(t *testing.T) {
	gate := make(chan struct{})
	rs := resource.NewResourceSet(resource.WithLoader(resource.LoaderFunc(func(key string) (common.TextureStagingData, error) {
		<-gate
		if key == "bad" {
			return common.TextureStagingData{}, errors.New("missing")
		}
		return common.TextureStagingData{Width: 1, Height: 1, Pixels: make([]byte, 4)}, nil
	})))
	defer rs.Close()

	m := NewMaterial(
		WithName("door"),
		WithTexture(ChannelColor, rs.Load("good")),
		WithTexture(ChannelAmbientOcclusion, rs.Load("bad")),
	)

	// Pending handles count as bound but expose no texture yet.
	assert.True(t, m.Bound(ChannelColor))
	assert.Nil(t, m.Texture(ChannelColor))
	assert.True(t, m.UsesAmbientOcclusion())

	close(gate)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, rs.Wait(ctx))

	require.NotNil(t, m.Texture(ChannelColor))
	assert.False(t, m.Bound(ChannelAmbientOcclusion))
	assert.Nil(t, m.Texture(ChannelAmbientOcclusion))
	assert.Equal(t, []Channel{ChannelColor}, m.BoundChannels())
}

func TestBindAndUnbind(t *testing.T) {
	m := NewMaterial(WithHexColor("#89c854"))
	assert.InDelta(t, 0x89/255.0, m.BaseColor()[0], 1e-6)

	m.Bind(ChannelRoughness, nil)
	assert.False(t, m.Bound(ChannelRoughness))
	assert.Equal(t, "ambientOcclusion", ChannelAmbientOcclusion.String())
	assert.Len(t, Channels(), 7)
}
