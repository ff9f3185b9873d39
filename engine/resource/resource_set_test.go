package resource

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitAll(t *testing.T, rs ResourceSet) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, rs.Wait(ctx))
}

func TestLoadResolvesThroughLoader(t *testing.T) {
	rs := NewResourceSet(WithLoader(LoaderFunc(func(key string) (common.TextureStagingData, error) {
		return common.TextureStagingData{Pixels: make([]byte, 4), Width: 1, Height: 1}, nil
	})))
	defer rs.Close()

	h := rs.Load("/textures/door/color.jpg")
	assert.Equal(t, "/textures/door/color.jpg", h.Key())

	waitAll(t, rs)
	require.Equal(t, StateReady, h.State())
	require.NotNil(t, h.Texture())
	assert.Equal(t, uint32(1), h.Texture().Width)
	assert.NoError(t, h.Err())
	assert.True(t, Ready(h))
	assert.Zero(t, rs.Pending())
}

func TestFailedLoadIsUnavailable(t *testing.T) {
	rs := NewResourceSet(WithLoader(LoaderFunc(func(string) (common.TextureStagingData, error) {
		return common.TextureStagingData{}, errors.New("404")
	})))
	defer rs.Close()

	h := rs.Load("/textures/missing.jpg")
	waitAll(t, rs)

	assert.Equal(t, StateFailed, h.State())
	assert.ErrorIs(t, h.Err(), ErrResourceUnavailable)
	assert.Nil(t, h.Texture())
	assert.False(t, Ready(h))
}

func TestLoaderPanicIsContained(t *testing.T) {
	rs := NewResourceSet(WithLoader(LoaderFunc(func(string) (common.TextureStagingData, error) {
		panic("corrupt")
	})))
	defer rs.Close()

	h := rs.Load("/textures/bad.png")
	waitAll(t, rs)
	assert.ErrorIs(t, h.Err(), ErrResourceUnavailable)
}

func TestLoadIsIdempotentPerKey(t *testing.T) {
	var calls atomic.Int32
	rs := NewResourceSet(WithLoader(LoaderFunc(func(string) (common.TextureStagingData, error) {
		calls.Add(1)
		return common.TextureStagingData{}, nil
	})))
	defer rs.Close()

	a := rs.Load("/textures/grass/color.jpg", WithRepeat(8, 8))
	b := rs.Load("/textures/grass/color.jpg")
	waitAll(t, rs)

	assert.Same(t, a, b)
	assert.Equal(t, int32(1), calls.Load())
	assert.Len(t, rs.Handles(), 1)

	got, ok := rs.Get("/textures/grass/color.jpg")
	require.True(t, ok)
	assert.Same(t, a, got)
	_, ok = rs.Get("/nope")
	assert.False(t, ok)
}

func TestRepeatSampler(t *testing.T) {
	rs := NewResourceSet(WithLoader(LoaderFunc(func(string) (common.TextureStagingData, error) {
		return common.TextureStagingData{}, nil
	})))
	defer rs.Close()

	h := rs.Load("/textures/grass/normal.jpg", WithRepeat(8, 8))
	s := h.Sampler()
	assert.Equal(t, [2]float32{8, 8}, s.Repeat)
	assert.Equal(t, wgpu.AddressModeRepeat, s.AddressModeU)
	assert.Equal(t, wgpu.AddressModeRepeat, s.AddressModeV)

	h = rs.Load("/textures/door/alpha.jpg")
	assert.Equal(t, [2]float32{1, 1}, h.Sampler().Repeat)
	assert.Equal(t, wgpu.AddressModeClampToEdge, h.Sampler().AddressModeU)
	waitAll(t, rs)
}

func TestFileImageLoaderDecodesPNG(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "textures"), 0o755))

	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	img.Set(1, 2, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	require.NoError(t, os.WriteFile(filepath.Join(root, "textures", "a.png"), buf.Bytes(), 0o644))

	tex, err := FileImageLoader{Root: root}.Load("/textures/a.png")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), tex.Width)
	assert.Equal(t, uint32(3), tex.Height)
	assert.Len(t, tex.Pixels, 2*3*4)

	_, err = FileImageLoader{Root: root}.Load("/textures/missing.png")
	assert.Error(t, err)
}
