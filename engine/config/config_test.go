package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.Equal(t, 4, cfg.Renderer.MSAA)
	assert.Zero(t, cfg.Scene.Seed)
	assert.Equal(t, time.Second, cfg.ProfileInterval())

	level, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"

[window]
width = 800

[renderer]
headless = true
msaa = 1

[scene]
seed = 42
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 720, cfg.Window.Height)
	assert.True(t, cfg.Renderer.Headless)
	assert.True(t, cfg.Renderer.VSync)
	assert.Equal(t, 1, cfg.Renderer.MSAA)
	assert.Equal(t, int64(42), cfg.Scene.Seed)
	assert.Equal(t, "static/textures", cfg.Scene.Textures)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	cfg := Default()
	err := cfg.Decode(strings.NewReader("[window]\nwidht = 10\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config keys")
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := Default()
	cfg.Window.Height = 0
	cfg.Renderer.MSAA = 2
	cfg.Loop.FPS = 0
	cfg.LogLevel = "loud"

	err := cfg.Validate()
	require.ErrorIs(t, err, ErrInvalidConfig)
	for _, want := range []string{"window size", "msaa", "fps", "log level"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestEncodeRoundTrips(t *testing.T) {
	want := Default()
	want.Export = "house.glb"
	var buf bytes.Buffer
	require.NoError(t, want.Encode(&buf))

	var got Config
	require.NoError(t, got.Decode(&buf))
	assert.Equal(t, want, got)
}
