package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "house.toml")
	require.NoError(t, os.WriteFile(path, []byte("[scene]\nseed = 7\ntextures = \"assets\"\n"), 0o644))

	cfg, err := parseConfig([]string{"-config", path, "-seed", "9", "-headless", "-frames", "3"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Scene.Seed)
	assert.Equal(t, "assets", cfg.Scene.Textures)
	assert.True(t, cfg.Renderer.Headless)
	assert.Equal(t, 3, cfg.Loop.Frames)
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	_, err := parseConfig([]string{"-frames", "-1"})
	assert.Error(t, err)
}

func TestHeadlessRunWithMissingTextures(t *testing.T) {
	dir := t.TempDir()
	cfg, err := parseConfig([]string{
		"-headless", "-frames", "3",
		"-textures", filepath.Join(dir, "none"),
		"-export", filepath.Join(dir, "house.glb"),
	})
	require.NoError(t, err)
	cfg.Loop.FPS = 1000

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	require.NoError(t, run(context.Background(), cfg, logger))

	info, err := os.Stat(filepath.Join(dir, "house.glb"))
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
