package profiler

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTickReportsOncePerInterval(t *testing.T) {
	start := time.Unix(0, 0)
	now := start
	var out bytes.Buffer
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithLogger(slog.New(slog.NewTextHandler(&out, nil))),
		WithInterval(time.Second),
	)

	for range 29 {
		now = now.Add(time.Second / 60)
		assert.False(t, p.Tick())
	}
	now = start.Add(time.Second)
	require.True(t, p.Tick(slog.Int("draws", 59)))

	assert.InDelta(t, 30.0, p.Last().FPS, 1e-9)
	assert.Contains(t, out.String(), "msg=profiler")
	assert.Contains(t, out.String(), "fps=30")
	assert.Contains(t, out.String(), "draws=59")

	// The frame counter restarts after a report.
	now = now.Add(2 * time.Second)
	require.True(t, p.Tick())
	assert.InDelta(t, 0.5, p.Last().FPS, 1e-9)
}

func TestLevelFiltersReports(t *testing.T) {
	now := time.Unix(0, 0)
	var out bytes.Buffer
	p := NewProfiler(
		WithClock(func() time.Time { return now }),
		WithLogger(slog.New(slog.NewTextHandler(&out, nil))),
		WithLevel(slog.LevelDebug),
	)
	now = now.Add(time.Second)
	assert.True(t, p.Tick())
	assert.Empty(t, out.String())
}
