// Package config holds the runtime settings of the haunted house viewer. Settings come from
// defaults, then an optional TOML file, then command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Window configures the platform window.
type Window struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

// Renderer selects and tunes the renderer backend.
type Renderer struct {
	Headless      bool `toml:"headless"`
	VSync         bool `toml:"vsync"`
	MSAA          int  `toml:"msaa"`
	ForceSoftware bool `toml:"force_software"`
}

// Scene configures scene construction.
type Scene struct {
	// Seed fixes the grave layout. 0 picks a new layout on every run.
	Seed     int64  `toml:"seed"`
	Textures string `toml:"textures"`
}

// Loop configures the headless frame scheduler.
type Loop struct {
	// Frames stops a headless run after this many ticks; 0 runs until interrupted.
	Frames int     `toml:"frames"`
	FPS    float64 `toml:"fps"`
}

// Profile configures the frame profiler.
type Profile struct {
	Enabled         bool    `toml:"enabled"`
	IntervalSeconds float64 `toml:"interval_seconds"`
}

// Config is the complete set of runtime settings.
type Config struct {
	Window   Window   `toml:"window"`
	Renderer Renderer `toml:"renderer"`
	Scene    Scene    `toml:"scene"`
	Loop     Loop     `toml:"loop"`
	Profile  Profile  `toml:"profile"`
	// Export, when set, writes a GLB snapshot of the scene to this path after building it.
	Export   string `toml:"export"`
	LogLevel string `toml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Window: Window{
			Title:  "Haunted House",
			Width:  1280,
			Height: 720,
		},
		Renderer: Renderer{
			VSync: true,
			MSAA:  4,
		},
		Scene: Scene{
			Seed:     0,
			Textures: "static/textures",
		},
		Loop: Loop{
			FPS: 60,
		},
		Profile: Profile{
			IntervalSeconds: 1,
		},
		LogLevel: "info",
	}
}

// Load reads a TOML file over the defaults. An empty path returns the defaults.
//
// Parameters:
//   - path: the file to read, or ""
//
// Returns:
//   - Config: the merged settings
//   - error: an error if the file cannot be read or decoded
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := cfg.Decode(bytes.NewReader(data)); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Decode overlays TOML from r onto c. Keys that do not map to a field are rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(c); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return fmt.Errorf("unknown config keys: %s", strict.String())
		}
		return fmt.Errorf("failed to decode config: %w", err)
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks value ranges. All failures are reported together.
func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < 1 || c.Window.Height < 1 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be at least 1x1", c.Window.Width, c.Window.Height))
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		errs = append(errs, fmt.Errorf("msaa must be 1 or 4, got %d", c.Renderer.MSAA))
	}
	if c.Loop.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", c.Loop.Frames))
	}
	if c.Loop.FPS <= 0 {
		errs = append(errs, fmt.Errorf("fps must be positive, got %g", c.Loop.FPS))
	}
	if c.Profile.Enabled && c.Profile.IntervalSeconds <= 0 {
		errs = append(errs, fmt.Errorf("profile interval must be positive, got %g", c.Profile.IntervalSeconds))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level: %w", err)
	}
	return l, nil
}

// ProfileInterval returns the profiler interval as a duration.
func (c Config) ProfileInterval() time.Duration {
	return time.Duration(c.Profile.IntervalSeconds * float64(time.Second))
}
