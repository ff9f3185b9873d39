package house

import (
	"log/slog"

	"github.com/Carmen-Shannon/haunted-house/engine/light"
)

type builder struct {
	rnd    Rand
	seed   int64
	lights []light.Light
	logger *slog.Logger
}

// BuilderOption is a functional option for Build.
type BuilderOption func(b *builder)

// WithRand sets the random source for the grave field. It takes precedence over WithSeed.
//
// Parameters:
//   - rnd: the random source
//
// Returns:
//   - BuilderOption: option function to apply
func WithRand(rnd Rand) BuilderOption {
	return func(b *builder) {
		b.rnd = rnd
	}
}

// WithSeed seeds the default random source. Seed 0 picks a fresh random seed on every
// build; the chosen one is reported in Tableau.Seed.
func WithSeed(seed int64) BuilderOption {
	return func(b *builder) {
		b.seed = seed
	}
}

// WithLights adds one node per light under the root, in order.
func WithLights(lights ...light.Light) BuilderOption {
	return func(b *builder) {
		b.lights = append(b.lights, lights...)
	}
}

// WithLogger sets the logger used to report the build.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}
