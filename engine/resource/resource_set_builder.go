package resource

import (
	"log/slog"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/haunted-house/common"
	"github.com/cogentcore/webgpu/wgpu"
)

// ResourceSetOption is a functional option for configuring a ResourceSet.
type ResourceSetOption func(*resourceSetImpl)

// WithLoader sets the image loader. Defaults to a FileImageLoader rooted at the working directory.
//
// Parameters:
//   - loader: the loader used by worker goroutines
//
// Returns:
//   - ResourceSetOption: a function that sets the loader
func WithLoader(loader ImageLoader) ResourceSetOption {
	return func(rs *resourceSetImpl) {
		rs.loader = loader
	}
}

// WithWorkers sets the maximum number of concurrent decode workers.
//
// Parameters:
//   - n: worker count, at least 1
//
// Returns:
//   - ResourceSetOption: a function that sets the worker count
func WithWorkers(n int) ResourceSetOption {
	return func(rs *resourceSetImpl) {
		rs.workers = max(n, 1)
	}
}

// WithPool supplies an existing worker pool instead of creating one.
func WithPool(pool worker.DynamicWorkerPool) ResourceSetOption {
	return func(rs *resourceSetImpl) {
		rs.pool = pool
	}
}

// WithLogger sets the logger for load failures.
func WithLogger(logger *slog.Logger) ResourceSetOption {
	return func(rs *resourceSetImpl) {
		rs.logger = logger
	}
}

// TextureOption adjusts the sampler settings of a requested texture.
type TextureOption func(*common.SamplerStagingData)

// WithRepeat tiles the texture u by v times across its surface and switches addressing
// to repeat on both axes.
func WithRepeat(u, v float32) TextureOption {
	return func(s *common.SamplerStagingData) {
		s.Repeat = [2]float32{u, v}
		s.AddressModeU = wgpu.AddressModeRepeat
		s.AddressModeV = wgpu.AddressModeRepeat
	}
}

// WithAddressMode sets the U and V addressing modes.
func WithAddressMode(u, v wgpu.AddressMode) TextureOption {
	return func(s *common.SamplerStagingData) {
		s.AddressModeU = u
		s.AddressModeV = v
	}
}
