// Package resource owns the textures requested by the scene. Loading is the only
// asynchronous part of the program: decode jobs run on a worker pool and publish their
// result into a Handle, which the render thread polls.
package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/haunted-house/common"
)

// ErrResourceUnavailable marks a texture that failed to load. Materials treat the
// affected channel as unbound.
var ErrResourceUnavailable = errors.New("resource unavailable")

type resourceSetImpl struct {
	mu      *sync.Mutex
	handles map[string]*handleImpl
	order   []string

	loader  ImageLoader
	workers int
	pool    worker.DynamicWorkerPool
	ownPool bool
	pending *sync.WaitGroup
	nextID  int
	logger  *slog.Logger
}

// ResourceSet maps texture keys to handles and schedules their loads.
type ResourceSet interface {
	// Load requests a texture and returns its handle immediately. Requesting a key that
	// was already requested returns the existing handle and ignores options.
	//
	// Parameters:
	//   - key: texture path
	//   - options: sampler options for this texture
	//
	// Returns:
	//   - Handle: the pending or finished handle
	Load(key string, options ...TextureOption) Handle

	// Get returns the handle for a key if it was requested.
	Get(key string) (Handle, bool)

	// Handles returns every handle in request order.
	Handles() []Handle

	// Pending returns the number of loads not yet finished.
	Pending() int

	// Wait blocks until every requested load has finished or ctx is done.
	Wait(ctx context.Context) error

	// Close stops the worker pool if the set created it. Loads still queued are abandoned
	// and their handles stay pending.
	Close()
}

var _ ResourceSet = &resourceSetImpl{}

// NewResourceSet creates an empty resource set backed by a dynamic worker pool.
//
// Parameters:
//   - options: functional options to configure the set
//
// Returns:
//   - ResourceSet: the new set
func NewResourceSet(options ...ResourceSetOption) ResourceSet {
	rs := &resourceSetImpl{
		mu:      &sync.Mutex{},
		handles: make(map[string]*handleImpl),
		loader:  FileImageLoader{Root: "."},
		workers: 4,
		pending: &sync.WaitGroup{},
		logger:  slog.Default(),
	}
	for _, opt := range options {
		opt(rs)
	}
	if rs.pool == nil {
		rs.pool = worker.NewDynamicWorkerPool(rs.workers, 64, 1*time.Second)
		rs.ownPool = true
	}
	return rs
}

func (rs *resourceSetImpl) Load(key string, options ...TextureOption) Handle {
	rs.mu.Lock()
	if h, ok := rs.handles[key]; ok {
		rs.mu.Unlock()
		return h
	}

	sampler := common.DefaultSampler()
	for _, opt := range options {
		opt(&sampler)
	}
	h := newHandle(key, sampler)
	rs.handles[key] = h
	rs.order = append(rs.order, key)
	id := rs.nextID
	rs.nextID++
	rs.pending.Add(1)
	rs.mu.Unlock()

	rs.pool.SubmitTask(worker.Task{
		ID: id,
		Do: func() (any, error) {
			defer rs.pending.Done()
			rs.fetch(h)
			return nil, nil
		},
	})
	return h
}

// fetch runs on a worker goroutine.
func (rs *resourceSetImpl) fetch(h *handleImpl) {
	defer func() {
		if r := recover(); r != nil {
			h.fail(fmt.Errorf("%w: %s: loader panic: %v", ErrResourceUnavailable, h.key, r))
			rs.logger.Warn("texture load panicked", "key", h.key, "panic", r)
		}
	}()

	tex, err := rs.loader.Load(h.key)
	if err != nil {
		h.fail(fmt.Errorf("%w: %s: %w", ErrResourceUnavailable, h.key, err))
		rs.logger.Warn("texture unavailable, channel left unbound", "key", h.key, "error", err)
		return
	}
	h.resolve(tex)
	rs.logger.Debug("texture loaded", "key", h.key, "width", tex.Width, "height", tex.Height)
}

func (rs *resourceSetImpl) Get(key string) (Handle, bool) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	h, ok := rs.handles[key]
	if !ok {
		return nil, false
	}
	return h, true
}

func (rs *resourceSetImpl) Handles() []Handle {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	out := make([]Handle, len(rs.order))
	for i, k := range rs.order {
		out[i] = rs.handles[k]
	}
	return out
}

func (rs *resourceSetImpl) Pending() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	n := 0
	for _, h := range rs.handles {
		if h.State() == StatePending {
			n++
		}
	}
	return n
}

func (rs *resourceSetImpl) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		rs.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (rs *resourceSetImpl) Close() {
	if rs.ownPool {
		rs.pool.Stop()
	}
}
