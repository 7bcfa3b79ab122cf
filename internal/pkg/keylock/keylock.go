package keylock

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Registry serializes operations per key. Each key gets its own weight-1
// semaphore, so holders of different keys never contend. Acquisition honors
// the caller's context deadline, which lets callers bound their lock wait.
type Registry struct {
	mu    sync.Mutex
	locks map[string]*semaphore.Weighted
}

func NewRegistry() *Registry {
	return &Registry{locks: make(map[string]*semaphore.Weighted)}
}

func (r *Registry) lockFor(key string) *semaphore.Weighted {
	r.mu.Lock()
	defer r.mu.Unlock()

	sem, ok := r.locks[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		r.locks[key] = sem
	}
	return sem
}

// Acquire blocks until the key's lock is held or ctx is done.
// On success it returns a release function that must be called exactly once.
func (r *Registry) Acquire(ctx context.Context, key string) (release func(), err error) {
	sem := r.lockFor(key)
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	return func() { sem.Release(1) }, nil
}
