package interval

import (
	"context"
	"sync"
	"time"
)

// MemoryRepository keeps rent periods in process memory. It backs the test
// suite and local runs without a database.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]*Interval // vehicleID -> periods
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: map[string][]*Interval{}}
}

func (r *MemoryRepository) ListByVehicle(_ context.Context, vehicleID string) ([]*Interval, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored := r.items[vehicleID]
	intervals := make([]*Interval, 0, len(stored))
	for _, iv := range stored {
		clone := *iv
		intervals = append(intervals, &clone)
	}
	return intervals, nil
}

func (r *MemoryRepository) ApplyDiff(_ context.Context, vehicleID string, diff Diff) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := r.items[vehicleID]
	byID := make(map[string]int, len(stored))
	for i, iv := range stored {
		byID[iv.ID] = i
	}

	// Validate the whole diff before touching anything so a partial apply
	// can never be observed.
	for _, id := range diff.Delete {
		if _, ok := byID[id]; !ok {
			return ErrNotFound
		}
	}
	for _, iv := range diff.Update {
		if _, ok := byID[iv.ID]; !ok {
			return ErrNotFound
		}
	}

	deleted := make(map[string]bool, len(diff.Delete))
	for _, id := range diff.Delete {
		deleted[id] = true
	}

	now := time.Now()
	next := make([]*Interval, 0, len(stored)+len(diff.Create))
	for _, iv := range stored {
		if deleted[iv.ID] {
			continue
		}
		next = append(next, iv)
	}
	for _, iv := range diff.Update {
		idx := byID[iv.ID]
		clone := *iv
		clone.CreatedAt = stored[idx].CreatedAt
		clone.UpdatedAt = now
		for i, kept := range next {
			if kept.ID == clone.ID {
				next[i] = &clone
				break
			}
		}
	}
	for _, iv := range diff.Create {
		clone := *iv
		clone.CreatedAt = now
		clone.UpdatedAt = now
		next = append(next, &clone)
	}

	r.items[vehicleID] = next
	return nil
}
