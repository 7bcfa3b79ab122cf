package vehicle

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/lifecycle"
)

// MemoryRepository is an in-memory Repository used by the test harness and
// by deployments without a database hooked up yet.
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Vehicle
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{items: make(map[string]*Vehicle)}
}

func clone(v *Vehicle) *Vehicle {
	cp := *v
	return &cp
}

func (r *MemoryRepository) Create(ctx context.Context, v *Vehicle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v.ID = uuid.NewString()
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	r.items[v.ID] = clone(v)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(v), nil
}

func (r *MemoryRepository) List(ctx context.Context, page, pageSize int) ([]*Vehicle, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]*Vehicle, 0, len(r.items))
	for _, v := range r.items {
		all = append(all, clone(v))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := len(all)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := min(start+pageSize, total)
	return all[start:end], total, nil
}

func (r *MemoryRepository) UpdateState(ctx context.Context, id string, state lifecycle.State) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.items[id]
	if !ok {
		return ErrNotFound
	}
	v.State = state
	v.UpdatedAt = time.Now().UTC()
	return nil
}
