package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/interval"
)

// MemoryRepository keeps bookings in process memory. Rent period diffs are
// forwarded to the interval memory repository; the per-vehicle lock held by
// the service makes the pair effectively atomic.
type MemoryRepository struct {
	mu      sync.RWMutex
	items   map[string]*Booking
	periods *interval.MemoryRepository
}

func NewMemoryRepository(periods *interval.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{
		items:   map[string]*Booking{},
		periods: periods,
	}
}

func (r *MemoryRepository) CreateWithClaim(ctx context.Context, b *Booking, diff interval.Diff) error {
	if err := r.periods.ApplyDiff(ctx, b.VehicleID, diff); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	clone := *b
	clone.CreatedAt = now
	clone.UpdatedAt = now
	r.items[clone.ID] = &clone
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

func (r *MemoryRepository) UpdateWithRelease(ctx context.Context, b *Booking, diff interval.Diff) error {
	r.mu.Lock()
	stored, ok := r.items[b.ID]
	r.mu.Unlock()
	if !ok {
		return ErrNotFound
	}

	if err := r.periods.ApplyDiff(ctx, b.VehicleID, diff); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	clone := *b
	clone.CreatedAt = stored.CreatedAt
	clone.UpdatedAt = time.Now()
	r.items[clone.ID] = &clone
	b.UpdatedAt = clone.UpdatedAt
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *MemoryRepository) HasActive(_ context.Context, vehicleID, customerID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.items {
		if b.VehicleID == vehicleID && b.CustomerID == customerID && b.Status == StatusActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) ListByCustomer(_ context.Context, customerID string, page, pageSize int) ([]*Booking, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var all []*Booking
	for _, b := range r.items {
		if b.CustomerID != customerID {
			continue
		}
		clone := *b
		all = append(all, &clone)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})

	total := len(all)
	start := (page - 1) * pageSize
	if start >= total {
		return nil, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}
