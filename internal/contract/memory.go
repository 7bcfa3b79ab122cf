package contract

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu        sync.RWMutex
	contracts map[string]*Contract
	payments  map[string]*Payment
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		contracts: map[string]*Contract{},
		payments:  map[string]*Payment{},
	}
}

func (r *MemoryRepository) Create(_ context.Context, c *Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	c.ID = uuid.NewString()
	c.CreatedAt = now
	c.UpdatedAt = now
	clone := *c
	r.contracts[c.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.contracts[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *MemoryRepository) ListByCustomer(_ context.Context, customerID string, page, pageSize int) ([]*Contract, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var all []*Contract
	for _, c := range r.contracts {
		if c.CustomerID != customerID {
			continue
		}
		clone := *c
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

func (r *MemoryRepository) UpdateStatus(_ context.Context, id string, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contracts[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) CreatePayment(_ context.Context, p *Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p.ID = uuid.NewString()
	p.CreatedAt = time.Now()
	clone := *p
	r.payments[p.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetPendingPayment(_ context.Context, contractID string) (*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *Payment
	for _, p := range r.payments {
		if p.ContractID != contractID || p.Status != PaymentChecking {
			continue
		}
		if latest == nil || p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	if latest == nil {
		return nil, ErrNoPendingPayment
	}
	clone := *latest
	return &clone, nil
}

func (r *MemoryRepository) DecidePayment(_ context.Context, paymentID string, status PaymentStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.payments[paymentID]
	if !ok {
		return ErrNoPendingPayment
	}
	now := time.Now()
	p.Status = status
	p.DecidedAt = &now
	return nil
}

func (r *MemoryRepository) ListPayments(_ context.Context, contractID string) ([]*Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Payment
	for _, p := range r.payments {
		if p.ContractID != contractID {
			continue
		}
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
