package sale

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

type MemoryRepository struct {
	mu           sync.RWMutex
	listings     map[string]*Listing
	reservations map[string]*Reservation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		listings:     map[string]*Listing{},
		reservations: map[string]*Reservation{},
	}
}

func (r *MemoryRepository) CreateListing(_ context.Context, l *Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	l.ID = uuid.NewString()
	l.CreatedAt = now
	l.UpdatedAt = now
	clone := *l
	r.listings[l.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetListingByID(_ context.Context, id string) (*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.listings[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *MemoryRepository) GetActiveListingByVehicle(_ context.Context, vehicleID string) (*Listing, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, l := range r.listings {
		if l.VehicleID == vehicleID && l.Status == ListingActive {
			clone := *l
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) UpdateListing(_ context.Context, id string, price float64, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listings[id]
	if !ok {
		return ErrNotFound
	}
	l.Price = price
	l.Description = description
	l.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) UpdateListingStatus(_ context.Context, id string, status ListingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	l, ok := r.listings[id]
	if !ok {
		return ErrNotFound
	}
	l.Status = status
	l.UpdatedAt = time.Now()
	return nil
}

func (r *MemoryRepository) CreateReservation(_ context.Context, res *Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	res.ID = uuid.NewString()
	res.CreatedAt = time.Now()
	clone := *res
	r.reservations[res.ID] = &clone
	return nil
}

func (r *MemoryRepository) GetReservation(_ context.Context, listingID, customerID string) (*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, res := range r.reservations {
		if res.ListingID == listingID && res.CustomerID == customerID && res.Status == ReservationActive {
			clone := *res
			return &clone, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRepository) ListReservations(_ context.Context, listingID string) ([]*Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Reservation
	for _, res := range r.reservations {
		if res.ListingID != listingID {
			continue
		}
		clone := *res
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
