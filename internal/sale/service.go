package sale

import (
	"context"
	"errors"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/lifecycle"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/keylock"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/vehicle"
)

type ListInput struct {
	VehicleID   string
	EmployeeID  string
	Price       float64
	Description string
}

type Service interface {
	// ListForSale puts an unlisted vehicle up for sale.
	ListForSale(ctx context.Context, in ListInput) (*Listing, error)

	// Update changes the price or description of the vehicle's active
	// listing. A listing under contract is frozen until the contract
	// resolves.
	Update(ctx context.Context, vehicleID string, price float64, description string) (*Listing, error)

	// Withdraw takes the vehicle's active listing off the market. A listing
	// under contract must have its contract resolved first.
	Withdraw(ctx context.Context, vehicleID string) (*Listing, error)

	// Reserve records a customer's intent to buy. One active reservation
	// per customer per listing.
	Reserve(ctx context.Context, listingID, customerID string) (*Reservation, error)

	GetByID(ctx context.Context, id string) (*Listing, error)
	GetActiveByVehicle(ctx context.Context, vehicleID string) (*Listing, error)
	ListReservations(ctx context.Context, listingID string) ([]*Reservation, error)

	// HasActiveReservation reports whether the customer holds an active
	// reservation on the listing.
	HasActiveReservation(ctx context.Context, listingID, customerID string) (bool, error)

	// MarkSold closes the listing after its purchase contract is paid.
	MarkSold(ctx context.Context, listingID string) error
}

type service struct {
	repo     Repository
	vehicles vehicle.Service
	locks    *keylock.Registry
	lockWait time.Duration
}

func NewService(repo Repository, vehicles vehicle.Service, locks *keylock.Registry, lockWait time.Duration) Service {
	return &service{
		repo:     repo,
		vehicles: vehicles,
		locks:    locks,
		lockWait: lockWait,
	}
}

func (s *service) ListForSale(ctx context.Context, in ListInput) (*Listing, error) {
	release, err := s.lockVehicle(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	defer release()

	v, err := s.vehicles.GetByID(ctx, in.VehicleID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if v.State != lifecycle.StateUnlisted {
		return nil, ErrAlreadyListed
	}

	l := &Listing{
		VehicleID:   in.VehicleID,
		EmployeeID:  in.EmployeeID,
		Price:       in.Price,
		Description: in.Description,
		Status:      ListingActive,
	}
	if err := s.repo.CreateListing(ctx, l); err != nil {
		return nil, err
	}

	if _, err := s.vehicles.TransitionState(ctx, in.VehicleID, lifecycle.StateForSale); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *service) Update(ctx context.Context, vehicleID string, price float64, description string) (*Listing, error) {
	release, err := s.lockVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	defer release()

	l, err := s.repo.GetActiveListingByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	v, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if v.State == lifecycle.StateUnderContract || v.State == lifecycle.StatePaymentPending {
		return nil, ErrUnderContract
	}

	if err := s.repo.UpdateListing(ctx, l.ID, price, description); err != nil {
		return nil, err
	}

	l.Price = price
	l.Description = description
	return l, nil
}

func (s *service) Withdraw(ctx context.Context, vehicleID string) (*Listing, error) {
	release, err := s.lockVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	defer release()

	l, err := s.repo.GetActiveListingByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	v, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if v.State == lifecycle.StateUnderContract || v.State == lifecycle.StatePaymentPending {
		return nil, ErrUnderContract
	}

	if err := s.repo.UpdateListingStatus(ctx, l.ID, ListingWithdrawn); err != nil {
		return nil, err
	}
	if _, err := s.vehicles.TransitionState(ctx, vehicleID, lifecycle.StateUnlisted); err != nil {
		return nil, err
	}

	l.Status = ListingWithdrawn
	return l, nil
}

func (s *service) Reserve(ctx context.Context, listingID, customerID string) (*Reservation, error) {
	l, err := s.repo.GetListingByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if l.Status != ListingActive {
		return nil, ErrNotActive
	}

	release, err := s.lockVehicle(ctx, l.VehicleID)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := s.repo.GetReservation(ctx, listingID, customerID); err == nil {
		return nil, ErrDuplicateReservation
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	res := &Reservation{
		ListingID:  listingID,
		CustomerID: customerID,
		Status:     ReservationActive,
	}
	if err := s.repo.CreateReservation(ctx, res); err != nil {
		return nil, err
	}

	return res, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Listing, error) {
	return s.repo.GetListingByID(ctx, id)
}

func (s *service) GetActiveByVehicle(ctx context.Context, vehicleID string) (*Listing, error) {
	return s.repo.GetActiveListingByVehicle(ctx, vehicleID)
}

func (s *service) ListReservations(ctx context.Context, listingID string) ([]*Reservation, error) {
	return s.repo.ListReservations(ctx, listingID)
}

func (s *service) HasActiveReservation(ctx context.Context, listingID, customerID string) (bool, error) {
	_, err := s.repo.GetReservation(ctx, listingID, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *service) MarkSold(ctx context.Context, listingID string) error {
	return s.repo.UpdateListingStatus(ctx, listingID, ListingSold)
}

func (s *service) lockVehicle(ctx context.Context, vehicleID string) (func(), error) {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockWait)
	defer cancel()

	release, err := s.locks.Acquire(lockCtx, vehicleID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrBusy
		}
		return nil, err
	}
	return release, nil
}
