package booking

import (
	"context"
	"errors"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/interval"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/lifecycle"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/keylock"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/metrics"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pricing"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/vehicle"
	"github.com/google/uuid"
)

type RequestInput struct {
	VehicleID  string
	CustomerID string
	Start      time.Time
	End        time.Time
}

type Service interface {
	// Request books the vehicle for the requested dates. The whole check-
	// and-claim runs under the vehicle's lock, so two competing requests for
	// the same dates resolve to exactly one winner.
	Request(ctx context.Context, in RequestInput) (*Booking, error)

	// Cancel releases the booking's claimed days back to available.
	Cancel(ctx context.Context, id, customerID string) (*Booking, error)

	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Booking, int, error)
}

type service struct {
	repo      Repository
	intervals interval.Service
	vehicles  vehicle.Service
	locks     *keylock.Registry
	lockWait  time.Duration
	now       func() time.Time
}

func NewService(
	repo Repository,
	intervals interval.Service,
	vehicles vehicle.Service,
	locks *keylock.Registry,
	lockWait time.Duration,
) Service {
	return &service{
		repo:      repo,
		intervals: intervals,
		vehicles:  vehicles,
		locks:     locks,
		lockWait:  lockWait,
		now:       time.Now,
	}
}

func (s *service) Request(ctx context.Context, in RequestInput) (*Booking, error) {
	b, err := s.request(ctx, in)
	metrics.IncBookingRequested(outcome(err))
	return b, err
}

func (s *service) request(ctx context.Context, in RequestInput) (*Booking, error) {
	r, err := daterange.New(in.Start, in.End)
	if err != nil {
		return nil, err
	}
	if r.Start.Before(daterange.DayOf(s.now().UTC())) {
		return nil, ErrStartDatePast
	}

	release, err := s.lockVehicle(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	defer release()

	// Read the state under the lock so a concurrent transition cannot slip
	// between the check and the claim.
	v, err := s.vehicles.GetByID(ctx, in.VehicleID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if v.State != lifecycle.StateForRent {
		return nil, ErrVehicleNotForRent
	}

	dup, err := s.repo.HasActive(ctx, in.VehicleID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateBooking
	}

	set, err := s.intervals.LoadSet(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}

	b := &Booking{
		ID:         uuid.NewString(),
		VehicleID:  in.VehicleID,
		CustomerID: in.CustomerID,
		Start:      r.Start,
		End:        r.End,
		Status:     StatusActive,
	}

	diff, spans, err := set.Claim(r, b.ID, s.now().UTC())
	if err != nil {
		if errors.Is(err, interval.ErrUnavailable) {
			return nil, ErrUnavailable
		}
		return nil, err
	}
	b.TotalPrice = pricing.Quote(spans)

	if err := s.repo.CreateWithClaim(ctx, b, diff); err != nil {
		return nil, err
	}
	s.intervals.InvalidateAvailability(ctx, in.VehicleID)

	return b, nil
}

func (s *service) Cancel(ctx context.Context, id, customerID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.CustomerID != customerID {
		return nil, ErrPermissionDenied
	}
	if b.Status != StatusActive {
		return nil, ErrNotFound
	}

	release, err := s.lockVehicle(ctx, b.VehicleID)
	if err != nil {
		return nil, err
	}
	defer release()

	set, err := s.intervals.LoadSet(ctx, b.VehicleID)
	if err != nil {
		return nil, err
	}

	diff, err := set.Release(b.ID, s.now().UTC())
	if err != nil {
		if errors.Is(err, interval.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b.Status = StatusCancelled
	if err := s.repo.UpdateWithRelease(ctx, b, diff); err != nil {
		return nil, err
	}
	s.intervals.InvalidateAvailability(ctx, b.VehicleID)
	metrics.IncBookingCancelled()

	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Booking, int, error) {
	return s.repo.ListByCustomer(ctx, customerID, page, pageSize)
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

func outcome(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrUnavailable):
		return "unavailable"
	case errors.Is(err, ErrDuplicateBooking):
		return "duplicate"
	case errors.Is(err, ErrBusy):
		return "busy"
	default:
		return "error"
	}
}
