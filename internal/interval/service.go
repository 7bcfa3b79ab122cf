package interval

import (
	"context"
	"errors"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/lifecycle"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/cache"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/keylock"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/vehicle"
)

// PeriodInput is one desired rent period in a reconcile call. An entry with
// an ID refers to a stored period; one without is created.
type PeriodInput struct {
	ID          string
	Start       time.Time
	End         time.Time
	PricePerDay float64
	Description string
}

type Service interface {
	// Reconcile diffs the caller-submitted target list against the stored
	// periods of one vehicle and applies the result as a single unit.
	Reconcile(ctx context.Context, vehicleID string, target []PeriodInput) ([]*Interval, error)

	// ListByVehicle returns the vehicle's periods ordered by start date.
	ListByVehicle(ctx context.Context, vehicleID string) ([]*Interval, error)

	// Availability projects the vehicle's periods onto a day -> status map.
	Availability(ctx context.Context, vehicleID string, window daterange.Range) (map[string]Status, error)

	// LoadSet snapshots the vehicle's periods into a Set. Callers that go on
	// to mutate the set must hold the vehicle's lock and persist the diff
	// through this package's repository.
	LoadSet(ctx context.Context, vehicleID string) (*Set, error)

	// InvalidateAvailability drops any cached availability for the vehicle.
	InvalidateAvailability(ctx context.Context, vehicleID string)
}

type service struct {
	repo       Repository
	vehicles   vehicle.Service
	locks      *keylock.Registry
	lockWait   time.Duration
	availCache *cache.AvailabilityCache
}

func NewService(repo Repository, vehicles vehicle.Service, locks *keylock.Registry, lockWait time.Duration, availCache *cache.AvailabilityCache) Service {
	return &service{
		repo:       repo,
		vehicles:   vehicles,
		locks:      locks,
		lockWait:   lockWait,
		availCache: availCache,
	}
}

// lockVehicle acquires the vehicle's lock with the configured bounded wait.
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

func (s *service) Reconcile(ctx context.Context, vehicleID string, target []PeriodInput) ([]*Interval, error) {
	release, err := s.lockVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	defer release()

	v, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	// Opening rent periods is legal from unlisted or forRent only. The state
	// is read under the lock, so it cannot move before the transition below
	// and an illegal call has no side effects.
	if !lifecycle.CanTransition(v.State, lifecycle.StateForRent) {
		return nil, lifecycle.ErrIllegalTransition
	}

	stored, err := s.repo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	set := NewSet(vehicleID, stored)

	diff, err := reconcileSet(set, target, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	if !diff.Empty() {
		if err := s.repo.ApplyDiff(ctx, vehicleID, diff); err != nil {
			return nil, err
		}
		s.InvalidateAvailability(ctx, vehicleID)
	}

	if _, err := s.vehicles.TransitionState(ctx, vehicleID, lifecycle.StateForRent); err != nil {
		return nil, err
	}

	return set.Items(), nil
}

// reconcileSet computes and applies the target list against the set,
// returning the resulting diff. The set is mutated only on success of each
// sub-operation; the first failure aborts the whole call, and since the diff
// is persisted afterwards as one unit the stored state never sees a partial
// application.
func reconcileSet(set *Set, target []PeriodInput, now time.Time) (Diff, error) {
	var diff Diff

	targetByID := make(map[string]PeriodInput)
	for _, in := range target {
		if in.ID != "" {
			targetByID[in.ID] = in
		}
	}

	// Stored periods missing from the target are removed. A booked period
	// blocks the whole call: its booking must be cancelled first.
	for _, iv := range append([]*Interval(nil), set.Items()...) {
		if _, keep := targetByID[iv.ID]; keep {
			continue
		}
		if err := set.Remove(iv.ID); err != nil {
			return Diff{}, err
		}
		diff.Delete = append(diff.Delete, iv.ID)
	}

	// Changed periods are re-validated as remove+add under the same ID.
	// All removals happen before any re-add so that two periods swapping
	// ranges within one call do not trip the overlap check on each other.
	type change struct {
		in       PeriodInput
		previous *Interval
	}
	var changed []change
	for _, in := range target {
		if in.ID == "" {
			continue
		}
		iv, ok := set.Get(in.ID)
		if !ok {
			return Diff{}, ErrNotFound
		}
		r, err := daterange.New(in.Start, in.End)
		if err != nil {
			return Diff{}, err
		}
		if iv.Range() == r && iv.PricePerDay == in.PricePerDay && iv.Description == in.Description {
			continue
		}
		changed = append(changed, change{in: in, previous: iv})
	}
	for _, ch := range changed {
		if err := set.Remove(ch.in.ID); err != nil {
			return Diff{}, err
		}
	}
	for _, ch := range changed {
		updated := &Interval{
			ID:          ch.in.ID,
			Start:       ch.in.Start,
			End:         ch.in.End,
			PricePerDay: ch.in.PricePerDay,
			Description: ch.in.Description,
			CreatedAt:   ch.previous.CreatedAt,
			UpdatedAt:   now,
		}
		if err := set.Add(updated); err != nil {
			return Diff{}, err
		}
		diff.Update = append(diff.Update, updated)
	}

	// Entries without an ID are new periods.
	for _, in := range target {
		if in.ID != "" {
			continue
		}
		created := &Interval{
			Start:       in.Start,
			End:         in.End,
			PricePerDay: in.PricePerDay,
			Description: in.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := set.Add(created); err != nil {
			return Diff{}, err
		}
		diff.Create = append(diff.Create, created)
	}

	return diff, nil
}

func (s *service) ListByVehicle(ctx context.Context, vehicleID string) ([]*Interval, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return s.repo.ListByVehicle(ctx, vehicleID)
}

func (s *service) Availability(ctx context.Context, vehicleID string, window daterange.Range) (map[string]Status, error) {
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	from := window.Start.Format(daterange.DayFormat)
	to := window.End.Format(daterange.DayFormat)
	if cached, ok := s.availCache.Get(ctx, vehicleID, from, to); ok {
		days := make(map[string]Status, len(cached))
		for k, v := range cached {
			days[k] = Status(v)
		}
		return days, nil
	}

	set, err := s.LoadSet(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	days := set.DayStatus(window)

	raw := make(map[string]string, len(days))
	for k, v := range days {
		raw[k] = string(v)
	}
	s.availCache.Set(ctx, vehicleID, from, to, raw)

	return days, nil
}

func (s *service) LoadSet(ctx context.Context, vehicleID string) (*Set, error) {
	stored, err := s.repo.ListByVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	return NewSet(vehicleID, stored), nil
}

func (s *service) InvalidateAvailability(ctx context.Context, vehicleID string) {
	s.availCache.Invalidate(ctx, vehicleID)
}
