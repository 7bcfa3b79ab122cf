package interval_test

import (
	"context"
	"testing"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/interval"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/lifecycle"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/keylock"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/vehicle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServiceFixture(t *testing.T) (interval.Service, vehicle.Service, *keylock.Registry, string) {
	t.Helper()

	vehicles := vehicle.NewService(vehicle.NewMemoryRepository())
	locks := keylock.NewRegistry()
	intervals := interval.NewService(interval.NewMemoryRepository(), vehicles, locks, 200*time.Millisecond, nil)

	v, err := vehicles.Create(context.Background(), vehicle.CreateRequest{
		Name: "Jazz", Brand: "Honda", Model: "Jazz", Year: 2020,
	})
	require.NoError(t, err)

	return intervals, vehicles, locks, v.ID
}

func parseDay(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(daterange.DayFormat, s)
	require.NoError(t, err)
	return d
}

func TestReconcileChecksStateUnderLock(t *testing.T) {
	intervals, vehicles, locks, vehicleID := newServiceFixture(t)
	ctx := context.Background()

	target := []interval.PeriodInput{
		{Start: parseDay(t, "2030-06-01"), End: parseDay(t, "2030-06-30"), PricePerDay: 600},
	}

	// Hold the vehicle's lock and list it for sale, as a concurrent sale
	// listing would. The reconcile must not act on a state read before that
	// transition: it validates only once the lock is held, so it reports
	// busy while the lock is taken.
	release, err := locks.Acquire(ctx, vehicleID)
	require.NoError(t, err)

	_, err = vehicles.TransitionState(ctx, vehicleID, lifecycle.StateForSale)
	require.NoError(t, err)

	_, err = intervals.Reconcile(ctx, vehicleID, target)
	assert.ErrorIs(t, err, interval.ErrBusy)

	release()

	// With the lock free the reconcile sees the forSale state, rejects the
	// call, and persists nothing.
	_, err = intervals.Reconcile(ctx, vehicleID, target)
	assert.ErrorIs(t, err, lifecycle.ErrIllegalTransition)

	stored, err := intervals.ListByVehicle(ctx, vehicleID)
	require.NoError(t, err)
	assert.Empty(t, stored)

	v, err := vehicles.GetByID(ctx, vehicleID)
	require.NoError(t, err)
	assert.Equal(t, lifecycle.StateForSale, v.State)
}
