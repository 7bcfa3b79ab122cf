package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentPeriodReconcile(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)

	stored := s.openRentPeriods(t, vehicleID,
		periodBody{OpenDate: "2030-08-01", CloseDate: "2030-08-10", RentPrice: 600},
		periodBody{OpenDate: "2030-08-15", CloseDate: "2030-08-20", RentPrice: 800},
	)
	require.Len(t, stored, 2)
	require.NotEmpty(t, stored[0].ID)

	// One submission that moves the first period, drops the second, and
	// opens a third.
	updated := s.openRentPeriods(t, vehicleID,
		periodBody{ID: stored[0].ID, OpenDate: "2030-08-02", CloseDate: "2030-08-08", RentPrice: 650},
		periodBody{OpenDate: "2030-09-01", CloseDate: "2030-09-05", RentPrice: 900},
	)
	require.Len(t, updated, 2)
	assert.Equal(t, stored[0].ID, updated[0].ID)
	assert.Equal(t, "2030-08-02", updated[0].OpenDate)
	assert.Equal(t, float64(650), updated[0].RentPrice)
	assert.Equal(t, "2030-09-01", updated[1].OpenDate)
}

func TestRentPeriodReconcileSwap(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)

	stored := s.openRentPeriods(t, vehicleID,
		periodBody{OpenDate: "2030-08-01", CloseDate: "2030-08-10", RentPrice: 600},
		periodBody{OpenDate: "2030-08-11", CloseDate: "2030-08-20", RentPrice: 800},
	)

	// The two periods trade ranges within one call.
	swapped := s.openRentPeriods(t, vehicleID,
		periodBody{ID: stored[0].ID, OpenDate: "2030-08-11", CloseDate: "2030-08-20", RentPrice: 600},
		periodBody{ID: stored[1].ID, OpenDate: "2030-08-01", CloseDate: "2030-08-10", RentPrice: 800},
	)
	require.Len(t, swapped, 2)
	assert.Equal(t, stored[1].ID, swapped[0].ID)
	assert.Equal(t, stored[0].ID, swapped[1].ID)
}

func TestRentPeriodReconcileRejectsOverlap(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)
	token := s.employeeToken(t, "employee-1")

	w := s.execute(http.MethodPut, fmt.Sprintf("/v1/vehicles/%s/rent-periods", vehicleID), gin.H{
		"periods": []periodBody{
			{OpenDate: "2030-08-01", CloseDate: "2030-08-10", RentPrice: 600},
			{OpenDate: "2030-08-10", CloseDate: "2030-08-20", RentPrice: 800},
		},
	}, token)
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// The failed call left nothing behind.
	w = s.execute(http.MethodGet, fmt.Sprintf("/v1/vehicles/%s/rent-periods", vehicleID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Periods []periodBody `json:"periods"`
	}
	decode(t, w, &resp)
	assert.Empty(t, resp.Periods)
}

func TestRentPeriodRemovalBlockedWhileBooked(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)
	s.openRentPeriods(t, vehicleID,
		periodBody{OpenDate: "2030-08-01", CloseDate: "2030-08-10", RentPrice: 600},
	)

	w := s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-08-03",
		"end_date":   "2030-08-05",
	}, s.customerToken(t, "alice"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var b bookingResponse
	decode(t, w, &b)

	// Submitting an empty target would remove the booked piece: rejected.
	w = s.execute(http.MethodPut, fmt.Sprintf("/v1/vehicles/%s/rent-periods", vehicleID),
		gin.H{"periods": []periodBody{}}, s.employeeToken(t, "employee-1"))
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	// After the booking is cancelled the same call goes through.
	w = s.execute(http.MethodDelete, "/v1/bookings/"+b.ID, nil, s.customerToken(t, "alice"))
	require.Equal(t, http.StatusOK, w.Code)

	w = s.execute(http.MethodPut, fmt.Sprintf("/v1/vehicles/%s/rent-periods", vehicleID),
		gin.H{"periods": []periodBody{}}, s.employeeToken(t, "employee-1"))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRentPeriodsRequireEmployee(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)

	w := s.execute(http.MethodPut, fmt.Sprintf("/v1/vehicles/%s/rent-periods", vehicleID), gin.H{
		"periods": []periodBody{
			{OpenDate: "2030-08-01", CloseDate: "2030-08-10", RentPrice: 600},
		},
	}, s.customerToken(t, "alice"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.execute(http.MethodPut, fmt.Sprintf("/v1/vehicles/%s/rent-periods", vehicleID), gin.H{
		"periods": []periodBody{
			{OpenDate: "2030-08-01", CloseDate: "2030-08-10", RentPrice: 600},
		},
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
