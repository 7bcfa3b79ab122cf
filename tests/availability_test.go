package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailabilityWindow(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)
	s.openRentPeriods(t, vehicleID,
		periodBody{OpenDate: "2030-05-01", CloseDate: "2030-05-10", RentPrice: 900},
	)

	w := s.execute(http.MethodGet,
		fmt.Sprintf("/v1/vehicles/%s/availability?from=2030-04-29&to=2030-05-03", vehicleID), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		VehicleID string            `json:"vehicle_id"`
		Days      map[string]string `json:"days"`
	}
	decode(t, w, &resp)
	assert.Equal(t, vehicleID, resp.VehicleID)

	// Days outside any period are simply absent from the map.
	assert.NotContains(t, resp.Days, "2030-04-29")
	assert.NotContains(t, resp.Days, "2030-04-30")
	assert.Equal(t, "available", resp.Days["2030-05-01"])
	assert.Equal(t, "available", resp.Days["2030-05-03"])
}

func TestAvailabilityValidation(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)

	// Reversed window.
	w := s.execute(http.MethodGet,
		fmt.Sprintf("/v1/vehicles/%s/availability?from=2030-05-10&to=2030-05-01", vehicleID), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed date.
	w = s.execute(http.MethodGet,
		fmt.Sprintf("/v1/vehicles/%s/availability?from=yesterday&to=2030-05-01", vehicleID), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing query parameters.
	w = s.execute(http.MethodGet,
		fmt.Sprintf("/v1/vehicles/%s/availability", vehicleID), nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown vehicle.
	w = s.execute(http.MethodGet,
		"/v1/vehicles/0b7cbbcf-3e4a-4f6f-9a3d-111111111111/availability?from=2030-05-01&to=2030-05-03", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListRentPeriodsPublic(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)
	s.openRentPeriods(t, vehicleID,
		periodBody{OpenDate: "2030-05-01", CloseDate: "2030-05-10", RentPrice: 900},
		periodBody{OpenDate: "2030-06-01", CloseDate: "2030-06-10", RentPrice: 1100},
	)

	w := s.execute(http.MethodGet, fmt.Sprintf("/v1/vehicles/%s/rent-periods", vehicleID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Periods []periodBody `json:"periods"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Periods, 2)
	assert.Equal(t, "2030-05-01", resp.Periods[0].OpenDate)
	assert.Equal(t, float64(1100), resp.Periods[1].RentPrice)
}

func TestVehicleDetailShowsListings(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)
	s.openRentPeriods(t, vehicleID,
		periodBody{OpenDate: "2030-05-01", CloseDate: "2030-05-10", RentPrice: 900},
	)

	w := s.execute(http.MethodGet, "/v1/vehicles/"+vehicleID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		State       string       `json:"state"`
		RentPeriods []periodBody `json:"rent_periods"`
	}
	decode(t, w, &resp)
	assert.Equal(t, "forRent", resp.State)
	require.Len(t, resp.RentPeriods, 1)
}
