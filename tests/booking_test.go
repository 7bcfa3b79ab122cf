package tests

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingResponse struct {
	ID         string  `json:"id"`
	VehicleID  string  `json:"vehicle_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	TotalPrice float64 `json:"total_price"`
	Status     string  `json:"status"`
}

func TestBookingFlow(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)
	s.openRentPeriods(t, vehicleID,
		periodBody{OpenDate: "2030-07-01", CloseDate: "2030-07-31", RentPrice: 700},
	)

	alice := s.customerToken(t, "alice")
	bob := s.customerToken(t, "bob")

	// Alice books five days.
	w := s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-07-10",
		"end_date":   "2030-07-14",
	}, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var b bookingResponse
	decode(t, w, &b)
	assert.Equal(t, "active", b.Status)
	assert.Equal(t, float64(5*700), b.TotalPrice)

	// Bob cannot take an overlapping range.
	w = s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-07-12",
		"end_date":   "2030-07-16",
	}, bob)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Bob can book the free tail of the month.
	w = s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-07-20",
		"end_date":   "2030-07-22",
	}, bob)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// One active booking per customer per vehicle: Bob already holds the
	// tail, so even a completely free range is rejected for him.
	w = s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-07-25",
		"end_date":   "2030-07-27",
	}, bob)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The same applies to Alice asking again while her booking is active.
	w = s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-07-14",
		"end_date":   "2030-07-15",
	}, alice)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Alice cancels; the range opens up again and she may book anew.
	w = s.execute(http.MethodDelete, "/v1/bookings/"+b.ID, nil, alice)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var cancelled bookingResponse
	decode(t, w, &cancelled)
	assert.Equal(t, "cancelled", cancelled.Status)

	w = s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-07-12",
		"end_date":   "2030-07-16",
	}, alice)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestBookingValidation(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)
	s.openRentPeriods(t, vehicleID,
		periodBody{OpenDate: "2030-07-01", CloseDate: "2030-07-31", RentPrice: 700},
	)
	alice := s.customerToken(t, "alice")

	// No token.
	w := s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-07-10",
		"end_date":   "2030-07-14",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Reversed range.
	w = s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-07-14",
		"end_date":   "2030-07-10",
	}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Start date in the past.
	w = s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2020-01-10",
		"end_date":   "2020-01-14",
	}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Dates outside every rent period.
	w = s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-09-10",
		"end_date":   "2030-09-14",
	}, alice)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Unknown vehicle.
	w = s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": "0b7cbbcf-3e4a-4f6f-9a3d-111111111111",
		"start_date": "2030-07-10",
		"end_date":   "2030-07-14",
	}, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingAccess(t *testing.T) {
	s := newTestServer(t)
	vehicleID := s.createVehicle(t)
	s.openRentPeriods(t, vehicleID,
		periodBody{OpenDate: "2030-07-01", CloseDate: "2030-07-31", RentPrice: 700},
	)
	alice := s.customerToken(t, "alice")
	bob := s.customerToken(t, "bob")

	w := s.execute(http.MethodPost, "/v1/bookings", gin.H{
		"vehicle_id": vehicleID,
		"start_date": "2030-07-10",
		"end_date":   "2030-07-14",
	}, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	var b bookingResponse
	decode(t, w, &b)

	// Bob can neither see nor cancel Alice's booking.
	w = s.execute(http.MethodGet, "/v1/bookings/"+b.ID, nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.execute(http.MethodDelete, "/v1/bookings/"+b.ID, nil, bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// An employee can inspect it.
	w = s.execute(http.MethodGet, "/v1/bookings/"+b.ID, nil, s.employeeToken(t, "employee-1"))
	assert.Equal(t, http.StatusOK, w.Code)

	// Alice's booking list contains exactly her booking.
	w = s.execute(http.MethodGet, "/v1/bookings", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items []bookingResponse `json:"items"`
		Total int               `json:"total"`
	}
	decode(t, w, &page)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, b.ID, page.Items[0].ID)
}

func TestCancelUnknownBooking(t *testing.T) {
	s := newTestServer(t)
	alice := s.customerToken(t, "alice")

	w := s.execute(http.MethodDelete, "/v1/bookings/0b7cbbcf-3e4a-4f6f-9a3d-111111111111", nil, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
