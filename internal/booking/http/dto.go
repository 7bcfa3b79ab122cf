package http

import (
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/booking"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
)

type CreateBookingRequest struct {
	VehicleID string `json:"vehicle_id" binding:"required,uuid"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// ParseRange parses the day strings; malformed dates and reversed ranges are
// both reported as an invalid range.
func (r *CreateBookingRequest) ParseRange() (daterange.Range, error) {
	start, err := time.Parse(daterange.DayFormat, r.StartDate)
	if err != nil {
		return daterange.Range{}, daterange.ErrInvalidRange
	}
	end, err := time.Parse(daterange.DayFormat, r.EndDate)
	if err != nil {
		return daterange.Range{}, daterange.ErrInvalidRange
	}
	return daterange.New(start, end)
}

type BookingResponse struct {
	ID         string    `json:"id"`
	VehicleID  string    `json:"vehicle_id"`
	CustomerID string    `json:"customer_id"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	TotalPrice float64   `json:"total_price"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		VehicleID:  b.VehicleID,
		CustomerID: b.CustomerID,
		StartDate:  b.Start.Format(daterange.DayFormat),
		EndDate:    b.End.Format(daterange.DayFormat),
		TotalPrice: b.TotalPrice,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
