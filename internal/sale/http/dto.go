package http

import (
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/sale"
)

type CreateListingRequest struct {
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
}

type UpdateListingRequest struct {
	Price       float64 `json:"price" binding:"required,gt=0"`
	Description string  `json:"description"`
}

type ListingResponse struct {
	ID          string    `json:"id"`
	VehicleID   string    `json:"vehicle_id"`
	EmployeeID  string    `json:"employee_id"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewListingResponse(l *sale.Listing) ListingResponse {
	return ListingResponse{
		ID:          l.ID,
		VehicleID:   l.VehicleID,
		EmployeeID:  l.EmployeeID,
		Price:       l.Price,
		Description: l.Description,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

type ReservationResponse struct {
	ID         string    `json:"id"`
	ListingID  string    `json:"listing_id"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReservationResponse(res *sale.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:         res.ID,
		ListingID:  res.ListingID,
		CustomerID: res.CustomerID,
		Status:     string(res.Status),
		CreatedAt:  res.CreatedAt,
	}
}
