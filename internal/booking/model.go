package booking

import (
	"net/http"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "booking not found")
	ErrVehicleNotFound   = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrStartDatePast     = apperror.New(http.StatusBadRequest, "start date is in the past")
	ErrVehicleNotForRent = apperror.New(http.StatusConflict, "vehicle is not listed for rent")
	ErrUnavailable       = apperror.New(http.StatusConflict, "requested dates are not available")
	ErrDuplicateBooking  = apperror.New(http.StatusConflict, "you already have an active booking for this vehicle")
	ErrPermissionDenied  = apperror.New(http.StatusForbidden, "permission denied")
	ErrBusy              = apperror.NewRetryable(http.StatusServiceUnavailable, "vehicle is busy, retry shortly")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

type Booking struct {
	ID         string
	VehicleID  string
	CustomerID string
	Start      time.Time
	End        time.Time
	TotalPrice float64
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
