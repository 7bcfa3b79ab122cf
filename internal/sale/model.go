package sale

import (
	"net/http"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/apperror"
)

var (
	ErrNotFound             = apperror.New(http.StatusNotFound, "sale listing not found")
	ErrVehicleNotFound      = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrAlreadyListed        = apperror.New(http.StatusConflict, "vehicle is already listed")
	ErrNotActive            = apperror.New(http.StatusConflict, "sale listing is not active")
	ErrDuplicateReservation = apperror.New(http.StatusConflict, "an active reservation for this listing already exists")
	ErrUnderContract        = apperror.New(http.StatusConflict, "sale listing is under contract")
	ErrBusy                 = apperror.NewRetryable(http.StatusServiceUnavailable, "vehicle is busy, retry shortly")
)

type ListingStatus string

const (
	ListingActive    ListingStatus = "active"
	ListingWithdrawn ListingStatus = "withdrawn"
	ListingSold      ListingStatus = "sold"
)

type Listing struct {
	ID          string
	VehicleID   string
	EmployeeID  string
	Price       float64
	Description string
	Status      ListingStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCancelled ReservationStatus = "cancelled"
)

// Reservation is a customer's declared intent to buy a listed vehicle. The
// employee picks one reservation when starting the purchase contract.
type Reservation struct {
	ID         string
	ListingID  string
	CustomerID string
	Status     ReservationStatus
	CreatedAt  time.Time
}
