package contract

import (
	"net/http"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "contract not found")
	ErrVehicleNotFound  = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrBookingMismatch  = apperror.New(http.StatusConflict, "booking does not match the contract request")
	ErrListingMismatch  = apperror.New(http.StatusConflict, "sale listing does not match the contract request")
	ErrPaymentPending   = apperror.New(http.StatusConflict, "a payment is already awaiting a decision")
	ErrNoReservation    = apperror.New(http.StatusConflict, "customer has no reservation on this listing")
	ErrNotOpen          = apperror.New(http.StatusConflict, "contract is not open for payment")
	ErrNoPendingPayment = apperror.New(http.StatusConflict, "no payment is awaiting a decision")
	ErrBusy             = apperror.NewRetryable(http.StatusServiceUnavailable, "vehicle is busy, retry shortly")
)

type Kind string

const (
	KindRent Kind = "rent"
	KindSale Kind = "sale"
)

type Status string

const (
	StatusOpen     Status = "open"
	StatusRejected Status = "rejected"
	StatusPaid     Status = "paid"
)

type Contract struct {
	ID            string
	VehicleID     string
	CustomerID    string
	EmployeeID    string
	Kind          Kind
	BookingID     string // set when Kind is rent
	SaleListingID string // set when Kind is sale
	Amount        float64
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type PaymentStatus string

const (
	PaymentChecking PaymentStatus = "checking"
	PaymentApproved PaymentStatus = "approved"
	PaymentRejected PaymentStatus = "rejected"
)

// Payment is one proof-of-payment submission for a contract. A rejected
// payment leaves the contract open for another submission.
type Payment struct {
	ID         string
	ContractID string
	Amount     float64
	Method     string
	ProofPath  string
	Status     PaymentStatus
	CreatedAt  time.Time
	DecidedAt  *time.Time
}
