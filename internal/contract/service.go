package contract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/booking"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/lifecycle"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/keylock"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/metrics"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/storage"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/sale"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/vehicle"
	"github.com/google/uuid"
)

type StartInput struct {
	VehicleID     string
	CustomerID    string
	EmployeeID    string
	Kind          Kind
	BookingID     string
	SaleListingID string
}

type Service interface {
	// Start opens a contract for a rented or reserved vehicle and moves the
	// vehicle under contract.
	Start(ctx context.Context, in StartInput) (*Contract, error)

	GetByID(ctx context.Context, id string) (*Contract, []*Payment, error)
	ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Contract, int, error)

	// UploadProof stores a payment slip for the contract and marks the
	// vehicle as awaiting a payment check. A rejected contract may upload
	// again.
	UploadProof(ctx context.Context, contractID, customerID, method string, content io.Reader) (*Payment, error)

	// DecidePayment settles the pending payment. Approval closes the
	// contract: a rent contract ends paid, a sale contract ends with the
	// vehicle sold. Rejection sends the contract back for another proof.
	DecidePayment(ctx context.Context, contractID string, approve bool) (*Payment, error)
}

type service struct {
	repo     Repository
	vehicles vehicle.Service
	bookings booking.Service
	sales    sale.Service
	locks    *keylock.Registry
	lockWait time.Duration
	files    storage.Storage
	slips    *storage.SlipProcessor
	notifier Notifier
}

func NewService(
	repo Repository,
	vehicles vehicle.Service,
	bookings booking.Service,
	sales sale.Service,
	locks *keylock.Registry,
	lockWait time.Duration,
	files storage.Storage,
	slips *storage.SlipProcessor,
	notifier Notifier,
) Service {
	return &service{
		repo:     repo,
		vehicles: vehicles,
		bookings: bookings,
		sales:    sales,
		locks:    locks,
		lockWait: lockWait,
		files:    files,
		slips:    slips,
		notifier: notifier,
	}
}

func (s *service) Start(ctx context.Context, in StartInput) (*Contract, error) {
	release, err := s.lockVehicle(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	defer release()

	v, err := s.vehicles.GetByID(ctx, in.VehicleID)
	if err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	if !lifecycle.CanTransition(v.State, lifecycle.StateUnderContract) {
		return nil, lifecycle.ErrIllegalTransition
	}

	c := &Contract{
		VehicleID:  in.VehicleID,
		CustomerID: in.CustomerID,
		EmployeeID: in.EmployeeID,
		Kind:       in.Kind,
		Status:     StatusOpen,
	}

	switch in.Kind {
	case KindRent:
		b, err := s.bookings.GetByID(ctx, in.BookingID)
		if err != nil {
			return nil, err
		}
		if b.VehicleID != in.VehicleID || b.CustomerID != in.CustomerID || b.Status != booking.StatusActive {
			return nil, ErrBookingMismatch
		}
		c.BookingID = b.ID
		c.Amount = b.TotalPrice

	case KindSale:
		l, err := s.sales.GetByID(ctx, in.SaleListingID)
		if err != nil {
			return nil, err
		}
		if l.VehicleID != in.VehicleID || l.Status != sale.ListingActive {
			return nil, ErrListingMismatch
		}
		reserved, err := s.sales.HasActiveReservation(ctx, l.ID, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if !reserved {
			return nil, ErrNoReservation
		}
		c.SaleListingID = l.ID
		c.Amount = l.Price

	default:
		return nil, ErrBookingMismatch
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	if _, err := s.vehicles.TransitionState(ctx, in.VehicleID, lifecycle.StateUnderContract); err != nil {
		return nil, err
	}

	s.notifier.ContractOpened(ctx, c)
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Contract, []*Payment, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	payments, err := s.repo.ListPayments(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return c, payments, nil
}

func (s *service) ListByCustomer(ctx context.Context, customerID string, page, pageSize int) ([]*Contract, int, error) {
	return s.repo.ListByCustomer(ctx, customerID, page, pageSize)
}

func (s *service) UploadProof(ctx context.Context, contractID, customerID, method string, content io.Reader) (*Payment, error) {
	c, err := s.repo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if c.CustomerID != customerID {
		return nil, ErrNotFound
	}
	if c.Status == StatusPaid {
		return nil, ErrNotOpen
	}

	release, err := s.lockVehicle(ctx, c.VehicleID)
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := s.repo.GetPendingPayment(ctx, contractID); err == nil {
		return nil, ErrPaymentPending
	} else if !errors.Is(err, ErrNoPendingPayment) {
		return nil, err
	}

	normalized, err := s.slips.Normalize(content)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("slips/sc_%s_%s.jpg", c.ID, uuid.NewString())
	if err := s.files.Save(ctx, path, normalized); err != nil {
		return nil, err
	}

	p := &Payment{
		ContractID: c.ID,
		Amount:     c.Amount,
		Method:     method,
		ProofPath:  path,
		Status:     PaymentChecking,
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}

	if c.Status == StatusRejected {
		if err := s.repo.UpdateStatus(ctx, c.ID, StatusOpen); err != nil {
			return nil, err
		}
	}
	if _, err := s.vehicles.TransitionState(ctx, c.VehicleID, lifecycle.StatePaymentPending); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) DecidePayment(ctx context.Context, contractID string, approve bool) (*Payment, error) {
	c, err := s.repo.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	release, err := s.lockVehicle(ctx, c.VehicleID)
	if err != nil {
		return nil, err
	}
	defer release()

	p, err := s.repo.GetPendingPayment(ctx, contractID)
	if err != nil {
		return nil, err
	}

	if approve {
		if err := s.repo.DecidePayment(ctx, p.ID, PaymentApproved); err != nil {
			return nil, err
		}
		if err := s.repo.UpdateStatus(ctx, c.ID, StatusPaid); err != nil {
			return nil, err
		}

		settled := lifecycle.StatePaid
		if c.Kind == KindSale {
			settled = lifecycle.StateSold
			if err := s.sales.MarkSold(ctx, c.SaleListingID); err != nil {
				return nil, err
			}
		}
		if _, err := s.vehicles.TransitionState(ctx, c.VehicleID, settled); err != nil {
			return nil, err
		}
		p.Status = PaymentApproved
		metrics.IncPaymentDecision("approved")
	} else {
		if err := s.repo.DecidePayment(ctx, p.ID, PaymentRejected); err != nil {
			return nil, err
		}
		if err := s.repo.UpdateStatus(ctx, c.ID, StatusRejected); err != nil {
			return nil, err
		}
		if _, err := s.vehicles.TransitionState(ctx, c.VehicleID, lifecycle.StateRejected); err != nil {
			return nil, err
		}
		p.Status = PaymentRejected
		metrics.IncPaymentDecision("rejected")
	}

	now := time.Now()
	p.DecidedAt = &now
	s.notifier.PaymentDecided(ctx, c, p)
	return p, nil
}

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
