package interval

import (
	"net/http"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/apperror"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
)

var (
	ErrNotFound        = apperror.New(http.StatusNotFound, "rent period not found")
	ErrVehicleNotFound = apperror.New(http.StatusNotFound, "vehicle not found")
	ErrOverlap         = apperror.New(http.StatusConflict, "rent period overlaps an existing period")
	ErrConflict        = apperror.New(http.StatusConflict, "rent period is booked")
	ErrUnavailable     = apperror.New(http.StatusConflict, "requested dates are not available")
	ErrBusy            = apperror.NewRetryable(http.StatusServiceUnavailable, "vehicle is busy, please retry")
)

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

// Interval is one contiguous inclusive range of calendar days a vehicle is
// open for rent, with a per-day price. A booked interval carries the ID of
// the booking that claimed it. Intervals belong to exactly one vehicle and
// never overlap another interval of the same vehicle, whatever its status.
type Interval struct {
	ID          string
	VehicleID   string
	Start       time.Time
	End         time.Time
	PricePerDay float64
	Status      Status
	BookingID   string // set only while Status is booked
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Range returns the interval's inclusive day range.
func (iv *Interval) Range() daterange.Range {
	return daterange.Range{Start: daterange.DayOf(iv.Start), End: daterange.DayOf(iv.End)}
}

// Diff is a batch of interval changes applied as a single unit:
// either every entry is applied or none are.
type Diff struct {
	Create []*Interval
	Update []*Interval
	Delete []string
}

// Empty reports whether the diff contains no changes.
func (d Diff) Empty() bool {
	return len(d.Create) == 0 && len(d.Update) == 0 && len(d.Delete) == 0
}
