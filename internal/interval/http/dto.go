package http

import (
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/interval"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
)

// RentPeriodBody is one desired period in a PUT rent-periods call. Entries
// with an ID refer to stored periods; entries without one are created.
type RentPeriodBody struct {
	ID          string  `json:"id" binding:"omitempty,uuid"`
	OpenDate    string  `json:"open_date" binding:"required"`
	CloseDate   string  `json:"close_date" binding:"required"`
	RentPrice   float64 `json:"rent_price" binding:"required,gt=0"`
	Description string  `json:"description"`
}

// PutRentPeriodsRequest carries the full desired period list; an empty list
// clears every (unbooked) period.
type PutRentPeriodsRequest struct {
	Periods []RentPeriodBody `json:"periods" binding:"omitempty,dive"`
}

// ToInputs parses the day strings into period inputs. A malformed date is an
// invalid range, same as a reversed one.
func (r *PutRentPeriodsRequest) ToInputs() ([]interval.PeriodInput, error) {
	inputs := make([]interval.PeriodInput, len(r.Periods))
	for i, p := range r.Periods {
		open, err := time.Parse(daterange.DayFormat, p.OpenDate)
		if err != nil {
			return nil, daterange.ErrInvalidRange
		}
		closed, err := time.Parse(daterange.DayFormat, p.CloseDate)
		if err != nil {
			return nil, daterange.ErrInvalidRange
		}
		inputs[i] = interval.PeriodInput{
			ID:          p.ID,
			Start:       open,
			End:         closed,
			PricePerDay: p.RentPrice,
			Description: p.Description,
		}
	}
	return inputs, nil
}

type AvailabilityQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}

type AvailabilityResponse struct {
	VehicleID string            `json:"vehicle_id"`
	From      string            `json:"from"`
	To        string            `json:"to"`
	Days      map[string]string `json:"days"`
}

type RentPeriodResponse struct {
	ID          string  `json:"id"`
	OpenDate    string  `json:"open_date"`
	CloseDate   string  `json:"close_date"`
	RentPrice   float64 `json:"rent_price"`
	Status      string  `json:"status"`
	BookingID   string  `json:"booking_id,omitempty"`
	Description string  `json:"description,omitempty"`
}

func NewRentPeriodResponse(iv *interval.Interval) RentPeriodResponse {
	return RentPeriodResponse{
		ID:          iv.ID,
		OpenDate:    iv.Start.Format(daterange.DayFormat),
		CloseDate:   iv.End.Format(daterange.DayFormat),
		RentPrice:   iv.PricePerDay,
		Status:      string(iv.Status),
		BookingID:   iv.BookingID,
		Description: iv.Description,
	}
}
