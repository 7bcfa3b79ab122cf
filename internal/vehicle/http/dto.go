package http

import (
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/interval"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/sale"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/vehicle"
)

type CreateVehicleRequest struct {
	Name      string `json:"name" binding:"required"`
	Brand     string `json:"brand" binding:"required"`
	Model     string `json:"model" binding:"required"`
	SubModel  string `json:"sub_model"`
	Year      int    `json:"year" binding:"required,gte=1950"`
	Mileage   int    `json:"mileage" binding:"gte=0"`
	Condition string `json:"condition"`
}

type VehicleResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Brand     string    `json:"brand"`
	Model     string    `json:"model"`
	SubModel  string    `json:"sub_model,omitempty"`
	Year      int       `json:"year"`
	Mileage   int       `json:"mileage"`
	Condition string    `json:"condition,omitempty"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewVehicleResponse(v *vehicle.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:        v.ID,
		Name:      v.Name,
		Brand:     v.Brand,
		Model:     v.Model,
		SubModel:  v.SubModel,
		Year:      v.Year,
		Mileage:   v.Mileage,
		Condition: v.Condition,
		State:     string(v.State),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

type RentPeriodTag struct {
	ID        string  `json:"id"`
	OpenDate  string  `json:"open_date"`
	CloseDate string  `json:"close_date"`
	RentPrice float64 `json:"rent_price"`
	Status    string  `json:"status"`
}

type SaleListingTag struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

// VehicleDetailResponse is the storefront view of one vehicle: its listing
// state plus whatever rent periods or sale listing it carries.
type VehicleDetailResponse struct {
	VehicleResponse
	RentPeriods []RentPeriodTag `json:"rent_periods,omitempty"`
	SaleListing *SaleListingTag `json:"sale_listing,omitempty"`
}

func NewVehicleDetailResponse(v *vehicle.Vehicle, periods []*interval.Interval, listing *sale.Listing) VehicleDetailResponse {
	resp := VehicleDetailResponse{VehicleResponse: NewVehicleResponse(v)}
	for _, iv := range periods {
		resp.RentPeriods = append(resp.RentPeriods, RentPeriodTag{
			ID:        iv.ID,
			OpenDate:  iv.Start.Format(daterange.DayFormat),
			CloseDate: iv.End.Format(daterange.DayFormat),
			RentPrice: iv.PricePerDay,
			Status:    string(iv.Status),
		})
	}
	if listing != nil {
		resp.SaleListing = &SaleListingTag{ID: listing.ID, Price: listing.Price}
	}
	return resp
}
