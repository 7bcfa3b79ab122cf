package http

import (
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/contract"
)

type StartContractRequest struct {
	VehicleID     string `json:"vehicle_id" binding:"required,uuid"`
	CustomerID    string `json:"customer_id" binding:"required"`
	Kind          string `json:"kind" binding:"required,oneof=rent sale"`
	BookingID     string `json:"booking_id" binding:"omitempty,uuid"`
	SaleListingID string `json:"sale_listing_id" binding:"omitempty,uuid"`
}

type DecidePaymentRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

type PaymentResponse struct {
	ID         string     `json:"id"`
	ContractID string     `json:"contract_id"`
	Amount     float64    `json:"amount"`
	Method     string     `json:"method,omitempty"`
	ProofPath  string     `json:"proof_path"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
}

func NewPaymentResponse(p *contract.Payment) PaymentResponse {
	return PaymentResponse{
		ID:         p.ID,
		ContractID: p.ContractID,
		Amount:     p.Amount,
		Method:     p.Method,
		ProofPath:  p.ProofPath,
		Status:     string(p.Status),
		CreatedAt:  p.CreatedAt,
		DecidedAt:  p.DecidedAt,
	}
}

type ContractResponse struct {
	ID            string            `json:"id"`
	VehicleID     string            `json:"vehicle_id"`
	CustomerID    string            `json:"customer_id"`
	EmployeeID    string            `json:"employee_id"`
	Kind          string            `json:"kind"`
	BookingID     string            `json:"booking_id,omitempty"`
	SaleListingID string            `json:"sale_listing_id,omitempty"`
	Amount        float64           `json:"amount"`
	Status        string            `json:"status"`
	Payments      []PaymentResponse `json:"payments,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

func NewContractResponse(c *contract.Contract, payments []*contract.Payment) ContractResponse {
	resp := ContractResponse{
		ID:            c.ID,
		VehicleID:     c.VehicleID,
		CustomerID:    c.CustomerID,
		EmployeeID:    c.EmployeeID,
		Kind:          string(c.Kind),
		BookingID:     c.BookingID,
		SaleListingID: c.SaleListingID,
		Amount:        c.Amount,
		Status:        string(c.Status),
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, NewPaymentResponse(p))
	}
	return resp
}
