package http

import (
	"net/http"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/auth"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/booking"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/request"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	r, err := body.ParseRange()
	if err != nil {
		response.Error(c, err)
		return
	}

	customerID := auth.GetSubjectID(c)
	if customerID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Request(c.Request.Context(), booking.RequestInput{
		VehicleID:  body.VehicleID,
		CustomerID: customerID,
		Start:      r.Start,
		End:        r.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), uri.ID, auth.GetSubjectID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Customers only see their own bookings; employees see all.
	if auth.GetRole(c) != auth.RoleEmployee && b.CustomerID != auth.GetSubjectID(c) {
		response.Error(c, booking.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	bookings, total, err := h.service.ListByCustomer(c.Request.Context(), auth.GetSubjectID(c), params.Page, params.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	resp := response.NewPageResponse(items, params.Page, params.PageSize, total)
	c.JSON(http.StatusOK, resp)
}
