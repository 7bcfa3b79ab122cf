package http

import (
	"net/http"
	"time"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/interval"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/daterange"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/request"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service interval.Service
}

func NewHandler(service interval.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Availability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var query AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	from, err := time.Parse(daterange.DayFormat, query.From)
	if err != nil {
		response.Error(c, daterange.ErrInvalidRange)
		return
	}
	to, err := time.Parse(daterange.DayFormat, query.To)
	if err != nil {
		response.Error(c, daterange.ErrInvalidRange)
		return
	}
	window, err := daterange.New(from, to)
	if err != nil {
		response.Error(c, err)
		return
	}

	days, err := h.service.Availability(c.Request.Context(), uri.ID, window)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := AvailabilityResponse{
		VehicleID: uri.ID,
		From:      window.Start.Format(daterange.DayFormat),
		To:        window.End.Format(daterange.DayFormat),
		Days:      make(map[string]string, len(days)),
	}
	for day, status := range days {
		resp.Days[day] = string(status)
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ListRentPeriods(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	periods, err := h.service.ListByVehicle(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RentPeriodResponse, len(periods))
	for i, iv := range periods {
		items[i] = NewRentPeriodResponse(iv)
	}

	c.JSON(http.StatusOK, gin.H{"periods": items})
}

func (h *Handler) PutRentPeriods(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body PutRentPeriodsRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	inputs, err := body.ToInputs()
	if err != nil {
		response.Error(c, err)
		return
	}

	periods, err := h.service.Reconcile(c.Request.Context(), uri.ID, inputs)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RentPeriodResponse, len(periods))
	for i, iv := range periods {
		items[i] = NewRentPeriodResponse(iv)
	}

	c.JSON(http.StatusOK, gin.H{"periods": items})
}
