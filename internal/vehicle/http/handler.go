package http

import (
	"errors"
	"net/http"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/interval"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/request"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/response"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/sale"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/vehicle"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service   vehicle.Service
	intervals interval.Service
	sales     sale.Service
}

func NewHandler(service vehicle.Service, intervals interval.Service, sales sale.Service) *Handler {
	return &Handler{
		service:   service,
		intervals: intervals,
		sales:     sales,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateVehicleRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	v, err := h.service.Create(c.Request.Context(), vehicle.CreateRequest{
		Name:      body.Name,
		Brand:     body.Brand,
		Model:     body.Model,
		SubModel:  body.SubModel,
		Year:      body.Year,
		Mileage:   body.Mileage,
		Condition: body.Condition,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewVehicleResponse(v))
}

func (h *Handler) List(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	vehicles, total, err := h.service.List(c.Request.Context(), params.Page, params.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]VehicleResponse, len(vehicles))
	for i, v := range vehicles {
		items[i] = NewVehicleResponse(v)
	}

	resp := response.NewPageResponse(items, params.Page, params.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	v, err := h.service.GetByID(ctx, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	periods, err := h.intervals.ListByVehicle(ctx, uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	listing, err := h.sales.GetActiveByVehicle(ctx, uri.ID)
	if err != nil && !errors.Is(err, sale.ErrNotFound) {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewVehicleDetailResponse(v, periods, listing))
}
