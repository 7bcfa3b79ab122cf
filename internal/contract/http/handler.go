package http

import (
	"net/http"

	"github.com/Sapatchanon-Kh/CarTentManagement/internal/auth"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/contract"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/request"
	"github.com/Sapatchanon-Kh/CarTentManagement/internal/pkg/response"
	"github.com/gin-gonic/gin"
)

const maxSlipSizeBytes = 10 << 20

type Handler struct {
	service contract.Service
}

func NewHandler(service contract.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Start(c *gin.Context) {
	var body StartContractRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	ct, err := h.service.Start(c.Request.Context(), contract.StartInput{
		VehicleID:     body.VehicleID,
		CustomerID:    body.CustomerID,
		EmployeeID:    auth.GetSubjectID(c),
		Kind:          contract.Kind(body.Kind),
		BookingID:     body.BookingID,
		SaleListingID: body.SaleListingID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewContractResponse(ct, nil))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	ct, payments, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Customers only see their own contracts; employees see all.
	if auth.GetRole(c) != auth.RoleEmployee && ct.CustomerID != auth.GetSubjectID(c) {
		response.Error(c, contract.ErrNotFound)
		return
	}

	c.JSON(http.StatusOK, NewContractResponse(ct, payments))
}

func (h *Handler) List(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	contracts, total, err := h.service.ListByCustomer(c.Request.Context(), auth.GetSubjectID(c), params.Page, params.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ContractResponse, len(contracts))
	for i, ct := range contracts {
		items[i] = NewContractResponse(ct, nil)
	}

	resp := response.NewPageResponse(items, params.Page, params.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UploadProof(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	fileHeader, err := c.FormFile("slip")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slip is required"})
		return
	}
	if fileHeader.Size > maxSlipSizeBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slip exceeds the size limit"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read slip"})
		return
	}
	defer f.Close()

	p, err := h.service.UploadProof(c.Request.Context(), uri.ID, auth.GetSubjectID(c), c.PostForm("method"), f)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewPaymentResponse(p))
}

func (h *Handler) DecidePayment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body DecidePaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.DecidePayment(c.Request.Context(), uri.ID, body.Decision == "approved")
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPaymentResponse(p))
}
