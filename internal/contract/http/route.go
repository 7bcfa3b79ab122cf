package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, employeeOnly gin.HandlerFunc) {
	group := g.Group("/contracts")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", employeeOnly, h.Start)
		group.POST("/:id/proof", h.UploadProof)
		group.PATCH("/:id/payment", employeeOnly, h.DecidePayment)
	}
}
