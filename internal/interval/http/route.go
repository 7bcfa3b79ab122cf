package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, employeeOnly gin.HandlerFunc) {
	group := g.Group("/vehicles/:id")

	// === Public Routes ===
	group.GET("/availability", h.Availability)
	group.GET("/rent-periods", h.ListRentPeriods)

	// === Employee Routes ===
	group.Use(authMiddleware, employeeOnly)
	{
		group.PUT("/rent-periods", h.PutRentPeriods)
	}
}
