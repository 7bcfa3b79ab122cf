package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, employeeOnly gin.HandlerFunc) {
	vehicles := g.Group("/vehicles/:id/sale-listing")
	{
		vehicles.GET("", h.GetByVehicle)
		vehicles.POST("", authMiddleware, employeeOnly, h.Create)
		vehicles.PATCH("", authMiddleware, employeeOnly, h.Update)
		vehicles.DELETE("", authMiddleware, employeeOnly, h.Withdraw)
	}

	listings := g.Group("/sale-listings/:id")
	listings.Use(authMiddleware)
	{
		listings.POST("/reservations", h.Reserve)
		listings.GET("/reservations", employeeOnly, h.ListReservations)
	}
}
