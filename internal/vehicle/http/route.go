package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc, employeeOnly gin.HandlerFunc) {
	group := g.Group("/vehicles")

	// === Public Routes ===
	group.GET("", h.List)
	group.GET("/:id", h.Get)

	// === Employee Routes ===
	group.POST("", authMiddleware, employeeOnly, h.Create)
}
