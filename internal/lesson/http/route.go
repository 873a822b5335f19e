package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	lessons := g.Group("/lessons")
	lessons.Use(authMiddleware)
	{
		lessons.POST("", h.Reserve)
		lessons.GET("", h.List)
		lessons.GET("/:id", h.Get)
		lessons.POST("/:id/confirm", h.Confirm)
		lessons.POST("/:id/cancel", h.Cancel)
	}
}
