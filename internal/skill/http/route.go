package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	// Public catalog
	g.GET("/skills", h.List)

	// Own profile skills
	mine := g.Group("/me/skills")
	mine.Use(authMiddleware)
	{
		mine.GET("", h.ListMine)
		mine.POST("", h.Link)
		mine.DELETE("/:id", h.Unlink)
	}
}
