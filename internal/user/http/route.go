package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all user-related routes (including Auth).
func RegisterRoutes(g *gin.RouterGroup, h *UserHandler, authMiddleware gin.HandlerFunc) {
	// Public Routes
	authGroup := g.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// Authenticated Routes
	g.GET("/me", authMiddleware, h.Me)
	g.PATCH("/me", authMiddleware, h.UpdateMe)

	// Public tutor discovery
	tutors := g.Group("/tutors")
	{
		tutors.GET("", h.ListTutors)
		tutors.GET("/:id", h.GetTutor)
	}
}
