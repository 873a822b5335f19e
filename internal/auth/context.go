package auth

import "github.com/gin-gonic/gin"

// Gin context keys set by AuthRequired. Namespaced so handler code cannot
// collide with them by accident.
const (
	ctxUserIDKey = "auth.userID"
	ctxEmailKey  = "auth.userEmail"
)

// GetUserID returns the authenticated user's id, or "" on an
// unauthenticated request.
func GetUserID(c *gin.Context) string {
	return c.GetString(ctxUserIDKey)
}

// GetUserEmail returns the authenticated user's email, or "".
func GetUserEmail(c *gin.Context) string {
	return c.GetString(ctxEmailKey)
}
