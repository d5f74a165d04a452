package common

import (
	"errors"

	"github.com/gin-gonic/gin"
)

const (
	// Context keys
	ContextUserIDKey = "userID"   // authenticated user ID from the bearer token
	ContextRoleKey   = "userRole" // role claim from the bearer token
)

// GetUserIDFromContext retrieves the authenticated user's ID from the Gin context.
func GetUserIDFromContext(c *gin.Context) (uint, error) {
	userIDInterface, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, errors.New("user ID not found in context")
	}
	userID, ok := userIDInterface.(uint)
	if !ok {
		return 0, errors.New("user ID in context is not of type uint")
	}
	return userID, nil
}

// GetRoleFromContext returns the role claim set by the auth middleware, or "".
func GetRoleFromContext(c *gin.Context) string {
	role, _ := c.Get(ContextRoleKey)
	s, _ := role.(string)
	return s
}
