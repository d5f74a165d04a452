package rmiddleware

import (
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/cricketclub/internal/common"
	"github.com/gin-gonic/gin"
)

// Roles recognised by the scoring API.
const (
	RoleAdmin  = "admin"
	RoleScorer = "scorer"
)

// RoleMiddleware allows the request through when the role claim matches one
// of requiredRoles. It must run after middleware.AuthMiddleware.
func RoleMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := common.GetUserIDFromContext(c); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: " + err.Error()})
			return
		}

		userRole := common.GetRoleFromContext(c)
		for _, requiredRole := range requiredRoles {
			if strings.EqualFold(userRole, requiredRole) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "Forbidden",
			"message":   "You don't have permission to access this resource",
			"required":  requiredRoles,
			"user_role": userRole,
		})
	}
}

// AdminMiddleware is a convenience middleware for admin-only access
func AdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(RoleAdmin)
}

// ScorerOrAdminMiddleware gates every scoring write.
func ScorerOrAdminMiddleware() gin.HandlerFunc {
	return RoleMiddleware(RoleScorer, RoleAdmin)
}
