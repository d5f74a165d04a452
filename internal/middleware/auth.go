package middleware

import (
	"net/http"
	"strings"

	"github.com/DhavalSuthar-24/cricketclub/internal/common"
	"github.com/DhavalSuthar-24/cricketclub/pkg/token"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores its user ID and role
// claims in the context. Tokens are issued by the club's auth service; only
// the shared secret is needed here.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		c.Set(common.ContextUserIDKey, claims.UserID)
		c.Set(common.ContextRoleKey, claims.Role)
		c.Next()
	}
}
