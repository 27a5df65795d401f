package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TenantGuard returns middleware that rejects requests whose token carries no
// tenant. It relies on AuthMiddleware having already stored the claims.
func TenantGuard() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok || claims.TenantID == uuid.Nil {
			abortUnauthorized(c, "tenant context required")
			return
		}
		c.Next()
	}
}
