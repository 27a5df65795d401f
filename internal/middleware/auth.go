package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"auditdesk/internal/domain"
	"auditdesk/internal/service"
)

// ContextKeyClaims holds the validated token claims set by AuthMiddleware.
// Every identity accessor reads through it.
const ContextKeyClaims = "claims"

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   gin.H{"code": "UNAUTHORIZED", "message": message},
	})
}

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error":   gin.H{"code": "FORBIDDEN", "message": message},
	})
}

// AuthMiddleware returns Gin middleware that validates the bearer token and
// stores its claims for the identity accessors below.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == "" || token == header {
			abortUnauthorized(c, "missing or invalid authorization header")
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// CurrentClaims returns the validated claims stored by AuthMiddleware.
func CurrentClaims(c *gin.Context) (*service.Claims, bool) {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*service.Claims)
	return claims, ok
}

// RequireRole returns middleware that admits only the listed firm roles.
func RequireRole(roles ...domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok {
			abortForbidden(c, "role not found in context")
			return
		}

		for _, r := range roles {
			if claims.Role == r {
				c.Next()
				return
			}
		}
		abortForbidden(c, "insufficient permissions")
	}
}

// GetTenantID extracts the tenant ID from the validated claims.
func GetTenantID(c *gin.Context) (uuid.UUID, error) {
	claims, ok := CurrentClaims(c)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return claims.TenantID, nil
}

// GetUserID extracts the user ID from the validated claims.
func GetUserID(c *gin.Context) (uuid.UUID, error) {
	claims, ok := CurrentClaims(c)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return claims.UserID, nil
}

// GetRole extracts the user's firm role from the validated claims, or the
// empty string when no claims are stored.
func GetRole(c *gin.Context) string {
	claims, ok := CurrentClaims(c)
	if !ok {
		return ""
	}
	return string(claims.Role)
}
