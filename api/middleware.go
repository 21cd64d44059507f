package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/skyfarehq/skyfare/internal/domain"
	"github.com/skyfarehq/skyfare/internal/service/auth"
)

const (
	ctxUserID = "auth.user_id"
	ctxRole   = "auth.role"
)

// RequireAuth verifies the bearer token and stores the caller's identity
// on the request context.
func RequireAuth(service auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := service.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Set(ctxRole, domain.Role(claims.Role))
		c.Next()
	}
}

// RequireAdmin gates admin-only routes. Must run after RequireAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, role, ok := currentUser(c); !ok || role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) (uuid.UUID, domain.Role, bool) {
	idVal, ok := c.Get(ctxUserID)
	if !ok {
		return uuid.Nil, "", false
	}
	roleVal, ok := c.Get(ctxRole)
	if !ok {
		return uuid.Nil, "", false
	}
	id, ok := idVal.(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	role, ok := roleVal.(domain.Role)
	if !ok {
		return uuid.Nil, "", false
	}
	return id, role, true
}
