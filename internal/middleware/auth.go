package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"juaconnect_backend/internal/auth"
	"juaconnect_backend/internal/logger"
	"juaconnect_backend/internal/models"
	"juaconnect_backend/pkg/contextkeys"
)

const (
	userIDKey = string(contextkeys.UserIDKey)
	roleKey   = string(contextkeys.RoleKey)
)

// AuthMiddleware validates the bearer token and stashes the caller's id
// and role for the handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header missing or invalid",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid or expired token",
			})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRoles rejects callers whose role is not in the allowed set.
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool)
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		role := GetUserRole(c)
		if role == "" || !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "Access denied: insufficient permissions",
			})
			return
		}
		c.Next()
	}
}

// GetUserID extracts the authenticated user's id; empty when the request
// skipped AuthMiddleware.
func GetUserID(c *gin.Context) string {
	v, exists := c.Get(userIDKey)
	if !exists {
		return ""
	}
	id, ok := v.(string)
	if !ok {
		return ""
	}
	return id
}

func GetUserRole(c *gin.Context) models.UserRole {
	v, exists := c.Get(roleKey)
	if !exists {
		return ""
	}
	switch role := v.(type) {
	case models.UserRole:
		return role
	case string:
		return models.UserRole(role)
	default:
		return ""
	}
}
