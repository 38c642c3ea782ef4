package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/junaidrashid-git/storefront-api/auth"
	"github.com/junaidrashid-git/storefront-api/models"
)

const (
	userIDKey = "user_id"
	roleKey   = "role"
)

// ValidateToken reads the session token from the session cookie or the
// Authorization header and stores the caller's id and role in the context.
func ValidateToken(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, _ := c.Cookie(auth.CookieName)
		if tokenString == "" {
			tokenString = strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token is missing", "code": "unauthenticated"})
			return
		}

		claims, err := auth.ParseToken(secret, tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "code": "unauthenticated"})
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(roleKey, claims.Role)
		c.Next()
	}
}

// RequireRole lets through only callers whose token carries one of roles.
// Must run after ValidateToken.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, _ := c.Get(roleKey)
		for _, r := range roles {
			if role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied", "code": "forbidden"})
	}
}

// CurrentUserID returns the id stored by ValidateToken.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

func CurrentRole(c *gin.Context) models.Role {
	v, _ := c.Get(roleKey)
	role, _ := v.(models.Role)
	return role
}
