package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maisonlux/storefront-api/auth"
	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// ValidateToken authenticates a request from the accessToken cookie or
// an Authorization bearer header and stores user_id, email and roles in
// the gin context.
func ValidateToken(c *gin.Context) {
	tokenString, _ := c.Cookie(auth.AccessCookie)
	if tokenString == "" {
		header := c.GetHeader("Authorization")
		tokenString = strings.TrimPrefix(header, "Bearer ")
	}
	if tokenString == "" {
		web.AbortError(c, http.StatusUnauthorized, "Authentication required", web.CodeUnauthorized)
		return
	}

	claims, err := auth.ParseToken(tokenString)
	if err != nil || claims["typ"] != auth.TokenTypeAccess {
		web.AbortError(c, http.StatusUnauthorized, "Invalid or expired token", web.CodeUnauthorized)
		return
	}

	c.Set("user_id", claims["user_id"])
	c.Set("email", claims["email"])
	c.Set("roles", auth.RolesFromClaims(claims))

	c.Next()
}

// RequireAdmin gates a route on the ADMIN role. Must run after
// ValidateToken.
func RequireAdmin(c *gin.Context) {
	rolesVal, exists := c.Get("roles")
	if !exists {
		web.AbortError(c, http.StatusUnauthorized, "Authentication required", web.CodeUnauthorized)
		return
	}
	roles, _ := rolesVal.([]string)
	for _, r := range roles {
		if r == models.RoleAdmin {
			c.Next()
			return
		}
	}
	web.AbortError(c, http.StatusForbidden, "Admin access required", web.CodeForbidden)
}
