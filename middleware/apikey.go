package middleware

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/maisonlux/storefront-api/web"
)

// ValidateAPIKey protects the admin console surface with a shared
// X-API-KEY header, checked against ADMIN_API_KEY.
func ValidateAPIKey(c *gin.Context) {
	apiKey := c.GetHeader("X-API-KEY")
	if apiKey == "" || apiKey != os.Getenv("ADMIN_API_KEY") {
		web.AbortError(c, http.StatusUnauthorized, "Invalid or missing API key", web.CodeUnauthorized)
		return
	}
	c.Next()
}
