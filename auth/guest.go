package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// POST /api/v1/auth/guest
//
// Anonymous sessions carry a short-lived guest token so visitors can
// build a cart before signing in.
func CreateGuestUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID := "guest_" + strings.ReplaceAll(uuid.NewString(), "-", "")

		guest := models.GuestUser{
			ID:        guestID,
			ExpiresAt: time.Now().Add(GuestTokenTTL),
		}
		if err := db.Create(&guest).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to create guest session", web.CodeInternal)
			return
		}

		token, err := IssueToken(TokenTypeGuest, guestID, "", nil, GuestTokenTTL)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Token generation failed", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{
			"guest_id":   guestID,
			"token":      token,
			"expires_at": guest.ExpiresAt,
		})
	}
}
