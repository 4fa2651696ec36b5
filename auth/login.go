package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	GuestID    string `json:"guest_id"`
}

// POST /api/v1/auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, "identifier and password are required", web.CodeInvalidInput)
			return
		}

		var user models.User
		if err := db.Preload("Roles").Where("email = ?", req.Identifier).First(&user).Error; err != nil {
			web.Error(c, http.StatusUnauthorized, "Invalid email or password", web.CodeInvalidCredentials)
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			web.Error(c, http.StatusUnauthorized, "Invalid email or password", web.CodeInvalidCredentials)
			return
		}

		// Merge guest cart → user cart before the client refetches.
		mergeStatus := "no-guest-cart"
		if req.GuestID != "" {
			merged, err := MergeGuestCartIntoUserCart(db, req.GuestID, user.ID)
			if err != nil {
				mergeStatus = "merge-failed"
			} else if merged {
				mergeStatus = "merged-success"
			} else {
				mergeStatus = "guest-cart-empty"
			}
		}

		access, err := issueAuthPair(c, &user)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Token generation failed", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{
			"user":         user,
			"roles":        user.RoleNames(),
			"access_token": access,
			"merge_status": mergeStatus,
		})
	}
}

// POST /api/v1/auth/refresh
func Refresh(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(RefreshCookie)
		if err != nil || cookie == "" {
			web.Error(c, http.StatusUnauthorized, "Missing refresh token", web.CodeUnauthorized)
			return
		}
		claims, err := ParseToken(cookie)
		if err != nil || claims["typ"] != TokenTypeRefresh {
			web.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token", web.CodeUnauthorized)
			return
		}
		userID, _ := claims["user_id"].(string)

		var user models.User
		if err := db.Preload("Roles").First(&user, "id = ?", userID).Error; err != nil {
			web.Error(c, http.StatusUnauthorized, "Unknown user", web.CodeUnauthorized)
			return
		}

		access, err := issueAuthPair(c, &user)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Token generation failed", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{
			"user":         user,
			"roles":        user.RoleNames(),
			"access_token": access,
		})
	}
}

// POST /api/v1/auth/logout
//
// Cookies are cleared no matter what: a stale or invalid token must not
// leave the browser logged in.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ClearAuthCookies(c)
		web.Data(c, http.StatusOK, gin.H{"message": "Logged out"})
	}
}
