package auth

import (
	"net/http"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
	GuestID  string `json:"guest_id"`
}

// ValidPassword enforces the signup complexity rule: at least 8
// characters with at least one letter and one digit.
func ValidPassword(pw string) bool {
	if len(pw) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// POST /api/v1/auth/register
//
// Two entry paths share this handler: plain email+password signup, and
// completion of an OTP signup where the email comes from the
// registerToken cookie and arrives pre-verified.
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, "name and password are required", web.CodeInvalidInput)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))
		verified := false
		if cookie, err := c.Cookie(RegisterCookie); err == nil && cookie != "" {
			claims, err := ParseToken(cookie)
			if err == nil && claims["typ"] == TokenTypeRegister {
				if claimEmail, _ := claims["email"].(string); claimEmail != "" {
					email = claimEmail
					verified = true
				}
			}
		}
		if email == "" {
			web.Error(c, http.StatusBadRequest, "email is required", web.CodeInvalidInput)
			return
		}
		if !ValidPassword(req.Password) {
			web.Error(c, http.StatusBadRequest,
				"Password must be at least 8 characters and contain a letter and a digit", web.CodeWeakPassword)
			return
		}

		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to check account", web.CodeInternal)
			return
		}
		if count > 0 {
			web.Error(c, http.StatusConflict, "An account with this email already exists", web.CodeEmailTaken)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to create account", web.CodeInternal)
			return
		}

		user := models.User{
			ID:            uuid.NewString(),
			Email:         email,
			PasswordHash:  string(hash),
			Name:          req.Name,
			EmailVerified: verified,
			Roles:         []models.UserRole{{Name: models.RoleCustomer}},
			Cart:          models.Cart{},
		}
		if err := db.Create(&user).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to create account", web.CodeInternal)
			return
		}

		if req.GuestID != "" {
			_, _ = MergeGuestCartIntoUserCart(db, req.GuestID, user.ID)
		}

		access, err := issueAuthPair(c, &user)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Token generation failed", web.CodeInternal)
			return
		}
		// Registration token is single-use.
		c.SetCookie(RegisterCookie, "", -1, "/", "", secureCookies(), true)

		web.Data(c, http.StatusCreated, gin.H{
			"user":         user,
			"roles":        user.RoleNames(),
			"access_token": access,
		})
	}
}
