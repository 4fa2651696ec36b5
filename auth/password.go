package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/mail"
	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

type forgotPasswordBody struct {
	Email string `json:"email" binding:"required,email"`
}

type resetPasswordBody struct {
	Email       string `json:"email" binding:"required,email"`
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// POST /api/v1/auth/password/forgot
//
// Same non-disclosure rule as the OTP request: unknown addresses get the
// same answer, they just never receive mail.
func ForgotPassword(db *gorm.DB, mailer *mail.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req forgotPasswordBody
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, "A valid email is required", web.CodeInvalidInput)
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		var count int64
		if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to check account", web.CodeInternal)
			return
		}
		if count > 0 {
			code, err := createOTP(db, email, models.OTPPurposeReset)
			if err != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to create code", web.CodeInternal)
				return
			}
			if err := mailer.SendPasswordReset(email, code); err != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to send code", web.CodeInternal)
				return
			}
		}

		web.Data(c, http.StatusOK, gin.H{"message": "If the address is valid, a reset code has been sent"})
	}
}

// POST /api/v1/auth/password/reset
func ResetPassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req resetPasswordBody
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, "email, code and new_password are required", web.CodeInvalidInput)
			return
		}
		if !otpPattern.MatchString(req.Code) {
			web.Error(c, http.StatusBadRequest, "Code must be 6 digits", web.CodeInvalidOTP)
			return
		}
		if !ValidPassword(req.NewPassword) {
			web.Error(c, http.StatusBadRequest,
				"Password must be at least 8 characters and contain a letter and a digit", web.CodeWeakPassword)
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		if msg, ok := verifyOTP(db, email, models.OTPPurposeReset, req.Code); !ok {
			web.Error(c, http.StatusUnauthorized, msg, web.CodeInvalidOTP)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to reset password", web.CodeInternal)
			return
		}
		if err := db.Model(&models.User{}).Where("email = ?", email).
			Update("password_hash", string(hash)).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to reset password", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{"message": "Password updated, you can sign in now"})
	}
}
