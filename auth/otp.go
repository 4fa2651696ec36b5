package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/mail"
	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// OTPTTL is how long an emailed code stays valid.
const OTPTTL = 10 * time.Minute

var otpPattern = regexp.MustCompile(`^[0-9]{6}$`)

type otpRequestBody struct {
	Email string `json:"email" binding:"required,email"`
}

type otpVerifyBody struct {
	Email   string `json:"email" binding:"required,email"`
	Code    string `json:"code" binding:"required"`
	GuestID string `json:"guest_id"`
}

// GenerateOTP returns a 6-digit numeric code from crypto/rand.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// createOTP replaces any active code for the email+purpose with a fresh
// bcrypt-hashed row and returns the plaintext for delivery.
func createOTP(db *gorm.DB, email string, purpose models.OTPPurpose) (string, error) {
	code, err := GenerateOTP()
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("email = ? AND purpose = ?", email, purpose).
			Delete(&models.OTPCode{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.OTPCode{
			Email:     email,
			Purpose:   purpose,
			CodeHash:  string(hash),
			ExpiresAt: time.Now().Add(OTPTTL),
		}).Error
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// verifyOTP checks a submitted code against the stored row, counting
// failed attempts and consuming the row on success.
func verifyOTP(db *gorm.DB, email string, purpose models.OTPPurpose, code string) (string, bool) {
	var row models.OTPCode
	if err := db.Where("email = ? AND purpose = ?", email, purpose).
		Order("created_at DESC").First(&row).Error; err != nil {
		return "Invalid or expired code", false
	}
	if !row.Usable(time.Now()) {
		return "Code has expired, request a new one", false
	}
	if err := bcrypt.CompareHashAndPassword([]byte(row.CodeHash), []byte(code)); err != nil {
		db.Model(&row).Update("attempts", gorm.Expr("attempts + 1"))
		return "Invalid or expired code", false
	}
	now := time.Now()
	db.Model(&row).Update("consumed_at", &now)
	return "", true
}

// POST /api/v1/auth/otp/request
//
// The response is identical whether or not an account exists; account
// existence only changes the verify step.
func RequestOTP(db *gorm.DB, mailer *mail.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req otpRequestBody
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, "A valid email is required", web.CodeInvalidInput)
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		code, err := createOTP(db, email, models.OTPPurposeLogin)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to create code", web.CodeInternal)
			return
		}
		if err := mailer.SendOTP(email, code); err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to send code", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{"message": "If the address is valid, a code has been sent"})
	}
}

// POST /api/v1/auth/otp/verify
//
// A known email authenticates directly; an unknown one gets a 15-minute
// registration token so signup can finish without a second code.
func VerifyOTP(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req otpVerifyBody
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, "email and code are required", web.CodeInvalidInput)
			return
		}
		// Shape check before any storage work.
		if !otpPattern.MatchString(req.Code) {
			web.Error(c, http.StatusBadRequest, "Code must be 6 digits", web.CodeInvalidOTP)
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))

		if msg, ok := verifyOTP(db, email, models.OTPPurposeLogin, req.Code); !ok {
			web.Error(c, http.StatusUnauthorized, msg, web.CodeInvalidOTP)
			return
		}

		var user models.User
		err := db.Preload("Roles").Where("email = ?", email).First(&user).Error
		if err == gorm.ErrRecordNotFound {
			registerToken, err := IssueToken(TokenTypeRegister, "", email, nil, RegisterTokenTTL)
			if err != nil {
				web.Error(c, http.StatusInternalServerError, "Token generation failed", web.CodeInternal)
				return
			}
			SetRegisterCookie(c, registerToken)
			web.Data(c, http.StatusOK, gin.H{
				"requiresRegistration": true,
				"email":                email,
			})
			return
		}
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to load account", web.CodeInternal)
			return
		}

		if !user.EmailVerified {
			db.Model(&user).Update("email_verified", true)
		}

		mergeStatus := "no-guest-cart"
		if req.GuestID != "" {
			if merged, err := MergeGuestCartIntoUserCart(db, req.GuestID, user.ID); err == nil && merged {
				mergeStatus = "merged-success"
			}
		}

		access, err := issueAuthPair(c, &user)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Token generation failed", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{
			"requiresRegistration": false,
			"user":                 user,
			"roles":                user.RoleNames(),
			"access_token":         access,
			"merge_status":         mergeStatus,
		})
	}
}
