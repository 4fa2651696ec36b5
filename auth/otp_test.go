package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maisonlux/storefront-api/models"
)

func newAuthTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Cart{},
		&models.CartItem{},
		&models.GuestCart{},
		&models.GuestCartItem{},
		&models.GuestUser{},
		&models.OTPCode{},
	))
	return db
}

func TestGenerateOTPShape(t *testing.T) {
	pattern := regexp.MustCompile(`^[0-9]{6}$`)
	for i := 0; i < 20; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, pattern, code)
	}
}

func TestCreateOTPReplacesActiveCode(t *testing.T) {
	db := newAuthTestDB(t)

	_, err := createOTP(db, "a@example.com", models.OTPPurposeLogin)
	require.NoError(t, err)
	_, err = createOTP(db, "a@example.com", models.OTPPurposeLogin)
	require.NoError(t, err)

	var count int64
	db.Model(&models.OTPCode{}).
		Where("email = ? AND purpose = ?", "a@example.com", models.OTPPurposeLogin).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateOTPKeepsPurposesSeparate(t *testing.T) {
	db := newAuthTestDB(t)

	_, err := createOTP(db, "a@example.com", models.OTPPurposeLogin)
	require.NoError(t, err)
	_, err = createOTP(db, "a@example.com", models.OTPPurposeReset)
	require.NoError(t, err)

	var count int64
	db.Model(&models.OTPCode{}).Where("email = ?", "a@example.com").Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestVerifyOTPConsumesOnSuccess(t *testing.T) {
	db := newAuthTestDB(t)
	code, err := createOTP(db, "a@example.com", models.OTPPurposeLogin)
	require.NoError(t, err)

	_, ok := verifyOTP(db, "a@example.com", models.OTPPurposeLogin, code)
	require.True(t, ok)

	// Second use of the same code fails.
	_, ok = verifyOTP(db, "a@example.com", models.OTPPurposeLogin, code)
	assert.False(t, ok)
}

func TestVerifyOTPExhaustsAttempts(t *testing.T) {
	db := newAuthTestDB(t)
	code, err := createOTP(db, "a@example.com", models.OTPPurposeLogin)
	require.NoError(t, err)

	for i := 0; i < models.OTPMaxAttempts; i++ {
		_, ok := verifyOTP(db, "a@example.com", models.OTPPurposeLogin, "000000")
		require.False(t, ok)
	}

	// Even the right code is dead now.
	_, ok := verifyOTP(db, "a@example.com", models.OTPPurposeLogin, code)
	assert.False(t, ok)
}

func TestVerifyOTPExpired(t *testing.T) {
	db := newAuthTestDB(t)
	code, err := createOTP(db, "a@example.com", models.OTPPurposeLogin)
	require.NoError(t, err)

	db.Model(&models.OTPCode{}).Where("email = ?", "a@example.com").
		Update("expires_at", time.Now().Add(-time.Minute))

	_, ok := verifyOTP(db, "a@example.com", models.OTPPurposeLogin, code)
	assert.False(t, ok)
}

func newOTPRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/otp/verify", VerifyOTP(db))
	return r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestVerifyOTPRejectsMalformedCodeBeforeLookup(t *testing.T) {
	db := newAuthTestDB(t)
	r := newOTPRouter(db)

	w := postJSON(r, "/otp/verify", gin.H{"email": "a@example.com", "code": "123"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_OTP")
}

func TestVerifyOTPUnknownEmailStartsRegistration(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	code, err := createOTP(db, "new@example.com", models.OTPPurposeLogin)
	require.NoError(t, err)

	r := newOTPRouter(db)
	w := postJSON(r, "/otp/verify", gin.H{"email": "new@example.com", "code": code})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data struct {
			RequiresRegistration bool   `json:"requiresRegistration"`
			Email                string `json:"email"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Data.RequiresRegistration)
	assert.Equal(t, "new@example.com", envelope.Data.Email)

	var gotRegisterCookie bool
	for _, ck := range w.Result().Cookies() {
		if ck.Name == RegisterCookie && ck.Value != "" {
			gotRegisterCookie = true
			assert.True(t, ck.HttpOnly)
		}
	}
	assert.True(t, gotRegisterCookie)
}

func TestVerifyOTPKnownEmailAuthenticates(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)

	user := models.User{ID: "user-1", Email: "a@example.com", PasswordHash: "!", Name: "Ada"}
	require.NoError(t, db.Create(&user).Error)

	code, err := createOTP(db, "a@example.com", models.OTPPurposeLogin)
	require.NoError(t, err)

	r := newOTPRouter(db)
	w := postJSON(r, "/otp/verify", gin.H{"email": "a@example.com", "code": code})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data struct {
			RequiresRegistration bool     `json:"requiresRegistration"`
			Roles                []string `json:"roles"`
			AccessToken          string   `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.RequiresRegistration)
	assert.Equal(t, []string{models.RoleCustomer}, envelope.Data.Roles)
	assert.NotEmpty(t, envelope.Data.AccessToken)

	// OTP login doubles as email verification.
	var updated models.User
	require.NoError(t, db.First(&updated, "id = ?", "user-1").Error)
	assert.True(t, updated.EmailVerified)
}
