package auth

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
)

func newLoginRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", Login(db))
	return r
}

func seedPasswordUser(t *testing.T, db *gorm.DB, email, password string, roles ...string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{ID: "user-" + email, Email: email, PasswordHash: string(hash), Name: "Ada"}
	for _, name := range roles {
		user.Roles = append(user.Roles, models.UserRole{Name: name})
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestLoginSetsBothAuthCookies(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	seedPasswordUser(t, db, "a@example.com", "correct horse")

	r := newLoginRouter(db)
	w := postJSON(r, "/login", gin.H{"identifier": "a@example.com", "password": "correct horse"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data struct {
			Roles       []string `json:"roles"`
			AccessToken string   `json:"access_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, []string{models.RoleCustomer}, envelope.Data.Roles)
	require.NotEmpty(t, envelope.Data.AccessToken)

	claims, err := ParseToken(envelope.Data.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, TokenTypeAccess, claims["typ"])

	got := map[string]*http.Cookie{}
	for _, ck := range w.Result().Cookies() {
		got[ck.Name] = ck
	}
	for _, name := range []string{AccessCookie, RefreshCookie} {
		ck, ok := got[name]
		require.True(t, ok, "missing %s cookie", name)
		assert.NotEmpty(t, ck.Value)
		assert.True(t, ck.HttpOnly)
	}
}

func TestLoginReturnsMergedRoleSet(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	seedPasswordUser(t, db, "staff@example.com", "correct horse",
		models.RoleAdmin, models.RoleCustomer, models.RoleAdmin)

	r := newLoginRouter(db)
	w := postJSON(r, "/login", gin.H{"identifier": "staff@example.com", "password": "correct horse"})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Data struct {
			Roles []string `json:"roles"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.ElementsMatch(t, []string{models.RoleAdmin, models.RoleCustomer}, envelope.Data.Roles)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	db := newAuthTestDB(t)
	seedPasswordUser(t, db, "a@example.com", "correct horse")

	r := newLoginRouter(db)
	w := postJSON(r, "/login", gin.H{"identifier": "a@example.com", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_CREDENTIALS")
	assert.Empty(t, w.Result().Cookies())
}
