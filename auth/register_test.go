package auth

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonlux/storefront-api/models"
)

func TestValidPassword(t *testing.T) {
	cases := []struct {
		pw   string
		want bool
	}{
		{"short1", false},
		{"allletters", false},
		{"12345678", false},
		{"abcdef12", true},
		{"Pa55word", true},
		{"pass word 1", true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ValidPassword(tc.pw), "password %q", tc.pw)
	}
}

func TestRegisterRejectsWeakPassword(t *testing.T) {
	db := newAuthTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", Register(db))

	w := postJSON(r, "/register", gin.H{
		"email":    "a@example.com",
		"password": "letters",
		"name":     "Ada",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "WEAK_PASSWORD")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", Register(db))

	body := gin.H{"email": "a@example.com", "password": "abcdef12", "name": "Ada"}
	w := postJSON(r, "/register", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = postJSON(r, "/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "EMAIL_TAKEN")
}

func TestRegisterCreatesCustomerWithCart(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newAuthTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/register", Register(db))

	w := postJSON(r, "/register", gin.H{
		"email":    "New@Example.com ",
		"password": "abcdef12",
		"name":     "Ada",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var user models.User
	require.NoError(t, db.Preload("Roles").Where("email = ?", "new@example.com").First(&user).Error)
	assert.Equal(t, []string{models.RoleCustomer}, user.RoleNames())
	assert.False(t, user.EmailVerified)

	var cartCount int64
	db.Model(&models.Cart{}).Where("user_id = ?", user.ID).Count(&cartCount)
	assert.EqualValues(t, 1, cartCount)
}
