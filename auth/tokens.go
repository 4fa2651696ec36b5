package auth

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/maisonlux/storefront-api/models"
)

// Cookie names and lifetimes. The TTLs are part of the client contract:
// access 7 days, refresh 30 days, register 15 minutes.
const (
	AccessCookie   = "accessToken"
	RefreshCookie  = "refreshToken"
	RegisterCookie = "registerToken"

	AccessTokenTTL   = 7 * 24 * time.Hour
	RefreshTokenTTL  = 30 * 24 * time.Hour
	RegisterTokenTTL = 15 * time.Minute
	GuestTokenTTL    = 24 * time.Hour
)

// Token types carried in the "typ" claim.
const (
	TokenTypeAccess   = "access"
	TokenTypeRefresh  = "refresh"
	TokenTypeRegister = "register"
	TokenTypeGuest    = "guest"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

// IssueToken signs an HS256 token of the given type for a subject.
func IssueToken(typ, userID, email string, roles []string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"typ":     typ,
		"user_id": userID,
		"email":   email,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	if len(roles) > 0 {
		claims["roles"] = roles
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret())
}

// ParseToken validates signature and expiry and returns the claims.
func ParseToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// RolesFromClaims is the one place token role shapes are interpreted.
// Canonical tokens carry "roles" as a string list; tokens minted by
// earlier backends used "authorities" (flat or {authority: X} objects)
// or a singular "role". All three shapes funnel through here and come
// out as a deduplicated list, defaulting to CUSTOMER.
func RolesFromClaims(claims jwt.MapClaims) []string {
	seen := make(map[string]bool)
	var names []string
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		names = append(names, name)
	}
	addAny := func(v interface{}) {
		switch t := v.(type) {
		case string:
			add(t)
		case map[string]interface{}:
			if a, ok := t["authority"].(string); ok {
				add(a)
			}
		}
	}
	if list, ok := claims["roles"].([]interface{}); ok {
		for _, v := range list {
			addAny(v)
		}
	}
	if list, ok := claims["authorities"].([]interface{}); ok {
		for _, v := range list {
			addAny(v)
		}
	}
	if role, ok := claims["role"].(string); ok {
		add(role)
	}
	if len(names) == 0 {
		return []string{models.RoleCustomer}
	}
	return names
}

func secureCookies() bool {
	return os.Getenv("APP_ENV") == "production"
}

// SetAuthCookies installs the httpOnly access/refresh pair.
func SetAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, accessToken, int(AccessTokenTTL.Seconds()), "/", "", secureCookies(), true)
	c.SetCookie(RefreshCookie, refreshToken, int(RefreshTokenTTL.Seconds()), "/", "", secureCookies(), true)
}

// SetRegisterCookie installs the short-lived registration token.
func SetRegisterCookie(c *gin.Context, registerToken string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(RegisterCookie, registerToken, int(RegisterTokenTTL.Seconds()), "/", "", secureCookies(), true)
}

// ClearAuthCookies drops all three auth cookies. Logout calls this
// unconditionally, token valid or not.
func ClearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookie, "", -1, "/", "", secureCookies(), true)
	c.SetCookie(RefreshCookie, "", -1, "/", "", secureCookies(), true)
	c.SetCookie(RegisterCookie, "", -1, "/", "", secureCookies(), true)
}

// issueAuthPair mints the access+refresh tokens for a user and sets the
// cookies.
func issueAuthPair(c *gin.Context, user *models.User) (string, error) {
	roles := user.RoleNames()
	access, err := IssueToken(TokenTypeAccess, user.ID, user.Email, roles, AccessTokenTTL)
	if err != nil {
		return "", err
	}
	refresh, err := IssueToken(TokenTypeRefresh, user.ID, user.Email, nil, RefreshTokenTTL)
	if err != nil {
		return "", err
	}
	SetAuthCookies(c, access, refresh)
	return access, nil
}
