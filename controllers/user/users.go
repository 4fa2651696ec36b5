package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

type UpdateUserInput struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	AvatarURL *string `json:"avatar_url"`
}

type profileResponse struct {
	models.User
	RoleNames []string `json:"roles"`
}

// loadOrCreateUser resolves the token subject to a profile row. A valid
// token whose row is missing gets a minimal profile created from the
// token claims so the request can proceed.
func loadOrCreateUser(c *gin.Context, db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.Preload("Roles").Preload("Addresses").First(&user, "id = ?", userID).Error
	if err == nil {
		return &user, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	email, _ := c.Get("email")
	emailStr, _ := email.(string)
	user = models.User{
		ID:           userID,
		Email:        emailStr,
		PasswordHash: "!", // no password set; OTP or reset flow required
		Roles:        []models.UserRole{{Name: models.RoleCustomer}},
		Cart:         models.Cart{},
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GET /api/v1/users/me
func GetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		user, err := loadOrCreateUser(c, db, userID.(string))
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to load profile", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, profileResponse{User: *user, RoleNames: user.RoleNames()})
	}
}

// PUT /api/v1/users/me
func UpdateMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		user, err := loadOrCreateUser(c, db, userID.(string))
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to load profile", web.CodeInternal)
			return
		}

		var input UpdateUserInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, err.Error(), web.CodeInvalidInput)
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.AvatarURL != nil {
			updates["avatar_url"] = *input.AvatarURL
		}

		if len(updates) > 0 {
			if err := db.Model(user).Updates(updates).Error; err != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to update profile", web.CodeInternal)
				return
			}
		}

		web.Data(c, http.StatusOK, profileResponse{User: *user, RoleNames: user.RoleNames()})
	}
}

// GET /admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "email", "name", "phone", "avatar_url", "email_verified", "created_at").
			Preload("Roles").
			Order("created_at desc").
			Find(&users).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch users", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, users)
	}
}
