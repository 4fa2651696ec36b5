package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

type staffRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ListStaff returns every user holding the ADMIN role.
func ListStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Joins("JOIN user_roles ON user_roles.user_id = users.id AND user_roles.name = ?", models.RoleAdmin).
			Preload("Roles").
			Find(&users).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch staff", web.CodeInternal)
			return
		}
		web.Data(c, http.StatusOK, users)
	}
}

// GrantStaff adds the ADMIN role to an existing account.
func GrantStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req staffRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid request", web.CodeInvalidInput)
			return
		}

		var user models.User
		if err := db.Preload("Roles").Where("email = ?", req.Email).First(&user).Error; err != nil {
			web.Error(c, http.StatusNotFound, "User not found", web.CodeInvalidInput)
			return
		}

		if user.HasRole(models.RoleAdmin) {
			web.Data(c, http.StatusOK, gin.H{"message": "User is already staff"})
			return
		}

		role := models.UserRole{UserID: user.ID, Name: models.RoleAdmin}
		if err := db.Create(&role).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to grant staff role", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{"message": "Staff role granted"})
	}
}

// RevokeStaff removes the ADMIN role; the account itself stays.
func RevokeStaff(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req staffRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid request", web.CodeInvalidInput)
			return
		}

		var user models.User
		if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
			web.Error(c, http.StatusNotFound, "User not found", web.CodeInvalidInput)
			return
		}

		if err := db.Where("user_id = ? AND name = ?", user.ID, models.RoleAdmin).
			Delete(&models.UserRole{}).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to revoke staff role", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{"message": "Staff role revoked"})
	}
}
