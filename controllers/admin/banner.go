package adminController

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productController "github.com/maisonlux/storefront-api/controllers/product"
	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// UploadBanner saves the image under uploads/banners and stores the
// public URL. New banners land at the end of the carousel.
func UploadBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			web.Error(c, http.StatusBadRequest, "No image uploaded", web.CodeInvalidInput)
			return
		}

		url, err := productController.SaveUpload(c, file, "banners")
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to save file", web.CodeInternal)
			return
		}

		var maxPos int
		db.Model(&models.Banner{}).Select("COALESCE(MAX(position), -1)").Scan(&maxPos)

		banner := models.Banner{
			Title:    c.PostForm("title"),
			ImageURL: url,
			LinkURL:  c.PostForm("link_url"),
			Position: maxPos + 1,
		}
		if err := db.Create(&banner).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to save banner", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusCreated, banner)
	}
}

// GetBanners lists banners in carousel order.
func GetBanners(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banners []models.Banner
		if err := db.Order("position ASC, id ASC").Find(&banners).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to get banners", web.CodeInternal)
			return
		}
		if banners == nil {
			banners = []models.Banner{}
		}
		web.Data(c, http.StatusOK, banners)
	}
}

// UpdateBanner changes title, link, or carousel position.
func UpdateBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var banner models.Banner
		if err := db.First(&banner, c.Param("id")).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Banner not found", web.CodeInvalidInput)
			return
		}

		var req struct {
			Title    *string `json:"title"`
			LinkURL  *string `json:"link_url"`
			Position *int    `json:"position"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, err.Error(), web.CodeInvalidInput)
			return
		}

		updates := map[string]interface{}{}
		if req.Title != nil {
			updates["title"] = *req.Title
		}
		if req.LinkURL != nil {
			updates["link_url"] = *req.LinkURL
		}
		if req.Position != nil {
			updates["position"] = *req.Position
		}
		if len(updates) > 0 {
			if err := db.Model(&banner).Updates(updates).Error; err != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to update banner", web.CodeInternal)
				return
			}
		}

		web.Data(c, http.StatusOK, banner)
	}
}

// DeleteBanner removes the DB row and the local file.
func DeleteBanner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid banner id", web.CodeInvalidInput)
			return
		}

		var banner models.Banner
		if err := db.First(&banner, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				web.Error(c, http.StatusNotFound, "Banner not found", web.CodeInvalidInput)
				return
			}
			web.Error(c, http.StatusInternalServerError, "Database error", web.CodeInternal)
			return
		}

		if banner.ImageURL != "" && strings.HasPrefix(banner.ImageURL, "/uploads/") {
			local := filepath.Join(productController.UploadRoot(),
				strings.TrimPrefix(banner.ImageURL, "/uploads/"))
			if err := os.Remove(local); err != nil && !os.IsNotExist(err) {
				web.Error(c, http.StatusInternalServerError, "Failed to delete file", web.CodeInternal)
				return
			}
		}

		if err := db.Delete(&banner).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to delete banner", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{"message": "Banner deleted"})
	}
}
