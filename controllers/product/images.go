package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// POST /admin/products/:id/images
//
// Appends one gallery image. The 10-image cap is checked before the
// file is written.
func AddProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := loadProduct(c, db)
		if !ok {
			return
		}

		var count int64
		if err := db.Model(&models.ProductImage{}).
			Where("product_id = ?", product.ID).Count(&count).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to check gallery", web.CodeInternal)
			return
		}
		if count >= models.MaxProductImages {
			web.Error(c, http.StatusUnprocessableEntity,
				"A product can hold at most 10 images", web.CodeImageLimit)
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			web.Error(c, http.StatusBadRequest, "Image file is required", web.CodeInvalidInput)
			return
		}

		url, err := SaveUpload(c, file, "products")
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to save image", web.CodeInternal)
			return
		}

		image := models.ProductImage{
			ProductID: product.ID,
			URL:       url,
			Alt:       c.PostForm("alt"),
			Position:  int(count),
		}
		if err := db.Create(&image).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to save image", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusCreated, image)
	}
}

// DELETE /admin/products/:id/images/:imageID
func DeleteProductImage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := loadProduct(c, db)
		if !ok {
			return
		}

		result := db.Where("id = ? AND product_id = ?", c.Param("imageID"), product.ID).
			Delete(&models.ProductImage{})
		if result.Error != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to delete image", web.CodeInternal)
			return
		}
		if result.RowsAffected == 0 {
			web.Error(c, http.StatusNotFound, "Image not found", web.CodeInvalidInput)
			return
		}

		web.Data(c, http.StatusOK, gin.H{"message": "Image deleted"})
	}
}
