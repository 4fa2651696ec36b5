package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			web.Error(c, http.StatusBadRequest, "Product ID is required", web.CodeInvalidInput)
			return
		}

		var product models.Product
		if err := db.Preload("Categories").First(&product, id).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Product not found", web.CodeProductNotFound)
			return
		}

		tx := db.Begin()
		if tx.Error != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to start transaction", web.CodeInternal)
			return
		}

		if err := tx.Model(&product).Association("Categories").Clear(); err != nil {
			tx.Rollback()
			web.Error(c, http.StatusInternalServerError, "Failed to clear category associations", web.CodeInternal)
			return
		}

		if err := tx.Delete(&product).Error; err != nil {
			tx.Rollback()
			web.Error(c, http.StatusInternalServerError, "Failed to delete product", web.CodeInternal)
			return
		}

		if err := tx.Commit().Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to commit product deletion", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
