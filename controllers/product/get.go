package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// GetProductByID returns a single product with variants, images and
// categories. URL param: /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid product ID", web.CodeInvalidInput)
			return
		}

		var product models.Product
		if err := db.Preload("Categories").Preload("Variants").
			Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
			First(&product, id).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				web.Error(c, http.StatusNotFound, "Product not found", web.CodeProductNotFound)
			} else {
				web.Error(c, http.StatusInternalServerError, "Failed to retrieve product", web.CodeInternal)
			}
			return
		}

		web.Data(c, http.StatusOK, product)
	}
}
