package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

type variantInput struct {
	SKU           string   `json:"sku" binding:"required"`
	Size          string   `json:"size"`
	Color         string   `json:"color"`
	Stock         int      `json:"stock" binding:"min=0"`
	PriceOverride *float64 `json:"price_override"`
}

type variantUpdateInput struct {
	Size          *string  `json:"size"`
	Color         *string  `json:"color"`
	Stock         *int     `json:"stock"`
	PriceOverride *float64 `json:"price_override"`
}

func loadProduct(c *gin.Context, db *gorm.DB) (*models.Product, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		web.Error(c, http.StatusBadRequest, "Invalid product ID", web.CodeInvalidInput)
		return nil, false
	}
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		web.Error(c, http.StatusNotFound, "Product not found", web.CodeProductNotFound)
		return nil, false
	}
	return &product, true
}

// POST /admin/products/:id/variants
func CreateVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := loadProduct(c, db)
		if !ok {
			return
		}

		var input variantInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error(), web.CodeInvalidInput)
			return
		}

		variant := models.ProductVariant{
			ProductID:     product.ID,
			SKU:           input.SKU,
			Size:          input.Size,
			Color:         input.Color,
			Stock:         input.Stock,
			PriceOverride: input.PriceOverride,
		}
		if err := db.Create(&variant).Error; err != nil {
			web.Error(c, http.StatusConflict, "SKU already exists", web.CodeInvalidInput)
			return
		}

		web.Data(c, http.StatusCreated, variant)
	}
}

// PUT /admin/products/:id/variants/:variantID
func UpdateVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := loadProduct(c, db)
		if !ok {
			return
		}

		var variant models.ProductVariant
		if err := db.Where("id = ? AND product_id = ?", c.Param("variantID"), product.ID).
			First(&variant).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Variant not found", web.CodeVariantNotFound)
			return
		}

		var input variantUpdateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error(), web.CodeInvalidInput)
			return
		}

		if input.Size != nil {
			variant.Size = *input.Size
		}
		if input.Color != nil {
			variant.Color = *input.Color
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				web.Error(c, http.StatusBadRequest, "stock cannot be negative", web.CodeInvalidInput)
				return
			}
			variant.Stock = *input.Stock
		}
		if input.PriceOverride != nil {
			variant.PriceOverride = input.PriceOverride
		}

		if err := db.Save(&variant).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to update variant", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, variant)
	}
}

// DELETE /admin/products/:id/variants/:variantID
func DeleteVariant(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := loadProduct(c, db)
		if !ok {
			return
		}

		result := db.Where("id = ? AND product_id = ?", c.Param("variantID"), product.ID).
			Delete(&models.ProductVariant{})
		if result.Error != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to delete variant", web.CodeInternal)
			return
		}
		if result.RowsAffected == 0 {
			web.Error(c, http.StatusNotFound, "Variant not found", web.CodeVariantNotFound)
			return
		}

		web.Data(c, http.StatusOK, gin.H{"message": "Variant deleted"})
	}
}
