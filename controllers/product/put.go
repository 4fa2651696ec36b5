package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// UpdateProduct updates an existing product by ID. Accepts the same
// form fields as CreateProduct; absent fields are left untouched.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid product ID", web.CodeInvalidInput)
			return
		}

		var product models.Product
		if err := db.Preload("Categories").Preload("Images").First(&product, id).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Product not found", web.CodeProductNotFound)
			return
		}

		parseFloat := func(val string) *float64 {
			if val == "" {
				return nil
			}
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				return &f
			}
			return nil
		}

		if v := c.PostForm("name"); v != "" {
			product.Name = v
		}
		if v := c.PostForm("brand"); v != "" {
			product.Brand = v
		}
		if v := c.PostForm("description"); v != "" {
			product.Description = v
		}
		if v := parseFloat(c.PostForm("sale_price")); v != nil {
			product.SalePrice = *v
		}
		if v := parseFloat(c.PostForm("regular_price")); v != nil {
			product.RegularPrice = *v
		}
		if v := parseFloat(c.PostForm("weight")); v != nil {
			product.Weight = *v
		}
		if v := c.PostForm("featured"); v != "" {
			product.Featured = v == "true"
		}

		if raw := c.PostForm("category_ids"); raw != "" {
			categories, err := parseCategoryIDs(db, raw)
			if err != nil {
				web.Error(c, http.StatusBadRequest, err.Error(), web.CodeInvalidInput)
				return
			}
			if err := db.Model(&product).Association("Categories").Replace(categories); err != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to update categories", web.CodeInternal)
				return
			}
			product.Categories = categories
		}

		if file, err := c.FormFile("image"); err == nil {
			if len(product.Images) >= models.MaxProductImages {
				web.Error(c, http.StatusUnprocessableEntity,
					"A product can hold at most 10 images", web.CodeImageLimit)
				return
			}
			url, saveErr := SaveUpload(c, file, "products")
			if saveErr != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to save image", web.CodeInternal)
				return
			}
			product.Images = append(product.Images, models.ProductImage{
				ProductID: product.ID,
				URL:       url,
				Position:  len(product.Images),
			})
		}

		if err := db.Session(&gorm.Session{FullSaveAssociations: false}).Save(&product).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to update product", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, product)
	}
}
