package productcontroller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

var sortableColumns = map[string]bool{
	"created_at": true,
	"sale_price": true,
	"name":       true,
	"brand":      true,
}

// GetProducts lists products with search, category, price-range and
// sort filters plus limit/offset paging.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		categoryID := c.Query("category_id")
		minPriceStr := c.Query("min_price")
		maxPriceStr := c.Query("max_price")
		featured := c.Query("featured")
		sortBy := c.DefaultQuery("sort_by", "created_at")
		sortOrder := strings.ToLower(c.DefaultQuery("order", "desc"))
		if sortOrder != "asc" && sortOrder != "desc" {
			sortOrder = "desc"
		}
		if !sortableColumns[sortBy] {
			sortBy = "created_at"
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "24"))
		if limit < 1 || limit > 100 {
			limit = 24
		}
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if offset < 0 {
			offset = 0
		}

		query := db.Model(&models.Product{}).
			Preload("Categories").Preload("Variants").
			Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") })

		if search != "" {
			likePattern := "%" + search + "%"
			query = query.Where(
				"name ILIKE ? OR brand ILIKE ? OR description ILIKE ?",
				likePattern, likePattern, likePattern,
			)
		}
		if featured == "true" {
			query = query.Where("featured = ?", true)
		}
		if minPriceStr != "" {
			if mp, err := strconv.ParseFloat(minPriceStr, 64); err == nil {
				query = query.Where("sale_price >= ?", mp)
			} else {
				web.Error(c, http.StatusBadRequest, "Invalid min_price", web.CodeInvalidInput)
				return
			}
		}
		if maxPriceStr != "" {
			if mp, err := strconv.ParseFloat(maxPriceStr, 64); err == nil {
				query = query.Where("sale_price <= ?", mp)
			} else {
				web.Error(c, http.StatusBadRequest, "Invalid max_price", web.CodeInvalidInput)
				return
			}
		}
		if categoryID != "" {
			if cid, err := strconv.ParseUint(categoryID, 10, 64); err == nil {
				query = query.
					Joins("JOIN product_categories pc ON pc.product_id = products.id").
					Where("pc.category_id = ?", uint(cid))
			} else {
				web.Error(c, http.StatusBadRequest, "Invalid category_id", web.CodeInvalidInput)
				return
			}
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch products", web.CodeInternal)
			return
		}

		var products []models.Product
		orderClause := fmt.Sprintf("%s %s", sortBy, sortOrder)
		if err := query.Order(orderClause).Limit(limit).Offset(offset).Find(&products).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch products", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{
			"products": products,
			"total":    total,
			"limit":    limit,
			"offset":   offset,
		})
	}
}
