package productcontroller

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// UploadRoot resolves the uploads directory; nginx serves it back under
// /uploads.
func UploadRoot() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./uploads"
}

// SaveUpload stores a multipart file under uploads/<subdir> with a
// collision-proof name and returns the public URL.
func SaveUpload(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	dir := filepath.Join(UploadRoot(), subdir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	base = strings.ReplaceAll(base, " ", "_")
	filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", err
	}
	return fmt.Sprintf("/uploads/%s/%s", subdir, filename), nil
}

func parseCategoryIDs(db *gorm.DB, raw string) ([]models.Category, error) {
	var categories []models.Category
	if raw == "" {
		return categories, nil
	}
	var parsedIDs []uint
	for _, tok := range strings.Split(raw, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		id64, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid category_ids format")
		}
		parsedIDs = append(parsedIDs, uint(id64))
	}
	if len(parsedIDs) == 0 {
		return categories, nil
	}
	if err := db.Where("id IN ?", parsedIDs).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateProduct creates a product with categories and an optional first
// gallery image. Variants are managed through the variant endpoints.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		salePriceStr := c.PostForm("sale_price")
		weightStr := c.PostForm("weight")
		if name == "" || salePriceStr == "" || weightStr == "" {
			web.Error(c, http.StatusBadRequest, "name, sale_price and weight are required", web.CodeInvalidInput)
			return
		}

		salePrice, err := strconv.ParseFloat(salePriceStr, 64)
		if err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid sale_price", web.CodeInvalidInput)
			return
		}
		weight, err := strconv.ParseFloat(weightStr, 64)
		if err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid weight", web.CodeInvalidInput)
			return
		}

		var regularPrice float64
		if v := c.PostForm("regular_price"); v != "" {
			if rp, parseErr := strconv.ParseFloat(v, 64); parseErr == nil {
				regularPrice = rp
			} else {
				web.Error(c, http.StatusBadRequest, "Invalid regular_price", web.CodeInvalidInput)
				return
			}
		}

		categories, err := parseCategoryIDs(db, c.PostForm("category_ids"))
		if err != nil {
			web.Error(c, http.StatusBadRequest, err.Error(), web.CodeInvalidInput)
			return
		}

		newProduct := models.Product{
			Name:         name,
			Brand:        c.PostForm("brand"),
			Description:  c.PostForm("description"),
			SalePrice:    salePrice,
			RegularPrice: regularPrice,
			Weight:       weight,
			Featured:     c.PostForm("featured") == "true",
			Categories:   categories,
		}

		if file, err := c.FormFile("image"); err == nil {
			url, saveErr := SaveUpload(c, file, "products")
			if saveErr != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to save image", web.CodeInternal)
				return
			}
			newProduct.Images = []models.ProductImage{{URL: url, Position: 0}}
		}

		if err := db.Create(&newProduct).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to create product", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusCreated, newProduct)
	}
}
