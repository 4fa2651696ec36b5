package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// ImportInventoryFromExcel bulk-updates variant stock and price
// overrides from an uploaded sheet. Rows: SKU, Stock, PriceOverride.
// Unknown SKUs and malformed rows are skipped and counted.
func ImportInventoryFromExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		excelFileHeader, err := c.FormFile("file")
		if err != nil {
			web.Error(c, http.StatusBadRequest, "Excel file is required", web.CodeInvalidInput)
			return
		}

		file, err := excelFileHeader.Open()
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to open Excel file", web.CodeInternal)
			return
		}
		defer file.Close()

		xlFile, err := xlsx.OpenReaderAt(file, excelFileHeader.Size)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to parse Excel file", web.CodeInternal)
			return
		}

		if len(xlFile.Sheets) == 0 || xlFile.Sheets[0].MaxRow < 2 {
			web.Error(c, http.StatusBadRequest, "Excel file is empty or missing header row", web.CodeInvalidInput)
			return
		}

		sheet := xlFile.Sheets[0]
		updatedCount, skippedCount := 0, 0

		for i := 1; i < sheet.MaxRow; i++ {
			row := sheet.Rows[i]

			get := func(index int) string {
				if index < len(row.Cells) {
					return strings.TrimSpace(row.Cells[index].String())
				}
				return ""
			}

			sku := get(0)
			stock, stockErr := strconv.Atoi(get(1))
			if sku == "" || stockErr != nil || stock < 0 {
				skippedCount++
				continue
			}

			var variant models.ProductVariant
			if err := db.Where("sku = ?", sku).First(&variant).Error; err != nil {
				skippedCount++
				continue
			}

			variant.Stock = stock
			if overrideStr := get(2); overrideStr != "" {
				if override, err := strconv.ParseFloat(overrideStr, 64); err == nil {
					variant.PriceOverride = &override
				}
			}

			if err := db.Save(&variant).Error; err != nil {
				skippedCount++
				continue
			}
			updatedCount++
		}

		web.Data(c, http.StatusOK, gin.H{
			"message":       "Import completed",
			"updated_count": updatedCount,
			"skipped_count": skippedCount,
		})
	}
}

// ExportInventoryToExcel streams the variant inventory as a download,
// one row per SKU.
func ExportInventoryToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Variants").Find(&products).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch products", web.CodeInternal)
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Inventory")
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to create Excel sheet", web.CodeInternal)
			return
		}

		headers := []string{
			"SKU", "Stock", "PriceOverride",
			"ProductID", "ProductName", "Brand", "Size", "Color", "SalePrice",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for i := range products {
			p := &products[i]
			for _, v := range p.Variants {
				row := sheet.AddRow()
				row.AddCell().SetValue(v.SKU)
				row.AddCell().SetValue(v.Stock)
				if v.PriceOverride != nil {
					row.AddCell().SetValue(*v.PriceOverride)
				} else {
					row.AddCell().SetValue("")
				}
				row.AddCell().SetValue(p.ID)
				row.AddCell().SetValue(p.Name)
				row.AddCell().SetValue(p.Brand)
				row.AddCell().SetValue(v.Size)
				row.AddCell().SetValue(v.Color)
				row.AddCell().SetValue(p.SalePrice)
			}
		}

		c.Header("Content-Disposition", "attachment; filename=inventory.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to write Excel file", web.CodeInternal)
			return
		}
	}
}
