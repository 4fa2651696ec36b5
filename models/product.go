package models

import (
	"time"

	"gorm.io/gorm"
)

// MaxProductImages caps the gallery per product.
const MaxProductImages = 10

type Product struct {
	ID           uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string           `gorm:"not null" json:"name"`
	Brand        string           `json:"brand"`
	Description  string           `json:"description"`
	SalePrice    float64          `gorm:"not null" json:"sale_price"`
	RegularPrice float64          `json:"regular_price"`
	Weight       float64          `gorm:"not null" json:"weight"`
	Featured     bool             `gorm:"index" json:"featured"`
	Categories   []Category       `gorm:"many2many:product_categories" json:"categories,omitempty"`
	Variants     []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"variants,omitempty"`
	Images       []ProductImage   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
}

// ProductVariant is the purchasable SKU: a size/color combination with
// its own stock and optional price override.
type ProductVariant struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID     uint      `gorm:"index;not null" json:"product_id"`
	SKU           string    `gorm:"uniqueIndex;not null" json:"sku"`
	Size          string    `json:"size"`
	Color         string    `json:"color"`
	Stock         int       `json:"stock"`
	PriceOverride *float64  `json:"price_override,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// UnitPrice resolves the effective price of the variant against its
// parent product's sale price.
func (v *ProductVariant) UnitPrice(p *Product) float64 {
	if v.PriceOverride != nil {
		return *v.PriceOverride
	}
	return p.SalePrice
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"-"`
	URL       string `gorm:"not null" json:"url"`
	Alt       string `json:"alt"`
	Position  int    `json:"position"`
}
