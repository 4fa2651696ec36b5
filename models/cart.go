package models

import "time"

type Cart struct {
	CartID      uint       `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"uniqueIndex" json:"-"` // Enforces ONE cart per user
	Items       []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"`
	PromotionID *uint      `json:"-"`
	Promotion   *Promotion `gorm:"foreignKey:PromotionID" json:"promotion,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CartItem struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CartID           uint      `gorm:"index" json:"-"`
	ProductID        uint      `json:"product_id"`
	ProductVariantID uint      `json:"product_variant_id"`
	ProductName      string    `json:"product_name"`
	Brand            string    `json:"brand"`
	SKU              string    `json:"sku"`
	Size             string    `json:"size"`
	Color            string    `json:"color"`
	Image            string    `json:"image"`
	UnitPrice        float64   `json:"unit_price"`
	Weight           float64   `json:"weight"`
	Quantity         int       `json:"quantity"`
	AddedAt          time.Time `json:"added_at"`
}
