package models

import "time"

type PromotionType string

const (
	PromotionPercent PromotionType = "percent"
	PromotionFixed   PromotionType = "fixed"
)

type Promotion struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Code        string        `gorm:"uniqueIndex;not null" json:"code"`
	Type        PromotionType `gorm:"type:VARCHAR(10);not null" json:"type"`
	Value       float64       `gorm:"not null" json:"value"`
	MinSubtotal float64       `json:"min_subtotal"`
	Message     string        `json:"message"`
	VoucherOnly bool          `json:"voucher_only"` // redeemable only through a granted voucher
	Active      bool          `gorm:"default:true" json:"active"`
	StartsAt    *time.Time    `json:"starts_at,omitempty"`
	ExpiresAt   *time.Time    `json:"expires_at,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
}

// DiscountFor computes the discount the promotion yields on the given
// subtotal. The result never exceeds the subtotal.
func (p *Promotion) DiscountFor(subtotal float64) float64 {
	var d float64
	switch p.Type {
	case PromotionPercent:
		d = subtotal * p.Value / 100
	case PromotionFixed:
		d = p.Value
	}
	if d > subtotal {
		d = subtotal
	}
	if d < 0 {
		d = 0
	}
	return d
}

// CurrentlyActive checks the active flag and the validity window.
func (p *Promotion) CurrentlyActive(now time.Time) bool {
	if !p.Active {
		return false
	}
	if p.StartsAt != nil && now.Before(*p.StartsAt) {
		return false
	}
	if p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		return false
	}
	return true
}

// Voucher grants a promotion to a single user.
type Voucher struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      string     `gorm:"index;not null" json:"-"`
	PromotionID uint       `gorm:"index;not null" json:"-"`
	Promotion   Promotion  `gorm:"foreignKey:PromotionID" json:"promotion"`
	RedeemedAt  *time.Time `json:"redeemed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
