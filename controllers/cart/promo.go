package cartControllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

type applyPromotionInput struct {
	Code string `json:"code" binding:"required"`
}

// POST /api/v1/users/me/cart/promotion
func ApplyPromotionCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := contextUserID(c)
		if !ok {
			return
		}

		var input applyPromotionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "A promotion code is required", web.CodeInvalidInput)
			return
		}
		code := strings.ToUpper(strings.TrimSpace(input.Code))

		var promo models.Promotion
		if err := db.Where("code = ?", code).First(&promo).Error; err != nil {
			web.Error(c, http.StatusNotFound, "This code is not valid", web.CodePromoInvalid)
			return
		}
		if !promo.CurrentlyActive(time.Now()) {
			web.Error(c, http.StatusGone, "This code has expired", web.CodePromoExpired)
			return
		}

		cart, err := loadUserCart(db, userID)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch cart", web.CodeInternal)
			return
		}

		var subtotal float64
		for _, item := range cart.Items {
			subtotal += item.UnitPrice * float64(item.Quantity)
		}
		if subtotal < promo.MinSubtotal {
			web.Error(c, http.StatusUnprocessableEntity,
				"Cart subtotal is below the minimum for this code", web.CodePromoMinSubtotal)
			return
		}

		// Voucher-only codes need a granted, unredeemed voucher.
		if promo.VoucherOnly {
			var count int64
			if err := db.Model(&models.Voucher{}).
				Where("user_id = ? AND promotion_id = ? AND redeemed_at IS NULL", userID, promo.ID).
				Count(&count).Error; err != nil || count == 0 {
				web.Error(c, http.StatusNotFound, "This code is not valid", web.CodePromoInvalid)
				return
			}
		}

		if err := db.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).
			Update("promotion_id", promo.ID).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to apply code", web.CodeInternal)
			return
		}

		respondWithCart(c, db, userID, http.StatusOK)
	}
}

// DELETE /api/v1/users/me/cart/promotion
func RemovePromotionCode(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := contextUserID(c)
		if !ok {
			return
		}

		cart, err := loadUserCart(db, userID)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch cart", web.CodeInternal)
			return
		}
		if err := db.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).
			Update("promotion_id", nil).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to remove code", web.CodeInternal)
			return
		}

		respondWithCart(c, db, userID, http.StatusOK)
	}
}
