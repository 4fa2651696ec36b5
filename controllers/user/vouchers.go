package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// GET /api/v1/users/me/vouchers
func ListVouchers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var vouchers []models.Voucher
		if err := db.Preload("Promotion").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&vouchers).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch vouchers", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, vouchers)
	}
}

type grantVoucherInput struct {
	UserID      string `json:"user_id" binding:"required"`
	PromotionID uint   `json:"promotion_id" binding:"required"`
}

// POST /admin/vouchers
func GrantVoucher(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input grantVoucherInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "user_id and promotion_id are required", web.CodeInvalidInput)
			return
		}

		var promo models.Promotion
		if err := db.First(&promo, input.PromotionID).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Promotion not found", web.CodePromoInvalid)
			return
		}

		voucher := models.Voucher{UserID: input.UserID, PromotionID: promo.ID}
		if err := db.Create(&voucher).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to grant voucher", web.CodeInternal)
			return
		}
		voucher.Promotion = promo

		web.Data(c, http.StatusCreated, voucher)
	}
}
