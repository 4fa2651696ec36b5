package auth

import (
	"time"

	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
)

// MergeGuestCartIntoUserCart folds a guest cart into the user's cart in
// one transaction. Rows for the same variant sum their quantities; the
// guest cart is deleted afterwards. Returns whether anything merged.
func MergeGuestCartIntoUserCart(db *gorm.DB, guestID, userID string) (bool, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return false, tx.Error
	}

	var guestCart models.GuestCart
	if err := tx.Preload("Items").
		Where("guest_id = ?", guestID).
		First(&guestCart).Error; err != nil {
		tx.Rollback()
		return false, nil // nothing to merge
	}

	var userCart models.Cart
	err := tx.Preload("Items").
		Where("user_id = ?", userID).
		First(&userCart).Error

	if err == gorm.ErrRecordNotFound {
		userCart = models.Cart{UserID: userID}
		if err := tx.Create(&userCart).Error; err != nil {
			tx.Rollback()
			return false, err
		}
	} else if err != nil {
		tx.Rollback()
		return false, err
	}

	merged := false
	for _, guestItem := range guestCart.Items {
		var userItem models.CartItem

		lookupErr := tx.Where(
			"cart_id = ? AND product_variant_id = ?",
			userCart.CartID,
			guestItem.ProductVariantID,
		).First(&userItem).Error

		if lookupErr == nil {
			userItem.Quantity += guestItem.Quantity
			userItem.AddedAt = time.Now()
			if err := tx.Save(&userItem).Error; err != nil {
				tx.Rollback()
				return false, err
			}
		} else if lookupErr == gorm.ErrRecordNotFound {
			newItem := models.CartItem{
				CartID:           userCart.CartID,
				ProductID:        guestItem.ProductID,
				ProductVariantID: guestItem.ProductVariantID,
				ProductName:      guestItem.ProductName,
				Brand:            guestItem.Brand,
				SKU:              guestItem.SKU,
				Size:             guestItem.Size,
				Color:            guestItem.Color,
				Image:            guestItem.Image,
				UnitPrice:        guestItem.UnitPrice,
				Weight:           guestItem.Weight,
				Quantity:         guestItem.Quantity,
				AddedAt:          time.Now(),
			}
			if err := tx.Create(&newItem).Error; err != nil {
				tx.Rollback()
				return false, err
			}
		} else {
			tx.Rollback()
			return false, lookupErr
		}
		merged = true
	}

	if err := tx.Where("cart_id = ?", guestCart.CartID).Delete(&models.GuestCartItem{}).Error; err != nil {
		tx.Rollback()
		return false, err
	}
	if err := tx.Delete(&guestCart).Error; err != nil {
		tx.Rollback()
		return false, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return false, err
	}
	return merged, nil
}
