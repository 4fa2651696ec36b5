package cartControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

type CartItemInput struct {
	ProductID        uint `json:"product_id" binding:"required"`
	ProductVariantID uint `json:"product_variant_id" binding:"required"`
	Quantity         int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

func contextUserID(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		web.Error(c, http.StatusUnauthorized, "Authentication required", web.CodeUnauthorized)
		return "", false
	}
	userID, _ := userIDVal.(string)
	return userID, true
}

// loadUserCart fetches the cart with items and promotion, creating the
// row if the user somehow has none yet.
func loadUserCart(db *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := db.Preload("Items").Preload("Promotion").
		Where("user_id = ?", userID).First(&cart).Error
	if err == gorm.ErrRecordNotFound {
		cart = models.Cart{UserID: userID}
		if err := db.Create(&cart).Error; err != nil {
			return nil, err
		}
		return &cart, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func respondWithCart(c *gin.Context, db *gorm.DB, userID string, status int) {
	cart, err := loadUserCart(db, userID)
	if err != nil {
		web.Error(c, http.StatusInternalServerError, "Failed to fetch cart", web.CodeInternal)
		return
	}
	web.Data(c, status, BuildCartResponse(cart))
}

// snapshotFromVariant freezes the purchasable details onto the cart row
// so later catalog edits do not rewrite carts.
func snapshotFromVariant(product *models.Product, variant *models.ProductVariant) models.CartItem {
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0].URL
	}
	return models.CartItem{
		ProductID:        product.ID,
		ProductVariantID: variant.ID,
		ProductName:      product.Name,
		Brand:            product.Brand,
		SKU:              variant.SKU,
		Size:             variant.Size,
		Color:            variant.Color,
		Image:            image,
		UnitPrice:        variant.UnitPrice(product),
		Weight:           product.Weight,
		AddedAt:          time.Now(),
	}
}

// GET /api/v1/users/me/cart
func GetUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := contextUserID(c)
		if !ok {
			return
		}
		respondWithCart(c, db, userID, http.StatusOK)
	}
}

// POST /api/v1/users/me/cart/items
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := contextUserID(c)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error(), web.CodeInvalidInput)
			return
		}

		var product models.Product
		if err := db.Preload("Images").First(&product, "id = ?", input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				web.Error(c, http.StatusNotFound, "Product does not exist", web.CodeProductNotFound)
				return
			}
			web.Error(c, http.StatusInternalServerError, "Failed to validate product", web.CodeInternal)
			return
		}

		var variant models.ProductVariant
		if err := db.Where("id = ? AND product_id = ?", input.ProductVariantID, product.ID).
			First(&variant).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Variant does not exist for this product", web.CodeVariantNotFound)
			return
		}

		cart, err := loadUserCart(db, userID)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch cart", web.CodeInternal)
			return
		}

		var item models.CartItem
		err = db.Where("cart_id = ? AND product_variant_id = ?", cart.CartID, variant.ID).
			First(&item).Error

		requested := input.Quantity
		if err == nil {
			requested += item.Quantity
		}
		if variant.Stock < requested {
			web.Error(c, http.StatusConflict, "Not enough stock for "+product.Name, web.CodeOutOfStock)
			return
		}

		if err == gorm.ErrRecordNotFound {
			newItem := snapshotFromVariant(&product, &variant)
			newItem.CartID = cart.CartID
			newItem.Quantity = input.Quantity
			if err := db.Create(&newItem).Error; err != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to add item to cart", web.CodeInternal)
				return
			}
		} else if err == nil {
			item.Quantity = requested
			if err := db.Save(&item).Error; err != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to update cart item", web.CodeInternal)
				return
			}
		} else {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch cart item", web.CodeInternal)
			return
		}

		respondWithCart(c, db, userID, http.StatusCreated)
	}
}

// PUT /api/v1/users/me/cart/items/:id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := contextUserID(c)
		if !ok {
			return
		}

		itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid item id", web.CodeInvalidInput)
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid input: "+err.Error(), web.CodeInvalidInput)
			return
		}

		cart, err := loadUserCart(db, userID)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch cart", web.CodeInternal)
			return
		}

		var item models.CartItem
		if err := db.Where("id = ? AND cart_id = ?", itemID, cart.CartID).First(&item).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Cart item not found", web.CodeCartItemNotFound)
			return
		}

		var variant models.ProductVariant
		if err := db.First(&variant, "id = ?", item.ProductVariantID).Error; err == nil &&
			variant.Stock < input.Quantity {
			web.Error(c, http.StatusConflict, "Not enough stock for "+item.ProductName, web.CodeOutOfStock)
			return
		}

		// Quantity-only change: AddedAt stays put so the row keeps its
		// position in the sorted list.
		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to update cart item", web.CodeInternal)
			return
		}

		respondWithCart(c, db, userID, http.StatusOK)
	}
}

// DELETE /api/v1/users/me/cart/items/:id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
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

		result := db.Where("id = ? AND cart_id = ?", c.Param("id"), cart.CartID).
			Delete(&models.CartItem{})
		if result.Error != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to delete item", web.CodeInternal)
			return
		}
		if result.RowsAffected == 0 {
			web.Error(c, http.StatusNotFound, "Cart item not found", web.CodeCartItemNotFound)
			return
		}

		respondWithCart(c, db, userID, http.StatusOK)
	}
}

// DELETE /api/v1/users/me/cart
func ClearUserCart(db *gorm.DB) gin.HandlerFunc {
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

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).
				Update("promotion_id", nil).Error
		})
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to clear cart", web.CodeInternal)
			return
		}

		respondWithCart(c, db, userID, http.StatusOK)
	}
}

// GET /admin/user-cart/:user_id
func GetAdminUserCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("user_id")
		if userID == "" {
			web.Error(c, http.StatusBadRequest, "user_id is required", web.CodeInvalidInput)
			return
		}

		var cart models.Cart
		if err := db.Preload("Items").Preload("Promotion").
			Where("user_id = ?", userID).First(&cart).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Cart not found", web.CodeCartItemNotFound)
			return
		}

		web.Data(c, http.StatusOK, BuildCartResponse(&cart))
	}
}
