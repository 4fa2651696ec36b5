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

// GuestCartResponse mirrors CartResponse without promotions; codes can
// only be applied to signed-in carts.
type GuestCartResponse struct {
	ID           uint                   `json:"id"`
	Items        []models.GuestCartItem `json:"items"`
	Subtotal     float64                `json:"subtotal"`
	ShippingCost float64                `json:"shipping_cost"`
	Total        float64                `json:"total"`
}

func buildGuestCartResponse(cart *models.GuestCart) GuestCartResponse {
	items := cart.Items
	if items == nil {
		items = []models.GuestCartItem{}
	}

	var subtotal, totalWeight float64
	for _, item := range items {
		subtotal += item.UnitPrice * float64(item.Quantity)
		totalWeight += item.Weight * float64(item.Quantity)
	}
	shipping := ShippingCost(totalWeight)

	return GuestCartResponse{
		ID:           cart.CartID,
		Items:        items,
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Total:        subtotal + shipping,
	}
}

func guestIDFromQuery(c *gin.Context) (string, bool) {
	guestID := c.Query("guest_id")
	if guestID == "" {
		web.Error(c, http.StatusBadRequest, "guest_id is required", web.CodeInvalidInput)
		return "", false
	}
	return guestID, true
}

func respondWithGuestCart(c *gin.Context, db *gorm.DB, guestID string, status int) {
	var cart models.GuestCart
	if err := db.Preload("Items").Where("guest_id = ?", guestID).First(&cart).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			web.Data(c, status, buildGuestCartResponse(&models.GuestCart{}))
			return
		}
		web.Error(c, http.StatusInternalServerError, "Failed to fetch guest cart", web.CodeInternal)
		return
	}
	web.Data(c, status, buildGuestCartResponse(&cart))
}

// GET /guest/cart
func GetGuestCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := guestIDFromQuery(c)
		if !ok {
			return
		}
		respondWithGuestCart(c, db, guestID, http.StatusOK)
	}
}

// POST /guest/cart
func AddGuestCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := guestIDFromQuery(c)
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

		var cart models.GuestCart
		if err := db.Where("guest_id = ?", guestID).First(&cart).Error; err != nil {
			if err != gorm.ErrRecordNotFound {
				web.Error(c, http.StatusInternalServerError, "Failed to fetch guest cart", web.CodeInternal)
				return
			}
			cart = models.GuestCart{GuestID: guestID}
			if err := db.Create(&cart).Error; err != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to create guest cart", web.CodeInternal)
				return
			}
		}

		var item models.GuestCartItem
		err := db.Where("cart_id = ? AND product_variant_id = ?", cart.CartID, variant.ID).
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
			snapshot := snapshotFromVariant(&product, &variant)
			newItem := models.GuestCartItem{
				CartID:           cart.CartID,
				ProductID:        snapshot.ProductID,
				ProductVariantID: snapshot.ProductVariantID,
				ProductName:      snapshot.ProductName,
				Brand:            snapshot.Brand,
				SKU:              snapshot.SKU,
				Size:             snapshot.Size,
				Color:            snapshot.Color,
				Image:            snapshot.Image,
				UnitPrice:        snapshot.UnitPrice,
				Weight:           snapshot.Weight,
				Quantity:         input.Quantity,
				AddedAt:          time.Now(),
			}
			if err := db.Create(&newItem).Error; err != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to add item to guest cart", web.CodeInternal)
				return
			}
		} else if err == nil {
			item.Quantity = requested
			if err := db.Save(&item).Error; err != nil {
				web.Error(c, http.StatusInternalServerError, "Failed to update guest cart item", web.CodeInternal)
				return
			}
		} else {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch cart item", web.CodeInternal)
			return
		}

		respondWithGuestCart(c, db, guestID, http.StatusCreated)
	}
}

// PUT /guest/cart/items/:id
func UpdateGuestCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := guestIDFromQuery(c)
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

		var cart models.GuestCart
		if err := db.Where("guest_id = ?", guestID).First(&cart).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Guest cart not found", web.CodeCartItemNotFound)
			return
		}

		var item models.GuestCartItem
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

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to update guest cart item", web.CodeInternal)
			return
		}

		respondWithGuestCart(c, db, guestID, http.StatusOK)
	}
}

// DELETE /guest/cart/items/:id
func DeleteGuestCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := guestIDFromQuery(c)
		if !ok {
			return
		}

		var cart models.GuestCart
		if err := db.Where("guest_id = ?", guestID).First(&cart).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Guest cart not found", web.CodeCartItemNotFound)
			return
		}

		result := db.Where("id = ? AND cart_id = ?", c.Param("id"), cart.CartID).
			Delete(&models.GuestCartItem{})
		if result.Error != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to delete item", web.CodeInternal)
			return
		}
		if result.RowsAffected == 0 {
			web.Error(c, http.StatusNotFound, "Cart item not found", web.CodeCartItemNotFound)
			return
		}

		respondWithGuestCart(c, db, guestID, http.StatusOK)
	}
}

// DELETE /guest/cart
func ClearGuestCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guestID, ok := guestIDFromQuery(c)
		if !ok {
			return
		}

		var cart models.GuestCart
		if err := db.Where("guest_id = ?", guestID).First(&cart).Error; err != nil {
			respondWithGuestCart(c, db, guestID, http.StatusOK)
			return
		}

		if err := db.Where("cart_id = ?", cart.CartID).Delete(&models.GuestCartItem{}).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to clear guest cart", web.CodeInternal)
			return
		}

		respondWithGuestCart(c, db, guestID, http.StatusOK)
	}
}
