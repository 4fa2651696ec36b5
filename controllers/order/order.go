package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	cartControllers "github.com/maisonlux/storefront-api/controllers/cart"
	"github.com/maisonlux/storefront-api/mail"
	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// -------- Request Structs --------

type PlaceOrderRequest struct {
	AddressID     uint   `json:"address_id" binding:"required"`
	PaymentMethod string `json:"payment_method" binding:"required"` // e.g. "card", "cod"
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// -------- Helpers --------

func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusConfirmed):
		return models.OrderStatusConfirmed, nil
	case string(models.OrderStatusReadyToShip):
		return models.OrderStatusReadyToShip, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusDelivered):
		return models.OrderStatusDelivered, nil
	case string(models.OrderStatusReturned):
		return models.OrderStatusReturned, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// -------- Core Logic --------

var (
	ErrCartEmpty   = errors.New("cart is empty")
	ErrOutOfStock  = errors.New("insufficient stock")
	ErrBadAddress  = errors.New("address not found")
	ErrPromoLapsed = errors.New("promotion no longer valid")
)

// PlaceOrder turns the user's cart into an order: per-variant stock is
// locked and deducted, the cart promotion is settled, the shipping
// address is snapshotted, and the cart is emptied — all in one
// transaction.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items").Preload("Promotion").
		Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return nil, ErrCartEmpty
	}
	if len(cart.Items) == 0 {
		return nil, ErrCartEmpty
	}

	var address models.Address
	if err := db.Where("id = ? AND user_id = ?", req.AddressID, userID).
		First(&address).Error; err != nil {
		return nil, ErrBadAddress
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var subtotal, totalWeight float64
		var orderItems []models.OrderItem

		for _, item := range cart.Items {
			var variant models.ProductVariant
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				First(&variant, "id = ?", item.ProductVariantID).Error; err != nil {
				return err
			}

			if variant.Stock < item.Quantity {
				return fmt.Errorf("%w: %s (%s)", ErrOutOfStock, item.ProductName, item.SKU)
			}

			variant.Stock -= item.Quantity
			if err := tx.Save(&variant).Error; err != nil {
				return err
			}

			subtotal += item.UnitPrice * float64(item.Quantity)
			totalWeight += item.Weight * float64(item.Quantity)

			orderItems = append(orderItems, models.OrderItem{
				ProductID:        item.ProductID,
				ProductVariantID: item.ProductVariantID,
				ProductName:      item.ProductName,
				Brand:            item.Brand,
				SKU:              item.SKU,
				Size:             item.Size,
				Color:            item.Color,
				Image:            item.Image,
				UnitPrice:        item.UnitPrice,
				Weight:           item.Weight,
				Quantity:         item.Quantity,
			})
		}

		shippingCost := cartControllers.ShippingCost(totalWeight)

		var discount float64
		var promoCode string
		if cart.Promotion != nil {
			if !cart.Promotion.CurrentlyActive(time.Now()) || subtotal < cart.Promotion.MinSubtotal {
				return ErrPromoLapsed
			}
			discount = cart.Promotion.DiscountFor(subtotal)
			promoCode = cart.Promotion.Code
			if cart.Promotion.VoucherOnly {
				if err := settleVoucher(tx, userID, cart.Promotion.ID); err != nil {
					return err
				}
			}
		}

		order = models.Order{
			OrderRef:      generateOrderRef(),
			UserID:        userID,
			Items:         orderItems,
			Subtotal:      subtotal,
			ShippingCost:  shippingCost,
			Discount:      discount,
			TotalAmount:   subtotal + shippingCost - discount,
			PromotionCode: promoCode,
			Status:        models.OrderStatusPending,
			PaymentStatus: models.PaymentStatusPending,
			PaymentMethod: req.PaymentMethod,
			ShipAddress:   address.Snapshot(),
			CreatedAt:     time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		if err := tx.Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.Cart{}).Where("cart_id = ?", cart.CartID).
			Update("promotion_id", nil).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// settleVoucher redeems exactly one of the user's unredeemed vouchers
// for the promotion. The oldest voucher is picked first, and the
// redeemed_at guard on the update keeps a concurrent checkout from
// consuming the same row twice.
func settleVoucher(tx *gorm.DB, userID string, promotionID uint) error {
	var voucher models.Voucher
	if err := tx.
		Where("user_id = ? AND promotion_id = ? AND redeemed_at IS NULL", userID, promotionID).
		Order("created_at, id").First(&voucher).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPromoLapsed
		}
		return err
	}

	now := time.Now()
	result := tx.Model(&models.Voucher{}).
		Where("id = ? AND redeemed_at IS NULL", voucher.ID).
		Update("redeemed_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromoLapsed
	}
	return nil
}

// -------- Handlers --------

// POST /orders/place
func PlaceOrderHandler(db *gorm.DB, mailer *mail.Sender) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			web.Error(c, http.StatusUnauthorized, "Authentication required", web.CodeUnauthorized)
			return
		}
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, err.Error(), web.CodeInvalidInput)
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrCartEmpty):
				web.Error(c, http.StatusBadRequest, "Your cart is empty", web.CodeCartEmpty)
			case errors.Is(err, ErrBadAddress):
				web.Error(c, http.StatusBadRequest, "Shipping address not found", web.CodeAddressNotFound)
			case errors.Is(err, ErrOutOfStock):
				web.Error(c, http.StatusConflict, err.Error(), web.CodeOutOfStock)
			case errors.Is(err, ErrPromoLapsed):
				web.Error(c, http.StatusConflict, "The applied promotion is no longer valid", web.CodePromoExpired)
			default:
				web.Error(c, http.StatusInternalServerError, "Failed to place order", web.CodeInternal)
			}
			return
		}

		broadcastOrderEvent("order.created", order)

		// Receipt mail is best-effort; the order stands either way.
		if email, ok := c.Get("email"); ok {
			if emailStr, _ := email.(string); emailStr != "" {
				go func() {
					_ = mailer.SendOrderConfirmation(emailStr, order.OrderRef, order.TotalAmount)
				}()
			}
		}

		web.Data(c, http.StatusCreated, order)
	}
}

// GET /orders (admin)
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		if limit < 1 || limit > 200 {
			limit = 50
		}
		offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
		if offset < 0 {
			offset = 0
		}

		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Limit(limit).Offset(offset).
			Find(&orders).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch orders", web.CodeInternal)
			return
		}
		web.Data(c, http.StatusOK, orders)
	}
}

// GET /orders/mine
func GetMyOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch orders", web.CodeInternal)
			return
		}
		web.Data(c, http.StatusOK, orders)
	}
}

// GET /orders/:orderID — numeric id or order_ref; owner or admin.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")

		query := db.Preload("Items")
		if _, err := strconv.Atoi(id); err == nil {
			query = query.Where("id = ?", id)
		} else {
			query = query.Where("order_ref = ?", id)
		}

		var order models.Order
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				web.Error(c, http.StatusNotFound, "Order not found", web.CodeOrderNotFound)
				return
			}
			web.Error(c, http.StatusInternalServerError, "Failed to fetch order", web.CodeInternal)
			return
		}

		userID, _ := c.Get("user_id")
		rolesVal, _ := c.Get("roles")
		roles, _ := rolesVal.([]string)
		isAdmin := false
		for _, r := range roles {
			if r == models.RoleAdmin {
				isAdmin = true
			}
		}
		if order.UserID != userID && !isAdmin {
			web.Error(c, http.StatusForbidden, "Not your order", web.CodeForbidden)
			return
		}

		web.Data(c, http.StatusOK, order)
	}
}

// POST /orders/:orderID/cancel
//
// Only pending orders cancel; stock goes back to the variants in the
// same transaction.
func CancelOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var order models.Order
		if err := db.Preload("Items").
			Where("id = ? AND user_id = ?", c.Param("orderID"), userID).
			First(&order).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Order not found", web.CodeOrderNotFound)
			return
		}

		if !order.Cancellable() {
			web.Error(c, http.StatusConflict,
				"Order can no longer be cancelled", web.CodeOrderNotCancellable)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, item := range order.Items {
				if err := tx.Model(&models.ProductVariant{}).
					Where("id = ?", item.ProductVariantID).
					Update("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
			return tx.Model(&order).Update("status", models.OrderStatusCancelled).Error
		})
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to cancel order", web.CodeInternal)
			return
		}

		order.Status = models.OrderStatusCancelled
		broadcastOrderEvent("order.status", &order)

		web.Data(c, http.StatusOK, order)
	}
}

// PUT /orders/:orderID/status (admin)
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, err.Error(), web.CodeInvalidInput)
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			web.Error(c, http.StatusBadRequest, err.Error(), web.CodeInvalidInput)
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Order not found", web.CodeOrderNotFound)
			return
		}
		if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "failed to update order status", web.CodeInternal)
			return
		}

		order.Status = newStatus
		broadcastOrderEvent("order.status", &order)

		web.Data(c, http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// PUT /orders/:orderID/payment-status (admin)
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			web.Error(c, http.StatusBadRequest, err.Error(), web.CodeInvalidInput)
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			web.Error(c, http.StatusBadRequest, err.Error(), web.CodeInvalidInput)
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", orderID).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Order not found", web.CodeOrderNotFound)
			return
		}
		if err := db.Model(&order).Update("payment_status", newStatus).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "failed to update payment status", web.CodeInternal)
			return
		}

		order.PaymentStatus = newStatus
		broadcastOrderEvent("order.payment", &order)

		web.Data(c, http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}
