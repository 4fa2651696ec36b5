package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending     OrderStatus = "pending"       // Order placed, awaiting confirmation
	OrderStatusConfirmed   OrderStatus = "confirmed"     // Confirmed by seller
	OrderStatusReadyToShip OrderStatus = "ready_to_ship" // Packed and ready for dispatch
	OrderStatusShipped     OrderStatus = "shipped"       // Out for delivery
	OrderStatusDelivered   OrderStatus = "delivered"     // Customer received the item
	OrderStatusReturned    OrderStatus = "returned"      // Customer returned the item
	OrderStatusCancelled   OrderStatus = "cancelled"     // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	OrderRef      string        `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID        string        `gorm:"index;not null" json:"user_id"`
	User          User          `gorm:"foreignKey:UserID" json:"-"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Subtotal      float64       `json:"subtotal"`
	ShippingCost  float64       `json:"shipping_cost"`
	Discount      float64       `json:"discount"`
	TotalAmount   float64       `json:"total_amount"`
	PromotionCode string        `json:"promotion_code,omitempty"`
	Status        OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod string        `json:"payment_method"` // e.g. "card", "cod"
	// Shipping address is snapshotted at checkout; later address-book
	// edits never touch placed orders.
	ShipAddress ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"ship_address"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ShippingAddress is the checkout-time copy of an address-book entry.
type ShippingAddress struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone"`
	Country    string `json:"country"`
	State      string `json:"state"`
	City       string `json:"city"`
	Street     string `json:"street"`
	PostalCode string `json:"postal_code"`
}

// Snapshot copies the deliverable fields of an address book entry.
func (a *Address) Snapshot() ShippingAddress {
	return ShippingAddress{
		FullName:   a.FullName,
		Phone:      a.Phone,
		Country:    a.Country,
		State:      a.State,
		City:       a.City,
		Street:     a.Street,
		PostalCode: a.PostalCode,
	}
}

type OrderItem struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	OrderID          uint    `gorm:"index" json:"-"`
	ProductID        uint    `json:"product_id"`
	ProductVariantID uint    `json:"product_variant_id"`
	ProductName      string  `json:"product_name"`
	Brand            string  `json:"brand"`
	SKU              string  `json:"sku"`
	Size             string  `json:"size"`
	Color            string  `json:"color"`
	Image            string  `json:"image"`
	UnitPrice        float64 `json:"unit_price"`
	Weight           float64 `json:"weight"`
	Quantity         int     `json:"quantity"`
}

// Cancellable reports whether the customer may still cancel the order.
func (o *Order) Cancellable() bool {
	return o.Status == OrderStatusPending
}
