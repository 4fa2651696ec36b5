package cartControllers

import (
	"math"
	"sort"
	"time"

	"github.com/maisonlux/storefront-api/models"
)

// CartResponse is the wire shape every cart endpoint returns. Clients
// replace their whole cart state with it after each call.
type CartResponse struct {
	ID           uint              `json:"id"`
	Items        []models.CartItem `json:"items"`
	Subtotal     float64           `json:"subtotal"`
	ShippingCost float64           `json:"shipping_cost"`
	Discount     float64           `json:"discount"`
	Total        float64           `json:"total"`
	Promotion    *PromotionSummary `json:"promotion"`
}

type PromotionSummary struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SortItems orders cart rows by the time they were added, falling back
// to row id. Quantity updates keep their row position this way.
func SortItems(items []models.CartItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if !items[i].AddedAt.Equal(items[j].AddedAt) {
			return items[i].AddedAt.Before(items[j].AddedAt)
		}
		return items[i].ID < items[j].ID
	})
}

// ShippingCost uses the weight-step rate: free under 1kg, then a flat
// step per started 30kg band.
func ShippingCost(totalWeight float64) float64 {
	if totalWeight <= 0 {
		return 0
	}
	return float64(int(math.Ceil((totalWeight-1)/30.0))) * 30.0
}

// BuildCartResponse computes totals from the cart rows. A promotion
// that is attached but no longer applicable (expired, deactivated, or
// the subtotal dropped under its minimum) contributes no discount and
// is omitted from the response.
func BuildCartResponse(cart *models.Cart) CartResponse {
	SortItems(cart.Items)

	var subtotal, totalWeight float64
	for _, item := range cart.Items {
		subtotal += item.UnitPrice * float64(item.Quantity)
		totalWeight += item.Weight * float64(item.Quantity)
	}
	shipping := ShippingCost(totalWeight)

	var discount float64
	var promo *PromotionSummary
	if cart.Promotion != nil &&
		cart.Promotion.CurrentlyActive(time.Now()) &&
		subtotal >= cart.Promotion.MinSubtotal {
		discount = cart.Promotion.DiscountFor(subtotal)
		promo = &PromotionSummary{Code: cart.Promotion.Code, Message: cart.Promotion.Message}
	}

	items := cart.Items
	if items == nil {
		items = []models.CartItem{}
	}

	return CartResponse{
		ID:           cart.CartID,
		Items:        items,
		Subtotal:     subtotal,
		ShippingCost: shipping,
		Discount:     discount,
		Total:        subtotal + shipping - discount,
		Promotion:    promo,
	}
}
