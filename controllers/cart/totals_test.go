package cartControllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonlux/storefront-api/models"
)

func TestShippingCost(t *testing.T) {
	cases := []struct {
		weight float64
		want   float64
	}{
		{0, 0},
		{0.5, 0},
		{1, 0},
		{1.1, 30},
		{15, 30},
		{31, 30},
		{31.5, 60},
		{61, 60},
		{61.1, 90},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ShippingCost(tc.weight), "weight %v", tc.weight)
	}
}

func TestSortItemsKeepsInsertionOrder(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	items := []models.CartItem{
		{ID: 3, AddedAt: base.Add(2 * time.Minute)},
		{ID: 1, AddedAt: base},
		{ID: 5, AddedAt: base.Add(time.Minute)},
		{ID: 2, AddedAt: base.Add(time.Minute)}, // same instant as ID 5
	}

	SortItems(items)

	var ids []uint
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []uint{1, 2, 5, 3}, ids)
}

func TestBuildCartResponseTotals(t *testing.T) {
	cart := &models.Cart{
		CartID: 7,
		Items: []models.CartItem{
			{ID: 1, UnitPrice: 120, Weight: 0.4, Quantity: 2, AddedAt: time.Now()},
			{ID: 2, UnitPrice: 80, Weight: 0.2, Quantity: 1, AddedAt: time.Now()},
		},
	}

	resp := BuildCartResponse(cart)

	assert.Equal(t, 320.0, resp.Subtotal)
	assert.Equal(t, 0.0, resp.ShippingCost) // 1kg total, still free
	assert.Equal(t, 0.0, resp.Discount)
	assert.Equal(t, 320.0, resp.Total)
	assert.Nil(t, resp.Promotion)
}

func TestBuildCartResponseEmptyCart(t *testing.T) {
	resp := BuildCartResponse(&models.Cart{CartID: 1})

	require.NotNil(t, resp.Items)
	assert.Len(t, resp.Items, 0)
	assert.Equal(t, 0.0, resp.Total)
}

func TestBuildCartResponsePercentPromotion(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{UnitPrice: 500, Quantity: 2, AddedAt: time.Now()},
		},
		Promotion: &models.Promotion{
			Code:   "SPRING10",
			Type:   models.PromotionPercent,
			Value:  10,
			Active: true,
		},
	}

	resp := BuildCartResponse(cart)

	assert.Equal(t, 100.0, resp.Discount)
	require.NotNil(t, resp.Promotion)
	assert.Equal(t, "SPRING10", resp.Promotion.Code)
}

func TestBuildCartResponsePromotionUnderMinimum(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{UnitPrice: 50, Quantity: 1, AddedAt: time.Now()},
		},
		Promotion: &models.Promotion{
			Code:        "BIGSPEND",
			Type:        models.PromotionFixed,
			Value:       25,
			MinSubtotal: 200,
			Active:      true,
		},
	}

	resp := BuildCartResponse(cart)

	// The code stays attached in the DB but contributes nothing until
	// the subtotal climbs back over the minimum.
	assert.Equal(t, 0.0, resp.Discount)
	assert.Nil(t, resp.Promotion)
	assert.Equal(t, 50.0, resp.Total)
}

func TestBuildCartResponseExpiredPromotion(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	cart := &models.Cart{
		Items: []models.CartItem{
			{UnitPrice: 300, Quantity: 1, AddedAt: time.Now()},
		},
		Promotion: &models.Promotion{
			Code:      "GONE",
			Type:      models.PromotionFixed,
			Value:     30,
			Active:    true,
			ExpiresAt: &past,
		},
	}

	resp := BuildCartResponse(cart)

	assert.Equal(t, 0.0, resp.Discount)
	assert.Nil(t, resp.Promotion)
}

func TestBuildCartResponseFixedDiscountCappedAtSubtotal(t *testing.T) {
	cart := &models.Cart{
		Items: []models.CartItem{
			{UnitPrice: 20, Quantity: 1, AddedAt: time.Now()},
		},
		Promotion: &models.Promotion{
			Code:   "HUGE",
			Type:   models.PromotionFixed,
			Value:  500,
			Active: true,
		},
	}

	resp := BuildCartResponse(cart)

	assert.Equal(t, 20.0, resp.Discount)
	assert.Equal(t, 0.0, resp.Total)
}
