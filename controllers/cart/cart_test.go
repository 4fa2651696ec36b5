package cartControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/maisonlux/storefront-api/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Cart{},
		&models.CartItem{},
		&models.Promotion{},
		&models.Voucher{},
	))
	return db
}

// newCartRouter mounts the cart handlers behind a stub auth middleware.
func newCartRouter(db *gorm.DB, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	grp := r.Group("/cart", func(c *gin.Context) {
		c.Set("user_id", userID)
	})
	grp.GET("", GetUserCart(db))
	grp.POST("/items", AddCartItem(db))
	grp.PUT("/items/:id", UpdateCartItem(db))
	grp.DELETE("/items/:id", RemoveCartItem(db))
	grp.DELETE("", ClearUserCart(db))
	grp.POST("/promotion", ApplyPromotionCode(db))
	grp.DELETE("/promotion", RemovePromotionCode(db))
	return r
}

func seedProduct(t *testing.T, db *gorm.DB, stock int) (models.Product, models.ProductVariant) {
	t.Helper()
	product := models.Product{Name: "Silk Scarf", Brand: "Maison Lux", SalePrice: 150, Weight: 0.3}
	require.NoError(t, db.Create(&product).Error)
	variant := models.ProductVariant{ProductID: product.ID, SKU: "SCARF-OS-CREAM", Size: "OS", Color: "Cream", Stock: stock}
	require.NoError(t, db.Create(&variant).Error)
	return product, variant
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func cartFromResponse(t *testing.T, w *httptest.ResponseRecorder) CartResponse {
	t.Helper()
	var envelope struct {
		Data CartResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestAddCartItemReturnsFullCart(t *testing.T) {
	db := newTestDB(t)
	product, variant := seedProduct(t, db, 10)
	r := newCartRouter(db, "user-1")

	w := doJSON(r, http.MethodPost, "/cart/items", gin.H{
		"product_id":         product.ID,
		"product_variant_id": variant.ID,
		"quantity":           2,
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cart := cartFromResponse(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "SCARF-OS-CREAM", cart.Items[0].SKU)
	assert.Equal(t, 300.0, cart.Subtotal)
}

func TestAddCartItemMergesDuplicateVariant(t *testing.T) {
	db := newTestDB(t)
	product, variant := seedProduct(t, db, 10)
	r := newCartRouter(db, "user-1")

	body := gin.H{"product_id": product.ID, "product_variant_id": variant.ID, "quantity": 2}
	doJSON(r, http.MethodPost, "/cart/items", body)
	w := doJSON(r, http.MethodPost, "/cart/items", body)

	require.Equal(t, http.StatusCreated, w.Code)
	cart := cartFromResponse(t, w)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 4, cart.Items[0].Quantity)
}

func TestAddCartItemRejectsOverStock(t *testing.T) {
	db := newTestDB(t)
	product, variant := seedProduct(t, db, 3)
	r := newCartRouter(db, "user-1")

	body := gin.H{"product_id": product.ID, "product_variant_id": variant.ID, "quantity": 2}
	doJSON(r, http.MethodPost, "/cart/items", body)
	w := doJSON(r, http.MethodPost, "/cart/items", body) // 2+2 > 3

	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "OUT_OF_STOCK")
}

func TestAddCartItemVariantMustBelongToProduct(t *testing.T) {
	db := newTestDB(t)
	product, _ := seedProduct(t, db, 5)
	other := models.Product{Name: "Leather Belt", SalePrice: 90, Weight: 0.2}
	require.NoError(t, db.Create(&other).Error)
	otherVariant := models.ProductVariant{ProductID: other.ID, SKU: "BELT-90", Stock: 5}
	require.NoError(t, db.Create(&otherVariant).Error)

	r := newCartRouter(db, "user-1")
	w := doJSON(r, http.MethodPost, "/cart/items", gin.H{
		"product_id":         product.ID,
		"product_variant_id": otherVariant.ID,
		"quantity":           1,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "VARIANT_NOT_FOUND")
}

func TestUpdateCartItemKeepsPosition(t *testing.T) {
	db := newTestDB(t)
	product, variant := seedProduct(t, db, 20)
	second := models.ProductVariant{ProductID: product.ID, SKU: "SCARF-OS-NOIR", Size: "OS", Color: "Noir", Stock: 20}
	require.NoError(t, db.Create(&second).Error)

	r := newCartRouter(db, "user-1")
	doJSON(r, http.MethodPost, "/cart/items", gin.H{"product_id": product.ID, "product_variant_id": variant.ID, "quantity": 1})
	doJSON(r, http.MethodPost, "/cart/items", gin.H{"product_id": product.ID, "product_variant_id": second.ID, "quantity": 1})

	var first models.CartItem
	require.NoError(t, db.Where("product_variant_id = ?", variant.ID).First(&first).Error)
	addedAt := first.AddedAt

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/cart/items/%d", first.ID), gin.H{"quantity": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cart := cartFromResponse(t, w)
	require.Len(t, cart.Items, 2)
	// The updated row keeps its slot at the front of the list.
	assert.Equal(t, first.ID, cart.Items[0].ID)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.WithinDuration(t, addedAt, cart.Items[0].AddedAt, time.Second)
}

func TestRemoveCartItemUnknownID(t *testing.T) {
	db := newTestDB(t)
	r := newCartRouter(db, "user-1")

	w := doJSON(r, http.MethodDelete, "/cart/items/999", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "CART_ITEM_NOT_FOUND")
}

func TestClearCartDropsPromotion(t *testing.T) {
	db := newTestDB(t)
	product, variant := seedProduct(t, db, 10)
	promo := models.Promotion{Code: "WELCOME10", Type: models.PromotionPercent, Value: 10, Active: true}
	require.NoError(t, db.Create(&promo).Error)

	r := newCartRouter(db, "user-1")
	doJSON(r, http.MethodPost, "/cart/items", gin.H{"product_id": product.ID, "product_variant_id": variant.ID, "quantity": 1})
	w := doJSON(r, http.MethodPost, "/cart/promotion", gin.H{"code": "welcome10"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(r, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	cart := cartFromResponse(t, w)
	assert.Empty(t, cart.Items)
	assert.Nil(t, cart.Promotion)

	var dbCart models.Cart
	require.NoError(t, db.Where("user_id = ?", "user-1").First(&dbCart).Error)
	assert.Nil(t, dbCart.PromotionID)
}

func TestApplyPromotionBelowMinimum(t *testing.T) {
	db := newTestDB(t)
	product, variant := seedProduct(t, db, 10)
	promo := models.Promotion{Code: "SPEND500", Type: models.PromotionFixed, Value: 50, MinSubtotal: 500, Active: true}
	require.NoError(t, db.Create(&promo).Error)

	r := newCartRouter(db, "user-1")
	doJSON(r, http.MethodPost, "/cart/items", gin.H{"product_id": product.ID, "product_variant_id": variant.ID, "quantity": 1})

	w := doJSON(r, http.MethodPost, "/cart/promotion", gin.H{"code": "SPEND500"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "PROMO_MIN_SUBTOTAL")
}

func TestApplyVoucherOnlyPromotionWithoutVoucher(t *testing.T) {
	db := newTestDB(t)
	product, variant := seedProduct(t, db, 10)
	promo := models.Promotion{Code: "VIPONLY", Type: models.PromotionPercent, Value: 15, VoucherOnly: true, Active: true}
	require.NoError(t, db.Create(&promo).Error)

	r := newCartRouter(db, "user-1")
	doJSON(r, http.MethodPost, "/cart/items", gin.H{"product_id": product.ID, "product_variant_id": variant.ID, "quantity": 1})

	w := doJSON(r, http.MethodPost, "/cart/promotion", gin.H{"code": "VIPONLY"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "PROMO_INVALID")
}
