package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	bffControllers "github.com/maisonlux/storefront-api/controllers/bff"
	cartControllers "github.com/maisonlux/storefront-api/controllers/cart"
	categoryController "github.com/maisonlux/storefront-api/controllers/category"
	productControllers "github.com/maisonlux/storefront-api/controllers/product"
)

// SetupStorefrontRoutes registers the public browsing surface. No auth:
// anyone can read the catalog, and guest carts are keyed by guest_id.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api/v1")
	{
		// ──────────────── Catalog ────────────────
		api.GET("/products", productControllers.GetProducts(db))
		api.GET("/products/:id", productControllers.GetProductByID(db))

		// ──────────────── Category Tree ────────────────
		api.GET("/categories", categoryController.GetCategoryTree(db))
		api.GET("/categories/:id", categoryController.GetCategoryByID(db))
	}

	// ──────────────── Guest Cart ────────────────
	guestCart := r.Group("/guest/cart")
	{
		guestCart.GET("/", cartControllers.GetGuestCart(db))
		guestCart.POST("/items", cartControllers.AddGuestCartItem(db))
		guestCart.PUT("/items/:id", cartControllers.UpdateGuestCartItem(db))
		guestCart.DELETE("/items/:id", cartControllers.DeleteGuestCartItem(db))
		guestCart.DELETE("/", cartControllers.ClearGuestCart(db))
	}

	// ──────────────── Homepage Aggregate ────────────────
	r.GET("/api/bff/homepage", bffControllers.GetHomepage(db))
}
