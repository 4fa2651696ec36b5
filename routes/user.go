package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/maisonlux/storefront-api/controllers/cart"
	userControllers "github.com/maisonlux/storefront-api/controllers/user"
	"github.com/maisonlux/storefront-api/middleware"
)

// SetupUserRoutes registers all “/api/v1/users/me/*” endpoints. Requires JWT middleware.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	me := r.Group("/api/v1/users/me")
	me.Use(middleware.ValidateToken)
	{
		// ──────────────── Profile ────────────────
		me.GET("", userControllers.GetMe(db))
		me.PUT("", userControllers.UpdateMe(db))

		// ──────────────── Address Book ────────────────
		addresses := me.Group("/addresses")
		{
			addresses.GET("", userControllers.ListAddresses(db))
			addresses.POST("", userControllers.CreateAddress(db))
			addresses.PUT("/:id", userControllers.UpdateAddress(db))
			addresses.DELETE("/:id", userControllers.DeleteAddress(db))
		}

		// ──────────────── Vouchers ────────────────
		me.GET("/vouchers", userControllers.ListVouchers(db))

		// ──────────────── Shopping Cart ────────────────
		cart := me.Group("/cart")
		{
			cart.GET("", cartControllers.GetUserCart(db))
			cart.POST("/items", cartControllers.AddCartItem(db))
			cart.PUT("/items/:id", cartControllers.UpdateCartItem(db))
			cart.DELETE("/items/:id", cartControllers.RemoveCartItem(db))
			cart.DELETE("", cartControllers.ClearUserCart(db))
			cart.POST("/promotion", cartControllers.ApplyPromotionCode(db))
			cart.DELETE("/promotion", cartControllers.RemovePromotionCode(db))
		}
	}
}
