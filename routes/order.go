package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	orderControllers "github.com/maisonlux/storefront-api/controllers/order"
	"github.com/maisonlux/storefront-api/mail"
	"github.com/maisonlux/storefront-api/middleware"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, mailer *mail.Sender) {
	orders := r.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		// Checkout from the caller's cart
		orders.POST("/place", orderControllers.PlaceOrderHandler(db, mailer))

		// Order history for the caller
		orders.GET("/mine", orderControllers.GetMyOrdersHandler(db))

		// Single order by id or order_ref (owner or admin)
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Customer cancellation while still pending
		orders.POST("/:orderID/cancel", orderControllers.CancelOrderHandler(db))
	}

	// websocket endpoint for real-time order updates (admin dashboard)
	r.GET("/orders/ws", middleware.ValidateAPIKey, orderControllers.OrderWebSocketHandler)
}
