package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/maisonlux/storefront-api/controllers/admin"
	cartControllers "github.com/maisonlux/storefront-api/controllers/cart"
	categoryController "github.com/maisonlux/storefront-api/controllers/category"
	orderControllers "github.com/maisonlux/storefront-api/controllers/order"
	productController "github.com/maisonlux/storefront-api/controllers/product"
	userControllers "github.com/maisonlux/storefront-api/controllers/user"
	"github.com/maisonlux/storefront-api/middleware"
)

// SetupAdminRoutes registers all “/admin/*” endpoints. Requires API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── User Management ───────────
		adminGroup.GET("/users", userControllers.GetAllUsers(db))

		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productController.CreateProduct(db))
			productAdmin.PUT("/:id", productController.UpdateProduct(db))
			productAdmin.DELETE("/:id", productController.DeleteProduct(db))

			productAdmin.POST("/:id/variants", productController.CreateVariant(db))
			productAdmin.PUT("/:id/variants/:variantID", productController.UpdateVariant(db))
			productAdmin.DELETE("/:id/variants/:variantID", productController.DeleteVariant(db))

			productAdmin.POST("/:id/images", productController.AddProductImage(db))
			productAdmin.DELETE("/:id/images/:imageID", productController.DeleteProductImage(db))

			productAdmin.POST("/import-excel", productController.ImportInventoryFromExcel(db))
			productAdmin.GET("/export-excel", productController.ExportInventoryToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", categoryController.CreateCategory(db))
			categoryAdmin.PUT("/:id", categoryController.UpdateCategory(db))
			categoryAdmin.PUT("/:id/move", categoryController.MoveCategory(db))
			categoryAdmin.PUT("/reorder", categoryController.ReorderCategories(db))
			categoryAdmin.DELETE("/:id", categoryController.DeleteCategory(db))
		}

		// ─────────── Order Management ───────────
		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(db))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))
			orderAdmin.PUT("/:orderID/payment-status", orderControllers.UpdatePaymentStatusHandler(db))
		}

		// ─────────── Staff Management ───────────
		staffMgmt := adminGroup.Group("/staff")
		{
			staffMgmt.GET("", adminController.ListStaff(db))
			staffMgmt.POST("/grant", adminController.GrantStaff(db))
			staffMgmt.POST("/revoke", adminController.RevokeStaff(db))
		}

		// ─────────── Homepage Banners ───────────
		bannerMgmt := adminGroup.Group("/banners")
		{
			bannerMgmt.POST("/upload", adminController.UploadBanner(db))
			bannerMgmt.GET("", adminController.GetBanners(db))
			bannerMgmt.PUT("/:id", adminController.UpdateBanner(db))
			bannerMgmt.DELETE("/:id", adminController.DeleteBanner(db))
		}

		// ─────────── Vouchers ───────────
		adminGroup.POST("/vouchers", userControllers.GrantVoucher(db))

		// ─────────── Support: inspect a customer's cart ───────────
		adminGroup.GET("/user-cart/:user_id", cartControllers.GetAdminUserCart(db))
	}
}
