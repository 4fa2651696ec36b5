package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/mail"
)

// SetupRoutes is the single entry‐point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, mailer *mail.Sender) {
	// 1️⃣ Public Auth routes (no middleware)
	SetupAuthRoutes(r, db, mailer)

	// 2️⃣ Public storefront routes (catalog, categories, guest cart, BFF)
	SetupStorefrontRoutes(r, db)

	// 3️⃣ User routes (JWT‐protected)
	SetupUserRoutes(r, db)

	// 4️⃣ Order routes (JWT‐protected, admin feed on API key)
	SetupOrderRoutes(r, db, mailer)

	// 5️⃣ Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, db)
}
