package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/auth"
	"github.com/maisonlux/storefront-api/mail"
)

// SetupAuthRoutes registers all “/api/v1/auth/*” endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, mailer *mail.Sender) {
	authGroup := r.Group("/api/v1/auth")
	{
		authGroup.POST("/login", auth.Login(db))
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/refresh", auth.Refresh(db))
		authGroup.POST("/logout", auth.Logout())

		// Passwordless login / email verification
		authGroup.POST("/otp/request", auth.RequestOTP(db, mailer))
		authGroup.POST("/otp/verify", auth.VerifyOTP(db))

		// Password recovery
		authGroup.POST("/password/forgot", auth.ForgotPassword(db, mailer))
		authGroup.POST("/password/reset", auth.ResetPassword(db))

		// Anonymous browsing session
		authGroup.POST("/guest", auth.CreateGuestUser(db))
	}
}
