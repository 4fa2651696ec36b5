package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	productController "github.com/maisonlux/storefront-api/controllers/product"
	"github.com/maisonlux/storefront-api/mail"
	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/routes"
)

func main() {
	log.Println("✅ Starting Maison Lux storefront API...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserRole{},
		&models.Address{},
		&models.GuestUser{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
		&models.Category{},
		&models.Cart{},
		&models.CartItem{},
		&models.GuestCart{},
		&models.GuestCartItem{},
		&models.Promotion{},
		&models.Voucher{},
		&models.Order{},
		&models.OrderItem{},
		&models.OTPCode{},
		&models.Banner{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Outbound mail (no-op when SENDGRID_API_KEY is unset)
	mailer := mail.NewFromEnv()

	// Gin setup
	r := gin.Default()

	// Allow large image uploads
	r.MaxMultipartMemory = 64 << 20 // 64MB

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Serve uploaded images
	r.Static("/uploads", productController.UploadRoot())

	// Setup routes
	routes.SetupRoutes(r, db, mailer)

	// Purge expired OTP codes and stale guest sessions hourly
	go startPurgeLoop(db, time.Hour)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// allowedOrigins reads CORS_ORIGINS (comma-separated) and falls back to
// allowing everything, which only makes sense in development.
func allowedOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// startPurgeLoop deletes consumed/expired OTP rows and guest sessions
// past their TTL, along with any carts those sessions left behind.
func startPurgeLoop(db *gorm.DB, interval time.Duration) {
	for {
		time.Sleep(interval)

		now := time.Now()

		if err := db.Where("expires_at < ? OR consumed_at IS NOT NULL", now).
			Delete(&models.OTPCode{}).Error; err != nil {
			log.Printf("❌ Failed to purge OTP codes: %v", err)
		}

		var stale []models.GuestUser
		if err := db.Where("expires_at < ?", now).Find(&stale).Error; err != nil {
			log.Printf("❌ Failed to list stale guest sessions: %v", err)
			continue
		}
		for _, guest := range stale {
			err := db.Transaction(func(tx *gorm.DB) error {
				var cart models.GuestCart
				if err := tx.Where("guest_id = ?", guest.ID).First(&cart).Error; err == nil {
					if err := tx.Where("cart_id = ?", cart.CartID).
						Delete(&models.GuestCartItem{}).Error; err != nil {
						return err
					}
					if err := tx.Delete(&cart).Error; err != nil {
						return err
					}
				}
				return tx.Delete(&guest).Error
			})
			if err != nil {
				log.Printf("❌ Failed to purge guest session %s: %v", guest.ID, err)
			}
		}
		if len(stale) > 0 {
			log.Printf("🗑️ Purged %d stale guest sessions", len(stale))
		}
	}
}
