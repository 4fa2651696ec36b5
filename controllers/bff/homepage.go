package bffControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	categoryController "github.com/maisonlux/storefront-api/controllers/category"
	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// HomepageResponse bundles everything the storefront landing page
// renders, so the client makes one request instead of four.
type HomepageResponse struct {
	Banners     []models.Banner   `json:"banners"`
	Featured    []models.Product  `json:"featured"`
	NewArrivals []models.Product  `json:"new_arrivals"`
	Categories  []models.Category `json:"categories"`
}

// GET /api/bff/homepage
//
// The four sections load concurrently; if any of them fails the whole
// response fails, so the client never renders a half-empty page.
func GetHomepage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var resp HomepageResponse

		g, ctx := errgroup.WithContext(c.Request.Context())

		g.Go(func() error {
			return db.WithContext(ctx).
				Order("position ASC, id ASC").
				Find(&resp.Banners).Error
		})
		g.Go(func() error {
			return db.WithContext(ctx).
				Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
				Preload("Variants").
				Where("featured = ?", true).
				Order("created_at DESC").
				Limit(8).
				Find(&resp.Featured).Error
		})
		g.Go(func() error {
			return db.WithContext(ctx).
				Preload("Images", func(tx *gorm.DB) *gorm.DB { return tx.Order("position ASC") }).
				Preload("Variants").
				Order("created_at DESC").
				Limit(12).
				Find(&resp.NewArrivals).Error
		})
		g.Go(func() error {
			var err error
			resp.Categories, err = categoryController.FetchTree(db.WithContext(ctx))
			return err
		})

		if err := g.Wait(); err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to load homepage", web.CodeInternal)
			return
		}

		if resp.Banners == nil {
			resp.Banners = []models.Banner{}
		}
		if resp.Featured == nil {
			resp.Featured = []models.Product{}
		}
		if resp.NewArrivals == nil {
			resp.NewArrivals = []models.Product{}
		}
		if resp.Categories == nil {
			resp.Categories = []models.Category{}
		}

		c.Header("Cache-Control", "public, s-maxage=60, stale-while-revalidate=300")
		web.Data(c, http.StatusOK, resp)
	}
}
