package categoryController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

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
		&models.Category{},
		&models.Product{},
		&models.ProductVariant{},
		&models.ProductImage{},
	))
	return db
}

func newCategoryRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/categories", GetCategoryTree(db))
	r.POST("/categories", CreateCategory(db))
	r.PUT("/categories/:id/move", MoveCategory(db))
	r.PUT("/categories/reorder", ReorderCategories(db))
	r.DELETE("/categories/:id", DeleteCategory(db))
	return r
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

func seedTree(t *testing.T, db *gorm.DB) (women, bags, shoes models.Category) {
	t.Helper()
	women = models.Category{Name: "Women", Slug: "women", Position: 0}
	require.NoError(t, db.Create(&women).Error)
	bags = models.Category{Name: "Bags", Slug: "bags", ParentID: &women.ID, Position: 0}
	require.NoError(t, db.Create(&bags).Error)
	shoes = models.Category{Name: "Shoes", Slug: "shoes", ParentID: &women.ID, Position: 1}
	require.NoError(t, db.Create(&shoes).Error)
	return women, bags, shoes
}

func TestBuildTreeNestsChildren(t *testing.T) {
	women := models.Category{ID: 1, Name: "Women"}
	bags := models.Category{ID: 2, Name: "Bags", ParentID: &women.ID}
	clutches := models.Category{ID: 3, Name: "Clutches", ParentID: &bags.ID}

	tree := BuildTree([]models.Category{women, bags, clutches})

	require.Len(t, tree, 1)
	require.Len(t, tree[0].Children, 1)
	require.Len(t, tree[0].Children[0].Children, 1)
	assert.Equal(t, "Clutches", tree[0].Children[0].Children[0].Name)
}

func TestCreateCategoryAppendsAtSiblingEnd(t *testing.T) {
	db := newTestDB(t)
	women, _, _ := seedTree(t, db)
	r := newCategoryRouter(db)

	w := doJSON(r, http.MethodPost, "/categories", gin.H{"name": "Jewelry", "parent_id": women.ID})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created models.Category
	require.NoError(t, db.Where("slug = ?", "jewelry").First(&created).Error)
	assert.Equal(t, 2, created.Position)
	require.NotNil(t, created.ParentID)
	assert.Equal(t, women.ID, *created.ParentID)
}

func TestMoveCategoryRejectsCycle(t *testing.T) {
	db := newTestDB(t)
	women, bags, _ := seedTree(t, db)
	r := newCategoryRouter(db)

	// Women under its own child Bags.
	w := doJSON(r, http.MethodPut, fmt.Sprintf("/categories/%d/move", women.ID),
		gin.H{"parent_id": bags.ID})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "CATEGORY_CYCLE")

	// Nothing moved.
	var unchanged models.Category
	require.NoError(t, db.First(&unchanged, women.ID).Error)
	assert.Nil(t, unchanged.ParentID)
}

func TestMoveCategoryToRoot(t *testing.T) {
	db := newTestDB(t)
	_, bags, _ := seedTree(t, db)
	r := newCategoryRouter(db)

	w := doJSON(r, http.MethodPut, fmt.Sprintf("/categories/%d/move", bags.ID),
		gin.H{"parent_id": nil})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var moved models.Category
	require.NoError(t, db.First(&moved, bags.ID).Error)
	assert.Nil(t, moved.ParentID)
	assert.Equal(t, 1, moved.Position) // appended after Women
}

func TestReorderCategories(t *testing.T) {
	db := newTestDB(t)
	women, bags, shoes := seedTree(t, db)
	r := newCategoryRouter(db)

	w := doJSON(r, http.MethodPut, "/categories/reorder", gin.H{
		"parent_id":   women.ID,
		"ordered_ids": []uint{shoes.ID, bags.ID},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var first models.Category
	require.NoError(t, db.First(&first, shoes.ID).Error)
	assert.Equal(t, 0, first.Position)
}

func TestReorderRejectsPartialSiblingList(t *testing.T) {
	db := newTestDB(t)
	women, bags, shoes := seedTree(t, db)
	r := newCategoryRouter(db)

	w := doJSON(r, http.MethodPut, "/categories/reorder", gin.H{
		"parent_id":   women.ID,
		"ordered_ids": []uint{bags.ID}, // shoes missing
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Positions untouched.
	var b, s models.Category
	require.NoError(t, db.First(&b, bags.ID).Error)
	require.NoError(t, db.First(&s, shoes.ID).Error)
	assert.Equal(t, 0, b.Position)
	assert.Equal(t, 1, s.Position)
}

func TestReorderRejectsForeignID(t *testing.T) {
	db := newTestDB(t)
	women, bags, _ := seedTree(t, db)
	r := newCategoryRouter(db)

	w := doJSON(r, http.MethodPut, "/categories/reorder", gin.H{
		"parent_id":   women.ID,
		"ordered_ids": []uint{bags.ID, 999},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteCategoryReparentsChildren(t *testing.T) {
	db := newTestDB(t)
	women, bags, _ := seedTree(t, db)
	clutches := models.Category{Name: "Clutches", Slug: "clutches", ParentID: &bags.ID}
	require.NoError(t, db.Create(&clutches).Error)

	r := newCategoryRouter(db)
	w := doJSON(r, http.MethodDelete, fmt.Sprintf("/categories/%d", bags.ID), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var orphan models.Category
	require.NoError(t, db.First(&orphan, clutches.ID).Error)
	require.NotNil(t, orphan.ParentID)
	assert.Equal(t, women.ID, *orphan.ParentID)
}

func TestCategoryTreeOrdersByPosition(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.Category{Name: "Sale", Slug: "sale", Position: 1}).Error)
	require.NoError(t, db.Create(&models.Category{Name: "New In", Slug: "new-in", Position: 0}).Error)

	r := newCategoryRouter(db)
	w := doJSON(r, http.MethodGet, "/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	assert.Equal(t, "New In", envelope.Data[0].Name)
	assert.Equal(t, "Sale", envelope.Data[1].Name)
}
