package categoryController

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/maisonlux/storefront-api/models"
	"github.com/maisonlux/storefront-api/web"
)

// BuildTree assembles the nested category tree from a flat slice.
// Children come out sorted by position because the query orders rows.
func BuildTree(flat []models.Category) []models.Category {
	byParent := make(map[uint][]models.Category)
	var roots []models.Category
	for _, cat := range flat {
		if cat.ParentID == nil {
			roots = append(roots, cat)
		} else {
			byParent[*cat.ParentID] = append(byParent[*cat.ParentID], cat)
		}
	}

	var attach func(node *models.Category)
	attach = func(node *models.Category) {
		node.Children = byParent[node.ID]
		for i := range node.Children {
			attach(&node.Children[i])
		}
	}
	for i := range roots {
		attach(&roots[i])
	}
	return roots
}

// FetchTree loads all categories and assembles the nested tree.
func FetchTree(db *gorm.DB) ([]models.Category, error) {
	var flat []models.Category
	if err := db.Order("position ASC, id ASC").Find(&flat).Error; err != nil {
		return nil, err
	}
	tree := BuildTree(flat)
	if tree == nil {
		tree = []models.Category{}
	}
	return tree, nil
}

// GET /api/v1/categories
func GetCategoryTree(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tree, err := FetchTree(db)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch categories", web.CodeInternal)
			return
		}
		web.Data(c, http.StatusOK, tree)
	}
}

func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = strings.ReplaceAll(slug, " ", "-")
	return slug
}

type categoryInput struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug"`
	Image    string `json:"image"`
	ParentID *uint  `json:"parent_id"`
}

// POST /admin/categories — appends at the end of its siblings.
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input categoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "name is required", web.CodeInvalidInput)
			return
		}

		if input.ParentID != nil {
			var parent models.Category
			if err := db.First(&parent, *input.ParentID).Error; err != nil {
				web.Error(c, http.StatusNotFound, "Parent category not found", web.CodeCategoryNotFound)
				return
			}
		}

		slug := input.Slug
		if slug == "" {
			slug = slugify(input.Name)
		}

		var siblings int64
		query := db.Model(&models.Category{})
		if input.ParentID == nil {
			query = query.Where("parent_id IS NULL")
		} else {
			query = query.Where("parent_id = ?", *input.ParentID)
		}
		if err := query.Count(&siblings).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to create category", web.CodeInternal)
			return
		}

		category := models.Category{
			Name:     input.Name,
			Slug:     slug,
			Image:    input.Image,
			ParentID: input.ParentID,
			Position: int(siblings),
		}
		if err := db.Create(&category).Error; err != nil {
			web.Error(c, http.StatusConflict, "A category with this slug already exists", web.CodeInvalidInput)
			return
		}

		web.Data(c, http.StatusCreated, category)
	}
}

// PUT /admin/categories/:id
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Category not found", web.CodeCategoryNotFound)
			return
		}

		var input struct {
			Name  *string `json:"name"`
			Slug  *string `json:"slug"`
			Image *string `json:"image"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid input", web.CodeInvalidInput)
			return
		}

		if input.Name != nil {
			category.Name = *input.Name
		}
		if input.Slug != nil {
			category.Slug = *input.Slug
		}
		if input.Image != nil {
			category.Image = *input.Image
		}

		if err := db.Save(&category).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to update category", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, category)
	}
}

// isDescendant walks the parent chain of candidate to see whether
// ancestorID sits above it.
func isDescendant(db *gorm.DB, ancestorID uint, candidateID *uint) (bool, error) {
	for candidateID != nil {
		if *candidateID == ancestorID {
			return true, nil
		}
		var node models.Category
		if err := db.Select("id", "parent_id").First(&node, *candidateID).Error; err != nil {
			return false, err
		}
		candidateID = node.ParentID
	}
	return false, nil
}

type moveInput struct {
	ParentID *uint `json:"parent_id"`
}

// PUT /admin/categories/:id/move
//
// Re-parents a node. Moving a category under itself or one of its own
// descendants is rejected.
func MoveCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Category not found", web.CodeCategoryNotFound)
			return
		}

		var input moveInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid input", web.CodeInvalidInput)
			return
		}

		if input.ParentID != nil {
			cyclic, err := isDescendant(db, category.ID, input.ParentID)
			if err != nil {
				web.Error(c, http.StatusNotFound, "Parent category not found", web.CodeCategoryNotFound)
				return
			}
			if cyclic {
				web.Error(c, http.StatusUnprocessableEntity,
					"Cannot move a category under its own subtree", web.CodeCategoryCycle)
				return
			}
		}

		var siblings int64
		query := db.Model(&models.Category{})
		if input.ParentID == nil {
			query = query.Where("parent_id IS NULL")
		} else {
			query = query.Where("parent_id = ?", *input.ParentID)
		}
		if err := query.Count(&siblings).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to move category", web.CodeInternal)
			return
		}

		updates := map[string]interface{}{
			"parent_id": input.ParentID,
			"position":  int(siblings),
		}
		if err := db.Model(&category).Updates(updates).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to move category", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, category)
	}
}

type reorderInput struct {
	ParentID   *uint  `json:"parent_id"`
	OrderedIDs []uint `json:"ordered_ids" binding:"required"`
}

// PUT /admin/categories/reorder
//
// Replaces the sibling order under one parent in a single transaction.
// The submitted ids must be exactly the current siblings; anything else
// rejects the whole request and positions stay untouched.
func ReorderCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input reorderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			web.Error(c, http.StatusBadRequest, "ordered_ids is required", web.CodeInvalidInput)
			return
		}

		var siblings []models.Category
		query := db
		if input.ParentID == nil {
			query = query.Where("parent_id IS NULL")
		} else {
			query = query.Where("parent_id = ?", *input.ParentID)
		}
		if err := query.Find(&siblings).Error; err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch categories", web.CodeInternal)
			return
		}

		if len(siblings) != len(input.OrderedIDs) {
			web.Error(c, http.StatusBadRequest,
				"ordered_ids must list every sibling exactly once", web.CodeInvalidInput)
			return
		}
		existing := make(map[uint]bool, len(siblings))
		for _, s := range siblings {
			existing[s.ID] = true
		}
		for _, id := range input.OrderedIDs {
			if !existing[id] {
				web.Error(c, http.StatusBadRequest,
					"ordered_ids must list every sibling exactly once", web.CodeInvalidInput)
				return
			}
			delete(existing, id)
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for position, id := range input.OrderedIDs {
				if err := tx.Model(&models.Category{}).Where("id = ?", id).
					Update("position", position).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to reorder categories", web.CodeInternal)
			return
		}

		tree, err := FetchTree(db)
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to fetch categories", web.CodeInternal)
			return
		}
		web.Data(c, http.StatusOK, tree)
	}
}

// DELETE /admin/categories/:id
//
// Children are re-parented to the deleted node's parent; product links
// are cleared in the same transaction.
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, c.Param("id")).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Category not found", web.CodeCategoryNotFound)
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Category{}).Where("parent_id = ?", category.ID).
				Update("parent_id", category.ParentID).Error; err != nil {
				return err
			}
			if err := tx.Model(&category).Association("Products").Clear(); err != nil {
				return err
			}
			return tx.Delete(&category).Error
		})
		if err != nil {
			web.Error(c, http.StatusInternalServerError, "Failed to delete category", web.CodeInternal)
			return
		}

		web.Data(c, http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}

// GetCategoryByID returns one category with its products, for the admin
// console detail pane.
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			web.Error(c, http.StatusBadRequest, "Invalid category ID", web.CodeInvalidInput)
			return
		}

		var category models.Category
		if err := db.Preload("Products").First(&category, id).Error; err != nil {
			web.Error(c, http.StatusNotFound, "Category not found", web.CodeCategoryNotFound)
			return
		}

		web.Data(c, http.StatusOK, category)
	}
}
