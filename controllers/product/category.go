package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

type categoryRequest struct {
	Name     string  `json:"name"`
	ImageURL *string `json:"imageUrl"`
	Enabled  *bool   `json:"enabled"`
	LeySeca  *bool   `json:"leySeca"`
}

// GetAllCategories returns every category, disabled ones included. The
// storefront filters on enabled client-side; the admin panel needs the
// full list.
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("created_at").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// GetCategoryByID resolves one category. Direct access works even when
// the category is disabled; only discovery hides it.
func GetCategoryByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			}
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// CreateCategory adds a category. New categories default to enabled and
// not ley seca.
// POST /api/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}

		category := models.Category{Name: req.Name, Enabled: true}
		if req.ImageURL != nil {
			category.ImageURL = *req.ImageURL
		}
		if req.Enabled != nil {
			category.Enabled = *req.Enabled
		}
		if req.LeySeca != nil {
			category.LeySeca = *req.LeySeca
		}

		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// UpdateCategory partially updates a category.
// PUT /api/categories/:id
func UpdateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := db.First(&category, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			}
			return
		}

		var req categoryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		if name := strings.TrimSpace(req.Name); name != "" {
			category.Name = name
		}
		if req.ImageURL != nil {
			category.ImageURL = *req.ImageURL
		}
		if req.Enabled != nil {
			category.Enabled = *req.Enabled
		}
		if req.LeySeca != nil {
			category.LeySeca = *req.LeySeca
		}

		if err := db.Save(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DeleteCategory removes a category and all of its products together.
// DELETE /api/categories/:id
func DeleteCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("category_id = ?", id).Delete(&models.Product{}).Error; err != nil {
				return err
			}
			result := tx.Delete(&models.Category{}, "id = ?", id)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
			return nil
		})
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			}
			return
		}
		c.Status(http.StatusNoContent)
	}
}
