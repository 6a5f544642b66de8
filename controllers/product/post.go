package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

// CreateProduct creates a product inside its category.
// POST /api/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		req.Name = strings.TrimSpace(req.Name)
		if req.Name == "" || req.CategoryID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and categoryId are required"})
			return
		}
		if req.Price == nil || float64(*req.Price) <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
			return
		}

		measurement := models.MeasurementUnit
		if req.MeasurementType != "" {
			measurement = models.MeasurementType(req.MeasurementType)
			if !measurement.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "measurementType must be 'unit' or 'weight'"})
				return
			}
		}

		var category models.Category
		if err := db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate category"})
			}
			return
		}

		product := models.Product{
			Name:            req.Name,
			Price:           float64(*req.Price),
			CategoryID:      category.ID,
			MeasurementType: measurement,
		}
		if req.ImageURL != nil {
			product.ImageURL = *req.ImageURL
		}
		if req.ExternalCode != nil {
			product.ExternalCode = *req.ExternalCode
		}
		if req.Stock != nil {
			product.Stock = float64(*req.Stock)
		}
		if req.Featured != nil {
			product.Featured = *req.Featured
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
