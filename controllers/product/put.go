package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

// UpdateProduct partially updates a product. Absent fields keep their
// current value.
// PUT /api/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}

		var req productRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		if name := strings.TrimSpace(req.Name); name != "" {
			product.Name = name
		}
		if req.Price != nil {
			if float64(*req.Price) <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price must be greater than zero"})
				return
			}
			product.Price = float64(*req.Price)
		}
		if req.MeasurementType != "" {
			measurement := models.MeasurementType(req.MeasurementType)
			if !measurement.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "measurementType must be 'unit' or 'weight'"})
				return
			}
			product.MeasurementType = measurement
		}
		if req.CategoryID != "" && req.CategoryID != product.CategoryID {
			var category models.Category
			if err := db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
				c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
				return
			}
			product.CategoryID = category.ID
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

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
