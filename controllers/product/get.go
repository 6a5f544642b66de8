package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

// GetProductByID returns a single product.
// URL param: /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
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
		c.JSON(http.StatusOK, product)
	}
}

// GetFeaturedProducts returns up to ?limit featured products (default 12)
// for the storefront carousel strip.
func GetFeaturedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := 12
		if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
			limit = l
		}

		var products []models.Product
		if err := db.Where("featured = ?", true).Limit(limit).Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
