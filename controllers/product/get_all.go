package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

// GetProducts returns the full product list, optionally filtered by a
// case-insensitive name search. Used by the admin panel and global search.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{})

		if search := strings.TrimSpace(c.Query("search")); search != "" {
			query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
