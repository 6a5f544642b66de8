package settingsController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

// GetSettings returns the singleton site configuration row.
// GET /api/settings
func GetSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var settings models.SiteSettings
		if err := db.First(&settings).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Settings not configured"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			}
			return
		}
		c.JSON(http.StatusOK, settings)
	}
}

// UpdateSettings upserts the singleton: the existing row is replaced
// field-for-field, or the first row is created.
// PUT /api/settings
func UpdateSettings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var incoming models.SiteSettings
		if err := c.ShouldBindJSON(&incoming); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}
		if incoming.SiteName == "" || incoming.ContactPhone == "" || incoming.ContactEmail == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "siteName, contactPhone and contactEmail are required"})
			return
		}

		var existing models.SiteSettings
		err := db.First(&existing).Error
		switch err {
		case nil:
			incoming.ID = existing.ID
			if err := db.Save(&incoming).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update settings"})
				return
			}
		case gorm.ErrRecordNotFound:
			incoming.ID = ""
			if err := db.Create(&incoming).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create settings"})
				return
			}
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch settings"})
			return
		}

		c.JSON(http.StatusOK, incoming)
	}
}
