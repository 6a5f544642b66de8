package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires the public storefront
// API and the session-protected admin API.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	SetupPublicRoutes(r, db)
	SetupAdminRoutes(r, db)
}
