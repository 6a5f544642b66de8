package authController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/middleware"
	"github.com/PelusheLD/FV-Bodegon/models"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login checks credentials and opens the admin session. Unknown username
// and wrong password produce the same response on purpose.
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
			return
		}

		var user models.AdminUser
		err := db.Where("username = ?", req.Username).First(&user).Error
		if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		session, _ := middleware.SessionStore().Get(c.Request, middleware.SessionName)
		session.Values["user_id"] = user.ID
		session.Values["username"] = user.Username
		session.Values["role"] = string(user.Role)
		if err := session.Save(c.Request, c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to start session"})
			return
		}

		c.JSON(http.StatusOK, user)
	}
}

// Logout drops the session cookie.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.SessionStore().Get(c.Request, middleware.SessionName)
		session.Options.MaxAge = -1
		if err := session.Save(c.Request, c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Logout failed"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

// Session returns the logged-in admin, or 401.
func Session(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := middleware.SessionStore().Get(c.Request, middleware.SessionName)
		userID, _ := session.Values["user_id"].(string)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}

		var user models.AdminUser
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}
