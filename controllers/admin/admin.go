package adminController

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

type adminUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// GetAdminUsers lists the back-office accounts. Password hashes never
// leave the model (json:"-").
// GET /api/admin/users
func GetAdminUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.AdminUser
		if err := db.Order("created_at").Find(&users).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
			return
		}
		c.JSON(http.StatusOK, users)
	}
}

// CreateAdminUser adds a back-office account with a bcrypt-hashed
// password.
// POST /api/admin/users
func CreateAdminUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		req.Username = strings.TrimSpace(req.Username)
		req.Email = strings.TrimSpace(req.Email)
		if req.Username == "" || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
			return
		}
		role := models.RoleAdmin
		if req.Role != "" {
			role = models.AdminRole(req.Role)
			if !role.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "role must be 'admin' or 'superadmin'"})
				return
			}
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}

		user := models.AdminUser{
			Username: req.Username,
			Email:    req.Email,
			Password: string(hash),
			Role:     role,
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		c.JSON(http.StatusCreated, user)
	}
}

// UpdateAdminUser partially updates an account; a new password is
// re-hashed.
// PUT /api/admin/users/:id
func UpdateAdminUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.AdminUser
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			}
			return
		}

		var req adminUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		if username := strings.TrimSpace(req.Username); username != "" {
			user.Username = username
		}
		if email := strings.TrimSpace(req.Email); email != "" {
			user.Email = email
		}
		if req.Role != "" {
			role := models.AdminRole(req.Role)
			if !role.Valid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "role must be 'admin' or 'superadmin'"})
				return
			}
			user.Role = role
		}
		if req.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
				return
			}
			user.Password = string(hash)
		}

		if err := db.Save(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// DeleteAdminUser removes an account.
// DELETE /api/admin/users/:id
func DeleteAdminUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := db.Delete(&models.AdminUser{}, "id = ?", c.Param("id"))
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
