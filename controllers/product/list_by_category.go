package productcontroller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

// PagedProducts is the response shape for paginated category listings.
type PagedProducts struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
	HasMore  bool             `json:"hasMore"`
}

// QueryCategoryProducts returns one page of a category's products,
// optionally narrowed by a case-insensitive substring match on the name.
// page is 1-indexed. Disabled and ley-seca categories are served the same
// as any other: hiding disabled categories and blocking ley-seca purchases
// both happen elsewhere.
func QueryCategoryProducts(db *gorm.DB, categoryID string, page, limit int, search string) (*PagedProducts, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * limit

	query := db.Model(&models.Product{}).Where("category_id = ?", categoryID)
	if search = strings.TrimSpace(search); search != "" {
		query = query.Where("LOWER(name) LIKE LOWER(?)", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var products []models.Product
	if err := query.Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, err
	}

	return &PagedProducts{
		Products: products,
		Total:    total,
		HasMore:  int64(offset+len(products)) < total,
	}, nil
}

// ListProductsByCategory serves the storefront category view.
// GET /api/products/category/:categoryId?page&limit&search
// Without page/limit/search it returns the plain full list, which older
// clients still expect.
func ListProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		categoryID := c.Param("categoryId")
		search := c.Query("search")

		if c.Query("page") == "" && c.Query("limit") == "" && strings.TrimSpace(search) == "" {
			var products []models.Product
			if err := db.Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
				return
			}
			c.JSON(http.StatusOK, products)
			return
		}

		page := intQuery(c, "page", 1)
		limit := intQuery(c, "limit", 100)
		result, err := QueryCategoryProducts(db, categoryID, page, limit, search)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// AdminListProductsByCategory is the back-office variant with a larger
// default page size.
func AdminListProductsByCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := intQuery(c, "page", 1)
		limit := intQuery(c, "limit", 200)
		result, err := QueryCategoryProducts(db, c.Param("categoryId"), page, limit, c.Query("search"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func intQuery(c *gin.Context, name string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(name)); err == nil && v > 0 {
		return v
	}
	return fallback
}
