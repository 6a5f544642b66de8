package cartControllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/cart"
	orderControllers "github.com/PelusheLD/FV-Bodegon/controllers/order"
	"github.com/PelusheLD/FV-Bodegon/middleware"
	"github.com/PelusheLD/FV-Bodegon/models"
)

// CartSessionName is the shopper's cart cookie, separate from the admin
// session.
const CartSessionName = "bodega-cart"

type cartItemInput struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
}

type quantityInput struct {
	Quantity *float64 `json:"quantity" binding:"required"`
}

type checkoutInput struct {
	CustomerName  string `json:"customerName"`
	CustomerPhone string `json:"customerPhone"`
	CustomerEmail string `json:"customerEmail"`
	Address       string `json:"address"`
	Notes         string `json:"notes"`
}

// loadCart reads the session cart. A missing or corrupt value yields an
// empty cart rather than an error; the cart is ephemeral by design.
func loadCart(c *gin.Context) *cart.Cart {
	session, _ := middleware.SessionStore().Get(c.Request, CartSessionName)
	current := cart.New()
	if raw, ok := session.Values["cart"].(string); ok && raw != "" {
		_ = json.Unmarshal([]byte(raw), current)
	}
	return current
}

func saveCart(c *gin.Context, current *cart.Cart) error {
	data, err := json.Marshal(current)
	if err != nil {
		return err
	}
	session, _ := middleware.SessionStore().Get(c.Request, CartSessionName)
	session.Values["cart"] = string(data)
	return session.Save(c.Request, c.Writer)
}

func cartResponse(current *cart.Cart) gin.H {
	lines := current.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	return gin.H{
		"lines": lines,
		"total": current.Total(),
		"count": current.Count(),
	}
}

// GetCart returns the session cart with its running total and badge count.
// GET /api/cart
func GetCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cartResponse(loadCart(c)))
	}
}

// AddToCart puts a product in the cart. Repeated adds accumulate for
// unit products and restate the total grams for weight products.
// POST /api/cart
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input cartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be greater than zero"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", input.ProductID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to validate product"})
			}
			return
		}

		// Ley seca blocks adding, not browsing.
		var category models.Category
		if err := db.First(&category, "id = ?", product.CategoryID).Error; err == nil && category.LeySeca {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Este producto no está disponible por ley seca"})
			return
		}

		current := loadCart(c)
		current.Add(product, input.Quantity)
		if err := saveCart(c, current); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(current))
	}
}

// UpdateCartItem sets a line's quantity outright; zero removes the line.
// PUT /api/cart/:productId
func UpdateCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input quantityInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Quantity == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
			return
		}
		if *input.Quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity cannot be negative"})
			return
		}

		current := loadCart(c)
		current.UpdateQuantity(c.Param("productId"), *input.Quantity)
		if err := saveCart(c, current); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(current))
	}
}

// RemoveCartItem deletes a line unconditionally.
// DELETE /api/cart/:productId
func RemoveCartItem() gin.HandlerFunc {
	return func(c *gin.Context) {
		current := loadCart(c)
		current.Remove(c.Param("productId"))
		if err := saveCart(c, current); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(current))
	}
}

// ClearCart empties the cart.
// DELETE /api/cart
func ClearCart() gin.HandlerFunc {
	return func(c *gin.Context) {
		current := loadCart(c)
		current.Clear()
		if err := saveCart(c, current); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}
		c.JSON(http.StatusOK, cartResponse(current))
	}
}

// CheckoutCart converts the session cart into a persisted order. The
// cart is cleared only after the order commits, so a failed checkout
// never loses the shopper's selection.
// POST /api/cart/checkout
func CheckoutCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input checkoutInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		current := loadCart(c)
		if current.Count() == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
			return
		}

		req := orderControllers.PlaceOrderRequest{
			CustomerName:  input.CustomerName,
			CustomerPhone: input.CustomerPhone,
			CustomerEmail: input.CustomerEmail,
			Address:       input.Address,
			Notes:         input.Notes,
		}
		for _, line := range current.Lines {
			req.Items = append(req.Items, orderControllers.OrderItemInput{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
			})
		}

		order, err := orderControllers.PlaceOrder(db, req)
		if err != nil {
			switch {
			case errors.Is(err, orderControllers.ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, orderControllers.ErrValidation), errors.Is(err, orderControllers.ErrLeySeca):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			}
			return
		}

		current.Clear()
		if err := saveCart(c, current); err != nil {
			// The order is committed; a stale cookie is the lesser problem.
			c.JSON(http.StatusCreated, order)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
