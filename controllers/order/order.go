package orderControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
	"github.com/PelusheLD/FV-Bodegon/pricing"
)

// -------- Request Structs --------

type OrderItemInput struct {
	ProductID string  `json:"productId" binding:"required"`
	Quantity  float64 `json:"quantity" binding:"required"`
}

type PlaceOrderRequest struct {
	CustomerName  string           `json:"customerName"`
	CustomerPhone string           `json:"customerPhone"`
	CustomerEmail string           `json:"customerEmail"`
	Address       string           `json:"address"`
	Notes         string           `json:"notes"`
	Items         []OrderItemInput `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var (
	ErrValidation      = errors.New("validation")
	ErrProductNotFound = errors.New("product not found")
	ErrLeySeca         = errors.New("category is under ley seca")
)

// -------- Core Logic --------

// PlaceOrder validates the request, snapshots every product into an order
// item priced at this moment, and writes the header and all items in one
// transaction. Nothing is left behind on failure, so the client keeps its
// cart and can retry.
func PlaceOrder(db *gorm.DB, req PlaceOrderRequest) (*models.Order, error) {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	req.CustomerPhone = strings.TrimSpace(req.CustomerPhone)
	if req.CustomerName == "" || req.CustomerPhone == "" {
		return nil, fmt.Errorf("%w: customerName and customerPhone are required", ErrValidation)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidation)
	}
	for _, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
		}
	}

	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var items []models.OrderItem
		var lines []pricing.Line

		for _, input := range req.Items {
			var product models.Product
			if err := tx.First(&product, "id = ?", input.ProductID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return fmt.Errorf("%w: %s", ErrProductNotFound, input.ProductID)
				}
				return err
			}
			if product.Price <= 0 {
				return fmt.Errorf("%w: product %q is not sellable", ErrValidation, product.Name)
			}

			var category models.Category
			if err := tx.First(&category, "id = ?", product.CategoryID).Error; err == nil && category.LeySeca {
				return fmt.Errorf("%w: %s", ErrLeySeca, product.Name)
			}

			subtotal := pricing.LineSubtotal(product.Price, product.MeasurementType, input.Quantity)
			items = append(items, models.OrderItem{
				ProductID:       product.ID,
				ProductName:     product.Name,
				Price:           product.Price,
				MeasurementType: product.MeasurementType,
				Quantity:        input.Quantity,
				Subtotal:        subtotal,
			})
			lines = append(lines, pricing.Line{
				Price:           product.Price,
				MeasurementType: product.MeasurementType,
				Quantity:        input.Quantity,
			})
		}

		order = &models.Order{
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: strings.TrimSpace(req.CustomerEmail),
			Address:       strings.TrimSpace(req.Address),
			Notes:         strings.TrimSpace(req.Notes),
			Total:         pricing.OrderTotal(lines),
			Status:        models.OrderStatusPending,
			Items:         items,
		}
		return tx.Create(order).Error
	})
	if err != nil {
		return nil, err
	}

	broadcastOrderEvent("order_created", *order)
	return order, nil
}

// -------- Handlers --------

// PlaceOrderHandler is the checkout endpoint.
// POST /api/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, req)
		if err != nil {
			switch {
			case errors.Is(err, ErrProductNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			case errors.Is(err, ErrValidation), errors.Is(err, ErrLeySeca):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			}
			return
		}

		c.JSON(http.StatusCreated, order)
	}
}

// GetAllOrdersHandler lists orders newest first, items included.
// GET /api/orders
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GetOrderByIDHandler returns one order with its items.
// GET /api/orders/:id
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.Preload("Items").First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			}
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GetOrderItemsHandler returns the snapshotted line items of an order.
// GET /api/orders/:id/items
func GetOrderItemsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			}
			return
		}

		var items []models.OrderItem
		if err := db.Where("order_id = ?", order.ID).Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order items"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}

// UpdateOrderStatusHandler moves an order through the staff workflow.
// Transitions outside the table (delivered back to pending, skipping
// confirmation, leaving a terminal state) are rejected.
// PATCH /api/orders/:id/status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
			return
		}

		next, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			}
			return
		}

		if !order.Status.CanTransition(next) {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("cannot move order from %s to %s", order.Status, next),
			})
			return
		}

		order.Status = next
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
			return
		}

		broadcastOrderEvent("order_status", order)
		c.JSON(http.StatusOK, order)
	}
}
