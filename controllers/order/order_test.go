package orderControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/PelusheLD/FV-Bodegon/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func newOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/orders", PlaceOrderHandler(db))
	r.GET("/api/orders/:id", GetOrderByIDHandler(db))
	r.GET("/api/orders/:id/items", GetOrderItemsHandler(db))
	r.PATCH("/api/orders/:id/status", UpdateOrderStatusHandler(db))
	return r
}

func seedProducts(t *testing.T, db *gorm.DB) (soda, ham models.Product) {
	category := models.Category{Name: "Viveres", Enabled: true}
	assert.NoError(t, db.Create(&category).Error)

	soda = models.Product{Name: "Coca Cola 2L", Price: 2.5, CategoryID: category.ID, MeasurementType: models.MeasurementUnit}
	ham = models.Product{Name: "Jamon por peso", Price: 12.5, CategoryID: category.ID, MeasurementType: models.MeasurementWeight}
	assert.NoError(t, db.Create(&soda).Error)
	assert.NoError(t, db.Create(&ham).Error)
	return soda, ham
}

func validRequest(items ...OrderItemInput) PlaceOrderRequest {
	return PlaceOrderRequest{
		CustomerName:  "Maria Perez",
		CustomerPhone: "04141234567",
		Items:         items,
	}
}

// The persisted total must equal the sum of the persisted item
// subtotals, weight lines priced per kilogram from gram quantities.
func TestPlaceOrderTotalMatchesItemSubtotals(t *testing.T) {
	db := newTestDB(t)
	soda, ham := seedProducts(t, db)

	order, err := PlaceOrder(db, validRequest(
		OrderItemInput{ProductID: soda.ID, Quantity: 2},
		OrderItemInput{ProductID: ham.ID, Quantity: 500},
	))
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	var items []models.OrderItem
	assert.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	assert.Len(t, items, 2)

	var sum float64
	for _, item := range items {
		sum += item.Subtotal
	}
	assert.Equal(t, order.Total, sum)
	assert.InDelta(t, 11.25, order.Total, 1e-9) // 2x2.50 + 500g at 12.50/kg

	for _, item := range items {
		if item.ProductID == ham.ID {
			assert.Equal(t, 6.25, item.Subtotal)
			assert.Equal(t, models.MeasurementWeight, item.MeasurementType)
		}
	}
}

// Items snapshot the product at order time; later catalog edits must not
// change the order.
func TestPlaceOrderSnapshotsPricing(t *testing.T) {
	db := newTestDB(t)
	soda, _ := seedProducts(t, db)

	order, err := PlaceOrder(db, validRequest(OrderItemInput{ProductID: soda.ID, Quantity: 3}))
	assert.NoError(t, err)

	soda.Price = 99
	soda.Name = "Renombrada"
	assert.NoError(t, db.Save(&soda).Error)

	var item models.OrderItem
	assert.NoError(t, db.First(&item, "order_id = ?", order.ID).Error)
	assert.Equal(t, "Coca Cola 2L", item.ProductName)
	assert.Equal(t, 2.5, item.Price)
	assert.Equal(t, 7.5, item.Subtotal)
}

// A failing item rolls the whole order back: nothing half-committed.
func TestPlaceOrderIsAtomic(t *testing.T) {
	db := newTestDB(t)
	soda, _ := seedProducts(t, db)

	_, err := PlaceOrder(db, validRequest(
		OrderItemInput{ProductID: soda.ID, Quantity: 1},
		OrderItemInput{ProductID: "no-such-product", Quantity: 1},
	))
	assert.ErrorIs(t, err, ErrProductNotFound)

	var orderCount, itemCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	db.Model(&models.OrderItem{}).Count(&itemCount)
	assert.Equal(t, int64(0), orderCount)
	assert.Equal(t, int64(0), itemCount)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := newTestDB(t)
	soda, _ := seedProducts(t, db)

	_, err := PlaceOrder(db, PlaceOrderRequest{
		CustomerName: "Maria",
		Items:        []OrderItemInput{{ProductID: soda.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrValidation) // missing phone

	_, err = PlaceOrder(db, validRequest())
	assert.ErrorIs(t, err, ErrValidation) // no items

	_, err = PlaceOrder(db, validRequest(OrderItemInput{ProductID: soda.ID, Quantity: 0}))
	assert.ErrorIs(t, err, ErrValidation) // non-positive quantity

	_, err = PlaceOrder(db, validRequest(OrderItemInput{ProductID: soda.ID, Quantity: -500}))
	assert.ErrorIs(t, err, ErrValidation)
}

// Products in a ley seca category are browsable but not purchasable.
func TestPlaceOrderBlockedByLeySeca(t *testing.T) {
	db := newTestDB(t)

	category := models.Category{Name: "Licores", Enabled: true, LeySeca: true}
	assert.NoError(t, db.Create(&category).Error)
	ron := models.Product{Name: "Ron Añejo", Price: 15, CategoryID: category.ID}
	assert.NoError(t, db.Create(&ron).Error)

	_, err := PlaceOrder(db, validRequest(OrderItemInput{ProductID: ron.ID, Quantity: 1}))
	assert.ErrorIs(t, err, ErrLeySeca)

	var count int64
	db.Model(&models.Order{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func patchStatus(router *gin.Engine, orderID, status string) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]string{"status": status})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PATCH", "/api/orders/"+orderID+"/status", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestStatusTransitionsFollowTheTable(t *testing.T) {
	db := newTestDB(t)
	router := newOrderRouter(db)
	soda, _ := seedProducts(t, db)

	order, err := PlaceOrder(db, validRequest(OrderItemInput{ProductID: soda.ID, Quantity: 1}))
	assert.NoError(t, err)

	// the happy path walks pending -> confirmed -> preparing -> ready -> delivered
	for _, status := range []string{"confirmed", "preparing", "ready", "delivered"} {
		w := patchStatus(router, order.ID, status)
		assert.Equal(t, http.StatusOK, w.Code, "transition to %s", status)
	}

	// delivered is terminal
	w := patchStatus(router, order.ID, "pending")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var final models.Order
	assert.NoError(t, db.First(&final, "id = ?", order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, final.Status)
}

func TestStatusTransitionRejectsSkippingAhead(t *testing.T) {
	db := newTestDB(t)
	router := newOrderRouter(db)
	soda, _ := seedProducts(t, db)

	order, err := PlaceOrder(db, validRequest(OrderItemInput{ProductID: soda.ID, Quantity: 1}))
	assert.NoError(t, err)

	w := patchStatus(router, order.ID, "delivered")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = patchStatus(router, order.ID, "invented-status")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// cancelling a pending order is allowed and terminal
	w = patchStatus(router, order.ID, "cancelled")
	assert.Equal(t, http.StatusOK, w.Code)
	w = patchStatus(router, order.ID, "confirmed")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderEndpoint(t *testing.T) {
	db := newTestDB(t)
	router := newOrderRouter(db)
	soda, _ := seedProducts(t, db)

	payload := map[string]interface{}{
		"customerName":  "Maria Perez",
		"customerPhone": "04141234567",
		"items":         []map[string]interface{}{{"productId": soda.ID, "quantity": 2}},
	}
	body, _ := json.Marshal(payload)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var created models.Order
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, 5.0, created.Total)
	assert.Equal(t, models.OrderStatusPending, created.Status)

	// unknown products surface as 404, clearly distinct from success
	payload["items"] = []map[string]interface{}{{"productId": "ghost", "quantity": 1}}
	body, _ = json.Marshal(payload)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
