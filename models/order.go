package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // confirmed by staff
	OrderStatusPreparing OrderStatus = "preparing" // being packed
	OrderStatusReady     OrderStatus = "ready"     // ready for pickup/delivery
	OrderStatusDelivered OrderStatus = "delivered" // customer received it
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled by staff
)

// orderTransitions is the allowed status flow. delivered and cancelled
// are terminal.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing: {OrderStatusReady},
	OrderStatusReady:     {OrderStatusDelivered},
}

var ErrInvalidTransition = errors.New("invalid order status transition")

// ParseOrderStatus maps a request string to an OrderStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(s))) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusPreparing:
		return OrderStatusPreparing, nil
	case OrderStatusReady:
		return OrderStatusReady, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// CanTransition reports whether moving from one status to the next is legal.
func (s OrderStatus) CanTransition(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID            string      `gorm:"primaryKey" json:"id"`
	CustomerName  string      `gorm:"not null" json:"customerName"`
	CustomerPhone string      `gorm:"not null" json:"customerPhone"`
	CustomerEmail string      `json:"customerEmail,omitempty"`
	Address       string      `json:"address,omitempty"`
	Notes         string      `json:"notes,omitempty"`
	Total         float64     `gorm:"not null" json:"total"`
	Status        OrderStatus `gorm:"type:VARCHAR(20);not null;default:'pending'" json:"status"`
	Items         []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem snapshots a product at the moment of purchase. Subtotal is the
// stored result of the pricing calculation at order time, never recomputed
// from the live product.
type OrderItem struct {
	ID              string          `gorm:"primaryKey" json:"id"`
	OrderID         string          `gorm:"not null;index" json:"orderId"`
	ProductID       string          `json:"productId"`
	ProductName     string          `gorm:"not null" json:"productName"`
	Price           float64         `gorm:"not null" json:"price"`
	MeasurementType MeasurementType `gorm:"type:VARCHAR(10);not null" json:"measurementType"`
	Quantity        float64         `gorm:"not null" json:"quantity"`
	Subtotal        float64         `gorm:"not null" json:"subtotal"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
