// Package cart holds the customer's in-progress order: one line per
// product, kept in the order lines were first added. The cart lives in
// the browsing session only; checkout converts it into a persisted
// order and discards it.
package cart

import (
	"github.com/PelusheLD/FV-Bodegon/models"
	"github.com/PelusheLD/FV-Bodegon/pricing"
)

type Line struct {
	ProductID       string                 `json:"productId"`
	ProductName     string                 `json:"productName"`
	Price           float64                `json:"price"`
	MeasurementType models.MeasurementType `json:"measurementType"`
	// Quantity is a unit count for unit products and grams for weight products.
	Quantity float64 `json:"quantity"`
}

// Cart is serializable so it can ride in a session cookie or request body.
type Cart struct {
	Lines []Line `json:"lines"`
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) find(productID string) *Line {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Add inserts a line for the product, or merges with the existing one.
// Unit quantities accumulate; a weight quantity replaces the previous
// one, since the shopper re-states the total grams they want.
func (c *Cart) Add(p models.Product, quantity float64) {
	if existing := c.find(p.ID); existing != nil {
		if p.MeasurementType == models.MeasurementUnit {
			existing.Quantity += quantity
		} else {
			existing.Quantity = quantity
		}
		return
	}
	c.Lines = append(c.Lines, Line{
		ProductID:       p.ID,
		ProductName:     p.Name,
		Price:           p.Price,
		MeasurementType: p.MeasurementType,
		Quantity:        quantity,
	})
}

// UpdateQuantity sets a line's quantity outright. Zero removes the line.
// Unknown product ids are ignored.
func (c *Cart) UpdateQuantity(productID string, quantity float64) {
	if quantity == 0 {
		c.Remove(productID)
		return
	}
	if line := c.find(productID); line != nil {
		line.Quantity = quantity
	}
}

// Remove deletes the line unconditionally.
func (c *Cart) Remove(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart, as after a successful checkout.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total is the unrounded sum of line subtotals.
func (c *Cart) Total() float64 {
	lines := make([]pricing.Line, len(c.Lines))
	for i, l := range c.Lines {
		lines[i] = pricing.Line{Price: l.Price, MeasurementType: l.MeasurementType, Quantity: l.Quantity}
	}
	return pricing.OrderTotal(lines)
}

// Count is the number of distinct lines, used for the cart badge.
func (c *Cart) Count() int {
	return len(c.Lines)
}
