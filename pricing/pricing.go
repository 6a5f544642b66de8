// Package pricing computes line and order amounts for the two ways the
// store sells products: per unit and per weight (price per kilogram,
// quantities in grams).
package pricing

import (
	"math"

	"github.com/PelusheLD/FV-Bodegon/models"
)

// Line is the minimal input the calculator needs from a cart line or
// order item.
type Line struct {
	Price           float64
	MeasurementType models.MeasurementType
	Quantity        float64
}

// LineSubtotal returns the unrounded subtotal for one line. For weight
// products the quantity is grams and the price is per kilogram.
func LineSubtotal(price float64, measurementType models.MeasurementType, quantity float64) float64 {
	if measurementType == models.MeasurementWeight {
		return price * quantity / 1000
	}
	return price * quantity
}

// OrderTotal sums line subtotals without intermediate rounding, so a
// persisted order total matches the sum of its persisted item subtotals.
func OrderTotal(lines []Line) float64 {
	var total float64
	for _, l := range lines {
		total += LineSubtotal(l.Price, l.MeasurementType, l.Quantity)
	}
	return total
}

// Round2 rounds to 2 decimals. Only for display and final persistence,
// never between LineSubtotal and OrderTotal.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}
