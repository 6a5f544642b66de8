package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/PelusheLD/FV-Bodegon/models"
)

func TestLineSubtotalUnit(t *testing.T) {
	assert.Equal(t, 7.0, LineSubtotal(3.5, models.MeasurementUnit, 2))
	assert.Equal(t, 12.5, LineSubtotal(2.5, models.MeasurementUnit, 5))
}

func TestLineSubtotalWeight(t *testing.T) {
	// $12.50/kg, 500 g -> $6.25
	assert.Equal(t, 6.25, LineSubtotal(12.5, models.MeasurementWeight, 500))
	// 2 kg of a $4/kg product
	assert.Equal(t, 8.0, LineSubtotal(4, models.MeasurementWeight, 2000))
	assert.Equal(t, 1.0, LineSubtotal(4, models.MeasurementWeight, 250))
}

func TestOrderTotalSumsWithoutIntermediateRounding(t *testing.T) {
	lines := []Line{
		{Price: 0.10, MeasurementType: models.MeasurementUnit, Quantity: 3},
		{Price: 3.333, MeasurementType: models.MeasurementWeight, Quantity: 100},
		{Price: 3.333, MeasurementType: models.MeasurementWeight, Quantity: 100},
		{Price: 3.333, MeasurementType: models.MeasurementWeight, Quantity: 100},
	}

	var expected float64
	for _, l := range lines {
		expected += LineSubtotal(l.Price, l.MeasurementType, l.Quantity)
	}
	assert.Equal(t, expected, OrderTotal(lines))

	// Rounding each line first would give a different (wrong) answer.
	var rounded float64
	for _, l := range lines {
		rounded += Round2(LineSubtotal(l.Price, l.MeasurementType, l.Quantity))
	}
	assert.NotEqual(t, rounded, OrderTotal(lines))
}

func TestOrderTotalEmpty(t *testing.T) {
	assert.Equal(t, 0.0, OrderTotal(nil))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 6.25, Round2(6.254))
	assert.Equal(t, 6.26, Round2(6.255))
	assert.Equal(t, 1.0, Round2(0.9999))
}
