package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus(" Confirmed ")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusConfirmed, status)

	_, err = ParseOrderStatus("shipped")
	assert.Error(t, err)
}

func TestOrderStatusTransitionTable(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransition(OrderStatusConfirmed))
	assert.True(t, OrderStatusPending.CanTransition(OrderStatusCancelled))
	assert.True(t, OrderStatusConfirmed.CanTransition(OrderStatusPreparing))
	assert.True(t, OrderStatusConfirmed.CanTransition(OrderStatusCancelled))
	assert.True(t, OrderStatusPreparing.CanTransition(OrderStatusReady))
	assert.True(t, OrderStatusReady.CanTransition(OrderStatusDelivered))

	// no skipping ahead or moving backwards
	assert.False(t, OrderStatusPending.CanTransition(OrderStatusDelivered))
	assert.False(t, OrderStatusPreparing.CanTransition(OrderStatusCancelled))
	assert.False(t, OrderStatusConfirmed.CanTransition(OrderStatusPending))

	// terminal states go nowhere
	assert.False(t, OrderStatusDelivered.CanTransition(OrderStatusPending))
	assert.False(t, OrderStatusCancelled.CanTransition(OrderStatusConfirmed))
	assert.False(t, OrderStatusDelivered.CanTransition(OrderStatusCancelled))
}
