package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, OrderStatusInProgress.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusInProgress.CanTransitionTo(OrderStatusCanceled))

	// Terminal states are frozen.
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusInProgress))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusCanceled))
	assert.False(t, OrderStatusCanceled.CanTransitionTo(OrderStatusCompleted))
	assert.False(t, OrderStatusCanceled.CanTransitionTo(OrderStatusInProgress))

	// No self-transitions.
	assert.False(t, OrderStatusInProgress.CanTransitionTo(OrderStatusInProgress))
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, OrderStatusInProgress.IsValid())
	assert.True(t, OrderStatusCompleted.IsValid())
	assert.True(t, OrderStatusCanceled.IsValid())
	assert.False(t, OrderStatus("pending").IsValid())
}
