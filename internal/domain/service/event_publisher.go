package service

import (
	"context"
)

// Order event names published on the order lifecycle.
const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
)

// OrderEvent is the payload published when an order is created or changes
// status, so downstream consumers (mail, analytics) can react asynchronously.
type OrderEvent struct {
	RequestID         string  `json:"request_id,omitempty"` // For distributed tracing
	Event             string  `json:"event"`
	OrderID           string  `json:"order_id"`
	BusinessProfileID string  `json:"business_user"`
	CustomerProfileID string  `json:"customer_user"`
	OfferType         string  `json:"offer_type"`
	Price             float64 `json:"price"`
	Status            string  `json:"status"`
}

// EventPublisher defines the interface for publishing events to a message queue.
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async processing.
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher.
	Close() error
}
