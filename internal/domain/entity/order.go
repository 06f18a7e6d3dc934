// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusInProgress is the initial state of every order.
	OrderStatusInProgress OrderStatus = "in_progress"
	// OrderStatusCompleted marks an order fulfilled. Terminal.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCanceled marks an order abandoned. Terminal.
	OrderStatusCanceled OrderStatus = "canceled"
)

// String returns the string representation of the OrderStatus.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusInProgress, OrderStatusCompleted, OrderStatusCanceled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCanceled
}

// CanTransitionTo reports whether moving from s to next is permitted.
// Transitions are one-way: in_progress may move to either terminal state,
// terminal states are frozen.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	return s == OrderStatusInProgress && next.IsTerminal()
}

// Order is a customer's purchase of one offer detail. The detail's terms and
// the offer owner's profile are snapshotted at creation: later changes to the
// offer or its ownership never alter an existing order.
type Order struct {
	ID                 uuid.UUID   `json:"id"`
	OfferDetailID      uuid.UUID   `json:"offer_detail_id"`
	CustomerProfileID  uuid.UUID   `json:"customer_user"`
	BusinessProfileID  uuid.UUID   `json:"business_user"` // Snapshot of the offer's owner at creation.
	Title              string      `json:"title"`         // Snapshot fields follow.
	Revisions          int         `json:"revisions"`
	DeliveryTimeInDays int         `json:"delivery_time_in_days"`
	Price              float64     `json:"price"`
	Features           []string    `json:"features"`
	OfferType          OfferType   `json:"offer_type"`
	Status             OrderStatus `json:"status"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}
