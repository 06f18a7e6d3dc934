package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the standard operations for order persistence.
type OrderRepository interface {
	// Create persists a new order with its snapshotted terms.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// UpdateStatus persists a status change on an existing order.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error

	// Delete removes an order.
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByProfile retrieves all orders where the given profile is either
	// the customer or the business party, newest first.
	ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*entity.Order, error)

	// CountByBusinessAndStatus returns the number of orders held by a business
	// profile in the given status. Computed fresh per call.
	CountByBusinessAndStatus(ctx context.Context, businessProfileID uuid.UUID, status entity.OrderStatus) (int64, error)
}
