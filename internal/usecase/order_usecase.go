package usecase

import (
	"context"
	"time"

	"coderr/internal/domain/policy"

	"github.com/google/uuid"
)

// CreateOrderInput names the pricing tier the order is placed against.
type CreateOrderInput struct {
	OfferDetailID uuid.UUID `json:"offer_detail_id" validate:"required"`
}

// UpdateOrderStatusInput carries the requested status transition.
type UpdateOrderStatusInput struct {
	Status string `json:"status" validate:"required,oneof=in_progress completed canceled"`
}

// OrderOutput is the order representation returned by the API. The offer
// terms are the snapshot taken at creation, not the current tier values.
type OrderOutput struct {
	ID                 uuid.UUID `json:"id"`
	CustomerUser       uuid.UUID `json:"customer_user"`
	BusinessUser       uuid.UUID `json:"business_user"`
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features"`
	OfferType          string    `json:"offer_type"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// OrderCountOutput is the in-progress order count for a business user.
type OrderCountOutput struct {
	OrderCount int64 `json:"order_count"`
}

// CompletedOrderCountOutput is the completed order count for a business user.
type CompletedOrderCountOutput struct {
	CompletedOrderCount int64 `json:"completed_order_count"`
}

// OrderUsecase defines the interface for order-related business operations.
type OrderUsecase interface {
	// CreateOrder places an order against a pricing tier, snapshotting
	// the tier terms. Customers only.
	CreateOrder(ctx context.Context, actor policy.Actor, input *CreateOrderInput) (*OrderOutput, error)

	// ListOrders returns all orders the actor participates in, on either
	// the customer or the business side.
	ListOrders(ctx context.Context, actor policy.Actor) ([]*OrderOutput, error)

	// UpdateOrderStatus moves an order along its one-way lifecycle. Only
	// the business party of the order may do this.
	UpdateOrderStatus(ctx context.Context, actor policy.Actor, id uuid.UUID, input *UpdateOrderStatusInput) (*OrderOutput, error)

	// DeleteOrder removes an order. Staff only.
	DeleteOrder(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// CountInProgressOrders counts in-progress orders for a business user,
	// addressed by the user ID.
	CountInProgressOrders(ctx context.Context, businessUserID uuid.UUID) (*OrderCountOutput, error)

	// CountCompletedOrders counts completed orders for a business user,
	// addressed by the user ID.
	CountCompletedOrders(ctx context.Context, businessUserID uuid.UUID) (*CompletedOrderCountOutput, error)
}
