package usecase

import (
	"context"
	"time"

	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateOfferDetailInput is one pricing tier supplied when creating an offer.
// All fields are required; the tier set is fixed for the lifetime of the offer.
type CreateOfferDetailInput struct {
	Title              string   `json:"title" validate:"required,max=255"`
	Revisions          int      `json:"revisions" validate:"min=-1"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days" validate:"required,min=1"`
	Price              float64  `json:"price" validate:"required,min=0"`
	Features           []string `json:"features" validate:"required,min=1"`
	OfferType          string   `json:"offer_type" validate:"required,oneof=basic standard premium"`
}

// CreateOfferInput defines the data required to create an offer with its tiers.
type CreateOfferInput struct {
	Title       string                    `json:"title" validate:"required,max=255"`
	Image       string                    `json:"image"`
	Description string                    `json:"description" validate:"required"`
	Details     []*CreateOfferDetailInput `json:"details" validate:"required,min=1,dive"`
}

// UpdateOfferDetailInput patches an existing tier, matched by offer type.
// Nil fields are left untouched.
type UpdateOfferDetailInput struct {
	Title              *string  `json:"title" validate:"omitempty,max=255"`
	Revisions          *int     `json:"revisions" validate:"omitempty,min=-1"`
	DeliveryTimeInDays *int     `json:"delivery_time_in_days" validate:"omitempty,min=1"`
	Price              *float64 `json:"price" validate:"omitempty,min=0"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type" validate:"required,oneof=basic standard premium"`
}

// UpdateOfferInput carries a partial offer patch. Details are reconciled
// against the existing tiers; a detail naming a tier the offer does not
// have fails the whole update.
type UpdateOfferInput struct {
	Title       *string                   `json:"title" validate:"omitempty,max=255"`
	Image       *string                   `json:"image"`
	Description *string                   `json:"description"`
	Details     []*UpdateOfferDetailInput `json:"details" validate:"omitempty,dive"`
}

// ListOffersInput collects the supported list filters. All are optional.
type ListOffersInput struct {
	CreatorID       *uuid.UUID
	MinPrice        *float64
	MaxDeliveryTime *int
	Search          string
	Ordering        string
	Page            int
	PageSize        int
}

// OfferDetailOutput is the full representation of one pricing tier.
type OfferDetailOutput struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features"`
	OfferType          string    `json:"offer_type"`
}

// OfferUserDetails is the creator summary embedded in offer reads.
type OfferUserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

// OfferOutput is the offer representation returned by the API, including
// the aggregates computed from its tiers.
type OfferOutput struct {
	ID              uuid.UUID            `json:"id"`
	UserID          uuid.UUID            `json:"user"`
	Title           string               `json:"title"`
	Image           string               `json:"image"`
	Description     string               `json:"description"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Details         []*OfferDetailOutput `json:"details"`
	MinPrice        float64              `json:"min_price"`
	MinDeliveryTime int                  `json:"min_delivery_time"`
	UserDetails     *OfferUserDetails    `json:"user_details,omitempty"`
}

// ListOffersOutput is the paginated offer list.
type ListOffersOutput struct {
	Count    int64          `json:"count"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
	Results  []*OfferOutput `json:"results"`
}

// OfferUsecase defines the interface for offer-related business operations.
type OfferUsecase interface {
	// CreateOffer creates an offer with its pricing tiers. Only business
	// accounts may create offers; tier types must be valid and unique.
	CreateOffer(ctx context.Context, actor policy.Actor, input *CreateOfferInput) (*OfferOutput, error)

	// GetOffer returns a single offer with details and aggregates.
	GetOffer(ctx context.Context, id uuid.UUID) (*OfferOutput, error)

	// ListOffers returns a filtered, ordered, paginated offer page.
	ListOffers(ctx context.Context, input *ListOffersInput) (*ListOffersOutput, error)

	// UpdateOffer applies a partial patch, reconciling detail patches
	// against the existing tiers. Owner or staff only.
	UpdateOffer(ctx context.Context, actor policy.Actor, id uuid.UUID, input *UpdateOfferInput) (*OfferOutput, error)

	// DeleteOffer removes an offer and its tiers. Owner or staff only.
	DeleteOffer(ctx context.Context, actor policy.Actor, id uuid.UUID) error

	// GetOfferDetail returns a single pricing tier by its own ID.
	GetOfferDetail(ctx context.Context, id uuid.UUID) (*OfferDetailOutput, error)

	// GenerateOfferQR renders a QR code PNG linking to the offer page.
	GenerateOfferQR(ctx context.Context, id uuid.UUID) ([]byte, error)
}

// Filter converts the input into the repository filter type.
func (in *ListOffersInput) Filter() repository.OfferFilter {
	return repository.OfferFilter{
		CreatorID:       in.CreatorID,
		MinPrice:        in.MinPrice,
		MaxDeliveryTime: in.MaxDeliveryTime,
		Search:          in.Search,
		Ordering:        in.Ordering,
		Page:            in.Page,
		PageSize:        in.PageSize,
	}
}
