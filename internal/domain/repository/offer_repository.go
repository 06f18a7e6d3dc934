package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Sentinel errors for offer lookups.
var (
	// ErrOfferNotFound is returned when an offer is not found.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrOfferDetailNotFound is returned when an offer detail is not found.
	ErrOfferDetailNotFound = errors.New("offer detail not found")
	// ErrDuplicateOfferTier is returned when persisting a detail would violate
	// the one-detail-per-tier constraint.
	ErrDuplicateOfferTier = errors.New("duplicate offer tier")
)

// OfferFilter narrows and orders offer list queries.
type OfferFilter struct {
	CreatorID       *uuid.UUID // Owning profile ID.
	MinPrice        *float64   // Offers whose cheapest tier costs at least this much.
	MaxDeliveryTime *int       // Offers deliverable within this many days on their fastest tier.
	Search          string     // Case-insensitive match against title and description.
	Ordering        string     // "updated_at", "min_price", optionally "-" prefixed.
	Page            int
	PageSize        int
}

// OfferRepository defines the standard operations for offer persistence.
type OfferRepository interface {
	// Create persists a new offer together with its detail set.
	Create(ctx context.Context, offer *entity.Offer) error

	// FindByID retrieves an offer with its details preloaded.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error)

	// Update persists changes to an offer and its details.
	Update(ctx context.Context, offer *entity.Offer) error

	// Delete removes an offer; details cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves a filtered, ordered page of offers (details preloaded)
	// along with the total match count.
	List(ctx context.Context, filter OfferFilter) ([]*entity.Offer, int64, error)

	// FindDetailByID retrieves a single offer detail.
	FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error)

	// Count returns the total number of offers. Computed fresh per call.
	Count(ctx context.Context) (int64, error)
}
