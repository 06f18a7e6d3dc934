package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Sentinel errors for review persistence.
var (
	// ErrReviewNotFound is returned when a review is not found.
	ErrReviewNotFound = errors.New("review not found")
	// ErrDuplicateReview is returned when persisting a review would violate
	// the one-review-per-(reviewer,business) constraint.
	ErrDuplicateReview = errors.New("duplicate review")
)

// ReviewFilter narrows and orders review list queries.
type ReviewFilter struct {
	BusinessProfileID *uuid.UUID
	ReviewerProfileID *uuid.UUID
	Ordering          string // "updated_at" or "rating", optionally "-" prefixed.
}

// ReviewRepository defines the standard operations for review persistence.
type ReviewRepository interface {
	// Create persists a new review. The storage layer carries a unique index
	// on (reviewer, business); a violation surfaces as ErrDuplicateReview.
	Create(ctx context.Context, review *entity.Review) error

	// FindByID retrieves a single review.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)

	// FindByReviewerAndBusiness retrieves the review a reviewer wrote for a
	// business, if any.
	FindByReviewerAndBusiness(ctx context.Context, reviewerProfileID, businessProfileID uuid.UUID) (*entity.Review, error)

	// Update persists changes to an existing review.
	Update(ctx context.Context, review *entity.Review) error

	// Delete removes a review.
	Delete(ctx context.Context, id uuid.UUID) error

	// List retrieves reviews matching the filter, newest first by default.
	List(ctx context.Context, filter ReviewFilter) ([]*entity.Review, error)

	// Count returns the total number of reviews. Computed fresh per call.
	Count(ctx context.Context) (int64, error)

	// AverageRating returns the mean rating across all reviews, or 0.0 when
	// no reviews exist. Computed fresh per call.
	AverageRating(ctx context.Context) (float64, error)
}
