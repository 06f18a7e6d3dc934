package usecase

import (
	"context"
	"time"

	"coderr/internal/domain/policy"

	"github.com/google/uuid"
)

// CreateReviewInput defines the data required to post a review for a
// business profile.
type CreateReviewInput struct {
	BusinessUser uuid.UUID `json:"business_user" validate:"required"`
	Rating       int       `json:"rating" validate:"required,min=1,max=5"`
	Description  string    `json:"description"`
}

// UpdateReviewInput patches a review. Only rating and description may
// change; the patch is rejected if the raw body names any other field.
type UpdateReviewInput struct {
	Rating      *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Description *string `json:"description"`

	// RawFields holds the keys present in the request body so the
	// usecase can reject attempts to rewrite immutable fields.
	RawFields map[string]any `json:"-"`
}

// ListReviewsInput collects the supported review list filters.
type ListReviewsInput struct {
	BusinessUserID *uuid.UUID
	ReviewerID     *uuid.UUID
	Ordering       string
}

// ReviewOutput is the review representation returned by the API.
type ReviewOutput struct {
	ID           uuid.UUID `json:"id"`
	BusinessUser uuid.UUID `json:"business_user"`
	Reviewer     uuid.UUID `json:"reviewer"`
	Rating       int       `json:"rating"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReviewUsecase defines the interface for review-related business operations.
type ReviewUsecase interface {
	// CreateReview posts a review. Customers only, and at most one review
	// per reviewer and business pair.
	CreateReview(ctx context.Context, actor policy.Actor, input *CreateReviewInput) (*ReviewOutput, error)

	// ListReviews returns reviews matching the given filters.
	ListReviews(ctx context.Context, input *ListReviewsInput) ([]*ReviewOutput, error)

	// GetReview returns a single review by ID.
	GetReview(ctx context.Context, id uuid.UUID) (*ReviewOutput, error)

	// UpdateReview patches rating and description. Reviewer only.
	UpdateReview(ctx context.Context, actor policy.Actor, id uuid.UUID, input *UpdateReviewInput) (*ReviewOutput, error)

	// DeleteReview removes a review. Reviewer only.
	DeleteReview(ctx context.Context, actor policy.Actor, id uuid.UUID) error
}
