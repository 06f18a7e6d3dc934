package usecase

import "context"

// BaseInfoOutput is the public platform summary. The average rating is
// rounded to one decimal and reported as 0.0 when no reviews exist.
type BaseInfoOutput struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

// BaseInfoUsecase exposes the aggregate counters shown on the landing page.
type BaseInfoUsecase interface {
	// GetBaseInfo computes the platform-wide aggregates at read time.
	GetBaseInfo(ctx context.Context) (*BaseInfoOutput, error)
}
