// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer's rating of a business profile.
// At most one review exists per (reviewer, business) pair; after creation
// only the rating and description may change, and only by the reviewer.
type Review struct {
	ID                uuid.UUID `json:"id"`
	BusinessProfileID uuid.UUID `json:"business_user"` // Profile being reviewed.
	ReviewerProfileID uuid.UUID `json:"reviewer"`      // Customer profile that wrote the review.
	Rating            int       `json:"rating"`
	Description       string    `json:"description"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
