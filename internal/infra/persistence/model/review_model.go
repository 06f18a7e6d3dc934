package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. The composite unique index backs
// the one-review-per-(reviewer, business) rule against concurrent writers.
type ReviewModel struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BusinessProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_reviewer_business"`
	ReviewerProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_reviewer_business"`
	Rating            int       `gorm:"not null"`
	Description       string    `gorm:"type:text"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
