package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// OfferModel mirrors the 'offers' table.
type OfferModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	ProfileID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Image       string    `gorm:"type:varchar(255)"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time `gorm:"index"`

	Details []*OfferDetailModel `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (OfferModel) TableName() string {
	return "offers"
}

// OfferDetailModel mirrors the 'offer_details' table. The composite unique
// index enforces at most one detail per tier within an offer.
type OfferDetailModel struct {
	ID                 uuid.UUID                   `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OfferID            uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex:idx_offer_details_offer_tier"`
	Title              string                      `gorm:"type:varchar(255);not null"`
	Revisions          int                         `gorm:"not null"`
	DeliveryTimeInDays int                         `gorm:"not null"`
	Price              float64                     `gorm:"type:numeric(10,2);not null"`
	Features           datatypes.JSONSlice[string] `gorm:"type:jsonb"`
	OfferType          string                      `gorm:"type:varchar(10);not null;uniqueIndex:idx_offer_details_offer_tier"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName explicitly sets the table name for GORM.
func (OfferDetailModel) TableName() string {
	return "offer_details"
}
