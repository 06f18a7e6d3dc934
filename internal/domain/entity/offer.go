// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OfferType is the pricing tier of an offer detail.
type OfferType string

const (
	// OfferTypeBasic is the entry tier of an offer.
	OfferTypeBasic OfferType = "basic"
	// OfferTypeStandard is the middle tier of an offer.
	OfferTypeStandard OfferType = "standard"
	// OfferTypePremium is the top tier of an offer.
	OfferTypePremium OfferType = "premium"
)

// String returns the string representation of the OfferType.
func (t OfferType) String() string {
	return string(t)
}

// IsValid checks if the OfferType is one of the three recognized tiers.
func (t OfferType) IsValid() bool {
	switch t {
	case OfferTypeBasic, OfferTypeStandard, OfferTypePremium:
		return true
	default:
		return false
	}
}

// Offer is a service listing published by a business profile.
// It owns its detail set; an offer has at most one detail per tier and the
// tier set is fixed at creation time.
type Offer struct {
	ID          uuid.UUID      `json:"id"`
	ProfileID   uuid.UUID      `json:"profile_id"` // Owning business profile.
	Title       string         `json:"title"`
	Image       string         `json:"image"` // Stored key/URL of the offer image.
	Description string         `json:"description"`
	Details     []*OfferDetail `json:"details"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// OfferDetail is a priced package (tier) within an offer.
type OfferDetail struct {
	ID                 uuid.UUID `json:"id"`
	OfferID            uuid.UUID `json:"offer_id"`
	Title              string    `json:"title"`
	Revisions          int       `json:"revisions"`
	DeliveryTimeInDays int       `json:"delivery_time_in_days"`
	Price              float64   `json:"price"`
	Features           []string  `json:"features"`
	OfferType          OfferType `json:"offer_type"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// DetailByType returns the detail matching the given tier, or nil if the
// offer has no detail for that tier.
func (o *Offer) DetailByType(t OfferType) *OfferDetail {
	for _, d := range o.Details {
		if d.OfferType == t {
			return d
		}
	}

	return nil
}

// MinPrice returns the minimum price across the offer's details, computed
// fresh from the loaded detail set. ok is false when the offer has no details.
func (o *Offer) MinPrice() (price float64, ok bool) {
	for i, d := range o.Details {
		if i == 0 || d.Price < price {
			price = d.Price
		}
	}

	return price, len(o.Details) > 0
}

// MinDeliveryTime returns the minimum delivery time in days across the
// offer's details. ok is false when the offer has no details.
func (o *Offer) MinDeliveryTime() (days int, ok bool) {
	for i, d := range o.Details {
		if i == 0 || d.DeliveryTimeInDays < days {
			days = d.DeliveryTimeInDays
		}
	}

	return days, len(o.Details) > 0
}
