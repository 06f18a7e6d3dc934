package postgres

import (
	"testing"
	"time"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromOfferDomain_PreservesTimestamps(t *testing.T) {
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	updatedAt := createdAt.Add(48 * time.Hour)

	offer := &entity.Offer{
		ID:          uuid.New(),
		ProfileID:   uuid.New(),
		Title:       "Logo design",
		Description: "Vector logo with source files",
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Details: []*entity.OfferDetail{
			{
				ID:                 uuid.New(),
				Title:              "Basic logo",
				Revisions:          2,
				DeliveryTimeInDays: 5,
				Price:              100,
				Features:           []string{"1 concept"},
				OfferType:          entity.OfferTypeBasic,
				CreatedAt:          createdAt,
				UpdatedAt:          updatedAt,
			},
		},
	}

	offerM := fromOfferDomain(offer)
	require.NotNil(t, offerM)

	// A zero CreatedAt on the model would overwrite the stored creation
	// time when Update saves the full record.
	assert.Equal(t, createdAt, offerM.CreatedAt)
	assert.Equal(t, updatedAt, offerM.UpdatedAt)

	require.Len(t, offerM.Details, 1)
	assert.Equal(t, createdAt, offerM.Details[0].CreatedAt)
	assert.Equal(t, updatedAt, offerM.Details[0].UpdatedAt)
}

func TestOfferMapper_RoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	updatedAt := createdAt.Add(time.Hour)

	offer := &entity.Offer{
		ID:          uuid.New(),
		ProfileID:   uuid.New(),
		Title:       "Landing page",
		Image:       "offers/landing.png",
		Description: "Responsive landing page",
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
		Details: []*entity.OfferDetail{
			{
				ID:                 uuid.New(),
				OfferID:            uuid.New(),
				Title:              "Standard page",
				Revisions:          3,
				DeliveryTimeInDays: 7,
				Price:              250,
				Features:           []string{"responsive", "contact form"},
				OfferType:          entity.OfferTypeStandard,
				CreatedAt:          createdAt,
				UpdatedAt:          updatedAt,
			},
		},
	}

	got := toOfferDomain(fromOfferDomain(offer))
	require.NotNil(t, got)

	assert.Equal(t, offer.ID, got.ID)
	assert.Equal(t, offer.ProfileID, got.ProfileID)
	assert.Equal(t, offer.Title, got.Title)
	assert.Equal(t, offer.Image, got.Image)
	assert.Equal(t, offer.Description, got.Description)
	assert.Equal(t, offer.CreatedAt, got.CreatedAt)
	assert.Equal(t, offer.UpdatedAt, got.UpdatedAt)

	require.Len(t, got.Details, 1)
	want := offer.Details[0]
	detail := got.Details[0]
	assert.Equal(t, want.ID, detail.ID)
	assert.Equal(t, want.Title, detail.Title)
	assert.Equal(t, want.Revisions, detail.Revisions)
	assert.Equal(t, want.DeliveryTimeInDays, detail.DeliveryTimeInDays)
	assert.InDelta(t, want.Price, detail.Price, 0.001)
	assert.Equal(t, want.Features, detail.Features)
	assert.Equal(t, want.OfferType, detail.OfferType)
	assert.Equal(t, want.CreatedAt, detail.CreatedAt)
	assert.Equal(t, want.UpdatedAt, detail.UpdatedAt)
}
