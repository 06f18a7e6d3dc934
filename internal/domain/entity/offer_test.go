package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOffer_MinPrice(t *testing.T) {
	offer := &Offer{
		Details: []*OfferDetail{
			{OfferType: OfferTypeBasic, Price: 10, DeliveryTimeInDays: 5},
			{OfferType: OfferTypeStandard, Price: 20, DeliveryTimeInDays: 3},
			{OfferType: OfferTypePremium, Price: 30, DeliveryTimeInDays: 7},
		},
	}

	price, ok := offer.MinPrice()
	assert.True(t, ok)
	assert.Equal(t, 10.0, price)

	days, ok := offer.MinDeliveryTime()
	assert.True(t, ok)
	assert.Equal(t, 3, days)
}

func TestOffer_MinPrice_NoDetails(t *testing.T) {
	offer := &Offer{}

	_, ok := offer.MinPrice()
	assert.False(t, ok)

	_, ok = offer.MinDeliveryTime()
	assert.False(t, ok)
}

func TestOffer_DetailByType(t *testing.T) {
	basic := &OfferDetail{OfferType: OfferTypeBasic, Price: 10}
	premium := &OfferDetail{OfferType: OfferTypePremium, Price: 50}
	offer := &Offer{Details: []*OfferDetail{basic, premium}}

	assert.Equal(t, basic, offer.DetailByType(OfferTypeBasic))
	assert.Equal(t, premium, offer.DetailByType(OfferTypePremium))
	assert.Nil(t, offer.DetailByType(OfferTypeStandard))
}

func TestOfferType_IsValid(t *testing.T) {
	assert.True(t, OfferTypeBasic.IsValid())
	assert.True(t, OfferTypeStandard.IsValid())
	assert.True(t, OfferTypePremium.IsValid())
	assert.False(t, OfferType("deluxe").IsValid())
	assert.False(t, OfferType("").IsValid())
}
