package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	mockRepo "coderr/internal/mocks/repository"
	mockSvc "coderr/internal/mocks/service"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type offerServiceMocks struct {
	tx        *mockRepo.MockTransactionManager
	factory   *mockRepo.MockRepositoryFactory
	offers    *mockRepo.MockOfferRepository
	profiles  *mockRepo.MockProfileRepository
	qrService *mockSvc.MockQRCodeService
}

func newOfferService(t *testing.T) (usecase.OfferUsecase, *offerServiceMocks) {
	mocks := &offerServiceMocks{
		tx:        mockRepo.NewMockTransactionManager(t),
		factory:   mockRepo.NewMockRepositoryFactory(t),
		offers:    mockRepo.NewMockOfferRepository(t),
		profiles:  mockRepo.NewMockProfileRepository(t),
		qrService: mockSvc.NewMockQRCodeService(t),
	}

	service := NewOfferService(OfferServiceParams{
		TxManager:   mocks.tx,
		OfferRepo:   mocks.offers,
		ProfileRepo: mocks.profiles,
		QRService:   mocks.qrService,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	})

	return service, mocks
}

func businessActor() policy.Actor {
	return policy.Actor{UserID: uuid.New(), Role: entity.RoleBusiness}
}

func customerActor() policy.Actor {
	return policy.Actor{UserID: uuid.New(), Role: entity.RoleCustomer}
}

func threeTierInput() *usecase.CreateOfferInput {
	return &usecase.CreateOfferInput{
		Title:       "Logo design",
		Description: "Professional logo design package",
		Details: []*usecase.CreateOfferDetailInput{
			{Title: "Basic logo", Revisions: 2, DeliveryTimeInDays: 5, Price: 100, Features: []string{"1 concept"}, OfferType: "basic"},
			{Title: "Standard logo", Revisions: 5, DeliveryTimeInDays: 7, Price: 200, Features: []string{"3 concepts"}, OfferType: "standard"},
			{Title: "Premium logo", Revisions: -1, DeliveryTimeInDays: 10, Price: 500, Features: []string{"5 concepts", "source files"}, OfferType: "premium"},
		},
	}
}

func TestOfferService_CreateOffer_Success(t *testing.T) {
	service, mocks := newOfferService(t)

	ctx := context.Background()
	actor := businessActor()
	profileID := uuid.New()

	mocks.profiles.EXPECT().
		FindByUserID(ctx, actor.UserID).
		Return(&entity.Profile{ID: profileID, UserID: actor.UserID, Username: "studio", Type: entity.RoleBusiness}, nil)

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OfferRepo().Return(mocks.offers)

	mocks.offers.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Offer")).
		RunAndReturn(func(_ context.Context, offer *entity.Offer) error {
			offer.ID = uuid.New()
			for _, d := range offer.Details {
				d.ID = uuid.New()
				d.OfferID = offer.ID
			}
			return nil
		})

	output, err := service.CreateOffer(ctx, actor, threeTierInput())
	require.NoError(t, err)
	assert.Equal(t, profileID, output.UserID)
	assert.Len(t, output.Details, 3)
	assert.InDelta(t, 100.0, output.MinPrice, 0.001)
	assert.Equal(t, 5, output.MinDeliveryTime)
	require.NotNil(t, output.UserDetails)
	assert.Equal(t, "studio", output.UserDetails.Username)
}

func TestOfferService_CreateOffer_CustomerForbidden(t *testing.T) {
	service, _ := newOfferService(t)

	output, err := service.CreateOffer(context.Background(), customerActor(), threeTierInput())
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOfferService_CreateOffer_UnknownTier(t *testing.T) {
	service, _ := newOfferService(t)

	input := threeTierInput()
	input.Details[1].OfferType = "deluxe"

	output, err := service.CreateOffer(context.Background(), businessActor(), input)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOfferTier)
}

func TestOfferService_CreateOffer_RepeatedTier(t *testing.T) {
	service, _ := newOfferService(t)

	input := threeTierInput()
	input.Details[2].OfferType = "basic"

	output, err := service.CreateOffer(context.Background(), businessActor(), input)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateOfferTier)
}

func TestOfferService_GetOffer_NotFound(t *testing.T) {
	service, mocks := newOfferService(t)

	ctx := context.Background()
	offerID := uuid.New()

	mocks.offers.EXPECT().
		FindByID(ctx, offerID).
		Return(nil, repository.ErrOfferNotFound)

	output, err := service.GetOffer(ctx, offerID)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrOfferNotFound)
}

func TestOfferService_ListOffers_DefaultsPagination(t *testing.T) {
	service, mocks := newOfferService(t)

	ctx := context.Background()
	profileID := uuid.New()
	offer := &entity.Offer{
		ID:        uuid.New(),
		ProfileID: profileID,
		Title:     "Logo design",
		Details: []*entity.OfferDetail{
			{ID: uuid.New(), Price: 150, DeliveryTimeInDays: 3, OfferType: entity.OfferTypeBasic},
		},
	}

	mocks.offers.EXPECT().
		List(ctx, repository.OfferFilter{Page: 1, PageSize: 6}).
		Return([]*entity.Offer{offer}, 1, nil)

	mocks.profiles.EXPECT().
		FindByID(ctx, profileID).
		Return(&entity.Profile{ID: profileID, Username: "studio"}, nil)

	output, err := service.ListOffers(ctx, &usecase.ListOffersInput{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), output.Count)
	assert.Equal(t, 1, output.Page)
	assert.Equal(t, 6, output.PageSize)
	require.Len(t, output.Results, 1)
	assert.InDelta(t, 150.0, output.Results[0].MinPrice, 0.001)
	assert.Equal(t, 3, output.Results[0].MinDeliveryTime)
}

func TestOfferService_ListOffers_UnsupportedOrdering(t *testing.T) {
	service, _ := newOfferService(t)

	output, err := service.ListOffers(context.Background(), &usecase.ListOffersInput{Ordering: "price"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestOfferService_UpdateOffer_PatchesTier(t *testing.T) {
	service, mocks := newOfferService(t)

	ctx := context.Background()
	actor := businessActor()
	offerID := uuid.New()
	profileID := uuid.New()

	offer := &entity.Offer{
		ID:        offerID,
		ProfileID: profileID,
		Title:     "Logo design",
		Details: []*entity.OfferDetail{
			{ID: uuid.New(), OfferID: offerID, Title: "Basic logo", Price: 100, DeliveryTimeInDays: 5, OfferType: entity.OfferTypeBasic},
		},
	}

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OfferRepo().Return(mocks.offers)
	mocks.factory.EXPECT().ProfileRepo().Return(mocks.profiles)

	mocks.offers.EXPECT().FindByID(ctx, offerID).Return(offer, nil)
	mocks.profiles.EXPECT().
		FindByID(ctx, profileID).
		Return(&entity.Profile{ID: profileID, UserID: actor.UserID}, nil)
	mocks.offers.EXPECT().Update(ctx, offer).Return(nil)

	newPrice := 120.0
	output, err := service.UpdateOffer(ctx, actor, offerID, &usecase.UpdateOfferInput{
		Details: []*usecase.UpdateOfferDetailInput{
			{OfferType: "basic", Price: &newPrice},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 120.0, output.Details[0].Price, 0.001)
	assert.Equal(t, "Basic logo", output.Details[0].Title)
}

func TestOfferService_UpdateOffer_TierNotOnOffer(t *testing.T) {
	service, mocks := newOfferService(t)

	ctx := context.Background()
	actor := businessActor()
	offerID := uuid.New()
	profileID := uuid.New()

	offer := &entity.Offer{
		ID:        offerID,
		ProfileID: profileID,
		Details: []*entity.OfferDetail{
			{ID: uuid.New(), OfferID: offerID, OfferType: entity.OfferTypeBasic},
		},
	}

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OfferRepo().Return(mocks.offers)
	mocks.factory.EXPECT().ProfileRepo().Return(mocks.profiles)

	mocks.offers.EXPECT().FindByID(ctx, offerID).Return(offer, nil)
	mocks.profiles.EXPECT().
		FindByID(ctx, profileID).
		Return(&entity.Profile{ID: profileID, UserID: actor.UserID}, nil)

	newPrice := 900.0
	output, err := service.UpdateOffer(ctx, actor, offerID, &usecase.UpdateOfferInput{
		Details: []*usecase.UpdateOfferDetailInput{
			{OfferType: "premium", Price: &newPrice},
		},
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrTierNotOnOffer)
}

func TestOfferService_UpdateOffer_NonOwnerForbidden(t *testing.T) {
	service, mocks := newOfferService(t)

	ctx := context.Background()
	actor := businessActor()
	offerID := uuid.New()
	profileID := uuid.New()

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OfferRepo().Return(mocks.offers)
	mocks.factory.EXPECT().ProfileRepo().Return(mocks.profiles)

	mocks.offers.EXPECT().
		FindByID(ctx, offerID).
		Return(&entity.Offer{ID: offerID, ProfileID: profileID}, nil)
	mocks.profiles.EXPECT().
		FindByID(ctx, profileID).
		Return(&entity.Profile{ID: profileID, UserID: uuid.New()}, nil)

	title := "Hijacked"
	output, err := service.UpdateOffer(ctx, actor, offerID, &usecase.UpdateOfferInput{Title: &title})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOfferService_DeleteOffer_StaffOverride(t *testing.T) {
	service, mocks := newOfferService(t)

	ctx := context.Background()
	staff := policy.Actor{UserID: uuid.New(), Role: entity.RoleCustomer, IsStaff: true}
	offerID := uuid.New()
	profileID := uuid.New()

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OfferRepo().Return(mocks.offers)
	mocks.factory.EXPECT().ProfileRepo().Return(mocks.profiles)

	mocks.offers.EXPECT().
		FindByID(ctx, offerID).
		Return(&entity.Offer{ID: offerID, ProfileID: profileID}, nil)
	mocks.profiles.EXPECT().
		FindByID(ctx, profileID).
		Return(&entity.Profile{ID: profileID, UserID: uuid.New()}, nil)
	mocks.offers.EXPECT().Delete(ctx, offerID).Return(nil)

	err := service.DeleteOffer(ctx, staff, offerID)
	require.NoError(t, err)
}

func TestOfferService_GenerateOfferQR(t *testing.T) {
	service, mocks := newOfferService(t)

	ctx := context.Background()
	offerID := uuid.New()

	mocks.offers.EXPECT().
		FindByID(ctx, offerID).
		Return(&entity.Offer{ID: offerID}, nil)
	mocks.qrService.EXPECT().
		GenerateOfferQR(offerID).
		Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil)

	png, err := service.GenerateOfferQR(ctx, offerID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}
