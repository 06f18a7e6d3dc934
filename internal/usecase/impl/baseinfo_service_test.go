package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	mockRepo "coderr/internal/mocks/repository"
	"coderr/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBaseInfoService(t *testing.T) (usecase.BaseInfoUsecase, *mockRepo.MockReviewRepository, *mockRepo.MockProfileRepository, *mockRepo.MockOfferRepository) {
	mockReviews := mockRepo.NewMockReviewRepository(t)
	mockProfiles := mockRepo.NewMockProfileRepository(t)
	mockOffers := mockRepo.NewMockOfferRepository(t)

	service := NewBaseInfoService(BaseInfoServiceParams{
		ReviewRepo:  mockReviews,
		ProfileRepo: mockProfiles,
		OfferRepo:   mockOffers,
		Logger:      newDiscardLogger(),
	})

	return service, mockReviews, mockProfiles, mockOffers
}

func TestBaseInfoService_GetBaseInfo_RoundsRating(t *testing.T) {
	service, mockReviews, mockProfiles, mockOffers := newBaseInfoService(t)

	ctx := context.Background()

	mockReviews.EXPECT().Count(ctx).Return(int64(12), nil)
	mockReviews.EXPECT().AverageRating(ctx).Return(4.2599999, nil)
	mockProfiles.EXPECT().CountByType(ctx, entity.RoleBusiness).Return(int64(3), nil)
	mockOffers.EXPECT().Count(ctx).Return(int64(7), nil)

	output, err := service.GetBaseInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(12), output.ReviewCount)
	assert.InDelta(t, 4.3, output.AverageRating, 0.0001)
	assert.Equal(t, int64(3), output.BusinessProfileCount)
	assert.Equal(t, int64(7), output.OfferCount)
}

func TestBaseInfoService_GetBaseInfo_NoReviews(t *testing.T) {
	service, mockReviews, mockProfiles, mockOffers := newBaseInfoService(t)

	ctx := context.Background()

	mockReviews.EXPECT().Count(ctx).Return(int64(0), nil)
	mockReviews.EXPECT().AverageRating(ctx).Return(0.0, nil)
	mockProfiles.EXPECT().CountByType(ctx, entity.RoleBusiness).Return(int64(0), nil)
	mockOffers.EXPECT().Count(ctx).Return(int64(0), nil)

	output, err := service.GetBaseInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), output.ReviewCount)
	assert.InDelta(t, 0.0, output.AverageRating, 0.0001)
}
