package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	mockRepo "coderr/internal/mocks/repository"
	"coderr/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type profileServiceMocks struct {
	tx       *mockRepo.MockTransactionManager
	factory  *mockRepo.MockRepositoryFactory
	profiles *mockRepo.MockProfileRepository
	users    *mockRepo.MockUserRepository
}

func newProfileService(t *testing.T) (usecase.ProfileUsecase, *profileServiceMocks) {
	mocks := &profileServiceMocks{
		tx:       mockRepo.NewMockTransactionManager(t),
		factory:  mockRepo.NewMockRepositoryFactory(t),
		profiles: mockRepo.NewMockProfileRepository(t),
		users:    mockRepo.NewMockUserRepository(t),
	}

	service := NewProfileService(ProfileServiceParams{
		TxManager:   mocks.tx,
		ProfileRepo: mocks.profiles,
		Logger:      newDiscardLogger(),
	})

	return service, mocks
}

func TestProfileService_GetProfile(t *testing.T) {
	service, mocks := newProfileService(t)

	ctx := context.Background()
	profileID := uuid.New()

	mocks.profiles.EXPECT().
		FindByID(ctx, profileID).
		Return(&entity.Profile{
			ID:       profileID,
			UserID:   uuid.New(),
			Username: "studio",
			Type:     entity.RoleBusiness,
		}, nil)

	output, err := service.GetProfile(ctx, profileID)
	require.NoError(t, err)
	assert.Equal(t, profileID, output.ID)
	assert.Equal(t, "business", output.Type)
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	service, mocks := newProfileService(t)

	ctx := context.Background()
	profileID := uuid.New()

	mocks.profiles.EXPECT().
		FindByID(ctx, profileID).
		Return(nil, repository.ErrProfileNotFound)

	output, err := service.GetProfile(ctx, profileID)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrProfileNotFound)
}

func TestProfileService_UpdateProfile_Success(t *testing.T) {
	service, mocks := newProfileService(t)

	ctx := context.Background()
	actor := customerActor()
	profileID := uuid.New()
	newEmail := gofakeit.Email()

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().ProfileRepo().Return(mocks.profiles)
	mocks.factory.EXPECT().UserRepo().Return(mocks.users)

	mocks.profiles.EXPECT().
		FindByID(ctx, profileID).
		Return(&entity.Profile{ID: profileID, UserID: actor.UserID, Type: entity.RoleCustomer}, nil)
	mocks.users.EXPECT().
		UpdateEmail(ctx, actor.UserID, newEmail).
		Return(nil)
	mocks.profiles.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.Profile")).
		Return(nil)

	firstName := "Ada"
	tel := "555-0101"
	output, err := service.UpdateProfile(ctx, actor, profileID, &usecase.UpdateProfileInput{
		FirstName: &firstName,
		Tel:       &tel,
		Email:     &newEmail,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada", output.FirstName)
	assert.Equal(t, "555-0101", output.Tel)
	assert.Equal(t, newEmail, output.Email)
}

func TestProfileService_UpdateProfile_NonOwnerForbidden(t *testing.T) {
	service, mocks := newProfileService(t)

	ctx := context.Background()
	actor := customerActor()
	profileID := uuid.New()

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().ProfileRepo().Return(mocks.profiles)
	mocks.factory.EXPECT().UserRepo().Return(mocks.users)

	mocks.profiles.EXPECT().
		FindByID(ctx, profileID).
		Return(&entity.Profile{ID: profileID, UserID: uuid.New()}, nil)

	firstName := "Mallory"
	output, err := service.UpdateProfile(ctx, actor, profileID, &usecase.UpdateProfileInput{FirstName: &firstName})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestProfileService_UpdateProfile_EmailTaken(t *testing.T) {
	service, mocks := newProfileService(t)

	ctx := context.Background()
	actor := customerActor()
	profileID := uuid.New()
	newEmail := gofakeit.Email()

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().ProfileRepo().Return(mocks.profiles)
	mocks.factory.EXPECT().UserRepo().Return(mocks.users)

	mocks.profiles.EXPECT().
		FindByID(ctx, profileID).
		Return(&entity.Profile{ID: profileID, UserID: actor.UserID}, nil)
	mocks.users.EXPECT().
		UpdateEmail(ctx, actor.UserID, newEmail).
		Return(repository.ErrUserAlreadyExists)

	output, err := service.UpdateProfile(ctx, actor, profileID, &usecase.UpdateProfileInput{Email: &newEmail})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestProfileService_ListBusinessProfiles(t *testing.T) {
	service, mocks := newProfileService(t)

	ctx := context.Background()

	mocks.profiles.EXPECT().
		ListByType(ctx, entity.RoleBusiness).
		Return([]*entity.Profile{
			{ID: uuid.New(), Username: "studio-one", Type: entity.RoleBusiness},
			{ID: uuid.New(), Username: "studio-two", Type: entity.RoleBusiness},
		}, nil)

	output, err := service.ListBusinessProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, output, 2)
	assert.Equal(t, "business", output[0].Type)
}

func TestProfileService_ListCustomerProfiles_Empty(t *testing.T) {
	service, mocks := newProfileService(t)

	ctx := context.Background()

	mocks.profiles.EXPECT().
		ListByType(ctx, entity.RoleCustomer).
		Return([]*entity.Profile{}, nil)

	output, err := service.ListCustomerProfiles(ctx)
	require.NoError(t, err)
	assert.Empty(t, output)
}
