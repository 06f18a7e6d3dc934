package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	mockRepo "coderr/internal/mocks/repository"
	mockSvc "coderr/internal/mocks/service"
	"coderr/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (usecase.UserUsecase, *mockRepo.MockTransactionManager, *mockRepo.MockRepositoryFactory, *mockRepo.MockUserRepository, *mockSvc.MockPasswordHasher, *mockSvc.MockTokenService) {
	mockTx := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	mockUserRepo := mockRepo.NewMockUserRepository(t)
	mockHasher := mockSvc.NewMockPasswordHasher(t)
	mockTokens := mockSvc.NewMockTokenService(t)

	service := NewUserService(UserServiceParams{
		TxManager:    mockTx,
		UserRepo:     mockUserRepo,
		Hasher:       mockHasher,
		TokenService: mockTokens,
		Logger:       newDiscardLogger(),
	})

	return service, mockTx, factory, mockUserRepo, mockHasher, mockTokens
}

func TestUserService_Register_Customer(t *testing.T) {
	service, mockTx, factory, mockUserRepo, mockHasher, mockTokens := newUserService(t)

	ctx := context.Background()
	username := gofakeit.Username()
	email := gofakeit.Email()
	password := "Sup3r$ecret"

	mockHasher.EXPECT().ValidatePasswordStrength(password).Return(nil)
	mockHasher.EXPECT().Hash(password).Return("hashed-password", nil)

	passthroughTx(mockTx, factory)
	factory.EXPECT().UserRepo().Return(mockUserRepo)

	mockUserRepo.EXPECT().
		FindByUsername(ctx, username).
		Return(nil, repository.ErrUserNotFound)

	mockUserRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.User")).
		RunAndReturn(func(_ context.Context, user *entity.User) error {
			user.ID = uuid.New()
			return nil
		})

	mockTokens.EXPECT().
		GenerateTokens(mock.AnythingOfType("uuid.UUID"), entity.RoleCustomer, false).
		Return("access-token", "refresh-token", nil)

	output, err := service.Register(ctx, &usecase.RegisterInput{
		Username:         username,
		Email:            email,
		Password:         password,
		RepeatedPassword: password,
		Type:             "customer",
	})
	require.NoError(t, err)
	assert.Equal(t, "access-token", output.Token)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, username, output.Username)
	assert.Equal(t, email, output.Email)
	assert.NotEqual(t, uuid.Nil, output.UserID)
}

func TestUserService_Register_PasswordMismatch(t *testing.T) {
	service, _, _, _, _, _ := newUserService(t)

	output, err := service.Register(context.Background(), &usecase.RegisterInput{
		Username:         gofakeit.Username(),
		Email:            gofakeit.Email(),
		Password:         "Sup3r$ecret",
		RepeatedPassword: "different",
		Type:             "customer",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordMismatch)
}

func TestUserService_Register_UnknownType(t *testing.T) {
	service, _, _, _, _, _ := newUserService(t)

	output, err := service.Register(context.Background(), &usecase.RegisterInput{
		Username:         gofakeit.Username(),
		Email:            gofakeit.Email(),
		Password:         "Sup3r$ecret",
		RepeatedPassword: "Sup3r$ecret",
		Type:             "admin",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserService_Register_UsernameTaken(t *testing.T) {
	service, mockTx, factory, mockUserRepo, mockHasher, _ := newUserService(t)

	ctx := context.Background()
	username := gofakeit.Username()
	password := "Sup3r$ecret"

	mockHasher.EXPECT().ValidatePasswordStrength(password).Return(nil)
	mockHasher.EXPECT().Hash(password).Return("hashed-password", nil)

	passthroughTx(mockTx, factory)
	factory.EXPECT().UserRepo().Return(mockUserRepo)

	mockUserRepo.EXPECT().
		FindByUsername(ctx, username).
		Return(&entity.User{ID: uuid.New(), Username: username}, nil)

	output, err := service.Register(ctx, &usecase.RegisterInput{
		Username:         username,
		Email:            gofakeit.Email(),
		Password:         password,
		RepeatedPassword: password,
		Type:             "business",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Register_WeakPassword(t *testing.T) {
	service, _, _, _, mockHasher, _ := newUserService(t)

	mockHasher.EXPECT().
		ValidatePasswordStrength("weak").
		Return(domainerrors.ErrPasswordStrength)

	output, err := service.Register(context.Background(), &usecase.RegisterInput{
		Username:         gofakeit.Username(),
		Email:            gofakeit.Email(),
		Password:         "weak",
		RepeatedPassword: "weak",
		Type:             "customer",
	})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrPasswordStrength)
}

func TestUserService_Login_Success(t *testing.T) {
	service, _, _, mockUserRepo, mockHasher, mockTokens := newUserService(t)

	ctx := context.Background()
	userID := uuid.New()
	username := gofakeit.Username()
	email := gofakeit.Email()

	mockUserRepo.EXPECT().
		FindByUsername(ctx, username).
		Return(&entity.User{
			ID:           userID,
			Username:     username,
			Email:        email,
			PasswordHash: "stored-hash",
			Type:         entity.RoleBusiness,
		}, nil)

	mockHasher.EXPECT().Check("Sup3r$ecret", "stored-hash").Return(true)

	mockTokens.EXPECT().
		GenerateTokens(userID, entity.RoleBusiness, false).
		Return("access-token", "refresh-token", nil)

	output, err := service.Login(ctx, &usecase.LoginInput{Username: username, Password: "Sup3r$ecret"})
	require.NoError(t, err)
	assert.Equal(t, userID, output.UserID)
	assert.Equal(t, "access-token", output.Token)
	assert.Equal(t, email, output.Email)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	service, _, _, mockUserRepo, mockHasher, _ := newUserService(t)

	ctx := context.Background()
	username := gofakeit.Username()

	mockUserRepo.EXPECT().
		FindByUsername(ctx, username).
		Return(&entity.User{ID: uuid.New(), Username: username, PasswordHash: "stored-hash"}, nil)

	mockHasher.EXPECT().Check("wrong", "stored-hash").Return(false)

	output, err := service.Login(ctx, &usecase.LoginInput{Username: username, Password: "wrong"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownUser(t *testing.T) {
	service, _, _, mockUserRepo, _, _ := newUserService(t)

	ctx := context.Background()
	username := gofakeit.Username()

	mockUserRepo.EXPECT().
		FindByUsername(ctx, username).
		Return(nil, repository.ErrUserNotFound)

	output, err := service.Login(ctx, &usecase.LoginInput{Username: username, Password: "whatever"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
