package impl

import (
	"context"
	"testing"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	mockRepo "coderr/internal/mocks/repository"
	mockSvc "coderr/internal/mocks/service"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceMocks struct {
	tx        *mockRepo.MockTransactionManager
	factory   *mockRepo.MockRepositoryFactory
	orders    *mockRepo.MockOrderRepository
	offers    *mockRepo.MockOfferRepository
	profiles  *mockRepo.MockProfileRepository
	users     *mockRepo.MockUserRepository
	publisher *mockSvc.MockEventPublisher
}

func newOrderService(t *testing.T) (usecase.OrderUsecase, *orderServiceMocks) {
	mocks := &orderServiceMocks{
		tx:        mockRepo.NewMockTransactionManager(t),
		factory:   mockRepo.NewMockRepositoryFactory(t),
		orders:    mockRepo.NewMockOrderRepository(t),
		offers:    mockRepo.NewMockOfferRepository(t),
		profiles:  mockRepo.NewMockProfileRepository(t),
		users:     mockRepo.NewMockUserRepository(t),
		publisher: mockSvc.NewMockEventPublisher(t),
	}

	service := NewOrderService(OrderServiceParams{
		TxManager:   mocks.tx,
		OrderRepo:   mocks.orders,
		ProfileRepo: mocks.profiles,
		UserRepo:    mocks.users,
		Publisher:   mocks.publisher,
		Logger:      newDiscardLogger(),
	})

	return service, mocks
}

func TestOrderService_CreateOrder_SnapshotsTier(t *testing.T) {
	svc, mocks := newOrderService(t)

	ctx := context.Background()
	actor := customerActor()
	customerProfileID := uuid.New()
	businessProfileID := uuid.New()
	detailID := uuid.New()
	offerID := uuid.New()

	mocks.profiles.EXPECT().
		FindByUserID(ctx, actor.UserID).
		Return(&entity.Profile{ID: customerProfileID, UserID: actor.UserID, Type: entity.RoleCustomer}, nil)

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OfferRepo().Return(mocks.offers)
	mocks.factory.EXPECT().OrderRepo().Return(mocks.orders)

	mocks.offers.EXPECT().
		FindDetailByID(ctx, detailID).
		Return(&entity.OfferDetail{
			ID:                 detailID,
			OfferID:            offerID,
			Title:              "Standard logo",
			Revisions:          5,
			DeliveryTimeInDays: 7,
			Price:              200,
			Features:           []string{"3 concepts"},
			OfferType:          entity.OfferTypeStandard,
		}, nil)
	mocks.offers.EXPECT().
		FindByID(ctx, offerID).
		Return(&entity.Offer{ID: offerID, ProfileID: businessProfileID}, nil)

	mocks.orders.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Order")).
		RunAndReturn(func(_ context.Context, order *entity.Order) error {
			order.ID = uuid.New()
			return nil
		})

	mocks.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.MatchedBy(func(event *service.OrderEvent) bool {
			return event.Event == service.OrderEventCreated && event.Status == "in_progress"
		})).
		Return(nil)

	output, err := svc.CreateOrder(ctx, actor, &usecase.CreateOrderInput{OfferDetailID: detailID})
	require.NoError(t, err)
	assert.Equal(t, customerProfileID, output.CustomerUser)
	assert.Equal(t, businessProfileID, output.BusinessUser)
	assert.Equal(t, "Standard logo", output.Title)
	assert.Equal(t, 5, output.Revisions)
	assert.InDelta(t, 200.0, output.Price, 0.001)
	assert.Equal(t, "standard", output.OfferType)
	assert.Equal(t, "in_progress", output.Status)
}

func TestOrderService_CreateOrder_BusinessForbidden(t *testing.T) {
	service, _ := newOrderService(t)

	output, err := service.CreateOrder(context.Background(), businessActor(), &usecase.CreateOrderInput{OfferDetailID: uuid.New()})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_CreateOrder_DetailNotFound(t *testing.T) {
	service, mocks := newOrderService(t)

	ctx := context.Background()
	actor := customerActor()
	detailID := uuid.New()

	mocks.profiles.EXPECT().
		FindByUserID(ctx, actor.UserID).
		Return(&entity.Profile{ID: uuid.New(), UserID: actor.UserID}, nil)

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OfferRepo().Return(mocks.offers)
	mocks.factory.EXPECT().OrderRepo().Return(mocks.orders)

	mocks.offers.EXPECT().
		FindDetailByID(ctx, detailID).
		Return(nil, repository.ErrOfferDetailNotFound)

	output, err := service.CreateOrder(ctx, actor, &usecase.CreateOrderInput{OfferDetailID: detailID})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrOfferDetailNotFound)
}

func TestOrderService_UpdateOrderStatus_Completes(t *testing.T) {
	svc, mocks := newOrderService(t)

	ctx := context.Background()
	actor := businessActor()
	orderID := uuid.New()
	businessProfileID := uuid.New()

	mocks.profiles.EXPECT().
		FindByUserID(ctx, actor.UserID).
		Return(&entity.Profile{ID: businessProfileID, UserID: actor.UserID, Type: entity.RoleBusiness}, nil)

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OrderRepo().Return(mocks.orders)

	mocks.orders.EXPECT().
		FindByID(ctx, orderID).
		Return(&entity.Order{
			ID:                orderID,
			BusinessProfileID: businessProfileID,
			CustomerProfileID: uuid.New(),
			OfferType:         entity.OfferTypePremium,
			Status:            entity.OrderStatusInProgress,
		}, nil)
	mocks.orders.EXPECT().
		UpdateStatus(ctx, orderID, entity.OrderStatusCompleted).
		Return(nil)

	mocks.publisher.EXPECT().
		PublishOrderEvent(ctx, mock.MatchedBy(func(event *service.OrderEvent) bool {
			return event.Event == service.OrderEventStatusChanged && event.Status == "completed"
		})).
		Return(nil)

	output, err := svc.UpdateOrderStatus(ctx, actor, orderID, &usecase.UpdateOrderStatusInput{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, "completed", output.Status)
}

func TestOrderService_UpdateOrderStatus_TerminalFrozen(t *testing.T) {
	service, mocks := newOrderService(t)

	ctx := context.Background()
	actor := businessActor()
	orderID := uuid.New()
	businessProfileID := uuid.New()

	mocks.profiles.EXPECT().
		FindByUserID(ctx, actor.UserID).
		Return(&entity.Profile{ID: businessProfileID, UserID: actor.UserID, Type: entity.RoleBusiness}, nil)

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OrderRepo().Return(mocks.orders)

	mocks.orders.EXPECT().
		FindByID(ctx, orderID).
		Return(&entity.Order{
			ID:                orderID,
			BusinessProfileID: businessProfileID,
			Status:            entity.OrderStatusCompleted,
		}, nil)

	output, err := service.UpdateOrderStatus(ctx, actor, orderID, &usecase.UpdateOrderStatusInput{Status: "canceled"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidStatusTransition)
}

func TestOrderService_UpdateOrderStatus_OtherBusinessForbidden(t *testing.T) {
	service, mocks := newOrderService(t)

	ctx := context.Background()
	actor := businessActor()
	orderID := uuid.New()

	mocks.profiles.EXPECT().
		FindByUserID(ctx, actor.UserID).
		Return(&entity.Profile{ID: uuid.New(), UserID: actor.UserID, Type: entity.RoleBusiness}, nil)

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OrderRepo().Return(mocks.orders)

	mocks.orders.EXPECT().
		FindByID(ctx, orderID).
		Return(&entity.Order{
			ID:                orderID,
			BusinessProfileID: uuid.New(),
			Status:            entity.OrderStatusInProgress,
		}, nil)

	output, err := service.UpdateOrderStatus(ctx, actor, orderID, &usecase.UpdateOrderStatusInput{Status: "completed"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_UpdateOrderStatus_CustomerForbidden(t *testing.T) {
	service, _ := newOrderService(t)

	output, err := service.UpdateOrderStatus(context.Background(), customerActor(), uuid.New(), &usecase.UpdateOrderStatusInput{Status: "completed"})
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_DeleteOrder_RequiresStaff(t *testing.T) {
	service, _ := newOrderService(t)

	err := service.DeleteOrder(context.Background(), businessActor(), uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestOrderService_DeleteOrder_Staff(t *testing.T) {
	service, mocks := newOrderService(t)

	ctx := context.Background()
	staff := policy.Actor{UserID: uuid.New(), Role: entity.RoleCustomer, IsStaff: true}
	orderID := uuid.New()

	passthroughTx(mocks.tx, mocks.factory)
	mocks.factory.EXPECT().OrderRepo().Return(mocks.orders)

	mocks.orders.EXPECT().
		FindByID(ctx, orderID).
		Return(&entity.Order{ID: orderID, Status: entity.OrderStatusInProgress}, nil)
	mocks.orders.EXPECT().Delete(ctx, orderID).Return(nil)

	require.NoError(t, service.DeleteOrder(ctx, staff, orderID))
}

func TestOrderService_CountInProgressOrders(t *testing.T) {
	service, mocks := newOrderService(t)

	ctx := context.Background()
	businessUserID := uuid.New()
	profileID := uuid.New()

	mocks.users.EXPECT().
		FindByID(ctx, businessUserID).
		Return(&entity.User{ID: businessUserID, Type: entity.RoleBusiness}, nil)
	mocks.profiles.EXPECT().
		FindByUserID(ctx, businessUserID).
		Return(&entity.Profile{ID: profileID, UserID: businessUserID, Type: entity.RoleBusiness}, nil)
	mocks.orders.EXPECT().
		CountByBusinessAndStatus(ctx, profileID, entity.OrderStatusInProgress).
		Return(int64(4), nil)

	output, err := service.CountInProgressOrders(ctx, businessUserID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), output.OrderCount)
}

func TestOrderService_CountCompletedOrders_NotBusiness(t *testing.T) {
	service, mocks := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()

	mocks.users.EXPECT().
		FindByID(ctx, userID).
		Return(&entity.User{ID: userID, Type: entity.RoleCustomer}, nil)

	output, err := service.CountCompletedOrders(ctx, userID)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrBusinessUserNotFound)
}

func TestOrderService_CountCompletedOrders_UnknownUser(t *testing.T) {
	service, mocks := newOrderService(t)

	ctx := context.Background()
	userID := uuid.New()

	mocks.users.EXPECT().
		FindByID(ctx, userID).
		Return(nil, repository.ErrUserNotFound)

	output, err := service.CountCompletedOrders(ctx, userID)
	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrBusinessUserNotFound)
}
