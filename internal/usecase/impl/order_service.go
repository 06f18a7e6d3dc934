package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/domain/service"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager   repository.TransactionManager
	orderRepo   repository.OrderRepository
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	OrderRepo   repository.OrderRepository
	ProfileRepo repository.ProfileRepository
	UserRepo    repository.UserRepository
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:   params.TxManager,
		orderRepo:   params.OrderRepo,
		profileRepo: params.ProfileRepo,
		userRepo:    params.UserRepo,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder places an order against a pricing tier. The tier's terms and
// the offer owner are copied onto the order so later offer edits never
// change what was agreed.
func (srv *orderService) CreateOrder(ctx context.Context, actor policy.Actor, input *usecase.CreateOrderInput) (*usecase.OrderOutput, error) {
	srv.log(ctx).Info("Creating order", slog.Any("actorID", actor.UserID), slog.Any("offerDetailID", input.OfferDetailID))

	if !policy.CanCreateOrder(actor) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only customer accounts may place orders")
	}

	customerProfile, err := srv.profileRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load customer profile")
	}

	var newOrder *entity.Order
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()
		orderRepo := repoFactory.OrderRepo()

		detail, findErr := offerRepo.FindDetailByID(ctx, input.OfferDetailID)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrOfferDetailNotFound) {
				return errors.Wrap(domainerrors.ErrOfferDetailNotFound, "offer detail lookup failed")
			}

			return errors.Wrap(findErr, "failed to find offer detail by id")
		}

		offer, offerErr := offerRepo.FindByID(ctx, detail.OfferID)
		if offerErr != nil {
			return errors.Wrap(offerErr, "failed to find owning offer")
		}

		newOrder = &entity.Order{
			OfferDetailID:      detail.ID,
			CustomerProfileID:  customerProfile.ID,
			BusinessProfileID:  offer.ProfileID,
			Title:              detail.Title,
			Revisions:          detail.Revisions,
			DeliveryTimeInDays: detail.DeliveryTimeInDays,
			Price:              detail.Price,
			Features:           detail.Features,
			OfferType:          detail.OfferType,
			Status:             entity.OrderStatusInProgress,
		}

		if createErr := orderRepo.Create(ctx, newOrder); createErr != nil {
			return errors.Wrap(createErr, "failed to create order")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute order creation transaction", slog.Any("actorID", actor.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order creation transaction")
	}

	srv.publishOrderEvent(ctx, service.OrderEventCreated, newOrder)

	return orderToOutput(newOrder), nil
}

// ListOrders returns all orders the actor participates in, on either side.
func (srv *orderService) ListOrders(ctx context.Context, actor policy.Actor) ([]*usecase.OrderOutput, error) {
	profile, err := srv.profileRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load actor profile")
	}

	orders, err := srv.orderRepo.ListByProfile(ctx, profile.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	outputs := make([]*usecase.OrderOutput, 0, len(orders))
	for _, order := range orders {
		outputs = append(outputs, orderToOutput(order))
	}

	return outputs, nil
}

// UpdateOrderStatus moves an order along its one-way lifecycle. Only the
// business party of that order may do this, and terminal states are frozen.
func (srv *orderService) UpdateOrderStatus(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.UpdateOrderStatusInput) (*usecase.OrderOutput, error) {
	srv.log(ctx).Info("Updating order status", slog.Any("orderID", id), slog.String("status", input.Status))

	if !policy.CanPatchOrder(actor) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only business accounts may update order status")
	}

	nextStatus := entity.OrderStatus(input.Status)
	if !nextStatus.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown order status")
	}

	actorProfile, err := srv.profileRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load actor profile")
	}

	var updated *entity.Order
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		order, findErr := orderRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup failed")
			}

			return errors.Wrap(findErr, "failed to find order by id")
		}

		if order.BusinessProfileID != actorProfile.ID {
			return errors.Wrap(domainerrors.ErrForbidden, "order belongs to another business")
		}

		if !order.Status.CanTransitionTo(nextStatus) {
			return domainerrors.ErrInvalidStatusTransition.WithDetails(
				order.Status.String() + " cannot move to " + nextStatus.String())
		}

		if updateErr := orderRepo.UpdateStatus(ctx, id, nextStatus); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update order status")
		}

		order.Status = nextStatus
		order.UpdatedAt = time.Now()
		updated = order

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update order status", slog.Any("orderID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute order status transaction")
	}

	srv.publishOrderEvent(ctx, service.OrderEventStatusChanged, updated)

	return orderToOutput(updated), nil
}

// DeleteOrder removes an order. Staff only.
func (srv *orderService) DeleteOrder(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting order", slog.Any("orderID", id), slog.Any("actorID", actor.UserID))

	if !policy.CanDeleteOrder(actor) {
		return errors.Wrap(domainerrors.ErrForbidden, "only staff may delete orders")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		orderRepo := repoFactory.OrderRepo()

		if _, findErr := orderRepo.FindByID(ctx, id); findErr != nil {
			if errors.Is(findErr, repository.ErrOrderNotFound) {
				return errors.Wrap(domainerrors.ErrOrderNotFound, "order lookup failed")
			}

			return errors.Wrap(findErr, "failed to find order by id")
		}

		if deleteErr := orderRepo.Delete(ctx, id); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete order")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete order", slog.Any("orderID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute order deletion transaction")
	}

	return nil
}

// CountInProgressOrders counts in-progress orders for a business user.
func (srv *orderService) CountInProgressOrders(ctx context.Context, businessUserID uuid.UUID) (*usecase.OrderCountOutput, error) {
	count, err := srv.countByStatus(ctx, businessUserID, entity.OrderStatusInProgress)
	if err != nil {
		return nil, err
	}

	return &usecase.OrderCountOutput{OrderCount: count}, nil
}

// CountCompletedOrders counts completed orders for a business user.
func (srv *orderService) CountCompletedOrders(ctx context.Context, businessUserID uuid.UUID) (*usecase.CompletedOrderCountOutput, error) {
	count, err := srv.countByStatus(ctx, businessUserID, entity.OrderStatusCompleted)
	if err != nil {
		return nil, err
	}

	return &usecase.CompletedOrderCountOutput{CompletedOrderCount: count}, nil
}

// countByStatus resolves a business user ID to its profile and counts that
// profile's orders in the given status. An unknown or non-business user is
// reported as a missing business user.
func (srv *orderService) countByStatus(ctx context.Context, businessUserID uuid.UUID, status entity.OrderStatus) (int64, error) {
	user, err := srv.userRepo.FindByID(ctx, businessUserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return 0, errors.Wrap(domainerrors.ErrBusinessUserNotFound, "business user lookup failed")
		}

		return 0, errors.Wrap(err, "failed to find user by id")
	}
	if user.Type != entity.RoleBusiness {
		return 0, errors.Wrap(domainerrors.ErrBusinessUserNotFound, "user is not a business account")
	}

	profile, err := srv.profileRepo.FindByUserID(ctx, businessUserID)
	if err != nil {
		return 0, errors.Wrap(err, "failed to load business profile")
	}

	count, err := srv.orderRepo.CountByBusinessAndStatus(ctx, profile.ID, status)
	if err != nil {
		return 0, errors.Wrap(err, "failed to count orders")
	}

	return count, nil
}

// publishOrderEvent emits a lifecycle event. Publishing is best-effort:
// a broker outage must not fail the order mutation that already committed.
func (srv *orderService) publishOrderEvent(ctx context.Context, eventName string, order *entity.Order) {
	if srv.publisher == nil {
		return
	}

	event := &service.OrderEvent{
		RequestID:         deliverycontext.GetRequestIDFromContext(ctx),
		Event:             eventName,
		OrderID:           order.ID.String(),
		BusinessProfileID: order.BusinessProfileID.String(),
		CustomerProfileID: order.CustomerProfileID.String(),
		OfferType:         order.OfferType.String(),
		Price:             order.Price,
		Status:            order.Status.String(),
	}

	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to publish order event", slog.String("event", eventName), slog.Any("orderID", order.ID), slog.Any("error", err))
	}
}

func orderToOutput(order *entity.Order) *usecase.OrderOutput {
	return &usecase.OrderOutput{
		ID:                 order.ID,
		CustomerUser:       order.CustomerProfileID,
		BusinessUser:       order.BusinessProfileID,
		Title:              order.Title,
		Revisions:          order.Revisions,
		DeliveryTimeInDays: order.DeliveryTimeInDays,
		Price:              order.Price,
		Features:           order.Features,
		OfferType:          order.OfferType.String(),
		Status:             order.Status.String(),
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}
