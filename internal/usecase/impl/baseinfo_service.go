package impl

import (
	"context"
	"log/slog"
	"math"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// baseInfoService implements the BaseInfoUsecase interface.
type baseInfoService struct {
	reviewRepo  repository.ReviewRepository
	profileRepo repository.ProfileRepository
	offerRepo   repository.OfferRepository
	logger      *slog.Logger
}

// BaseInfoServiceParams holds dependencies for BaseInfoService, injected by Fx.
type BaseInfoServiceParams struct {
	fx.In

	ReviewRepo  repository.ReviewRepository
	ProfileRepo repository.ProfileRepository
	OfferRepo   repository.OfferRepository
	Logger      *slog.Logger
}

// NewBaseInfoService is the constructor for baseInfoService.
func NewBaseInfoService(params BaseInfoServiceParams) usecase.BaseInfoUsecase {
	return &baseInfoService{
		reviewRepo:  params.ReviewRepo,
		profileRepo: params.ProfileRepo,
		offerRepo:   params.OfferRepo,
		logger:      params.Logger,
	}
}

func (srv *baseInfoService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetBaseInfo computes the platform-wide aggregates fresh on every call.
// Nothing here is cached or denormalized.
func (srv *baseInfoService) GetBaseInfo(ctx context.Context) (*usecase.BaseInfoOutput, error) {
	srv.log(ctx).Debug("Computing base info aggregates")

	reviewCount, err := srv.reviewRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count reviews")
	}

	averageRating, err := srv.reviewRepo.AverageRating(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute average rating")
	}

	businessCount, err := srv.profileRepo.CountByType(ctx, entity.RoleBusiness)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count business profiles")
	}

	offerCount, err := srv.offerRepo.Count(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count offers")
	}

	return &usecase.BaseInfoOutput{
		ReviewCount:          reviewCount,
		AverageRating:        math.Round(averageRating*10) / 10,
		BusinessProfileCount: businessCount,
		OfferCount:           offerCount,
	}, nil
}
