package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "coderr/internal/delivery/context"
	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/repository"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	txManager   repository.TransactionManager
	reviewRepo  repository.ReviewRepository
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ReviewRepo  repository.ReviewRepository
	ProfileRepo repository.ProfileRepository
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		txManager:   params.TxManager,
		reviewRepo:  params.ReviewRepo,
		profileRepo: params.ProfileRepo,
		logger:      params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateReview posts a review for a business profile. A reviewer may rate
// each business at most once; the storage unique index backs the pre-check
// so concurrent submissions cannot slip a second review through.
func (srv *reviewService) CreateReview(ctx context.Context, actor policy.Actor, input *usecase.CreateReviewInput) (*usecase.ReviewOutput, error) {
	srv.log(ctx).Info("Creating review", slog.Any("actorID", actor.UserID), slog.Any("businessProfileID", input.BusinessUser))

	if !policy.CanCreateReview(actor) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only customer accounts may write reviews")
	}

	reviewerProfile, err := srv.profileRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load reviewer profile")
	}

	businessProfile, err := srv.profileRepo.FindByID(ctx, input.BusinessUser)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.Wrap(domainerrors.ErrBusinessUserNotFound, "business profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find business profile")
	}
	if businessProfile.Type != entity.RoleBusiness {
		return nil, errors.Wrap(domainerrors.ErrBusinessUserNotFound, "reviewed profile is not a business")
	}

	newReview := &entity.Review{
		BusinessProfileID: businessProfile.ID,
		ReviewerProfileID: reviewerProfile.ID,
		Rating:            input.Rating,
		Description:       input.Description,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()

		_, findErr := reviewRepo.FindByReviewerAndBusiness(ctx, reviewerProfile.ID, businessProfile.ID)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrDuplicateReview, "review already exists for this pair")
		}
		if !errors.Is(findErr, repository.ErrReviewNotFound) {
			return errors.Wrap(findErr, "failed to check existing review")
		}

		if createErr := reviewRepo.Create(ctx, newReview); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateReview) {
				return errors.Wrap(domainerrors.ErrDuplicateReview, "review already exists for this pair")
			}

			return errors.Wrap(createErr, "failed to create review")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to create review", slog.Any("actorID", actor.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute review creation transaction")
	}

	return reviewToOutput(newReview), nil
}

// ListReviews returns reviews matching the given filters.
func (srv *reviewService) ListReviews(ctx context.Context, input *usecase.ListReviewsInput) ([]*usecase.ReviewOutput, error) {
	if err := validateReviewOrdering(input.Ordering); err != nil {
		return nil, err
	}

	reviews, err := srv.reviewRepo.List(ctx, repository.ReviewFilter{
		BusinessProfileID: input.BusinessUserID,
		ReviewerProfileID: input.ReviewerID,
		Ordering:          input.Ordering,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list reviews")
	}

	outputs := make([]*usecase.ReviewOutput, 0, len(reviews))
	for _, r := range reviews {
		outputs = append(outputs, reviewToOutput(r))
	}

	return outputs, nil
}

// GetReview returns a single review by ID.
func (srv *reviewService) GetReview(ctx context.Context, id uuid.UUID) (*usecase.ReviewOutput, error) {
	review, err := srv.reviewRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return nil, errors.Wrap(domainerrors.ErrReviewNotFound, "review lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find review by id")
	}

	return reviewToOutput(review), nil
}

// UpdateReview patches rating and description. The patch is rejected when
// the body names any other field, and only the original reviewer may edit.
func (srv *reviewService) UpdateReview(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.UpdateReviewInput) (*usecase.ReviewOutput, error) {
	srv.log(ctx).Debug("Updating review", slog.Any("reviewID", id), slog.Any("actorID", actor.UserID))

	if err := validateReviewPatchFields(input.RawFields); err != nil {
		return nil, err
	}

	var updated *entity.Review
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()
		profileRepo := repoFactory.ProfileRepo()

		review, findErr := reviewRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrReviewNotFound, "review lookup failed")
			}

			return errors.Wrap(findErr, "failed to find review by id")
		}

		reviewerProfile, profileErr := profileRepo.FindByID(ctx, review.ReviewerProfileID)
		if profileErr != nil {
			return errors.Wrap(profileErr, "failed to load reviewer profile")
		}

		if !policy.CanMutateReview(actor, reviewerProfile.UserID) {
			return errors.Wrap(domainerrors.ErrForbidden, "only the reviewer may edit this review")
		}

		if input.Rating != nil {
			review.Rating = *input.Rating
		}
		if input.Description != nil {
			review.Description = *input.Description
		}

		if updateErr := reviewRepo.Update(ctx, review); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update review")
		}

		updated = review

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update review", slog.Any("reviewID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute review update transaction")
	}

	return reviewToOutput(updated), nil
}

// DeleteReview removes a review. Only the original reviewer may do this;
// there is no staff exemption for reviews.
func (srv *reviewService) DeleteReview(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting review", slog.Any("reviewID", id), slog.Any("actorID", actor.UserID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		reviewRepo := repoFactory.ReviewRepo()
		profileRepo := repoFactory.ProfileRepo()

		review, findErr := reviewRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrReviewNotFound) {
				return errors.Wrap(domainerrors.ErrReviewNotFound, "review lookup failed")
			}

			return errors.Wrap(findErr, "failed to find review by id")
		}

		reviewerProfile, profileErr := profileRepo.FindByID(ctx, review.ReviewerProfileID)
		if profileErr != nil {
			return errors.Wrap(profileErr, "failed to load reviewer profile")
		}

		if !policy.CanMutateReview(actor, reviewerProfile.UserID) {
			return errors.Wrap(domainerrors.ErrForbidden, "only the reviewer may delete this review")
		}

		if deleteErr := reviewRepo.Delete(ctx, id); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete review")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete review", slog.Any("reviewID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute review deletion transaction")
	}

	return nil
}

// validateReviewPatchFields rejects patches naming anything besides the two
// mutable fields. Reviewer and business references are fixed at creation.
func validateReviewPatchFields(rawFields map[string]any) error {
	for field := range rawFields {
		switch field {
		case "rating", "description":
		default:
			return domainerrors.ErrImmutableReviewField.WithDetails(fmt.Sprintf("field %q cannot be changed", field))
		}
	}

	return nil
}

// validateReviewOrdering rejects review orderings outside the supported set.
func validateReviewOrdering(ordering string) error {
	switch ordering {
	case "", "updated_at", "-updated_at", "rating", "-rating":
		return nil
	default:
		return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unsupported ordering %q", ordering))
	}
}

func reviewToOutput(review *entity.Review) *usecase.ReviewOutput {
	return &usecase.ReviewOutput{
		ID:           review.ID,
		BusinessUser: review.BusinessProfileID,
		Reviewer:     review.ReviewerProfileID,
		Rating:       review.Rating,
		Description:  review.Description,
		CreatedAt:    review.CreatedAt,
		UpdatedAt:    review.UpdatedAt,
	}
}
