package impl

import (
	"context"
	"fmt"
	"log/slog"

	"coderr/config"
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

const (
	fallbackPageSize = 6
	fallbackPageCap  = 10000
)

// offerService implements the OfferUsecase interface.
type offerService struct {
	txManager       repository.TransactionManager
	offerRepo       repository.OfferRepository
	profileRepo     repository.ProfileRepository
	qrService       service.QRCodeService
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// OfferServiceParams holds dependencies for OfferService, injected by Fx.
type OfferServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	OfferRepo   repository.OfferRepository
	ProfileRepo repository.ProfileRepository
	QRService   service.QRCodeService
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOfferService is the constructor for offerService.
func NewOfferService(params OfferServiceParams) usecase.OfferUsecase {
	defaultPageSize := fallbackPageSize
	maxPageSize := fallbackPageCap
	if params.Config != nil && params.Config.Pagination != nil {
		if params.Config.Pagination.DefaultPageSize > 0 {
			defaultPageSize = params.Config.Pagination.DefaultPageSize
		}
		if params.Config.Pagination.MaxPageSize > 0 {
			maxPageSize = params.Config.Pagination.MaxPageSize
		}
	}

	return &offerService{
		txManager:       params.TxManager,
		offerRepo:       params.OfferRepo,
		profileRepo:     params.ProfileRepo,
		qrService:       params.QRService,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
		logger:          params.Logger,
	}
}

func (srv *offerService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOffer creates an offer with its pricing tiers. The tier set must
// contain only valid, non-repeating offer types and is fixed afterwards.
func (srv *offerService) CreateOffer(ctx context.Context, actor policy.Actor, input *usecase.CreateOfferInput) (*usecase.OfferOutput, error) {
	srv.log(ctx).Info("Creating offer", slog.Any("actorID", actor.UserID), slog.String("title", input.Title))

	if !policy.CanWriteOffer(actor) {
		return nil, errors.Wrap(domainerrors.ErrForbidden, "only business accounts may create offers")
	}

	if err := validateTierSet(input.Details); err != nil {
		return nil, err
	}

	profile, err := srv.profileRepo.FindByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load creator profile")
	}

	newOffer := &entity.Offer{
		ProfileID:   profile.ID,
		Title:       input.Title,
		Image:       input.Image,
		Description: input.Description,
		Details:     make([]*entity.OfferDetail, 0, len(input.Details)),
	}
	for _, d := range input.Details {
		newOffer.Details = append(newOffer.Details, &entity.OfferDetail{
			Title:              d.Title,
			Revisions:          d.Revisions,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Price:              d.Price,
			Features:           d.Features,
			OfferType:          entity.OfferType(d.OfferType),
		})
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if createErr := repoFactory.OfferRepo().Create(ctx, newOffer); createErr != nil {
			if errors.Is(createErr, repository.ErrDuplicateOfferTier) {
				return errors.Wrap(domainerrors.ErrDuplicateOfferTier, "tier set collides")
			}

			return errors.Wrap(createErr, "failed to create offer")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute offer creation transaction", slog.Any("actorID", actor.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute offer creation transaction")
	}

	srv.log(ctx).Debug("Offer created", slog.Any("offerID", newOffer.ID))

	return offerToOutput(newOffer, profile), nil
}

// GetOffer returns a single offer with its details and read-time aggregates.
func (srv *offerService) GetOffer(ctx context.Context, id uuid.UUID) (*usecase.OfferOutput, error) {
	offer, err := srv.offerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOfferNotFound, "offer lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find offer by id")
	}

	profile, err := srv.profileRepo.FindByID(ctx, offer.ProfileID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load offer creator profile")
	}

	return offerToOutput(offer, profile), nil
}

// ListOffers returns a filtered, ordered, paginated offer page.
func (srv *offerService) ListOffers(ctx context.Context, input *usecase.ListOffersInput) (*usecase.ListOffersOutput, error) {
	if err := validateOrdering(input.Ordering); err != nil {
		return nil, err
	}

	if input.Page < 1 {
		input.Page = 1
	}
	if input.PageSize <= 0 {
		input.PageSize = srv.defaultPageSize
	}
	if input.PageSize > srv.maxPageSize {
		input.PageSize = srv.maxPageSize
	}

	offers, total, err := srv.offerRepo.List(ctx, input.Filter())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list offers")
	}

	// Resolve creator summaries once per distinct profile on the page.
	profiles := make(map[uuid.UUID]*entity.Profile, len(offers))
	results := make([]*usecase.OfferOutput, 0, len(offers))
	for _, offer := range offers {
		profile, ok := profiles[offer.ProfileID]
		if !ok {
			profile, err = srv.profileRepo.FindByID(ctx, offer.ProfileID)
			if err != nil {
				return nil, errors.Wrap(err, "failed to load offer creator profile")
			}
			profiles[offer.ProfileID] = profile
		}

		results = append(results, offerToOutput(offer, profile))
	}

	return &usecase.ListOffersOutput{
		Count:    total,
		Page:     input.Page,
		PageSize: input.PageSize,
		Results:  results,
	}, nil
}

// UpdateOffer applies a partial patch to an offer. Detail patches are matched
// to existing tiers by offer type; naming a tier the offer does not carry
// fails the whole update, keeping the tier set fixed.
func (srv *offerService) UpdateOffer(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.UpdateOfferInput) (*usecase.OfferOutput, error) {
	srv.log(ctx).Debug("Updating offer", slog.Any("offerID", id), slog.Any("actorID", actor.UserID))

	var updated *entity.Offer
	var creator *entity.Profile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()
		profileRepo := repoFactory.ProfileRepo()

		offer, findErr := offerRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrOfferNotFound) {
				return errors.Wrap(domainerrors.ErrOfferNotFound, "offer lookup failed")
			}

			return errors.Wrap(findErr, "failed to find offer by id")
		}

		profile, profileErr := profileRepo.FindByID(ctx, offer.ProfileID)
		if profileErr != nil {
			return errors.Wrap(profileErr, "failed to load offer creator profile")
		}

		if !policy.CanMutateOffer(actor, profile.UserID) {
			return errors.Wrap(domainerrors.ErrForbidden, "only the owner may edit this offer")
		}

		if patchErr := applyOfferPatch(offer, input); patchErr != nil {
			return patchErr
		}

		if updateErr := offerRepo.Update(ctx, offer); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update offer")
		}

		updated = offer
		creator = profile

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update offer", slog.Any("offerID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute offer update transaction")
	}

	return offerToOutput(updated, creator), nil
}

// DeleteOffer removes an offer together with its details.
func (srv *offerService) DeleteOffer(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting offer", slog.Any("offerID", id), slog.Any("actorID", actor.UserID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		offerRepo := repoFactory.OfferRepo()
		profileRepo := repoFactory.ProfileRepo()

		offer, findErr := offerRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrOfferNotFound) {
				return errors.Wrap(domainerrors.ErrOfferNotFound, "offer lookup failed")
			}

			return errors.Wrap(findErr, "failed to find offer by id")
		}

		profile, profileErr := profileRepo.FindByID(ctx, offer.ProfileID)
		if profileErr != nil {
			return errors.Wrap(profileErr, "failed to load offer creator profile")
		}

		if !policy.CanMutateOffer(actor, profile.UserID) {
			return errors.Wrap(domainerrors.ErrForbidden, "only the owner may delete this offer")
		}

		if deleteErr := offerRepo.Delete(ctx, id); deleteErr != nil {
			return errors.Wrap(deleteErr, "failed to delete offer")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete offer", slog.Any("offerID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute offer deletion transaction")
	}

	return nil
}

// GetOfferDetail returns a single pricing tier by its own ID.
func (srv *offerService) GetOfferDetail(ctx context.Context, id uuid.UUID) (*usecase.OfferDetailOutput, error) {
	detail, err := srv.offerRepo.FindDetailByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOfferDetailNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOfferDetailNotFound, "offer detail lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find offer detail by id")
	}

	return detailToOutput(detail), nil
}

// GenerateOfferQR renders a QR code PNG linking to the public offer page.
func (srv *offerService) GenerateOfferQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	if _, err := srv.offerRepo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return nil, errors.Wrap(domainerrors.ErrOfferNotFound, "offer lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find offer by id")
	}

	png, err := srv.qrService.GenerateOfferQR(id)
	if err != nil {
		srv.log(ctx).Error("Failed to render offer QR code", slog.Any("offerID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render offer QR code")
	}

	return png, nil
}

// validateTierSet checks that every tier in a creation payload is a known
// offer type and that no type repeats.
func validateTierSet(details []*usecase.CreateOfferDetailInput) error {
	seen := make(map[entity.OfferType]bool, len(details))
	for _, d := range details {
		tier := entity.OfferType(d.OfferType)
		if !tier.IsValid() {
			return domainerrors.ErrInvalidOfferTier.WithDetails(fmt.Sprintf("unknown offer type %q", d.OfferType))
		}
		if seen[tier] {
			return domainerrors.ErrDuplicateOfferTier.WithDetails(fmt.Sprintf("offer type %q appears more than once", d.OfferType))
		}
		seen[tier] = true
	}

	return nil
}

// applyOfferPatch mutates the loaded offer in place according to the patch.
func applyOfferPatch(offer *entity.Offer, input *usecase.UpdateOfferInput) error {
	if input.Title != nil {
		offer.Title = *input.Title
	}
	if input.Image != nil {
		offer.Image = *input.Image
	}
	if input.Description != nil {
		offer.Description = *input.Description
	}

	seen := make(map[entity.OfferType]bool, len(input.Details))
	for _, patch := range input.Details {
		tier := entity.OfferType(patch.OfferType)
		if !tier.IsValid() {
			return domainerrors.ErrInvalidOfferTier.WithDetails(fmt.Sprintf("unknown offer type %q", patch.OfferType))
		}
		if seen[tier] {
			return domainerrors.ErrDuplicateOfferTier.WithDetails(fmt.Sprintf("offer type %q appears more than once", patch.OfferType))
		}
		seen[tier] = true

		detail := offer.DetailByType(tier)
		if detail == nil {
			return domainerrors.ErrTierNotOnOffer.WithDetails(fmt.Sprintf("offer has no %q tier", patch.OfferType))
		}

		if patch.Title != nil {
			detail.Title = *patch.Title
		}
		if patch.Revisions != nil {
			detail.Revisions = *patch.Revisions
		}
		if patch.DeliveryTimeInDays != nil {
			detail.DeliveryTimeInDays = *patch.DeliveryTimeInDays
		}
		if patch.Price != nil {
			detail.Price = *patch.Price
		}
		if patch.Features != nil {
			detail.Features = patch.Features
		}
	}

	return nil
}

// validateOrdering rejects list orderings outside the supported set.
func validateOrdering(ordering string) error {
	switch ordering {
	case "", "updated_at", "-updated_at", "min_price", "-min_price":
		return nil
	default:
		return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprintf("unsupported ordering %q", ordering))
	}
}

func detailToOutput(detail *entity.OfferDetail) *usecase.OfferDetailOutput {
	return &usecase.OfferDetailOutput{
		ID:                 detail.ID,
		Title:              detail.Title,
		Revisions:          detail.Revisions,
		DeliveryTimeInDays: detail.DeliveryTimeInDays,
		Price:              detail.Price,
		Features:           detail.Features,
		OfferType:          detail.OfferType.String(),
	}
}

func offerToOutput(offer *entity.Offer, creator *entity.Profile) *usecase.OfferOutput {
	details := make([]*usecase.OfferDetailOutput, 0, len(offer.Details))
	for _, d := range offer.Details {
		details = append(details, detailToOutput(d))
	}

	minPrice, _ := offer.MinPrice()
	minDelivery, _ := offer.MinDeliveryTime()

	output := &usecase.OfferOutput{
		ID:              offer.ID,
		UserID:          offer.ProfileID,
		Title:           offer.Title,
		Image:           offer.Image,
		Description:     offer.Description,
		CreatedAt:       offer.CreatedAt,
		UpdatedAt:       offer.UpdatedAt,
		Details:         details,
		MinPrice:        minPrice,
		MinDeliveryTime: minDelivery,
	}
	if creator != nil {
		output.UserDetails = &usecase.OfferUserDetails{
			FirstName: creator.FirstName,
			LastName:  creator.LastName,
			Username:  creator.Username,
		}
	}

	return output
}
