package postgres

import (
	"context"
	"strings"

	"coderr/internal/domain/entity"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/repository"
	"coderr/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Aggregate subqueries over the detail set, used for filtering and ordering.
// Both are computed fresh per query; nothing is denormalized onto offers.
const (
	minPriceSubquery    = "(SELECT MIN(price) FROM offer_details WHERE offer_details.offer_id = offers.id)"
	minDeliverySubquery = "(SELECT MIN(delivery_time_in_days) FROM offer_details WHERE offer_details.offer_id = offers.id)"
)

// offerRepository implements the repository.OfferRepository interface.
type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository is the constructor for offerRepository.
func NewOfferRepository(db *gorm.DB) repository.OfferRepository {
	return &offerRepository{
		db: db,
	}
}

// Create persists a new offer together with its detail set.
func (repo *offerRepository) Create(ctx context.Context, offer *entity.Offer) error {
	offerM := fromOfferDomain(offer)

	if err := repo.db.WithContext(ctx).Create(offerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateOfferTier
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid profile reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create offer")
	}

	// Propagate generated IDs and timestamps back to the entity.
	offer.ID = offerM.ID
	offer.CreatedAt = offerM.CreatedAt
	offer.UpdatedAt = offerM.UpdatedAt
	for i, detailM := range offerM.Details {
		offer.Details[i].ID = detailM.ID
		offer.Details[i].OfferID = offerM.ID
		offer.Details[i].CreatedAt = detailM.CreatedAt
		offer.Details[i].UpdatedAt = detailM.UpdatedAt
	}

	return nil
}

// FindByID retrieves an offer with its details preloaded.
func (repo *offerRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Offer, error) {
	var offerM model.OfferModel

	if err := repo.db.WithContext(ctx).
		Preload("Details").
		Where("id = ?", id).
		First(&offerM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer by id")
	}

	return toOfferDomain(&offerM), nil
}

// Update persists changes to an offer and its details.
func (repo *offerRepository) Update(ctx context.Context, offer *entity.Offer) error {
	offerM := fromOfferDomain(offer)

	if err := repo.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(offerM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateOfferTier
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update offer")
	}

	offer.UpdatedAt = offerM.UpdatedAt

	return nil
}

// Delete removes an offer; the database cascades to its details.
func (repo *offerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.OfferModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete offer")
	}

	if result.RowsAffected == 0 {
		return repository.ErrOfferNotFound
	}

	return nil
}

// List retrieves a filtered, ordered page of offers along with the total
// match count. The filter's page values are assumed normalized by the caller.
func (repo *offerRepository) List(ctx context.Context, filter repository.OfferFilter) ([]*entity.Offer, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.OfferModel{})

	if filter.CreatorID != nil {
		query = query.Where("profile_id = ?", *filter.CreatorID)
	}
	if filter.MinPrice != nil {
		query = query.Where(minPriceSubquery+" >= ?", *filter.MinPrice)
	}
	if filter.MaxDeliveryTime != nil {
		query = query.Where(minDeliverySubquery+" <= ?", *filter.MaxDeliveryTime)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}

	var count int64
	if err := query.Session(&gorm.Session{}).Count(&count).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count filtered offers")
	}

	var offerModels []*model.OfferModel
	if err := query.
		Order(orderingClause(filter.Ordering)).
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Preload("Details").
		Find(&offerModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list offers")
	}

	offers := make([]*entity.Offer, 0, len(offerModels))
	for _, offerM := range offerModels {
		offers = append(offers, toOfferDomain(offerM))
	}

	return offers, count, nil
}

// FindDetailByID retrieves a single offer detail.
func (repo *offerRepository) FindDetailByID(ctx context.Context, id uuid.UUID) (*entity.OfferDetail, error) {
	var detailM model.OfferDetailModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&detailM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOfferDetailNotFound
		}

		return nil, errors.Wrap(err, "failed to find offer detail by id")
	}

	return toOfferDetailDomain(&detailM), nil
}

// Count returns the total number of offers.
func (repo *offerRepository) Count(ctx context.Context) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.OfferModel{}).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count offers")
	}

	return count, nil
}

// orderingClause maps a validated ordering token to a SQL order expression.
// The token set is whitelisted in the usecase layer before it reaches here.
func orderingClause(ordering string) string {
	direction := "ASC"
	field := ordering
	if strings.HasPrefix(ordering, "-") {
		direction = "DESC"
		field = ordering[1:]
	}

	switch field {
	case "min_price":
		return minPriceSubquery + " " + direction
	case "updated_at":
		return "updated_at " + direction
	default:
		return "updated_at DESC"
	}
}

// --- Mapper Functions ---

// toOfferDomain converts a GORM OfferModel to a domain Offer entity.
func toOfferDomain(data *model.OfferModel) *entity.Offer {
	if data == nil {
		return nil
	}

	details := make([]*entity.OfferDetail, 0, len(data.Details))
	for _, detailM := range data.Details {
		details = append(details, toOfferDetailDomain(detailM))
	}

	return &entity.Offer{
		ID:          data.ID,
		ProfileID:   data.ProfileID,
		Title:       data.Title,
		Image:       data.Image,
		Description: data.Description,
		Details:     details,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// fromOfferDomain converts a domain Offer entity to a GORM OfferModel.
func fromOfferDomain(data *entity.Offer) *model.OfferModel {
	if data == nil {
		return nil
	}

	details := make([]*model.OfferDetailModel, 0, len(data.Details))
	for _, detail := range data.Details {
		details = append(details, &model.OfferDetailModel{
			ID:                 detail.ID,
			OfferID:            detail.OfferID,
			Title:              detail.Title,
			Revisions:          detail.Revisions,
			DeliveryTimeInDays: detail.DeliveryTimeInDays,
			Price:              detail.Price,
			Features:           datatypes.NewJSONSlice(detail.Features),
			OfferType:          detail.OfferType.String(),
			CreatedAt:          detail.CreatedAt,
			UpdatedAt:          detail.UpdatedAt,
		})
	}

	// Timestamps must survive the round trip: Update saves the full model,
	// so a zero CreatedAt here would overwrite the stored creation time.
	return &model.OfferModel{
		ID:          data.ID,
		ProfileID:   data.ProfileID,
		Title:       data.Title,
		Image:       data.Image,
		Description: data.Description,
		Details:     details,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

// toOfferDetailDomain converts a GORM OfferDetailModel to a domain OfferDetail entity.
func toOfferDetailDomain(data *model.OfferDetailModel) *entity.OfferDetail {
	if data == nil {
		return nil
	}

	return &entity.OfferDetail{
		ID:                 data.ID,
		OfferID:            data.OfferID,
		Title:              data.Title,
		Revisions:          data.Revisions,
		DeliveryTimeInDays: data.DeliveryTimeInDays,
		Price:              data.Price,
		Features:           data.Features,
		OfferType:          entity.OfferType(data.OfferType),
		CreatedAt:          data.CreatedAt,
		UpdatedAt:          data.UpdatedAt,
	}
}
