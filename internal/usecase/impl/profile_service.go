package impl

import (
	"context"
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

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager   repository.TransactionManager
	profileRepo repository.ProfileRepository
	logger      *slog.Logger
}

// ProfileServiceParams holds dependencies for ProfileService, injected by Fx.
type ProfileServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProfileRepo repository.ProfileRepository
	Logger      *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(params ProfileServiceParams) usecase.ProfileUsecase {
	return &profileService{
		txManager:   params.TxManager,
		profileRepo: params.ProfileRepo,
		logger:      params.Logger,
	}
}

func (srv *profileService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns a single profile by its ID.
func (srv *profileService) GetProfile(ctx context.Context, id uuid.UUID) (*usecase.ProfileOutput, error) {
	profile, err := srv.profileRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProfileNotFound, "profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to find profile by id")
	}

	return profileToOutput(profile), nil
}

// UpdateProfile applies a partial patch to a profile. Nil input fields are
// left untouched; an email change also updates the owning account.
func (srv *profileService) UpdateProfile(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.ProfileOutput, error) {
	srv.log(ctx).Debug("Updating profile", slog.Any("profileID", id), slog.Any("actorID", actor.UserID))

	var updated *entity.Profile
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		profileRepo := repoFactory.ProfileRepo()
		userRepo := repoFactory.UserRepo()

		profile, findErr := profileRepo.FindByID(ctx, id)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrProfileNotFound) {
				return errors.Wrap(domainerrors.ErrProfileNotFound, "profile lookup failed")
			}

			return errors.Wrap(findErr, "failed to find profile by id")
		}

		if !policy.CanMutateProfile(actor, profile.UserID) {
			return errors.Wrap(domainerrors.ErrForbidden, "only the owner may edit this profile")
		}

		applyProfilePatch(profile, input)

		if input.Email != nil {
			if emailErr := userRepo.UpdateEmail(ctx, profile.UserID, *input.Email); emailErr != nil {
				if errors.Is(emailErr, repository.ErrUserAlreadyExists) {
					return errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered")
				}

				return errors.Wrap(emailErr, "failed to update account email")
			}
		}

		if updateErr := profileRepo.Update(ctx, profile); updateErr != nil {
			return errors.Wrap(updateErr, "failed to update profile")
		}

		updated = profile

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to update profile", slog.Any("profileID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute profile update transaction")
	}

	return profileToOutput(updated), nil
}

// ListBusinessProfiles returns all business profiles.
func (srv *profileService) ListBusinessProfiles(ctx context.Context) ([]*usecase.ProfileOutput, error) {
	return srv.listByType(ctx, entity.RoleBusiness)
}

// ListCustomerProfiles returns all customer profiles.
func (srv *profileService) ListCustomerProfiles(ctx context.Context) ([]*usecase.ProfileOutput, error) {
	return srv.listByType(ctx, entity.RoleCustomer)
}

func (srv *profileService) listByType(ctx context.Context, role entity.Role) ([]*usecase.ProfileOutput, error) {
	profiles, err := srv.profileRepo.ListByType(ctx, role)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s profiles", role)
	}

	outputs := make([]*usecase.ProfileOutput, 0, len(profiles))
	for _, p := range profiles {
		outputs = append(outputs, profileToOutput(p))
	}

	return outputs, nil
}

func applyProfilePatch(profile *entity.Profile, input *usecase.UpdateProfileInput) {
	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.File != nil {
		profile.File = *input.File
	}
	if input.Location != nil {
		profile.Location = *input.Location
	}
	if input.Tel != nil {
		profile.Tel = *input.Tel
	}
	if input.Description != nil {
		profile.Description = *input.Description
	}
	if input.WorkingHours != nil {
		profile.WorkingHours = *input.WorkingHours
	}
	if input.Email != nil {
		profile.Email = *input.Email
	}
}

func profileToOutput(profile *entity.Profile) *usecase.ProfileOutput {
	return &usecase.ProfileOutput{
		ID:           profile.ID,
		UserID:       profile.UserID,
		Username:     profile.Username,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		File:         profile.File,
		Location:     profile.Location,
		Tel:          profile.Tel,
		Description:  profile.Description,
		WorkingHours: profile.WorkingHours,
		Type:         profile.Type.String(),
		Email:        profile.Email,
		UploadedAt:   profile.UploadedAt,
	}
}
