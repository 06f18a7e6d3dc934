package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProfileNotFound is returned when a profile is not found.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository defines the standard operations for profile persistence.
type ProfileRepository interface {
	// FindByID retrieves a single profile by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)

	// FindByUserID retrieves the profile owned by the given user.
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.Profile, error)

	// ListByType retrieves all profiles whose owning user has the given role.
	ListByType(ctx context.Context, role entity.Role) ([]*entity.Profile, error)

	// Update persists changes to an existing profile.
	Update(ctx context.Context, profile *entity.Profile) error

	// CountByType returns the number of profiles whose owning user has the
	// given role. Computed fresh per call.
	CountByType(ctx context.Context, role entity.Role) (int64, error)
}
