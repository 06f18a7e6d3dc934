package usecase

import (
	"context"
	"time"

	"coderr/internal/domain/policy"

	"github.com/google/uuid"
)

// ProfileOutput is the profile representation returned by the API.
// Business profiles and customer profiles share the same shape; list
// endpoints simply filter by type.
type ProfileOutput struct {
	ID           uuid.UUID `json:"id"`
	UserID       uuid.UUID `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         string    `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// UpdateProfileInput carries a partial profile patch. Nil fields are
// left untouched.
type UpdateProfileInput struct {
	FirstName    *string `json:"first_name" validate:"omitempty,max=150"`
	LastName     *string `json:"last_name" validate:"omitempty,max=150"`
	File         *string `json:"file"`
	Location     *string `json:"location" validate:"omitempty,max=255"`
	Tel          *string `json:"tel" validate:"omitempty,max=50"`
	Description  *string `json:"description"`
	WorkingHours *string `json:"working_hours" validate:"omitempty,max=255"`
	Email        *string `json:"email" validate:"omitempty,email"`
}

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile returns a single profile by its ID. Any authenticated
	// user may read any profile.
	GetProfile(ctx context.Context, id uuid.UUID) (*ProfileOutput, error)

	// UpdateProfile applies a partial patch to a profile. Only the owner
	// or a staff account may do this.
	UpdateProfile(ctx context.Context, actor policy.Actor, id uuid.UUID, input *UpdateProfileInput) (*ProfileOutput, error)

	// ListBusinessProfiles returns all business profiles.
	ListBusinessProfiles(ctx context.Context) ([]*ProfileOutput, error)

	// ListCustomerProfiles returns all customer profiles.
	ListCustomerProfiles(ctx context.Context) ([]*ProfileOutput, error)
}
