// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers
// and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"coderr/internal/domain/entity"

	"github.com/google/uuid"
)

// Sentinel errors for account persistence.
var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when persisting a user would violate
	// the unique username or email constraint.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository defines the standard operations for account persistence.
// The application layer depends on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by their login username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create persists a new user entity, including its profile, to the storage.
	Create(ctx context.Context, user *entity.User) error

	// UpdateEmail changes the contact email of an existing user.
	UpdateEmail(ctx context.Context, id uuid.UUID, email string) error
}
