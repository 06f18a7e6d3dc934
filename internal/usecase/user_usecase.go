// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// RegisterInput defines the data required to register a new account.
// The account type decides whether a customer or business profile is created.
type RegisterInput struct {
	Username         string `json:"username" validate:"required,max=150"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required"`
	RepeatedPassword string `json:"repeated_password" validate:"required"`
	Type             string `json:"type" validate:"required,oneof=customer business"`
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthOutput returns the token pair and account info after registration or login.
type AuthOutput struct {
	Token        string    `json:"token"` // Access token.
	RefreshToken string    `json:"refresh_token"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	UserID       uuid.UUID `json:"user_id"`
}

// UserUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (API handlers) depends on.
type UserUsecase interface {
	// Register creates a new user with its profile and returns a token pair.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login authenticates by username/password and returns a token pair.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)
}
