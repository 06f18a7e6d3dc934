package service

import (
	"time"

	"coderr/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenService abstracts issuing and validating the JWT pair used for
// stateless authentication.
type TokenService interface {
	// GenerateTokens creates an access and refresh token for a user.
	// The access token carries the account role and staff flag so the
	// policy layer can evaluate requests without a database round trip.
	GenerateTokens(userID uuid.UUID, role entity.Role, isStaff bool) (accessToken string, refreshToken string, err error)

	// ValidateToken checks a token string against the given secret.
	ValidateToken(tokenString string, secret string) (*jwt.Token, error)

	// GetRefreshTokenDuration returns the configured refresh token lifetime.
	GetRefreshTokenDuration() time.Duration
}
