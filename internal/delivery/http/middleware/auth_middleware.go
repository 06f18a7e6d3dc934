package middleware

import (
	"net/http"
	"strings"

	"coderr/config"
	"coderr/internal/domain/entity"
	"coderr/internal/domain/policy"
	"coderr/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// actorKey is the echo.Context key holding the authenticated policy.Actor.
const actorKey = "actor"

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	cfg      *config.Config
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, cfg: cfg}
}

// Authenticate is the core middleware function that validates the JWT access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, errResp := m.resolveActor(c)
		if errResp != nil {
			return errResp
		}

		SetActor(c, actor)

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the account role.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := GetActor(c)
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: role information missing"})
			}

			if actor.Role != requiredRole {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "Permission denied: require '" + requiredRole.String() + "' role"})
			}

			return next(c)
		}
	}
}

// resolveActor validates the bearer token and reconstructs the actor from
// its claims. Failures are returned as rendered 401 responses.
func (m *AuthMiddleware) resolveActor(c echo.Context) (policy.Actor, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return policy.Actor{}, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is missing"})
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return policy.Actor{}, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format, must be Bearer token"})
	}

	token, err := m.tokenSvc.ValidateToken(tokenString, m.cfg.SecretKey.Access)
	if err != nil || !token.Valid {
		return policy.Actor{}, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid or expired token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return policy.Actor{}, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Failed to parse token claims"})
	}

	// Refresh tokens carry no authorization claims and must not reach the API
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return policy.Actor{}, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Access token required"})
	}

	// Extract user ID
	userIDStr, ok := claims["sub"].(string)
	if !ok {
		return policy.Actor{}, c.JSON(http.StatusUnauthorized, map[string]string{"error": "User ID missing from token"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return policy.Actor{}, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid user ID format in token"})
	}

	// Extract role and staff flag
	roleStr, _ := claims["role"].(string)
	role := entity.Role(roleStr)
	if !role.IsValid() {
		return policy.Actor{}, c.JSON(http.StatusUnauthorized, map[string]string{"error": "Role missing from token"})
	}
	isStaff, _ := claims["isStaff"].(bool)

	return policy.Actor{
		UserID:  userID,
		Role:    role,
		IsStaff: isStaff,
	}, nil
}

// SetActor stores the authenticated actor on the echo context.
func SetActor(c echo.Context, actor policy.Actor) {
	c.Set(actorKey, actor)
}

// GetActor returns the authenticated actor set by Authenticate.
func GetActor(c echo.Context) (policy.Actor, bool) {
	actor, ok := c.Get(actorKey).(policy.Actor)

	return actor, ok
}
