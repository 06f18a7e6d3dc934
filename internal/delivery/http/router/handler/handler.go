// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strconv"

	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/response"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}

// actorFrom returns the authenticated actor set by the auth middleware.
func actorFrom(c echo.Context) (policy.Actor, error) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		return policy.Actor{}, domainerrors.ErrForbidden.WithDetails("missing authentication context")
	}

	return actor, nil
}

// parseUUIDParam parses a path parameter as a UUID.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a valid UUID")
	}

	return id, nil
}

// parseIntQuery parses an optional integer query parameter. A present but
// non-numeric value is a validation error, not a silently ignored filter.
func parseIntQuery(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be an integer")
	}

	return &value, nil
}

// parseFloatQuery parses an optional float query parameter.
func parseFloatQuery(c echo.Context, name string) (*float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a number")
	}

	return &value, nil
}

// parseUUIDQuery parses an optional UUID query parameter.
func parseUUIDQuery(c echo.Context, name string) (*uuid.UUID, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails(name + " must be a valid UUID")
	}

	return &id, nil
}
