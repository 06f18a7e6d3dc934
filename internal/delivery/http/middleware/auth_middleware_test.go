package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"coderr/config"
	"coderr/internal/domain/entity"
	"coderr/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "test_access_secret_key_very_long_for_testing"
	cfg.SecretKey.Refresh = "test_refresh_secret_key_very_long_for_testing"

	return cfg
}

func newAuthTestContext(t *testing.T, authorization string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_Authenticate_SetsActor(t *testing.T) {
	cfg := newAuthTestConfig()
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userID := uuid.New()
	accessToken, _, err := tokenSvc.GenerateTokens(userID, entity.RoleBusiness, true)
	require.NoError(t, err)

	c, rec := newAuthTestContext(t, "Bearer "+accessToken)
	m := NewAuthMiddleware(tokenSvc, cfg)

	var called bool
	err = m.Authenticate(func(c echo.Context) error {
		called = true

		return nil
	})(c)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)

	actor, ok := GetActor(c)
	require.True(t, ok)
	assert.Equal(t, userID, actor.UserID)
	assert.Equal(t, entity.RoleBusiness, actor.Role)
	assert.True(t, actor.IsStaff)
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	cfg := newAuthTestConfig()
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	c, rec := newAuthTestContext(t, "")
	m := NewAuthMiddleware(tokenSvc, cfg)

	var called bool
	err = m.Authenticate(func(c echo.Context) error {
		called = true

		return nil
	})(c)
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_Authenticate_RejectsRefreshToken(t *testing.T) {
	cfg := newAuthTestConfig()
	// Same secret for both tokens so only the type claim can reject it
	cfg.SecretKey.Refresh = cfg.SecretKey.Access
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	_, refreshToken, err := tokenSvc.GenerateTokens(uuid.New(), entity.RoleCustomer, false)
	require.NoError(t, err)

	c, rec := newAuthTestContext(t, "Bearer "+refreshToken)
	m := NewAuthMiddleware(tokenSvc, cfg)

	var called bool
	err = m.Authenticate(func(c echo.Context) error {
		called = true

		return nil
	})(c)
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	cfg := newAuthTestConfig()
	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	m := NewAuthMiddleware(tokenSvc, cfg)

	accessToken, _, err := tokenSvc.GenerateTokens(uuid.New(), entity.RoleCustomer, false)
	require.NoError(t, err)

	c, rec := newAuthTestContext(t, "Bearer "+accessToken)

	var called bool
	chained := m.Authenticate(m.RequireRole(entity.RoleBusiness)(func(c echo.Context) error {
		called = true

		return nil
	}))

	err = chained(c)
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
