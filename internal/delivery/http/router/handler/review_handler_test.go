package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/validator"
	"coderr/internal/domain/entity"
	"coderr/internal/domain/policy"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubReviewUsecase records the inputs handlers pass through.
type stubReviewUsecase struct {
	updateInput *usecase.UpdateReviewInput
	updateID    uuid.UUID
	updateActor policy.Actor
}

func (s *stubReviewUsecase) CreateReview(ctx context.Context, actor policy.Actor, input *usecase.CreateReviewInput) (*usecase.ReviewOutput, error) {
	return &usecase.ReviewOutput{}, nil
}

func (s *stubReviewUsecase) ListReviews(ctx context.Context, input *usecase.ListReviewsInput) ([]*usecase.ReviewOutput, error) {
	return nil, nil
}

func (s *stubReviewUsecase) GetReview(ctx context.Context, id uuid.UUID) (*usecase.ReviewOutput, error) {
	return &usecase.ReviewOutput{ID: id}, nil
}

func (s *stubReviewUsecase) UpdateReview(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.UpdateReviewInput) (*usecase.ReviewOutput, error) {
	s.updateActor = actor
	s.updateID = id
	s.updateInput = input

	return &usecase.ReviewOutput{ID: id}, nil
}

func (s *stubReviewUsecase) DeleteReview(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	return nil
}

func newReviewTestContext(t *testing.T, method, body string) (echo.Context, *httptest.ResponseRecorder, *stubReviewUsecase, *ReviewHandler) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(method, "/api/reviews/ignored", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stub := &stubReviewUsecase{}
	h := NewReviewHandler(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return c, rec, stub, h
}

func TestReviewHandler_UpdateReview_CarriesRawBodyKeys(t *testing.T) {
	c, rec, stub, h := newReviewTestContext(t, http.MethodPatch, `{"rating": 4, "description": "updated"}`)

	reviewID := uuid.New()
	c.SetParamNames("id")
	c.SetParamValues(reviewID.String())

	actor := policy.Actor{UserID: uuid.New(), Role: entity.RoleCustomer}
	middleware.SetActor(c, actor)

	err := h.UpdateReview(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, stub.updateInput)
	assert.Equal(t, reviewID, stub.updateID)
	assert.Equal(t, actor, stub.updateActor)

	// The handler must surface exactly the keys the client sent so the
	// usecase can reject immutable-field writes
	assert.Contains(t, stub.updateInput.RawFields, "rating")
	assert.Contains(t, stub.updateInput.RawFields, "description")
	assert.NotContains(t, stub.updateInput.RawFields, "business_user")

	require.NotNil(t, stub.updateInput.Rating)
	assert.Equal(t, 4, *stub.updateInput.Rating)
}

func TestReviewHandler_UpdateReview_InvalidRating(t *testing.T) {
	c, _, _, h := newReviewTestContext(t, http.MethodPatch, `{"rating": 9}`)

	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())
	middleware.SetActor(c, policy.Actor{UserID: uuid.New(), Role: entity.RoleCustomer})

	err := h.UpdateReview(c)
	assert.Error(t, err)
}

func TestReviewHandler_UpdateReview_InvalidID(t *testing.T) {
	c, _, _, h := newReviewTestContext(t, http.MethodPatch, `{"rating": 4}`)

	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	middleware.SetActor(c, policy.Actor{UserID: uuid.New(), Role: entity.RoleCustomer})

	err := h.UpdateReview(c)
	assert.Error(t, err)
}
