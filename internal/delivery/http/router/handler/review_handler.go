package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"coderr/internal/delivery/http/response"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ReviewHandler holds dependencies for review-related handlers.
type ReviewHandler struct {
	uc     usecase.ReviewUsecase
	logger *slog.Logger
}

// NewReviewHandler is the constructor for ReviewHandler, injected by Fx.
func NewReviewHandler(uc usecase.ReviewUsecase, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateReview handles the review creation request.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var input *usecase.CreateReviewInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateReview(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Review created successfully")
}

// ListReviews handles the filtered review listing request.
func (h *ReviewHandler) ListReviews(c echo.Context) error {
	businessUserID, err := parseUUIDQuery(c, "business_user_id")
	if err != nil {
		return err
	}

	reviewerID, err := parseUUIDQuery(c, "reviewer_id")
	if err != nil {
		return err
	}

	input := &usecase.ListReviewsInput{
		BusinessUserID: businessUserID,
		ReviewerID:     reviewerID,
		Ordering:       c.QueryParam("ordering"),
	}

	output, err := h.uc.ListReviews(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Reviews retrieved successfully")
}

// GetReview handles the single review read request.
func (h *ReviewHandler) GetReview(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetReview(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Review retrieved successfully")
}

// UpdateReview handles the review patch request. The raw body keys are kept
// alongside the decoded patch so the usecase can reject writes to fields
// other than rating and description.
func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	var rawFields map[string]any
	if err := json.Unmarshal(body, &rawFields); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}

	input := &usecase.UpdateReviewInput{}
	if err := json.Unmarshal(body, input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	input.RawFields = rawFields

	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateReview(c.Request().Context(), actor, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Review updated successfully")
}

// DeleteReview handles the review deletion request.
func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteReview(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}
