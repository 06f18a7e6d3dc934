package handler

import (
	"log/slog"
	"net/http"

	"coderr/internal/delivery/http/response"
	"coderr/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OfferHandler holds dependencies for offer-related handlers.
type OfferHandler struct {
	uc     usecase.OfferUsecase
	logger *slog.Logger
}

// NewOfferHandler is the constructor for OfferHandler, injected by Fx.
func NewOfferHandler(uc usecase.OfferUsecase, logger *slog.Logger) *OfferHandler {
	return &OfferHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateOffer handles the offer creation request.
func (h *OfferHandler) CreateOffer(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	var input *usecase.CreateOfferInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.CreateOffer(c.Request().Context(), actor, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output, "Offer created successfully")
}

// GetOffer handles the single offer read request.
func (h *OfferHandler) GetOffer(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetOffer(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Offer retrieved successfully")
}

// ListOffers handles the filtered, ordered, paginated offer listing.
func (h *OfferHandler) ListOffers(c echo.Context) error {
	input, err := h.parseListInput(c)
	if err != nil {
		return err
	}

	output, err := h.uc.ListOffers(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Offers retrieved successfully")
}

// UpdateOffer handles the partial offer update request.
func (h *OfferHandler) UpdateOffer(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.UpdateOfferInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid offer input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.UpdateOffer(c.Request().Context(), actor, id, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Offer updated successfully")
}

// DeleteOffer handles the offer deletion request.
func (h *OfferHandler) DeleteOffer(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteOffer(c.Request().Context(), actor, id); err != nil {
		return errors.WithStack(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetOfferDetail handles the single pricing tier read request.
func (h *OfferHandler) GetOfferDetail(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	output, err := h.uc.GetOfferDetail(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Offer detail retrieved successfully")
}

// GenerateOfferQR renders the offer share link as a PNG QR code.
func (h *OfferHandler) GenerateOfferQR(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.GenerateOfferQR(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// parseListInput collects the offer list filters from query parameters.
func (h *OfferHandler) parseListInput(c echo.Context) (*usecase.ListOffersInput, error) {
	creatorID, err := parseUUIDQuery(c, "creator_id")
	if err != nil {
		return nil, err
	}

	minPrice, err := parseFloatQuery(c, "min_price")
	if err != nil {
		return nil, err
	}

	maxDeliveryTime, err := parseIntQuery(c, "max_delivery_time")
	if err != nil {
		return nil, err
	}

	page, err := parseIntQuery(c, "page")
	if err != nil {
		return nil, err
	}

	pageSize, err := parseIntQuery(c, "page_size")
	if err != nil {
		return nil, err
	}

	input := &usecase.ListOffersInput{
		CreatorID:       creatorID,
		MinPrice:        minPrice,
		MaxDeliveryTime: maxDeliveryTime,
		Search:          c.QueryParam("search"),
		Ordering:        c.QueryParam("ordering"),
	}
	if page != nil {
		input.Page = *page
	}
	if pageSize != nil {
		input.PageSize = *pageSize
	}

	return input, nil
}
