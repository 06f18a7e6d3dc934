package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"coderr/internal/delivery/http/validator"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/policy"
	"coderr/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOfferUsecase records the list input handlers pass through.
type stubOfferUsecase struct {
	listInput *usecase.ListOffersInput
}

func (s *stubOfferUsecase) CreateOffer(ctx context.Context, actor policy.Actor, input *usecase.CreateOfferInput) (*usecase.OfferOutput, error) {
	return &usecase.OfferOutput{}, nil
}

func (s *stubOfferUsecase) GetOffer(ctx context.Context, id uuid.UUID) (*usecase.OfferOutput, error) {
	return &usecase.OfferOutput{ID: id}, nil
}

func (s *stubOfferUsecase) ListOffers(ctx context.Context, input *usecase.ListOffersInput) (*usecase.ListOffersOutput, error) {
	s.listInput = input

	return &usecase.ListOffersOutput{Results: []*usecase.OfferOutput{}}, nil
}

func (s *stubOfferUsecase) UpdateOffer(ctx context.Context, actor policy.Actor, id uuid.UUID, input *usecase.UpdateOfferInput) (*usecase.OfferOutput, error) {
	return &usecase.OfferOutput{ID: id}, nil
}

func (s *stubOfferUsecase) DeleteOffer(ctx context.Context, actor policy.Actor, id uuid.UUID) error {
	return nil
}

func (s *stubOfferUsecase) GetOfferDetail(ctx context.Context, id uuid.UUID) (*usecase.OfferDetailOutput, error) {
	return &usecase.OfferDetailOutput{ID: id}, nil
}

func (s *stubOfferUsecase) GenerateOfferQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	return []byte{0x89, 0x50, 0x4E, 0x47}, nil
}

func newOfferTestContext(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder, *stubOfferUsecase, *OfferHandler) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	stub := &stubOfferUsecase{}
	h := NewOfferHandler(stub, slog.New(slog.NewTextHandler(io.Discard, nil)))

	return c, rec, stub, h
}

func TestOfferHandler_ListOffers_ParsesFilters(t *testing.T) {
	creatorID := uuid.New()
	c, rec, stub, h := newOfferTestContext(t,
		"/api/offers?creator_id="+creatorID.String()+"&min_price=50&max_delivery_time=7&search=logo&ordering=-updated_at&page=2&page_size=5")

	err := h.ListOffers(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.NotNil(t, stub.listInput)
	require.NotNil(t, stub.listInput.CreatorID)
	assert.Equal(t, creatorID, *stub.listInput.CreatorID)
	require.NotNil(t, stub.listInput.MinPrice)
	assert.InDelta(t, 50.0, *stub.listInput.MinPrice, 0.001)
	require.NotNil(t, stub.listInput.MaxDeliveryTime)
	assert.Equal(t, 7, *stub.listInput.MaxDeliveryTime)
	assert.Equal(t, "logo", stub.listInput.Search)
	assert.Equal(t, "-updated_at", stub.listInput.Ordering)
	assert.Equal(t, 2, stub.listInput.Page)
	assert.Equal(t, 5, stub.listInput.PageSize)
}

func TestOfferHandler_ListOffers_NonNumericPage(t *testing.T) {
	c, _, stub, h := newOfferTestContext(t, "/api/offers?page=abc")

	err := h.ListOffers(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
	assert.Nil(t, stub.listInput)
}

func TestOfferHandler_ListOffers_NonNumericPageSize(t *testing.T) {
	c, _, _, h := newOfferTestContext(t, "/api/offers?page_size=many")

	err := h.ListOffers(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestOfferHandler_GenerateOfferQR_ServesPNG(t *testing.T) {
	c, rec, _, h := newOfferTestContext(t, "/api/offers/ignored/qr")

	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	err := h.GenerateOfferQR(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, []byte{0x89, 0x50, 0x4E, 0x47}, rec.Body.Bytes())
}

func TestOfferHandler_GetOffer_InvalidID(t *testing.T) {
	c, _, _, h := newOfferTestContext(t, "/api/offers/nope")

	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.GetOffer(c)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}
