package handler

import (
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"coderr/config"
	"coderr/internal/delivery/http/response"
	domainerrors "coderr/internal/domain/errors"
	"coderr/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// defaultMaxUploadSize bounds uploads when storage config leaves it unset.
const defaultMaxUploadSize = 5 << 20

// UploadOutput is the stored file reference returned to the client. The key
// goes into the profile `file` or offer `image` field on a later patch.
type UploadOutput struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// UploadHandler stores profile pictures and offer images.
type UploadHandler struct {
	storage       service.FileStorage
	maxUploadSize int64
	logger        *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(storage service.FileStorage, cfg *config.Config, logger *slog.Logger) *UploadHandler {
	maxSize := int64(defaultMaxUploadSize)
	if cfg.Storage != nil && cfg.Storage.MaxUploadSize > 0 {
		maxSize = cfg.Storage.MaxUploadSize
	}

	return &UploadHandler{
		storage:       storage,
		maxUploadSize: maxSize,
		logger:        logger,
	}
}

// Upload handles the multipart file upload request.
func (h *UploadHandler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("file is required")
	}

	if fileHeader.Size > h.maxUploadSize {
		return domainerrors.ErrValidationFailed.WithDetails("file exceeds the maximum upload size")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return errors.WithStack(err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.maxUploadSize+1))
	if err != nil {
		return errors.WithStack(err)
	}
	if int64(len(data)) > h.maxUploadSize {
		return domainerrors.ErrValidationFailed.WithDetails("file exceeds the maximum upload size")
	}

	// Random key keeps uploads from clobbering each other
	key := uuid.New().String() + filepath.Ext(fileHeader.Filename)

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.storage.Save(c.Request().Context(), key, data, contentType)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, &UploadOutput{
		Key: key,
		URL: url,
	}, "File uploaded successfully")
}
