// Package storage persists uploaded profile pictures and offer images in a
// blob bucket. The bucket URL selects the backend, a local directory during
// development or GCS in deployments.
package storage

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"coderr/config"
	"coderr/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// bucket driver
	_ "gocloud.dev/blob/gcsblob"  // gs:// bucket driver
	"gocloud.dev/gcerrors"
)

type blobStorage struct {
	bucket        *blob.Bucket
	publicBaseURL string
	logger        *slog.Logger
}

// Params holds dependencies for the blob storage, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewBlobStorage opens the configured bucket and returns a FileStorage.
// When no bucket is configured a local ./uploads directory is used.
func NewBlobStorage(params Params) (service.FileStorage, error) {
	cfg := params.Config.Storage
	if cfg == nil {
		cfg = &config.StorageConfig{}
	}

	bucketURL := cfg.BucketURL
	if bucketURL == "" {
		dir, err := filepath.Abs("uploads")
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve default upload directory")
		}
		bucketURL = "file://" + filepath.ToSlash(dir) + "?create_dir=true"
	}

	bucket, err := blob.OpenBucket(params.Ctx, bucketURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open bucket %s", bucketURL)
	}

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Closing blob storage bucket")

			return bucket.Close()
		},
	})

	params.Logger.Info("Blob storage initialized",
		slog.String("bucket_url", bucketURL),
	)

	return &blobStorage{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        params.Logger,
	}, nil
}

// Save writes the file under the given key and returns the reference URL
func (s *blobStorage) Save(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	opts := &blob.WriterOptions{
		ContentType: contentType,
	}

	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", errors.Wrapf(err, "failed to write object %s", key)
	}

	s.logger.Debug("Stored uploaded file",
		slog.String("key", key),
		slog.Int("size", len(data)),
	)

	return s.publicBaseURL + "/" + key, nil
}

// Delete removes a stored file. Missing keys are not an error
func (s *blobStorage) Delete(ctx context.Context, key string) error {
	err := s.bucket.Delete(ctx, key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return nil
		}

		return errors.Wrapf(err, "failed to delete object %s", key)
	}

	return nil
}
