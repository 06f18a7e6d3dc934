package service

import "context"

// FileStorage abstracts the bucket holding uploaded profile pictures and
// offer images. Stored objects are referenced by key from the entity fields.
type FileStorage interface {
	// Save writes the file under the given key and returns the reference URL.
	Save(ctx context.Context, key string, data []byte, contentType string) (string, error)

	// Delete removes a stored file. Missing keys are not an error.
	Delete(ctx context.Context, key string) error
}
