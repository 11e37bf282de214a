package storage

import (
	"context"
	"io"
	"time"
)

// Storage abstracts where uploaded media (videos, thumbnails) lives.
// Implementations: S3/MinIO for deployments, local disk for development.
type Storage interface {
	// Write stores content from the reader under the given key.
	// size is the expected content length (-1 if unknown).
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Read retrieves content for the given key.
	// The caller is responsible for closing the returned ReadCloser.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content with the given key. Missing keys are not
	// an error.
	Delete(ctx context.Context, key string) error

	// Exists checks whether content with the given key exists.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a URL for accessing the content. For local storage
	// this is a server-relative path; for S3 a presigned URL valid for
	// the given duration.
	GetURL(ctx context.Context, key string, expires time.Duration) (string, error)
}
