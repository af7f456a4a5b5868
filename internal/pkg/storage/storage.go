package storage

import (
	"context"
	"fmt"
	"io"
	"time"
)

type FileStorage interface {
	// Upload uploads a file and returns the file path/key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes a file
	Delete(ctx context.Context, path string) error

	// GetURL generates a presigned/public URL
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// Exists checks if file exists
	Exists(ctx context.Context, path string) (bool, error)
}

// New builds the storage backend selected by storageType.
func New(ctx context.Context, storageType, basePath, baseURL, bucket, prefix string) (FileStorage, error) {
	switch storageType {
	case "local":
		local, err := NewLocalStorage(basePath, baseURL)
		if err != nil {
			return nil, err
		}
		return local, nil
	case "s3":
		remote, err := NewS3Storage(ctx, bucket, prefix)
		if err != nil {
			return nil, err
		}
		return remote, nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}
