// Package storage abstracts the object store that holds uploaded CVs and
// parsed-result artifacts. Backends: a local bucket directory, MinIO, and
// AWS S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/mikawi/g2scv/pkg/logger"
	"github.com/mikawi/g2scv/pkg/storage/local"
	"github.com/mikawi/g2scv/pkg/storage/minio"
	"github.com/mikawi/g2scv/pkg/storage/s3"
)

type StorageType string

const (
	StorageTypeLocal StorageType = "local"
	StorageTypeS3    StorageType = "s3"
	StorageTypeMinio StorageType = "minio"
)

// Storage is the object-store interface shared by all backends.
type Storage interface {
	// Store writes the object and returns its key.
	Store(ctx context.Context, reader io.Reader, filename string) (string, error)
	// Get opens the object for reading.
	Get(ctx context.Context, key string) (io.ReadCloser, error)
	// Delete removes the object.
	Delete(ctx context.Context, key string) error
	// CleanupBefore removes objects last modified before threshold.
	CleanupBefore(ctx context.Context, threshold time.Time) error
}

// NewStorage builds the backend named by storageType.
func NewStorage(storageType StorageType, log logger.Logger) (Storage, error) {
	switch storageType {
	case StorageTypeLocal:
		return local.GetClient(log)
	case StorageTypeS3:
		return s3.GetClient(log)
	case StorageTypeMinio:
		return minio.GetClient(log)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}
