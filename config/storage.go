package config

import (
	"sync"
)

var (
	storageOnce   sync.Once
	storageConfig *StorageConfig
)

type StorageConfig struct {
	// Type selects the backend: "local", "minio", or "s3".
	Type string
	// LocalDir is the bucket directory for the local backend.
	LocalDir string
}

func GetStorageConfig() *StorageConfig {
	storageOnce.Do(func() {
		storageConfig = &StorageConfig{
			Type:     lookup("STORAGE_TYPE", "local"),
			LocalDir: lookup("STORAGE_LOCAL_DIR", "data/buckets"),
		}
	})
	return storageConfig
}
