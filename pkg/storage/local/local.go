// Package local stores objects as files under a bucket directory. It is the
// default backend for single-machine runs and for the CLI.
package local

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	cfg "github.com/mikawi/g2scv/config"
	"github.com/mikawi/g2scv/pkg/logger"
)

type LocalStorage struct {
	dir    string
	logger logger.Logger
}

// keyPath rejects keys that would escape the bucket directory.
func (l *LocalStorage) keyPath(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid object key: %q", key)
	}
	return filepath.Join(l.dir, clean), nil
}

// Store implements Storage.Store
func (l *LocalStorage) Store(ctx context.Context, reader io.Reader, filename string) (string, error) {
	path, err := l.keyPath(filename)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to store file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, reader); err != nil {
		l.logger.Error("Failed to write local object",
			logger.String("dir", l.dir),
			logger.String("filename", filename),
			logger.Error(err),
		)
		return "", fmt.Errorf("failed to store file: %w", err)
	}

	return filename, nil
}

// Get implements Storage.Get
func (l *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := l.keyPath(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to get file: %w", err)
	}
	return f, nil
}

// Delete implements Storage.Delete
func (l *LocalStorage) Delete(ctx context.Context, key string) error {
	path, err := l.keyPath(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// CleanupBefore implements Storage.CleanupBefore
func (l *LocalStorage) CleanupBefore(ctx context.Context, threshold time.Time) error {
	return filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.ModTime().Before(threshold) {
			if err := os.Remove(path); err != nil {
				l.logger.Error("Failed to delete expired object",
					logger.String("path", path),
					logger.Error(err),
				)
				return nil
			}
			l.logger.Info("Deleted expired object",
				logger.String("path", path),
				logger.Time("lastModified", info.ModTime()),
			)
		}
		return nil
	})
}

func NewLocalStorage(dir string, log logger.Logger) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create bucket directory: %w", err)
	}
	return &LocalStorage{dir: dir, logger: log}, nil
}

func GetClient(log logger.Logger) (*LocalStorage, error) {
	storageConfig := cfg.GetStorageConfig()
	return NewLocalStorage(storageConfig.LocalDir, log)
}
