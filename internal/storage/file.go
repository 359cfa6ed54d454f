// Package storage provides file-based JSON persistence for nestegg.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mfletcher/nestegg/internal/common"
	"github.com/mfletcher/nestegg/internal/interfaces"
)

// FileStore persists values as one JSON file per key under basePath/kv.
// Writes are atomic (temp file + rename) so a crashed write never leaves a
// truncated record behind.
type FileStore struct {
	basePath string
	dir      string
	logger   *common.Logger
}

// NewFileStore creates a FileStore and ensures the data directory exists.
func NewFileStore(logger *common.Logger, config common.StorageConfig) (*FileStore, error) {
	fs := &FileStore{
		basePath: config.Path,
		dir:      filepath.Join(config.Path, "kv"),
		logger:   logger,
	}

	if err := os.MkdirAll(fs.dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", fs.dir, err)
	}

	logger.Debug().Str("path", config.Path).Msg("FileStore opened")
	return fs, nil
}

// sanitizeKey makes a key safe for use as a filename. Replaces /, \, : with
// _ and collapses ".." to "_" to prevent path traversal.
func (fs *FileStore) sanitizeKey(key string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")
	return r.Replace(key)
}

// filePath returns the full path for a key.
func (fs *FileStore) filePath(key string) string {
	return filepath.Join(fs.dir, fs.sanitizeKey(key)+".json")
}

// Get reads the raw value for a key. Returns interfaces.ErrNotFound when
// the key is absent.
func (fs *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	path := fs.filePath(key)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %q", interfaces.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", interfaces.ErrNotFound, key)
	}
	return data, nil
}

// Set writes a value atomically: temp file in the same directory, then
// rename over the target.
func (fs *FileStore) Set(ctx context.Context, key string, value []byte) error {
	target := fs.filePath(key)

	tmpFile, err := os.CreateTemp(fs.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if _, err := tmpFile.Write(value); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	fs.logger.Debug().Str("key", key).Int("bytes", len(value)).Msg("Value saved")
	return nil
}

// Remove deletes a key. Removing an absent key is not an error.
func (fs *FileStore) Remove(ctx context.Context, key string) error {
	os.Remove(fs.filePath(key))
	return nil
}

// Keys returns all stored keys (sanitized form, excluding temp files).
func (fs *FileStore) Keys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read directory %s: %w", fs.dir, err)
	}

	var keys []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasSuffix(name, ".json") && !strings.HasPrefix(name, ".tmp-") {
			keys = append(keys, strings.TrimSuffix(name, ".json"))
		}
	}
	return keys, nil
}

// Close releases the store. File-backed stores hold no open handles.
func (fs *FileStore) Close() error {
	return nil
}
