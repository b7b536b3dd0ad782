package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/convenuence/backend/internal/domain"
)

const fileExtension = ".json"

// FileStore is a durable key-value store keeping one JSON document per key
// under a data directory. Writes are last-write-wins at the key level; the
// store performs no locking across keys.
type FileStore struct {
	dir string
}

// NewFileStore creates a store rooted at dir, creating the directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store's data directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save serializes value to JSON and writes it to the key's file.
func (s *FileStore) Save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	if err := os.WriteFile(s.pathFor(key), payload, 0o644); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}
	return nil
}

// Fetch reads and decodes the key's file into dest. A missing file returns
// found == false with no error.
func (s *FileStore) Fetch(ctx context.Context, key string, dest any) (bool, error) {
	payload, err := os.ReadFile(s.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return true, nil
}

// Delete removes the key's file. Deleting a missing key is a no-op.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.pathFor(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %v", domain.ErrDeleteFailed, err)
	}
	return nil
}

// Keys lists all stored keys with the given prefix, in no particular order.
func (s *FileStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, fileExtension) {
			continue
		}
		key, err := url.PathUnescape(strings.TrimSuffix(name, fileExtension))
		if err != nil {
			continue
		}
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// pathFor maps a key to its file path. Keys are escaped because venue ids are
// opaque strings and may contain path separators.
func (s *FileStore) pathFor(key string) string {
	return filepath.Join(s.dir, url.PathEscape(key)+fileExtension)
}
