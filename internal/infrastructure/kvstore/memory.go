package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/convenuence/backend/internal/domain"
)

// MemoryStore is a thread-safe in-memory key-value store. Values are held as
// serialized JSON so that fetch always goes through the same decode path as
// the durable store. Entries persist until explicitly overwritten or deleted.
type MemoryStore struct {
	data  map[string]json.RawMessage
	mutex sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]json.RawMessage),
	}
}

// Save serializes value to JSON and stores it under key.
func (s *MemoryStore) Save(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.data[key] = payload
	return nil
}

// Fetch decodes the value stored under key into dest. A missing key returns
// found == false with no error.
func (s *MemoryStore) Fetch(ctx context.Context, key string, dest any) (bool, error) {
	s.mutex.RLock()
	payload, exists := s.data[key]
	s.mutex.RUnlock()

	if !exists {
		return false, nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	return true, nil
}

// Delete removes the value stored under key. Deleting a missing key is a no-op.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.data, key)
	return nil
}

// Keys returns all stored keys with the given prefix, in no particular order.
func (s *MemoryStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	keys := make([]string, 0, len(s.data))
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Size returns the current number of stored entries (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.data)
}
