// Package memory implements the kv.KV contract in memory, backed by the
// generic pkg/kv store. Used as the test double for persistent state.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	corekv "github.com/colonyops/tint/internal/core/kv"
	"github.com/colonyops/tint/pkg/kv"
)

// KVStore implements kv.KV with an in-memory map.
type KVStore struct {
	data *kv.Store[string, json.RawMessage]
}

var _ corekv.KV = (*KVStore)(nil)

// NewKVStore creates a new in-memory KV store.
func NewKVStore() *KVStore {
	return &KVStore{data: kv.New[string, json.RawMessage]()}
}

// Get retrieves and deserializes a value by key.
// Returns an error wrapping kv.ErrNotFound if the key does not exist.
func (s *KVStore) Get(ctx context.Context, key string, dest any) error {
	raw, ok := s.data.Get(key)
	if !ok {
		return fmt.Errorf("kv get %q: %w", key, corekv.ErrNotFound)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("kv get %q unmarshal: %w", key, err)
	}
	return nil
}

// Set stores a value by key.
func (s *KVStore) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kv set %q marshal: %w", key, err)
	}
	s.data.Set(key, raw)
	return nil
}

// Delete removes a key.
func (s *KVStore) Delete(ctx context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

// Has returns whether a key exists.
func (s *KVStore) Has(ctx context.Context, key string) (bool, error) {
	_, ok := s.data.Get(key)
	return ok, nil
}

// ListKeys returns all keys in sorted order.
func (s *KVStore) ListKeys(ctx context.Context) ([]string, error) {
	keys := s.data.Keys()
	sort.Strings(keys)
	return keys, nil
}
