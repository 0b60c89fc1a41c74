package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/tint/internal/core/kv"
)

func newTestStore(t *testing.T) (*KVStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	return NewKVStore(path), path
}

func TestKVStore_SetGet(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(ctx, "agentColor:override:/work/app", 7))

	var got int
	require.NoError(t, store.Get(ctx, "agentColor:override:/work/app", &got))
	assert.Equal(t, 7, got)
}

func TestKVStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var got int
	err := store.Get(ctx, "missing", &got)
	require.Error(t, err)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestKVStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(ctx, "key", "value"))
	require.NoError(t, store.Delete(ctx, "key"))

	var got string
	assert.ErrorIs(t, store.Get(ctx, "key", &got), kv.ErrNotFound)

	// deleting again is not an error
	require.NoError(t, store.Delete(ctx, "key"))
}

func TestKVStore_Has(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	ok, err := store.Has(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "key", []int{1, 2}))

	ok, err = store.Has(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestKVStore_ListKeysSorted(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	require.NoError(t, store.Set(ctx, "b", 2))
	require.NoError(t, store.Set(ctx, "a", 1))
	require.NoError(t, store.Set(ctx, "c", 3))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, keys)
}

func TestKVStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store, path := newTestStore(t)

	require.NoError(t, store.Set(ctx, "agentColor:usedIndices", []int{3, 7, 11}))

	reopened := NewKVStore(path)
	var got []int
	require.NoError(t, reopened.Get(ctx, "agentColor:usedIndices", &got))
	assert.Equal(t, []int{3, 7, 11}, got)
}

func TestKVStore_EmptyFile(t *testing.T) {
	ctx := context.Background()
	store, path := newTestStore(t)

	require.NoError(t, os.WriteFile(path, nil, 0o644))

	keys, err := store.ListKeys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)

	require.NoError(t, store.Set(ctx, "key", true))

	var got bool
	require.NoError(t, store.Get(ctx, "key", &got))
	assert.True(t, got)
}
