package draft

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// storeConformance exercises the Store contract shared by every backend.
func storeConformance(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	// Missing key is not an error.
	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	// Round trip.
	require.NoError(t, store.Set(ctx, "wizard-1", []byte(`{"a":1}`)))
	data, ok, err := store.Get(ctx, "wizard-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"a":1}`, string(data))

	// Overwrite.
	require.NoError(t, store.Set(ctx, "wizard-1", []byte(`{"a":2}`)))
	data, _, err = store.Get(ctx, "wizard-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(data))

	// Keys are independent.
	require.NoError(t, store.Set(ctx, "wizard-2", []byte(`{"b":1}`)))
	data, _, err = store.Get(ctx, "wizard-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(data))

	// Remove is idempotent.
	require.NoError(t, store.Remove(ctx, "wizard-1"))
	_, ok, err = store.Get(ctx, "wizard-1")
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, store.Remove(ctx, "wizard-1"))
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	defer store.Close() //nolint:errcheck
	storeConformance(t, store)
}

func TestMemoryStoreCopiesData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte(`{"a":1}`)
	require.NoError(t, store.Set(ctx, "k", payload))
	payload[1] = 'x'

	data, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestSQLiteStore(t *testing.T) {
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "drafts.db"))
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck

	storeConformance(t, store)
}

func TestSQLiteStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "drafts.db")
	store, err := NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close() //nolint:errcheck

	require.NoError(t, store.Set(context.Background(), "k", []byte(`{}`)))
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client, 0)
	defer store.Close() //nolint:errcheck

	storeConformance(t, store)
}

func TestRedisStoreKeysAreNamespaced(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewRedisStoreWithClient(client, 0)
	defer store.Close() //nolint:errcheck

	require.NoError(t, store.Set(context.Background(), "wizard-1", []byte(`{}`)))
	assert.True(t, mr.Exists(redisKeyPrefix+"wizard-1"))
}
