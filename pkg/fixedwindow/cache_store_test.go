package fixedwindow_test

import (
	"context"
	"testing"
	"time"

	"github.com/limitkit/limitkit/pkg/fixedwindow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ttlRecordingCache wraps fakeStringCache and remembers the last TTL.
type ttlRecordingCache struct {
	*fakeStringCache
	lastTTL time.Duration
}

func (c *ttlRecordingCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.lastTTL = ttl
	return c.fakeStringCache.Set(ctx, key, value, ttl)
}

func TestNewCacheStore_RequiresCache(t *testing.T) {
	t.Parallel()

	_, err := fixedwindow.NewCacheStore(nil, time.Minute)
	require.Error(t, err)
	assert.ErrorIs(t, err, fixedwindow.ErrStoreRequired)
}

func TestCacheStore_RoundTrip(t *testing.T) {
	t.Parallel()

	store, err := fixedwindow.NewCacheStore(newFakeStringCache(), time.Minute)
	require.NoError(t, err)

	ctx := context.Background()

	entry, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, entry)

	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Set(ctx, "k", fixedwindow.Entry{Count: 3, WindowStart: start}, false))

	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Count)
	assert.True(t, got.WindowStart.Equal(start), "window start must survive serialization")
}

func TestCacheStore_UsesDefaultWindowTTL(t *testing.T) {
	t.Parallel()

	cache := &ttlRecordingCache{fakeStringCache: newFakeStringCache()}
	store, err := fixedwindow.NewCacheStore(cache, 90*time.Second)
	require.NoError(t, err)

	err = store.Set(context.Background(), "k", fixedwindow.Entry{Count: 1, WindowStart: time.Now()}, false)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cache.lastTTL)
}

func TestCacheStore_KeyPrefix(t *testing.T) {
	t.Parallel()

	cache := newFakeStringCache()
	store, err := fixedwindow.NewCacheStore(cache, time.Minute, fixedwindow.WithKeyPrefix("rl:"))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", fixedwindow.Entry{Count: 1, WindowStart: time.Now()}, false))

	_, ok, err := cache.Get(ctx, "rl:k")
	require.NoError(t, err)
	assert.True(t, ok, "value must be stored under the prefixed key")
}

func TestCacheStore_UnparseableValueIsAbsent(t *testing.T) {
	t.Parallel()

	cache := newFakeStringCache()
	store, err := fixedwindow.NewCacheStore(cache, time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "ratelimit:k", "not-json{", time.Minute))

	entry, err := store.Get(ctx, "k")
	require.NoError(t, err, "a corrupt value must fail open, not error")
	assert.Nil(t, entry)
}

func TestCacheStore_Reset(t *testing.T) {
	t.Parallel()

	store, err := fixedwindow.NewCacheStore(newFakeStringCache(), time.Minute)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", fixedwindow.Entry{Count: 1, WindowStart: time.Now()}, false))
	require.NoError(t, store.Reset(ctx, "k"))

	entry, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, entry)
}
