package fixedwindow

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/limitkit/limitkit/pkg/logger"
)

// StringCache is the contract an external TTL cache must satisfy to back a
// CacheStore. Get reports ok=false for a missing key.
type StringCache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CacheStore implements Store on top of an opaque string cache. Entries are
// serialized to JSON for Set and parsed back on Get; a value that fails to
// parse is treated as absent so a corrupt cache entry degrades to "no prior
// requests" rather than an error.
//
// The TTL passed to the cache is the store's default window, so the same
// early-expiry caveat as MemoryStore applies to custom rules with longer
// windows.
type CacheStore struct {
	cache         StringCache
	defaultWindow time.Duration
	prefix        string
	log           *slog.Logger
}

// CacheStoreOption configures a CacheStore.
type CacheStoreOption func(*CacheStore)

// WithKeyPrefix sets the prefix prepended to every cache key.
func WithKeyPrefix(prefix string) CacheStoreOption {
	return func(s *CacheStore) {
		s.prefix = prefix
	}
}

// WithCacheLogger sets the logger used to report unparseable cache values.
func WithCacheLogger(log *slog.Logger) CacheStoreOption {
	return func(s *CacheStore) {
		if log != nil {
			s.log = log
		}
	}
}

// NewCacheStore creates a Store over the given string cache. Entries expire
// after defaultWindow via the cache's own TTL mechanism.
func NewCacheStore(cache StringCache, defaultWindow time.Duration, opts ...CacheStoreOption) (*CacheStore, error) {
	if cache == nil {
		return nil, ErrStoreRequired
	}

	s := &CacheStore{
		cache:         cache,
		defaultWindow: defaultWindow,
		prefix:        "ratelimit:",
		log:           slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// cacheEntry is the wire form of an Entry, with the window start as
// milliseconds since the epoch.
type cacheEntry struct {
	Count       int   `json:"count"`
	WindowStart int64 `json:"windowStart"`
}

// Get returns the entry for key. Missing keys and unparseable values are
// both reported as absent.
func (s *CacheStore) Get(ctx context.Context, key string) (*Entry, error) {
	raw, ok, err := s.cache.Get(ctx, s.prefix+key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var ce cacheEntry
	if err := json.Unmarshal([]byte(raw), &ce); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "discarding unparseable rate limit entry",
			logger.Key(key), logger.Error(err))
		return nil, nil
	}

	return &Entry{
		Count:       ce.Count,
		WindowStart: time.UnixMilli(ce.WindowStart),
	}, nil
}

// Set serializes the entry and stores it with the default-window TTL. The
// cache is an upsert backend, so isUpdate is ignored.
func (s *CacheStore) Set(ctx context.Context, key string, entry Entry, _ bool) error {
	raw, err := json.Marshal(cacheEntry{
		Count:       entry.Count,
		WindowStart: entry.WindowStart.UnixMilli(),
	})
	if err != nil {
		return err
	}

	return s.cache.Set(ctx, s.prefix+key, string(raw), s.defaultWindow)
}

// Reset removes the entry for key.
func (s *CacheStore) Reset(ctx context.Context, key string) error {
	return s.cache.Delete(ctx, s.prefix+key)
}
