package fixedwindow

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements an in-process Store backed by a map.
//
// Entries physically expire after the store's default window, regardless of
// the per-path rule that produced them; a custom rule with a longer window
// than the default can therefore have its counter evicted early. Expired
// entries are evicted lazily on Get and swept periodically in the
// background to bound memory.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry

	defaultWindow   time.Duration
	cleanupInterval time.Duration
	maxEntries      int

	stopCleanup chan struct{}
	cleanupOnce sync.Once

	now func() time.Time
}

type memoryEntry struct {
	entry     Entry
	expiresAt time.Time
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets how often expired entries are swept.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

// WithMaxEntries caps the number of stored entries. When the cap is reached
// and no expired entry can be evicted, new writes are dropped, which fails
// open for the affected keys.
func WithMaxEntries(n int) MemoryStoreOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxEntries = n
		}
	}
}

// NewMemoryStore creates an in-memory store whose entries expire after
// defaultWindow. A background sweep keeps the map bounded; call Close to
// stop it.
func NewMemoryStore(defaultWindow time.Duration, opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		entries:         make(map[string]memoryEntry),
		defaultWindow:   defaultWindow,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
		now:             time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

// Get returns the live entry for key, lazily evicting it when expired.
func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	me, ok := s.entries[key]
	if !ok {
		return nil, nil
	}

	if !s.now().Before(me.expiresAt) {
		delete(s.entries, key)
		return nil, nil
	}

	entry := me.entry
	return &entry, nil
}

// Set stores the entry for key with the store's default-window expiry.
func (s *MemoryStore) Set(_ context.Context, key string, entry Entry, isUpdate bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !isUpdate && s.maxEntries > 0 && len(s.entries) >= s.maxEntries {
		s.evictExpiredLocked()
		if len(s.entries) >= s.maxEntries {
			return nil
		}
	}

	s.entries[key] = memoryEntry{
		entry:     entry,
		expiresAt: s.now().Add(s.defaultWindow),
	}
	return nil
}

// Reset removes the entry for key.
func (s *MemoryStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Len returns the number of entries currently held, including any not yet
// swept.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the background sweep goroutine.
func (s *MemoryStore) Close() error {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			s.evictExpiredLocked()
			s.mu.Unlock()
		case <-s.stopCleanup:
			return
		}
	}
}

func (s *MemoryStore) evictExpiredLocked() {
	now := s.now()
	for key, me := range s.entries {
		if !now.Before(me.expiresAt) {
			delete(s.entries, key)
		}
	}
}
