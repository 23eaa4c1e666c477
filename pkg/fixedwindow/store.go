package fixedwindow

import (
	"context"
	"time"
)

// Entry is the state of one fixed window for one rate-limit key.
// WindowStart is the instant the first request of the currently active
// window was admitted; it never moves while the window is live.
type Entry struct {
	Count       int
	WindowStart time.Time
}

// Store is a keyed store of window entries. Implementations must be safe
// for concurrent use.
type Store interface {
	// Get returns the entry for key, or nil when no entry exists. An entry
	// that has passed its backend-specific expiry must be reported as
	// absent even if not yet physically purged.
	Get(ctx context.Context, key string) (*Entry, error)

	// Set writes the entry for key. isUpdate is false for the first write
	// of a key and true when overwriting an existing entry; backends that
	// only support upsert may ignore it, backends with a uniqueness
	// constraint must honor it to avoid duplicate-key failures.
	Set(ctx context.Context, key string, entry Entry, isUpdate bool) error

	// Reset removes the entry for key.
	Reset(ctx context.Context, key string) error
}

// noopStore never persists anything. It backs the fail-open path when a
// configured backend is missing its collaborator: every request then looks
// like the first one in a fresh window.
type noopStore struct{}

func (noopStore) Get(context.Context, string) (*Entry, error)    { return nil, nil }
func (noopStore) Set(context.Context, string, Entry, bool) error { return nil }
func (noopStore) Reset(context.Context, string) error            { return nil }
