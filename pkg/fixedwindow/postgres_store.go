package fixedwindow

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limitkit/limitkit/pkg/pg"
)

// PostgresStore implements Store on a rate_limits table keyed by a unique
// key column. There is no physical expiry: the limiter's window arithmetic
// alone decides whether a stored counter is still live.
//
// Schema (see migrations/):
//
//	CREATE TABLE rate_limits (
//	    key          TEXT PRIMARY KEY,
//	    count        BIGINT NOT NULL,
//	    last_request BIGINT NOT NULL
//	);
//
// last_request holds the window start as milliseconds since the epoch and
// is normalized back to a time.Time on read.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
func NewPostgresStore(db *pgxpool.Pool) (*PostgresStore, error) {
	if db == nil {
		return nil, ErrStoreRequired
	}
	return &PostgresStore{db: db}, nil
}

// Get returns the entry for key, or nil when none exists.
func (s *PostgresStore) Get(ctx context.Context, key string) (*Entry, error) {
	var (
		count       int64
		lastRequest int64
	)
	err := s.db.QueryRow(ctx,
		`SELECT count, last_request FROM rate_limits WHERE key = $1`, key,
	).Scan(&count, &lastRequest)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &Entry{
		Count:       int(count),
		WindowStart: time.UnixMilli(lastRequest),
	}, nil
}

// Set inserts the entry on first write and updates the existing row
// otherwise. The distinction matters here: the key column carries a
// uniqueness constraint, so a blind insert on update would fail.
func (s *PostgresStore) Set(ctx context.Context, key string, entry Entry, isUpdate bool) error {
	if isUpdate {
		_, err := s.db.Exec(ctx,
			`UPDATE rate_limits SET count = $2, last_request = $3 WHERE key = $1`,
			key, int64(entry.Count), entry.WindowStart.UnixMilli(),
		)
		return err
	}

	_, err := s.db.Exec(ctx,
		`INSERT INTO rate_limits (key, count, last_request) VALUES ($1, $2, $3)`,
		key, int64(entry.Count), entry.WindowStart.UnixMilli(),
	)
	if pg.IsDuplicateKeyError(err) {
		// A racing first request inserted the row between our read and
		// this write; overwrite it instead of surfacing the conflict.
		return s.Set(ctx, key, entry, true)
	}
	return err
}

// Reset removes the row for key.
func (s *PostgresStore) Reset(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM rate_limits WHERE key = $1`, key)
	return err
}
