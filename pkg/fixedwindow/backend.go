package fixedwindow

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/limitkit/limitkit/pkg/rules"
)

// Backend identifies a storage backend selectable through configuration.
type Backend string

const (
	// BackendMemory keeps counters in an in-process map.
	BackendMemory Backend = "memory"

	// BackendPostgres keeps counters in a rate_limits table.
	BackendPostgres Backend = "postgres"

	// BackendRedis keeps counters in an external TTL cache.
	BackendRedis Backend = "redis"
)

// NewStore builds the store selected by cfg.Backend. pool and cache are the
// backend collaborators; pass nil for whichever backends are not in use.
//
// A selected backend whose collaborator is missing is a configuration
// error, but not a fatal one: a warning is logged and a no-op store is
// returned, so the limiter runs but admits everything.
func NewStore(cfg Config, pool *pgxpool.Pool, cache StringCache, log *slog.Logger) Store {
	if log == nil {
		log = slog.Default()
	}

	switch cfg.Backend {
	case BackendMemory, "":
		return NewMemoryStore(cfg.Window)

	case BackendPostgres:
		store, err := NewPostgresStore(pool)
		if err != nil {
			log.Warn("postgres backend selected but no pool provided, rate limiting disabled",
				slog.Any("error", err))
			return noopStore{}
		}
		return store

	case BackendRedis:
		store, err := NewCacheStore(cache, cfg.Window, WithCacheLogger(log))
		if err != nil {
			log.Warn("redis backend selected but no cache provided, rate limiting disabled",
				slog.Any("error", err))
			return noopStore{}
		}
		return store

	default:
		log.Warn("unknown rate limit backend, rate limiting disabled",
			slog.String("backend", string(cfg.Backend)))
		return noopStore{}
	}
}

// LoadRules appends the YAML rule table at cfg.RulesPath to cfg.Rules.
// A no-op when RulesPath is empty.
func (c *Config) LoadRules() error {
	if c.RulesPath == "" {
		return nil
	}

	data, err := os.ReadFile(c.RulesPath)
	if err != nil {
		return fmt.Errorf("%w: rules file: %v", ErrInvalidConfig, err)
	}

	pathRules, err := rules.ParseYAML(data)
	if err != nil {
		return err
	}

	c.Rules = append(c.Rules, pathRules...)
	return nil
}
