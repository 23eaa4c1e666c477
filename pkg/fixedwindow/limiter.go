package fixedwindow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/limitkit/limitkit/pkg/logger"
	"github.com/limitkit/limitkit/pkg/rules"
)

// rejectedMessage is the human-readable rejection reason reported to
// callers alongside a denied Result.
const rejectedMessage = "rate limit exceeded, please try again later"

// Config defines the limiter's default rule, identity detection, and
// per-path overrides. The env tags allow loading it with the config
// package; the Backend and RulesPath fields only matter when the store is
// built from configuration via NewStore.
type Config struct {
	// Window is the default fixed-window duration.
	Window time.Duration `env:"RATELIMIT_WINDOW" envDefault:"60s"`

	// MaxRequests is the default number of requests admitted per window.
	MaxRequests int `env:"RATELIMIT_MAX_REQUESTS" envDefault:"100"`

	// Mode selects the identity signal requests are partitioned by.
	Mode DetectionMode `env:"RATELIMIT_DETECTION_MODE" envDefault:"ip"`

	// Backend selects the storage backend when the store is built via
	// NewStore: "memory", "postgres" or "redis".
	Backend Backend `env:"RATELIMIT_BACKEND" envDefault:"memory"`

	// StoreTimeout bounds every store call for non-memory backends; on
	// timeout the request fails open. Zero disables the bound.
	StoreTimeout time.Duration `env:"RATELIMIT_STORE_TIMEOUT" envDefault:"2s"`

	// RulesPath optionally points at a YAML rule-table file loaded by
	// LoadRules.
	RulesPath string `env:"RATELIMIT_RULES_PATH"`

	// Rules are per-path overrides, matched in declaration order.
	Rules []rules.PathRule `env:"-"`
}

func (c Config) validate() error {
	if c.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidConfig, c.Window)
	}
	if c.MaxRequests <= 0 {
		return fmt.Errorf("%w: max requests must be positive, got %d", ErrInvalidConfig, c.MaxRequests)
	}
	if !c.Mode.valid() {
		return fmt.Errorf("%w: unknown detection mode %q", ErrInvalidConfig, c.Mode)
	}
	return nil
}

// Limiter is the fixed-window admission engine. It is stateless across
// calls; all mutable state lives in the Store, so a single Limiter may be
// shared freely across goroutines.
type Limiter struct {
	store        Store
	defaultRule  rules.Rule
	mode         DetectionMode
	table        *rules.Table
	storeTimeout time.Duration
	log          *slog.Logger
	now          func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithLogger sets the logger used to report fail-open storage errors.
func WithLogger(log *slog.Logger) Option {
	return func(l *Limiter) {
		if log != nil {
			l.log = log
		}
	}
}

// New creates a Limiter over the given store. Custom rule patterns are
// compiled eagerly, so invalid patterns surface here rather than at request
// time.
func New(store Store, cfg Config, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	table, err := rules.NewTable(cfg.Rules)
	if err != nil {
		return nil, err
	}

	l := &Limiter{
		store:        store,
		defaultRule:  rules.Rule{Window: cfg.Window, Max: cfg.MaxRequests},
		mode:         cfg.Mode,
		table:        table,
		storeTimeout: cfg.StoreTimeout,
		log:          slog.Default(),
		now:          time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l, nil
}

// Check decides whether the request is admitted under its path's rule.
//
// Check never fails: storage errors are logged and the request is treated
// as if no prior entry existed, degrading to "always allow" rather than
// blocking traffic.
func (l *Limiter) Check(ctx context.Context, req Request) *Result {
	rule := l.defaultRule
	if match := l.table.Resolve(req.Path); match != nil {
		if match.Disabled {
			return &Result{Allowed: true, Limit: 0, Remaining: 0}
		}
		rule = match.Rule
	}

	scheme, id, ok := l.mode.identity(req)
	if !ok {
		return &Result{Allowed: true, Limit: rule.Max, Remaining: rule.Max}
	}

	key := Key(scheme, id, req.Path)
	now := l.now()

	entry, err := l.get(ctx, key)
	if err != nil {
		l.log.LogAttrs(ctx, slog.LevelError, "rate limit store read failed, admitting request",
			logger.Key(key), logger.Error(err))
		entry = nil
	}

	// First request for the key, or the previous window has fully elapsed:
	// start a fresh window. Elapsed windows always reset regardless of how
	// far over the limit the previous count went.
	if entry == nil || now.Sub(entry.WindowStart) >= rule.Window {
		isUpdate := entry != nil
		l.set(ctx, key, Entry{Count: 1, WindowStart: now}, isUpdate)
		return &Result{
			Allowed:   true,
			Limit:     rule.Max,
			Remaining: rule.Max - 1,
			ResetAt:   now.Add(rule.Window),
		}
	}

	resetAt := entry.WindowStart.Add(rule.Window)

	// The Nth request in the window is the last one admitted; at the limit
	// we reject without touching the store, so rejected requests never
	// consume quota.
	if entry.Count >= rule.Max {
		return &Result{
			Allowed:    false,
			Limit:      rule.Max,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: ceilSeconds(resetAt.Sub(now)),
			Message:    rejectedMessage,
		}
	}

	newCount := entry.Count + 1
	l.set(ctx, key, Entry{Count: newCount, WindowStart: entry.WindowStart}, true)

	return &Result{
		Allowed:   true,
		Limit:     rule.Max,
		Remaining: max(0, rule.Max-newCount),
		ResetAt:   resetAt,
	}
}

// Reset clears accounting for one identity on one path.
func (l *Limiter) Reset(ctx context.Context, scheme, identity, path string) error {
	ctx, cancel := l.storeCtx(ctx)
	defer cancel()
	return l.store.Reset(ctx, Key(scheme, identity, path))
}

func (l *Limiter) get(ctx context.Context, key string) (*Entry, error) {
	ctx, cancel := l.storeCtx(ctx)
	defer cancel()
	return l.store.Get(ctx, key)
}

// set writes back the entry, logging and swallowing failures: a storage
// error must never abort the calling request.
func (l *Limiter) set(ctx context.Context, key string, entry Entry, isUpdate bool) {
	ctx, cancel := l.storeCtx(ctx)
	defer cancel()

	if err := l.store.Set(ctx, key, entry, isUpdate); err != nil {
		l.log.LogAttrs(ctx, slog.LevelError, "rate limit store write failed",
			logger.Key(key), logger.Error(err))
	}
}

func (l *Limiter) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if l.storeTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, l.storeTimeout)
}

func ceilSeconds(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	secs := (d + time.Second - 1) / time.Second
	return secs * time.Second
}
