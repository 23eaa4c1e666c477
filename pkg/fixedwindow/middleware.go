package fixedwindow

import (
	"net/http"
	"strconv"

	"github.com/limitkit/limitkit/pkg/clientip"
)

// SessionResolver resolves the authenticated user ID for a request. It
// returns an empty string for anonymous requests. Errors are treated the
// same as "no session": an auth hiccup must never turn into a rejected or
// failed request.
type SessionResolver func(r *http.Request) (string, error)

// MiddlewareOption configures middleware behavior.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	resolveSession SessionResolver
	onLimitReached func(w http.ResponseWriter, r *http.Request, result *Result)
	skipFunc       func(r *http.Request) bool
}

// WithSessionResolver supplies the session lookup used for user-based
// detection modes.
func WithSessionResolver(fn SessionResolver) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.resolveSession = fn
	}
}

// WithOnLimitReached sets a custom handler for rejected requests.
func WithOnLimitReached(fn func(w http.ResponseWriter, r *http.Request, result *Result)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if fn != nil {
			c.onLimitReached = fn
		}
	}
}

// WithSkipFunc sets a predicate that bypasses rate limiting entirely for
// matching requests.
func WithSkipFunc(fn func(r *http.Request) bool) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.skipFunc = fn
	}
}

// Middleware enforces the limiter on an HTTP handler chain. It sets the
// conventional X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset (unix seconds) headers whenever a rule applied, and
// answers rejected requests with 429 and a Retry-After header.
func Middleware(limiter *Limiter, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	if limiter == nil {
		panic("fixedwindow.Middleware: limiter is required")
	}

	config := &middlewareConfig{
		onLimitReached: func(w http.ResponseWriter, r *http.Request, result *Result) {
			http.Error(w, result.Message, http.StatusTooManyRequests)
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if config.skipFunc != nil && config.skipFunc(r) {
				next.ServeHTTP(w, r)
				return
			}

			userID := ""
			if config.resolveSession != nil {
				if id, err := config.resolveSession(r); err == nil {
					userID = id
				}
			}

			result := limiter.Check(r.Context(), Request{
				Path:     r.URL.Path,
				ClientIP: clientip.GetIP(r),
				UserID:   userID,
			})

			if result.Limit > 0 {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			}
			if !result.ResetAt.IsZero() {
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
			}

			if !result.Allowed {
				retryAfter := int(result.RetryAfter.Seconds())
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				config.onLimitReached(w, r, result)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
