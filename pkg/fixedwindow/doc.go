// Package fixedwindow provides fixed-window request rate limiting with
// pluggable storage and per-path rules.
//
// The limiter counts requests per (identity, path) key inside a fixed time
// window. The window starts when the first request for a key arrives and
// never slides: every request observed while the window is live shares the
// same reset time, and the counter resets only once the full window has
// elapsed.
//
// # Basic Usage
//
//	store := fixedwindow.NewMemoryStore(time.Minute)
//	defer store.Close()
//
//	limiter, err := fixedwindow.New(store, fixedwindow.Config{
//		Window:      time.Minute,
//		MaxRequests: 100,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result := limiter.Check(ctx, fixedwindow.Request{
//		Path:     "/api/orders",
//		ClientIP: "203.0.113.7",
//	})
//	if !result.Allowed {
//		// Rejected; retry after result.RetryAfter.
//	}
//
// # Per-Path Rules
//
// Custom rules override the default window and limit per path pattern, in
// declaration order (first match wins). A pattern can also disable limiting
// entirely for matching paths:
//
//	limiter, err := fixedwindow.New(store, fixedwindow.Config{
//		Window:      time.Minute,
//		MaxRequests: 100,
//		Rules: []rules.PathRule{
//			{Pattern: "/api/health", Disabled: true},
//			{Pattern: "/api/ai/*", Rule: rules.Rule{Window: time.Minute, Max: 2}},
//		},
//	})
//
// # Identity Detection
//
// The rate-limit key is derived from the request identity according to the
// configured detection mode: client IP, authenticated user ID, or user ID
// with IP fallback. Requests for which no identity can be determined are
// admitted without accounting.
//
// # Storage Backends
//
// Three Store implementations ship with the package: an in-process memory
// store, a Postgres-backed store (pgx), and a store over any external TTL
// string cache, with a go-redis adapter included. All storage and
// serialization failures fail open: the request is admitted as if no prior
// entry existed, and the failure is logged.
//
// # HTTP Middleware
//
// Middleware wires the limiter into an HTTP handler chain, setting the
// conventional X-RateLimit-Limit, X-RateLimit-Remaining and X-RateLimit-Reset
// headers and answering rejected requests with 429 and Retry-After.
package fixedwindow
