// Package limitkit provides embeddable fixed-window request rate limiting
// for Go services.
//
// The module is built to sit inside a request-handling pipeline: an API
// gateway, auth layer, or middleware chain supplies the request path,
// client IP and, optionally, the authenticated user, and limitkit decides
// whether the request is admitted under its path's quota.
//
// Key Features:
//
//   - Fixed-window counting with non-sliding reset times
//   - Per-path rules with glob patterns, first-match-wins priority, and
//     per-path disablement
//   - Identity detection by client IP, authenticated user, or both
//   - Pluggable storage: in-process memory, PostgreSQL, or an external
//     TTL cache such as Redis
//   - Fail-open degradation: storage failures admit traffic instead of
//     blocking it
//
// The core lives in pkg/fixedwindow; pkg/pg and pkg/redis provide backend
// connectivity, pkg/rules and pkg/pathmatch the rule engine, and
// pkg/config and pkg/logger the configuration and logging plumbing.
//
// Basic Usage:
//
//	store := fixedwindow.NewMemoryStore(time.Minute)
//	defer store.Close()
//
//	limiter, err := fixedwindow.New(store, fixedwindow.Config{
//		Window:      time.Minute,
//		MaxRequests: 100,
//		Mode:        fixedwindow.ModeIP,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	http.Handle("/", fixedwindow.Middleware(limiter)(mux))
package limitkit
