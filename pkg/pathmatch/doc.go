// Package pathmatch compiles glob-style path patterns into matchers.
//
// A pattern matches request paths literally except for two wildcards:
// `*` matches any run of characters within a single path segment, and
// `**` matches any run of characters including segment separators.
//
//	m, err := pathmatch.Compile("/api/ai/*")
//	m.Match("/api/ai/chat")        // true
//	m.Match("/api/ai/chat/stream") // false
//
// Compiled matchers are cheap to reuse. For configuration-driven pattern
// sets, a Cache amortizes compilation across repeated lookups:
//
//	cache := pathmatch.NewCache()
//	m, err := cache.Get("/api/**")
//
// Each Cache instance owns its own compiled patterns, so independently
// configured components never share cache state.
package pathmatch
