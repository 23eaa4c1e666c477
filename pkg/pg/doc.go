// Package pg provides PostgreSQL connectivity for the durable rate-limit
// backend: pool construction with retry, health checking, and goose-driven
// schema migrations for the rate_limits table.
package pg
