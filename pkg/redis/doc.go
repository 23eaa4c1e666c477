// Package redis provides Redis connectivity for the external-cache
// rate-limit backend: client construction with retry and health checking.
package redis
