// Package adapter defines the contract for an optional external key-value
// backend used opportunistically alongside the local store.
package adapter

import (
	"context"
	"time"
)

// Adapter is a pluggable persistent backend. Every call is independently
// fallible; the cache catches failures, logs them, and degrades to the local
// store rather than propagating them. A Get on an absent key returns
// models.ErrKeyNotFound so callers can tell a clean miss from a backend
// failure.
//
// Timeouts and cancellation are the adapter's own responsibility; the cache
// core imposes none beyond the context it passes through.
type Adapter interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Del(ctx context.Context, key string) (bool, error)

	// Clear bulk-deletes every backend key matching the shell-glob
	// pattern ("*" clears everything).
	Clear(ctx context.Context, pattern string) error

	// Ping reports whether the backend is reachable. Called once at
	// construction; a failure pins the cache to local-only mode for the
	// process lifetime.
	Ping(ctx context.Context) error

	Close() error
}
