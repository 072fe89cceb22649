// Package cache memoizes adapter responses by source key.
package cache

import (
	"context"
	"time"
)

// Store holds serialized snapshots keyed by source name.
type Store interface {
	// Get returns the stored value and whether it was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value for ttl. A zero ttl never expires.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}
