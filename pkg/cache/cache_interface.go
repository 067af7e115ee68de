package cache

import (
	"context"
	"time"
)

// Cache is the read-through cache contract used by the repositories.
// Implementations must treat a miss as (false, nil), not as an error.
type Cache interface {
	// Get looks up key and unmarshals the stored value into dest.
	// Returns true on a hit; dest is untouched on a miss.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes all keys matching a glob pattern.
	DeletePattern(ctx context.Context, pattern string) error

	// Ping verifies the backing store is reachable.
	Ping(ctx context.Context) error
}
