// Package cache provides byte-level caching for index responses and
// downloaded artifacts.
//
// Three backends are available:
//   - FileCache: persistent on-disk cache for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: no-op backend for tests or --no-cache runs
//
// The package also carries the retry helpers used by HTTP clients, so
// transient network failures and cache policy live in one place.
package cache

import (
	"context"
	"time"
)

// Cache is the interface implemented by all cache backends.
// Values are opaque byte slices; callers handle serialization.
type Cache interface {
	// Get retrieves a value. The second return value reports whether
	// the key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero or negative ttl means the
	// entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}
