// Package cache stores rendered artifacts keyed by plan and render options.
//
// Solving is cheap and always recomputed; rendering a page at print
// resolution or tracing a DXF profile is not, so the pipeline caches the
// encoded bytes. Three backends implement [Cache]:
//
//   - [FileCache]: one file per entry under the user cache directory (CLI)
//   - [RedisCache]: shared cache for `shelfmount serve` replicas
//   - [NullCache]: disables caching
//
// Keys come from a [Keyer], which hashes the plan and the options that
// affect the output.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts are kept.
const DefaultTTL = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value and true on a hit. Misses and expired entries
	// return false with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}

// Clearer is implemented by caches that can drop every entry.
type Clearer interface {
	Clear(ctx context.Context) error
}
