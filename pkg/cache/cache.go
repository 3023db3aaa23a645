// Package cache stores rendered figures so repeated requests for the same
// demo and options skip drawing.
//
// Three implementations are provided:
//   - FileCache: JSON entries under a directory, used by the CLI
//   - MemoryCache: an in-process map, used by the HTTP server
//   - NullCache: stores nothing, used when caching is disabled
//
// Keys come from ArtifactKey, which hashes the demo name and the options
// that influence the output bytes. Scoped prefixes every key, for example
// with the build version so a new release never serves stale artifacts.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is how long rendered artifacts stay valid.
const DefaultTTL = 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the data stored under key. hit is false for missing or
	// expired entries.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	Close() error
}
