// Package cache provides shared caching backends for reference-data
// catalogs and other expensive-to-fetch values.
//
// The [Cache] interface has four implementations:
//   - MemoryCache: process-local, for single-session CLI use and tests
//   - FileCache: persistent across sessions, for CLI use
//   - RedisCache: shared across server instances, for `civmod serve`
//   - NullCache: no-op, for disabling caching entirely
//
// All values are opaque byte slices; callers handle serialization. Entries
// carry an optional TTL (0 means no expiration).
package cache

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for caching operations.
var (
	// ErrNotFound is returned when a requested item does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCacheMiss is returned when an item is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)

// Cache stores opaque byte values under string keys with optional TTL.
//
// Get returns (data, true, nil) on a hit and (nil, false, nil) on a miss.
// Errors are reserved for backend failures (I/O, network); a miss is not
// an error.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}
