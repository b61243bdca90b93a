// Package httputil provides HTTP utilities for the backend gateway client.
//
// # Overview
//
// This package provides infrastructure shared by everything that talks to
// the civmod backend service:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/civmod/) with
// configurable TTL. Reference-data catalogs rarely change, so caching them
// across editing sessions avoids re-fetching the same enumerations on every
// launch.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, _ := cache.Get("refdata:effects", &catalog)
//	if !ok {
//	    catalog = fetchFromBackend()
//	    cache.Set("refdata:effects", catalog)
//	}
//
// Cache keys should be namespaced by data source to avoid collisions.
//
// # Retry
//
// [Retry] wraps requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// It uses exponential backoff, doubling the delay after each attempt.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/civmod/
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `civmod cache clear` or by deleting the
// cache directory.
package httputil
