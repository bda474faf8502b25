// Package httputil provides HTTP utilities for fetching remote word data.
//
// # Overview
//
// This package provides infrastructure used by the remote dictionary sources:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores fetched documents in the filesystem (~/.cache/etymoscope/)
// with configurable TTL. This speeds up repeated CLI invocations and avoids
// re-downloading a word table that rarely changes.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 24*time.Hour)
//	ok, err := cache.Get("words:"+url, &data)  // Check cache
//	if !ok {
//	    data = fetchFromURL()
//	    cache.Set("words:"+url, data)          // Store for later
//	}
//
// Cache keys should be namespaced by content type to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// It uses exponential backoff to avoid hammering a struggling server:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchOnce()
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/etymoscope/
//   - Default TTL: 24 hours
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `etymoscope cache clear` or by deleting
// the cache directory.
package httputil
