// Package cache provides pluggable byte caching for engine results.
//
// The [Cache] interface abstracts over storage backends (file, Redis, or
// none) so the engine and server can cache expensive artifacts without
// knowing where the bytes live. Keys are produced by a [Keyer] so that all
// components agree on the key schema and version bumps invalidate cleanly.
//
// Cached artifact types:
//   - Graph responses: built and pruned etymology graphs, keyed by word
//     and build options.
//   - Sampling tables: precomputed random-word tables, keyed by a hash of
//     the word index and the precompute options.
//   - HTTP payloads: fetched remote word data, keyed by namespace and URL.
package cache

import (
	"context"
	"time"
)

// Default TTLs for cached artifact types.
//
// Graph responses are cheap to rebuild but requested often, so they get a
// moderate TTL. Sampling tables are expensive to rebuild and only change
// when the underlying word data changes, so they keep a long TTL. HTTP
// payloads follow the upstream data refresh cadence.
const (
	// TTLGraph is the time-to-live for cached graph responses.
	TTLGraph = 24 * time.Hour

	// TTLTable is the time-to-live for cached sampling tables.
	TTLTable = 7 * 24 * time.Hour

	// TTLHTTP is the time-to-live for cached HTTP payloads.
	TTLHTTP = 24 * time.Hour
)

// Cache is the interface all cache backends implement.
//
// Implementations must be safe for concurrent use. A miss is reported via
// the bool return, not an error; errors are reserved for backend failures
// (I/O errors, network errors). Callers should treat errors as misses and
// continue without the cache.
type Cache interface {
	// Get retrieves a value. Returns (data, true, nil) on a hit and
	// (nil, false, nil) on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKeyOpts captures the build options that affect a graph response.
// Two requests with different options must never share a cache entry.
type GraphKeyOpts struct {
	Depth        int `json:"depth"`
	HubThreshold int `json:"hub_threshold"`
}

// TableKeyOpts captures the precompute options that affect a sampling table.
type TableKeyOpts struct {
	SizingDepth int `json:"sizing_depth"`
	NodeCap     int `json:"node_cap"`
}

// Keyer generates cache keys for the different artifact types.
//
// Implementations must be deterministic: the same inputs always produce the
// same key. The default implementation hashes inputs with SHA-256 so that
// arbitrary words and URLs become safe, fixed-length keys.
type Keyer interface {
	// HTTPKey generates a key for a cached HTTP payload.
	HTTPKey(namespace, key string) string

	// GraphKey generates a key for a cached graph response.
	GraphKey(word string, opts GraphKeyOpts) string

	// TableKey generates a key for a cached sampling table. The indexHash
	// identifies the word index the table was computed from.
	TableKey(indexHash string, opts TableKeyOpts) string
}

// DefaultKeyer is the standard key schema.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// HTTPKey generates a key for HTTP payload caching.
// The key format is: http:namespace:key
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// GraphKey generates a key for graph response caching.
func (k *DefaultKeyer) GraphKey(word string, opts GraphKeyOpts) string {
	return hashKey("graph", word, opts)
}

// TableKey generates a key for sampling table caching.
func (k *DefaultKeyer) TableKey(indexHash string, opts TableKeyOpts) string {
	return hashKey("table", indexHash, opts)
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)
