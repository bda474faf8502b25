package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several deployments or datasets share one cache
// backend and need separate key spaces.
//
// Example usage:
//
//	// Dataset-specific keys
//	enKeyer := NewScopedKeyer(NewDefaultKeyer(), "dataset:en:")
//
//	// Global keys
//	globalKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP payload caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// GraphKey generates a prefixed key for graph response caching.
func (k *ScopedKeyer) GraphKey(word string, opts GraphKeyOpts) string {
	return k.prefix + k.inner.GraphKey(word, opts)
}

// TableKey generates a prefixed key for sampling table caching.
func (k *ScopedKeyer) TableKey(indexHash string, opts TableKeyOpts) string {
	return k.prefix + k.inner.TableKey(indexHash, opts)
}
