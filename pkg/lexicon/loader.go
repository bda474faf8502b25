package lexicon

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Loader memoizes a single index load for the lifetime of the process.
//
// Concurrent first calls collapse into one fetch: every caller blocks on the
// same underlying load and shares its result. A failed load is not cached,
// so the next call retries the source. After one success the index is served
// from memory forever; the loader never reloads.
type Loader struct {
	src   Source
	group singleflight.Group

	mu    sync.RWMutex
	index *Index
}

// NewLoader creates a loader for the given source.
func NewLoader(src Source) *Loader {
	return &Loader{src: src}
}

// Load returns the memoized index, fetching it on first use.
func (l *Loader) Load(ctx context.Context) (*Index, error) {
	l.mu.RLock()
	ix := l.index
	l.mu.RUnlock()
	if ix != nil {
		return ix, nil
	}

	v, err, _ := l.group.Do("load", func() (any, error) {
		// A previous flight may have completed while we queued.
		l.mu.RLock()
		ix := l.index
		l.mu.RUnlock()
		if ix != nil {
			return ix, nil
		}

		loaded, err := Load(ctx, l.src)
		if err != nil {
			return nil, err
		}

		l.mu.Lock()
		l.index = loaded
		l.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Index), nil
}
