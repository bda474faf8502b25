package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/tetraptych/etymoscope-kiro/pkg/cache"
	"github.com/tetraptych/etymoscope-kiro/pkg/observability"
	"github.com/tetraptych/etymoscope-kiro/pkg/sampling"
)

type tablePointer = atomic.Pointer[sampling.Table]

// SamplingTable returns the currently installed table.
// The second return is false when no table has been installed yet.
func (e *Engine) SamplingTable() (sampling.Table, bool) {
	if t := e.table.Load(); t != nil {
		return *t, true
	}
	return sampling.Table{}, false
}

// SetSamplingTable installs a table, replacing any current one atomically.
// Concurrent RandomWord callers see either the old or the new table.
func (e *Engine) SetSamplingTable(t sampling.Table) {
	e.table.Store(&t)
}

// LoadSamplingTable installs a sampling table from cache when one exists
// for this index, rebuilding otherwise. Use it at startup to avoid sizing
// every word on every boot.
func (e *Engine) LoadSamplingTable(ctx context.Context) (sampling.Table, error) {
	key := e.tableKey()
	if data, hit, err := e.Cache.Get(ctx, key); err == nil && hit {
		if t, err := sampling.UnmarshalTable(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "table")
			e.table.Store(&t)
			e.Logger.Debug("sampling table cache hit", "words", t.Len())
			return t, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "table")
	return e.RebuildSamplingTable(ctx)
}

// RebuildSamplingTable recomputes the sampling table from the index, swaps
// it in atomically, and caches it keyed to the index fingerprint. This is
// the administrative operation behind the offline precompute job; request
// traffic never triggers it.
func (e *Engine) RebuildSamplingTable(ctx context.Context) (sampling.Table, error) {
	start := time.Now()
	t, err := sampling.Compute(ctx, e.index, e.sizing)
	observability.Engine().OnTableRebuild(ctx, t.Len(), time.Since(start), err)
	if err != nil {
		return sampling.Table{}, err
	}

	e.table.Store(&t)
	if data, err := sampling.MarshalTable(t); err == nil {
		_ = e.Cache.Set(ctx, e.tableKey(), data, cache.TTLTable)
		observability.Cache().OnCacheSet(ctx, "table", len(data))
	}

	e.Logger.Info("rebuilt sampling table",
		"words", t.Len(),
		"totalWeight", t.TotalWeight,
		"duration", time.Since(start))
	return t, nil
}

func (e *Engine) tableKey() string {
	opts := e.sizing.WithDefaults()
	return e.Keyer.TableKey(e.index.Fingerprint(), cache.TableKeyOpts{
		SizingDepth: opts.SizingDepth,
		NodeCap:     opts.NodeCap,
	})
}
