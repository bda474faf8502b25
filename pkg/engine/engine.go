// Package engine ties the word index, graph builder, hub pruner, and
// sampling table into the query surface served to CLI and HTTP callers.
//
// # Architecture
//
// The engine exposes four operations:
//
//  1. GetGraph: build the depth-bounded, hub-pruned graph for a word
//  2. GetEntry: look up a single dictionary entry
//  3. RandomWord: draw a weighted random word
//  4. RebuildSamplingTable: recompute the sampling table (administrative)
//
// Query operations are pure reads against structures built once at startup,
// so one Engine serves unbounded concurrent callers without locking. The
// sampling table is the only swappable piece and is replaced atomically.
//
// # Usage
//
// Create an Engine around a loaded index and query it:
//
//	eng, err := engine.New(index, engine.Options{Cache: c, Logger: logger})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	g, err := eng.GetGraph(ctx, "water", 2)
//
// An empty graph means the word is unknown; it is not an error.
//
// # Caching
//
// Graph responses and sampling tables are cached through [cache.Cache].
// All keys are scoped to the index fingerprint, so a cache that outlives a
// dataset swap can never serve artifacts computed from old data.
package engine

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tetraptych/etymoscope-kiro/pkg/cache"
	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
	"github.com/tetraptych/etymoscope-kiro/pkg/graph"
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
	"github.com/tetraptych/etymoscope-kiro/pkg/sampling"
)

// DefaultMaxDepth is the deepest traversal interactive queries may request.
// Depth 3 graphs on a dense dictionary already run to hundreds of nodes.
const DefaultMaxDepth = 3

// Options configures engine construction.
type Options struct {
	// MaxDepth bounds graph traversal depth. Defaults to DefaultMaxDepth.
	MaxDepth int

	// SizingDepth and NodeCap configure sampling table rebuilds.
	// Zero values take the sampling package defaults.
	SizingDepth int
	NodeCap     int

	// Table is an optional precomputed sampling table to start with.
	// Without one, RandomWord serves from the degraded fallback until
	// LoadSamplingTable or RebuildSamplingTable installs a table.
	Table *sampling.Table

	// Cache stores graph responses and sampling tables.
	// If nil, a NullCache is used (caching disabled).
	Cache cache.Cache

	// Keyer generates cache keys. If nil, a DefaultKeyer is used.
	Keyer cache.Keyer

	// CacheTTL bounds how long cached graph responses live.
	// Zero means cache.TTLGraph. Sampling tables always use cache.TTLTable.
	CacheTTL time.Duration

	// Logger receives engine activity. If nil, logging is discarded.
	Logger *log.Logger

	// Random returns a uniform value in [0, 1) for sampling draws.
	// Defaults to math/rand/v2. Tests inject a deterministic source.
	Random func() float64

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.MaxDepth == 0 {
		o.MaxDepth = DefaultMaxDepth
	}
	if o.MaxDepth < 1 {
		return errors.New(errors.ErrCodeInvalidDepth, "max depth must be at least 1, got %d", o.MaxDepth)
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.CacheTTL == 0 {
		o.CacheTTL = cache.TTLGraph
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Random == nil {
		o.Random = rand.Float64
	}
	o.validated = true
	return nil
}

// Engine answers word, graph, and sampling queries against one immutable
// index. Safe for concurrent use.
type Engine struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	index    *lexicon.Index
	builder  *graph.Builder
	maxDepth int
	cacheTTL time.Duration
	sizing   sampling.Options
	random   func() float64

	table tablePointer
}

// New creates an Engine over the given index.
//
// The keyer is wrapped with a scope derived from the index fingerprint, so
// cache entries are bound to the exact dataset they were computed from.
func New(index *lexicon.Index, opts Options) (*Engine, error) {
	if index == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "index is required")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	scope := "ds:" + index.Fingerprint()[:12] + ":"
	e := &Engine{
		Cache:    opts.Cache,
		Keyer:    cache.NewScopedKeyer(opts.Keyer, scope),
		Logger:   opts.Logger,
		index:    index,
		builder:  graph.NewBuilder(index),
		maxDepth: opts.MaxDepth,
		cacheTTL: opts.CacheTTL,
		sizing: sampling.Options{
			SizingDepth: opts.SizingDepth,
			NodeCap:     opts.NodeCap,
		},
		random: opts.Random,
	}
	if opts.Table != nil {
		e.table.Store(opts.Table)
	}
	return e, nil
}

// Index returns the engine's word index.
func (e *Engine) Index() *lexicon.Index { return e.index }

// MaxDepth returns the largest depth GetGraph will traverse.
// Calling layers reject deeper requests; the engine itself clamps.
func (e *Engine) MaxDepth() int { return e.maxDepth }

// Close releases resources held by the engine (primarily the cache).
func (e *Engine) Close() error {
	if e.Cache != nil {
		return e.Cache.Close()
	}
	return nil
}

func (e *Engine) clampDepth(depth int) int {
	if depth < 1 {
		return 1
	}
	if depth > e.maxDepth {
		return e.maxDepth
	}
	return depth
}
