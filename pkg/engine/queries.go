package engine

import (
	"context"
	"time"

	"github.com/tetraptych/etymoscope-kiro/pkg/cache"
	"github.com/tetraptych/etymoscope-kiro/pkg/graph"
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
	"github.com/tetraptych/etymoscope-kiro/pkg/observability"
	"github.com/tetraptych/etymoscope-kiro/pkg/sampling"
)

// GetGraph builds the pruned etymology graph for a word.
//
// The word is normalized first; an unknown word yields an empty graph, not
// an error. Depth is clamped into [1, MaxDepth]; rejecting out-of-range
// requests with an error is the calling layer's job. Results are cached,
// and repeated calls with identical arguments produce byte-identical
// serializations.
func (e *Engine) GetGraph(ctx context.Context, word string, depth int) (graph.Graph, error) {
	g, _, err := e.GetGraphWithCacheInfo(ctx, word, depth)
	return g, err
}

// GetGraphWithCacheInfo is GetGraph plus whether the result came from cache.
func (e *Engine) GetGraphWithCacheInfo(ctx context.Context, word string, depth int) (graph.Graph, bool, error) {
	w := lexicon.Normalize(word)
	depth = e.clampDepth(depth)
	observability.Engine().OnGraphStart(ctx, w, depth)
	start := time.Now()

	if _, ok := e.index.Lookup(w); !ok {
		g := graph.Graph{Nodes: []graph.Node{}, Edges: []graph.Edge{}}
		observability.Engine().OnGraphComplete(ctx, w, depth, 0, 0, time.Since(start), nil)
		return g, false, nil
	}

	cacheKey := e.Keyer.GraphKey(w, cache.GraphKeyOpts{
		Depth:        depth,
		HubThreshold: graph.HubThreshold,
	})

	if data, hit, err := e.Cache.Get(ctx, cacheKey); err == nil && hit {
		if g, err := graph.UnmarshalGraph(data); err == nil {
			observability.Cache().OnCacheHit(ctx, "graph")
			observability.Engine().OnGraphComplete(ctx, w, depth, g.NodeCount(), 0, time.Since(start), nil)
			e.Logger.Debug("graph cache hit", "word", w, "depth", depth, "nodes", g.NodeCount())
			return g, true, nil
		}
		// Undecodable cache entries fall through to a rebuild.
	}
	observability.Cache().OnCacheMiss(ctx, "graph")

	built := e.builder.Build(w, depth)
	pruned := graph.Prune(built)
	prunedCount := built.NodeCount() - pruned.NodeCount()

	if data, err := graph.MarshalGraph(pruned); err == nil {
		_ = e.Cache.Set(ctx, cacheKey, data, e.cacheTTL)
		observability.Cache().OnCacheSet(ctx, "graph", len(data))
	}

	duration := time.Since(start)
	observability.Engine().OnGraphComplete(ctx, w, depth, pruned.NodeCount(), prunedCount, duration, nil)
	e.Logger.Info("built graph",
		"word", w,
		"depth", depth,
		"nodes", pruned.NodeCount(),
		"edges", pruned.EdgeCount(),
		"pruned", prunedCount,
		"duration", duration)

	return pruned, false, nil
}

// GetEntry returns the dictionary entry for a word.
// The second return is false when the word is not in the index.
func (e *Engine) GetEntry(ctx context.Context, word string) (lexicon.Entry, bool) {
	entry, found := e.index.Lookup(word)
	observability.Engine().OnLookup(ctx, found)
	return entry, found
}

// RandomWord draws a weighted random word.
//
// With a sampling table installed, the probability of each word is its
// connection count over the table's total weight. Without one (or when the
// table is empty), the first index word with related words is returned,
// then the first index word outright. The second return is false only when
// the index is empty.
func (e *Engine) RandomWord(ctx context.Context) (string, bool) {
	return e.RandomWordAt(ctx, e.random())
}

// RandomWordAt is RandomWord with the random unit supplied by the caller.
// Callers that need reproducible draws (seeded CLIs, tests) pass their own
// value in [0, 1).
func (e *Engine) RandomWordAt(ctx context.Context, randomUnit float64) (string, bool) {
	if t := e.table.Load(); t != nil {
		if w, ok := t.Sample(randomUnit); ok {
			observability.Engine().OnSample(ctx, true)
			return w, true
		}
	}

	if w, ok := sampling.FirstConnected(e.index); ok {
		observability.Engine().OnSample(ctx, false)
		return w, true
	}
	if e.index.Len() > 0 {
		observability.Engine().OnSample(ctx, false)
		return e.index.Words()[0], true
	}
	return "", false
}
