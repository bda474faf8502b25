// Package pkg provides the core libraries for etymoscope etymology graphs.
//
// # Overview
//
// Etymoscope turns a word dictionary into an explorable graph: every word is
// a node, every related-word link an edge. The pkg directory is organized
// into four main areas:
//
//  1. [lexicon] - The immutable word index and its data sources
//  2. [graph] - Graph construction, hub pruning, and serialization
//  3. [sampling] - Weighted random-word tables and their precomputation
//  4. [engine] - Orchestration (lookups, graph queries, caching, sampling)
//
// # Architecture
//
// The typical data flow:
//
//	Word dataset (file, URL, or MongoDB)
//	         ↓
//	    [lexicon] package (normalize + index)
//	         ↓
//	    [graph] package (breadth-first build + hub pruning)
//	         ↓
//	    [engine] package (caching, sampling, query API)
//	         ↓
//	    JSON/DOT output, HTTP API, terminal UI
//
// # Quick Start
//
// Load a dataset and build a word's neighborhood graph:
//
//	import (
//	    "context"
//	    "github.com/tetraptych/etymoscope-kiro/pkg/engine"
//	    "github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
//	)
//
//	index, _ := lexicon.Load(context.Background(), lexicon.FileSource{Path: "words.json"})
//	eng, _ := engine.New(index, engine.Options{})
//	defer eng.Close()
//
//	g, _ := eng.GetGraph(context.Background(), "water", 2)
//	fmt.Printf("%d nodes, %d edges\n", g.NodeCount(), g.EdgeCount())
//
// # Main Packages
//
// [lexicon] - Immutable word → entry index. Normalizes words, canonicalizes
// entries, and fingerprints datasets so caches never mix data from different
// sources. Sources: local JSON files, HTTP downloads with retry and caching,
// and MongoDB collections.
//
// [graph] - Undirected neighborhood graphs built breadth-first from a root
// word, with depth limits and multi-parent handling. Hub pruning removes
// overly connected words to a fixpoint. Exports JSON and Graphviz DOT.
//
// [sampling] - Cumulative-weight tables for drawing random words biased
// toward well-connected ones. Precomputation sizes every word's graph on a
// worker pool and is meant to run offline (see the stats command).
//
// [engine] - Ties the above together behind one query API: graph queries
// with cache-first reads, entry lookups, and weighted random words with
// graceful fallbacks when no table is loaded.
//
// ## Infrastructure
//
// [cache] - Result cache interface with file, Redis, and null backends, plus
// cache key construction scoped by dataset fingerprint.
//
// [httputil] - HTTP fetch helpers: retry with exponential backoff and a
// TTL-based response cache for dataset downloads.
//
// [errors] - Coded errors (INVALID_WORD, WORD_NOT_FOUND, DATA_FORMAT, ...)
// with user-safe messages, plus input validation helpers.
//
// [observability] - Hook interfaces for engine, cache, and upstream HTTP
// events. The metrics layer installs Prometheus-backed hooks; everything
// else stays dependency-free.
//
// [buildinfo] - Version metadata injected at build time via ldflags.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/graph/...              # Specific package
//	go test -tags integration ./pkg/...  # Include integration tests
//
// [lexicon]: https://pkg.go.dev/github.com/tetraptych/etymoscope-kiro/pkg/lexicon
// [graph]: https://pkg.go.dev/github.com/tetraptych/etymoscope-kiro/pkg/graph
// [sampling]: https://pkg.go.dev/github.com/tetraptych/etymoscope-kiro/pkg/sampling
// [engine]: https://pkg.go.dev/github.com/tetraptych/etymoscope-kiro/pkg/engine
// [cache]: https://pkg.go.dev/github.com/tetraptych/etymoscope-kiro/pkg/cache
// [httputil]: https://pkg.go.dev/github.com/tetraptych/etymoscope-kiro/pkg/httputil
// [errors]: https://pkg.go.dev/github.com/tetraptych/etymoscope-kiro/pkg/errors
// [observability]: https://pkg.go.dev/github.com/tetraptych/etymoscope-kiro/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/tetraptych/etymoscope-kiro/pkg/buildinfo
package pkg
