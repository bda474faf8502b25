// Package graph builds and serializes etymology graphs.
//
// This package defines the canonical wire format for Etymoscope's graph data,
// used for JSON files, API responses, and caching, along with the two
// operations that produce it: the breadth-first builder and the hub pruner.
//
// # Core Types
//
//   - [Graph]: Node-link format for etymology neighborhoods
//   - [Node], [Edge]: Shared structural types
//   - [Builder]: Depth-bounded breadth-first construction from a word index
//
// # Building
//
// A graph is built outward from a root word, following relatedWords
// references in both directions of discovery (edges are undirected):
//
//	b := graph.NewBuilder(index)
//	g := b.Build("water", 2)
//
// Each reachable word appears once, tagged with the depth at which the
// traversal first found it. References to words absent from the index are
// skipped silently. An unknown root yields an empty graph, not an error.
//
// # Pruning
//
// Dense graphs route through hub words ("language", "word") that drag in
// hundreds of unrelated terms. [Prune] removes the subtrees hanging off any
// non-root node with [HubThreshold] or more distinct children:
//
//	pruned := graph.Prune(g)
//
// # Graph Serialization
//
// Graphs use a simple node-link JSON format:
//
//	{
//	  "nodes": [{"id": "water", "word": "water", "depth": 0, ...}],
//	  "edges": [{"from": "water", "to": "aqua"}]
//	}
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("water.json")   // File → Graph
//	graph.WriteGraphFile(g, "output.json")      // Graph → File
//	data, _ := graph.MarshalGraph(g)            // Graph → []byte
//	parsed, _ := graph.UnmarshalGraph(data)     // []byte → Graph
//
// Marshaling is deterministic: the same graph always produces the same
// bytes, so cached and freshly built responses compare equal.
//
// # Concurrency
//
// Graph values are plain data. A [Builder] is safe for concurrent use; it
// only reads the index it was built with.
package graph
