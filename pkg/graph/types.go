package graph

import "encoding/json"

// =============================================================================
// Graph - Etymology Graph Serialization
// =============================================================================

// Graph is the canonical serialization format for etymology graphs.
// Used for API responses, storage, caching, and file export.
//
// The format is stable and deterministic: building the same graph twice
// produces byte-identical JSON, so cached responses compare equal to
// freshly computed ones.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// NodeCount returns the number of nodes in the graph.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges in the graph.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// IsEmpty reports whether the graph has no nodes.
func (g Graph) IsEmpty() bool { return len(g.Nodes) == 0 }

// Node returns the node with the given ID, if present.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// HasEdge reports whether an edge exists between a and b, in either
// stored direction.
func (g Graph) HasEdge(a, b string) bool {
	for _, e := range g.Edges {
		if (e.From == a && e.To == b) || (e.From == b && e.To == a) {
			return true
		}
	}
	return false
}

// =============================================================================
// Node - A Word in the Graph
// =============================================================================

// Node is one word in a built graph. ID and Word carry the same canonical
// (lowercased, trimmed) form; ID exists so the wire format matches the
// node-link convention used by graph tooling.
//
// RelatedWords is the entry's raw reference list, unfiltered: it may name
// words outside the graph or outside the index entirely.
type Node struct {
	ID           string   `json:"id" bson:"id"`
	Word         string   `json:"word" bson:"word"`
	Definition   string   `json:"definition" bson:"definition"`
	Depth        int      `json:"depth" bson:"depth"`
	RelatedWords []string `json:"relatedWords" bson:"relatedWords"`
}

// =============================================================================
// Edge - An Etymological Relation
// =============================================================================

// Edge connects two related words. Edges are undirected in meaning; From
// is merely the endpoint whose expansion discovered the relation. At most
// one edge exists per unordered pair.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
}

// UnmarshalGraph deserializes JSON bytes to a Graph.
func UnmarshalGraph(data []byte) (Graph, error) {
	var g Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return Graph{}, err
	}
	return g, nil
}
