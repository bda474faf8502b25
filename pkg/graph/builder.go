package graph

import (
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
)

// =============================================================================
// Builder - Breadth-First Graph Construction
// =============================================================================

// Builder constructs depth-bounded etymology graphs from a word index.
// A Builder is stateless between calls and safe for concurrent use.
type Builder struct {
	index *lexicon.Index
}

// NewBuilder returns a Builder that traverses the given index.
func NewBuilder(index *lexicon.Index) *Builder {
	return &Builder{index: index}
}

// queueItem is one pending expansion in the traversal.
type queueItem struct {
	word  string
	depth int
}

// Build performs a breadth-first traversal out to maxDepth and returns the
// resulting graph.
//
// The root is normalized before lookup; an unknown root yields an empty
// graph. Every discovered word appears as exactly one node, tagged with the
// depth at which the traversal first reached it, shortest paths winning by
// construction. Related words that normalize to something outside the index
// are skipped silently.
//
// Edges connect a dequeued word to each in-index related word that is
// already part of the traversal or joins it now. A neighbor first seen from
// depth maxDepth would land beyond the bound, so it contributes neither a
// node nor an edge. At most one edge is kept per unordered pair, whichever
// expansion discovered it first.
//
// The traversal is deterministic: queue order follows discovery order, and
// discovery order follows each entry's relatedWords order.
func (b *Builder) Build(root string, maxDepth int) Graph {
	start := lexicon.Normalize(root)
	if _, ok := b.index.Lookup(start); !ok {
		return Graph{Nodes: []Node{}, Edges: []Edge{}}
	}

	g := Graph{Nodes: []Node{}, Edges: []Edge{}}
	visited := map[string]bool{start: true}
	seenEdges := make(map[[2]string]bool)
	queue := []queueItem{{word: start, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth > maxDepth {
			continue
		}

		entry, _ := b.index.Lookup(cur.word)
		g.Nodes = append(g.Nodes, Node{
			ID:           cur.word,
			Word:         cur.word,
			Definition:   entry.Definition,
			Depth:        cur.depth,
			RelatedWords: entry.RelatedWords,
		})

		for _, related := range entry.RelatedWords {
			next := lexicon.Normalize(related)
			if _, ok := b.index.Lookup(next); !ok {
				continue
			}
			if !visited[next] {
				if cur.depth+1 > maxDepth {
					continue
				}
				visited[next] = true
				queue = append(queue, queueItem{word: next, depth: cur.depth + 1})
			}
			key := pairKey(cur.word, next)
			if !seenEdges[key] {
				seenEdges[key] = true
				g.Edges = append(g.Edges, Edge{From: cur.word, To: next})
			}
		}
	}

	return g
}

// ReachableWithin counts the distinct words reachable from root within
// maxDepth hops. The traversal rule is the same as Build's, so the count
// equals Build's node count for the same arguments, but nothing is
// materialized. An unknown root yields 0.
func (b *Builder) ReachableWithin(root string, maxDepth int) int {
	start := lexicon.Normalize(root)
	if _, ok := b.index.Lookup(start); !ok {
		return 0
	}
	if maxDepth < 0 {
		return 0
	}

	visited := map[string]bool{start: true}
	queue := []queueItem{{word: start, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.depth >= maxDepth {
			continue
		}

		entry, _ := b.index.Lookup(cur.word)
		for _, related := range entry.RelatedWords {
			next := lexicon.Normalize(related)
			if visited[next] {
				continue
			}
			if _, ok := b.index.Lookup(next); !ok {
				continue
			}
			visited[next] = true
			queue = append(queue, queueItem{word: next, depth: cur.depth + 1})
		}
	}

	return len(visited)
}

// pairKey returns a canonical key for an unordered word pair.
func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
