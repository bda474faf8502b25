package graph

// =============================================================================
// Pruner - Hub Subtree Removal
// =============================================================================

// HubThreshold is the number of distinct children at which a non-root node
// is treated as a hub and its children are pruned away.
const HubThreshold = 80

// Prune removes the subtrees hanging off hub nodes and returns the reduced
// graph. The input is not modified.
//
// Parent/child pairs are derived from the edges: the endpoint with the
// strictly smaller depth is the parent. Edges between equal-depth nodes
// carry no parent/child relationship and never contribute to hub detection
// or removal.
//
// A hub is any node at depth 1 or greater with at least HubThreshold
// distinct children. All children of every hub are marked for removal, and
// the mark propagates: children of removed nodes are removed too, to a
// fixed point. A removed node disappears along with every edge that touches
// it. Surviving nodes and edges keep their relative order, so pruning a
// graph twice gives the same bytes as pruning it once.
//
// The root sits at depth 0 and can never be anyone's child, so it always
// survives.
func Prune(g Graph) Graph {
	depths := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		depths[n.ID] = n.Depth
	}

	children := make(map[string][]string)
	seenPairs := make(map[[2]string]bool)
	for _, e := range g.Edges {
		df, okFrom := depths[e.From]
		dt, okTo := depths[e.To]
		if !okFrom || !okTo {
			continue
		}
		var parent, child string
		switch {
		case df < dt:
			parent, child = e.From, e.To
		case dt < df:
			parent, child = e.To, e.From
		default:
			continue
		}
		pair := [2]string{parent, child}
		if seenPairs[pair] {
			continue
		}
		seenPairs[pair] = true
		children[parent] = append(children[parent], child)
	}

	removed := make(map[string]bool)
	for parent, kids := range children {
		if depths[parent] >= 1 && len(kids) >= HubThreshold {
			for _, k := range kids {
				removed[k] = true
			}
		}
	}

	// Removal is transitive over the parent/child relation.
	for {
		changed := false
		for parent, kids := range children {
			if !removed[parent] {
				continue
			}
			for _, k := range kids {
				if !removed[k] {
					removed[k] = true
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}

	if len(removed) == 0 {
		return g
	}

	out := Graph{
		Nodes: make([]Node, 0, len(g.Nodes)),
		Edges: make([]Edge, 0, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		if !removed[n.ID] {
			out.Nodes = append(out.Nodes, n)
		}
	}
	for _, e := range g.Edges {
		if !removed[e.From] && !removed[e.To] {
			out.Edges = append(out.Edges, e)
		}
	}
	return out
}
