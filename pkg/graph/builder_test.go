package graph

import (
	"bytes"
	"slices"
	"testing"

	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		words     map[string]lexicon.Entry
		root      string
		depth     int
		wantNodes int
		wantEdges int
		check     func(t *testing.T, g Graph)
	}{
		{
			name: "SingleHop",
			words: map[string]lexicon.Entry{
				"a": {Definition: "A", RelatedWords: []string{"b", "c"}},
				"b": {Definition: "B", RelatedWords: []string{"a"}},
				"c": {Definition: "C", RelatedWords: []string{"a"}},
			},
			root:      "a",
			depth:     1,
			wantNodes: 3,
			wantEdges: 2,
			check: func(t *testing.T, g Graph) {
				wantDepths := map[string]int{"a": 0, "b": 1, "c": 1}
				for _, n := range g.Nodes {
					if n.Depth != wantDepths[n.ID] {
						t.Errorf("depth(%s) = %d, want %d", n.ID, n.Depth, wantDepths[n.ID])
					}
				}
				if !g.HasEdge("a", "b") || !g.HasEdge("a", "c") {
					t.Errorf("edges = %v, want a-b and a-c", g.Edges)
				}
			},
		},
		{
			name: "UnknownRoot",
			words: map[string]lexicon.Entry{
				"a": {Definition: "A"},
			},
			root:      "ghost",
			depth:     2,
			wantNodes: 0,
			wantEdges: 0,
		},
		{
			name: "NormalizesRoot",
			words: map[string]lexicon.Entry{
				"water": {Definition: "clear liquid", RelatedWords: []string{"aqua"}},
				"aqua":  {Definition: "water, in Latin"},
			},
			root:      "  WATER ",
			depth:     1,
			wantNodes: 2,
			wantEdges: 1,
			check: func(t *testing.T, g Graph) {
				if g.Nodes[0].ID != "water" || g.Nodes[0].Depth != 0 {
					t.Errorf("root node = %+v, want water at depth 0", g.Nodes[0])
				}
			},
		},
		{
			name: "DanglingReference",
			words: map[string]lexicon.Entry{
				"a": {Definition: "A", RelatedWords: []string{"ghost"}},
			},
			root:      "a",
			depth:     1,
			wantNodes: 1,
			wantEdges: 0,
			check: func(t *testing.T, g Graph) {
				if got := g.Nodes[0].RelatedWords; !slices.Equal(got, []string{"ghost"}) {
					t.Errorf("relatedWords = %v, want [ghost]", got)
				}
			},
		},
		{
			name: "DepthBound",
			words: map[string]lexicon.Entry{
				"a": {RelatedWords: []string{"b"}},
				"b": {RelatedWords: []string{"c"}},
				"c": {RelatedWords: []string{"d"}},
				"d": {},
			},
			root:      "a",
			depth:     2,
			wantNodes: 3,
			wantEdges: 2,
			check: func(t *testing.T, g Graph) {
				if _, ok := g.Node("d"); ok {
					t.Error("node d is beyond the depth bound, should be absent")
				}
			},
		},
		{
			name: "DepthZero",
			words: map[string]lexicon.Entry{
				"a": {RelatedWords: []string{"b"}},
				"b": {},
			},
			root:      "a",
			depth:     0,
			wantNodes: 1,
			wantEdges: 0,
		},
		{
			name: "MinimumDepthWins",
			words: map[string]lexicon.Entry{
				"a": {RelatedWords: []string{"b", "c"}},
				"b": {RelatedWords: []string{"d"}},
				"c": {RelatedWords: []string{"d"}},
				"d": {},
			},
			root:      "a",
			depth:     3,
			wantNodes: 4,
			wantEdges: 4,
			check: func(t *testing.T, g Graph) {
				n, ok := g.Node("d")
				if !ok {
					t.Fatal("node d not found")
				}
				if n.Depth != 2 {
					t.Errorf("depth(d) = %d, want 2", n.Depth)
				}
				if !g.HasEdge("b", "d") || !g.HasEdge("c", "d") {
					t.Errorf("edges = %v, want both b-d and c-d", g.Edges)
				}
			},
		},
		{
			name: "SameDepthCrossEdge",
			words: map[string]lexicon.Entry{
				"a": {RelatedWords: []string{"b", "c"}},
				"b": {RelatedWords: []string{"c"}},
				"c": {},
			},
			root:      "a",
			depth:     1,
			wantNodes: 3,
			wantEdges: 3,
			check: func(t *testing.T, g Graph) {
				if !g.HasEdge("b", "c") {
					t.Errorf("edges = %v, want cross edge b-c", g.Edges)
				}
			},
		},
		{
			name: "FrontierCutoff",
			words: map[string]lexicon.Entry{
				"a": {RelatedWords: []string{"b"}},
				"b": {RelatedWords: []string{"c"}},
				"c": {},
			},
			root:      "a",
			depth:     1,
			wantNodes: 2,
			wantEdges: 1,
			check: func(t *testing.T, g Graph) {
				if g.HasEdge("b", "c") {
					t.Error("edge b-c reaches beyond the depth bound, should be absent")
				}
			},
		},
		{
			name: "EdgeDeduplication",
			words: map[string]lexicon.Entry{
				"a": {RelatedWords: []string{"b"}},
				"b": {RelatedWords: []string{"a"}},
			},
			root:      "a",
			depth:     2,
			wantNodes: 2,
			wantEdges: 1,
		},
		{
			name: "SelfReference",
			words: map[string]lexicon.Entry{
				"a": {RelatedWords: []string{"a", "b"}},
				"b": {},
			},
			root:      "a",
			depth:     1,
			wantNodes: 2,
			wantEdges: 2,
			check: func(t *testing.T, g Graph) {
				if !g.HasEdge("a", "a") {
					t.Errorf("edges = %v, want self edge a-a", g.Edges)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewBuilder(lexicon.Build(tt.words)).Build(tt.root, tt.depth)

			if got := g.NodeCount(); got != tt.wantNodes {
				t.Errorf("nodes = %d, want %d", got, tt.wantNodes)
			}
			if got := g.EdgeCount(); got != tt.wantEdges {
				t.Errorf("edges = %d, want %d", got, tt.wantEdges)
			}

			if tt.check != nil {
				tt.check(t, g)
			}
		})
	}
}

func TestBuildDiscoveryOrder(t *testing.T) {
	index := lexicon.Build(map[string]lexicon.Entry{
		"a": {RelatedWords: []string{"c", "b"}},
		"b": {},
		"c": {},
	})

	g := NewBuilder(index).Build("a", 1)

	var got []string
	for _, n := range g.Nodes {
		got = append(got, n.ID)
	}
	want := []string{"a", "c", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("node order = %v, want %v (relatedWords order, not sorted)", got, want)
	}
}

func TestBuildInvariants(t *testing.T) {
	index := lexicon.Build(map[string]lexicon.Entry{
		"a": {RelatedWords: []string{"b", "c", "d"}},
		"b": {RelatedWords: []string{"a", "e", "f"}},
		"c": {RelatedWords: []string{"d", "f"}},
		"d": {RelatedWords: []string{"g"}},
		"e": {RelatedWords: []string{"f", "h"}},
		"f": {RelatedWords: []string{"a"}},
		"g": {RelatedWords: []string{"h"}},
		"h": {},
	})
	b := NewBuilder(index)

	for depth := 1; depth <= 3; depth++ {
		g := b.Build("a", depth)

		if g.Nodes[0].ID != "a" || g.Nodes[0].Depth != 0 {
			t.Errorf("depth %d: root node = %+v, want a at depth 0", depth, g.Nodes[0])
		}

		seenNodes := make(map[string]bool)
		for _, n := range g.Nodes {
			if seenNodes[n.ID] {
				t.Errorf("depth %d: node %s emitted twice", depth, n.ID)
			}
			seenNodes[n.ID] = true
			if n.Depth > depth {
				t.Errorf("depth %d: node %s at depth %d exceeds the bound", depth, n.ID, n.Depth)
			}
		}

		seenEdges := make(map[[2]string]bool)
		for _, e := range g.Edges {
			key := pairKey(e.From, e.To)
			if seenEdges[key] {
				t.Errorf("depth %d: duplicate edge for pair %v", depth, key)
			}
			seenEdges[key] = true
			if !seenNodes[e.From] || !seenNodes[e.To] {
				t.Errorf("depth %d: edge %s-%s references a missing node", depth, e.From, e.To)
			}
		}
	}
}

func TestReachableWithinMatchesBuild(t *testing.T) {
	index := lexicon.Build(map[string]lexicon.Entry{
		"a": {RelatedWords: []string{"b", "c", "d"}},
		"b": {RelatedWords: []string{"a", "e", "f"}},
		"c": {RelatedWords: []string{"d", "f"}},
		"d": {RelatedWords: []string{"g"}},
		"e": {RelatedWords: []string{"f", "h"}},
		"f": {RelatedWords: []string{"a"}},
		"g": {RelatedWords: []string{"h"}},
		"h": {},
	})
	b := NewBuilder(index)

	for depth := 0; depth <= 3; depth++ {
		want := b.Build("a", depth).NodeCount()
		if got := b.ReachableWithin("a", depth); got != want {
			t.Errorf("ReachableWithin(a, %d) = %d, want %d (Build node count)", depth, got, want)
		}
	}

	if got := b.ReachableWithin("ghost", 3); got != 0 {
		t.Errorf("ReachableWithin(ghost, 3) = %d, want 0", got)
	}
}

func TestBuildDeterministic(t *testing.T) {
	index := lexicon.Build(map[string]lexicon.Entry{
		"a": {Definition: "A", RelatedWords: []string{"b", "c"}},
		"b": {Definition: "B", RelatedWords: []string{"c", "d"}},
		"c": {Definition: "C", RelatedWords: []string{"a"}},
		"d": {Definition: "D", RelatedWords: []string{"a", "b"}},
	})
	b := NewBuilder(index)

	first, err := MarshalGraph(b.Build("a", 3))
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	second, err := MarshalGraph(b.Build("a", 3))
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("identical builds produced different bytes")
	}
}
