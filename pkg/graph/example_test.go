package graph_test

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/tetraptych/etymoscope-kiro/pkg/graph"
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
)

func ExampleBuilder_Build() {
	index := lexicon.Build(map[string]lexicon.Entry{
		"water": {Definition: "clear liquid", RelatedWords: []string{"aqua", "hydro"}},
		"aqua":  {Definition: "water, in Latin", RelatedWords: []string{"water"}},
		"hydro": {Definition: "water, in Greek", RelatedWords: []string{"water"}},
	})

	g := graph.NewBuilder(index).Build("water", 1)

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	for _, n := range g.Nodes {
		fmt.Printf("%s (depth %d)\n", n.Word, n.Depth)
	}
	// Output:
	// Nodes: 3
	// Edges: 2
	// water (depth 0)
	// aqua (depth 1)
	// hydro (depth 1)
}

func ExamplePrune() {
	// A hub at depth 1 with enough children to cross the threshold.
	nodes := []graph.Node{
		{ID: "root", Depth: 0},
		{ID: "hub", Depth: 1},
	}
	edges := []graph.Edge{{From: "root", To: "hub"}}
	for i := range graph.HubThreshold {
		id := fmt.Sprintf("leaf%02d", i)
		nodes = append(nodes, graph.Node{ID: id, Depth: 2})
		edges = append(edges, graph.Edge{From: "hub", To: id})
	}

	pruned := graph.Prune(graph.Graph{Nodes: nodes, Edges: edges})

	fmt.Println("Before:", len(nodes), "nodes")
	fmt.Println("After:", pruned.NodeCount(), "nodes")
	// Output:
	// Before: 82 nodes
	// After: 2 nodes
}

func ExampleWriteGraph() {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "water", Word: "water", Definition: "clear liquid", Depth: 0, RelatedWords: []string{"aqua"}},
		},
		Edges: []graph.Edge{},
	}

	// Write to a buffer (or any io.Writer)
	var buf bytes.Buffer
	if err := graph.WriteGraph(g, &buf); err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Print(buf.String())
	// Output:
	// {
	//   "nodes": [
	//     {
	//       "id": "water",
	//       "word": "water",
	//       "definition": "clear liquid",
	//       "depth": 0,
	//       "relatedWords": [
	//         "aqua"
	//       ]
	//     }
	//   ],
	//   "edges": []
	// }
}

func ExampleReadGraph() {
	jsonData := `{
		"nodes": [
			{"id": "water", "word": "water", "depth": 0},
			{"id": "aqua", "word": "aqua", "depth": 1}
		],
		"edges": [
			{"from": "water", "to": "aqua"}
		]
	}`

	g, err := graph.ReadGraph(strings.NewReader(jsonData))
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	// Output:
	// Nodes: 2
	// Edges: 1
}

func ExampleToDOT() {
	g := graph.Graph{
		Nodes: []graph.Node{
			{ID: "water", Word: "water", Depth: 0},
			{ID: "aqua", Word: "aqua", Depth: 1},
		},
		Edges: []graph.Edge{{From: "water", To: "aqua"}},
	}

	fmt.Print(graph.ToDOT(g, graph.DOTOptions{}))
	// Output:
	// graph G {
	//   bgcolor="transparent";
	//   node [shape=box, style="rounded,filled", fillcolor=white, fontsize=14, margin="0.2,0.1"];
	//   overlap=false;
	//   sep=0.3;
	//
	//   "water" [label="water", fillcolor=lightgoldenrod1, penwidth=2];
	//   "aqua" [label="aqua"];
	//
	//   "water" -- "aqua";
	// }
}
