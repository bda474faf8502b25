package graph

import (
	"bytes"
	"fmt"
	"strings"
)

// DOTOptions configures DOT export.
type DOTOptions struct {
	// Detailed includes depth and definition in node labels.
	// When false, only the word is shown.
	Detailed bool
}

// ToDOT converts a Graph to Graphviz DOT format. Relations are undirected,
// so the output uses an undirected graph with "--" edges.
//
// The root node (depth 0) is rendered with a highlighted fill to anchor the
// drawing visually.
func ToDOT(g Graph, opts DOTOptions) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  sep=0.3;\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		label := fmtLabel(n, opts.Detailed)
		attrs := fmtAttrs(n, label)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n Node, detailed bool) string {
	if !detailed {
		return n.Word
	}

	parts := []string{fmt.Sprintf("depth: %d", n.Depth)}
	if n.Definition != "" {
		parts = append(parts, n.Definition)
	}

	return n.Word + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(n Node, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if n.Depth == 0 {
		attrs = append(attrs, "fillcolor=lightgoldenrod1", "penwidth=2")
	}
	return attrs
}
