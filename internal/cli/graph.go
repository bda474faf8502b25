package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tetraptych/etymoscope-kiro/pkg/engine"
	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
	"github.com/tetraptych/etymoscope-kiro/pkg/graph"
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
)

// Output formats for the graph command.
const (
	formatJSON = "json"
	formatDOT  = "dot"
)

// graphParams holds options for the graph command.
type graphParams struct {
	words    string
	depth    int
	format   string
	output   string
	detailed bool
	noCache  bool
}

// =============================================================================
// Command Definition
// =============================================================================

func (c *CLI) graphCommand() *cobra.Command {
	var params graphParams

	cmd := &cobra.Command{
		Use:   "graph [word]",
		Short: "Build the etymology graph for a word",
		Long: `Graph walks the related-word links out from a word, prunes hub words
with too many connections, and writes the neighborhood as JSON or DOT.

Without --output the graph goes to stdout, ready for piping.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGraph(cmd.Context(), args[0], params)
		},
	}

	cmd.Flags().StringVar(&params.words, "words", "", "word dataset file (required)")
	cmd.Flags().IntVarP(&params.depth, "depth", "d", 2, "traversal depth")
	cmd.Flags().StringVarP(&params.format, "format", "f", formatJSON, "output format: json or dot")
	cmd.Flags().StringVarP(&params.output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&params.detailed, "detailed", false, "include depth and definition in DOT labels")
	cmd.Flags().BoolVar(&params.noCache, "no-cache", false, "bypass the result cache")
	_ = cmd.MarkFlagRequired("words")

	return cmd
}

// =============================================================================
// Command Implementation
// =============================================================================

func (c *CLI) runGraph(ctx context.Context, word string, params graphParams) error {
	if err := errors.ValidateWord(word); err != nil {
		return err
	}
	if err := errors.ValidateDepth(params.depth, engine.DefaultMaxDepth); err != nil {
		return err
	}
	if params.format != formatJSON && params.format != formatDOT {
		return errors.New(errors.ErrCodeInvalidInput, "unknown format %q (want json or dot)", params.format)
	}

	index, err := c.loadIndex(ctx, params.words)
	if err != nil {
		return err
	}
	eng, err := c.newEngine(index, params.noCache)
	if err != nil {
		return err
	}
	defer eng.Close()

	g, cached, err := eng.GetGraphWithCacheInfo(ctx, word, params.depth)
	if err != nil {
		return err
	}
	if g.IsEmpty() {
		printWarning("No entry for %q", lexicon.Normalize(word))
		return nil
	}

	// Stdout mode stays clean for piping: just the graph, no decorations.
	if params.output == "" {
		if params.format == formatDOT {
			fmt.Print(graph.ToDOT(g, graph.DOTOptions{Detailed: params.detailed}))
			return nil
		}
		return graph.WriteGraph(g, os.Stdout)
	}

	if err := writeGraphOutput(g, params); err != nil {
		return err
	}

	printSuccess("Graph for %q", lexicon.Normalize(word))
	printFile(params.output)
	printStats(g.NodeCount(), g.EdgeCount(), cached)
	printNextStep("Explore interactively", fmt.Sprintf("%s explore %s --words %s", appName, lexicon.Normalize(word), params.words))
	return nil
}

// writeGraphOutput writes the graph to the output file in the requested format.
func writeGraphOutput(g graph.Graph, params graphParams) error {
	if params.format == formatDOT {
		dot := graph.ToDOT(g, graph.DOTOptions{Detailed: params.detailed})
		if err := os.WriteFile(params.output, []byte(dot), 0o644); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "cannot write %s", params.output)
		}
		return nil
	}
	return graph.WriteGraphFile(g, params.output)
}
