package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tetraptych/etymoscope-kiro/pkg/sampling"
)

// statsParams holds options for the stats command.
type statsParams struct {
	words       string
	output      string
	sizingDepth int
	nodeCap     int
	workers     int
}

// =============================================================================
// Command Definition
// =============================================================================

func (c *CLI) statsCommand() *cobra.Command {
	var params statsParams

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Precompute the weighted sampling table",
		Long: `Stats sizes every word's etymology graph and writes a cumulative-weight
sampling table. Point the serve command at the table so random-word requests
skip the sizing cost at runtime.

Words whose graphs exceed the node cap are excluded, as are words with no
connections at all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), params)
		},
	}

	cmd.Flags().StringVar(&params.words, "words", "", "word dataset file (required)")
	cmd.Flags().StringVarP(&params.output, "output", "o", "table.json", "output file for the sampling table")
	cmd.Flags().IntVar(&params.sizingDepth, "sizing-depth", 0, fmt.Sprintf("traversal depth for graph sizing (default %d)", sampling.DefaultSizingDepth))
	cmd.Flags().IntVar(&params.nodeCap, "node-cap", 0, fmt.Sprintf("exclude words with graphs larger than this (default %d)", sampling.DefaultNodeCap))
	cmd.Flags().IntVar(&params.workers, "workers", 0, "concurrent sizing workers")
	_ = cmd.MarkFlagRequired("words")

	return cmd
}

// =============================================================================
// Command Implementation
// =============================================================================

func (c *CLI) runStats(ctx context.Context, params statsParams) error {
	index, err := c.loadIndex(ctx, params.words)
	if err != nil {
		return err
	}

	sp := newSpinnerWithContext(ctx, fmt.Sprintf("Sizing %d word graphs...", index.Len()))
	table, err := sampling.Compute(ctx, index, sampling.Options{
		SizingDepth: params.sizingDepth,
		NodeCap:     params.nodeCap,
		Workers:     params.workers,
	})
	if err != nil {
		if sp.Cancelled() {
			sp.Stop()
			return ctx.Err()
		}
		sp.StopWithError("Sizing failed")
		return err
	}
	sp.StopWithSuccess(fmt.Sprintf("Sized %d words, %d eligible", index.Len(), table.Len()))

	if err := sampling.WriteTableFile(table, params.output); err != nil {
		return err
	}

	printFile(params.output)
	printDetail("total weight: %.0f", table.TotalWeight)
	printNextStep("Serve with this table", fmt.Sprintf("%s serve --words %s (set table_path = %q in the config)", appName, params.words, params.output))
	return nil
}
