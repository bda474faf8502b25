package cli

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
	"github.com/tetraptych/etymoscope-kiro/pkg/sampling"
)

// randomParams holds options for the random command.
type randomParams struct {
	words   string
	table   string
	count   int
	seed    uint64
	noCache bool
}

// =============================================================================
// Command Definition
// =============================================================================

func (c *CLI) randomCommand() *cobra.Command {
	var params randomParams

	cmd := &cobra.Command{
		Use:   "random",
		Short: "Draw random words weighted by graph size",
		Long: `Random draws words from the dataset, weighted by how connected each word
is, so interesting starting points come up more often than dead ends.

The weight table comes from --table when given; otherwise it is computed on
the fly and cached for later runs. Use --seed for reproducible draws.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRandom(cmd.Context(), params, cmd.Flags().Changed("seed"))
		},
	}

	cmd.Flags().StringVar(&params.words, "words", "", "word dataset file (required)")
	cmd.Flags().StringVar(&params.table, "table", "", "precomputed sampling table file")
	cmd.Flags().IntVarP(&params.count, "count", "n", 1, "number of words to draw")
	cmd.Flags().Uint64Var(&params.seed, "seed", 0, "seed for reproducible draws")
	cmd.Flags().BoolVar(&params.noCache, "no-cache", false, "bypass the result cache")
	_ = cmd.MarkFlagRequired("words")

	return cmd
}

// =============================================================================
// Command Implementation
// =============================================================================

func (c *CLI) runRandom(ctx context.Context, params randomParams, seeded bool) error {
	if params.count < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "count must be at least 1")
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

	if params.table != "" {
		t, err := sampling.ReadTableFile(params.table)
		if err != nil {
			return err
		}
		eng.SetSamplingTable(t)
	} else {
		sp := newSpinnerWithContext(ctx, "Weighing words...")
		_, err := eng.LoadSamplingTable(ctx)
		sp.Stop()
		if err != nil {
			if sp.Cancelled() {
				return ctx.Err()
			}
			// The engine falls back to unweighted draws without a table.
			c.Logger.Warn("sampling table build failed, drawing unweighted", "err", err)
		}
	}

	// A fixed seed gives a reproducible sequence of draws; without one the
	// engine uses its own randomness.
	var unit func() float64
	if seeded {
		rng := rand.New(rand.NewPCG(params.seed, 0))
		unit = rng.Float64
	}

	for i := 0; i < params.count; i++ {
		var word string
		var ok bool
		if unit != nil {
			word, ok = eng.RandomWordAt(ctx, unit())
		} else {
			word, ok = eng.RandomWord(ctx)
		}
		if !ok {
			printWarning("Word dataset is empty")
			return nil
		}
		fmt.Println(word)
	}

	return nil
}
