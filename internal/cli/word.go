package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
)

// =============================================================================
// Command Definition
// =============================================================================

func (c *CLI) wordCommand() *cobra.Command {
	var wordsPath string

	cmd := &cobra.Command{
		Use:   "word [word]",
		Short: "Look up a word's definition and relations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWord(cmd.Context(), args[0], wordsPath)
		},
	}

	cmd.Flags().StringVar(&wordsPath, "words", "", "word dataset file (required)")
	_ = cmd.MarkFlagRequired("words")

	return cmd
}

// =============================================================================
// Command Implementation
// =============================================================================

func (c *CLI) runWord(ctx context.Context, word, wordsPath string) error {
	if err := errors.ValidateWord(word); err != nil {
		return err
	}

	index, err := c.loadIndex(ctx, wordsPath)
	if err != nil {
		return err
	}

	normalized := lexicon.Normalize(word)
	entry, found := index.Lookup(normalized)
	if !found {
		printWarning("No entry for %q", normalized)
		return nil
	}

	printKeyValue("Word", normalized)
	if entry.Definition != "" {
		printKeyValue("Definition", entry.Definition)
	}
	if len(entry.RelatedWords) == 0 {
		printKeyValue("Related", StyleDim.Render("none"))
		return nil
	}
	printKeyValue("Related", strings.Join(entry.RelatedWords, ", "))

	// Relations may point at words the dataset has no entry for. Flag them
	// so users know why those words dead-end in graphs.
	var dangling []string
	for _, rel := range entry.RelatedWords {
		if _, ok := index.Lookup(rel); !ok {
			dangling = append(dangling, rel)
		}
	}
	if len(dangling) > 0 {
		printNewline()
		printDetail("not in dataset: %s", strings.Join(dangling, ", "))
	}

	return nil
}
