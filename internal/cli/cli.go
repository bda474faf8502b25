// Package cli implements the etymoscope command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tetraptych/etymoscope-kiro/pkg/buildinfo"
	"github.com/tetraptych/etymoscope-kiro/pkg/cache"
	"github.com/tetraptych/etymoscope-kiro/pkg/engine"
	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "etymoscope"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "etymoscope",
		Short:        "Etymoscope explores word origin graphs",
		Long:         `Etymoscope builds and serves etymology graphs: starting from any word, it walks the related-word links in a dictionary dataset, prunes overly connected hub words, and renders the neighborhood as JSON or DOT.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.wordCommand())
	root.AddCommand(c.randomCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Engine Factory
// =============================================================================

// loadIndex reads the word dataset for one-shot commands.
func (c *CLI) loadIndex(ctx context.Context, wordsPath string) (*lexicon.Index, error) {
	if wordsPath == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no word dataset given (use --words)")
	}
	sp := newSpinnerWithContext(ctx, "Loading words...")
	index, err := lexicon.Load(ctx, lexicon.FileSource{Path: wordsPath})
	if err != nil {
		sp.StopWithError("Loading words failed")
		return nil, err
	}
	sp.Stop()
	c.Logger.Debug("loaded word dataset", "path", wordsPath, "words", index.Len())
	return index, nil
}

// newEngine creates a graph engine for CLI use.
func (c *CLI) newEngine(index *lexicon.Index, noCache bool) (*engine.Engine, error) {
	cch, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return engine.New(index, engine.Options{Cache: cch, Logger: c.Logger})
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/etymoscope/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
