package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tetraptych/etymoscope-kiro/internal/api"
	"github.com/tetraptych/etymoscope-kiro/internal/config"
	"github.com/tetraptych/etymoscope-kiro/internal/metrics"
	"github.com/tetraptych/etymoscope-kiro/pkg/cache"
	"github.com/tetraptych/etymoscope-kiro/pkg/engine"
	"github.com/tetraptych/etymoscope-kiro/pkg/httputil"
	"github.com/tetraptych/etymoscope-kiro/pkg/lexicon"
	"github.com/tetraptych/etymoscope-kiro/pkg/sampling"
)

// serveOverrides holds flag values that take precedence over the config file.
type serveOverrides struct {
	addr  string
	words string
}

// =============================================================================
// Command Definition
// =============================================================================

func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		overrides  serveOverrides
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the etymology graph API over HTTP",
		Long: `Serve loads a word dataset and exposes it over HTTP: graph queries,
word lookups, weighted random words, a health check, and Prometheus metrics.

Configuration comes from a TOML file (see --config); the --addr and --words
flags override the corresponding file settings.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), configPath, overrides)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to TOML config file")
	cmd.Flags().StringVar(&overrides.addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&overrides.words, "words", "", "word dataset file (overrides config)")

	return cmd
}

// =============================================================================
// Command Implementation
// =============================================================================

func (c *CLI) runServe(ctx context.Context, configPath string, overrides serveOverrides) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	applyServeOverrides(&cfg, overrides)
	if err := cfg.Validate(); err != nil {
		return err
	}

	hooks := metrics.New()
	hooks.Register()

	p := newProgress(c.Logger)
	src := wordSource(cfg.Data)
	index, err := lexicon.Load(ctx, src)
	if err != nil {
		return err
	}
	p.done(fmt.Sprintf("Loaded %d words from %s", index.Len(), src))

	cch, err := buildCache(cfg.Cache)
	if err != nil {
		return err
	}

	eng, err := engine.New(index, engine.Options{
		MaxDepth: cfg.Limits.MaxDepth,
		Cache:    cch,
		CacheTTL: cfg.Cache.TTL.Duration,
		Logger:   c.Logger,
	})
	if err != nil {
		return err
	}
	defer eng.Close()

	c.loadTable(ctx, eng, cfg.Data.TablePath)

	srv, err := api.New(eng, api.Options{
		Addr:            cfg.Server.Addr,
		ReadTimeout:     cfg.Server.ReadTimeout.Duration,
		WriteTimeout:    cfg.Server.WriteTimeout.Duration,
		ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
		Logger:          c.Logger,
		Metrics:         hooks.Handler(),
	})
	if err != nil {
		return err
	}

	return srv.ListenAndServe(ctx)
}

// loadTable installs the precomputed sampling table, or falls back to building
// one in the background so random-word requests degrade instead of blocking
// startup.
func (c *CLI) loadTable(ctx context.Context, eng *engine.Engine, tablePath string) {
	if tablePath != "" {
		t, err := sampling.ReadTableFile(tablePath)
		if err != nil {
			c.Logger.Warn("sampling table unavailable, serving unweighted random words", "path", tablePath, "err", err)
			return
		}
		eng.SetSamplingTable(t)
		c.Logger.Info("sampling table loaded", "path", tablePath, "words", t.Len())
		return
	}

	go func() {
		if _, err := eng.LoadSamplingTable(ctx); err != nil && ctx.Err() == nil {
			c.Logger.Warn("sampling table build failed, serving unweighted random words", "err", err)
		}
	}()
}

// =============================================================================
// Config Assembly
// =============================================================================

// applyServeOverrides merges command-line flags into the loaded config.
// A words file given on the command line replaces whatever source the
// config file names, so the two can never conflict.
func applyServeOverrides(cfg *config.Config, overrides serveOverrides) {
	if overrides.addr != "" {
		cfg.Server.Addr = overrides.addr
	}
	if overrides.words != "" {
		cfg.Data.WordsPath = overrides.words
		cfg.Data.WordsURL = ""
		cfg.Data.MongoURI = ""
	}
}

// wordSource picks the dataset source the config names. Validate has already
// established that exactly one is set.
func wordSource(data config.DataConfig) lexicon.Source {
	switch {
	case data.WordsPath != "":
		return lexicon.FileSource{Path: data.WordsPath}
	case data.WordsURL != "":
		return &lexicon.HTTPSource{URL: data.WordsURL, Cache: downloadCache()}
	default:
		return &lexicon.MongoSource{
			URI:        data.MongoURI,
			Database:   data.MongoDatabase,
			Collection: data.MongoCollection,
		}
	}
}

// downloadCache builds the HTTP response cache for dataset downloads.
// Returns nil (no caching) when no cache directory is available.
func downloadCache() *httputil.Cache {
	dir, err := cacheDir()
	if err != nil {
		return nil
	}
	hc, err := httputil.NewCache(filepath.Join(dir, "downloads"), cache.TTLHTTP)
	if err != nil {
		return nil
	}
	return hc
}

// buildCache constructs the result cache backend the config names.
func buildCache(cfg config.CacheConfig) (cache.Cache, error) {
	switch cfg.Backend {
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	case config.CacheBackendRedis:
		return cache.NewRedisCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	default:
		dir := cfg.Dir
		if dir == "" {
			d, err := cacheDir()
			if err != nil {
				return cache.NewNullCache(), nil
			}
			dir = d
		}
		return cache.NewFileCache(dir)
	}
}
