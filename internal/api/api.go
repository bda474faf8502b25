// Package api serves the engine operations over HTTP.
//
// The surface is four read-only endpoints plus operational ones:
//
//	GET /api/graph/{word}?depth=N   pruned etymology graph
//	GET /api/words/{word}           dictionary entry
//	GET /api/random                 weighted random word
//	GET /healthz                    liveness plus dataset counts
//	GET /metrics                    Prometheus metrics (when configured)
//
// Handlers stay thin: input validation and status mapping here, everything
// else in pkg/engine. Unknown words map to 404, invalid input to 400, and
// the engine's empty results are never treated as server errors.
package api

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/tetraptych/etymoscope-kiro/pkg/engine"
	"github.com/tetraptych/etymoscope-kiro/pkg/errors"
)

// Default server parameters.
const (
	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	// DefaultDepth is used when a graph request carries no depth parameter.
	DefaultDepth = 2
)

// Options configures the HTTP server.
type Options struct {
	// Addr is the listen address. Defaults to DefaultAddr.
	Addr string

	// ReadTimeout and WriteTimeout bound request handling.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ShutdownTimeout bounds connection draining on shutdown.
	ShutdownTimeout time.Duration

	// Logger receives request logs. If nil, logging is discarded.
	Logger *log.Logger

	// Metrics, when set, is mounted on GET /metrics.
	Metrics http.Handler

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.ReadTimeout == 0 {
		o.ReadTimeout = DefaultReadTimeout
	}
	if o.WriteTimeout == 0 {
		o.WriteTimeout = DefaultWriteTimeout
	}
	if o.ShutdownTimeout == 0 {
		o.ShutdownTimeout = DefaultShutdownTimeout
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Server exposes an Engine over HTTP.
type Server struct {
	Logger *log.Logger

	engine   *engine.Engine
	http     *http.Server
	shutdown time.Duration
}

// New wires the engine into a routed server. The server does not own the
// engine: closing the engine remains the caller's job.
func New(eng *engine.Engine, opts Options) (*Server, error) {
	if eng == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "engine is required")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	s := &Server{
		Logger:   opts.Logger,
		engine:   eng,
		shutdown: opts.ShutdownTimeout,
	}

	r := chi.NewRouter()
	r.Use(s.withRequestID)
	r.Use(s.withRecovery)
	r.Use(s.withRequestLog)

	r.Route("/api", func(r chi.Router) {
		r.Get("/graph/{word}", s.handleGraph)
		r.Get("/words/{word}", s.handleWord)
		r.Get("/random", s.handleRandom)
	})
	r.Get("/healthz", s.handleHealth)
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}

	s.http = &http.Server{
		Addr:         opts.Addr,
		Handler:      r,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
	}
	return s, nil
}

// Handler returns the routed handler. Tests drive it through httptest.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Addr returns the configured listen address.
func (s *Server) Addr() string { return s.http.Addr }

// ListenAndServe serves until the context is cancelled, then drains open
// connections within the shutdown timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()
	s.Logger.Info("listening", "addr", s.http.Addr)

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()
	s.Logger.Info("shutting down", "timeout", s.shutdown)
	return s.http.Shutdown(shutdownCtx)
}
