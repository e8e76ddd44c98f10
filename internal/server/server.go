package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/wordsmithery/internal/generation"
	"github.com/jonathan/wordsmithery/internal/server/ratelimit"
	"github.com/jonathan/wordsmithery/internal/types"
)

// Generator runs a selection through the request builder
type Generator interface {
	Run(ctx context.Context, sel types.Selection, onProgress generation.ProgressCallback) ([]types.GenerationResult, error)
}

// ToneStore is the tone profile surface the API exposes
type ToneStore interface {
	Load(ctx context.Context) []types.ToneProfile
	UpdateDescription(ctx context.Context, id, description string) (types.ToneProfile, error)
	Reset(ctx context.Context) ([]types.ToneProfile, error)
}

const (
	readTimeout = 30 * time.Second
	// writeTimeout covers a whole batch, one upstream call per region
	writeTimeout    = 5 * time.Minute
	idleTimeout     = time.Minute
	shutdownTimeout = 30 * time.Second
)

// Server serves the copy generation API
type Server struct {
	httpServer  *http.Server
	generator   Generator
	tones       ToneStore
	sessions    *SessionStore
	rateLimiter *ratelimit.Limiter
	validate    *validator.Validate
}

// Config holds server configuration
type Config struct {
	Port int
	// RateLimit replaces the RATE_LIMIT_* environment configuration when set
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config, generator Generator, toneStore ToneStore) *Server {
	rateConfig := cfg.RateLimit
	if rateConfig == nil {
		rateConfig = ratelimit.LoadConfig()
	}

	s := &Server{
		generator:   generator,
		tones:       toneStore,
		sessions:    NewSessionStore(),
		rateLimiter: ratelimit.NewLimiter(rateConfig),
		validate:    validator.New(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /options", s.handleOptions)

	mux.HandleFunc("GET /tones", s.handleListTones)
	mux.HandleFunc("PUT /tones/{id}", s.handleUpdateTone)
	mux.HandleFunc("POST /tones/reset", s.handleResetTones)

	mux.HandleFunc("POST /sessions", s.handleCreateSession)
	mux.HandleFunc("POST /sessions/stream", s.handleCreateSessionStream)
	mux.HandleFunc("GET /sessions/{id}", s.handleGetSession)
	mux.HandleFunc("DELETE /sessions/{id}", s.handleDeleteSession)
	mux.HandleFunc("GET /sessions/{id}/export", s.handleExportSession)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      chain(mux, s.withCORS, s.withLogging, s.withRateLimit),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return s
}

// Handler returns the fully wrapped request handler
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.Serve(ctx)
}

// Serve listens until ctx is cancelled
func (s *Server) Serve(ctx context.Context) error {
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("[server] listening on %s", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Printf("[server] shutting down, waiting up to %v", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Printf("[server] stopped")
	return nil
}

// Close stops background work without a listener
func (s *Server) Close() {
	s.rateLimiter.Stop()
}
