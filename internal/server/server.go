// Package server provides the HTTP REST API for the match intel agent.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/match-intel/internal/enrich"
	"github.com/jonathan/match-intel/internal/scoring"
	"github.com/jonathan/match-intel/internal/store"
	"github.com/jonathan/match-intel/internal/types"
)

// DefaultListenAddr is used when no listen address is configured.
const DefaultListenAddr = ":8710"

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	scorer     *scoring.Scorer
	enricher   *enrich.Enricher
	store      *store.Store
	jwt        *JWTService
	log        *zap.Logger
}

// Config holds server configuration
type Config struct {
	ListenAddr  string
	JWTSecret   string
	Preferences *types.Preferences
	Enricher    *enrich.Enricher // optional, enables intel extraction with caching
	Store       *store.Store     // optional, enables saved-job endpoints
	Logger      *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt secret is required")
	}
	if cfg.Preferences == nil {
		return nil, fmt.Errorf("preferences are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	addr := cfg.ListenAddr
	if addr == "" {
		addr = DefaultListenAddr
	}

	s := &Server{
		scorer:   scoring.NewScorer(cfg.Preferences),
		enricher: cfg.Enricher,
		store:    cfg.Store,
		jwt:      NewJWTService(cfg.JWTSecret),
		log:      cfg.Logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.Handle("POST /v1/extract/listing", s.withAuth(http.HandlerFunc(s.handleExtractListing)))
	mux.Handle("POST /v1/extract/feed", s.withAuth(http.HandlerFunc(s.handleExtractFeed)))
	mux.Handle("POST /v1/extract/intel", s.withAuth(http.HandlerFunc(s.handleExtractIntel)))
	mux.Handle("POST /v1/score", s.withAuth(http.HandlerFunc(s.handleScore)))
	mux.Handle("GET /v1/jobs/saved", s.withAuth(http.HandlerFunc(s.handleListSavedJobs)))
	mux.Handle("POST /v1/jobs/saved", s.withAuth(http.HandlerFunc(s.handleSaveJob)))

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.withLogging(mux),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // intel extraction may fetch remote pages
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening for requests and blocks until the context is
// cancelled or an interrupt signal arrives.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		s.log.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	})

	err := g.Wait()
	s.log.Info("server stopped")
	return err
}

// Handler exposes the configured handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("duration", time.Since(start)))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
