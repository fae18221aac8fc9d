// Package server owns the HTTP listener lifecycle and the cross-cutting
// middleware chain wrapped around every handler.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"docuflow/internal/config"
)

// Server runs the HTTP listener with the shared middleware chain.
type Server struct {
	cfg        config.ServerConfig
	logger     *slog.Logger
	mux        *http.ServeMux
	httpServer *http.Server
}

// New creates a server around the given mux.
func New(cfg config.ServerConfig, mux *http.ServeMux, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, logger: logger, mux: mux}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.wrapMiddleware(mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

// Handler returns the fully wrapped handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server...")
	return s.httpServer.Shutdown(shutdownCtx)
}
