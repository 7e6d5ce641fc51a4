// Package server implements the HTTP server for the application.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/server/handler"
)

// Server wraps an HTTP server with graceful shutdown capabilities.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server that serves the review API through gateway.
func NewServer(cfg *config.Config, gateway handler.Submitter, logger *slog.Logger) *Server {
	router := NewRouter(cfg, gateway, logger)

	return &Server{
		server: &http.Server{
			Addr:              cfg.Address(),
			Handler:           otelhttp.NewHandler(router, "code-critic"),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			// The response is written only after the provider call, which may
			// take up to the configured provider timeout.
			WriteTimeout: cfg.Gemini.Timeout + 15*time.Second,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
	}
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start binds the listen address and serves until shutdown or error.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return bindError(s.server.Addr, err)
	}
	return s.Serve(ln)
}

// Serve serves on an existing listener until shutdown or error.
func (s *Server) Serve(ln net.Listener) error {
	s.logger.Info("starting HTTP server", "address", ln.Addr().String())

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server with a 30-second timeout.
func (s *Server) Stop() error {
	s.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

func bindError(addr string, err error) error {
	switch {
	case errors.Is(err, syscall.EADDRINUSE):
		return fmt.Errorf("address %s is already in use; stop the other process or set PORT to a different value: %w", addr, err)
	case errors.Is(err, syscall.EACCES):
		return fmt.Errorf("permission denied binding %s; use a port above 1024: %w", addr, err)
	default:
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
}
