// Package app initializes and orchestrates the main components of the Code Critic application.
// It wires together the configuration, server, and tracing.
package app

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/sevigo/code-critic/internal/api"
	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/server"
	"github.com/sevigo/code-critic/internal/telemetry"
)

// App holds the main application components.
type App struct {
	cfg               *config.Config
	server            *server.Server
	logger            *slog.Logger
	shutdownTelemetry telemetry.ShutdownFunc
}

// NewApp sets up the application with all its dependencies.
func NewApp(cfg *config.Config, srv *server.Server, shutdownTelemetry telemetry.ShutdownFunc, logger *slog.Logger) *App {
	return &App{
		cfg:               cfg,
		server:            srv,
		logger:            logger,
		shutdownTelemetry: shutdownTelemetry,
	}
}

// Start logs where the API can be reached and runs the HTTP server.
func (a *App) Start() error {
	urls := ListenURLs(a.cfg.Server.Port, hostAddresses())
	a.logger.Info("starting Code Critic",
		"model", a.cfg.Gemini.Model,
		"api_key_configured", a.cfg.Gemini.APIKey != "",
		"allowed_origins", a.cfg.CORS.AllowedOrigins,
	)
	a.logger.Info("server listening", "local", urls.Local, "network", urls.Network)
	a.logger.Info("review endpoint available", "url", urls.Local+api.ReviewPath)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down Code Critic services")

	// Stop the HTTP server first to prevent new incoming requests.
	serverErr := a.server.Stop()
	if serverErr != nil {
		a.logger.Error("error during HTTP server shutdown", "error", serverErr)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if a.shutdownTelemetry != nil {
		if err := a.shutdownTelemetry(ctx); err != nil {
			a.logger.Error("error flushing traces", "error", err)
		}
	}

	if serverErr != nil {
		a.logger.Error("Code Critic stopped with errors", "error", serverErr)
		return serverErr
	}

	a.logger.Info("Code Critic stopped successfully")
	return nil
}

// URLs are the addresses printed at startup.
type URLs struct {
	Local   string
	Network []string
}

// ListenURLs builds the local URL and one URL per non-loopback IPv4 address.
func ListenURLs(port string, addrs []net.Addr) URLs {
	urls := URLs{Local: "http://" + net.JoinHostPort("localhost", port)}
	for _, addr := range addrs {
		ipNet, ok := addr.(*net.IPNet)
		if !ok || ipNet.IP.IsLoopback() {
			continue
		}
		if ip4 := ipNet.IP.To4(); ip4 != nil {
			urls.Network = append(urls.Network, "http://"+net.JoinHostPort(ip4.String(), port))
		}
	}
	return urls
}

func hostAddresses() []net.Addr {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return nil
	}
	return addrs
}
