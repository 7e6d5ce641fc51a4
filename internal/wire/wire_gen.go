// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/code-critic/internal/app"
	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/gemini"
	"github.com/sevigo/code-critic/internal/llm"
	"github.com/sevigo/code-critic/internal/review"
	"github.com/sevigo/code-critic/internal/server"
)

// InitializeApp creates and wires all application dependencies.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	slogLogger := provideLogger(cfg)

	// Tracing
	shutdownTelemetry, err := provideTelemetry(ctx, cfg, slogLogger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	// Prompt Manager
	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	// Review Client
	client := gemini.NewClient(cfg, promptMgr, slogLogger)

	// Submission Gateway
	service := review.NewService(client, slogLogger)

	// Server
	srv := server.NewServer(cfg, service, slogLogger)

	// App
	application := app.NewApp(cfg, srv, shutdownTelemetry, slogLogger)

	cleanup := func() {}

	return application, cleanup, nil
}
