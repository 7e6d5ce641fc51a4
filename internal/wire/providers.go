package wire

import (
	"context"
	"log/slog"

	"github.com/google/wire"

	"github.com/sevigo/code-critic/internal/app"
	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/gemini"
	"github.com/sevigo/code-critic/internal/llm"
	"github.com/sevigo/code-critic/internal/logger"
	"github.com/sevigo/code-critic/internal/review"
	"github.com/sevigo/code-critic/internal/server"
	"github.com/sevigo/code-critic/internal/server/handler"
	"github.com/sevigo/code-critic/internal/telemetry"
)

// AppSet provides every component of the server binary.
var AppSet = wire.NewSet(
	config.LoadConfig,
	provideLogger,
	provideTelemetry,
	llm.NewPromptManager,
	gemini.NewClient,
	wire.Bind(new(core.ReviewClient), new(*gemini.Client)),
	review.NewService,
	wire.Bind(new(handler.Submitter), new(*review.Service)),
	server.NewServer,
	app.NewApp,
)

func provideLogger(cfg *config.Config) *slog.Logger {
	return logger.NewLogger(cfg.Logging, logger.Writer(cfg.Logging.Output))
}

func provideTelemetry(ctx context.Context, cfg *config.Config, logger *slog.Logger) (telemetry.ShutdownFunc, error) {
	return telemetry.Setup(ctx, cfg.Telemetry, logger)
}
