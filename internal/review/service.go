// Package review implements the submission gateway: it validates incoming
// review requests, delegates them to a core.ReviewClient and translates the
// outcome into a caller-facing result or failure.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/logger"
)

const tracerName = "github.com/sevigo/code-critic/internal/review"

const (
	msgMissingPrompt = "Code prompt is required and must be a non-empty string"
	msgPromptTooLong = "Code prompt is too long. Maximum 10,000 characters allowed."
)

// Service is the submission gateway. It keeps no state between calls.
type Service struct {
	client core.ReviewClient
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// NewService creates a gateway that forwards validated prompts to client.
func NewService(client core.ReviewClient, logger *slog.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}
}

// Validate checks a request before anything is sent to the provider.
func Validate(req *core.ReviewRequest) error {
	if req == nil || strings.TrimSpace(req.Prompt) == "" {
		return core.NewValidationError(core.ReasonMissingOrEmptyPrompt, msgMissingPrompt)
	}
	if core.CharCount(req.Prompt) > core.MaxPromptLength {
		return core.NewValidationError(core.ReasonPromptTooLong, msgPromptTooLong)
	}
	return nil
}

// SubmitReview validates req, asks the review client for a critique and
// returns it together with the prompt and review lengths.
func (s *Service) SubmitReview(ctx context.Context, req *core.ReviewRequest) (*core.ReviewResult, error) {
	ctx, span := s.tracer.Start(ctx, "review.SubmitReview")
	defer span.End()

	log := logger.FromContext(ctx, s.logger)

	if err := Validate(req); err != nil {
		log.Warn("rejected review request", "reason", core.ReasonOf(err))
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	promptLength := core.CharCount(req.Prompt)
	span.SetAttributes(attribute.Int("review.prompt_length", promptLength))
	log.Info("processing review request", "prompt_length", promptLength)

	text, err := s.client.GenerateReview(ctx, req.Prompt)
	if err != nil {
		log.Error("review generation failed", "kind", core.KindOf(err), "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, core.KindOf(err).String())
		return nil, fmt.Errorf("failed to generate review: %w", err)
	}
	if text == "" {
		return nil, fmt.Errorf("failed to generate review: %w", core.NewEmptyResponseError())
	}

	result := &core.ReviewResult{
		Review:       text,
		Timestamp:    s.now().UTC(),
		PromptLength: promptLength,
		ReviewLength: core.CharCount(text),
	}
	log.Info("review generated", "review_length", result.ReviewLength)
	return result, nil
}
