package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sevigo/code-critic/internal/api"
	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/logger"
	"github.com/sevigo/code-critic/internal/review"
)

// Submitter is the gateway operation the review handler relies on.
type Submitter interface {
	SubmitReview(ctx context.Context, req *core.ReviewRequest) (*core.ReviewResult, error)
}

// ReviewHandler serves POST /ai/get-review.
type ReviewHandler struct {
	gateway Submitter
	logger  *slog.Logger
}

// NewReviewHandler creates a review handler backed by gateway.
func NewReviewHandler(gateway Submitter, logger *slog.Logger) *ReviewHandler {
	return &ReviewHandler{gateway: gateway, logger: logger}
}

// Handle decodes the prompt, runs the review and writes the result or the
// classified failure.
func (h *ReviewHandler) Handle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger)
	r.Body = http.MaxBytesReader(w, r.Body, review.MaxBodyBytes)

	req, err := review.DecodeRequest(r.Body)
	if err != nil {
		h.writeFailure(w, log, err)
		return
	}

	result, err := h.gateway.SubmitReview(r.Context(), req)
	if err != nil {
		h.writeFailure(w, log, err)
		return
	}

	WriteJSON(w, http.StatusOK, api.ReviewResponse{
		Review:       result.Review,
		Timestamp:    api.FormatTimestamp(result.Timestamp),
		PromptLength: result.PromptLength,
		ReviewLength: result.ReviewLength,
	})
}

func (h *ReviewHandler) writeFailure(w http.ResponseWriter, log *slog.Logger, err error) {
	failure := review.Classify(err)
	log.Info("review request failed",
		"status", failure.Status,
		"kind", core.KindOf(err),
		"error", err,
	)
	WriteJSON(w, failure.Status, api.ErrorResponse{
		Error:   failure.Message,
		Details: failure.Details,
	})
}
