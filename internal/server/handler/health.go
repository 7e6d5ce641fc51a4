package handler

import (
	"net/http"
	"time"

	"github.com/sevigo/code-critic/internal/api"
)

// HealthHandler serves the liveness payload and the not-found fallback.
type HealthHandler struct {
	allowedOrigins []string
	now            func() time.Time
}

// NewHealthHandler creates a handler that reports allowedOrigins.
func NewHealthHandler(allowedOrigins []string) *HealthHandler {
	return &HealthHandler{allowedOrigins: allowedOrigins, now: time.Now}
}

// Handle serves GET /.
func (h *HealthHandler) Handle(w http.ResponseWriter, _ *http.Request) {
	origins := h.allowedOrigins
	if origins == nil {
		origins = []string{}
	}
	WriteJSON(w, http.StatusOK, api.HealthResponse{
		Message:   "AI Code Reviewer Backend API",
		Status:    "running",
		Timestamp: api.FormatTimestamp(h.now()),
		Endpoints: api.Endpoints{Health: api.HealthPath, Review: api.ReviewPath},
		CORS:      api.CORSStatus{AllowedOrigins: origins},
	})
}

// NotFound answers any unknown path or method.
func NotFound(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusNotFound, api.NotFoundResponse{
		Error:              "Endpoint not found",
		Path:               r.URL.RequestURI(),
		AvailableEndpoints: api.AvailableEndpoints,
	})
}
