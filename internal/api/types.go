// Package api defines the JSON bodies exchanged over the HTTP interface. The
// server writes them and the Go client reads them.
package api

import "time"

const (
	HealthPath = "/"
	ReviewPath = "/ai/get-review"
)

// MsgConfigurationError is the error text sent when the provider credential
// is missing or rejected. Clients match on it to explain the failure.
const MsgConfigurationError = "AI service configuration error. Please check API key configuration."

// AvailableEndpoints lists the routes reported on unknown paths.
var AvailableEndpoints = []string{HealthPath, ReviewPath}

// ReviewRequest is the body of POST /ai/get-review.
type ReviewRequest struct {
	Prompt string `json:"prompt"`
}

// ReviewResponse is returned when a review was generated.
type ReviewResponse struct {
	Review       string `json:"review" yaml:"review"`
	Timestamp    string `json:"timestamp" yaml:"timestamp"`
	PromptLength int    `json:"promptLength" yaml:"promptLength"`
	ReviewLength int    `json:"reviewLength" yaml:"reviewLength"`
}

// ErrorResponse is returned for every failed review. Review is always null so
// callers can treat both payload shapes uniformly.
type ErrorResponse struct {
	Error   string  `json:"error"`
	Details string  `json:"details,omitempty"`
	Review  *string `json:"review"`
}

// HealthResponse is the liveness payload served on GET /.
type HealthResponse struct {
	Message   string     `json:"message"`
	Status    string     `json:"status"`
	Timestamp string     `json:"timestamp"`
	Endpoints Endpoints  `json:"endpoints"`
	CORS      CORSStatus `json:"cors"`
}

type Endpoints struct {
	Health string `json:"health"`
	Review string `json:"review"`
}

type CORSStatus struct {
	AllowedOrigins []string `json:"allowedOrigins"`
}

// NotFoundResponse is returned for unknown paths.
type NotFoundResponse struct {
	Error              string   `json:"error"`
	Path               string   `json:"path"`
	AvailableEndpoints []string `json:"availableEndpoints"`
}

// InternalErrorResponse is returned when a handler panics.
type InternalErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp renders t as a UTC ISO-8601 timestamp with milliseconds.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}
