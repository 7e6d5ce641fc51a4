package main

import "github.com/sevigo/code-critic/internal/api"

// Carries the outcome of a review submission.
type reviewCompleteMsg struct {
	resp *api.ReviewResponse
	err  error
}

// Carries the outcome of a connection test against GET /.
type healthCheckMsg struct {
	health *api.HealthResponse
	err    error
}

// Clears a transient status line; seq guards against clearing a newer one.
type clearStatusMsg struct{ seq int }
