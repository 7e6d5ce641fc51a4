package main

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sevigo/code-critic/internal/api"
	"github.com/sevigo/code-critic/internal/apiclient"
)

// reviewer is the part of the API client the UI needs.
type reviewer interface {
	Review(ctx context.Context, code string) (*api.ReviewResponse, error)
	Health(ctx context.Context) (*api.HealthResponse, error)
	BaseURL() string
}

var _ reviewer = (*apiclient.Client)(nil)

func submitReviewCmd(client reviewer, code string) tea.Cmd {
	return func() tea.Msg {
		resp, err := client.Review(context.Background(), code)
		return reviewCompleteMsg{resp: resp, err: err}
	}
}

func testConnectionCmd(client reviewer) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		health, err := client.Health(ctx)
		return healthCheckMsg{health: health, err: err}
	}
}

func clearStatusAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
