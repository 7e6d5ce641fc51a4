package main

import (
	"context"
	"errors"
	"net/http"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevigo/code-critic/internal/api"
	"github.com/sevigo/code-critic/internal/apiclient"
)

type fakeReviewer struct {
	reviewed []string
	resp     *api.ReviewResponse
	err      error
}

func (f *fakeReviewer) Review(_ context.Context, code string) (*api.ReviewResponse, error) {
	f.reviewed = append(f.reviewed, code)
	return f.resp, f.err
}

func (f *fakeReviewer) Health(context.Context) (*api.HealthResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.HealthResponse{Status: "running"}, nil
}

func (f *fakeReviewer) BaseURL() string { return "http://localhost:5000" }

func press(t *testing.T, m *model, key tea.KeyType) tea.Cmd {
	t.Helper()
	_, cmd := m.Update(tea.KeyMsg{Type: key})
	return cmd
}

func TestSubmit_EmptyCode(t *testing.T) {
	client := &fakeReviewer{}
	m := initialModel(ThemeCyan, client, "   \n ")

	cmd := press(t, m, tea.KeyCtrlS)
	assert.Nil(t, cmd)
	assert.False(t, m.isLoading)
	assert.True(t, m.statusErr)
	assert.Equal(t, msgEmptyCode, m.status)
	assert.Empty(t, client.reviewed)
}

func TestSubmit_Success(t *testing.T) {
	client := &fakeReviewer{resp: &api.ReviewResponse{Review: "## ❌ Problems Found:\n- none", PromptLength: 5, ReviewLength: 28}}
	m := initialModel(ThemeCyan, client, "x = 1")

	cmd := press(t, m, tea.KeyCtrlS)
	require.NotNil(t, cmd)
	assert.True(t, m.isLoading)
	assert.Contains(t, m.View(), "Analyzing")

	msg := submitReviewCmd(client, m.editor.Value())()
	m.Update(msg)

	assert.False(t, m.isLoading)
	assert.Equal(t, []string{"x = 1"}, client.reviewed)
	assert.Equal(t, client.resp.Review, m.review)
	assert.False(t, m.statusErr)
	assert.Contains(t, m.View(), "Code Review Results")
}

func TestSubmit_FailureIsDescribed(t *testing.T) {
	m := initialModel(ThemeCyan, &fakeReviewer{}, "x")
	m.isLoading = true

	m.Update(reviewCompleteMsg{err: &apiclient.Error{Status: http.StatusTooManyRequests, Message: "AI service rate limit exceeded. Please try again later."}})

	assert.False(t, m.isLoading)
	assert.True(t, m.statusErr)
	assert.Equal(t, "❌ Rate Limit: API quota exceeded. Please try again later.", m.status)
	assert.Contains(t, m.View(), "Troubleshooting")
}

func TestClear(t *testing.T) {
	m := initialModel(ThemeCyan, &fakeReviewer{}, "some code")
	m.review = "old review"
	m.setStatus("old error", true)

	press(t, m, tea.KeyCtrlL)

	assert.Empty(t, m.editor.Value())
	assert.Empty(t, m.review)
	assert.Empty(t, m.status)
}

func TestTestConnection(t *testing.T) {
	client := &fakeReviewer{}
	m := initialModel(ThemeCyan, client, "")

	cmd := press(t, m, tea.KeyCtrlT)
	require.NotNil(t, cmd)
	assert.True(t, m.isLoading)

	_, clearCmd := m.Update(testConnectionCmd(client)())
	assert.Equal(t, msgConnected, m.status)
	assert.False(t, m.statusErr)
	require.NotNil(t, clearCmd)

	// A stale clear does not wipe a newer status.
	seq := m.statusSeq
	m.setStatus("newer", false)
	m.Update(clearStatusMsg{seq: seq})
	assert.Equal(t, "newer", m.status)

	m.Update(clearStatusMsg{seq: m.statusSeq})
	assert.Empty(t, m.status)
}

func TestTestConnection_Failure(t *testing.T) {
	client := &fakeReviewer{err: errors.New("dial tcp: connection refused")}
	m := initialModel(ThemeCyan, client, "")

	press(t, m, tea.KeyCtrlT)
	m.Update(testConnectionCmd(client)())

	assert.Equal(t, msgDisconnected, m.status)
	assert.True(t, m.statusErr)
}
