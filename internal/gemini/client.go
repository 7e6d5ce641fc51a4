// Package gemini implements the review client on top of the Google Gemini
// generateContent REST API.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sevigo/code-critic/internal/config"
	"github.com/sevigo/code-critic/internal/core"
	"github.com/sevigo/code-critic/internal/llm"
)

const (
	tracerName = "github.com/sevigo/code-critic/internal/gemini"

	// minAPIKeyLength rejects keys that cannot possibly be valid.
	minAPIKeyLength = 10
	// maxResponseBytes bounds how much of a provider response is read.
	maxResponseBytes = 4 << 20

	temperature     = 0.3
	maxOutputTokens = 2048
	topP            = 0.8
	topK            = 40
)

// Client sends code to Gemini and returns the generated review.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	prompts    *llm.PromptManager
	logger     *slog.Logger
	tracer     trace.Tracer
}

var _ core.ReviewClient = (*Client)(nil)

// NewClient creates a Gemini review client from the provider configuration.
func NewClient(cfg *config.Config, prompts *llm.PromptManager, logger *slog.Logger) *Client {
	return &Client{
		apiKey:     strings.TrimSpace(cfg.Gemini.APIKey),
		model:      cfg.Gemini.Model,
		baseURL:    strings.TrimRight(cfg.Gemini.BaseURL, "/"),
		timeout:    cfg.Gemini.Timeout,
		httpClient: newHTTPClient(),
		prompts:    prompts,
		logger:     logger.With("component", "gemini"),
		tracer:     otel.Tracer(tracerName),
	}
}

// newHTTPClient has no overall timeout: the per-call deadline comes from the
// request context.
func newHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{Transport: otelhttp.NewTransport(transport)}
}

// GenerateReview wraps prompt in the review template, calls the provider with
// a bounded wait and returns the review text verbatim.
func (c *Client) GenerateReview(ctx context.Context, prompt string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "gemini.GenerateReview", trace.WithAttributes(
		attribute.String("gemini.model", c.model),
		attribute.Int("review.prompt_length", core.CharCount(prompt)),
	))
	defer span.End()

	text, err := c.generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, core.KindOf(err).String())
		return "", err
	}

	span.SetAttributes(attribute.Int("review.length", core.CharCount(text)))
	return text, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	if err := c.checkCredential(); err != nil {
		c.logger.Error("provider credential is not usable", "error", err)
		return "", err
	}

	body, err := c.buildRequestBody(prompt)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	c.logger.Debug("sending request to gemini", "model", c.model, "payload_bytes", len(body))
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.transportError(ctx, err, start)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", c.transportError(ctx, err, start)
	}

	c.logger.Debug("gemini responded", "status", resp.StatusCode, "elapsed", time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("gemini returned an error response", "status", resp.StatusCode, "body", truncate(string(payload), 512))
		return "", statusError(resp.StatusCode, payload)
	}

	text, err := extractText(payload)
	if err != nil {
		c.logger.Error("unexpected gemini response", "error", err, "body", truncate(string(payload), 512))
		return "", err
	}
	return text, nil
}

func (c *Client) checkCredential() error {
	switch {
	case c.apiKey == "":
		return core.NewConfigurationError(core.ReasonMissingOrInvalidCredential, "GOOGLE_GEMINI_API_KEY is not configured")
	case len(c.apiKey) < minAPIKeyLength:
		return core.NewConfigurationError(core.ReasonMissingOrInvalidCredential, "invalid API key format")
	}
	return nil
}

func (c *Client) buildRequestBody(prompt string) ([]byte, error) {
	text, err := c.prompts.Render(llm.CodeReviewPrompt, llm.GeminiProvider, core.ReviewPromptData{Code: prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to build review prompt: %w", err)
	}

	body, err := json.Marshal(generateContentRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: text}}}},
		GenerationConfig: generationConfig{
			Temperature:     temperature,
			MaxOutputTokens: maxOutputTokens,
			TopP:            topP,
			TopK:            topK,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gemini request: %w", err)
	}
	return body, nil
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
}

// transportError separates the bounded wait expiring from every other failure
// to reach the provider. By the time Do or a body read returns, the request's
// connection has been torn down.
func (c *Client) transportError(ctx context.Context, err error, start time.Time) error {
	elapsed := time.Since(start).Round(time.Millisecond)
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		c.logger.Error("gemini request timed out", "timeout", c.timeout, "elapsed", elapsed)
		return core.NewTimeoutError(err)
	}
	c.logger.Error("gemini request failed", "error", err, "elapsed", elapsed)
	return core.NewNetworkError(err)
}

func statusError(status int, payload []byte) error {
	message := http.StatusText(status)
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil && apiErr.Error.Message != "" {
		message = apiErr.Error.Message
	}

	switch {
	case status == http.StatusUnauthorized:
		return core.NewAuthError(status, "invalid API key for Google Gemini service")
	case status == http.StatusTooManyRequests:
		return core.NewRateLimitError(status, "rate limit exceeded for Google Gemini service")
	case status >= http.StatusInternalServerError:
		return core.NewProviderUnavailableError(status, "Google Gemini service is temporarily unavailable")
	default:
		return core.NewProviderError(status, message)
	}
}

func extractText(payload []byte) (string, error) {
	var resp generateContentResponse
	if err := json.Unmarshal(payload, &resp); err != nil {
		return "", core.NewMalformedResponseError(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", core.NewMalformedResponseError(errors.New("missing candidates[0].content.parts[0]"))
	}

	text := resp.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", core.NewEmptyResponseError()
	}
	return text, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
