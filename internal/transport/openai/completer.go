// Package openai wraps the OpenAI-compatible API behind the domain's
// completion and embedding contracts.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/aika-cloud/answerdex/internal/domain"
	"github.com/aika-cloud/answerdex/internal/metrics"
)

// Completer issues chat completions against an OpenAI-compatible API.
type Completer struct {
	client  *openai.Client
	purpose string
	logger  *zap.Logger
}

// Config holds the provider settings shared by completer and embedder.
type Config struct {
	APIKey  string
	BaseURL string
	Logger  *zap.Logger
}

// NewCompleter creates a chat-completion client. purpose labels the metrics
// for this client instance (expansion, synthesis, classification).
func NewCompleter(cfg *Config, purpose string) *Completer {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &Completer{
		client:  openai.NewClientWithConfig(clientCfg),
		purpose: purpose,
		logger:  cfg.Logger,
	}
}

// Complete implements the usecase Completer contracts. Returns the first
// choice's text and token usage with transport-level metrics.
func (c *Completer) Complete(ctx context.Context, req domain.CompletionRequest) (domain.CompletionResult, error) {
	apiReq := openai.ChatCompletionRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
	}
	if req.MaxTokens > 0 {
		apiReq.MaxTokens = req.MaxTokens
	}

	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, apiReq)

	duration := time.Since(start)

	if err != nil {
		metrics.CompletionRequestsTotal.WithLabelValues(req.Model, c.purpose, "error").Inc()
		metrics.CompletionErrorsTotal.WithLabelValues(req.Model, c.purpose, "api_error").Inc()
		return domain.CompletionResult{}, parseAPIError(err, domain.ErrCompletionProvider)
	}

	if len(resp.Choices) == 0 {
		metrics.CompletionRequestsTotal.WithLabelValues(req.Model, c.purpose, "error").Inc()
		metrics.CompletionErrorsTotal.WithLabelValues(req.Model, c.purpose, "empty_response").Inc()
		return domain.CompletionResult{}, fmt.Errorf("empty completion response: %w", domain.ErrCompletionProvider)
	}

	metrics.CompletionRequestsTotal.WithLabelValues(req.Model, c.purpose, "success").Inc()
	metrics.CompletionRequestDuration.WithLabelValues(req.Model, c.purpose).Observe(duration.Seconds())

	if resp.Usage.TotalTokens > 0 {
		metrics.CompletionTokensTotal.
			WithLabelValues(req.Model, c.purpose, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.CompletionTokensTotal.
			WithLabelValues(req.Model, c.purpose, "total").Add(float64(resp.Usage.TotalTokens))
	}

	return domain.CompletionResult{
		Text:         resp.Choices[0].Message.Content,
		PromptTokens: resp.Usage.PromptTokens,
		TotalTokens:  resp.Usage.TotalTokens,
	}, nil
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Completer) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// parseAPIError extracts a human-readable error from the API response.
// All errors are wrapped with the given sentinel for policy decisions upstream.
func parseAPIError(err error, wrap error) error {
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		detail := extractDetail(reqErr.Body)
		if detail != "" {
			return fmt.Errorf("provider API error %d: %s: %w",
				reqErr.HTTPStatusCode, detail, wrap)
		}
		return fmt.Errorf("provider API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("provider API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("provider request failed: %w", wrap)
}

// extractDetail extracts the "detail" field from a JSON error body.
func extractDetail(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &parsed) == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return ""
}
