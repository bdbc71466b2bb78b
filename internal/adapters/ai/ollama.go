// Package ai implements the text generation port against an Ollama server.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	portsprov "github.com/SscSPs/pfm_backend/internal/core/ports/providers"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

const providerName = "ollama"

// OllamaClient calls /api/generate without streaming.
type OllamaClient struct {
	baseURL string
	model   string
	client  *retryablehttp.Client
}

// NewOllamaClient creates a generator for model served at baseURL.
func NewOllamaClient(baseURL, model string, timeout time.Duration, retryMax int, logger *slog.Logger) *OllamaClient {
	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Timeout: timeout}
	client.RetryMax = retryMax
	client.Logger = nil
	if logger != nil {
		client.Logger = logger
	}
	return &OllamaClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
	}
}

var _ portsprov.TextGenerator = (*OllamaClient)(nil)

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error"`
}

// Generate returns the model's completion for prompt with temperature 0.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(generateRequest{
		Model:   c.model,
		Prompt:  prompt,
		Stream:  false,
		Options: map[string]any{"temperature": 0},
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal request")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", apperrors.NewUpstreamError(providerName, "request failed", errors.Wrap(err, "failed to create request"))
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", apperrors.NewUpstreamError(providerName, "AI generation failed", errors.Wrap(err, "request failed"))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", apperrors.NewUpstreamError(providerName, "AI generation failed", errors.Wrap(err, "failed to read response"))
	}
	var out generateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", apperrors.NewUpstreamError(providerName, "AI generation failed", errors.Wrap(err, "failed to parse response"))
	}
	if resp.StatusCode != http.StatusOK || out.Error != "" {
		return "", apperrors.NewUpstreamError(providerName, fmt.Sprintf("AI generation failed (status %d): %s", resp.StatusCode, out.Error), nil)
	}
	return strings.TrimSpace(out.Response), nil
}
