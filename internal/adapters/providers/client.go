// Package providers implements the outbound rate and price ports over HTTP.
package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
)

// maxBodyBytes caps how much of a provider response is read.
const maxBodyBytes = 4 << 20

// ClientOptions configures the shared HTTP client of the providers.
type ClientOptions struct {
	Timeout  time.Duration
	RetryMax int
	Logger   *slog.Logger
}

// newRetryClient builds a retrying client whose per-attempt timeout is opts.Timeout.
func newRetryClient(opts ClientOptions) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.HTTPClient = &http.Client{Timeout: opts.Timeout}
	client.RetryMax = opts.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	// *slog.Logger satisfies retryablehttp.LeveledLogger.
	client.Logger = nil
	if opts.Logger != nil {
		client.Logger = opts.Logger
	}
	return client
}

// getJSON fetches url and decodes the body into out. Failures come back as Upstream
// errors naming the provider.
func getJSON(ctx context.Context, client *retryablehttp.Client, provider, url string, out any) error {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return apperrors.NewUpstreamError(provider, "request failed", errors.Wrap(err, "failed to create request"))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return apperrors.NewUpstreamError(provider, "request failed", errors.Wrap(err, "request failed"))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return apperrors.NewUpstreamError(provider, "request failed", errors.Wrap(err, "failed to read response"))
	}
	if resp.StatusCode != http.StatusOK {
		return apperrors.NewUpstreamError(provider, fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.NewUpstreamError(provider, "malformed response", errors.Wrap(err, "failed to parse response"))
	}
	return nil
}
