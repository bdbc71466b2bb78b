package providers

import (
	"context"
	"net/url"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsprov "github.com/SscSPs/pfm_backend/internal/core/ports/providers"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"
)

const fxProviderName = "fxratesapi"

// FXRatesClient reads the latest rate table from an fxratesapi-compatible endpoint.
type FXRatesClient struct {
	baseURL string
	client  *retryablehttp.Client
}

// NewFXRatesClient creates a rate provider for baseURL, e.g. https://api.fxratesapi.com/latest.
func NewFXRatesClient(baseURL string, opts ClientOptions) *FXRatesClient {
	return &FXRatesClient{baseURL: baseURL, client: newRetryClient(opts)}
}

var _ portsprov.RateProvider = (*FXRatesClient)(nil)

type fxRatesResponse struct {
	Base  string                     `json:"base"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

// FetchRates returns the provider's table for base. An empty table is an error.
func (c *FXRatesClient) FetchRates(ctx context.Context, base string) (*domain.RateTable, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, apperrors.NewUpstreamError(fxProviderName, "invalid provider URL", err)
	}
	q := u.Query()
	q.Set("base", base)
	u.RawQuery = q.Encode()

	var resp fxRatesResponse
	if err := getJSON(ctx, c.client, fxProviderName, u.String(), &resp); err != nil {
		return nil, err
	}
	if len(resp.Rates) == 0 {
		return nil, apperrors.NewUpstreamError(fxProviderName, "empty rate table", nil)
	}
	if resp.Base == "" {
		resp.Base = base
	}
	return &domain.RateTable{Base: resp.Base, Rates: resp.Rates}, nil
}
