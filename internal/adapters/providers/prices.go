package providers

import (
	"context"
	"net/url"
	"strings"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	portsprov "github.com/SscSPs/pfm_backend/internal/core/ports/providers"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/shopspring/decimal"
)

const (
	stockProviderName  = "finnhub"
	cryptoProviderName = "coingecko"
	metalProviderName  = "metals"
)

// PriceEndpoints locates the three price sources.
type PriceEndpoints struct {
	FinnhubURL    string
	FinnhubAPIKey string
	CoinGeckoURL  string
	MetalsURL     string
}

// PriceClient fetches USD spot prices for stocks, crypto and metals.
type PriceClient struct {
	endpoints PriceEndpoints
	client    *retryablehttp.Client
}

// NewPriceClient creates the price provider.
func NewPriceClient(endpoints PriceEndpoints, opts ClientOptions) *PriceClient {
	return &PriceClient{endpoints: endpoints, client: newRetryClient(opts)}
}

var _ portsprov.PriceProvider = (*PriceClient)(nil)

func withQuery(raw string, params map[string]string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// StockPrice returns the current quote. Finnhub answers unknown symbols with c=0,
// which is reported as an error.
func (c *PriceClient) StockPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	u, err := withQuery(c.endpoints.FinnhubURL, map[string]string{"symbol": symbol, "token": c.endpoints.FinnhubAPIKey})
	if err != nil {
		return decimal.Zero, apperrors.NewUpstreamError(stockProviderName, "invalid provider URL", err)
	}
	var quote struct {
		Current decimal.Decimal `json:"c"`
	}
	if err := getJSON(ctx, c.client, stockProviderName, u, &quote); err != nil {
		return decimal.Zero, err
	}
	if quote.Current.Sign() <= 0 {
		return decimal.Zero, apperrors.NewUpstreamError(stockProviderName, "no quote for "+symbol, nil)
	}
	return quote.Current, nil
}

// CryptoPrices fetches every id in one request.
func (c *PriceClient) CryptoPrices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal, len(ids))
	if len(ids) == 0 {
		return prices, nil
	}
	u, err := withQuery(c.endpoints.CoinGeckoURL, map[string]string{"ids": strings.Join(ids, ","), "vs_currencies": "usd"})
	if err != nil {
		return nil, apperrors.NewUpstreamError(cryptoProviderName, "invalid provider URL", err)
	}
	var resp map[string]struct {
		USD *decimal.Decimal `json:"usd"`
	}
	if err := getJSON(ctx, c.client, cryptoProviderName, u, &resp); err != nil {
		return nil, err
	}
	for id, quote := range resp {
		if quote.USD != nil && quote.USD.Sign() > 0 {
			prices[strings.ToLower(id)] = *quote.USD
		}
	}
	return prices, nil
}

// MetalPrices flattens the metals.live list of single-key objects. Timestamp entries
// are dropped.
func (c *PriceClient) MetalPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	var resp []map[string]decimal.Decimal
	if err := getJSON(ctx, c.client, metalProviderName, c.endpoints.MetalsURL, &resp); err != nil {
		return nil, err
	}
	prices := make(map[string]decimal.Decimal)
	for _, item := range resp {
		for symbol, price := range item {
			if symbol != "timestamp" && price.Sign() > 0 {
				prices[strings.ToLower(symbol)] = price
			}
		}
	}
	return prices, nil
}
