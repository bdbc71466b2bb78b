// Package providers declares the outbound ports to external data sources.
package providers

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateProvider fetches a complete rate table for a base currency.
type RateProvider interface {
	FetchRates(ctx context.Context, base string) (*domain.RateTable, error)
}

// PriceProvider fetches USD spot prices.
type PriceProvider interface {
	// StockPrice returns the latest quote for a ticker symbol.
	StockPrice(ctx context.Context, symbol string) (decimal.Decimal, error)
	// CryptoPrices returns prices keyed by the requested coin ids; unknown ids are omitted.
	CryptoPrices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error)
	// MetalPrices returns spot prices keyed by lower-case metal symbol.
	MetalPrices(ctx context.Context) (map[string]decimal.Decimal, error)
}

// TextGenerator produces a completion for a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
