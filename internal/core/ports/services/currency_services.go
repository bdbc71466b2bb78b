package services

import (
	"context"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyRateReaderSvc resolves exchange rates.
type CurrencyRateReaderSvc interface {
	// GetCurrentRate returns the latest rate; a missing pair is a data-integrity error.
	GetCurrentRate(ctx context.Context, from, to string) (decimal.Decimal, error)
	// GetCurrentRates resolves every pair with a single store query.
	GetCurrentRates(ctx context.Context, pairs []domain.CurrencyPair) (map[domain.CurrencyPair]decimal.Decimal, error)
	// GetHistoricalRate returns the rate in effect on date, falling back to the closest
	// earlier day; nothing on or before date is a data-integrity error.
	GetHistoricalRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error)
	ListCurrentRates(ctx context.Context, base string) ([]domain.CurrencyRate, error)
}

// CurrencyRateWriterSvc maintains the rate store.
type CurrencyRateWriterSvc interface {
	// UpdateCurrencyRates refreshes base from the provider, falling back to the previous
	// snapshot when the provider fails.
	UpdateCurrencyRates(ctx context.Context, base string) error
	// UsePreviousDayRates copies the latest earlier snapshot forward to today.
	UsePreviousDayRates(ctx context.Context, base string) error
	// EnsureCurrencyRatesExist refreshes when the store is empty or has no snapshot for today.
	EnsureCurrencyRatesExist(ctx context.Context) error
}

// CurrencyRateSvcFacade combines all rate service interfaces.
type CurrencyRateSvcFacade interface {
	CurrencyRateReaderSvc
	CurrencyRateWriterSvc
}

// ConversionSvc converts money between currencies.
type ConversionSvc interface {
	ConvertCurrent(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
	ConvertHistorical(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error)
	// BatchConvert converts every item at current rates with one lookup per distinct pair.
	BatchConvert(ctx context.Context, items []domain.MoneyAmount, to string) ([]decimal.Decimal, error)
	// BatchConvertHistorical converts every item at its own date's rate with one lookup
	// per distinct pair and day.
	BatchConvertHistorical(ctx context.Context, items []domain.MoneyAmount, to string) ([]decimal.Decimal, error)
	TotalConverted(ctx context.Context, items []domain.MoneyAmount, to string) (decimal.Decimal, error)
	TotalConvertedHistorical(ctx context.Context, items []domain.MoneyAmount, to string) (decimal.Decimal, error)
}
