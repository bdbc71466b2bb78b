package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CurrencyRateReader defines read operations over current and historical rates.
type CurrencyRateReader interface {
	// FindCurrentRates returns the current rates of every pair that exists; missing pairs are omitted.
	FindCurrentRates(ctx context.Context, pairs []domain.CurrencyPair) ([]domain.CurrencyRate, error)
	ListCurrentRates(ctx context.Context, base string) ([]domain.CurrencyRate, error)
	CountCurrentRates(ctx context.Context) (int64, error)
	CountHistoricalRatesOn(ctx context.Context, rateDate time.Time) (int64, error)

	// FindHistoricalRate returns the row dated exactly rateDate or apperrors.ErrNotFound.
	FindHistoricalRate(ctx context.Context, base, target string, rateDate time.Time) (*domain.CurrencyRateHistory, error)
	// FindLatestHistoricalRateOnOrBefore returns the newest row dated on or before rateDate.
	FindLatestHistoricalRateOnOrBefore(ctx context.Context, base, target string, rateDate time.Time) (*domain.CurrencyRateHistory, error)
	// FindLatestSnapshotBefore returns every row of the newest snapshot day strictly before the given day.
	FindLatestSnapshotBefore(ctx context.Context, base string, before time.Time) ([]domain.CurrencyRateHistory, error)
}

// CurrencyRateWriter defines write operations for rates.
type CurrencyRateWriter interface {
	// SaveRateSnapshot upserts the current rate and the rateDate history row of every
	// target atomically.
	SaveRateSnapshot(ctx context.Context, base string, rates map[string]decimal.Decimal, rateDate time.Time) error
}

// CurrencyRateRepositoryFacade combines all rate repository interfaces.
type CurrencyRateRepositoryFacade interface {
	CurrencyRateReader
	CurrencyRateWriter
}
