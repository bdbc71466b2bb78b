package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRates(ctx context.Context, base string) (*domain.RateTable, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateTable), args.Error(1)
}

// --- Mock PriceProvider ---
type MockPriceProvider struct {
	mock.Mock
}

func (m *MockPriceProvider) StockPrice(ctx context.Context, symbol string) (decimal.Decimal, error) {
	args := m.Called(ctx, symbol)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPriceProvider) CryptoPrices(ctx context.Context, ids []string) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

func (m *MockPriceProvider) MetalPrices(ctx context.Context) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]decimal.Decimal), args.Error(1)
}

// --- Mock TextGenerator ---
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// --- Mock CurrencyRateReaderSvc ---
type MockRateReader struct {
	mock.Mock
}

func (m *MockRateReader) GetCurrentRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateReader) GetCurrentRates(ctx context.Context, pairs []domain.CurrencyPair) (map[domain.CurrencyPair]decimal.Decimal, error) {
	args := m.Called(ctx, pairs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.CurrencyPair]decimal.Decimal), args.Error(1)
}

func (m *MockRateReader) GetHistoricalRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateReader) ListCurrentRates(ctx context.Context, base string) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func utcDate(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// --- Mock MaintenanceRepository ---
type MockMaintenanceRepository struct {
	mock.Mock
}

func (m *MockMaintenanceRepository) DatabaseSize(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMaintenanceRepository) Vacuum(ctx context.Context, full bool) error {
	return m.Called(ctx, full).Error(0)
}

func (m *MockMaintenanceRepository) Reindex(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockMaintenanceRepository) Analyze(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
