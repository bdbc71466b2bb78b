package services

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/utils/money"
	"github.com/SscSPs/pfm_backend/internal/utils/period"
	"github.com/shopspring/decimal"
)

type conversionService struct {
	BaseService
	rates portssvc.CurrencyRateReaderSvc
}

// NewConversionService creates a converter backed by the rate store.
func NewConversionService(rates portssvc.CurrencyRateReaderSvc) portssvc.ConversionSvc {
	return &conversionService{BaseService: newBaseService(), rates: rates}
}

var _ portssvc.ConversionSvc = (*conversionService)(nil)

// ConvertCurrent converts amount at the latest rate. Results are not rounded.
func (s *conversionService) ConvertCurrent(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, err := s.rates.GetCurrentRate(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Mul(amount, rate), nil
}

// ConvertHistorical converts amount at the rate in effect on date.
func (s *conversionService) ConvertHistorical(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, err := s.rates.GetHistoricalRate(ctx, from, to, date)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Mul(amount, rate), nil
}

// BatchConvert converts items at current rates, looking up each distinct pair once.
func (s *conversionService) BatchConvert(ctx context.Context, items []domain.MoneyAmount, to string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(items))
	if len(items) == 0 {
		return out, nil
	}

	seen := make(map[domain.CurrencyPair]struct{})
	var pairs []domain.CurrencyPair
	for _, item := range items {
		if item.Currency == to {
			continue
		}
		p := domain.CurrencyPair{From: item.Currency, To: to}
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			pairs = append(pairs, p)
		}
	}

	var rates map[domain.CurrencyPair]decimal.Decimal
	if len(pairs) > 0 {
		var err error
		if rates, err = s.rates.GetCurrentRates(ctx, pairs); err != nil {
			return nil, err
		}
	}

	for i, item := range items {
		if item.Currency == to {
			out[i] = item.Amount
			continue
		}
		out[i] = money.Mul(item.Amount, rates[domain.CurrencyPair{From: item.Currency, To: to}])
	}
	return out, nil
}

type historicalKey struct {
	from string
	day  time.Time
}

// BatchConvertHistorical converts each item at its own day's rate, looking up each
// distinct pair and day once.
func (s *conversionService) BatchConvertHistorical(ctx context.Context, items []domain.MoneyAmount, to string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(items))
	rates := make(map[historicalKey]decimal.Decimal)

	for i, item := range items {
		if item.Currency == to {
			out[i] = item.Amount
			continue
		}
		key := historicalKey{from: item.Currency, day: period.StartOfDayUTC(item.Date)}
		rate, ok := rates[key]
		if !ok {
			var err error
			rate, err = s.rates.GetHistoricalRate(ctx, item.Currency, to, key.day)
			if err != nil {
				return nil, err
			}
			rates[key] = rate
		}
		out[i] = money.Mul(item.Amount, rate)
	}
	return out, nil
}

func validateAmounts(items []domain.MoneyAmount, needDate bool) error {
	for i, item := range items {
		if !domain.IsValidCurrencyCode(item.Currency) {
			return apperrors.NewFieldValidationError("MoneyAmount", "currency",
				fmt.Sprintf("entry %d has invalid currency %q", i, item.Currency))
		}
		if needDate && item.Date.IsZero() {
			return apperrors.NewFieldValidationError("MoneyAmount", "date",
				fmt.Sprintf("entry %d has no date", i))
		}
	}
	return nil
}

// TotalConverted sums items in the target currency at current rates, unrounded.
func (s *conversionService) TotalConverted(ctx context.Context, items []domain.MoneyAmount, to string) (decimal.Decimal, error) {
	if err := validateAmounts(items, false); err != nil {
		return decimal.Zero, err
	}
	converted, err := s.BatchConvert(ctx, items, to)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Sum(converted...), nil
}

// TotalConvertedHistorical sums items in the target currency at their own day's rate.
func (s *conversionService) TotalConvertedHistorical(ctx context.Context, items []domain.MoneyAmount, to string) (decimal.Decimal, error) {
	if err := validateAmounts(items, true); err != nil {
		return decimal.Zero, err
	}
	converted, err := s.BatchConvertHistorical(ctx, items, to)
	if err != nil {
		return decimal.Zero, err
	}
	return money.Sum(converted...), nil
}
