package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsprov "github.com/SscSPs/pfm_backend/internal/core/ports/providers"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/utils/period"
	"github.com/shopspring/decimal"
)

const (
	defaultMaxStaleDays = 7
	rateResource        = "CurrencyRate"
	rateHistoryResource = "CurrencyRateHistory"
)

// CurrencyRateServiceOption is a functional option for configuring the rate service
type CurrencyRateServiceOption func(*currencyRateService)

// WithDefaultBaseCurrency sets the base refreshed at startup.
func WithDefaultBaseCurrency(base string) CurrencyRateServiceOption {
	return func(s *currencyRateService) {
		s.defaultBase = base
	}
}

// WithMaxStaleDays caps how old a snapshot the fallback may copy forward.
func WithMaxStaleDays(days int) CurrencyRateServiceOption {
	return func(s *currencyRateService) {
		if days > 0 {
			s.maxStaleDays = days
		}
	}
}

// WithRateClock overrides the service clock.
func WithRateClock(now func() time.Time) CurrencyRateServiceOption {
	return func(s *currencyRateService) {
		s.Now = now
	}
}

type currencyRateService struct {
	BaseService
	rateRepo     portsrepo.CurrencyRateRepositoryFacade
	provider     portsprov.RateProvider
	defaultBase  string
	maxStaleDays int
}

// NewCurrencyRateService creates the exchange rate store service.
func NewCurrencyRateService(rateRepo portsrepo.CurrencyRateRepositoryFacade, provider portsprov.RateProvider, options ...CurrencyRateServiceOption) portssvc.CurrencyRateSvcFacade {
	s := &currencyRateService{
		BaseService:  newBaseService(),
		rateRepo:     rateRepo,
		provider:     provider,
		defaultBase:  "USD",
		maxStaleDays: defaultMaxStaleDays,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.CurrencyRateSvcFacade = (*currencyRateService)(nil)

// UpdateCurrencyRates fetches a full table for base and stores it as today's snapshot.
// A failed or malformed fetch falls back to the previous snapshot.
func (s *currencyRateService) UpdateCurrencyRates(ctx context.Context, base string) error {
	if !domain.IsValidCurrencyCode(base) {
		return apperrors.NewFieldValidationError(rateResource, "base", fmt.Sprintf("invalid base currency %q", base))
	}
	logger := s.GetLogger(ctx).With(slog.String("base", base))

	table, err := s.provider.FetchRates(ctx, base)
	if err != nil {
		logger.Warn("Rate provider failed, using previous snapshot", slog.String("error", err.Error()))
		return s.fallback(ctx, base, err)
	}

	rates := sanitizeRates(base, table)
	if len(rates) == 0 {
		logger.Warn("Rate provider returned no usable rates, using previous snapshot")
		return s.fallback(ctx, base, errors.New("empty or malformed rate table"))
	}

	today := period.StartOfDayUTC(s.now())
	if err := s.rateRepo.SaveRateSnapshot(ctx, base, rates, today); err != nil {
		s.LogError(ctx, err, "Failed to save rate snapshot", slog.String("base", base))
		return err
	}
	logger.Info("Currency rates updated", slog.Int("count", len(rates)))
	return nil
}

func (s *currencyRateService) fallback(ctx context.Context, base string, cause error) error {
	if err := s.UsePreviousDayRates(ctx, base); err != nil {
		return fmt.Errorf("refresh %s rates failed (%v): %w", base, cause, err)
	}
	return nil
}

// sanitizeRates drops the identity entry, malformed codes and non-positive rates.
func sanitizeRates(base string, table *domain.RateTable) map[string]decimal.Decimal {
	if table == nil {
		return nil
	}
	out := make(map[string]decimal.Decimal, len(table.Rates))
	for target, rate := range table.Rates {
		if target == base || !domain.IsValidCurrencyCode(target) || rate.Sign() <= 0 {
			continue
		}
		out[target] = rate
	}
	return out
}

// UsePreviousDayRates copies the newest snapshot strictly before today into the current
// table and today's history, unless it is older than the staleness cap.
func (s *currencyRateService) UsePreviousDayRates(ctx context.Context, base string) error {
	today := period.StartOfDayUTC(s.now())

	rows, err := s.rateRepo.FindLatestSnapshotBefore(ctx, base, today)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	if len(rows) == 0 {
		return apperrors.NewDataIntegrityError(rateHistoryResource,
			fmt.Sprintf("no previous rate snapshot for base %s", base), err)
	}

	snapshotDate := rows[0].RateDate
	if age := period.DaysBetween(snapshotDate, today); age > s.maxStaleDays {
		return apperrors.NewDataIntegrityError(rateHistoryResource,
			fmt.Sprintf("latest %s snapshot from %s is %d days old, limit is %d", base, snapshotDate.Format(time.DateOnly), age, s.maxStaleDays), nil)
	}

	rates := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		rates[row.Target] = row.Rate
	}
	if err := s.rateRepo.SaveRateSnapshot(ctx, base, rates, today); err != nil {
		return err
	}
	s.LogInfo(ctx, "Copied previous rate snapshot forward",
		slog.String("base", base),
		slog.String("snapshot_date", snapshotDate.Format(time.DateOnly)),
		slog.Int("count", len(rates)))
	return nil
}

// EnsureCurrencyRatesExist refreshes the default base when the store is empty or
// today's snapshot is missing.
func (s *currencyRateService) EnsureCurrencyRatesExist(ctx context.Context) error {
	current, err := s.rateRepo.CountCurrentRates(ctx)
	if err != nil {
		return err
	}
	today, err := s.rateRepo.CountHistoricalRatesOn(ctx, period.StartOfDayUTC(s.now()))
	if err != nil {
		return err
	}
	if current > 0 && today > 0 {
		s.LogDebug(ctx, "Currency rates present", slog.Int64("current", current), slog.Int64("today", today))
		return nil
	}
	s.LogInfo(ctx, "Currency rates missing, refreshing", slog.Int64("current", current), slog.Int64("today", today))
	return s.UpdateCurrencyRates(ctx, s.defaultBase)
}

func validatePair(from, to string) error {
	if !domain.IsValidCurrencyCode(from) {
		return apperrors.NewFieldValidationError(rateResource, "from", fmt.Sprintf("invalid currency code %q", from))
	}
	if !domain.IsValidCurrencyCode(to) {
		return apperrors.NewFieldValidationError(rateResource, "to", fmt.Sprintf("invalid currency code %q", to))
	}
	return nil
}

// GetCurrentRate returns the latest rate for from->to.
func (s *currencyRateService) GetCurrentRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	pair := domain.CurrencyPair{From: from, To: to}
	rates, err := s.GetCurrentRates(ctx, []domain.CurrencyPair{pair})
	if err != nil {
		return decimal.Zero, err
	}
	return rates[pair], nil
}

// GetCurrentRates resolves every requested pair from one store query. Only the stored
// from->to row is used; reverse and cross rates are never derived.
func (s *currencyRateService) GetCurrentRates(ctx context.Context, pairs []domain.CurrencyPair) (map[domain.CurrencyPair]decimal.Decimal, error) {
	result := make(map[domain.CurrencyPair]decimal.Decimal, len(pairs))
	seen := make(map[domain.CurrencyPair]struct{})
	var query []domain.CurrencyPair
	for _, p := range pairs {
		if p.From == p.To {
			result[p] = decimal.NewFromInt(1)
			continue
		}
		if err := validatePair(p.From, p.To); err != nil {
			return nil, err
		}
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			query = append(query, p)
		}
	}
	if len(query) == 0 {
		return result, nil
	}

	rows, err := s.rateRepo.FindCurrentRates(ctx, query)
	if err != nil {
		return nil, err
	}
	table := make(map[domain.CurrencyPair]decimal.Decimal, len(rows))
	for _, row := range rows {
		table[domain.CurrencyPair{From: row.Base, To: row.Target}] = row.Rate
	}

	for _, p := range pairs {
		if p.From == p.To {
			continue
		}
		rate, ok := table[p]
		if !ok {
			err := apperrors.NewDataIntegrityError(rateResource,
				fmt.Sprintf("current rate missing for %s->%s", p.From, p.To), nil)
			s.LogError(ctx, err, "Current rate lookup failed", slog.String("from", p.From), slog.String("to", p.To))
			return nil, err
		}
		result[p] = rate
	}
	return result, nil
}

// GetHistoricalRate returns the rate in effect on date's UTC day, using the closest
// earlier day when that day has no row. Later rows are never used.
func (s *currencyRateService) GetHistoricalRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	if err := validatePair(from, to); err != nil {
		return decimal.Zero, err
	}
	day := period.StartOfDayUTC(date)

	rate, err := s.rateOnOrBefore(ctx, from, to, day)
	if err == nil {
		return rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, err
	}
	err = apperrors.NewDataIntegrityError(rateHistoryResource,
		fmt.Sprintf("no historical rate for %s->%s on or before %s", from, to, day.Format(time.DateOnly)), nil)
	s.LogError(ctx, err, "Historical rate lookup failed",
		slog.String("from", from), slog.String("to", to), slog.String("date", day.Format(time.DateOnly)))
	return decimal.Zero, err
}

func (s *currencyRateService) rateOnOrBefore(ctx context.Context, base, target string, day time.Time) (decimal.Decimal, error) {
	row, err := s.rateRepo.FindHistoricalRate(ctx, base, target, day)
	if err == nil {
		return row.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, err
	}
	row, err = s.rateRepo.FindLatestHistoricalRateOnOrBefore(ctx, base, target, day)
	if err != nil {
		return decimal.Zero, err
	}
	return row.Rate, nil
}

// ListCurrentRates returns the current rates quoted against base.
func (s *currencyRateService) ListCurrentRates(ctx context.Context, base string) ([]domain.CurrencyRate, error) {
	if !domain.IsValidCurrencyCode(base) {
		return nil, apperrors.NewFieldValidationError(rateResource, "base", fmt.Sprintf("invalid base currency %q", base))
	}
	return s.rateRepo.ListCurrentRates(ctx, base)
}
