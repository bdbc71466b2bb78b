package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
)

// RateUpdater refreshes the rate table of one base currency.
type RateUpdater interface {
	UpdateCurrencyRates(ctx context.Context, base string) error
}

// HoldingRefresher re-prices every holding.
type HoldingRefresher interface {
	RefreshHoldingPrices(ctx context.Context) (*domain.PriceRefreshSummary, error)
}

// DatabaseMaintainer vacuums and analyzes the database.
type DatabaseMaintainer interface {
	PerformMaintenance(ctx context.Context) (*domain.MaintenanceReport, error)
}

// RefreshCurrencyRatesJob refreshes the default base currency.
func RefreshCurrencyRatesJob(svc RateUpdater, base, schedule string) Job {
	return Job{
		Name:     "refresh-currency-rates",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			return svc.UpdateCurrencyRates(ctx, base)
		},
	}
}

// RefreshHoldingsJob re-prices all holdings and logs the outcome.
func RefreshHoldingsJob(svc HoldingRefresher, logger *slog.Logger, schedule string) Job {
	return Job{
		Name:     "refresh-holdings",
		Schedule: schedule,
		Run: func(ctx context.Context) error {
			summary, err := svc.RefreshHoldingPrices(ctx)
			if err != nil {
				return err
			}
			logger.Info("Holdings refreshed",
				slog.Int("updated", summary.Updated),
				slog.Int("failed", summary.Failed),
				slog.Any("skipped", summary.Skipped))
			return nil
		},
	}
}

// DatabaseMaintenanceJob runs VACUUM and ANALYZE. It gets its own deadline since a
// vacuum can outlast the refresh jobs by hours.
func DatabaseMaintenanceJob(svc DatabaseMaintainer, logger *slog.Logger, schedule string, timeout time.Duration) Job {
	return Job{
		Name:     "database-maintenance",
		Schedule: schedule,
		Timeout:  timeout,
		Run: func(ctx context.Context) error {
			report, err := svc.PerformMaintenance(ctx)
			if err != nil {
				return err
			}
			logger.Info("Database maintenance finished",
				slog.Int64("size_before", report.SizeBefore),
				slog.Int64("size_after", report.SizeAfter),
				slog.Int64("space_saved", report.SpaceSaved()),
				slog.Bool("full_vacuum", report.FullVacuum),
				slog.Bool("reindexed", report.Reindexed))
			return nil
		},
	}
}
