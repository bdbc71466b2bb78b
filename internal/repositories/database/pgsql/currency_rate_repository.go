package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/SscSPs/pfm_backend/internal/utils/period"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxCurrencyRateRepository stores the current rate table and its daily history.
type PgxCurrencyRateRepository struct {
	BaseRepository
	tx *PgxTransactionManager
}

func newPgxCurrencyRateRepository(db *pgxpool.Pool, tx *PgxTransactionManager) *PgxCurrencyRateRepository {
	return &PgxCurrencyRateRepository{BaseRepository: BaseRepository{Pool: db}, tx: tx}
}

var _ portsrepo.CurrencyRateRepositoryFacade = (*PgxCurrencyRateRepository)(nil)

func (r *PgxCurrencyRateRepository) scanCurrent(rows pgx.Rows) ([]domain.CurrencyRate, error) {
	defer rows.Close()
	rates := []domain.CurrencyRate{}
	for rows.Next() {
		var cr domain.CurrencyRate
		if err := rows.Scan(&cr.Base, &cr.Target, &cr.Rate, &cr.UpdatedAt); err != nil {
			return nil, mapError(rateResource, err)
		}
		rates = append(rates, cr)
	}
	return rates, mapError(rateResource, rows.Err())
}

// FindCurrentRates loads every requested pair in one round trip.
func (r *PgxCurrencyRateRepository) FindCurrentRates(ctx context.Context, pairs []domain.CurrencyPair) ([]domain.CurrencyRate, error) {
	if len(pairs) == 0 {
		return []domain.CurrencyRate{}, nil
	}
	bases := make([]string, len(pairs))
	targets := make([]string, len(pairs))
	for i, p := range pairs {
		bases[i], targets[i] = p.From, p.To
	}
	query := `
		SELECT c.base, c.target, c.rate, c.updated_at
		FROM currency_rates c
		JOIN unnest($1::text[], $2::text[]) AS p(base, target)
		  ON c.base = p.base AND c.target = p.target;`
	rows, err := r.db(ctx).Query(ctx, query, bases, targets)
	if err != nil {
		return nil, mapError(rateResource, err)
	}
	return r.scanCurrent(rows)
}

func (r *PgxCurrencyRateRepository) ListCurrentRates(ctx context.Context, base string) ([]domain.CurrencyRate, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT base, target, rate, updated_at FROM currency_rates WHERE base = $1 ORDER BY target;`, base)
	if err != nil {
		return nil, mapError(rateResource, err)
	}
	return r.scanCurrent(rows)
}

func (r *PgxCurrencyRateRepository) CountCurrentRates(ctx context.Context) (int64, error) {
	var n int64
	err := r.db(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM currency_rates;`).Scan(&n)
	return n, mapError(rateResource, err)
}

func (r *PgxCurrencyRateRepository) CountHistoricalRatesOn(ctx context.Context, rateDate time.Time) (int64, error) {
	var n int64
	err := r.db(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM currency_rate_history WHERE rate_date = $1;`,
		period.StartOfDayUTC(rateDate)).Scan(&n)
	return n, mapError(rateHistoryResource, err)
}

func scanHistory(row pgx.Row) (*domain.CurrencyRateHistory, error) {
	var h domain.CurrencyRateHistory
	if err := row.Scan(&h.Base, &h.Target, &h.Rate, &h.RateDate); err != nil {
		return nil, err
	}
	h.RateDate = h.RateDate.UTC()
	return &h, nil
}

func (r *PgxCurrencyRateRepository) FindHistoricalRate(ctx context.Context, base, target string, rateDate time.Time) (*domain.CurrencyRateHistory, error) {
	query := `
		SELECT base, target, rate, rate_date FROM currency_rate_history
		WHERE base = $1 AND target = $2 AND rate_date = $3;`
	h, err := scanHistory(r.db(ctx).QueryRow(ctx, query, base, target, period.StartOfDayUTC(rateDate)))
	if err != nil {
		return nil, mapError(rateHistoryResource, err)
	}
	return h, nil
}

func (r *PgxCurrencyRateRepository) FindLatestHistoricalRateOnOrBefore(ctx context.Context, base, target string, rateDate time.Time) (*domain.CurrencyRateHistory, error) {
	query := `
		SELECT base, target, rate, rate_date FROM currency_rate_history
		WHERE base = $1 AND target = $2 AND rate_date <= $3
		ORDER BY rate_date DESC LIMIT 1;`
	h, err := scanHistory(r.db(ctx).QueryRow(ctx, query, base, target, period.StartOfDayUTC(rateDate)))
	if err != nil {
		return nil, mapError(rateHistoryResource, err)
	}
	return h, nil
}

// FindLatestSnapshotBefore returns an empty slice when no earlier snapshot exists.
func (r *PgxCurrencyRateRepository) FindLatestSnapshotBefore(ctx context.Context, base string, before time.Time) ([]domain.CurrencyRateHistory, error) {
	query := `
		SELECT base, target, rate, rate_date FROM currency_rate_history
		WHERE base = $1 AND rate_date = (
			SELECT MAX(rate_date) FROM currency_rate_history WHERE base = $1 AND rate_date < $2
		)
		ORDER BY target;`
	rows, err := r.db(ctx).Query(ctx, query, base, period.StartOfDayUTC(before))
	if err != nil {
		return nil, mapError(rateHistoryResource, err)
	}
	defer rows.Close()

	snapshot := []domain.CurrencyRateHistory{}
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, mapError(rateHistoryResource, err)
		}
		snapshot = append(snapshot, *h)
	}
	return snapshot, mapError(rateHistoryResource, rows.Err())
}

// SaveRateSnapshot upserts the current row and the rateDate history row of every
// target in a single batch inside one transaction.
func (r *PgxCurrencyRateRepository) SaveRateSnapshot(ctx context.Context, base string, rates map[string]decimal.Decimal, rateDate time.Time) error {
	day := period.StartOfDayUTC(rateDate)
	return r.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		batch := &pgx.Batch{}
		for target, rate := range rates {
			batch.Queue(`
				INSERT INTO currency_rates (base, target, rate, updated_at) VALUES ($1, $2, $3, NOW())
				ON CONFLICT (base, target) DO UPDATE SET rate = EXCLUDED.rate, updated_at = EXCLUDED.updated_at;`,
				base, target, rate)
			batch.Queue(`
				INSERT INTO currency_rate_history (base, target, rate, rate_date) VALUES ($1, $2, $3, $4)
				ON CONFLICT (base, target, rate_date) DO UPDATE SET rate = EXCLUDED.rate;`,
				base, target, rate, day)
		}
		if batch.Len() == 0 {
			return nil
		}
		results := r.db(ctx).SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			if _, err := results.Exec(); err != nil {
				_ = results.Close()
				return mapError(rateResource, err)
			}
		}
		return mapError(rateResource, results.Close())
	})
}
