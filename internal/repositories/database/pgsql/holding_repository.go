package pgsql

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const holdingColumns = `h.holding_id, h.user_id, h.platform, h.ticker, h.name, h.asset_type, h.quantity, h.avg_cost, h.holding_currency, h.last_price, h.converted_value, h.created_at, h.updated_at`

// PgxHoldingRepository implements portsrepo.HoldingRepositoryFacade.
type PgxHoldingRepository struct {
	BaseRepository
}

func newPgxHoldingRepository(db *pgxpool.Pool) *PgxHoldingRepository {
	return &PgxHoldingRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.HoldingRepositoryFacade = (*PgxHoldingRepository)(nil)

func holdingTargets(h *domain.Holding) []any {
	return []any{
		&h.HoldingID, &h.UserID, &h.Platform, &h.Ticker, &h.Name, &h.AssetType, &h.Quantity,
		&h.AvgCost, &h.HoldingCurrency, &h.LastPrice, &h.ConvertedValue, &h.CreatedAt, &h.UpdatedAt,
	}
}

func (r *PgxHoldingRepository) FindHoldingByID(ctx context.Context, userID, holdingID string) (*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings h WHERE h.holding_id = $1 AND h.user_id = $2;`
	var h domain.Holding
	if err := r.db(ctx).QueryRow(ctx, query, holdingID, userID).Scan(holdingTargets(&h)...); err != nil {
		return nil, mapError(holdingResource, err)
	}
	return &h, nil
}

func (r *PgxHoldingRepository) ListHoldings(ctx context.Context, userID string) ([]domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings h WHERE h.user_id = $1 ORDER BY h.platform, h.ticker, h.holding_id;`
	rows, err := r.db(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(holdingResource, err)
	}
	defer rows.Close()

	holdings := []domain.Holding{}
	for rows.Next() {
		var h domain.Holding
		if err := rows.Scan(holdingTargets(&h)...); err != nil {
			return nil, mapError(holdingResource, err)
		}
		holdings = append(holdings, h)
	}
	return holdings, mapError(holdingResource, rows.Err())
}

func (r *PgxHoldingRepository) ListAllHoldings(ctx context.Context) ([]domain.HoldingWithOwner, error) {
	query := `
		SELECT ` + holdingColumns + `, u.base_currency
		FROM holdings h JOIN users u ON u.user_id = h.user_id
		ORDER BY h.asset_type, h.ticker;`
	rows, err := r.db(ctx).Query(ctx, query)
	if err != nil {
		return nil, mapError(holdingResource, err)
	}
	defer rows.Close()

	holdings := []domain.HoldingWithOwner{}
	for rows.Next() {
		var h domain.HoldingWithOwner
		if err := rows.Scan(append(holdingTargets(&h.Holding), &h.BaseCurrency)...); err != nil {
			return nil, mapError(holdingResource, err)
		}
		holdings = append(holdings, h)
	}
	return holdings, mapError(holdingResource, rows.Err())
}

func (r *PgxHoldingRepository) SaveHolding(ctx context.Context, h domain.Holding) error {
	query := `
		INSERT INTO holdings (holding_id, user_id, platform, ticker, name, asset_type, quantity, avg_cost,
		                      holding_currency, last_price, converted_value, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	_, err := r.db(ctx).Exec(ctx, query,
		h.HoldingID, h.UserID, h.Platform, h.Ticker, h.Name, h.AssetType, h.Quantity, h.AvgCost,
		h.HoldingCurrency, h.LastPrice, h.ConvertedValue, h.CreatedAt, h.UpdatedAt,
	)
	return mapError(holdingResource, err)
}

func (r *PgxHoldingRepository) UpdateHolding(ctx context.Context, h domain.Holding) error {
	query := `
		UPDATE holdings
		SET platform = $1, ticker = $2, name = $3, asset_type = $4, quantity = $5, avg_cost = $6,
		    holding_currency = $7, last_price = $8, converted_value = $9, updated_at = $10
		WHERE holding_id = $11 AND user_id = $12;`
	tag, err := r.db(ctx).Exec(ctx, query,
		h.Platform, h.Ticker, h.Name, h.AssetType, h.Quantity, h.AvgCost,
		h.HoldingCurrency, h.LastPrice, h.ConvertedValue, h.UpdatedAt, h.HoldingID, h.UserID,
	)
	if err != nil {
		return mapError(holdingResource, err)
	}
	return expectOne(holdingResource, tag)
}

func (r *PgxHoldingRepository) DeleteHolding(ctx context.Context, userID, holdingID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM holdings WHERE holding_id = $1 AND user_id = $2;`, holdingID, userID)
	if err != nil {
		return mapError(holdingResource, err)
	}
	return expectOne(holdingResource, tag)
}

// UpdateHoldingValuation is used by the refresh job, which works across users.
func (r *PgxHoldingRepository) UpdateHoldingValuation(ctx context.Context, holdingID string, lastPrice, convertedValue decimal.Decimal) error {
	query := `UPDATE holdings SET last_price = $1, converted_value = $2, updated_at = NOW() WHERE holding_id = $3;`
	tag, err := r.db(ctx).Exec(ctx, query, lastPrice, convertedValue, holdingID)
	if err != nil {
		return mapError(holdingResource, err)
	}
	return expectOne(holdingResource, tag)
}
