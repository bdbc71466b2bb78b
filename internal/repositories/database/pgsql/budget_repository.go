package pgsql

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `budget_id, user_id, category, amount, period, created_at, updated_at`

// PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade.
type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(db *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func scanBudget(row pgx.Row) (domain.Budget, error) {
	var b domain.Budget
	err := row.Scan(&b.BudgetID, &b.UserID, &b.Category, &b.Amount, &b.Period, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1 AND user_id = $2;`
	b, err := scanBudget(r.db(ctx).QueryRow(ctx, query, budgetID, userID))
	if err != nil {
		return nil, mapError(budgetResource, err)
	}
	return &b, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, userID string, period *domain.Periodicity) ([]domain.Budget, error) {
	query := `
		SELECT ` + budgetColumns + ` FROM budgets
		WHERE user_id = $1 AND ($2::text IS NULL OR period = $2)
		ORDER BY category, budget_id;`
	rows, err := r.db(ctx).Query(ctx, query, userID, period)
	if err != nil {
		return nil, mapError(budgetResource, err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, mapError(budgetResource, err)
		}
		budgets = append(budgets, b)
	}
	return budgets, mapError(budgetResource, rows.Err())
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `INSERT INTO budgets (` + budgetColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.db(ctx).Exec(ctx, query,
		budget.BudgetID, budget.UserID, budget.Category, budget.Amount, budget.Period, budget.CreatedAt, budget.UpdatedAt,
	)
	return mapError(budgetResource, err)
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		UPDATE budgets SET category = $1, amount = $2, period = $3, updated_at = $4
		WHERE budget_id = $5 AND user_id = $6;`
	tag, err := r.db(ctx).Exec(ctx, query,
		budget.Category, budget.Amount, budget.Period, budget.UpdatedAt, budget.BudgetID, budget.UserID,
	)
	if err != nil {
		return mapError(budgetResource, err)
	}
	return expectOne(budgetResource, tag)
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1 AND user_id = $2;`, budgetID, userID)
	if err != nil {
		return mapError(budgetResource, err)
	}
	return expectOne(budgetResource, tag)
}
