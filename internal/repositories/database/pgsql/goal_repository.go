package pgsql

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const goalColumns = `goal_id, user_id, name, description, target_amount, saved_amount, currency, target_date, completed, created_at, updated_at`

// PgxGoalRepository implements portsrepo.GoalRepositoryFacade.
type PgxGoalRepository struct {
	BaseRepository
}

func newPgxGoalRepository(db *pgxpool.Pool) *PgxGoalRepository {
	return &PgxGoalRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

func scanGoal(row pgx.Row) (domain.Goal, error) {
	var g domain.Goal
	err := row.Scan(
		&g.GoalID,
		&g.UserID,
		&g.Name,
		&g.Description,
		&g.TargetAmount,
		&g.SavedAmount,
		&g.Currency,
		&g.TargetDate,
		&g.Completed,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1 AND user_id = $2;`
	g, err := scanGoal(r.db(ctx).QueryRow(ctx, query, goalID, userID))
	if err != nil {
		return nil, mapError(goalResource, err)
	}
	return &g, nil
}

func (r *PgxGoalRepository) ListGoals(ctx context.Context, userID string, includeCompleted bool) ([]domain.Goal, error) {
	query := `
		SELECT ` + goalColumns + ` FROM goals
		WHERE user_id = $1 AND ($2 OR NOT completed)
		ORDER BY target_date ASC, goal_id;`
	rows, err := r.db(ctx).Query(ctx, query, userID, includeCompleted)
	if err != nil {
		return nil, mapError(goalResource, err)
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, mapError(goalResource, err)
		}
		goals = append(goals, g)
	}
	return goals, mapError(goalResource, rows.Err())
}

func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	query := `INSERT INTO goals (` + goalColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.db(ctx).Exec(ctx, query,
		goal.GoalID, goal.UserID, goal.Name, goal.Description, goal.TargetAmount, goal.SavedAmount,
		goal.Currency, goal.TargetDate, goal.Completed, goal.CreatedAt, goal.UpdatedAt,
	)
	return mapError(goalResource, err)
}

func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, description = $2, target_amount = $3, saved_amount = $4, currency = $5,
		    target_date = $6, completed = $7, updated_at = $8
		WHERE goal_id = $9 AND user_id = $10;`
	tag, err := r.db(ctx).Exec(ctx, query,
		goal.Name, goal.Description, goal.TargetAmount, goal.SavedAmount, goal.Currency,
		goal.TargetDate, goal.Completed, goal.UpdatedAt, goal.GoalID, goal.UserID,
	)
	if err != nil {
		return mapError(goalResource, err)
	}
	return expectOne(goalResource, tag)
}

func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, userID, goalID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM goals WHERE goal_id = $1 AND user_id = $2;`, goalID, userID)
	if err != nil {
		return mapError(goalResource, err)
	}
	return expectOne(goalResource, tag)
}

// IncrementSavedAmount adds in SQL so concurrent contributions are never lost.
func (r *PgxGoalRepository) IncrementSavedAmount(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error) {
	query := `
		UPDATE goals SET saved_amount = saved_amount + $1, updated_at = NOW()
		WHERE goal_id = $2 AND user_id = $3 AND NOT completed
		RETURNING ` + goalColumns + `;`
	g, err := scanGoal(r.db(ctx).QueryRow(ctx, query, amount, goalID, userID))
	if err != nil {
		return nil, mapError(goalResource, err)
	}
	return &g, nil
}
