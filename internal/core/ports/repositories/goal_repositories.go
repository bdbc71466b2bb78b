package repositories

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// GoalReader defines read operations for goals.
type GoalReader interface {
	FindGoalByID(ctx context.Context, userID, goalID string) (*domain.Goal, error)
	// ListGoals returns goals ordered by target date ascending.
	ListGoals(ctx context.Context, userID string, includeCompleted bool) ([]domain.Goal, error)
}

// GoalWriter defines write operations for goals.
type GoalWriter interface {
	SaveGoal(ctx context.Context, goal domain.Goal) error
	UpdateGoal(ctx context.Context, goal domain.Goal) error
	DeleteGoal(ctx context.Context, userID, goalID string) error
	// IncrementSavedAmount adds amount to the stored saved amount in a single statement.
	IncrementSavedAmount(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error)
}

// GoalRepositoryFacade combines all goal repository interfaces.
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}
