package repositories

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
)

// BudgetReader defines read operations for budgets.
type BudgetReader interface {
	FindBudgetByID(ctx context.Context, userID, budgetID string) (*domain.Budget, error)
	// ListBudgets returns the user's budgets, restricted to one period when period is non-nil.
	ListBudgets(ctx context.Context, userID string, period *domain.Periodicity) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budgets.
type BudgetWriter interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
