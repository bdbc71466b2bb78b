package services

import (
	"context"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
)

// ReportingService builds the derived reports. All amounts are in the user's base
// currency and rounded to 2 decimal places.
type ReportingService interface {
	ExpenseSummary(ctx context.Context, userID string, from, to *time.Time) (*domain.CategorySummary, error)
	IncomeSummary(ctx context.Context, userID string, from, to *time.Time) (*domain.CategorySummary, error)
	CategoryBreakdown(ctx context.Context, userID string, from, to *time.Time) (*domain.CategoryBreakdown, error)
	IncomeVsExpense(ctx context.Context, userID string, period domain.Periodicity, ref *time.Time) (*domain.IncomeVsExpenseReport, error)
	BudgetVsActual(ctx context.Context, userID string, period domain.Periodicity, ref *time.Time) (*domain.BudgetVsActualReport, error)
	AssetAllocation(ctx context.Context, userID string, groupBy domain.AllocationGroup) (*domain.AssetAllocationReport, error)
	GoalProgress(ctx context.Context, userID string) ([]domain.GoalProgress, error)
	DetectRecurringTransactions(ctx context.Context, userID string) ([]domain.RecurringTransactionGroup, error)
}
