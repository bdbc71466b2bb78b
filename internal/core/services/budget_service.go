package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const budgetResource = "Budget"

type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// NewBudgetService creates the budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade) portssvc.BudgetSvcFacade {
	return &budgetService{BaseService: newBaseService(), budgetRepo: budgetRepo}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func validateBudget(category domain.Category, amount decimal.Decimal, p domain.Periodicity) error {
	switch {
	case !category.IsValid():
		return apperrors.NewFieldValidationError(budgetResource, "category", "Invalid category")
	case amount.Sign() <= 0:
		return apperrors.NewFieldValidationError(budgetResource, "amount", "Amount must be positive")
	case !p.IsRecurring():
		return apperrors.NewFieldValidationError(budgetResource, "period", "Period must be a recurring periodicity")
	}
	return nil
}

// CreateBudget stores a budget in the user's base currency.
func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if err := validateBudget(req.Category, req.Amount, req.Period); err != nil {
		return nil, err
	}
	now := s.now()
	budget := domain.Budget{
		BudgetID:    uuid.NewString(),
		UserID:      userID,
		Category:    req.Category,
		Amount:      req.Amount,
		Period:      req.Period,
		AuditFields: domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("user_id", userID))
		return nil, err
	}
	return &budget, nil
}

// GetBudget returns a budget owned by the user.
func (s *budgetService) GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	return s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
}

// ListBudgets returns the user's budgets, optionally of one period.
func (s *budgetService) ListBudgets(ctx context.Context, userID string, p *domain.Periodicity) ([]domain.Budget, error) {
	return s.budgetRepo.ListBudgets(ctx, userID, p)
}

// UpdateBudget applies the non-nil fields of req.
func (s *budgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	if req.Category != nil {
		budget.Category = *req.Category
	}
	if req.Amount != nil {
		budget.Amount = *req.Amount
	}
	if req.Period != nil {
		budget.Period = *req.Period
	}
	if err := validateBudget(budget.Category, budget.Amount, budget.Period); err != nil {
		return nil, err
	}
	budget.UpdatedAt = s.now()
	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, err
	}
	return budget, nil
}

// DeleteBudget removes a budget owned by the user.
func (s *budgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return s.budgetRepo.DeleteBudget(ctx, userID, budgetID)
}
