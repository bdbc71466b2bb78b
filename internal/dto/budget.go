package dto

import (
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget.
type CreateBudgetRequest struct {
	Category domain.Category    `json:"category" binding:"required,category"`
	Amount   decimal.Decimal    `json:"amount"`
	Period   domain.Periodicity `json:"period" binding:"required,periodicity"`
}

// UpdateBudgetRequest defines the fields that may change on a budget.
type UpdateBudgetRequest struct {
	Category *domain.Category    `json:"category" binding:"omitempty,category"`
	Amount   *decimal.Decimal    `json:"amount"`
	Period   *domain.Periodicity `json:"period" binding:"omitempty,periodicity"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID  string             `json:"budgetID"`
	Category  domain.Category    `json:"category"`
	Amount    decimal.Decimal    `json:"amount"`
	Period    domain.Periodicity `json:"period"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

// ToBudgetResponse converts a domain.Budget to its response DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:  b.BudgetID,
		Category:  b.Category,
		Amount:    b.Amount,
		Period:    b.Period,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToListBudgetResponse converts a slice of budgets.
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}
