package dto

import (
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the data needed to create a goal.
type CreateGoalRequest struct {
	Name         string           `json:"name" binding:"required"`
	Description  string           `json:"description"`
	TargetAmount decimal.Decimal  `json:"targetAmount"`
	SavedAmount  *decimal.Decimal `json:"savedAmount"`
	TargetDate   time.Time        `json:"targetDate" binding:"required"`
}

// UpdateGoalRequest defines the fields that may change on a goal.
type UpdateGoalRequest struct {
	Name         *string          `json:"name"`
	Description  *string          `json:"description"`
	TargetAmount *decimal.Decimal `json:"targetAmount"`
	SavedAmount  *decimal.Decimal `json:"savedAmount"`
	TargetDate   *time.Time       `json:"targetDate"`
	Completed    *bool            `json:"completed"`
}

// ContributeRequest adds money, in the user's base currency, to a goal.
type ContributeRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// GoalResponse defines the data returned for a goal.
type GoalResponse struct {
	GoalID       string          `json:"goalID"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	SavedAmount  decimal.Decimal `json:"savedAmount"`
	Currency     string          `json:"currency"`
	TargetDate   time.Time       `json:"targetDate"`
	Completed    bool            `json:"completed"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToGoalResponse converts a domain.Goal to its response DTO.
func ToGoalResponse(g *domain.Goal) GoalResponse {
	return GoalResponse{
		GoalID:       g.GoalID,
		Name:         g.Name,
		Description:  g.Description,
		TargetAmount: g.TargetAmount,
		SavedAmount:  g.SavedAmount,
		Currency:     g.Currency,
		TargetDate:   g.TargetDate,
		Completed:    g.Completed,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

// ToListGoalResponse converts a slice of goals.
func ToListGoalResponse(goals []domain.Goal) []GoalResponse {
	res := make([]GoalResponse, len(goals))
	for i := range goals {
		res[i] = ToGoalResponse(&goals[i])
	}
	return res
}
