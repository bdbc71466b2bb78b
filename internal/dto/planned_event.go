package dto

import (
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreatePlannedEventRequest defines the data needed to plan an expense.
type CreatePlannedEventRequest struct {
	Name          string             `json:"name" binding:"required"`
	EstimatedCost decimal.Decimal    `json:"estimatedCost"`
	SavedSoFar    *decimal.Decimal   `json:"savedSoFar"`
	Currency      string             `json:"currency" binding:"omitempty,currency"`
	Category      domain.Category    `json:"category" binding:"omitempty,category"`
	Recurrence    domain.Periodicity `json:"recurrence" binding:"omitempty,periodicity"`
	TargetDate    time.Time          `json:"targetDate" binding:"required"`
}

// UpdatePlannedEventRequest defines the fields that may change on a planned event.
type UpdatePlannedEventRequest struct {
	Name          *string             `json:"name"`
	EstimatedCost *decimal.Decimal    `json:"estimatedCost"`
	SavedSoFar    *decimal.Decimal    `json:"savedSoFar"`
	Currency      *string             `json:"currency" binding:"omitempty,currency"`
	Category      *domain.Category    `json:"category" binding:"omitempty,category"`
	Recurrence    *domain.Periodicity `json:"recurrence" binding:"omitempty,periodicity"`
	TargetDate    *time.Time          `json:"targetDate"`
}

// PlannedEventResponse defines the data returned for a planned event.
type PlannedEventResponse struct {
	PlannedEventID string             `json:"plannedEventID"`
	Name           string             `json:"name"`
	EstimatedCost  decimal.Decimal    `json:"estimatedCost"`
	SavedSoFar     decimal.Decimal    `json:"savedSoFar"`
	Currency       string             `json:"currency"`
	Category       domain.Category    `json:"category"`
	Recurrence     domain.Periodicity `json:"recurrence"`
	TargetDate     time.Time          `json:"targetDate"`
	Completed      bool               `json:"completed"`
	CompletedTxID  *string            `json:"completedTxID,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

// ToPlannedEventResponse converts a domain.PlannedEvent to its response DTO.
func ToPlannedEventResponse(e *domain.PlannedEvent) PlannedEventResponse {
	return PlannedEventResponse{
		PlannedEventID: e.PlannedEventID,
		Name:           e.Name,
		EstimatedCost:  e.EstimatedCost,
		SavedSoFar:     e.SavedSoFar,
		Currency:       e.Currency,
		Category:       e.Category,
		Recurrence:     e.Recurrence,
		TargetDate:     e.TargetDate,
		Completed:      e.Completed,
		CompletedTxID:  e.CompletedTxID,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.UpdatedAt,
	}
}

// ToListPlannedEventResponse converts a slice of planned events.
func ToListPlannedEventResponse(events []domain.PlannedEvent) []PlannedEventResponse {
	res := make([]PlannedEventResponse, len(events))
	for i := range events {
		res[i] = ToPlannedEventResponse(&events[i])
	}
	return res
}
