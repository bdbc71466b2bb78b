package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PlannedEvent is an anticipated expense. Completing it realizes a Transaction whose id is
// kept in CompletedTxID until the completion is undone.
type PlannedEvent struct {
	PlannedEventID string          `json:"plannedEventID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	EstimatedCost  decimal.Decimal `json:"estimatedCost"`
	SavedSoFar     decimal.Decimal `json:"savedSoFar"`
	Currency       string          `json:"currency"`
	Category       Category        `json:"category"`
	Recurrence     Periodicity     `json:"recurrence"`
	TargetDate     time.Time       `json:"targetDate"`
	Completed      bool            `json:"completed"`
	CompletedTxID  *string         `json:"completedTxID,omitempty"`
	AuditFields
}

// CompletionResult links a completed event to the transaction it produced.
type CompletionResult struct {
	EventID       string `json:"eventID"`
	TransactionID string `json:"transactionID"`
}
