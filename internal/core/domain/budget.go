package domain

import "github.com/shopspring/decimal"

// Budget is a spending ceiling for a category over a period, in the user's base currency.
type Budget struct {
	BudgetID string          `json:"budgetID"`
	UserID   string          `json:"userID"`
	Category Category        `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
	Period   Periodicity     `json:"period"`
	AuditFields
}
