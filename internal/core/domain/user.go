package domain

import "github.com/shopspring/decimal"

// User is an account holder. All reports resolve to BaseCurrency.
type User struct {
	UserID        string           `json:"userID"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	PasswordHash  string           `json:"-"`
	BaseCurrency  string           `json:"baseCurrency"`
	MonthlyIncome *decimal.Decimal `json:"monthlyIncome,omitempty"`
	AuditFields
}
