package domain

import "github.com/shopspring/decimal"

// AccountType is the kind of a bank account.
type AccountType string

const (
	Savings    AccountType = "SAVINGS"
	Checking   AccountType = "CHECKING"
	Credit     AccountType = "CREDIT"
	Investment AccountType = "INVESTMENT"
	Cash       AccountType = "CASH"
)

// IsValid reports whether t is a known account type.
func (t AccountType) IsValid() bool {
	switch t {
	case Savings, Checking, Credit, Investment, Cash:
		return true
	}
	return false
}

// BankAccount is a user's account that transactions may reference.
type BankAccount struct {
	BankAccountID string          `json:"bankAccountID"`
	UserID        string          `json:"userID"`
	Name          string          `json:"name"`
	Type          AccountType     `json:"type"`
	Balance       decimal.Decimal `json:"balance"`
	Currency      string          `json:"currency"`
	AuditFields
}
