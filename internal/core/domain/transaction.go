package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether money came in or went out.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// IsValid reports whether t is INCOME or EXPENSE.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Transaction is a single income or expense. Amount is an unsigned magnitude and Date
// is the economically relevant day used for historical rate lookup.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Type          TransactionType `json:"type"`
	Category      Category        `json:"category"`
	Description   string          `json:"description"`
	Date          time.Time       `json:"date"`
	BankAccountID *string         `json:"bankAccountID,omitempty"`
	AuditFields
}

// TransactionFilter narrows a transaction listing. Zero values mean "any".
type TransactionFilter struct {
	Type          TransactionType
	Category      Category
	From          *time.Time
	To            *time.Time
	BankAccountID string
	Limit         int
	// Cursor position: rows strictly after (AfterDate, AfterID) in date-desc order.
	AfterDate *time.Time
	AfterID   string
}
