package dto

import (
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
type CreateTransactionRequest struct {
	Amount        decimal.Decimal        `json:"amount"`
	Currency      string                 `json:"currency" binding:"required,currency"`
	Type          domain.TransactionType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category      domain.Category        `json:"category" binding:"required,category"`
	Description   string                 `json:"description"`
	Date          time.Time              `json:"date" binding:"required"`
	BankAccountID *string                `json:"bankAccountID"`
}

// UpdateTransactionRequest defines the fields that may change on a transaction.
type UpdateTransactionRequest struct {
	Amount        *decimal.Decimal        `json:"amount"`
	Currency      *string                 `json:"currency" binding:"omitempty,currency"`
	Type          *domain.TransactionType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category      *domain.Category        `json:"category" binding:"omitempty,category"`
	Description   *string                 `json:"description"`
	Date          *time.Time              `json:"date"`
	BankAccountID *string                 `json:"bankAccountID"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Type          domain.TransactionType `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category      domain.Category        `form:"category" binding:"omitempty,category"`
	From          *time.Time             `form:"from" time_format:"2006-01-02"`
	To            *time.Time             `form:"to" time_format:"2006-01-02"`
	BankAccountID string                 `form:"bankAccountID"`
	Limit         int                    `form:"limit,default=50" binding:"omitempty,min=1,max=500"`
	NextToken     *string                `form:"nextToken"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Amount        decimal.Decimal        `json:"amount"`
	Currency      string                 `json:"currency"`
	Type          domain.TransactionType `json:"type"`
	Category      domain.Category        `json:"category"`
	Description   string                 `json:"description"`
	Date          time.Time              `json:"date"`
	BankAccountID *string                `json:"bankAccountID,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// ListTransactionsResponse is one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		Amount:        t.Amount,
		Currency:      t.Currency,
		Type:          t.Type,
		Category:      t.Category,
		Description:   t.Description,
		Date:          t.Date,
		BankAccountID: t.BankAccountID,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}
