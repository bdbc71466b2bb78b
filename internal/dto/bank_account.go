package dto

import (
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBankAccountRequest defines the data needed to create a bank account.
type CreateBankAccountRequest struct {
	Name     string             `json:"name" binding:"required"`
	Type     domain.AccountType `json:"type" binding:"required,oneof=SAVINGS CHECKING CREDIT INVESTMENT CASH"`
	Balance  *decimal.Decimal   `json:"balance"`
	Currency string             `json:"currency" binding:"omitempty,currency"`
}

// UpdateBankAccountRequest defines the fields that may change on a bank account.
type UpdateBankAccountRequest struct {
	Name     *string             `json:"name"`
	Type     *domain.AccountType `json:"type" binding:"omitempty,oneof=SAVINGS CHECKING CREDIT INVESTMENT CASH"`
	Balance  *decimal.Decimal    `json:"balance"`
	Currency *string             `json:"currency" binding:"omitempty,currency"`
}

// BankAccountResponse defines the data returned for a bank account.
type BankAccountResponse struct {
	BankAccountID string             `json:"bankAccountID"`
	Name          string             `json:"name"`
	Type          domain.AccountType `json:"type"`
	Balance       decimal.Decimal    `json:"balance"`
	Currency      string             `json:"currency"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}

// ToBankAccountResponse converts a domain.BankAccount to its response DTO.
func ToBankAccountResponse(a *domain.BankAccount) BankAccountResponse {
	return BankAccountResponse{
		BankAccountID: a.BankAccountID,
		Name:          a.Name,
		Type:          a.Type,
		Balance:       a.Balance,
		Currency:      a.Currency,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToListBankAccountResponse converts a slice of bank accounts.
func ToListBankAccountResponse(accounts []domain.BankAccount) []BankAccountResponse {
	res := make([]BankAccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToBankAccountResponse(&accounts[i])
	}
	return res
}
