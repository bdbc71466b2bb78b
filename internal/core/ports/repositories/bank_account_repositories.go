package repositories

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
)

// BankAccountReader defines read operations for bank accounts.
type BankAccountReader interface {
	FindBankAccountByID(ctx context.Context, userID, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error)
}

// BankAccountWriter defines write operations for bank accounts.
type BankAccountWriter interface {
	SaveBankAccount(ctx context.Context, account domain.BankAccount) error
	UpdateBankAccount(ctx context.Context, account domain.BankAccount) error
	DeleteBankAccount(ctx context.Context, userID, bankAccountID string) error
}

// BankAccountRepositoryFacade combines all bank account repository interfaces.
type BankAccountRepositoryFacade interface {
	BankAccountReader
	BankAccountWriter
}
