package repositories

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
)

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	// ListTransactions returns matches ordered by date descending, then id descending.
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
