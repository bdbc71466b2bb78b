package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/SscSPs/pfm_backend/internal/utils/pagination"
	"github.com/SscSPs/pfm_backend/internal/utils/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	transactionResource     = "Transaction"
	defaultTransactionLimit = 50
)

type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	bankAccountRepo portsrepo.BankAccountReader
}

// NewTransactionService creates the transaction service.
func NewTransactionService(transactionRepo portsrepo.TransactionRepositoryFacade, bankAccountRepo portsrepo.BankAccountReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		BaseService:     newBaseService(),
		transactionRepo: transactionRepo,
		bankAccountRepo: bankAccountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func validateTransaction(amount decimal.Decimal, currency string, txType domain.TransactionType, category domain.Category, date time.Time) error {
	switch {
	case amount.Sign() <= 0:
		return apperrors.NewFieldValidationError(transactionResource, "amount", "Amount must be positive")
	case !domain.IsValidCurrencyCode(currency):
		return apperrors.NewFieldValidationError(transactionResource, "currency", "Currency must be a 3-letter code")
	case !txType.IsValid():
		return apperrors.NewFieldValidationError(transactionResource, "type", "Type must be INCOME or EXPENSE")
	case !category.IsValid():
		return apperrors.NewFieldValidationError(transactionResource, "category", "Invalid category")
	case date.IsZero():
		return apperrors.NewFieldValidationError(transactionResource, "date", "Date is required")
	}
	return nil
}

// checkBankAccount verifies a referenced bank account belongs to the user.
func (s *transactionService) checkBankAccount(ctx context.Context, userID string, bankAccountID *string) error {
	if bankAccountID == nil || *bankAccountID == "" {
		return nil
	}
	_, err := s.bankAccountRepo.FindBankAccountByID(ctx, userID, *bankAccountID)
	if apperrors.KindOf(err) == apperrors.KindNotFound {
		return apperrors.NewFieldValidationError(transactionResource, "bankAccountID", "Bank account not found")
	}
	return err
}

// CreateTransaction stores a transaction; type defaults to EXPENSE.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txType := req.Type
	if txType == "" {
		txType = domain.Expense
	}
	if err := validateTransaction(req.Amount, req.Currency, txType, req.Category, req.Date); err != nil {
		return nil, err
	}
	if err := s.checkBankAccount(ctx, userID, req.BankAccountID); err != nil {
		return nil, err
	}

	now := s.now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Amount:        req.Amount,
		Currency:      req.Currency,
		Type:          txType,
		Category:      req.Category,
		Description:   req.Description,
		Date:          req.Date.UTC(),
		BankAccountID: req.BankAccountID,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.transactionRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("user_id", userID))
		return nil, err
	}
	return &txn, nil
}

// GetTransaction returns a transaction owned by the user.
func (s *transactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	return s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
}

// ListTransactions returns one page ordered by date descending. NextToken is set when
// more rows may follow.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultTransactionLimit
	}
	filter := domain.TransactionFilter{
		Type:          params.Type,
		Category:      params.Category,
		BankAccountID: params.BankAccountID,
		Limit:         limit,
	}
	if params.From != nil {
		from := period.StartOfDayUTC(*params.From)
		filter.From = &from
	}
	if params.To != nil {
		to := period.EndOfDay(*params.To)
		filter.To = &to
	}
	if params.NextToken != nil && *params.NextToken != "" {
		afterDate, afterID, err := pagination.DecodeToken(*params.NextToken)
		if err != nil {
			return nil, apperrors.NewFieldValidationError(transactionResource, "nextToken", err.Error())
		}
		filter.AfterDate = &afterDate
		filter.AfterID = afterID
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	resp := dto.ListTransactionsResponse{Transactions: dto.ToListTransactionResponse(txns)}
	if len(txns) == limit {
		last := txns[len(txns)-1]
		token := pagination.EncodeToken(last.Date, last.TransactionID)
		resp.NextToken = &token
	}
	return &resp, nil
}

// UpdateTransaction applies the non-nil fields of req.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if req.Amount != nil {
		txn.Amount = *req.Amount
	}
	if req.Currency != nil {
		txn.Currency = *req.Currency
	}
	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.Date != nil {
		txn.Date = req.Date.UTC()
	}
	if req.BankAccountID != nil {
		if err := s.checkBankAccount(ctx, userID, req.BankAccountID); err != nil {
			return nil, err
		}
		if *req.BankAccountID == "" {
			txn.BankAccountID = nil
		} else {
			txn.BankAccountID = req.BankAccountID
		}
	}
	if err := validateTransaction(txn.Amount, txn.Currency, txn.Type, txn.Category, txn.Date); err != nil {
		return nil, err
	}
	txn.UpdatedAt = s.now()

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return txn, nil
}

// DeleteTransaction removes a transaction owned by the user.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return s.transactionRepo.DeleteTransaction(ctx, userID, transactionID)
}
