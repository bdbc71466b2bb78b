package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	bankAccountResource    = "BankAccount"
	defaultAccountCurrency = "USD"
)

type bankAccountService struct {
	BaseService
	bankAccountRepo portsrepo.BankAccountRepositoryFacade
}

// NewBankAccountService creates the bank account service.
func NewBankAccountService(bankAccountRepo portsrepo.BankAccountRepositoryFacade) portssvc.BankAccountSvcFacade {
	return &bankAccountService{BaseService: newBaseService(), bankAccountRepo: bankAccountRepo}
}

var _ portssvc.BankAccountSvcFacade = (*bankAccountService)(nil)

func validateBankAccount(a domain.BankAccount) error {
	switch {
	case a.Name == "":
		return apperrors.NewFieldValidationError(bankAccountResource, "name", "Account name is required")
	case !a.Type.IsValid():
		return apperrors.NewFieldValidationError(bankAccountResource, "type", "Invalid account type")
	case a.Balance.IsNegative():
		return apperrors.NewFieldValidationError(bankAccountResource, "balance", "Balance cannot be negative")
	case !domain.IsValidCurrencyCode(a.Currency):
		return apperrors.NewFieldValidationError(bankAccountResource, "currency", "Currency must be a 3-letter code")
	}
	return nil
}

// CreateBankAccount stores a bank account; currency defaults to USD.
func (s *bankAccountService) CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	now := s.now()
	account := domain.BankAccount{
		BankAccountID: uuid.NewString(),
		UserID:        userID,
		Name:          strings.TrimSpace(req.Name),
		Type:          req.Type,
		Balance:       decimal.Zero,
		Currency:      req.Currency,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if req.Balance != nil {
		account.Balance = *req.Balance
	}
	if account.Currency == "" {
		account.Currency = defaultAccountCurrency
	}
	if err := validateBankAccount(account); err != nil {
		return nil, err
	}
	if err := s.bankAccountRepo.SaveBankAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save bank account", slog.String("user_id", userID))
		return nil, err
	}
	return &account, nil
}

// GetBankAccount returns an account owned by the user.
func (s *bankAccountService) GetBankAccount(ctx context.Context, userID, bankAccountID string) (*domain.BankAccount, error) {
	return s.bankAccountRepo.FindBankAccountByID(ctx, userID, bankAccountID)
}

// ListBankAccounts returns every account of the user.
func (s *bankAccountService) ListBankAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	return s.bankAccountRepo.ListBankAccounts(ctx, userID)
}

// UpdateBankAccount applies the non-nil fields of req.
func (s *bankAccountService) UpdateBankAccount(ctx context.Context, userID, bankAccountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	account, err := s.bankAccountRepo.FindBankAccountByID(ctx, userID, bankAccountID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		account.Name = strings.TrimSpace(*req.Name)
	}
	if req.Type != nil {
		account.Type = *req.Type
	}
	if req.Balance != nil {
		account.Balance = *req.Balance
	}
	if req.Currency != nil {
		account.Currency = *req.Currency
	}
	if err := validateBankAccount(*account); err != nil {
		return nil, err
	}
	account.UpdatedAt = s.now()
	if err := s.bankAccountRepo.UpdateBankAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update bank account", slog.String("bank_account_id", bankAccountID))
		return nil, err
	}
	return account, nil
}

// DeleteBankAccount removes an account owned by the user. Linked transactions keep
// their data and lose the reference.
func (s *bankAccountService) DeleteBankAccount(ctx context.Context, userID, bankAccountID string) error {
	return s.bankAccountRepo.DeleteBankAccount(ctx, userID, bankAccountID)
}
