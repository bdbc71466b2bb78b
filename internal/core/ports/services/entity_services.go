package services

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// BankAccountSvcFacade manages bank accounts.
type BankAccountSvcFacade interface {
	CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error)
	GetBankAccount(ctx context.Context, userID, bankAccountID string) (*domain.BankAccount, error)
	ListBankAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error)
	UpdateBankAccount(ctx context.Context, userID, bankAccountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error)
	DeleteBankAccount(ctx context.Context, userID, bankAccountID string) error
}

// TransactionSvcFacade manages transactions.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// BudgetSvcFacade manages budgets.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string, period *domain.Periodicity) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID, budgetID string) error
}

// GoalSvcFacade manages goals and projects them against income.
type GoalSvcFacade interface {
	CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error)
	GetGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error)
	ListGoals(ctx context.Context, userID string) ([]domain.Goal, error)
	UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, userID, goalID string) error
	// ContributeToGoal adds amount, given in the user's base currency, to the goal.
	ContributeToGoal(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error)
	CheckGoalConflicts(ctx context.Context, userID string) (*domain.GoalConflictReport, error)
}

// PlannedEventSvcFacade manages planned events and their completion.
type PlannedEventSvcFacade interface {
	CreatePlannedEvent(ctx context.Context, userID string, req dto.CreatePlannedEventRequest) (*domain.PlannedEvent, error)
	GetPlannedEvent(ctx context.Context, userID, eventID string) (*domain.PlannedEvent, error)
	ListPlannedEvents(ctx context.Context, userID string) ([]domain.PlannedEvent, error)
	UpdatePlannedEvent(ctx context.Context, userID, eventID string, req dto.UpdatePlannedEventRequest) (*domain.PlannedEvent, error)
	DeletePlannedEvent(ctx context.Context, userID, eventID string) error
	CompletePlannedEvent(ctx context.Context, userID, eventID string) (*domain.CompletionResult, error)
	UndoPlannedEventCompletion(ctx context.Context, userID, eventID string) error
}

// HoldingSvcFacade manages holdings and their valuation.
type HoldingSvcFacade interface {
	CreateHolding(ctx context.Context, userID string, req dto.CreateHoldingRequest) (*domain.Holding, error)
	GetHolding(ctx context.Context, userID, holdingID string) (*domain.Holding, error)
	ListHoldings(ctx context.Context, userID string) ([]domain.Holding, error)
	UpdateHolding(ctx context.Context, userID, holdingID string, req dto.UpdateHoldingRequest) (*domain.Holding, error)
	DeleteHolding(ctx context.Context, userID, holdingID string) error
	// RefreshHoldingPrices re-prices every holding; per-symbol failures are skipped.
	RefreshHoldingPrices(ctx context.Context) (*domain.PriceRefreshSummary, error)
}

// AISvc answers natural-language questions using the user's data.
type AISvc interface {
	AskTransactions(ctx context.Context, userID, question string) (string, error)
	BudgetAdvice(ctx context.Context, userID string) (*dto.BudgetAdviceResponse, error)
	ChatBudgetAdvisor(ctx context.Context, userID string, req dto.BudgetChatRequest) (string, error)
	// ResolveGoalConflict discusses a goal that does not fit the user's income and may
	// return a concrete target amount and date for it.
	ResolveGoalConflict(ctx context.Context, userID string, req dto.ResolveGoalConflictRequest) (*dto.ResolveGoalConflictResponse, error)
}
