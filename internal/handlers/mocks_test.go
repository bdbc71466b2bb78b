package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}
func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AuthResponse), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserService) UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock BankAccountService ---
type MockBankAccountService struct {
	mock.Mock
}

func (m *MockBankAccountService) CreateBankAccount(ctx context.Context, userID string, req dto.CreateBankAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) GetBankAccount(ctx context.Context, userID, bankAccountID string) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, bankAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) ListBankAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) UpdateBankAccount(ctx context.Context, userID, bankAccountID string, req dto.UpdateBankAccountRequest) (*domain.BankAccount, error) {
	args := m.Called(ctx, userID, bankAccountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BankAccount), args.Error(1)
}
func (m *MockBankAccountService) DeleteBankAccount(ctx context.Context, userID, bankAccountID string) error {
	return m.Called(ctx, userID, bankAccountID).Error(0)
}

var _ portssvc.BankAccountSvcFacade = (*MockBankAccountService)(nil)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) GetTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}
func (m *MockTransactionService) UpdateTransaction(ctx context.Context, userID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}
func (m *MockTransactionService) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	return m.Called(ctx, userID, transactionID).Error(0)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) GetBudget(ctx context.Context, userID, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) ListBudgets(ctx context.Context, userID string, period *domain.Periodicity) ([]domain.Budget, error) {
	args := m.Called(ctx, userID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}
func (m *MockBudgetService) UpdateBudget(ctx context.Context, userID, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	args := m.Called(ctx, userID, budgetID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}
func (m *MockBudgetService) DeleteBudget(ctx context.Context, userID, budgetID string) error {
	return m.Called(ctx, userID, budgetID).Error(0)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock GoalService ---
type MockGoalService struct {
	mock.Mock
}

func (m *MockGoalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalService) GetGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Goal), args.Error(1)
}
func (m *MockGoalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return m.Called(ctx, userID, goalID).Error(0)
}
func (m *MockGoalService) ContributeToGoal(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error) {
	args := m.Called(ctx, userID, goalID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Goal), args.Error(1)
}
func (m *MockGoalService) CheckGoalConflicts(ctx context.Context, userID string) (*domain.GoalConflictReport, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoalConflictReport), args.Error(1)
}

var _ portssvc.GoalSvcFacade = (*MockGoalService)(nil)

// --- Mock PlannedEventService ---
type MockPlannedEventService struct {
	mock.Mock
}

func (m *MockPlannedEventService) CreatePlannedEvent(ctx context.Context, userID string, req dto.CreatePlannedEventRequest) (*domain.PlannedEvent, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlannedEvent), args.Error(1)
}
func (m *MockPlannedEventService) GetPlannedEvent(ctx context.Context, userID, eventID string) (*domain.PlannedEvent, error) {
	args := m.Called(ctx, userID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlannedEvent), args.Error(1)
}
func (m *MockPlannedEventService) ListPlannedEvents(ctx context.Context, userID string) ([]domain.PlannedEvent, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PlannedEvent), args.Error(1)
}
func (m *MockPlannedEventService) UpdatePlannedEvent(ctx context.Context, userID, eventID string, req dto.UpdatePlannedEventRequest) (*domain.PlannedEvent, error) {
	args := m.Called(ctx, userID, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PlannedEvent), args.Error(1)
}
func (m *MockPlannedEventService) DeletePlannedEvent(ctx context.Context, userID, eventID string) error {
	return m.Called(ctx, userID, eventID).Error(0)
}
func (m *MockPlannedEventService) CompletePlannedEvent(ctx context.Context, userID, eventID string) (*domain.CompletionResult, error) {
	args := m.Called(ctx, userID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletionResult), args.Error(1)
}
func (m *MockPlannedEventService) UndoPlannedEventCompletion(ctx context.Context, userID, eventID string) error {
	return m.Called(ctx, userID, eventID).Error(0)
}

var _ portssvc.PlannedEventSvcFacade = (*MockPlannedEventService)(nil)

// --- Mock HoldingService ---
type MockHoldingService struct {
	mock.Mock
}

func (m *MockHoldingService) CreateHolding(ctx context.Context, userID string, req dto.CreateHoldingRequest) (*domain.Holding, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}
func (m *MockHoldingService) GetHolding(ctx context.Context, userID, holdingID string) (*domain.Holding, error) {
	args := m.Called(ctx, userID, holdingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}
func (m *MockHoldingService) ListHoldings(ctx context.Context, userID string) ([]domain.Holding, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Holding), args.Error(1)
}
func (m *MockHoldingService) UpdateHolding(ctx context.Context, userID, holdingID string, req dto.UpdateHoldingRequest) (*domain.Holding, error) {
	args := m.Called(ctx, userID, holdingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Holding), args.Error(1)
}
func (m *MockHoldingService) DeleteHolding(ctx context.Context, userID, holdingID string) error {
	return m.Called(ctx, userID, holdingID).Error(0)
}
func (m *MockHoldingService) RefreshHoldingPrices(ctx context.Context) (*domain.PriceRefreshSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceRefreshSummary), args.Error(1)
}

var _ portssvc.HoldingSvcFacade = (*MockHoldingService)(nil)

// --- Mock CurrencyRateService ---
type MockCurrencyRateService struct {
	mock.Mock
}

func (m *MockCurrencyRateService) GetCurrentRate(ctx context.Context, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCurrencyRateService) GetCurrentRates(ctx context.Context, pairs []domain.CurrencyPair) (map[domain.CurrencyPair]decimal.Decimal, error) {
	args := m.Called(ctx, pairs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[domain.CurrencyPair]decimal.Decimal), args.Error(1)
}
func (m *MockCurrencyRateService) GetHistoricalRate(ctx context.Context, from, to string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, from, to, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockCurrencyRateService) ListCurrentRates(ctx context.Context, base string) ([]domain.CurrencyRate, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CurrencyRate), args.Error(1)
}
func (m *MockCurrencyRateService) UpdateCurrencyRates(ctx context.Context, base string) error {
	return m.Called(ctx, base).Error(0)
}
func (m *MockCurrencyRateService) UsePreviousDayRates(ctx context.Context, base string) error {
	return m.Called(ctx, base).Error(0)
}
func (m *MockCurrencyRateService) EnsureCurrencyRatesExist(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

var _ portssvc.CurrencyRateSvcFacade = (*MockCurrencyRateService)(nil)

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) ConvertCurrent(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockConversionService) ConvertHistorical(ctx context.Context, amount decimal.Decimal, from, to string, date time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, amount, from, to, date)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockConversionService) BatchConvert(ctx context.Context, items []domain.MoneyAmount, to string) ([]decimal.Decimal, error) {
	args := m.Called(ctx, items, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}
func (m *MockConversionService) BatchConvertHistorical(ctx context.Context, items []domain.MoneyAmount, to string) ([]decimal.Decimal, error) {
	args := m.Called(ctx, items, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]decimal.Decimal), args.Error(1)
}
func (m *MockConversionService) TotalConverted(ctx context.Context, items []domain.MoneyAmount, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, items, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
func (m *MockConversionService) TotalConvertedHistorical(ctx context.Context, items []domain.MoneyAmount, to string) (decimal.Decimal, error) {
	args := m.Called(ctx, items, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

var _ portssvc.ConversionSvc = (*MockConversionService)(nil)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ExpenseSummary(ctx context.Context, userID string, from, to *time.Time) (*domain.CategorySummary, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategorySummary), args.Error(1)
}
func (m *MockReportingService) IncomeSummary(ctx context.Context, userID string, from, to *time.Time) (*domain.CategorySummary, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategorySummary), args.Error(1)
}
func (m *MockReportingService) CategoryBreakdown(ctx context.Context, userID string, from, to *time.Time) (*domain.CategoryBreakdown, error) {
	args := m.Called(ctx, userID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryBreakdown), args.Error(1)
}
func (m *MockReportingService) IncomeVsExpense(ctx context.Context, userID string, period domain.Periodicity, ref *time.Time) (*domain.IncomeVsExpenseReport, error) {
	args := m.Called(ctx, userID, period, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeVsExpenseReport), args.Error(1)
}
func (m *MockReportingService) BudgetVsActual(ctx context.Context, userID string, period domain.Periodicity, ref *time.Time) (*domain.BudgetVsActualReport, error) {
	args := m.Called(ctx, userID, period, ref)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BudgetVsActualReport), args.Error(1)
}
func (m *MockReportingService) AssetAllocation(ctx context.Context, userID string, groupBy domain.AllocationGroup) (*domain.AssetAllocationReport, error) {
	args := m.Called(ctx, userID, groupBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AssetAllocationReport), args.Error(1)
}
func (m *MockReportingService) GoalProgress(ctx context.Context, userID string) ([]domain.GoalProgress, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GoalProgress), args.Error(1)
}
func (m *MockReportingService) DetectRecurringTransactions(ctx context.Context, userID string) ([]domain.RecurringTransactionGroup, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurringTransactionGroup), args.Error(1)
}

var _ portssvc.ReportingService = (*MockReportingService)(nil)

// --- Mock AIService ---
type MockAIService struct {
	mock.Mock
}

func (m *MockAIService) AskTransactions(ctx context.Context, userID, question string) (string, error) {
	args := m.Called(ctx, userID, question)
	return args.String(0), args.Error(1)
}
func (m *MockAIService) BudgetAdvice(ctx context.Context, userID string) (*dto.BudgetAdviceResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BudgetAdviceResponse), args.Error(1)
}

func (m *MockAIService) ChatBudgetAdvisor(ctx context.Context, userID string, req dto.BudgetChatRequest) (string, error) {
	args := m.Called(ctx, userID, req)
	return args.String(0), args.Error(1)
}

func (m *MockAIService) ResolveGoalConflict(ctx context.Context, userID string, req dto.ResolveGoalConflictRequest) (*dto.ResolveGoalConflictResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ResolveGoalConflictResponse), args.Error(1)
}

var _ portssvc.AISvc = (*MockAIService)(nil)
