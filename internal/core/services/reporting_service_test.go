package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	store   *memStore
	now     time.Time
	userID  string
	service portssvc.ReportingService
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.store = newMemStore()
	suite.now = time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)
	suite.userID = "user-1"
	suite.store.putUser(domain.User{UserID: suite.userID, Email: "r@example.com", BaseCurrency: "USD"})

	rates := services.NewCurrencyRateService(suite.store, new(MockRateProvider), services.WithRateClock(fixedClock(suite.now)))
	suite.service = services.NewReportingService(services.ReportingRepositories{
		Users:         suite.store,
		Transactions:  suite.store,
		Budgets:       suite.store,
		Goals:         suite.store,
		PlannedEvents: suite.store,
		Holdings:      suite.store,
	}, services.NewConversionService(rates), services.WithReportingClock(fixedClock(suite.now)))
}

func (suite *ReportingServiceTestSuite) txn(id, amount, currency string, typ domain.TransactionType, category domain.Category, desc string, date time.Time) {
	suite.store.putTransaction(domain.Transaction{
		TransactionID: id, UserID: suite.userID, Amount: dec(amount), Currency: currency,
		Type: typ, Category: category, Description: desc, Date: date,
	})
}

// seedMarch stores a month of mixed-currency activity: 420 USD of groceries against a
// 500 budget, 50 of food and 1000 of salary.
func (suite *ReportingServiceTestSuite) seedMarch() {
	ctx := context.Background()
	suite.store.putHistoricalRate("EUR", "USD", "1.2", utcDate(2025, time.March, 1))
	suite.Require().NoError(suite.store.SaveBudget(ctx, domain.Budget{
		BudgetID: "b-grocery", UserID: suite.userID, Category: domain.CategoryGrocery, Amount: dec("500"), Period: domain.Monthly,
	}))
	suite.Require().NoError(suite.store.SaveBudget(ctx, domain.Budget{
		BudgetID: "b-fun-yearly", UserID: suite.userID, Category: domain.CategoryEntertainment, Amount: dec("2000"), Period: domain.Yearly,
	}))

	suite.txn("t1", "300", "USD", domain.Expense, domain.CategoryGrocery, "Market", utcDate(2025, time.March, 5))
	suite.txn("t2", "100", "EUR", domain.Expense, domain.CategoryGrocery, "Market abroad", utcDate(2025, time.March, 10))
	suite.txn("t3", "50", "USD", domain.Expense, domain.CategoryFood, "Lunch", utcDate(2025, time.March, 6))
	suite.txn("t4", "999", "USD", domain.Expense, domain.CategoryGrocery, "Last month", utcDate(2025, time.February, 20))
	suite.txn("t5", "1000", "USD", domain.Income, domain.CategorySalary, "Salary", utcDate(2025, time.March, 7))

	// Due after the report's reference day, so not spent yet.
	suite.Require().NoError(suite.store.SavePlannedEvent(ctx, domain.PlannedEvent{
		PlannedEventID: "e-late", UserID: suite.userID, Name: "Bulk buy", EstimatedCost: dec("80"), Currency: "USD",
		Category: domain.CategoryGrocery, Recurrence: domain.OneTime, TargetDate: utcDate(2025, time.March, 25),
	}))
}

func (suite *ReportingServiceTestSuite) TestBudgetVsActual_MonthlyMixedCurrencies() {
	suite.seedMarch()

	report, err := suite.service.BudgetVsActual(context.Background(), suite.userID, domain.Monthly, nil)

	suite.Require().NoError(err)
	suite.Equal("USD", report.Currency)
	suite.Equal(domain.Monthly, report.Period)
	suite.Require().Len(report.Result, 1)
	suite.Equal(domain.CategoryGrocery, report.Result[0].Category)
	suite.True(report.Result[0].Budgeted.Equal(dec("500")))
	suite.True(report.Result[0].Spent.Equal(dec("420")), "got %s", report.Result[0].Spent)
}

func (suite *ReportingServiceTestSuite) TestBudgetVsActual_IncludesIncompletePlannedEventsInWindow() {
	suite.seedMarch()
	suite.Require().NoError(suite.store.SavePlannedEvent(context.Background(), domain.PlannedEvent{
		PlannedEventID: "e-soon", UserID: suite.userID, Name: "Party food", EstimatedCost: dec("30"), Currency: "USD",
		Category: domain.CategoryGrocery, Recurrence: domain.OneTime, TargetDate: utcDate(2025, time.March, 18),
	}))

	report, err := suite.service.BudgetVsActual(context.Background(), suite.userID, domain.Monthly, nil)

	suite.Require().NoError(err)
	suite.True(report.Result[0].Spent.Equal(dec("450")), "got %s", report.Result[0].Spent)
}

func (suite *ReportingServiceTestSuite) TestBudgetVsActual_MissingHistoricalRate() {
	suite.seedMarch()
	suite.txn("t6", "5000", "JPY", domain.Expense, domain.CategoryGrocery, "Snacks", utcDate(2025, time.March, 11))

	_, err := suite.service.BudgetVsActual(context.Background(), suite.userID, domain.Monthly, nil)

	suite.Equal(apperrors.KindDataIntegrity, apperrors.KindOf(err))
}

func (suite *ReportingServiceTestSuite) TestIncomeVsExpense() {
	suite.seedMarch()

	report, err := suite.service.IncomeVsExpense(context.Background(), suite.userID, "", nil)

	suite.Require().NoError(err)
	suite.Equal("March 2025", report.Period)
	suite.Equal(domain.Monthly, report.PeriodType)
	suite.True(report.Income.Equal(dec("1000")))
	suite.True(report.Expense.Equal(dec("470")), "got %s", report.Expense)
	suite.True(report.Net.Equal(dec("530")))
}

func (suite *ReportingServiceTestSuite) TestExpenseSummaryAndBreakdown() {
	suite.seedMarch()
	ctx := context.Background()

	summary, err := suite.service.ExpenseSummary(ctx, suite.userID, nil, nil)
	suite.Require().NoError(err)
	suite.True(summary.Total.Equal(dec("470")))
	suite.True(summary.ByCategory[domain.CategoryGrocery].Equal(dec("420")))

	breakdown, err := suite.service.CategoryBreakdown(ctx, suite.userID, nil, nil)
	suite.Require().NoError(err)
	suite.Require().Len(breakdown.Breakdown, 2)
	suite.Equal(domain.CategoryGrocery, breakdown.Breakdown[0].Category)
	suite.Equal(domain.CategoryFood, breakdown.Breakdown[1].Category)

	income, err := suite.service.IncomeSummary(ctx, suite.userID, nil, nil)
	suite.Require().NoError(err)
	suite.True(income.Total.Equal(dec("1000")))

	from, to := utcDate(2025, time.March, 10), utcDate(2025, time.March, 1)
	_, err = suite.service.ExpenseSummary(ctx, suite.userID, &from, &to)
	suite.Equal(apperrors.KindValidation, apperrors.KindOf(err))
}

func (suite *ReportingServiceTestSuite) TestGoalProgress_Bounds() {
	ctx := context.Background()
	goals := []domain.Goal{
		{GoalID: "g-over", TargetAmount: dec("100"), SavedAmount: dec("150"), TargetDate: time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)},
		{GoalID: "g-zero", TargetAmount: decimal.Zero, SavedAmount: dec("10"), TargetDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)},
		{GoalID: "g-third", TargetAmount: dec("300"), SavedAmount: dec("100"), TargetDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, g := range goals {
		g.UserID, g.Name, g.Currency = suite.userID, g.GoalID, "USD"
		suite.Require().NoError(suite.store.SaveGoal(ctx, g))
	}

	progress, err := suite.service.GoalProgress(ctx, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(progress, 3)
	byID := make(map[string]domain.GoalProgress)
	for _, p := range progress {
		suite.True(p.Progress.GreaterThanOrEqual(decimal.Zero) && p.Progress.LessThanOrEqual(decimal.NewFromInt(100)))
		byID[p.GoalID] = p
	}
	suite.Equal("g-third", progress[0].GoalID)
	suite.True(byID["g-over"].Progress.Equal(dec("100")))
	suite.True(byID["g-zero"].Progress.IsZero())
	suite.True(byID["g-third"].Progress.Equal(dec("33.33")))
	suite.Equal(5, byID["g-over"].DaysLeft)
	suite.Less(byID["g-third"].DaysLeft, 0)
}

func (suite *ReportingServiceTestSuite) TestAssetAllocation() {
	ctx := context.Background()
	for _, h := range []domain.Holding{
		{HoldingID: "h1", Platform: "Broker", Ticker: "AAPL", AssetType: domain.Stock, ConvertedValue: dec("1000"), HoldingCurrency: "USD"},
		{HoldingID: "h2", Platform: "Exchange", Ticker: "bitcoin", AssetType: domain.Crypto, Quantity: dec("2"), LastPrice: dec("100"), HoldingCurrency: "EUR"},
		{HoldingID: "h3", Platform: "Exchange", Ticker: "MSFT", AssetType: domain.Stock, ConvertedValue: dec("500"), HoldingCurrency: "USD"},
		{HoldingID: "h4", Platform: "Exchange", Ticker: "dogecoin", AssetType: domain.Crypto, Quantity: dec("50"), HoldingCurrency: "USD"},
	} {
		h.UserID = suite.userID
		suite.Require().NoError(suite.store.SaveHolding(ctx, h))
	}

	byType, err := suite.service.AssetAllocation(ctx, suite.userID, "")
	suite.Require().NoError(err)
	suite.Equal(domain.GroupByAssetType, byType.GroupedBy)
	suite.True(byType.Total.Equal(dec("1700")), "got %s", byType.Total)
	suite.Require().Len(byType.Breakdown, 2)
	suite.Equal("STOCK", byType.Breakdown[0].Group)
	suite.True(byType.Breakdown[1].Value.Equal(dec("200")))

	byPlatform, err := suite.service.AssetAllocation(ctx, suite.userID, domain.GroupByPlatform)
	suite.Require().NoError(err)
	suite.Equal("Broker", byPlatform.Breakdown[0].Group)
	suite.True(byPlatform.Breakdown[1].Value.Equal(dec("700")))

	_, err = suite.service.AssetAllocation(ctx, suite.userID, "currency")
	suite.Equal(apperrors.KindValidation, apperrors.KindOf(err))
}

func (suite *ReportingServiceTestSuite) TestAssetAllocation_UncachedValueUsesQuoteCurrency() {
	ctx := context.Background()
	suite.store.putUser(domain.User{UserID: "user-inr", Email: "i@example.com", BaseCurrency: "INR"})
	suite.store.putCurrentRate("USD", "INR", "80")
	suite.Require().NoError(suite.store.SaveHolding(ctx, domain.Holding{
		HoldingID: "h-inr", UserID: "user-inr", Platform: "Broker", Ticker: "INFY", AssetType: domain.Stock,
		Quantity: dec("2"), LastPrice: dec("10"), HoldingCurrency: "INR",
	}))

	report, err := suite.service.AssetAllocation(ctx, "user-inr", domain.GroupByTicker)

	suite.Require().NoError(err)
	suite.Equal("INR", report.Currency)
	suite.True(report.Total.Equal(dec("1600")), "got %s", report.Total)
}

func (suite *ReportingServiceTestSuite) TestDetectRecurringTransactions() {
	// Monthly subscription with a stable description.
	suite.txn("n1", "15.99", "USD", domain.Expense, domain.CategoryEntertainment, "Netflix", utcDate(2025, time.January, 1))
	suite.txn("n2", "15.99", "USD", domain.Expense, domain.CategoryEntertainment, "Netflix", utcDate(2025, time.January, 31))
	suite.txn("n3", "15.99", "USD", domain.Expense, domain.CategoryEntertainment, "Netflix", utcDate(2025, time.March, 2))
	// Same charge, description changes every month.
	suite.txn("g1", "40", "USD", domain.Expense, domain.CategoryHealthcare, "Gym Jan", utcDate(2025, time.January, 5))
	suite.txn("g2", "40", "USD", domain.Expense, domain.CategoryHealthcare, "Gym Feb", utcDate(2025, time.February, 4))
	suite.txn("g3", "40", "USD", domain.Expense, domain.CategoryHealthcare, "Gym Mar", utcDate(2025, time.March, 6))
	// Two occurrences never qualify.
	suite.txn("s1", "9.99", "USD", domain.Expense, domain.CategoryEntertainment, "Spotify", utcDate(2025, time.January, 1))
	suite.txn("s2", "9.99", "USD", domain.Expense, domain.CategoryEntertainment, "Spotify", utcDate(2025, time.January, 31))

	groups, err := suite.service.DetectRecurringTransactions(context.Background(), suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(groups, 2)

	netflix := groups[0]
	suite.Equal(domain.GroupingPrimary, netflix.Grouping)
	suite.Equal(domain.Monthly, netflix.Frequency)
	suite.Equal(3, netflix.Count)
	suite.Equal("Netflix", netflix.Description)
	suite.Equal([]string{"n1", "n2", "n3"}, netflix.TransactionIDs)

	gym := groups[1]
	suite.Equal(domain.GroupingFallback, gym.Grouping)
	suite.Equal(domain.Monthly, gym.Frequency)
	suite.Empty(gym.Description)
	suite.Equal("40|HEALTHCARE", gym.Key)
}

func (suite *ReportingServiceTestSuite) TestDetectRecurringTransactions_TwoNeverMatch() {
	suite.txn("a", "10", "USD", domain.Expense, domain.CategoryFood, "Pizza", utcDate(2025, time.January, 1))
	suite.txn("b", "10", "USD", domain.Expense, domain.CategoryFood, "Pizza", utcDate(2025, time.January, 8))

	groups, err := suite.service.DetectRecurringTransactions(context.Background(), suite.userID)

	suite.Require().NoError(err)
	suite.Empty(groups)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
