package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/utils/money"
	"github.com/SscSPs/pfm_backend/internal/utils/period"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// reportingService implements the ReportingService interface
type reportingService struct {
	BaseService
	userRepo         portsrepo.UserReader
	transactionRepo  portsrepo.TransactionReader
	budgetRepo       portsrepo.BudgetReader
	goalRepo         portsrepo.GoalReader
	plannedEventRepo portsrepo.PlannedEventReader
	holdingRepo      portsrepo.HoldingReader
	conversion       portssvc.ConversionSvc
	detector         period.FrequencyDetector
}

// ReportingRepositories groups the read ports the reporting service aggregates over.
type ReportingRepositories struct {
	Users         portsrepo.UserReader
	Transactions  portsrepo.TransactionReader
	Budgets       portsrepo.BudgetReader
	Goals         portsrepo.GoalReader
	PlannedEvents portsrepo.PlannedEventReader
	Holdings      portsrepo.HoldingReader
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithFrequencyDetector replaces the recurrence detector.
func WithFrequencyDetector(detector period.FrequencyDetector) ReportingServiceOption {
	return func(s *reportingService) {
		s.detector = detector
	}
}

// WithReportingClock overrides the clock used for default windows and days left.
func WithReportingClock(now func() time.Time) ReportingServiceOption {
	return func(s *reportingService) {
		s.Now = now
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repos ReportingRepositories, conversion portssvc.ConversionSvc, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		BaseService:      newBaseService(),
		userRepo:         repos.Users,
		transactionRepo:  repos.Transactions,
		budgetRepo:       repos.Budgets,
		goalRepo:         repos.Goals,
		plannedEventRepo: repos.PlannedEvents,
		holdingRepo:      repos.Holdings,
		conversion:       conversion,
		detector:         period.AverageGapDetector{},
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure reportingService implements the ReportingService interface
var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) baseCurrency(ctx context.Context, userID string) (string, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.BaseCurrency, nil
}

// resolveRange fills a missing bound with the current month's.
func (s *reportingService) resolveRange(from, to *time.Time) (time.Time, time.Time, error) {
	now := s.now()
	start, end := period.StartOfMonth(now), period.EndOfMonth(now)
	if from != nil {
		start = from.UTC()
	}
	if to != nil {
		end = to.UTC()
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperrors.NewFieldValidationError("Report", "to", "to must not be before from")
	}
	return start, end, nil
}

func transactionAmounts(txns []domain.Transaction) []domain.MoneyAmount {
	items := make([]domain.MoneyAmount, len(txns))
	for i, t := range txns {
		items[i] = domain.MoneyAmount{Amount: t.Amount, Currency: t.Currency, Date: t.Date}
	}
	return items
}

// sumByCategory converts txns at their own dates and totals them per category.
func (s *reportingService) sumByCategory(ctx context.Context, txns []domain.Transaction, base string) (map[domain.Category]decimal.Decimal, decimal.Decimal, error) {
	converted, err := s.conversion.BatchConvertHistorical(ctx, transactionAmounts(txns), base)
	if err != nil {
		return nil, decimal.Zero, err
	}
	byCategory := make(map[domain.Category]decimal.Decimal)
	total := decimal.Zero
	for i, t := range txns {
		byCategory[t.Category] = byCategory[t.Category].Add(converted[i])
		total = total.Add(converted[i])
	}
	return byCategory, total, nil
}

func (s *reportingService) categorySummary(ctx context.Context, userID string, txType domain.TransactionType, from, to *time.Time) (*domain.CategorySummary, error) {
	base, err := s.baseCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}
	start, end, err := s.resolveRange(from, to)
	if err != nil {
		return nil, err
	}
	txns, err := s.transactionRepo.ListTransactions(ctx, userID, domain.TransactionFilter{Type: txType, From: &start, To: &end})
	if err != nil {
		return nil, err
	}
	byCategory, total, err := s.sumByCategory(ctx, txns, base)
	if err != nil {
		s.LogError(ctx, err, "Failed to convert transactions for summary",
			slog.String("user_id", userID), slog.String("type", string(txType)))
		return nil, err
	}
	for c, v := range byCategory {
		byCategory[c] = money.Round2(v)
	}
	return &domain.CategorySummary{Total: money.Round2(total), Currency: base, ByCategory: byCategory}, nil
}

// ExpenseSummary totals EXPENSE transactions by category, current month by default.
func (s *reportingService) ExpenseSummary(ctx context.Context, userID string, from, to *time.Time) (*domain.CategorySummary, error) {
	return s.categorySummary(ctx, userID, domain.Expense, from, to)
}

// IncomeSummary totals INCOME transactions by category, current month by default.
func (s *reportingService) IncomeSummary(ctx context.Context, userID string, from, to *time.Time) (*domain.CategorySummary, error) {
	return s.categorySummary(ctx, userID, domain.Income, from, to)
}

// CategoryBreakdown lists expense categories largest first.
func (s *reportingService) CategoryBreakdown(ctx context.Context, userID string, from, to *time.Time) (*domain.CategoryBreakdown, error) {
	summary, err := s.categorySummary(ctx, userID, domain.Expense, from, to)
	if err != nil {
		return nil, err
	}
	breakdown := make([]domain.CategoryAmount, 0, len(summary.ByCategory))
	for c, v := range summary.ByCategory {
		breakdown = append(breakdown, domain.CategoryAmount{Category: c, Amount: v})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if cmp := breakdown[i].Amount.Cmp(breakdown[j].Amount); cmp != 0 {
			return cmp > 0
		}
		return breakdown[i].Category < breakdown[j].Category
	})
	return &domain.CategoryBreakdown{Total: summary.Total, Breakdown: breakdown, Currency: summary.Currency}, nil
}

func (s *reportingService) resolvePeriod(p domain.Periodicity, ref *time.Time) (domain.Periodicity, time.Time, period.Range, error) {
	if p == "" {
		p = domain.Monthly
	}
	at := s.now()
	if ref != nil {
		at = ref.UTC()
	}
	rng, err := period.Dates(p, at)
	return p, at, rng, err
}

// IncomeVsExpense compares income and expense from the period start through ref's day.
func (s *reportingService) IncomeVsExpense(ctx context.Context, userID string, p domain.Periodicity, ref *time.Time) (*domain.IncomeVsExpenseReport, error) {
	base, err := s.baseCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, at, rng, err := s.resolvePeriod(p, ref)
	if err != nil {
		return nil, err
	}

	txns, err := s.transactionRepo.ListTransactions(ctx, userID, domain.TransactionFilter{From: &rng.Start, To: &rng.End})
	if err != nil {
		return nil, err
	}
	converted, err := s.conversion.BatchConvertHistorical(ctx, transactionAmounts(txns), base)
	if err != nil {
		s.LogError(ctx, err, "Failed to convert transactions for income vs expense", slog.String("user_id", userID))
		return nil, err
	}

	income, expense := decimal.Zero, decimal.Zero
	for i, t := range txns {
		if t.Type == domain.Income {
			income = income.Add(converted[i])
		} else {
			expense = expense.Add(converted[i])
		}
	}

	return &domain.IncomeVsExpenseReport{
		Period:     period.Label(p, at),
		PeriodType: p,
		Start:      rng.Start,
		End:        rng.End,
		Income:     money.Round2(income),
		Expense:    money.Round2(expense),
		Net:        money.Round2(income.Sub(expense)),
		Currency:   base,
	}, nil
}

// BudgetVsActual sums expenses and incomplete planned events in the period window
// per budgeted category.
func (s *reportingService) BudgetVsActual(ctx context.Context, userID string, p domain.Periodicity, ref *time.Time) (*domain.BudgetVsActualReport, error) {
	base, err := s.baseCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}
	p, _, rng, err := s.resolvePeriod(p, ref)
	if err != nil {
		return nil, err
	}

	var (
		budgets []domain.Budget
		txns    []domain.Transaction
		events  []domain.PlannedEvent
	)
	incomplete := false
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		budgets, err = s.budgetRepo.ListBudgets(gctx, userID, &p)
		return err
	})
	g.Go(func() error {
		var err error
		txns, err = s.transactionRepo.ListTransactions(gctx, userID, domain.TransactionFilter{Type: domain.Expense, From: &rng.Start, To: &rng.End})
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.plannedEventRepo.ListPlannedEvents(gctx, userID, portsrepo.PlannedEventFilter{Completed: &incomplete, From: &rng.Start, To: &rng.End})
		return err
	})
	if err := g.Wait(); err != nil {
		s.LogError(ctx, err, "Failed to load budget vs actual inputs", slog.String("user_id", userID))
		return nil, err
	}

	items := transactionAmounts(txns)
	categories := make([]domain.Category, 0, len(txns)+len(events))
	for _, t := range txns {
		categories = append(categories, t.Category)
	}
	for _, e := range events {
		items = append(items, domain.MoneyAmount{Amount: e.EstimatedCost, Currency: e.Currency, Date: e.TargetDate})
		categories = append(categories, e.Category)
	}
	converted, err := s.conversion.BatchConvertHistorical(ctx, items, base)
	if err != nil {
		s.LogError(ctx, err, "Failed to convert budget vs actual spending", slog.String("user_id", userID))
		return nil, err
	}
	spent := make(map[domain.Category]decimal.Decimal)
	for i, c := range categories {
		spent[c] = spent[c].Add(converted[i])
	}

	result := make([]domain.BudgetActual, 0, len(budgets))
	for _, b := range budgets {
		result = append(result, domain.BudgetActual{
			Category: b.Category,
			Budgeted: money.Round2(b.Amount),
			Spent:    money.Round2(spent[b.Category]),
		})
	}
	return &domain.BudgetVsActualReport{Currency: base, Period: p, Result: result}, nil
}

func allocationKey(h domain.Holding, groupBy domain.AllocationGroup) string {
	switch groupBy {
	case domain.GroupByPlatform:
		return h.Platform
	case domain.GroupByTicker:
		return h.Ticker
	default:
		return string(h.AssetType)
	}
}

// AssetAllocation values holdings in the base currency, preferring the cached value.
// Uncached holdings are revalued from their last price at the current rate.
func (s *reportingService) AssetAllocation(ctx context.Context, userID string, groupBy domain.AllocationGroup) (*domain.AssetAllocationReport, error) {
	if groupBy == "" {
		groupBy = domain.GroupByAssetType
	}
	if !groupBy.IsValid() {
		return nil, apperrors.NewFieldValidationError("AssetAllocation", "groupBy",
			fmt.Sprintf("groupBy must be one of assetType, platform, ticker; got %q", groupBy))
	}
	base, err := s.baseCurrency(ctx, userID)
	if err != nil {
		return nil, err
	}
	holdings, err := s.holdingRepo.ListHoldings(ctx, userID)
	if err != nil {
		return nil, err
	}

	values := make([]decimal.Decimal, len(holdings))
	var stale []domain.MoneyAmount
	var staleIdx []int
	for i, h := range holdings {
		if !h.ConvertedValue.IsZero() || h.LastPrice.IsZero() {
			values[i] = h.ConvertedValue
			continue
		}
		// Last prices are provider quotes, not amounts in the holding currency.
		stale = append(stale, domain.MoneyAmount{Amount: money.Mul(h.Quantity, h.LastPrice), Currency: priceQuoteCurrency})
		staleIdx = append(staleIdx, i)
	}
	if len(stale) > 0 {
		converted, err := s.conversion.BatchConvert(ctx, stale, base)
		if err != nil {
			return nil, err
		}
		for j, i := range staleIdx {
			values[i] = converted[j]
		}
	}

	groups := make(map[string]decimal.Decimal)
	total := decimal.Zero
	for i, h := range holdings {
		key := allocationKey(h, groupBy)
		groups[key] = groups[key].Add(values[i])
		total = total.Add(values[i])
	}
	breakdown := make([]domain.AllocationSlice, 0, len(groups))
	for k, v := range groups {
		breakdown = append(breakdown, domain.AllocationSlice{Group: k, Value: money.Round2(v)})
	}
	sort.Slice(breakdown, func(i, j int) bool {
		if cmp := breakdown[i].Value.Cmp(breakdown[j].Value); cmp != 0 {
			return cmp > 0
		}
		return breakdown[i].Group < breakdown[j].Group
	})

	return &domain.AssetAllocationReport{Total: money.Round2(total), Breakdown: breakdown, Currency: base, GroupedBy: groupBy}, nil
}

// GoalProgress reports every goal ordered by target date.
func (s *reportingService) GoalProgress(ctx context.Context, userID string) ([]domain.GoalProgress, error) {
	goals, err := s.goalRepo.ListGoals(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	today := s.now()
	out := make([]domain.GoalProgress, 0, len(goals))
	for _, g := range goals {
		out = append(out, domain.GoalProgress{
			GoalID:       g.GoalID,
			Name:         g.Name,
			TargetAmount: money.Round2(g.TargetAmount),
			SavedAmount:  money.Round2(g.SavedAmount),
			Currency:     g.Currency,
			TargetDate:   g.TargetDate,
			Progress:     money.Round2(g.Progress()),
			DaysLeft:     period.DaysBetween(today, g.TargetDate),
			Completed:    g.Completed,
		})
	}
	return out, nil
}

type recurringBucket struct {
	key  string
	txns []domain.Transaction
}

// bucket groups txns by keyFn, keeping first-seen key order.
func bucket(txns []domain.Transaction, keyFn func(domain.Transaction) string) []*recurringBucket {
	index := make(map[string]*recurringBucket)
	var ordered []*recurringBucket
	for _, t := range txns {
		k := keyFn(t)
		b, ok := index[k]
		if !ok {
			b = &recurringBucket{key: k}
			index[k] = b
			ordered = append(ordered, b)
		}
		b.txns = append(b.txns, t)
	}
	return ordered
}

func (s *reportingService) detectGroup(b *recurringBucket, grouping domain.RecurringGrouping) (*domain.RecurringTransactionGroup, bool) {
	if len(b.txns) < period.MinOccurrences {
		return nil, false
	}
	dates := make([]time.Time, len(b.txns))
	ids := make([]string, len(b.txns))
	for i, t := range b.txns {
		dates[i] = t.Date
		ids[i] = t.TransactionID
	}
	freq, ok := s.detector.Detect(dates)
	if !ok {
		return nil, false
	}
	first := b.txns[0]
	group := &domain.RecurringTransactionGroup{
		Key:            b.key,
		Frequency:      freq,
		Count:          len(b.txns),
		Amount:         first.Amount,
		Category:       first.Category,
		TransactionIDs: ids,
		Grouping:       grouping,
	}
	if grouping == domain.GroupingPrimary {
		group.Description = first.Description
	}
	return group, true
}

// DetectRecurringTransactions groups by amount, category and description first, then
// retries the unmatched transactions keyed on amount and category only.
func (s *reportingService) DetectRecurringTransactions(ctx context.Context, userID string) ([]domain.RecurringTransactionGroup, error) {
	txns, err := s.transactionRepo.ListTransactions(ctx, userID, domain.TransactionFilter{})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(txns, func(i, j int) bool {
		if !txns[i].Date.Equal(txns[j].Date) {
			return txns[i].Date.Before(txns[j].Date)
		}
		return txns[i].TransactionID < txns[j].TransactionID
	})

	var groups []domain.RecurringTransactionGroup
	matched := make(map[string]struct{})

	primary := bucket(txns, func(t domain.Transaction) string {
		return strings.Join([]string{t.Amount.String(), string(t.Category), t.Description}, "|")
	})
	for _, b := range primary {
		if g, ok := s.detectGroup(b, domain.GroupingPrimary); ok {
			groups = append(groups, *g)
			for _, id := range g.TransactionIDs {
				matched[id] = struct{}{}
			}
		}
	}

	rest := make([]domain.Transaction, 0, len(txns)-len(matched))
	for _, t := range txns {
		if _, ok := matched[t.TransactionID]; !ok {
			rest = append(rest, t)
		}
	}
	fallback := bucket(rest, func(t domain.Transaction) string {
		return t.Amount.String() + "|" + string(t.Category)
	})
	for _, b := range fallback {
		if g, ok := s.detectGroup(b, domain.GroupingFallback); ok {
			groups = append(groups, *g)
		}
	}

	s.LogDebug(ctx, "Recurring transactions detected", slog.String("user_id", userID), slog.Int("groups", len(groups)))
	return groups, nil
}
