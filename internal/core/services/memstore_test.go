package services_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/SscSPs/pfm_backend/internal/utils/period"
	"github.com/shopspring/decimal"
)

// memStore is an in-memory implementation of every repository port plus the
// transaction manager. Writes made inside WithinTransaction are undone when the
// callback fails, and conditional updates are atomic under the store mutex.
type memStore struct {
	mu sync.Mutex

	users    map[string]domain.User
	accounts map[string]domain.BankAccount
	txns     map[string]domain.Transaction
	budgets  map[string]domain.Budget
	goals    map[string]domain.Goal
	events   map[string]domain.PlannedEvent
	holdings map[string]domain.Holding
	current  map[domain.CurrencyPair]domain.CurrencyRate
	history  map[historyKey]domain.CurrencyRateHistory

	// afterStatusLookup runs after FindPlannedEventByStatus, outside the lock.
	afterStatusLookup func()

	currentRateQueries int
	snapshotsSaved     int
}

type historyKey struct {
	base   string
	target string
	day    time.Time
}

type txLogKey struct{}

type txLog struct {
	undo []func()
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[string]domain.User),
		accounts: make(map[string]domain.BankAccount),
		txns:     make(map[string]domain.Transaction),
		budgets:  make(map[string]domain.Budget),
		goals:    make(map[string]domain.Goal),
		events:   make(map[string]domain.PlannedEvent),
		holdings: make(map[string]domain.Holding),
		current:  make(map[domain.CurrencyPair]domain.CurrencyRate),
		history:  make(map[historyKey]domain.CurrencyRateHistory),
	}
}

func (s *memStore) provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        s,
		UserRepo:         s,
		BankAccountRepo:  s,
		TransactionRepo:  s,
		BudgetRepo:       s,
		GoalRepo:         s,
		PlannedEventRepo: s,
		HoldingRepo:      s,
		CurrencyRateRepo: s,
	}
}

// record registers undo when ctx belongs to a transaction. Callers hold s.mu.
func (s *memStore) record(ctx context.Context, undo func()) {
	if l, ok := ctx.Value(txLogKey{}).(*txLog); ok {
		l.undo = append(l.undo, undo)
	}
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txLogKey{}).(*txLog); ok {
		return fn(ctx)
	}
	l := &txLog{}
	err := fn(context.WithValue(ctx, txLogKey{}, l))
	if err != nil {
		s.mu.Lock()
		for i := len(l.undo) - 1; i >= 0; i-- {
			l.undo[i]()
		}
		s.mu.Unlock()
	}
	return err
}

// --- seeding helpers ---

func (s *memStore) putUser(u domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.UserID] = u
}

func (s *memStore) putTransaction(t domain.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns[t.TransactionID] = t
}

func (s *memStore) putCurrentRate(base, target, rate string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current[domain.CurrencyPair{From: base, To: target}] = domain.CurrencyRate{Base: base, Target: target, Rate: decimal.RequireFromString(rate)}
}

func (s *memStore) putHistoricalRate(base, target, rate string, day time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day = period.StartOfDayUTC(day)
	s.history[historyKey{base, target, day}] = domain.CurrencyRateHistory{Base: base, Target: target, Rate: decimal.RequireFromString(rate), RateDate: day}
}

func (s *memStore) transactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txns)
}

// --- users ---

func (s *memStore) FindUserByID(_ context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("User")
	}
	return &u, nil
}

func (s *memStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperrors.NewNotFoundError("User")
}

func (s *memStore) SaveUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return apperrors.NewConflictError("User", "Email already registered")
		}
	}
	s.users[user.UserID] = user
	return nil
}

func (s *memStore) UpdateUser(_ context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.UserID]; !ok {
		return apperrors.NewNotFoundError("User")
	}
	s.users[user.UserID] = user
	return nil
}

// --- bank accounts ---

func (s *memStore) FindBankAccountByID(_ context.Context, userID, id string) (*domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return nil, apperrors.NewNotFoundError("BankAccount")
	}
	return &a, nil
}

func (s *memStore) ListBankAccounts(_ context.Context, userID string) ([]domain.BankAccount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.BankAccount
	for _, a := range s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *memStore) SaveBankAccount(_ context.Context, a domain.BankAccount) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.BankAccountID] = a
	return nil
}

func (s *memStore) UpdateBankAccount(ctx context.Context, a domain.BankAccount) error {
	if _, err := s.FindBankAccountByID(ctx, a.UserID, a.BankAccountID); err != nil {
		return err
	}
	return s.SaveBankAccount(ctx, a)
}

func (s *memStore) DeleteBankAccount(ctx context.Context, userID, id string) error {
	if _, err := s.FindBankAccountByID(ctx, userID, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, id)
	return nil
}

// --- transactions ---

func (s *memStore) FindTransactionByID(_ context.Context, userID, id string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.txns[id]
	if !ok || t.UserID != userID {
		return nil, apperrors.NewNotFoundError("Transaction")
	}
	return &t, nil
}

func (s *memStore) ListTransactions(_ context.Context, userID string, f domain.TransactionFilter) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	for _, t := range s.txns {
		switch {
		case t.UserID != userID:
		case f.Type != "" && t.Type != f.Type:
		case f.Category != "" && t.Category != f.Category:
		case f.From != nil && t.Date.Before(*f.From):
		case f.To != nil && t.Date.After(*f.To):
		case f.BankAccountID != "" && (t.BankAccountID == nil || *t.BankAccountID != f.BankAccountID):
		case f.AfterDate != nil && !before(t, *f.AfterDate, f.AfterID):
		default:
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return before(out[j], out[i].Date, out[i].TransactionID) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// before reports whether t sorts after (date, id) in date-desc, id-desc order.
func before(t domain.Transaction, date time.Time, id string) bool {
	if !t.Date.Equal(date) {
		return t.Date.Before(date)
	}
	return t.TransactionID < id
}

func (s *memStore) SaveTransaction(ctx context.Context, t domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txns[t.TransactionID] = t
	s.record(ctx, func() { delete(s.txns, t.TransactionID) })
	return nil
}

func (s *memStore) UpdateTransaction(ctx context.Context, t domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.txns[t.TransactionID]
	if !ok || prev.UserID != t.UserID {
		return apperrors.NewNotFoundError("Transaction")
	}
	s.txns[t.TransactionID] = t
	s.record(ctx, func() { s.txns[prev.TransactionID] = prev })
	return nil
}

func (s *memStore) DeleteTransaction(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.txns[id]
	if !ok || prev.UserID != userID {
		return apperrors.NewNotFoundError("Transaction")
	}
	delete(s.txns, id)
	s.record(ctx, func() { s.txns[prev.TransactionID] = prev })
	return nil
}

// --- budgets ---

func (s *memStore) FindBudgetByID(_ context.Context, userID, id string) (*domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return nil, apperrors.NewNotFoundError("Budget")
	}
	return &b, nil
}

func (s *memStore) ListBudgets(_ context.Context, userID string, p *domain.Periodicity) ([]domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Budget
	for _, b := range s.budgets {
		if b.UserID == userID && (p == nil || b.Period == *p) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *memStore) SaveBudget(_ context.Context, b domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[b.BudgetID] = b
	return nil
}

func (s *memStore) UpdateBudget(ctx context.Context, b domain.Budget) error {
	if _, err := s.FindBudgetByID(ctx, b.UserID, b.BudgetID); err != nil {
		return err
	}
	return s.SaveBudget(ctx, b)
}

func (s *memStore) DeleteBudget(ctx context.Context, userID, id string) error {
	if _, err := s.FindBudgetByID(ctx, userID, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.budgets, id)
	return nil
}

// --- goals ---

func (s *memStore) FindGoalByID(_ context.Context, userID, id string) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok || g.UserID != userID {
		return nil, apperrors.NewNotFoundError("Goal")
	}
	return &g, nil
}

func (s *memStore) ListGoals(_ context.Context, userID string, includeCompleted bool) ([]domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Goal
	for _, g := range s.goals {
		if g.UserID == userID && (includeCompleted || !g.Completed) {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TargetDate.Before(out[j].TargetDate) })
	return out, nil
}

func (s *memStore) SaveGoal(_ context.Context, g domain.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[g.GoalID] = g
	return nil
}

func (s *memStore) UpdateGoal(ctx context.Context, g domain.Goal) error {
	if _, err := s.FindGoalByID(ctx, g.UserID, g.GoalID); err != nil {
		return err
	}
	return s.SaveGoal(ctx, g)
}

func (s *memStore) DeleteGoal(ctx context.Context, userID, id string) error {
	if _, err := s.FindGoalByID(ctx, userID, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.goals, id)
	return nil
}

func (s *memStore) IncrementSavedAmount(_ context.Context, userID, id string, amount decimal.Decimal) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok || g.UserID != userID {
		return nil, apperrors.NewNotFoundError("Goal")
	}
	g.SavedAmount = g.SavedAmount.Add(amount)
	s.goals[id] = g
	return &g, nil
}

// --- planned events ---

func (s *memStore) FindPlannedEventByID(_ context.Context, userID, id string) (*domain.PlannedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok || e.UserID != userID {
		return nil, apperrors.NewNotFoundError("PlannedEvent")
	}
	return &e, nil
}

func (s *memStore) FindPlannedEventByStatus(ctx context.Context, userID, id string, completed bool) (*domain.PlannedEvent, error) {
	e, err := s.FindPlannedEventByID(ctx, userID, id)
	if err == nil && e.Completed != completed {
		e, err = nil, apperrors.NewNotFoundError("PlannedEvent")
	}
	if s.afterStatusLookup != nil {
		s.afterStatusLookup()
	}
	return e, err
}

func (s *memStore) ListPlannedEvents(_ context.Context, userID string, f portsrepo.PlannedEventFilter) ([]domain.PlannedEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.PlannedEvent
	for _, e := range s.events {
		switch {
		case e.UserID != userID:
		case f.Completed != nil && e.Completed != *f.Completed:
		case f.From != nil && e.TargetDate.Before(*f.From):
		case f.To != nil && e.TargetDate.After(*f.To):
		default:
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TargetDate.Before(out[j].TargetDate) })
	return out, nil
}

func (s *memStore) SavePlannedEvent(_ context.Context, e domain.PlannedEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.PlannedEventID] = e
	return nil
}

func (s *memStore) UpdatePlannedEvent(ctx context.Context, e domain.PlannedEvent) error {
	if _, err := s.FindPlannedEventByID(ctx, e.UserID, e.PlannedEventID); err != nil {
		return err
	}
	return s.SavePlannedEvent(ctx, e)
}

func (s *memStore) DeletePlannedEvent(ctx context.Context, userID, id string) error {
	if _, err := s.FindPlannedEventByID(ctx, userID, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.events, id)
	return nil
}

func (s *memStore) setCompletion(ctx context.Context, userID, id string, from bool, txID *string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.events[id]
	if !ok || prev.UserID != userID || prev.Completed != from {
		return 0
	}
	next := prev
	next.Completed = !from
	next.CompletedTxID = txID
	s.events[id] = next
	s.record(ctx, func() { s.events[prev.PlannedEventID] = prev })
	return 1
}

func (s *memStore) MarkPlannedEventCompleted(ctx context.Context, userID, id, txID string) (int64, error) {
	return s.setCompletion(ctx, userID, id, false, &txID), nil
}

func (s *memStore) MarkPlannedEventIncomplete(ctx context.Context, userID, id string) (int64, error) {
	return s.setCompletion(ctx, userID, id, true, nil), nil
}

// --- holdings ---

func (s *memStore) FindHoldingByID(_ context.Context, userID, id string) (*domain.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.holdings[id]
	if !ok || h.UserID != userID {
		return nil, apperrors.NewNotFoundError("Holding")
	}
	return &h, nil
}

func (s *memStore) ListHoldings(_ context.Context, userID string) ([]domain.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Holding
	for _, h := range s.holdings {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HoldingID < out[j].HoldingID })
	return out, nil
}

func (s *memStore) ListAllHoldings(_ context.Context) ([]domain.HoldingWithOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.HoldingWithOwner
	for _, h := range s.holdings {
		out = append(out, domain.HoldingWithOwner{Holding: h, BaseCurrency: s.users[h.UserID].BaseCurrency})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].HoldingID < out[j].HoldingID })
	return out, nil
}

func (s *memStore) SaveHolding(_ context.Context, h domain.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holdings[h.HoldingID] = h
	return nil
}

func (s *memStore) UpdateHolding(ctx context.Context, h domain.Holding) error {
	if _, err := s.FindHoldingByID(ctx, h.UserID, h.HoldingID); err != nil {
		return err
	}
	return s.SaveHolding(ctx, h)
}

func (s *memStore) DeleteHolding(ctx context.Context, userID, id string) error {
	if _, err := s.FindHoldingByID(ctx, userID, id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.holdings, id)
	return nil
}

func (s *memStore) UpdateHoldingValuation(_ context.Context, id string, lastPrice, convertedValue decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.holdings[id]
	if !ok {
		return apperrors.NewNotFoundError("Holding")
	}
	h.LastPrice = lastPrice
	h.ConvertedValue = convertedValue
	s.holdings[id] = h
	return nil
}

// --- currency rates ---

func (s *memStore) FindCurrentRates(_ context.Context, pairs []domain.CurrencyPair) ([]domain.CurrencyRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentRateQueries++
	var out []domain.CurrencyRate
	for _, p := range pairs {
		if r, ok := s.current[p]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memStore) ListCurrentRates(_ context.Context, base string) ([]domain.CurrencyRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.CurrencyRate
	for p, r := range s.current {
		if p.From == base {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Target < out[j].Target })
	return out, nil
}

func (s *memStore) CountCurrentRates(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.current)), nil
}

func (s *memStore) CountHistoricalRatesOn(_ context.Context, day time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for k := range s.history {
		if k.day.Equal(day) {
			n++
		}
	}
	return n, nil
}

func (s *memStore) FindHistoricalRate(_ context.Context, base, target string, day time.Time) (*domain.CurrencyRateHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.history[historyKey{base, target, day}]
	if !ok {
		return nil, apperrors.NewNotFoundError("CurrencyRateHistory")
	}
	return &h, nil
}

func (s *memStore) FindLatestHistoricalRateOnOrBefore(_ context.Context, base, target string, day time.Time) (*domain.CurrencyRateHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var best *domain.CurrencyRateHistory
	for k, h := range s.history {
		if k.base != base || k.target != target || k.day.After(day) {
			continue
		}
		if best == nil || k.day.After(best.RateDate) {
			h := h
			best = &h
		}
	}
	if best == nil {
		return nil, apperrors.NewNotFoundError("CurrencyRateHistory")
	}
	return best, nil
}

func (s *memStore) FindLatestSnapshotBefore(_ context.Context, base string, before time.Time) ([]domain.CurrencyRateHistory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var latest time.Time
	for k := range s.history {
		if k.base == base && k.day.Before(before) && k.day.After(latest) {
			latest = k.day
		}
	}
	var out []domain.CurrencyRateHistory
	for k, h := range s.history {
		if k.base == base && k.day.Equal(latest) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *memStore) SaveRateSnapshot(_ context.Context, base string, rates map[string]decimal.Decimal, day time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshotsSaved++
	for target, rate := range rates {
		s.current[domain.CurrencyPair{From: base, To: target}] = domain.CurrencyRate{Base: base, Target: target, Rate: rate, UpdatedAt: day}
		s.history[historyKey{base, target, day}] = domain.CurrencyRateHistory{Base: base, Target: target, Rate: rate, RateDate: day}
	}
	return nil
}

var (
	_ portsrepo.TransactionManager           = (*memStore)(nil)
	_ portsrepo.UserRepositoryFacade         = (*memStore)(nil)
	_ portsrepo.BankAccountRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.TransactionRepositoryFacade  = (*memStore)(nil)
	_ portsrepo.BudgetRepositoryFacade       = (*memStore)(nil)
	_ portsrepo.GoalRepositoryFacade         = (*memStore)(nil)
	_ portsrepo.PlannedEventRepositoryFacade = (*memStore)(nil)
	_ portsrepo.HoldingRepositoryFacade      = (*memStore)(nil)
	_ portsrepo.CurrencyRateRepositoryFacade = (*memStore)(nil)
)
