package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/SscSPs/pfm_backend/internal/utils/money"
	"github.com/SscSPs/pfm_backend/internal/utils/period"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const goalResource = "Goal"

type goalService struct {
	BaseService
	goalRepo         portsrepo.GoalRepositoryFacade
	plannedEventRepo portsrepo.PlannedEventReader
	userRepo         portsrepo.UserReader
	conversion       portssvc.ConversionSvc
}

// GoalServiceOption is a functional option for configuring the goal service
type GoalServiceOption func(*goalService)

// WithGoalClock overrides the clock used for months-left projections.
func WithGoalClock(now func() time.Time) GoalServiceOption {
	return func(s *goalService) {
		s.Now = now
	}
}

// NewGoalService creates the goal service.
func NewGoalService(goalRepo portsrepo.GoalRepositoryFacade, plannedEventRepo portsrepo.PlannedEventReader, userRepo portsrepo.UserReader, conversion portssvc.ConversionSvc, options ...GoalServiceOption) portssvc.GoalSvcFacade {
	s := &goalService{
		BaseService:      newBaseService(),
		goalRepo:         goalRepo,
		plannedEventRepo: plannedEventRepo,
		userRepo:         userRepo,
		conversion:       conversion,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

// CreateGoal stores a goal denominated in the user's base currency.
func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewFieldValidationError(goalResource, "name", "Goal name is required")
	}
	if req.TargetAmount.Sign() <= 0 {
		return nil, apperrors.NewFieldValidationError(goalResource, "targetAmount", "Target amount must be positive")
	}
	if !req.TargetDate.After(s.now()) {
		return nil, apperrors.NewFieldValidationError(goalResource, "targetDate", "Target date must be in the future")
	}
	saved := decimal.Zero
	if req.SavedAmount != nil {
		if req.SavedAmount.IsNegative() {
			return nil, apperrors.NewFieldValidationError(goalResource, "savedAmount", "Saved amount cannot be negative")
		}
		saved = *req.SavedAmount
	}

	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	goal := domain.Goal{
		GoalID:       uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Description:  req.Description,
		TargetAmount: req.TargetAmount,
		SavedAmount:  saved,
		Currency:     user.BaseCurrency,
		TargetDate:   req.TargetDate.UTC(),
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "Failed to save goal", slog.String("user_id", userID))
		return nil, err
	}
	s.LogInfo(ctx, "Goal created", slog.String("goal_id", goal.GoalID))
	return &goal, nil
}

// GetGoal returns a goal owned by the user.
func (s *goalService) GetGoal(ctx context.Context, userID, goalID string) (*domain.Goal, error) {
	return s.goalRepo.FindGoalByID(ctx, userID, goalID)
}

// ListGoals returns all of the user's goals ordered by target date.
func (s *goalService) ListGoals(ctx context.Context, userID string) ([]domain.Goal, error) {
	return s.goalRepo.ListGoals(ctx, userID, true)
}

// UpdateGoal applies the non-nil fields of req.
func (s *goalService) UpdateGoal(ctx context.Context, userID, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewFieldValidationError(goalResource, "name", "Goal name is required")
		}
		goal.Name = name
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetAmount != nil {
		if req.TargetAmount.Sign() <= 0 {
			return nil, apperrors.NewFieldValidationError(goalResource, "targetAmount", "Target amount must be positive")
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.SavedAmount != nil {
		if req.SavedAmount.IsNegative() {
			return nil, apperrors.NewFieldValidationError(goalResource, "savedAmount", "Saved amount cannot be negative")
		}
		goal.SavedAmount = *req.SavedAmount
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate.UTC()
	}
	if req.Completed != nil {
		goal.Completed = *req.Completed
	}
	goal.UpdatedAt = s.now()

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		s.LogError(ctx, err, "Failed to update goal", slog.String("goal_id", goalID))
		return nil, err
	}
	return goal, nil
}

// DeleteGoal removes a goal owned by the user.
func (s *goalService) DeleteGoal(ctx context.Context, userID, goalID string) error {
	return s.goalRepo.DeleteGoal(ctx, userID, goalID)
}

// ContributeToGoal converts amount from the user's base currency into the goal's
// currency and adds it to the saved amount in one statement.
func (s *goalService) ContributeToGoal(ctx context.Context, userID, goalID string, amount decimal.Decimal) (*domain.Goal, error) {
	if amount.Sign() <= 0 {
		return nil, apperrors.NewFieldValidationError(goalResource, "amount", "Valid contribution amount is required")
	}
	goal, err := s.goalRepo.FindGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if goal.Completed {
		return nil, apperrors.NewValidationError("Cannot contribute to a completed goal")
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	converted, err := s.conversion.ConvertCurrent(ctx, amount, user.BaseCurrency, goal.Currency)
	if err != nil {
		return nil, err
	}
	updated, err := s.goalRepo.IncrementSavedAmount(ctx, userID, goalID, converted)
	if err != nil {
		s.LogError(ctx, err, "Failed to record goal contribution", slog.String("goal_id", goalID))
		return nil, err
	}
	s.LogInfo(ctx, "Goal contribution recorded", slog.String("goal_id", goalID), slog.String("amount", converted.String()))
	return updated, nil
}

// perMonth spreads remaining over monthsLeft; everything is due now when no whole
// month is left.
func perMonth(remaining decimal.Decimal, monthsLeft int) decimal.Decimal {
	if monthsLeft <= 0 {
		return remaining
	}
	return money.MustDiv(remaining, monthsLeft)
}

// CheckGoalConflicts projects the monthly savings every incomplete goal and planned
// event needs and compares the sum against the user's monthly income.
func (s *goalService) CheckGoalConflicts(ctx context.Context, userID string) (*domain.GoalConflictReport, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	goals, err := s.goalRepo.ListGoals(ctx, userID, false)
	if err != nil {
		return nil, err
	}
	incomplete := false
	events, err := s.plannedEventRepo.ListPlannedEvents(ctx, userID, portsrepo.PlannedEventFilter{Completed: &incomplete})
	if err != nil {
		return nil, err
	}

	now := s.now()
	breakdown := make([]domain.MonthlyObligation, 0, len(goals)+len(events))
	items := make([]domain.MoneyAmount, 0, len(goals)+len(events))

	for _, g := range goals {
		monthsLeft := period.MonthsBetween(now, g.TargetDate)
		items = append(items, domain.MoneyAmount{Amount: perMonth(g.Remaining(), monthsLeft), Currency: g.Currency})
		breakdown = append(breakdown, domain.MonthlyObligation{
			Type:             domain.ObligationGoal,
			ID:               g.GoalID,
			Name:             g.Name,
			MonthsLeft:       &monthsLeft,
			OriginalCurrency: g.Currency,
			TargetDate:       g.TargetDate,
		})
	}

	for _, e := range events {
		obligation := domain.MonthlyObligation{
			Type:             domain.ObligationPlannedEvent,
			ID:               e.PlannedEventID,
			Name:             e.Name,
			OriginalCurrency: e.Currency,
			TargetDate:       e.TargetDate,
		}
		var amount decimal.Decimal
		if e.Recurrence.IsRecurring() {
			recurrence := e.Recurrence
			obligation.Recurrence = &recurrence
			if amount, err = period.MonthlyEquivalent(e.EstimatedCost, e.Recurrence); err != nil {
				return nil, err
			}
		} else {
			monthsLeft := period.MonthsBetween(now, e.TargetDate)
			obligation.MonthsLeft = &monthsLeft
			remaining := e.EstimatedCost.Sub(e.SavedSoFar)
			if remaining.IsNegative() {
				remaining = decimal.Zero
			}
			amount = perMonth(remaining, monthsLeft)
		}
		items = append(items, domain.MoneyAmount{Amount: amount, Currency: e.Currency})
		breakdown = append(breakdown, obligation)
	}

	converted, err := s.conversion.BatchConvert(ctx, items, user.BaseCurrency)
	if err != nil {
		s.LogError(ctx, err, "Failed to convert goal obligations", slog.String("user_id", userID))
		return nil, err
	}
	required := decimal.Zero
	for i := range breakdown {
		breakdown[i].PerMonth = money.Round2(converted[i])
		required = required.Add(converted[i])
	}

	income := decimal.Zero
	if user.MonthlyIncome != nil {
		income = *user.MonthlyIncome
	}
	required = money.Round2(required)
	income = money.Round2(income)

	report := &domain.GoalConflictReport{
		Conflict:               required.GreaterThan(income),
		TotalRequiredPerMonth:  required,
		AvailableMonthlyIncome: income,
		Currency:               user.BaseCurrency,
		Breakdown:              breakdown,
	}
	switch diff := required.Sub(income); diff.Sign() {
	case 1:
		report.OverBudgetBy = &diff
	case -1:
		below := diff.Neg()
		report.BelowBudgetBy = &below
	}
	return report, nil
}
