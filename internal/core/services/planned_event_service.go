package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	plannedEventResource    = "PlannedEvent"
	plannedEventDescPrefix  = "Planned Event: "
	msgConcurrentlyUpdated  = "Event concurrently updated; try again"
	incompleteEventResource = "Incomplete planned event"
	completedEventResource  = "Completed planned event"
)

type plannedEventService struct {
	BaseService
	txManager        portsrepo.TransactionManager
	plannedEventRepo portsrepo.PlannedEventRepositoryFacade
	transactionRepo  portsrepo.TransactionWriter
	userRepo         portsrepo.UserReader
}

// PlannedEventServiceOption is a functional option for configuring the planned event service
type PlannedEventServiceOption func(*plannedEventService)

// WithPlannedEventClock overrides the service clock.
func WithPlannedEventClock(now func() time.Time) PlannedEventServiceOption {
	return func(s *plannedEventService) {
		s.Now = now
	}
}

// NewPlannedEventService creates the planned event service.
func NewPlannedEventService(txManager portsrepo.TransactionManager, plannedEventRepo portsrepo.PlannedEventRepositoryFacade, transactionRepo portsrepo.TransactionWriter, userRepo portsrepo.UserReader, options ...PlannedEventServiceOption) portssvc.PlannedEventSvcFacade {
	s := &plannedEventService{
		BaseService:      newBaseService(),
		txManager:        txManager,
		plannedEventRepo: plannedEventRepo,
		transactionRepo:  transactionRepo,
		userRepo:         userRepo,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.PlannedEventSvcFacade = (*plannedEventService)(nil)

func (s *plannedEventService) validateAmounts(cost decimal.Decimal, saved decimal.Decimal) error {
	if cost.Sign() <= 0 {
		return apperrors.NewFieldValidationError(plannedEventResource, "estimatedCost", "Estimated cost must be positive")
	}
	if saved.IsNegative() {
		return apperrors.NewFieldValidationError(plannedEventResource, "savedSoFar", "Saved so far cannot be negative")
	}
	return nil
}

// CreatePlannedEvent stores a planned event. Currency defaults to the user's base,
// category to OTHER and recurrence to ONE_TIME.
func (s *plannedEventService) CreatePlannedEvent(ctx context.Context, userID string, req dto.CreatePlannedEventRequest) (*domain.PlannedEvent, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewFieldValidationError(plannedEventResource, "name", "Event name is required")
	}
	saved := decimal.Zero
	if req.SavedSoFar != nil {
		saved = *req.SavedSoFar
	}
	if err := s.validateAmounts(req.EstimatedCost, saved); err != nil {
		return nil, err
	}
	if req.TargetDate.IsZero() || !req.TargetDate.After(s.now()) {
		return nil, apperrors.NewFieldValidationError(plannedEventResource, "targetDate", "Target date must be in the future")
	}

	currency := req.Currency
	if currency == "" {
		user, err := s.userRepo.FindUserByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		currency = user.BaseCurrency
	}
	category := req.Category
	if category == "" {
		category = domain.CategoryOther
	}
	recurrence := req.Recurrence
	if recurrence == "" {
		recurrence = domain.OneTime
	}

	now := s.now()
	event := domain.PlannedEvent{
		PlannedEventID: uuid.NewString(),
		UserID:         userID,
		Name:           name,
		EstimatedCost:  req.EstimatedCost,
		SavedSoFar:     saved,
		Currency:       currency,
		Category:       category,
		Recurrence:     recurrence,
		TargetDate:     req.TargetDate.UTC(),
		AuditFields:    domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.plannedEventRepo.SavePlannedEvent(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to save planned event", slog.String("user_id", userID))
		return nil, err
	}
	return &event, nil
}

// GetPlannedEvent returns an event owned by the user.
func (s *plannedEventService) GetPlannedEvent(ctx context.Context, userID, eventID string) (*domain.PlannedEvent, error) {
	return s.plannedEventRepo.FindPlannedEventByID(ctx, userID, eventID)
}

// ListPlannedEvents returns every event of the user.
func (s *plannedEventService) ListPlannedEvents(ctx context.Context, userID string) ([]domain.PlannedEvent, error) {
	return s.plannedEventRepo.ListPlannedEvents(ctx, userID, portsrepo.PlannedEventFilter{})
}

// UpdatePlannedEvent applies the non-nil fields of req. Completed events are frozen.
func (s *plannedEventService) UpdatePlannedEvent(ctx context.Context, userID, eventID string, req dto.UpdatePlannedEventRequest) (*domain.PlannedEvent, error) {
	event, err := s.plannedEventRepo.FindPlannedEventByStatus(ctx, userID, eventID, false)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(incompleteEventResource)
		}
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewFieldValidationError(plannedEventResource, "name", "Event name is required")
		}
		event.Name = name
	}
	if req.EstimatedCost != nil {
		event.EstimatedCost = *req.EstimatedCost
	}
	if req.SavedSoFar != nil {
		event.SavedSoFar = *req.SavedSoFar
	}
	if err := s.validateAmounts(event.EstimatedCost, event.SavedSoFar); err != nil {
		return nil, err
	}
	if req.Currency != nil {
		event.Currency = *req.Currency
	}
	if req.Category != nil {
		event.Category = *req.Category
	}
	if req.Recurrence != nil {
		event.Recurrence = *req.Recurrence
	}
	if req.TargetDate != nil {
		event.TargetDate = req.TargetDate.UTC()
	}
	event.UpdatedAt = s.now()

	if err := s.plannedEventRepo.UpdatePlannedEvent(ctx, *event); err != nil {
		s.LogError(ctx, err, "Failed to update planned event", slog.String("event_id", eventID))
		return nil, err
	}
	return event, nil
}

// DeletePlannedEvent removes an event owned by the user.
func (s *plannedEventService) DeletePlannedEvent(ctx context.Context, userID, eventID string) error {
	return s.plannedEventRepo.DeletePlannedEvent(ctx, userID, eventID)
}

// CompletePlannedEvent realizes the event as an EXPENSE transaction and marks it
// completed in one database transaction. The completion flag is flipped by a
// conditional update; losing a race to another completion rolls the transaction back
// and reports a conflict.
func (s *plannedEventService) CompletePlannedEvent(ctx context.Context, userID, eventID string) (*domain.CompletionResult, error) {
	var result *domain.CompletionResult
	err := s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		event, err := s.plannedEventRepo.FindPlannedEventByStatus(txCtx, userID, eventID, false)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError(incompleteEventResource)
			}
			return err
		}

		now := s.now()
		txn := domain.Transaction{
			TransactionID: uuid.NewString(),
			UserID:        userID,
			Amount:        event.EstimatedCost,
			Currency:      event.Currency,
			Type:          domain.Expense,
			Category:      event.Category,
			Description:   plannedEventDescPrefix + event.Name,
			Date:          event.TargetDate,
			AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
		}
		if err := s.transactionRepo.SaveTransaction(txCtx, txn); err != nil {
			return err
		}

		affected, err := s.plannedEventRepo.MarkPlannedEventCompleted(txCtx, userID, eventID, txn.TransactionID)
		if err != nil {
			return err
		}
		if affected != 1 {
			return apperrors.NewConflictError(plannedEventResource, msgConcurrentlyUpdated)
		}

		result = &domain.CompletionResult{EventID: event.PlannedEventID, TransactionID: txn.TransactionID}
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindConflict {
			s.LogWarn(ctx, "Planned event completion lost a race", slog.String("event_id", eventID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Planned event completed",
		slog.String("event_id", eventID), slog.String("transaction_id", result.TransactionID))
	return result, nil
}

// UndoPlannedEventCompletion deletes the linked transaction and reopens the event.
func (s *plannedEventService) UndoPlannedEventCompletion(ctx context.Context, userID, eventID string) error {
	return s.txManager.WithinTransaction(ctx, func(txCtx context.Context) error {
		event, err := s.plannedEventRepo.FindPlannedEventByStatus(txCtx, userID, eventID, true)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError(completedEventResource)
			}
			return err
		}

		if event.CompletedTxID != nil {
			err := s.transactionRepo.DeleteTransaction(txCtx, userID, *event.CompletedTxID)
			if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
				return err
			}
		}

		affected, err := s.plannedEventRepo.MarkPlannedEventIncomplete(txCtx, userID, eventID)
		if err != nil {
			return err
		}
		if affected != 1 {
			return apperrors.NewConflictError(plannedEventResource, msgConcurrentlyUpdated)
		}
		return nil
	})
}
