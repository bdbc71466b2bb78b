package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
)

// PlannedEventFilter narrows a planned event listing. Nil fields mean "any".
type PlannedEventFilter struct {
	Completed *bool
	From      *time.Time // target date lower bound, inclusive
	To        *time.Time // target date upper bound, inclusive
}

// PlannedEventReader defines read operations for planned events.
type PlannedEventReader interface {
	FindPlannedEventByID(ctx context.Context, userID, eventID string) (*domain.PlannedEvent, error)
	// FindPlannedEventByStatus returns the event only if its completed flag matches.
	FindPlannedEventByStatus(ctx context.Context, userID, eventID string, completed bool) (*domain.PlannedEvent, error)
	ListPlannedEvents(ctx context.Context, userID string, filter PlannedEventFilter) ([]domain.PlannedEvent, error)
}

// PlannedEventWriter defines write operations for planned events.
type PlannedEventWriter interface {
	SavePlannedEvent(ctx context.Context, event domain.PlannedEvent) error
	UpdatePlannedEvent(ctx context.Context, event domain.PlannedEvent) error
	DeletePlannedEvent(ctx context.Context, userID, eventID string) error
	// MarkPlannedEventCompleted flips completed to true only while it is still false
	// and reports how many rows changed.
	MarkPlannedEventCompleted(ctx context.Context, userID, eventID, transactionID string) (int64, error)
	// MarkPlannedEventIncomplete clears completion only while it is still true.
	MarkPlannedEventIncomplete(ctx context.Context, userID, eventID string) (int64, error)
}

// PlannedEventRepositoryFacade combines all planned event repository interfaces.
type PlannedEventRepositoryFacade interface {
	PlannedEventReader
	PlannedEventWriter
}
