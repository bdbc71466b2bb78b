package pgsql

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const plannedEventColumns = `planned_event_id, user_id, name, estimated_cost, saved_so_far, currency, category, recurrence, target_date, completed, completed_tx_id, created_at, updated_at`

// PgxPlannedEventRepository implements portsrepo.PlannedEventRepositoryFacade.
type PgxPlannedEventRepository struct {
	BaseRepository
}

func newPgxPlannedEventRepository(db *pgxpool.Pool) *PgxPlannedEventRepository {
	return &PgxPlannedEventRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.PlannedEventRepositoryFacade = (*PgxPlannedEventRepository)(nil)

func scanPlannedEvent(row pgx.Row) (domain.PlannedEvent, error) {
	var e domain.PlannedEvent
	err := row.Scan(
		&e.PlannedEventID,
		&e.UserID,
		&e.Name,
		&e.EstimatedCost,
		&e.SavedSoFar,
		&e.Currency,
		&e.Category,
		&e.Recurrence,
		&e.TargetDate,
		&e.Completed,
		&e.CompletedTxID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (r *PgxPlannedEventRepository) FindPlannedEventByID(ctx context.Context, userID, eventID string) (*domain.PlannedEvent, error) {
	query := `SELECT ` + plannedEventColumns + ` FROM planned_events WHERE planned_event_id = $1 AND user_id = $2;`
	e, err := scanPlannedEvent(r.db(ctx).QueryRow(ctx, query, eventID, userID))
	if err != nil {
		return nil, mapError(plannedEventResource, err)
	}
	return &e, nil
}

func (r *PgxPlannedEventRepository) FindPlannedEventByStatus(ctx context.Context, userID, eventID string, completed bool) (*domain.PlannedEvent, error) {
	query := `SELECT ` + plannedEventColumns + ` FROM planned_events WHERE planned_event_id = $1 AND user_id = $2 AND completed = $3;`
	e, err := scanPlannedEvent(r.db(ctx).QueryRow(ctx, query, eventID, userID, completed))
	if err != nil {
		return nil, mapError(plannedEventResource, err)
	}
	return &e, nil
}

func (r *PgxPlannedEventRepository) ListPlannedEvents(ctx context.Context, userID string, filter portsrepo.PlannedEventFilter) ([]domain.PlannedEvent, error) {
	query := `
		SELECT ` + plannedEventColumns + ` FROM planned_events
		WHERE user_id = $1
		  AND ($2::boolean IS NULL OR completed = $2)
		  AND ($3::timestamptz IS NULL OR target_date >= $3)
		  AND ($4::timestamptz IS NULL OR target_date <= $4)
		ORDER BY target_date ASC, planned_event_id;`
	rows, err := r.db(ctx).Query(ctx, query, userID, filter.Completed, filter.From, filter.To)
	if err != nil {
		return nil, mapError(plannedEventResource, err)
	}
	defer rows.Close()

	events := []domain.PlannedEvent{}
	for rows.Next() {
		e, err := scanPlannedEvent(rows)
		if err != nil {
			return nil, mapError(plannedEventResource, err)
		}
		events = append(events, e)
	}
	return events, mapError(plannedEventResource, rows.Err())
}

func (r *PgxPlannedEventRepository) SavePlannedEvent(ctx context.Context, event domain.PlannedEvent) error {
	query := `INSERT INTO planned_events (` + plannedEventColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	_, err := r.db(ctx).Exec(ctx, query,
		event.PlannedEventID, event.UserID, event.Name, event.EstimatedCost, event.SavedSoFar,
		event.Currency, event.Category, event.Recurrence, event.TargetDate, event.Completed,
		event.CompletedTxID, event.CreatedAt, event.UpdatedAt,
	)
	return mapError(plannedEventResource, err)
}

// UpdatePlannedEvent edits the descriptive fields. Completion state only changes
// through the Mark* methods.
func (r *PgxPlannedEventRepository) UpdatePlannedEvent(ctx context.Context, event domain.PlannedEvent) error {
	query := `
		UPDATE planned_events
		SET name = $1, estimated_cost = $2, saved_so_far = $3, currency = $4, category = $5,
		    recurrence = $6, target_date = $7, updated_at = $8
		WHERE planned_event_id = $9 AND user_id = $10;`
	tag, err := r.db(ctx).Exec(ctx, query,
		event.Name, event.EstimatedCost, event.SavedSoFar, event.Currency, event.Category,
		event.Recurrence, event.TargetDate, event.UpdatedAt, event.PlannedEventID, event.UserID,
	)
	if err != nil {
		return mapError(plannedEventResource, err)
	}
	return expectOne(plannedEventResource, tag)
}

func (r *PgxPlannedEventRepository) DeletePlannedEvent(ctx context.Context, userID, eventID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM planned_events WHERE planned_event_id = $1 AND user_id = $2;`, eventID, userID)
	if err != nil {
		return mapError(plannedEventResource, err)
	}
	return expectOne(plannedEventResource, tag)
}

func (r *PgxPlannedEventRepository) MarkPlannedEventCompleted(ctx context.Context, userID, eventID, transactionID string) (int64, error) {
	query := `
		UPDATE planned_events SET completed = TRUE, completed_tx_id = $1, updated_at = NOW()
		WHERE planned_event_id = $2 AND user_id = $3 AND completed = FALSE;`
	tag, err := r.db(ctx).Exec(ctx, query, transactionID, eventID, userID)
	if err != nil {
		return 0, mapError(plannedEventResource, err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxPlannedEventRepository) MarkPlannedEventIncomplete(ctx context.Context, userID, eventID string) (int64, error) {
	query := `
		UPDATE planned_events SET completed = FALSE, completed_tx_id = NULL, updated_at = NOW()
		WHERE planned_event_id = $1 AND user_id = $2 AND completed = TRUE;`
	tag, err := r.db(ctx).Exec(ctx, query, eventID, userID)
	if err != nil {
		return 0, mapError(plannedEventResource, err)
	}
	return tag.RowsAffected(), nil
}
