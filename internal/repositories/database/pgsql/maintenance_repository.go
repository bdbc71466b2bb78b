package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxMaintenanceRepository runs housekeeping statements straight on the pool; VACUUM
// and REINDEX DATABASE are rejected inside a transaction block.
type PgxMaintenanceRepository struct {
	BaseRepository
}

func newPgxMaintenanceRepository(db *pgxpool.Pool) *PgxMaintenanceRepository {
	return &PgxMaintenanceRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.MaintenanceRepository = (*PgxMaintenanceRepository)(nil)

// vacuumStatement picks the VACUUM form; FULL takes an exclusive lock on every table.
func vacuumStatement(full bool) string {
	if full {
		return "VACUUM FULL;"
	}
	return "VACUUM (ANALYZE);"
}

// reindexStatement quotes the database name as an identifier.
func reindexStatement(database string) string {
	return "REINDEX DATABASE " + pgx.Identifier{database}.Sanitize() + ";"
}

// DatabaseSize returns pg_database_size of the connected database.
func (r *PgxMaintenanceRepository) DatabaseSize(ctx context.Context) (int64, error) {
	var size int64
	if err := r.Pool.QueryRow(ctx, `SELECT pg_database_size(current_database());`).Scan(&size); err != nil {
		return 0, mapError(maintenanceResource, err)
	}
	return size, nil
}

// Vacuum reclaims dead tuples.
func (r *PgxMaintenanceRepository) Vacuum(ctx context.Context, full bool) error {
	_, err := r.Pool.Exec(ctx, vacuumStatement(full))
	return mapError(maintenanceResource, err)
}

// Reindex rebuilds every index of the connected database.
func (r *PgxMaintenanceRepository) Reindex(ctx context.Context) error {
	var name string
	if err := r.Pool.QueryRow(ctx, `SELECT current_database();`).Scan(&name); err != nil {
		return mapError(maintenanceResource, err)
	}
	_, err := r.Pool.Exec(ctx, reindexStatement(name))
	return mapError(maintenanceResource, err)
}

// Analyze refreshes planner statistics.
func (r *PgxMaintenanceRepository) Analyze(ctx context.Context) error {
	_, err := r.Pool.Exec(ctx, `ANALYZE;`)
	return mapError(maintenanceResource, err)
}
