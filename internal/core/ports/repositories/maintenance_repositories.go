package repositories

import "context"

// MaintenanceRepository runs database housekeeping. None of these may run inside a
// transaction.
type MaintenanceRepository interface {
	// DatabaseSize returns the size of the current database in bytes.
	DatabaseSize(ctx context.Context) (int64, error)
	// Vacuum runs VACUUM (ANALYZE), or VACUUM FULL when full is set.
	Vacuum(ctx context.Context, full bool) error
	Reindex(ctx context.Context) error
	Analyze(ctx context.Context) error
}
