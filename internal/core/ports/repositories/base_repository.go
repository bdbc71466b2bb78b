package repositories

import "context"

// TransactionManager runs work inside one database transaction. Repository calls made
// with the context passed to fn join that transaction; the transaction commits when fn
// returns nil and rolls back otherwise.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
