package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, user_id, amount, currency, type, category, description, date, bank_account_id, created_at, updated_at`

// PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade.
type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(db *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(
		&t.TransactionID,
		&t.UserID,
		&t.Amount,
		&t.Currency,
		&t.Type,
		&t.Category,
		&t.Description,
		&t.Date,
		&t.BankAccountID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	return t, err
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND user_id = $2;`
	t, err := scanTransaction(r.db(ctx).QueryRow(ctx, query, transactionID, userID))
	if err != nil {
		return nil, mapError(transactionResource, err)
	}
	return &t, nil
}

// buildTransactionListQuery renders the filtered listing. Rows come newest first with
// transaction_id as the tie-breaker, so (date, id) doubles as the page cursor.
func buildTransactionListQuery(userID string, f domain.TransactionFilter) (string, []any) {
	var sb strings.Builder
	args := []any{userID}
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1`)

	add := func(clause string, v any) {
		args = append(args, v)
		fmt.Fprintf(&sb, clause, len(args))
	}
	if f.Type != "" {
		add(" AND type = $%d", f.Type)
	}
	if f.Category != "" {
		add(" AND category = $%d", f.Category)
	}
	if f.BankAccountID != "" {
		add(" AND bank_account_id = $%d", f.BankAccountID)
	}
	if f.From != nil {
		add(" AND date >= $%d", *f.From)
	}
	if f.To != nil {
		add(" AND date <= $%d", *f.To)
	}
	if f.AfterDate != nil {
		args = append(args, *f.AfterDate, f.AfterID)
		fmt.Fprintf(&sb, " AND (date, transaction_id) < ($%d, $%d)", len(args)-1, len(args))
	}
	sb.WriteString(" ORDER BY date DESC, transaction_id DESC")
	if f.Limit > 0 {
		add(" LIMIT $%d", f.Limit)
	}
	return sb.String(), args
}

// ListTransactions returns matches ordered by date descending. A zero limit is unbounded.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, error) {
	query, args := buildTransactionListQuery(userID, filter)
	rows, err := r.db(ctx).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(transactionResource, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, mapError(transactionResource, err)
		}
		txns = append(txns, t)
	}
	return txns, mapError(transactionResource, rows.Err())
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`
	_, err := r.db(ctx).Exec(ctx, query,
		txn.TransactionID, txn.UserID, txn.Amount, txn.Currency, txn.Type, txn.Category,
		txn.Description, txn.Date, txn.BankAccountID, txn.CreatedAt, txn.UpdatedAt,
	)
	return mapError(transactionResource, err)
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	query := `
		UPDATE transactions
		SET amount = $1, currency = $2, type = $3, category = $4, description = $5,
		    date = $6, bank_account_id = $7, updated_at = $8
		WHERE transaction_id = $9 AND user_id = $10;`
	tag, err := r.db(ctx).Exec(ctx, query,
		txn.Amount, txn.Currency, txn.Type, txn.Category, txn.Description,
		txn.Date, txn.BankAccountID, txn.UpdatedAt, txn.TransactionID, txn.UserID,
	)
	if err != nil {
		return mapError(transactionResource, err)
	}
	return expectOne(transactionResource, tag)
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND user_id = $2;`, transactionID, userID)
	if err != nil {
		return mapError(transactionResource, err)
	}
	return expectOne(transactionResource, tag)
}
