package pgsql

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bankAccountColumns = `bank_account_id, user_id, name, type, balance, currency, created_at, updated_at`

// PgxBankAccountRepository implements portsrepo.BankAccountRepositoryFacade.
type PgxBankAccountRepository struct {
	BaseRepository
}

func newPgxBankAccountRepository(db *pgxpool.Pool) *PgxBankAccountRepository {
	return &PgxBankAccountRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.BankAccountRepositoryFacade = (*PgxBankAccountRepository)(nil)

func scanBankAccount(row pgx.Row) (domain.BankAccount, error) {
	var a domain.BankAccount
	err := row.Scan(&a.BankAccountID, &a.UserID, &a.Name, &a.Type, &a.Balance, &a.Currency, &a.CreatedAt, &a.UpdatedAt)
	return a, err
}

func (r *PgxBankAccountRepository) FindBankAccountByID(ctx context.Context, userID, bankAccountID string) (*domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE bank_account_id = $1 AND user_id = $2;`
	a, err := scanBankAccount(r.db(ctx).QueryRow(ctx, query, bankAccountID, userID))
	if err != nil {
		return nil, mapError(bankAccountResource, err)
	}
	return &a, nil
}

func (r *PgxBankAccountRepository) ListBankAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error) {
	query := `SELECT ` + bankAccountColumns + ` FROM bank_accounts WHERE user_id = $1 ORDER BY name, bank_account_id;`
	rows, err := r.db(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, mapError(bankAccountResource, err)
	}
	defer rows.Close()

	accounts := []domain.BankAccount{}
	for rows.Next() {
		a, err := scanBankAccount(rows)
		if err != nil {
			return nil, mapError(bankAccountResource, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, mapError(bankAccountResource, rows.Err())
}

func (r *PgxBankAccountRepository) SaveBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `INSERT INTO bank_accounts (` + bankAccountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.db(ctx).Exec(ctx, query,
		account.BankAccountID, account.UserID, account.Name, account.Type,
		account.Balance, account.Currency, account.CreatedAt, account.UpdatedAt,
	)
	return mapError(bankAccountResource, err)
}

func (r *PgxBankAccountRepository) UpdateBankAccount(ctx context.Context, account domain.BankAccount) error {
	query := `
		UPDATE bank_accounts
		SET name = $1, type = $2, balance = $3, currency = $4, updated_at = $5
		WHERE bank_account_id = $6 AND user_id = $7;`
	tag, err := r.db(ctx).Exec(ctx, query,
		account.Name, account.Type, account.Balance, account.Currency, account.UpdatedAt,
		account.BankAccountID, account.UserID,
	)
	if err != nil {
		return mapError(bankAccountResource, err)
	}
	return expectOne(bankAccountResource, tag)
}

// DeleteBankAccount removes the account; transactions.bank_account_id is ON DELETE SET NULL.
func (r *PgxBankAccountRepository) DeleteBankAccount(ctx context.Context, userID, bankAccountID string) error {
	tag, err := r.db(ctx).Exec(ctx, `DELETE FROM bank_accounts WHERE bank_account_id = $1 AND user_id = $2;`, bankAccountID, userID)
	if err != nil {
		return mapError(bankAccountResource, err)
	}
	return expectOne(bankAccountResource, tag)
}
