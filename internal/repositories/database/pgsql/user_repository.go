package pgsql

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, name, email, password_hash, base_currency, monthly_income, created_at, updated_at`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(db *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: db}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.BaseCurrency,
		&u.MonthlyIncome,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
    `
	_, err := r.db(ctx).Exec(ctx, query,
		user.UserID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.BaseCurrency,
		user.MonthlyIncome,
		user.CreatedAt,
		user.UpdatedAt,
	)
	return mapError(userResource, err)
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	u, err := scanUser(r.db(ctx).QueryRow(ctx, query, userID))
	if err != nil {
		return nil, mapError(userResource, err)
	}
	return u, nil
}

// FindUserByEmail matches on the lower-cased address stored at registration.
func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1;`
	u, err := scanUser(r.db(ctx).QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError(userResource, err)
	}
	return u, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	query := `
        UPDATE users
        SET name = $1, base_currency = $2, monthly_income = $3, updated_at = $4
        WHERE user_id = $5;
    `
	cmdTag, err := r.db(ctx).Exec(ctx, query,
		user.Name,
		user.BaseCurrency,
		user.MonthlyIncome,
		user.UpdatedAt,
		user.UserID,
	)
	if err != nil {
		return mapError(userResource, err)
	}
	return expectOne(userResource, cmdTag)
}
