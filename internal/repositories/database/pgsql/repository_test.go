package pgsql

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestBuildTransactionListQuery_AllFilters(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 1, 31, 23, 59, 59, 0, time.UTC)
	after := time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC)

	query, args := buildTransactionListQuery("user-1", domain.TransactionFilter{
		Type:          domain.Expense,
		Category:      domain.CategoryFood,
		BankAccountID: "acct-1",
		From:          &from,
		To:            &to,
		AfterDate:     &after,
		AfterID:       "tx-9",
		Limit:         25,
	})

	assert.Contains(t, query, "user_id = $1 AND type = $2 AND category = $3 AND bank_account_id = $4")
	assert.Contains(t, query, "date >= $5 AND date <= $6")
	assert.Contains(t, query, "(date, transaction_id) < ($7, $8)")
	assert.Contains(t, query, "ORDER BY date DESC, transaction_id DESC LIMIT $9")
	assert.Equal(t, []any{"user-1", domain.Expense, domain.CategoryFood, "acct-1", from, to, after, "tx-9", 25}, args)
}

func TestBuildTransactionListQuery_ZeroLimitIsUnbounded(t *testing.T) {
	query, args := buildTransactionListQuery("user-1", domain.TransactionFilter{})

	assert.NotContains(t, query, "LIMIT")
	assert.Equal(t, []any{"user-1"}, args)
}

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want apperrors.Kind
	}{
		{"no rows", pgx.ErrNoRows, apperrors.KindNotFound},
		{"unique", &pgconn.PgError{Code: "23505"}, apperrors.KindConflict},
		{"foreign key", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503"}), apperrors.KindValidation},
		{"other", errors.New("connection reset"), apperrors.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, apperrors.KindOf(mapError("Goal", tt.err)))
		})
	}
	assert.NoError(t, mapError("Goal", nil))
	assert.EqualError(t, mapError("Goal", pgx.ErrNoRows), "Goal not found or access denied")
}

func TestMaintenanceStatements(t *testing.T) {
	assert.Equal(t, "VACUUM (ANALYZE);", vacuumStatement(false))
	assert.Equal(t, "VACUUM FULL;", vacuumStatement(true))
	assert.Equal(t, `REINDEX DATABASE "pfm";`, reindexStatement("pfm"))
	assert.Equal(t, `REINDEX DATABASE "odd""name";`, reindexStatement(`odd"name`))
}
