package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyDuplicateKey(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "23505",
		Message: `duplicate key value violates unique constraint "users_pkey"`,
	}

	err := Classify(pgErr)
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Contains(t, err.Error(), "users_pkey")
}

func TestClassifyForeignKeyViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "23503",
		Message: `insert or update on table "transactions" violates foreign key constraint`,
	}

	err := Classify(pgErr)
	assert.ErrorIs(t, err, ErrForeignKeyViolation)
}

func TestClassifyUndefinedTable(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:    "42P01",
		Message: `relation "users" does not exist`,
	}

	err := Classify(pgErr)
	assert.ErrorIs(t, err, ErrUndefinedTable)
}

func TestClassifyWrappedPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate"}
	wrapped := fmt.Errorf("seed failed: %w", pgErr)

	assert.ErrorIs(t, Classify(wrapped), ErrDuplicateKey)
}

func TestClassifyUnknownErrorPassesThrough(t *testing.T) {
	sentinel := errors.New("connection refused")
	require.Equal(t, sentinel, Classify(sentinel))

	pgErr := &pgconn.PgError{Code: "57014", Message: "canceling statement"}
	assert.Equal(t, error(pgErr), Classify(pgErr))
}

func TestQueryErrorUnwrap(t *testing.T) {
	qe := &QueryError{
		Query: "INSERT INTO users VALUES ($1, $2, $3)",
		Err:   fmt.Errorf("%w: users_pkey", ErrDuplicateKey),
	}

	assert.ErrorIs(t, qe, ErrDuplicateKey)
	assert.Contains(t, qe.Error(), "INSERT INTO users")
}
