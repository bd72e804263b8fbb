package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a row is not found.
	ErrNotFound = errors.New("row not found")

	// ErrDuplicateKey is returned when a primary key or unique
	// constraint is violated, e.g. re-running the seed script against a
	// populated database.
	ErrDuplicateKey = errors.New("duplicate key value")

	// ErrForeignKeyViolation is returned when an insert references a
	// nonexistent row or a delete would orphan a referencing row.
	ErrForeignKeyViolation = errors.New("foreign key violation")

	// ErrUndefinedTable is returned when a statement references a table
	// that does not exist yet, e.g. creating a dependent table before
	// the table it references.
	ErrUndefinedTable = errors.New("undefined table")
)

// PostgreSQL error codes for the only error classes this schema can
// produce (constraint violations and missing relations).
const (
	codeForeignKeyViolation = "23503"
	codeUniqueViolation     = "23505"
	codeUndefinedTable      = "42P01"
)

// Classify wraps known PostgreSQL error codes with the matching sentinel
// so callers can use errors.Is. Unknown errors pass through unchanged.
func Classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", ErrDuplicateKey, pgErr.Message)
	case codeForeignKeyViolation:
		return fmt.Errorf("%w: %s", ErrForeignKeyViolation, pgErr.Message)
	case codeUndefinedTable:
		return fmt.Errorf("%w: %s", ErrUndefinedTable, pgErr.Message)
	}
	return err
}

// QueryError carries the statement that failed.
type QueryError struct {
	Query string
	Err   error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query error: %v\nQuery: %s", e.Err, e.Query)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}
