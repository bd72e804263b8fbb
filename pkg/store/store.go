// Package store is the read side over the seeded schema: row lookups
// and the integrity checks the schema is expected to satisfy.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/database"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/models"
)

// Store queries the Momo tables.
type Store struct {
	db *database.DB
}

// New creates a Store over a database connection.
func New(db *database.DB) *Store {
	return &Store{db: db}
}

// TransactionByID returns a transaction row, or database.ErrNotFound.
func (s *Store) TransactionByID(ctx context.Context, id int) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.QueryRow(ctx, `
		SELECT transaction_id, sender_id, receiver_id, category_id, amount, transaction_date, charges
		FROM transactions
		WHERE transaction_id = $1
	`, id).Scan(&txn.ID, &txn.SenderID, &txn.ReceiverID, &txn.CategoryID, &txn.Amount, &txn.Date, &txn.Charges)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("transaction %d: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %d: %w", id, err)
	}
	return &txn, nil
}

// LogWithTransaction is a system log joined to its transaction.
type LogWithTransaction struct {
	models.SystemLog
	SenderID   int
	ReceiverID int
	Amount     decimal.Decimal
}

// SystemLogByID returns a log joined to its transaction, or
// database.ErrNotFound.
func (s *Store) SystemLogByID(ctx context.Context, id int) (*LogWithTransaction, error) {
	var row LogWithTransaction
	err := s.db.QueryRow(ctx, `
		SELECT l.log_id, l.transaction_id, l.log_type, l.log_date,
		       t.sender_id, t.receiver_id, t.amount
		FROM system_logs l
		JOIN transactions t ON t.transaction_id = l.transaction_id
		WHERE l.log_id = $1
	`, id).Scan(&row.ID, &row.TransactionID, &row.LogType, &row.Date,
		&row.SenderID, &row.ReceiverID, &row.Amount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("system log %d: %w", id, database.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query system log %d: %w", id, err)
	}
	return &row, nil
}

// Counts holds per-table row counts.
type Counts struct {
	Users        int64
	Categories   int64
	Transactions int64
	Logs         int64
}

// Count returns the row counts of the four tables.
func (s *Store) Count(ctx context.Context) (Counts, error) {
	var counts Counts
	err := s.db.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM users),
			(SELECT COUNT(*) FROM transaction_categories),
			(SELECT COUNT(*) FROM transactions),
			(SELECT COUNT(*) FROM system_logs)
	`).Scan(&counts.Users, &counts.Categories, &counts.Transactions, &counts.Logs)
	if err != nil {
		return counts, fmt.Errorf("failed to count rows: %w", database.Classify(err))
	}
	return counts, nil
}
