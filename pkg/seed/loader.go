package seed

import (
	"context"
	"fmt"

	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/database"
)

// Options controls seeding behavior.
type Options struct {
	// IgnoreExisting appends ON CONFLICT DO NOTHING to every insert,
	// making the load idempotent. Off by default: re-running the plain
	// seed against a populated database fails with a duplicate-key
	// error, matching the original script.
	IgnoreExisting bool
}

// Summary reports rows inserted per table.
type Summary struct {
	Users        int64
	Categories   int64
	Transactions int64
	Logs         int64
}

// Total returns the total number of rows inserted.
func (s Summary) Total() int64 {
	return s.Users + s.Categories + s.Transactions + s.Logs
}

// Load inserts the canonical dataset in dependency order inside a single
// transaction. Any constraint violation aborts the whole load.
func Load(ctx context.Context, db *database.DB, opts Options) (Summary, error) {
	return LoadDataset(ctx, db, Data(), opts)
}

// LoadDataset inserts an arbitrary dataset; tests use it to load
// deliberately broken data.
func LoadDataset(ctx context.Context, db *database.DB, data Dataset, opts Options) (Summary, error) {
	var summary Summary

	tx, err := db.Begin(ctx)
	if err != nil {
		return summary, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	conflict := ""
	if opts.IgnoreExisting {
		conflict = " ON CONFLICT DO NOTHING"
	}

	insert := func(sql string, args ...any) (int64, error) {
		tag, err := tx.Exec(ctx, sql+conflict, args...)
		if err != nil {
			return 0, database.Classify(err)
		}
		return tag.RowsAffected(), nil
	}

	for _, u := range data.Users {
		n, err := insert(
			"INSERT INTO users (user_id, full_name, phone_number) VALUES ($1, $2, $3)",
			u.ID, u.FullName, u.PhoneNumber,
		)
		if err != nil {
			return summary, fmt.Errorf("failed to seed user %d: %w", u.ID, err)
		}
		summary.Users += n
	}

	for _, c := range data.Categories {
		n, err := insert(
			"INSERT INTO transaction_categories (category_id, category_name, description) VALUES ($1, $2, $3)",
			c.ID, c.Name, c.Description,
		)
		if err != nil {
			return summary, fmt.Errorf("failed to seed category %d: %w", c.ID, err)
		}
		summary.Categories += n
	}

	for _, txn := range data.Transactions {
		n, err := insert(
			`INSERT INTO transactions
			 (transaction_id, sender_id, receiver_id, category_id, amount, transaction_date, charges)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			txn.ID, txn.SenderID, txn.ReceiverID, txn.CategoryID, txn.Amount, txn.Date, txn.Charges,
		)
		if err != nil {
			return summary, fmt.Errorf("failed to seed transaction %d: %w", txn.ID, err)
		}
		summary.Transactions += n
	}

	for _, l := range data.Logs {
		n, err := insert(
			"INSERT INTO system_logs (log_id, transaction_id, log_type, log_date) VALUES ($1, $2, $3, $4)",
			l.ID, l.TransactionID, l.LogType, l.Date,
		)
		if err != nil {
			return summary, fmt.Errorf("failed to seed system log %d: %w", l.ID, err)
		}
		summary.Logs += n
	}

	if err := tx.Commit(ctx); err != nil {
		return summary, fmt.Errorf("failed to commit seed transaction: %w", err)
	}
	return summary, nil
}
