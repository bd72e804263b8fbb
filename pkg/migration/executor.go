package migration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/database"
)

// defaultLockID is the advisory lock key serializing migration runs.
const defaultLockID int64 = 835263946

// Executor applies and tracks migrations against a PostgreSQL database.
type Executor struct {
	pool   *pgxpool.Pool
	lockID int64
}

// NewExecutor creates a migration executor over a connection pool.
func NewExecutor(pool *pgxpool.Pool) *Executor {
	return &Executor{pool: pool, lockID: defaultLockID}
}

// WithLockID overrides the advisory lock key.
func (e *Executor) WithLockID(lockID int64) *Executor {
	e.lockID = lockID
	return e
}

// Initialize creates the schema_migrations tracking table if needed.
func (e *Executor) Initialize(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(14) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			applied_at TIMESTAMP,
			error TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`
	if _, err := e.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

// Lock blocks until the migration advisory lock is held. Only one
// caller may apply migrations at a time.
func (e *Executor) Lock(ctx context.Context) error {
	if _, err := e.pool.Exec(ctx, "SELECT pg_advisory_lock($1)", e.lockID); err != nil {
		return fmt.Errorf("failed to acquire migration lock: %w", err)
	}
	return nil
}

// Unlock releases the migration advisory lock.
func (e *Executor) Unlock(ctx context.Context) error {
	var released bool
	err := e.pool.QueryRow(ctx, "SELECT pg_advisory_unlock($1)", e.lockID).Scan(&released)
	if err != nil {
		return fmt.Errorf("failed to release migration lock: %w", err)
	}
	if !released {
		return fmt.Errorf("migration lock was not held")
	}
	return nil
}

// TryLock attempts to acquire the advisory lock without blocking.
func (e *Executor) TryLock(ctx context.Context) (bool, error) {
	var acquired bool
	err := e.pool.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", e.lockID).Scan(&acquired)
	if err != nil {
		return false, fmt.Errorf("failed to try migration lock: %w", err)
	}
	return acquired, nil
}

// Applied returns the applied migrations, oldest first.
func (e *Executor) Applied(ctx context.Context) ([]Record, error) {
	return e.queryRecords(ctx, `
		SELECT version, name, status, applied_at, error
		FROM schema_migrations
		WHERE status = 'applied'
		ORDER BY version ASC
	`)
}

// All returns every migration record, oldest first.
func (e *Executor) All(ctx context.Context) ([]Record, error) {
	return e.queryRecords(ctx, `
		SELECT version, name, status, applied_at, error
		FROM schema_migrations
		ORDER BY version ASC
	`)
}

func (e *Executor) queryRecords(ctx context.Context, query string) ([]Record, error) {
	rows, err := e.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Version, &r.Name, &r.Status, &r.AppliedAt, &r.Error); err != nil {
			return nil, fmt.Errorf("failed to scan migration record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// IsApplied reports whether the given version has been applied.
func (e *Executor) IsApplied(ctx context.Context, version string) (bool, error) {
	var count int
	err := e.pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM schema_migrations WHERE version = $1 AND status = 'applied'",
		version,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return count > 0, nil
}

// Apply runs a migration's up SQL in a transaction. A failed statement
// aborts the migration and is recorded in the tracking table; there is
// no retry or partial-failure recovery.
func (e *Executor) Apply(ctx context.Context, m Migration, dryRun bool) error {
	applied, err := e.IsApplied(ctx, m.Version)
	if err != nil {
		return err
	}
	if applied {
		return fmt.Errorf("migration %s is already applied", m.Version)
	}
	if dryRun {
		return nil
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		"INSERT INTO schema_migrations (version, name, status) VALUES ($1, $2, 'pending') ON CONFLICT (version) DO UPDATE SET status = 'pending'",
		m.Version, m.Name,
	)
	if err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	for i, stmt := range splitSQL(m.UpSQL) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			err = database.Classify(err)
			// The transaction is poisoned; record the failure outside it.
			_ = tx.Rollback(ctx)
			e.recordFailure(ctx, m.Version, m.Name, fmt.Sprintf("statement %d failed: %v", i+1, err))
			return fmt.Errorf("migration failed at statement %d: %w", i+1, err)
		}
	}

	now := time.Now()
	_, err = tx.Exec(ctx,
		"UPDATE schema_migrations SET status = 'applied', applied_at = $1, error = NULL WHERE version = $2",
		now, m.Version,
	)
	if err != nil {
		return fmt.Errorf("failed to update migration status: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}

// recordFailure marks the version failed. applied_at stays NULL; the
// migration never took effect.
func (e *Executor) recordFailure(ctx context.Context, version, name, message string) {
	_, _ = e.pool.Exec(ctx,
		`INSERT INTO schema_migrations (version, name, status, error)
		 VALUES ($1, $2, 'failed', $3)
		 ON CONFLICT (version) DO UPDATE SET status = 'failed', error = $3, applied_at = NULL`,
		version, name, message,
	)
}

// Rollback runs a migration's down SQL in a transaction and removes its
// tracking record.
func (e *Executor) Rollback(ctx context.Context, m Migration, dryRun bool) error {
	applied, err := e.IsApplied(ctx, m.Version)
	if err != nil {
		return err
	}
	if !applied {
		return fmt.Errorf("migration %s is not applied", m.Version)
	}
	if dryRun {
		return nil
	}

	tx, err := e.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i, stmt := range splitSQL(m.DownSQL) {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("rollback failed at statement %d: %w", i+1, database.Classify(err))
		}
	}

	if _, err := tx.Exec(ctx, "DELETE FROM schema_migrations WHERE version = $1", m.Version); err != nil {
		return fmt.Errorf("failed to delete migration record: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit rollback: %w", err)
	}
	return nil
}

// ApplyAll applies every pending migration in version order.
func (e *Executor) ApplyAll(ctx context.Context, migrations []Migration, dryRun bool) error {
	applied, err := e.Applied(ctx)
	if err != nil {
		return err
	}
	appliedSet := make(map[string]bool, len(applied))
	for _, r := range applied {
		appliedSet[r.Version] = true
	}

	for _, m := range migrations {
		if appliedSet[m.Version] {
			continue
		}
		if err := e.Apply(ctx, m, dryRun); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", m.Version, err)
		}
	}
	return nil
}

// RollbackTo rolls back applied migrations, newest first, until the
// target version is reached. The target itself stays applied.
func (e *Executor) RollbackTo(ctx context.Context, targetVersion string, migrations []Migration, dryRun bool) error {
	applied, err := e.Applied(ctx)
	if err != nil {
		return err
	}

	byVersion := make(map[string]Migration, len(migrations))
	for _, m := range migrations {
		byVersion[m.Version] = m
	}

	for i := len(applied) - 1; i >= 0; i-- {
		record := applied[i]
		if record.Version <= targetVersion {
			break
		}

		m, ok := byVersion[record.Version]
		if !ok {
			return fmt.Errorf("migration not found for version %s", record.Version)
		}
		if err := e.Rollback(ctx, m, dryRun); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", record.Version, err)
		}
	}
	return nil
}

// GetStatus returns a record for each known migration, pending ones
// included.
func (e *Executor) GetStatus(ctx context.Context, migrations []Migration) ([]Record, error) {
	all, err := e.All(ctx)
	if err != nil {
		return nil, err
	}
	byVersion := make(map[string]Record, len(all))
	for _, r := range all {
		byVersion[r.Version] = r
	}

	records := make([]Record, 0, len(migrations))
	for _, m := range migrations {
		if r, ok := byVersion[m.Version]; ok {
			records = append(records, r)
		} else {
			records = append(records, Record{Version: m.Version, Name: m.Name, Status: StatusPending})
		}
	}
	return records, nil
}

// splitSQL splits migration SQL into statements on semicolons, dropping
// comment lines. Sufficient for the DDL in this repository; none of it
// embeds semicolons in literals.
func splitSQL(sql string) []string {
	var kept []string
	for _, line := range strings.Split(sql, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "--") {
			continue
		}
		kept = append(kept, line)
	}

	var statements []string
	for _, stmt := range strings.Split(strings.Join(kept, "\n"), ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}
