// Package migration applies versioned SQL migrations against PostgreSQL,
// tracked in a schema_migrations table and serialized by an advisory lock.
package migration

import "time"

// Migration is a single versioned migration with its up and down SQL.
type Migration struct {
	Version string // Timestamp version (e.g., "20250901120000")
	Name    string // Migration name (e.g., "create_users")
	UpSQL   string
	DownSQL string
}

// Status of a migration in the tracking table.
type Status string

const (
	// StatusPending means the migration has not been applied.
	StatusPending Status = "pending"
	// StatusApplied means the migration has been applied.
	StatusApplied Status = "applied"
	// StatusFailed means the migration failed to apply.
	StatusFailed Status = "failed"
)

// Record is a migration row in the tracking table.
type Record struct {
	Version   string
	Name      string
	Status    Status
	AppliedAt *time.Time // nil if not applied
	Error     *string    // error message if failed
}
