package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/migration"
)

// Up defaults to applying all pending migrations; down defaults to
// rolling back one. The two commands must not share a step counter.
func TestStepFlagDefaultsAreIndependent(t *testing.T) {
	assert.Equal(t, 0, upSteps, "migrate up without --steps must apply all pending migrations")
	assert.Equal(t, 1, downSteps, "migrate down without --steps must roll back one migration")

	upFlag := migrateUpCmd.Flags().Lookup("steps")
	require.NotNil(t, upFlag)
	assert.Equal(t, "0", upFlag.DefValue)

	downFlag := migrateDownCmd.Flags().Lookup("steps")
	require.NotNil(t, downFlag)
	assert.Equal(t, "1", downFlag.DefValue)
}

func TestPendingMigrationsAppliesAllByDefault(t *testing.T) {
	migrations := []migration.Migration{
		{Version: "20250901120000", Name: "create_users"},
		{Version: "20250901120100", Name: "create_transaction_categories"},
		{Version: "20250901120200", Name: "create_transactions"},
		{Version: "20250901120300", Name: "create_system_logs"},
	}
	applied := map[string]bool{"20250901120000": true}

	pending := pendingMigrations(migrations, applied, 0)
	require.Len(t, pending, 3)
	assert.Equal(t, "20250901120100", pending[0].Version)
	assert.Equal(t, "20250901120300", pending[2].Version)
}

func TestPendingMigrationsHonorsStepLimit(t *testing.T) {
	migrations := []migration.Migration{
		{Version: "20250901120000", Name: "create_users"},
		{Version: "20250901120100", Name: "create_transaction_categories"},
	}

	pending := pendingMigrations(migrations, map[string]bool{}, 1)
	require.Len(t, pending, 1)
	assert.Equal(t, "20250901120000", pending[0].Version)
}
