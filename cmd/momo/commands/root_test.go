package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// MOMO_MIGRATIONS_DIR must be honored whether or not --db is passed;
// the dir is resolved independently of the database URL.
func TestMigrationsDirFallsBackToEnv(t *testing.T) {
	t.Setenv("MOMO_MIGRATIONS_DIR", "testdata/migrations")

	old := migrationsDir
	migrationsDir = ""
	t.Cleanup(func() { migrationsDir = old })

	assert.Equal(t, "testdata/migrations", resolveMigrationsDir())
}

func TestMigrationsDirFlagWinsOverEnv(t *testing.T) {
	t.Setenv("MOMO_MIGRATIONS_DIR", "testdata/migrations")

	old := migrationsDir
	migrationsDir = "custom/dir"
	t.Cleanup(func() { migrationsDir = old })

	assert.Equal(t, "custom/dir", resolveMigrationsDir())
}
