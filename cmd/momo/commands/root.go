// Package commands implements the momo CLI.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TKcodes-bit/Momo-app-code-bit/migrations"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/config"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/migration"
)

var (
	// Global flags
	dbURL         string
	migrationsDir string
	verbose       bool
	jsonOutput    bool
)

var rootCmd = &cobra.Command{
	Use:   "momo",
	Short: "Momo database schema and seed tool",
	Long: `momo creates the Momo mobile-money schema and loads its sample data.

The schema is four tables (users, transaction_categories, transactions,
system_logs) created by versioned migrations in dependency order, then
seeded with five fixed rows per table.

Commands:
  migrate  - Apply, roll back, or inspect schema migrations
  seed     - Load the sample dataset
  verify   - Check referential integrity and key uniqueness
  schema   - Print the rendered DDL`,
	Version: "1.0.0",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (falls back to DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "", "Directory of migration files (default: embedded migrations)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// databaseURL resolves the connection URL from the --db flag, then the
// environment (including a .env file).
func databaseURL() (string, error) {
	if dbURL != "" {
		return dbURL, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", fmt.Errorf("--db flag not set and %w", err)
	}
	return cfg.DatabaseURL, nil
}

// resolveMigrationsDir returns the --migrations-dir flag when set,
// falling back to MOMO_MIGRATIONS_DIR from the environment. Resolved
// independently of the database URL so the env dir is honored even
// when --db is passed.
func resolveMigrationsDir() string {
	if migrationsDir != "" {
		return migrationsDir
	}
	return config.MigrationsDirFromEnv()
}

// migrationSource returns the configured migration source: a disk
// directory when one is configured, the embedded files otherwise.
func migrationSource() *migration.Source {
	if dir := resolveMigrationsDir(); dir != "" {
		return migration.NewDirSource(dir)
	}
	return migration.NewSource(migrations.FS)
}
