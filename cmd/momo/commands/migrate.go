package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/TKcodes-bit/Momo-app-code-bit/cmd/momo/output"
	"github.com/TKcodes-bit/Momo-app-code-bit/cmd/momo/tui"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/migration"
)

var (
	dryRun      bool
	upSteps     int
	downSteps   int
	target      string
	interactive bool
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run schema migrations",
	Long: `Apply or roll back the Momo schema migrations.

The four table migrations are ordered so that every table is created
after the tables it references: users, transaction_categories,
transactions, system_logs.`,
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long: `Apply pending migrations in dependency order.

Examples:
  momo migrate up                      # Apply all pending migrations
  momo migrate up --steps 1            # Apply next migration only
  momo migrate up --dry-run            # Preview without applying`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateUp()
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long: `Roll back applied migrations, newest first.

Examples:
  momo migrate down --steps 1          # Roll back the last migration
  momo migrate down --target VERSION   # Roll back to a specific version`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateDown()
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrateStatus()
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateStatusCmd)

	migrateUpCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run in interactive mode")
	migrateUpCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview migrations without applying")
	migrateUpCmd.Flags().IntVar(&upSteps, "steps", 0, "Number of migrations to apply (default: all pending)")

	migrateDownCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Run in interactive mode")
	migrateDownCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview rollback without executing")
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "Number of migrations to roll back")
	migrateDownCmd.Flags().StringVar(&target, "target", "", "Roll back to a specific version")
}

// connect opens a pool and a lock-ready executor with the tracking
// table initialized.
func connect(ctx context.Context) (*pgxpool.Pool, *migration.Executor, error) {
	url, err := databaseURL()
	if err != nil {
		return nil, nil, err
	}

	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	executor := migration.NewExecutor(pool)
	if err := executor.Initialize(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to initialize migrations: %w", err)
	}
	return pool, executor, nil
}

// pendingMigrations filters out already-applied versions, keeping at
// most limit migrations when limit > 0. A limit of zero keeps them all.
func pendingMigrations(migrations []migration.Migration, appliedSet map[string]bool, limit int) []migration.Migration {
	var pending []migration.Migration
	for _, m := range migrations {
		if appliedSet[m.Version] {
			continue
		}
		pending = append(pending, m)
		if limit > 0 && len(pending) >= limit {
			break
		}
	}
	return pending
}

func runMigrateUp() error {
	if interactive {
		url, err := databaseURL()
		if err != nil {
			return err
		}
		return tui.RunMigrateUI("up", url, migrationSource())
	}

	ctx := context.Background()
	pool, executor, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrations, err := migrationSource().List()
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(migrations) == 0 {
		output.Warning("No migrations found")
		return nil
	}

	if !dryRun {
		if err := executor.Lock(ctx); err != nil {
			return err
		}
		defer func() { _ = executor.Unlock(ctx) }()
	}

	applied, err := executor.Applied(ctx)
	if err != nil {
		return err
	}
	appliedSet := make(map[string]bool, len(applied))
	for _, r := range applied {
		appliedSet[r.Version] = true
	}

	toApply := pendingMigrations(migrations, appliedSet, upSteps)
	if len(toApply) == 0 {
		output.Info("No pending migrations")
		return nil
	}

	if dryRun {
		output.Section("DRY RUN - Preview")
		for _, m := range toApply {
			fmt.Printf("  %s %s - %s\n", output.StatusIcon("pending"), m.Version, m.Name)
		}
		return nil
	}

	output.Section("Applying Migrations")
	for _, m := range toApply {
		if verbose {
			output.Info("Applying %s - %s...", m.Version, m.Name)
		}
		if err := executor.Apply(ctx, m, false); err != nil {
			output.Error("Failed to apply %s: %v", m.Version, err)
			return fmt.Errorf("failed to apply migration %s: %w", m.Version, err)
		}
		output.Success("Applied %s - %s", m.Version, m.Name)
	}

	fmt.Println()
	output.Success("Applied %d migration(s)", len(toApply))
	return nil
}

func runMigrateDown() error {
	if interactive {
		url, err := databaseURL()
		if err != nil {
			return err
		}
		return tui.RunMigrateUI("down", url, migrationSource())
	}

	ctx := context.Background()
	pool, executor, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrations, err := migrationSource().List()
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}

	if !dryRun {
		if err := executor.Lock(ctx); err != nil {
			return err
		}
		defer func() { _ = executor.Unlock(ctx) }()
	}

	if target != "" {
		if dryRun {
			output.Info("DRY RUN - Would roll back to version %s", target)
			return nil
		}
		output.Section("Rolling Back to Target Version")
		if err := executor.RollbackTo(ctx, target, migrations, false); err != nil {
			return fmt.Errorf("failed to rollback to %s: %w", target, err)
		}
		output.Success("Rolled back to version %s", target)
		return nil
	}

	applied, err := executor.Applied(ctx)
	if err != nil {
		return err
	}
	if len(applied) == 0 {
		output.Info("No migrations to roll back")
		return nil
	}

	toRollback := min(downSteps, len(applied))

	if dryRun {
		output.Section("DRY RUN - Preview")
		for i := len(applied) - 1; i >= len(applied)-toRollback; i-- {
			fmt.Printf("  %s %s - %s\n", output.StatusIcon("applied"), applied[i].Version, applied[i].Name)
		}
		return nil
	}

	byVersion := make(map[string]migration.Migration, len(migrations))
	for _, m := range migrations {
		byVersion[m.Version] = m
	}

	output.Section("Rolling Back Migrations")
	for i := 0; i < toRollback; i++ {
		record := applied[len(applied)-1-i]
		m, ok := byVersion[record.Version]
		if !ok {
			return fmt.Errorf("migration not found for version %s", record.Version)
		}
		if err := executor.Rollback(ctx, m, false); err != nil {
			return fmt.Errorf("failed to rollback migration %s: %w", m.Version, err)
		}
		output.Success("Rolled back %s - %s", m.Version, m.Name)
	}

	fmt.Println()
	output.Success("Rolled back %d migration(s)", toRollback)
	return nil
}

func runMigrateStatus() error {
	ctx := context.Background()
	pool, executor, err := connect(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	migrations, err := migrationSource().List()
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(migrations) == 0 {
		output.Warning("No migrations found")
		return nil
	}

	status, err := executor.GetStatus(ctx, migrations)
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "VERSION\tNAME\tSTATUS\tAPPLIED AT")
	for _, record := range status {
		appliedAt := "-"
		if record.AppliedAt != nil {
			appliedAt = record.AppliedAt.Format("2006-01-02 15:04:05")
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\n",
			record.Version, record.Name,
			output.StatusIcon(string(record.Status)), record.Status,
			appliedAt,
		)
	}
	_ = w.Flush()

	var pending, applied, failed int
	for _, record := range status {
		switch record.Status {
		case migration.StatusPending:
			pending++
		case migration.StatusApplied:
			applied++
		case migration.StatusFailed:
			failed++
		}
	}
	fmt.Printf("\nSummary: %d applied, %d pending", applied, pending)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()
	return nil
}
