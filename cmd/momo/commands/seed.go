package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TKcodes-bit/Momo-app-code-bit/cmd/momo/output"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/database"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/seed"
)

var ignoreExisting bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the sample dataset",
	Long: `Insert the fixed sample rows in dependency order: 5 users,
5 transaction categories, 5 transactions, 5 system logs.

The load is a single transaction of plain INSERTs: running it against an
already-seeded database fails with a duplicate-key error and changes
nothing. Pass --ignore-existing to skip rows that are already present.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed()
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().BoolVar(&ignoreExisting, "ignore-existing", false, "Skip rows whose primary key already exists")
}

func runSeed() error {
	ctx := context.Background()

	url, err := databaseURL()
	if err != nil {
		return err
	}
	db, err := database.Connect(ctx, url)
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := seed.Load(ctx, db, seed.Options{IgnoreExisting: ignoreExisting})
	if err != nil {
		switch {
		case errors.Is(err, database.ErrDuplicateKey):
			output.Error("Seed data already present; nothing was inserted")
			output.Muted("Re-run with --ignore-existing to skip existing rows.")
		case errors.Is(err, database.ErrUndefinedTable):
			output.Error("Schema not created yet")
			output.Muted("Run `momo migrate up` first.")
		}
		return fmt.Errorf("seeding failed: %w", err)
	}

	output.Success("Seeded %d row(s): %d users, %d categories, %d transactions, %d system logs",
		summary.Total(), summary.Users, summary.Categories, summary.Transactions, summary.Logs)
	if ignoreExisting && summary.Total() == 0 {
		output.Muted("All rows were already present.")
	}
	return nil
}
