package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TKcodes-bit/Momo-app-code-bit/cmd/momo/output"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/database"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/store"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check referential integrity and key uniqueness",
	Long: `Run the schema's integrity checks against the database:
every transaction references existing users and an existing category,
every system log references an existing transaction, and primary keys
are unique within each table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVerify()
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}

func runVerify() error {
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

	s := store.New(db)
	results, err := s.Verify(ctx)
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(results); err != nil {
			return err
		}
	} else {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, r := range results {
			icon := output.StatusIcon("ok")
			detail := "ok"
			if !r.OK {
				icon = output.StatusIcon("failed")
				detail = fmt.Sprintf("%d violation(s)", r.Violations)
			}
			_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", icon, r.Name, detail)
		}
		_ = w.Flush()
	}

	var failures int
	for _, r := range results {
		if !r.OK {
			failures++
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d integrity check(s) failed", failures)
	}

	if !jsonOutput {
		counts, err := s.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Println()
		output.Success("All checks passed (%d users, %d categories, %d transactions, %d system logs)",
			counts.Users, counts.Categories, counts.Transactions, counts.Logs)
	}
	return nil
}
