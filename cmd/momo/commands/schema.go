package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/schema"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Inspect the Momo schema",
}

var schemaSQLCmd = &cobra.Command{
	Use:   "sql",
	Short: "Print the rendered DDL in dependency order",
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := schema.SortByDependency(schema.Tables())
		if err != nil {
			return err
		}
		for i, table := range tables {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(schema.CreateSQL(table))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
	schemaCmd.AddCommand(schemaSQLCmd)
}
