package schema

import (
	"fmt"
	"strings"
)

// CreateSQL renders a CREATE TABLE statement for the table.
// Plain CREATE TABLE (no IF NOT EXISTS): creating a table that already
// exists, or whose referenced table is missing, must fail.
func CreateSQL(table *Table) string {
	var singlePK string
	if table.PrimaryKey != nil && len(table.PrimaryKey.Columns) == 1 {
		singlePK = table.PrimaryKey.Columns[0]
	}

	var parts []string
	for _, col := range table.Columns {
		def := columnDefinition(col)
		if col.Name == singlePK {
			def += " PRIMARY KEY"
		}
		parts = append(parts, "    "+def)
	}

	if table.PrimaryKey != nil && len(table.PrimaryKey.Columns) > 1 {
		parts = append(parts, fmt.Sprintf("    CONSTRAINT %s PRIMARY KEY (%s)",
			table.PrimaryKey.Name, strings.Join(table.PrimaryKey.Columns, ", ")))
	}

	for _, fk := range table.ForeignKeys {
		parts = append(parts, fmt.Sprintf("    CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s(%s)",
			fk.Name, fk.Column, fk.ReferencedTable, fk.ReferencedColumn))
	}

	return fmt.Sprintf("CREATE TABLE %s (\n%s\n);", table.Name, strings.Join(parts, ",\n"))
}

// DropSQL renders a DROP TABLE statement for the table.
func DropSQL(table *Table) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s;", table.Name)
}

func columnDefinition(col Column) string {
	def := col.Name + " " + col.SQLType
	if !col.Nullable {
		def += " NOT NULL"
	}
	return def
}
