package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablesAreInDependencyOrder(t *testing.T) {
	tables := Tables()
	require.Len(t, tables, 4)

	var names []string
	for _, table := range tables {
		names = append(names, table.Name)
	}
	assert.Equal(t, []string{"users", "transaction_categories", "transactions", "system_logs"}, names)
}

func TestSortByDependency(t *testing.T) {
	// Feed the tables in the worst possible order; the sort must still
	// place every table after everything it references.
	shuffled := []*Table{SystemLogs(), Transactions(), TransactionCategories(), Users()}

	sorted, err := SortByDependency(shuffled)
	require.NoError(t, err)

	position := make(map[string]int, len(sorted))
	for i, table := range sorted {
		position[table.Name] = i
	}
	for _, table := range sorted {
		for _, ref := range table.References() {
			assert.Less(t, position[ref], position[table.Name],
				"%s must be created after %s", table.Name, ref)
		}
	}
	assert.Equal(t, 0, position["users"])
	assert.Equal(t, 3, position["system_logs"])
}

func TestSortByDependencyUnknownReference(t *testing.T) {
	_, err := SortByDependency([]*Table{Transactions()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "references unknown table")
}

func TestSortByDependencyCycle(t *testing.T) {
	a := &Table{Name: "a", ForeignKeys: []ForeignKey{{Name: "fk_a_b", Column: "b_id", ReferencedTable: "b", ReferencedColumn: "id"}}}
	b := &Table{Name: "b", ForeignKeys: []ForeignKey{{Name: "fk_b_a", Column: "a_id", ReferencedTable: "a", ReferencedColumn: "id"}}}

	_, err := SortByDependency([]*Table{a, b})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cycle")
}

func TestReferencesDeduplicated(t *testing.T) {
	// transactions references users through two columns but depends on it once.
	assert.Equal(t, []string{"users", "transaction_categories"}, Transactions().References())
}
