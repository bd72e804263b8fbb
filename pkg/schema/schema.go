// Package schema defines the Momo relational schema: table metadata,
// dependency ordering, and DDL rendering.
package schema

import "fmt"

// Column describes a single table column.
type Column struct {
	Name     string // Column name (e.g., "user_id")
	SQLType  string // PostgreSQL type (e.g., "varchar(100)")
	Nullable bool
}

// PrimaryKey describes a table's primary key.
type PrimaryKey struct {
	Name    string
	Columns []string
}

// ForeignKey describes a single-column foreign key reference.
type ForeignKey struct {
	Name             string
	Column           string
	ReferencedTable  string
	ReferencedColumn string
}

// Table describes a table: columns, primary key and foreign keys.
type Table struct {
	Name        string
	Columns     []Column
	PrimaryKey  *PrimaryKey
	ForeignKeys []ForeignKey
}

// References returns the names of tables this table depends on.
func (t *Table) References() []string {
	seen := make(map[string]bool)
	var refs []string
	for _, fk := range t.ForeignKeys {
		if fk.ReferencedTable == t.Name || seen[fk.ReferencedTable] {
			continue
		}
		seen[fk.ReferencedTable] = true
		refs = append(refs, fk.ReferencedTable)
	}
	return refs
}

// Tables returns the four Momo tables in dependency order:
// users, transaction_categories, transactions, system_logs.
//
// The source schema defines no CHECK constraints (sender may equal
// receiver, amounts may be negative) and no ON DELETE/UPDATE actions.
// Those gaps are reproduced here, not fixed.
func Tables() []*Table {
	return []*Table{Users(), TransactionCategories(), Transactions(), SystemLogs()}
}

// Users is the identity table referenced by transactions.
func Users() *Table {
	return &Table{
		Name: "users",
		Columns: []Column{
			{Name: "user_id", SQLType: "integer"},
			{Name: "full_name", SQLType: "varchar(100)"},
			{Name: "phone_number", SQLType: "varchar(20)"},
		},
		PrimaryKey: &PrimaryKey{Name: "users_pkey", Columns: []string{"user_id"}},
	}
}

// TransactionCategories is the static reference table of category labels.
func TransactionCategories() *Table {
	return &Table{
		Name: "transaction_categories",
		Columns: []Column{
			{Name: "category_id", SQLType: "integer"},
			{Name: "category_name", SQLType: "varchar(50)"},
			{Name: "description", SQLType: "varchar(100)", Nullable: true},
		},
		PrimaryKey: &PrimaryKey{Name: "transaction_categories_pkey", Columns: []string{"category_id"}},
	}
}

// Transactions records money-movement events. It references users twice
// (sender and receiver) and transaction_categories once.
func Transactions() *Table {
	return &Table{
		Name: "transactions",
		Columns: []Column{
			{Name: "transaction_id", SQLType: "integer"},
			{Name: "sender_id", SQLType: "integer"},
			{Name: "receiver_id", SQLType: "integer"},
			{Name: "category_id", SQLType: "integer"},
			{Name: "amount", SQLType: "numeric(10,2)"},
			{Name: "transaction_date", SQLType: "date"},
			{Name: "charges", SQLType: "numeric(10,2)"},
		},
		PrimaryKey: &PrimaryKey{Name: "transactions_pkey", Columns: []string{"transaction_id"}},
		ForeignKeys: []ForeignKey{
			{Name: "fk_transactions_sender_id_users", Column: "sender_id", ReferencedTable: "users", ReferencedColumn: "user_id"},
			{Name: "fk_transactions_receiver_id_users", Column: "receiver_id", ReferencedTable: "users", ReferencedColumn: "user_id"},
			{Name: "fk_transactions_category_id_transaction_categories", Column: "category_id", ReferencedTable: "transaction_categories", ReferencedColumn: "category_id"},
		},
	}
}

// SystemLogs records audit entries for transactions. A transaction may
// have any number of logs; nothing constrains log_type to an enumerated set.
func SystemLogs() *Table {
	return &Table{
		Name: "system_logs",
		Columns: []Column{
			{Name: "log_id", SQLType: "integer"},
			{Name: "transaction_id", SQLType: "integer"},
			{Name: "log_type", SQLType: "varchar(50)"},
			{Name: "log_date", SQLType: "date"},
		},
		PrimaryKey: &PrimaryKey{Name: "system_logs_pkey", Columns: []string{"log_id"}},
		ForeignKeys: []ForeignKey{
			{Name: "fk_system_logs_transaction_id_transactions", Column: "transaction_id", ReferencedTable: "transactions", ReferencedColumn: "transaction_id"},
		},
	}
}

// SortByDependency orders tables so that every table appears after the
// tables it references. Returns an error on a reference cycle or on a
// reference to a table not in the input.
func SortByDependency(tables []*Table) ([]*Table, error) {
	byName := make(map[string]*Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	inDegree := make(map[string]int, len(tables))
	dependents := make(map[string][]string)
	for _, t := range tables {
		inDegree[t.Name] += 0
		for _, ref := range t.References() {
			if _, ok := byName[ref]; !ok {
				return nil, fmt.Errorf("table %s references unknown table %s", t.Name, ref)
			}
			inDegree[t.Name]++
			dependents[ref] = append(dependents[ref], t.Name)
		}
	}

	// Kahn's algorithm, preserving input order among ready tables.
	var ready []string
	for _, t := range tables {
		if inDegree[t.Name] == 0 {
			ready = append(ready, t.Name)
		}
	}

	var sorted []*Table
	for len(ready) > 0 {
		name := ready[0]
		ready = ready[1:]
		sorted = append(sorted, byName[name])
		for _, dep := range dependents[name] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(sorted) != len(tables) {
		return nil, fmt.Errorf("reference cycle detected among tables")
	}
	return sorted, nil
}
