package schema

import (
	"strings"
	"testing"
)

func TestCreateSQLUsers(t *testing.T) {
	sql := CreateSQL(Users())

	if !strings.Contains(sql, "CREATE TABLE users") {
		t.Errorf("Expected CREATE TABLE users, got: %s", sql)
	}
	if strings.Contains(sql, "IF NOT EXISTS") {
		t.Errorf("Expected plain CREATE TABLE without IF NOT EXISTS, got: %s", sql)
	}
	if !strings.Contains(sql, "user_id integer NOT NULL PRIMARY KEY") {
		t.Errorf("Expected inline PRIMARY KEY on user_id, got: %s", sql)
	}
	if !strings.Contains(sql, "full_name varchar(100) NOT NULL") {
		t.Errorf("Expected full_name column definition, got: %s", sql)
	}
	if !strings.Contains(sql, "phone_number varchar(20) NOT NULL") {
		t.Errorf("Expected phone_number column definition, got: %s", sql)
	}
}

func TestCreateSQLTransactionsForeignKeys(t *testing.T) {
	sql := CreateSQL(Transactions())

	if !strings.Contains(sql, "transaction_id integer NOT NULL PRIMARY KEY") {
		t.Errorf("Expected inline PRIMARY KEY on transaction_id, got: %s", sql)
	}
	if !strings.Contains(sql, "amount numeric(10,2) NOT NULL") {
		t.Errorf("Expected amount column definition, got: %s", sql)
	}
	if !strings.Contains(sql, "transaction_date date NOT NULL") {
		t.Errorf("Expected transaction_date column definition, got: %s", sql)
	}

	// Sender and receiver both reference users; category references
	// transaction_categories.
	fks := []string{
		"CONSTRAINT fk_transactions_sender_id_users FOREIGN KEY (sender_id) REFERENCES users(user_id)",
		"CONSTRAINT fk_transactions_receiver_id_users FOREIGN KEY (receiver_id) REFERENCES users(user_id)",
		"CONSTRAINT fk_transactions_category_id_transaction_categories FOREIGN KEY (category_id) REFERENCES transaction_categories(category_id)",
	}
	for _, fk := range fks {
		if !strings.Contains(sql, fk) {
			t.Errorf("Expected foreign key clause %q, got: %s", fk, sql)
		}
	}

	// The source schema defines no CHECK constraints; none should appear.
	if strings.Contains(sql, "CHECK") {
		t.Errorf("Expected no CHECK constraints, got: %s", sql)
	}
}

func TestCreateSQLNullableColumn(t *testing.T) {
	sql := CreateSQL(TransactionCategories())

	if !strings.Contains(sql, "description varchar(100)") {
		t.Errorf("Expected description column definition, got: %s", sql)
	}
	if strings.Contains(sql, "description varchar(100) NOT NULL") {
		t.Errorf("Expected description to be nullable, got: %s", sql)
	}
}

func TestDropSQL(t *testing.T) {
	sql := DropSQL(SystemLogs())
	if sql != "DROP TABLE IF EXISTS system_logs;" {
		t.Errorf("Unexpected DROP TABLE statement: %s", sql)
	}
}
