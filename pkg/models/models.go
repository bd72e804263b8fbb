// Package models defines the row types for the four Momo tables.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is an identity record. The source schema does not validate or
// deduplicate phone numbers.
type User struct {
	ID          int
	FullName    string
	PhoneNumber string
}

// TransactionCategory is a static label classifying transactions.
type TransactionCategory struct {
	ID          int
	Name        string
	Description string
}

// Transaction is a money-movement event between two users.
type Transaction struct {
	ID         int
	SenderID   int
	ReceiverID int
	CategoryID int
	Amount     decimal.Decimal // numeric(10,2)
	Date       time.Time       // date, no time component
	Charges    decimal.Decimal // numeric(10,2)
}

// Observed log outcomes. The schema does not constrain log_type to
// these values.
const (
	LogTypeSuccess = "Success"
	LogTypeFailed  = "Failed"
	LogTypePending = "Pending"
)

// SystemLog is an audit entry describing a transaction outcome. A
// transaction may have any number of logs.
type SystemLog struct {
	ID            int
	TransactionID int
	LogType       string
	Date          time.Time
}
