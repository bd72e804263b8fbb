// Package seed holds the fixed Momo sample dataset and loads it in
// dependency order.
package seed

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/models"
)

// Dataset is the complete seed dataset: five rows per table.
type Dataset struct {
	Users        []models.User
	Categories   []models.TransactionCategory
	Transactions []models.Transaction
	Logs         []models.SystemLog
}

// Data returns the canonical seed dataset. The literal values are fixed:
// compatibility tests depend on them verbatim.
func Data() Dataset {
	return Dataset{
		Users: []models.User{
			{ID: 1, FullName: "Alice Uwimana", PhoneNumber: "+250788111001"},
			{ID: 2, FullName: "John Mugisha", PhoneNumber: "+250788111002"},
			{ID: 3, FullName: "Grace Ingabire", PhoneNumber: "+250788111003"},
			{ID: 4, FullName: "Eric Niyonzima", PhoneNumber: "+250788111004"},
			{ID: 5, FullName: "Claudine Mukamana", PhoneNumber: "+250788111005"},
		},
		Categories: []models.TransactionCategory{
			{ID: 1, Name: "Airtime Purchase", Description: "Mobile airtime top-up"},
			{ID: 2, Name: "Bill Payment", Description: "Utility and service bill payments"},
			{ID: 3, Name: "Money Transfer", Description: "Person to person money transfer"},
			{ID: 4, Name: "School Fees", Description: "School and tuition fee payments"},
			{ID: 5, Name: "Shopping", Description: "Merchant and retail purchases"},
		},
		Transactions: []models.Transaction{
			{ID: 101, SenderID: 1, ReceiverID: 2, CategoryID: 3, Amount: amount("15000.00"), Date: date(2025, 9, 6), Charges: amount("500.00")},
			{ID: 102, SenderID: 3, ReceiverID: 1, CategoryID: 1, Amount: amount("2000.00"), Date: date(2025, 9, 7), Charges: amount("50.00")},
			{ID: 103, SenderID: 2, ReceiverID: 5, CategoryID: 2, Amount: amount("5000.00"), Date: date(2025, 9, 8), Charges: amount("100.00")},
			{ID: 104, SenderID: 4, ReceiverID: 3, CategoryID: 4, Amount: amount("75000.00"), Date: date(2025, 9, 9), Charges: amount("1000.00")},
			{ID: 105, SenderID: 5, ReceiverID: 4, CategoryID: 5, Amount: amount("12500.00"), Date: date(2025, 9, 10), Charges: amount("250.00")},
		},
		Logs: []models.SystemLog{
			{ID: 201, TransactionID: 101, LogType: models.LogTypeSuccess, Date: date(2025, 9, 6)},
			{ID: 202, TransactionID: 102, LogType: models.LogTypeSuccess, Date: date(2025, 9, 7)},
			{ID: 203, TransactionID: 103, LogType: models.LogTypeFailed, Date: date(2025, 9, 8)},
			{ID: 204, TransactionID: 104, LogType: models.LogTypePending, Date: date(2025, 9, 9)},
			{ID: 205, TransactionID: 105, LogType: models.LogTypeSuccess, Date: date(2025, 9, 10)},
		},
	}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
