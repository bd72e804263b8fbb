package store

import (
	"context"
	"fmt"

	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/database"
)

// Check is a named integrity property expressed as a query counting
// violating rows.
type Check struct {
	Name  string
	Query string
}

// CheckResult is the outcome of one integrity check.
type CheckResult struct {
	Name       string `json:"name"`
	Violations int64  `json:"violations"`
	OK         bool   `json:"ok"`
}

// Checks returns the integrity properties the seeded schema must
// satisfy. The engine's foreign keys already enforce the referential
// ones; verifying them independently catches schemas created without
// constraints or data loaded around them.
func Checks() []Check {
	return []Check{
		{
			Name: "transactions.sender_id references users",
			Query: `SELECT COUNT(*) FROM transactions t
				LEFT JOIN users u ON u.user_id = t.sender_id
				WHERE u.user_id IS NULL`,
		},
		{
			Name: "transactions.receiver_id references users",
			Query: `SELECT COUNT(*) FROM transactions t
				LEFT JOIN users u ON u.user_id = t.receiver_id
				WHERE u.user_id IS NULL`,
		},
		{
			Name: "transactions.category_id references transaction_categories",
			Query: `SELECT COUNT(*) FROM transactions t
				LEFT JOIN transaction_categories c ON c.category_id = t.category_id
				WHERE c.category_id IS NULL`,
		},
		{
			Name: "system_logs.transaction_id references transactions",
			Query: `SELECT COUNT(*) FROM system_logs l
				LEFT JOIN transactions t ON t.transaction_id = l.transaction_id
				WHERE t.transaction_id IS NULL`,
		},
		{
			Name: "users.user_id is unique",
			Query: `SELECT COUNT(*) FROM
				(SELECT user_id FROM users GROUP BY user_id HAVING COUNT(*) > 1) d`,
		},
		{
			Name: "transaction_categories.category_id is unique",
			Query: `SELECT COUNT(*) FROM
				(SELECT category_id FROM transaction_categories GROUP BY category_id HAVING COUNT(*) > 1) d`,
		},
		{
			Name: "transactions.transaction_id is unique",
			Query: `SELECT COUNT(*) FROM
				(SELECT transaction_id FROM transactions GROUP BY transaction_id HAVING COUNT(*) > 1) d`,
		},
		{
			Name: "system_logs.log_id is unique",
			Query: `SELECT COUNT(*) FROM
				(SELECT log_id FROM system_logs GROUP BY log_id HAVING COUNT(*) > 1) d`,
		},
	}
}

// Verify runs every integrity check and returns one result per check.
func (s *Store) Verify(ctx context.Context) ([]CheckResult, error) {
	checks := Checks()
	results := make([]CheckResult, 0, len(checks))

	for _, check := range checks {
		var violations int64
		if err := s.db.QueryRow(ctx, check.Query).Scan(&violations); err != nil {
			return nil, fmt.Errorf("check %q failed: %w", check.Name, database.Classify(err))
		}
		results = append(results, CheckResult{
			Name:       check.Name,
			Violations: violations,
			OK:         violations == 0,
		})
	}
	return results, nil
}
