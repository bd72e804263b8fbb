//go:build integration
// +build integration

package momodb_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/TKcodes-bit/Momo-app-code-bit/migrations"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/database"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/migration"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/models"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/schema"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/seed"
	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/store"
)

// setupTestDB starts a PostgreSQL container and returns its connection string.
func setupTestDB(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("momo"),
		postgres.WithUsername("momo"),
		postgres.WithPassword("momo"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}
	return connStr
}

func connectPool(t *testing.T, connStr string) *pgxpool.Pool {
	t.Helper()
	// Single connection per pool: advisory locks are session-scoped, so
	// lock and unlock must run on the same connection.
	cfg, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("Failed to parse connection string: %v", err)
	}
	cfg.MaxConns = 1

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

// migrateAll applies the embedded migrations under the migration lock.
func migrateAll(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	ctx := context.Background()

	executor := migration.NewExecutor(pool)
	if err := executor.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize migrations: %v", err)
	}
	migs, err := migration.NewSource(migrations.FS).List()
	if err != nil {
		t.Fatalf("Failed to list migrations: %v", err)
	}
	if len(migs) != 4 {
		t.Fatalf("Expected 4 embedded migrations, got %d", len(migs))
	}

	if err := executor.Lock(ctx); err != nil {
		t.Fatalf("Failed to acquire migration lock: %v", err)
	}
	defer func() { _ = executor.Unlock(ctx) }()

	if err := executor.ApplyAll(ctx, migs, false); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}
}

func TestMigrateSeedAndVerify(t *testing.T) {
	connStr := setupTestDB(t)
	pool := connectPool(t, connStr)
	migrateAll(t, pool)

	ctx := context.Background()
	db := database.NewDB(pool)

	summary, err := seed.Load(ctx, db, seed.Options{})
	if err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
	if summary.Total() != 20 {
		t.Errorf("Expected 20 seeded rows, got %d", summary.Total())
	}

	s := store.New(db)

	counts, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	if counts.Users != 5 || counts.Categories != 5 || counts.Transactions != 5 || counts.Logs != 5 {
		t.Errorf("Expected 5 rows per table, got %+v", counts)
	}

	// Transaction 101 returns its exact seeded values.
	txn, err := s.TransactionByID(ctx, 101)
	if err != nil {
		t.Fatalf("Failed to query transaction 101: %v", err)
	}
	if txn.SenderID != 1 || txn.ReceiverID != 2 || txn.CategoryID != 3 {
		t.Errorf("Transaction 101 references wrong rows: %+v", txn)
	}
	if !txn.Amount.Equal(decimal.RequireFromString("15000.00")) {
		t.Errorf("Transaction 101 amount = %s, want 15000.00", txn.Amount)
	}
	if !txn.Charges.Equal(decimal.RequireFromString("500.00")) {
		t.Errorf("Transaction 101 charges = %s, want 500.00", txn.Charges)
	}
	if got := txn.Date.Format("2006-01-02"); got != "2025-09-06" {
		t.Errorf("Transaction 101 date = %s, want 2025-09-06", got)
	}

	// Log 203 joined to its transaction is the Failed outcome of txn 103.
	log, err := s.SystemLogByID(ctx, 203)
	if err != nil {
		t.Fatalf("Failed to query system log 203: %v", err)
	}
	if log.LogType != models.LogTypeFailed {
		t.Errorf("Log 203 type = %q, want Failed", log.LogType)
	}
	if log.TransactionID != 103 || log.SenderID != 2 || log.ReceiverID != 5 {
		t.Errorf("Log 203 transaction fields wrong: %+v", log)
	}
	if !log.Amount.Equal(decimal.RequireFromString("5000.00")) {
		t.Errorf("Log 203 transaction amount = %s, want 5000.00", log.Amount)
	}

	// Every integrity check passes on the seeded schema.
	results, err := s.Verify(ctx)
	if err != nil {
		t.Fatalf("Failed to verify: %v", err)
	}
	for _, r := range results {
		if !r.OK {
			t.Errorf("Check %q failed with %d violation(s)", r.Name, r.Violations)
		}
	}
}

func TestReseedFailsWithDuplicateKey(t *testing.T) {
	connStr := setupTestDB(t)
	pool := connectPool(t, connStr)
	migrateAll(t, pool)

	ctx := context.Background()
	db := database.NewDB(pool)

	if _, err := seed.Load(ctx, db, seed.Options{}); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	// The plain seed is not idempotent: re-running it must fail.
	_, err := seed.Load(ctx, db, seed.Options{})
	if !errors.Is(err, database.ErrDuplicateKey) {
		t.Fatalf("Expected duplicate key error, got: %v", err)
	}

	// The failed load is atomic: row counts are unchanged.
	counts, err := store.New(db).Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	if counts.Users != 5 || counts.Transactions != 5 {
		t.Errorf("Counts changed after failed reseed: %+v", counts)
	}

	// Insert-or-ignore mode succeeds and inserts nothing.
	summary, err := seed.Load(ctx, db, seed.Options{IgnoreExisting: true})
	if err != nil {
		t.Fatalf("Ignore-existing seed failed: %v", err)
	}
	if summary.Total() != 0 {
		t.Errorf("Expected 0 rows inserted, got %d", summary.Total())
	}
}

func TestSeedWithoutUsersFailsForeignKey(t *testing.T) {
	connStr := setupTestDB(t)
	pool := connectPool(t, connStr)
	migrateAll(t, pool)

	ctx := context.Background()
	db := database.NewDB(pool)

	// A transaction referencing a user that was never inserted must be
	// rejected by the foreign key, aborting the whole load.
	data := seed.Data()
	data.Users = data.Users[:1]

	_, err := seed.LoadDataset(ctx, db, data, seed.Options{})
	if !errors.Is(err, database.ErrForeignKeyViolation) {
		t.Fatalf("Expected foreign key violation, got: %v", err)
	}

	counts, err := store.New(db).Count(ctx)
	if err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	if counts.Users != 0 {
		t.Errorf("Partial seed leaked rows: %+v", counts)
	}
}

func TestCreateTransactionsBeforeUsersFails(t *testing.T) {
	connStr := setupTestDB(t)
	pool := connectPool(t, connStr)

	ctx := context.Background()
	db := database.NewDB(pool)

	// Creating the transactions table on an empty database fails because
	// the tables it references do not exist yet.
	_, err := db.Exec(ctx, schema.CreateSQL(schema.Transactions()))
	if !errors.Is(err, database.ErrUndefinedTable) {
		t.Fatalf("Expected undefined table error, got: %v", err)
	}
}

func TestDeleteReferencedUserRejected(t *testing.T) {
	connStr := setupTestDB(t)
	pool := connectPool(t, connStr)
	migrateAll(t, pool)

	ctx := context.Background()
	db := database.NewDB(pool)

	if _, err := seed.Load(ctx, db, seed.Options{}); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	// No delete rule is declared, so the engine default (NO ACTION)
	// rejects the delete of a referenced user.
	_, err := db.Exec(ctx, "DELETE FROM users WHERE user_id = $1", 1)
	if !errors.Is(err, database.ErrForeignKeyViolation) {
		t.Fatalf("Expected foreign key violation, got: %v", err)
	}
}

func TestMigrateStatusAndRollback(t *testing.T) {
	connStr := setupTestDB(t)
	pool := connectPool(t, connStr)
	migrateAll(t, pool)

	ctx := context.Background()
	executor := migration.NewExecutor(pool)
	migs, err := migration.NewSource(migrations.FS).List()
	if err != nil {
		t.Fatalf("Failed to list migrations: %v", err)
	}

	status, err := executor.GetStatus(ctx, migs)
	if err != nil {
		t.Fatalf("Failed to get status: %v", err)
	}
	for _, r := range status {
		if r.Status != migration.StatusApplied {
			t.Errorf("Migration %s status = %s, want applied", r.Version, r.Status)
		}
	}

	// Roll back the newest migration (system_logs) and confirm it is
	// pending again while the others stay applied.
	last := migs[len(migs)-1]
	if err := executor.Rollback(ctx, last, false); err != nil {
		t.Fatalf("Failed to rollback %s: %v", last.Version, err)
	}

	status, err = executor.GetStatus(ctx, migs)
	if err != nil {
		t.Fatalf("Failed to get status: %v", err)
	}
	for _, r := range status {
		want := migration.StatusApplied
		if r.Version == last.Version {
			want = migration.StatusPending
		}
		if r.Status != want {
			t.Errorf("Migration %s status = %s, want %s", r.Version, r.Status, want)
		}
	}

	// Re-applying brings the schema back; seeding then works end to end.
	if err := executor.Apply(ctx, last, false); err != nil {
		t.Fatalf("Failed to re-apply %s: %v", last.Version, err)
	}
	db := database.NewDB(pool)
	if _, err := seed.Load(ctx, db, seed.Options{}); err != nil {
		t.Fatalf("Failed to seed after re-apply: %v", err)
	}
}

func TestFailedMigrationLeavesAppliedAtNull(t *testing.T) {
	connStr := setupTestDB(t)
	pool := connectPool(t, connStr)

	ctx := context.Background()
	executor := migration.NewExecutor(pool)
	if err := executor.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	// system_logs references transactions, which does not exist yet, so
	// applying it first fails.
	bad := migration.Migration{
		Version: "20250901999999",
		Name:    "create_system_logs",
		UpSQL:   schema.CreateSQL(schema.SystemLogs()),
		DownSQL: schema.DropSQL(schema.SystemLogs()),
	}
	if err := executor.Apply(ctx, bad, false); err == nil {
		t.Fatal("Expected apply to fail without the referenced tables")
	}

	records, err := executor.All(ctx)
	if err != nil {
		t.Fatalf("Failed to query records: %v", err)
	}
	var rec *migration.Record
	for i := range records {
		if records[i].Version == bad.Version {
			rec = &records[i]
		}
	}
	if rec == nil {
		t.Fatalf("Failed migration %s not recorded", bad.Version)
	}
	if rec.Status != migration.StatusFailed {
		t.Errorf("Status = %s, want failed", rec.Status)
	}
	if rec.AppliedAt != nil {
		t.Errorf("AppliedAt = %v, want nil for a failed migration", rec.AppliedAt)
	}
	if rec.Error == nil || *rec.Error == "" {
		t.Error("Error message missing on failed migration record")
	}
}

func TestTryLockDetectsConcurrentMigrator(t *testing.T) {
	connStr := setupTestDB(t)
	ctx := context.Background()

	// Advisory locks are per-connection, so use two pools.
	poolA := connectPool(t, connStr)
	poolB := connectPool(t, connStr)

	a := migration.NewExecutor(poolA)
	b := migration.NewExecutor(poolB)
	if err := a.Initialize(ctx); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	if err := a.Lock(ctx); err != nil {
		t.Fatalf("Failed to lock: %v", err)
	}
	acquired, err := b.TryLock(ctx)
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if acquired {
		t.Error("Expected second migrator to be locked out")
	}

	if err := a.Unlock(ctx); err != nil {
		t.Fatalf("Failed to unlock: %v", err)
	}
	acquired, err = b.TryLock(ctx)
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if !acquired {
		t.Error("Expected lock to be free after unlock")
	}
	_ = b.Unlock(ctx)
}
