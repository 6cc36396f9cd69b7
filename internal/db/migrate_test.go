package db

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{"vendors", "contracts", "milestones", "payments", "change_orders", "issues"}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"idx_contracts_vendor",
		"idx_contracts_status",
		"idx_contracts_risk",
		"idx_milestones_contract",
		"idx_payments_contract",
		"idx_change_orders_contract",
		"idx_issues_contract",
		"idx_issues_open",
	}
	for _, idx := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_WALModeRequested(t *testing.T) {
	// In-memory SQLite uses "memory" journal mode; WAL only applies to file DBs.
	db := openTestDB(t)

	var mode string
	err := db.QueryRow(`PRAGMA journal_mode`).Scan(&mode)
	require.NoError(t, err)
	assert.Equal(t, "memory", mode)
}

func TestMigrate_VendorCertificationColumn(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO vendors (vendor_id, vendor_name, created_at, updated_at)
		VALUES ('v1', 'Acme', '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`)
	require.NoError(t, err)

	var cert string
	var perf float64
	err = db.QueryRow(`SELECT certification_status, performance_score FROM vendors WHERE vendor_id = 'v1'`).Scan(&cert, &perf)
	require.NoError(t, err)
	assert.Equal(t, "", cert)
	assert.Equal(t, 50.0, perf)
}

func TestMigrate_MilestoneStatusCheckConstraint(t *testing.T) {
	db := openTestDB(t)
	seedContract(t, db, "c1")

	_, err := db.Exec(`INSERT INTO milestones (contract_id, title, status, created_at, updated_at)
		VALUES ('c1', 'Design', 'Finished', '2025-01-01', '2025-01-01')`)
	assert.Error(t, err, "unknown milestone status should be rejected")

	_, err = db.Exec(`INSERT INTO milestones (contract_id, title, status, created_at, updated_at)
		VALUES ('c1', 'Design', 'In Progress', '2025-01-01', '2025-01-01')`)
	assert.NoError(t, err)
}

func TestMigrate_ContractDeleteCascades(t *testing.T) {
	db := openTestDB(t)
	seedContract(t, db, "c1")

	_, err := db.Exec(`INSERT INTO milestones (contract_id, title, created_at, updated_at)
		VALUES ('c1', 'Kickoff', '2025-01-01', '2025-01-01')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO payments (contract_id, amount, created_at) VALUES ('c1', 100, '2025-01-01')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM contracts WHERE contract_id = 'c1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM milestones`).Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM payments`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestMigrate_PaymentAmountNonNegative(t *testing.T) {
	db := openTestDB(t)
	seedContract(t, db, "c1")

	_, err := db.Exec(`INSERT INTO payments (contract_id, amount, created_at) VALUES ('c1', -5, '2025-01-01')`)
	assert.Error(t, err)
}

func TestMigrate_BackfillsChangeOrderCount(t *testing.T) {
	db := openTestDB(t)
	seedContract(t, db, "c1")

	for i := 0; i < 2; i++ {
		_, err := db.Exec(`INSERT INTO change_orders (contract_id, amount, created_at) VALUES ('c1', 10, '2025-01-01')`)
		require.NoError(t, err)
	}

	require.NoError(t, Migrate(db))

	var count int
	require.NoError(t, db.QueryRow(`SELECT change_order_count FROM contracts WHERE contract_id = 'c1'`).Scan(&count))
	assert.Equal(t, 2, count)

	// A higher imported count is kept.
	_, err := db.Exec(`UPDATE contracts SET change_order_count = 5 WHERE contract_id = 'c1'`)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.QueryRow(`SELECT change_order_count FROM contracts WHERE contract_id = 'c1'`).Scan(&count))
	assert.Equal(t, 5, count)
}

func seedContract(t *testing.T, db *sql.DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO contracts (contract_id, title, created_at) VALUES (?, 'Test', '2025-01-01T00:00:00Z')`, id)
	require.NoError(t, err)
}

func TestOpenDB_FilePragmasApplyToEveryConnection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "contracts.db")
	db, err := OpenDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		conn, err := db.Conn(ctx)
		require.NoError(t, err)
		defer conn.Close()

		var fk int
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA foreign_keys`).Scan(&fk))
		assert.Equal(t, 1, fk)

		var mode string
		require.NoError(t, conn.QueryRowContext(ctx, `PRAGMA journal_mode`).Scan(&mode))
		assert.Equal(t, "wal", mode)
	}
}
