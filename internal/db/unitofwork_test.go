package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const insertVendor = `INSERT INTO vendors (vendor_id, vendor_name, created_at, updated_at)
	VALUES (?, ?, '2025-01-01T00:00:00Z', '2025-01-01T00:00:00Z')`

func openTestUoW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

// vendorName reads a vendor name through a fresh transaction.
func vendorName(t *testing.T, uow *db.SQLiteUnitOfWork, id string) (string, bool) {
	t.Helper()
	var name string
	var found bool
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		row := tx.QueryRowContext(ctx, `SELECT vendor_name FROM vendors WHERE vendor_id = ?`, id)
		if err := row.Scan(&name); err != nil {
			return nil
		}
		found = true
		return nil
	})
	require.NoError(t, err)
	return name, found
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		_, err := tx.ExecContext(ctx, insertVendor, "v1", "Acme Paving")
		return err
	})
	require.NoError(t, err)

	name, found := vendorName(t, uow, "v1")
	assert.True(t, found, "row should exist after commit")
	assert.Equal(t, "Acme Paving", name)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUoW(t)
	errScore := errors.New("scoring failed")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if _, err := tx.ExecContext(ctx, insertVendor, "v2", "Beta Builders"); err != nil {
			return err
		}
		return errScore
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, errScore)

	_, found := vendorName(t, uow, "v2")
	assert.False(t, found, "row should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_, _ = tx.ExecContext(ctx, insertVendor, "v3", "Gamma Electric")
			panic("boom")
		})
	})

	_, found := vendorName(t, uow, "v3")
	assert.False(t, found, "row should not exist after panic rollback")
}
