package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/alexanderramin/contractwatch/internal/db"
)

// FailingWriteUoW runs a real transaction but makes the FailOn-th write to
// Table return Err, so tests can check that a multi-row operation rolls back
// as a whole. Writes are INSERT, UPDATE and DELETE statements counted from 1.
// An empty Table counts writes to every table.
type FailingWriteUoW struct {
	DB     *sql.DB
	Table  string
	FailOn int
	Err    error
}

func (u *FailingWriteUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(ctx, &failingWrites{DBTX: tx, uow: u}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type failingWrites struct {
	db.DBTX
	uow    *FailingWriteUoW
	writes int
}

func (f *failingWrites) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if table, ok := writeTarget(query); ok && (f.uow.Table == "" || table == f.uow.Table) {
		f.writes++
		if f.writes == f.uow.FailOn {
			return nil, f.uow.Err
		}
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}

// writeTarget returns the table a write statement modifies.
func writeTarget(query string) (string, bool) {
	words := strings.Fields(strings.ToLower(query))
	if len(words) < 2 {
		return "", false
	}
	var table string
	switch words[0] {
	case "update":
		table = words[1]
	case "insert", "delete":
		for i, w := range words[:len(words)-1] {
			if w == "into" || w == "from" {
				table = words[i+1]
				break
			}
		}
	}
	table, _, _ = strings.Cut(table, "(")
	return table, table != ""
}
