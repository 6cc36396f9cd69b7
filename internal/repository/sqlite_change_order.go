package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/alexanderramin/contractwatch/internal/domain"
)

// SQLiteChangeOrderRepo implements ChangeOrderRepo using a SQLite database.
type SQLiteChangeOrderRepo struct {
	db db.DBTX
}

// NewSQLiteChangeOrderRepo creates a new SQLiteChangeOrderRepo.
func NewSQLiteChangeOrderRepo(conn db.DBTX) *SQLiteChangeOrderRepo {
	return &SQLiteChangeOrderRepo{db: conn}
}

// Create inserts the change order, then bumps the owning contract's
// change_order_count and adds the amount to its current_amount. Run it inside
// a UnitOfWork so both writes land together.
func (r *SQLiteChangeOrderRepo) Create(ctx context.Context, co *domain.ChangeOrder) error {
	if err := r.insert(ctx, co); err != nil {
		return err
	}
	upd, err := r.db.ExecContext(ctx, `UPDATE contracts SET
			change_order_count = change_order_count + 1,
			current_amount = COALESCE(current_amount, original_amount, 0) + ?,
			updated_at = ?
		WHERE contract_id = ?`,
		co.Amount, nowUTC(), co.ContractID,
	)
	if err != nil {
		return fmt.Errorf("bumping contract change order count: %w", err)
	}
	return expectOneRow(upd, "contract", co.ContractID)
}

// InsertHistorical records a change order whose effect is already reflected in
// the contract's amounts and count, as with imported history.
func (r *SQLiteChangeOrderRepo) InsertHistorical(ctx context.Context, co *domain.ChangeOrder) error {
	return r.insert(ctx, co)
}

func (r *SQLiteChangeOrderRepo) insert(ctx context.Context, co *domain.ChangeOrder) error {
	query := `INSERT INTO change_orders (contract_id, number, description, reason, amount,
		days_added, status, requested_date, approved_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		co.ContractID,
		co.Number,
		co.Description,
		co.Reason,
		co.Amount,
		co.DaysAdded,
		co.Status,
		co.RequestedDate,
		co.ApprovedDate,
		timestampOrNow(co.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting change order: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading change order id: %w", err)
	}
	co.ChangeOrderID = id
	return nil
}

func (r *SQLiteChangeOrderRepo) ListByContract(ctx context.Context, contractID string) ([]domain.ChangeOrder, error) {
	query := `SELECT change_order_id, contract_id, number, description, reason, amount,
		days_added, status, requested_date, approved_date, created_at
		FROM change_orders WHERE contract_id = ? ORDER BY change_order_id`
	rows, err := r.db.QueryContext(ctx, query, contractID)
	if err != nil {
		return nil, fmt.Errorf("listing change orders: %w", err)
	}
	defer rows.Close()

	var out []domain.ChangeOrder
	for rows.Next() {
		var co domain.ChangeOrder
		var createdAt string
		if err := rows.Scan(
			&co.ChangeOrderID, &co.ContractID, &co.Number, &co.Description, &co.Reason, &co.Amount,
			&co.DaysAdded, &co.Status, &co.RequestedDate, &co.ApprovedDate, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning change order row: %w", err)
		}
		co.CreatedAt = parseTimeOrZero(createdAt)
		out = append(out, co)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating change orders: %w", err)
	}
	return out, nil
}

// Totals returns the number of change orders and their summed amount.
func (r *SQLiteChangeOrderRepo) Totals(ctx context.Context) (int, float64, error) {
	var count int
	var amount float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount), 0) FROM change_orders`,
	).Scan(&count, &amount)
	if err != nil {
		return 0, 0, fmt.Errorf("totalling change orders: %w", err)
	}
	return count, amount, nil
}
