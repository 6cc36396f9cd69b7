package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/alexanderramin/contractwatch/internal/domain"
)

// SQLitePaymentRepo implements PaymentRepo using a SQLite database.
type SQLitePaymentRepo struct {
	db db.DBTX
}

// NewSQLitePaymentRepo creates a new SQLitePaymentRepo.
func NewSQLitePaymentRepo(conn db.DBTX) *SQLitePaymentRepo {
	return &SQLitePaymentRepo{db: conn}
}

const paymentColumns = `payment_id, contract_id, vendor_id, invoice_number, invoice_date,
	payment_date, amount, payment_type, status, created_at`

func (r *SQLitePaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	query := `INSERT INTO payments (contract_id, vendor_id, invoice_number, invoice_date,
		payment_date, amount, payment_type, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.ContractID,
		p.VendorID,
		p.InvoiceNumber,
		p.InvoiceDate,
		p.PaymentDate,
		p.Amount,
		p.PaymentType,
		p.Status,
		timestampOrNow(p.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading payment id: %w", err)
	}
	p.PaymentID = id
	return nil
}

func (r *SQLitePaymentRepo) ListByContract(ctx context.Context, contractID string) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE contract_id = ?
		ORDER BY payment_date DESC, payment_id`
	return r.query(ctx, query, contractID)
}

func (r *SQLitePaymentRepo) ListAll(ctx context.Context) ([]domain.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments ORDER BY payment_id`
	return r.query(ctx, query)
}

func (r *SQLitePaymentRepo) query(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var out []domain.Payment
	for rows.Next() {
		var p domain.Payment
		var createdAt string
		if err := rows.Scan(
			&p.PaymentID, &p.ContractID, &p.VendorID, &p.InvoiceNumber, &p.InvoiceDate,
			&p.PaymentDate, &p.Amount, &p.PaymentType, &p.Status, &createdAt,
		); err != nil {
			return nil, fmt.Errorf("scanning payment row: %w", err)
		}
		p.CreatedAt = parseTimeOrZero(createdAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}
	return out, nil
}
