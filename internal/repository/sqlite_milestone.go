package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/alexanderramin/contractwatch/internal/domain"
)

// SQLiteMilestoneRepo implements MilestoneRepo using a SQLite database.
type SQLiteMilestoneRepo struct {
	db db.DBTX
}

// NewSQLiteMilestoneRepo creates a new SQLiteMilestoneRepo.
func NewSQLiteMilestoneRepo(conn db.DBTX) *SQLiteMilestoneRepo {
	return &SQLiteMilestoneRepo{db: conn}
}

const milestoneColumns = `milestone_id, contract_id, milestone_number, title, status, due_date,
	completed_date, percent_complete, payment_amount, created_at, updated_at`

// Create inserts the milestone and assigns its generated MilestoneID.
func (r *SQLiteMilestoneRepo) Create(ctx context.Context, m *domain.Milestone) error {
	if m.Status == "" {
		m.Status = domain.MilestonePending
	}
	created := timestampOrNow(m.CreatedAt)
	query := `INSERT INTO milestones (contract_id, milestone_number, title, status, due_date,
		completed_date, percent_complete, payment_amount, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		m.ContractID,
		m.MilestoneNumber,
		m.Title,
		string(m.Status),
		m.DueDate,
		m.CompletedDate,
		m.PercentComplete,
		m.PaymentAmount,
		created,
		created,
	)
	if err != nil {
		return fmt.Errorf("inserting milestone: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading milestone id: %w", err)
	}
	m.MilestoneID = id
	return nil
}

func (r *SQLiteMilestoneRepo) GetByID(ctx context.Context, id int64) (*domain.Milestone, error) {
	list, err := r.query(ctx, `SELECT `+milestoneColumns+` FROM milestones WHERE milestone_id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, fmt.Errorf("milestone %d: %w", id, ErrNotFound)
	}
	return &list[0], nil
}

func (r *SQLiteMilestoneRepo) ListByContract(ctx context.Context, contractID string) ([]domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones WHERE contract_id = ?
		ORDER BY milestone_number, milestone_id`
	return r.query(ctx, query, contractID)
}

// ListAll returns every milestone grouped by contract, each group in milestone order.
func (r *SQLiteMilestoneRepo) ListAll(ctx context.Context) (map[string][]domain.Milestone, error) {
	query := `SELECT ` + milestoneColumns + ` FROM milestones
		ORDER BY contract_id, milestone_number, milestone_id`
	all, err := r.query(ctx, query)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]domain.Milestone)
	for _, m := range all {
		grouped[m.ContractID] = append(grouped[m.ContractID], m)
	}
	return grouped, nil
}

func (r *SQLiteMilestoneRepo) Update(ctx context.Context, m *domain.Milestone) error {
	now := time.Now().UTC().Truncate(time.Second)
	query := `UPDATE milestones SET milestone_number = ?, title = ?, status = ?, due_date = ?,
		completed_date = ?, percent_complete = ?, payment_amount = ?, updated_at = ?
		WHERE milestone_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		m.MilestoneNumber,
		m.Title,
		string(m.Status),
		m.DueDate,
		m.CompletedDate,
		m.PercentComplete,
		m.PaymentAmount,
		now.Format(time.RFC3339),
		m.MilestoneID,
	)
	if err != nil {
		return fmt.Errorf("updating milestone: %w", err)
	}
	if err := expectOneRow(res, "milestone", fmt.Sprint(m.MilestoneID)); err != nil {
		return err
	}
	m.UpdatedAt = now
	return nil
}

func (r *SQLiteMilestoneRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM milestones WHERE milestone_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting milestone: %w", err)
	}
	return expectOneRow(res, "milestone", fmt.Sprint(id))
}

func (r *SQLiteMilestoneRepo) query(ctx context.Context, query string, args ...any) ([]domain.Milestone, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing milestones: %w", err)
	}
	defer rows.Close()

	var out []domain.Milestone
	for rows.Next() {
		var m domain.Milestone
		var status, createdAt, updatedAt string
		if err := rows.Scan(
			&m.MilestoneID, &m.ContractID, &m.MilestoneNumber, &m.Title, &status, &m.DueDate,
			&m.CompletedDate, &m.PercentComplete, &m.PaymentAmount, &createdAt, &updatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning milestone row: %w", err)
		}
		m.Status = domain.MilestoneStatus(status)
		m.CreatedAt = parseTimeOrZero(createdAt)
		m.UpdatedAt = parseTimeOrZero(updatedAt)
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating milestones: %w", err)
	}
	return out, nil
}
