package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/alexanderramin/contractwatch/internal/domain"
)

// SQLiteIssueRepo implements IssueRepo using a SQLite database.
type SQLiteIssueRepo struct {
	db db.DBTX
}

// NewSQLiteIssueRepo creates a new SQLiteIssueRepo.
func NewSQLiteIssueRepo(conn db.DBTX) *SQLiteIssueRepo {
	return &SQLiteIssueRepo{db: conn}
}

func (r *SQLiteIssueRepo) Create(ctx context.Context, i *domain.Issue) error {
	if i.Status == "" {
		i.Status = domain.IssueOpen
	}
	if i.ReportedAt.IsZero() {
		i.ReportedAt = time.Now().UTC().Truncate(time.Second)
	}
	query := `INSERT INTO issues (contract_id, vendor_id, issue_type, severity, title, description,
		status, reported_by, reported_at, resolved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		i.ContractID,
		i.VendorID,
		i.IssueType,
		string(i.Severity),
		i.Title,
		i.Description,
		string(i.Status),
		i.ReportedBy,
		i.ReportedAt.UTC().Format(time.RFC3339),
		nullableTimeToString(i.ResolvedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting issue: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading issue id: %w", err)
	}
	i.IssueID = id
	return nil
}

// List returns issues matching filter, newest first.
func (r *SQLiteIssueRepo) List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error) {
	var where []string
	var args []any
	if filter.ContractID != "" {
		where = append(where, "contract_id = ?")
		args = append(args, filter.ContractID)
	}
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}

	query := `SELECT issue_id, contract_id, vendor_id, issue_type, severity, title, description,
		status, reported_by, reported_at, resolved_at FROM issues`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY reported_at DESC, issue_id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	var out []domain.Issue
	for rows.Next() {
		var i domain.Issue
		var severity, status, reportedAt string
		var resolvedAt sql.NullString
		if err := rows.Scan(
			&i.IssueID, &i.ContractID, &i.VendorID, &i.IssueType, &severity, &i.Title, &i.Description,
			&status, &i.ReportedBy, &reportedAt, &resolvedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning issue row: %w", err)
		}
		i.Severity = domain.Severity(severity)
		i.Status = domain.IssueStatus(status)
		i.ReportedAt = parseTimeOrZero(reportedAt)
		i.ResolvedAt = parseNullableTime(resolvedAt, time.RFC3339)
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating issues: %w", err)
	}
	return out, nil
}

// ExistsOpen reports whether an open issue of issueType is already recorded for the contract.
func (r *SQLiteIssueRepo) ExistsOpen(ctx context.Context, contractID, issueType string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM issues WHERE contract_id = ? AND issue_type = ? AND status = 'Open'`,
		contractID, issueType,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking open issue: %w", err)
	}
	return n > 0, nil
}
