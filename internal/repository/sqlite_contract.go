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

// SQLiteContractRepo implements ContractRepo using a SQLite database.
type SQLiteContractRepo struct {
	db db.DBTX
}

// NewSQLiteContractRepo creates a new SQLiteContractRepo.
func NewSQLiteContractRepo(conn db.DBTX) *SQLiteContractRepo {
	return &SQLiteContractRepo{db: conn}
}

const contractColumns = `contract_id, contract_number, title, description, contract_type, department,
	fiscal_year, vendor_id, vendor_name, original_amount, current_amount, total_paid,
	solicitation_date, award_date, start_date, original_end_date, current_end_date,
	actual_end_date, board_approval_date, status, phase, percent_complete,
	procurement_method, bid_count, justification, change_order_count,
	is_emergency, is_sole_source, requires_insurance, insurance_verified,
	requires_bond, bond_verified, cost_variance_score, schedule_variance_score,
	performance_score, compliance_score, overall_health_score, risk_level,
	created_at, updated_at`

func (r *SQLiteContractRepo) Create(ctx context.Context, c *domain.Contract) error {
	query := `INSERT INTO contracts (` + contractColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?,
			?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ContractID,
		c.ContractNumber,
		c.Title,
		c.Description,
		c.ContractType,
		c.Department,
		c.FiscalYear,
		nullableString(c.VendorID),
		c.VendorName,
		nullableFloat(c.OriginalAmount),
		nullableFloat(c.CurrentAmount),
		nullableFloat(c.TotalPaid),
		c.SolicitationDate,
		c.AwardDate,
		c.StartDate,
		c.OriginalEndDate,
		c.CurrentEndDate,
		c.ActualEndDate,
		c.BoardApprovalDate,
		string(c.Status),
		c.Phase,
		nullableFloat(c.PercentComplete),
		c.ProcurementMethod,
		c.BidCount,
		c.Justification,
		c.ChangeOrderCount,
		boolToInt(c.IsEmergency),
		boolToInt(c.IsSoleSource),
		boolToInt(c.RequiresInsurance),
		boolToInt(c.InsuranceVerified),
		boolToInt(c.RequiresBond),
		boolToInt(c.BondVerified),
		nullableFloat(c.CostVarianceScore),
		nullableFloat(c.ScheduleVarianceScore),
		nullableFloat(c.PerformanceScore),
		nullableFloat(c.ComplianceScore),
		nullableFloat(c.OverallHealthScore),
		string(c.RiskLevel),
		timestampOrNow(c.CreatedAt),
		nullableTimeToString(c.UpdatedAt, time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting contract: %w", err)
	}
	return nil
}

func (r *SQLiteContractRepo) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE contract_id = ?`
	c, err := scanContract(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("contract %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning contract: %w", err)
	}
	return c, nil
}

// List returns contracts matching filter, most recently updated first.
func (r *SQLiteContractRepo) List(ctx context.Context, filter ContractFilter) ([]*domain.Contract, error) {
	var where []string
	var args []any
	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, string(filter.Status))
	}
	if filter.RiskLevel != "" {
		where = append(where, "risk_level = ?")
		args = append(args, string(filter.RiskLevel))
	}
	if filter.VendorID != "" {
		where = append(where, "vendor_id = ?")
		args = append(args, filter.VendorID)
	}
	if filter.Department != "" {
		where = append(where, "department = ?")
		args = append(args, filter.Department)
	}

	query := `SELECT ` + contractColumns + ` FROM contracts`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY COALESCE(updated_at, created_at) DESC, contract_id"
	return r.queryContracts(ctx, query, args...)
}

func (r *SQLiteContractRepo) ListByVendor(ctx context.Context, vendorID string) ([]*domain.Contract, error) {
	query := `SELECT ` + contractColumns + ` FROM contracts WHERE vendor_id = ? ORDER BY contract_id`
	return r.queryContracts(ctx, query, vendorID)
}

// Update rewrites every raw field. Derived scores are left to UpdateScores.
func (r *SQLiteContractRepo) Update(ctx context.Context, c *domain.Contract) error {
	now := time.Now().UTC().Truncate(time.Second)
	query := `UPDATE contracts SET contract_number = ?, title = ?, description = ?, contract_type = ?,
		department = ?, fiscal_year = ?, vendor_id = ?, vendor_name = ?, original_amount = ?,
		current_amount = ?, total_paid = ?, solicitation_date = ?, award_date = ?, start_date = ?,
		original_end_date = ?, current_end_date = ?, actual_end_date = ?, board_approval_date = ?,
		status = ?, phase = ?, percent_complete = ?, procurement_method = ?, bid_count = ?,
		justification = ?, change_order_count = ?, is_emergency = ?, is_sole_source = ?,
		requires_insurance = ?, insurance_verified = ?, requires_bond = ?, bond_verified = ?,
		updated_at = ?
		WHERE contract_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		c.ContractNumber,
		c.Title,
		c.Description,
		c.ContractType,
		c.Department,
		c.FiscalYear,
		nullableString(c.VendorID),
		c.VendorName,
		nullableFloat(c.OriginalAmount),
		nullableFloat(c.CurrentAmount),
		nullableFloat(c.TotalPaid),
		c.SolicitationDate,
		c.AwardDate,
		c.StartDate,
		c.OriginalEndDate,
		c.CurrentEndDate,
		c.ActualEndDate,
		c.BoardApprovalDate,
		string(c.Status),
		c.Phase,
		nullableFloat(c.PercentComplete),
		c.ProcurementMethod,
		c.BidCount,
		c.Justification,
		c.ChangeOrderCount,
		boolToInt(c.IsEmergency),
		boolToInt(c.IsSoleSource),
		boolToInt(c.RequiresInsurance),
		boolToInt(c.InsuranceVerified),
		boolToInt(c.RequiresBond),
		boolToInt(c.BondVerified),
		now.Format(time.RFC3339),
		c.ContractID,
	)
	if err != nil {
		return fmt.Errorf("updating contract: %w", err)
	}
	if err := expectOneRow(res, "contract", c.ContractID); err != nil {
		return err
	}
	c.UpdatedAt = &now
	return nil
}

// UpdateScores writes the derived score fields. updated_at is not touched so
// that rescoring never masks contract inactivity.
func (r *SQLiteContractRepo) UpdateScores(ctx context.Context, c *domain.Contract) error {
	query := `UPDATE contracts SET cost_variance_score = ?, schedule_variance_score = ?,
		performance_score = ?, compliance_score = ?, overall_health_score = ?, risk_level = ?
		WHERE contract_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		nullableFloat(c.CostVarianceScore),
		nullableFloat(c.ScheduleVarianceScore),
		nullableFloat(c.PerformanceScore),
		nullableFloat(c.ComplianceScore),
		nullableFloat(c.OverallHealthScore),
		string(c.RiskLevel),
		c.ContractID,
	)
	if err != nil {
		return fmt.Errorf("updating contract scores: %w", err)
	}
	return expectOneRow(res, "contract", c.ContractID)
}

// Delete removes the contract; milestones, payments, change orders and issues cascade.
func (r *SQLiteContractRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM contracts WHERE contract_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting contract: %w", err)
	}
	return expectOneRow(res, "contract", id)
}

func (r *SQLiteContractRepo) queryContracts(ctx context.Context, query string, args ...any) ([]*domain.Contract, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing contracts: %w", err)
	}
	defer rows.Close()

	var contracts []*domain.Contract
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning contract row: %w", err)
		}
		contracts = append(contracts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating contracts: %w", err)
	}
	return contracts, nil
}

func scanContract(s rowScanner) (*domain.Contract, error) {
	var c domain.Contract
	var vendorID, updatedAt sql.NullString
	var original, current, paid, progress sql.NullFloat64
	var costScore, scheduleScore, perfScore, complianceScore, healthScore sql.NullFloat64
	var status, risk, createdAt string
	var emergency, soleSource, reqInsurance, insVerified, reqBond, bondVerified int

	err := s.Scan(
		&c.ContractID, &c.ContractNumber, &c.Title, &c.Description, &c.ContractType, &c.Department,
		&c.FiscalYear, &vendorID, &c.VendorName, &original, &current, &paid,
		&c.SolicitationDate, &c.AwardDate, &c.StartDate, &c.OriginalEndDate, &c.CurrentEndDate,
		&c.ActualEndDate, &c.BoardApprovalDate, &status, &c.Phase, &progress,
		&c.ProcurementMethod, &c.BidCount, &c.Justification, &c.ChangeOrderCount,
		&emergency, &soleSource, &reqInsurance, &insVerified,
		&reqBond, &bondVerified, &costScore, &scheduleScore,
		&perfScore, &complianceScore, &healthScore, &risk,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.VendorID = vendorID.String
	c.OriginalAmount = floatPtr(original)
	c.CurrentAmount = floatPtr(current)
	c.TotalPaid = floatPtr(paid)
	c.PercentComplete = floatPtr(progress)
	c.Status = domain.ContractStatus(status)
	c.IsEmergency = intToBool(emergency)
	c.IsSoleSource = intToBool(soleSource)
	c.RequiresInsurance = intToBool(reqInsurance)
	c.InsuranceVerified = intToBool(insVerified)
	c.RequiresBond = intToBool(reqBond)
	c.BondVerified = intToBool(bondVerified)
	c.CostVarianceScore = floatPtr(costScore)
	c.ScheduleVarianceScore = floatPtr(scheduleScore)
	c.PerformanceScore = floatPtr(perfScore)
	c.ComplianceScore = floatPtr(complianceScore)
	c.OverallHealthScore = floatPtr(healthScore)
	c.RiskLevel = domain.RiskLevel(risk)
	c.CreatedAt = parseTimeOrZero(createdAt)
	c.UpdatedAt = parseNullableTime(updatedAt, time.RFC3339)
	return &c, nil
}

// expectOneRow maps a zero-row write to ErrNotFound.
func expectOneRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking %s rows affected: %w", kind, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
