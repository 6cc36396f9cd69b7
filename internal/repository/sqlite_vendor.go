package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/alexanderramin/contractwatch/internal/domain"
)

// SQLiteVendorRepo implements VendorRepo using a SQLite database.
type SQLiteVendorRepo struct {
	db db.DBTX
}

// NewSQLiteVendorRepo creates a new SQLiteVendorRepo.
func NewSQLiteVendorRepo(conn db.DBTX) *SQLiteVendorRepo {
	return &SQLiteVendorRepo{db: conn}
}

const vendorColumns = `vendor_id, vendor_name, vendor_type, contact_name, contact_email, city, state,
	certification_status, minority_owned, woman_owned, small_business, local_business,
	status, performance_score, total_contracts, total_awarded, created_at, updated_at`

func (r *SQLiteVendorRepo) Create(ctx context.Context, v *domain.Vendor) error {
	if v.Status == "" {
		v.Status = "Active"
	}
	query := `INSERT INTO vendors (` + vendorColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	created := timestampOrNow(v.CreatedAt)
	updated := created
	if !v.UpdatedAt.IsZero() {
		updated = v.UpdatedAt.UTC().Format(time.RFC3339)
	}
	_, err := r.db.ExecContext(ctx, query,
		v.VendorID,
		v.VendorName,
		v.VendorType,
		v.ContactName,
		v.ContactEmail,
		v.City,
		v.State,
		v.CertificationStatus,
		boolToInt(v.MinorityOwned),
		boolToInt(v.WomanOwned),
		boolToInt(v.SmallBusiness),
		boolToInt(v.LocalBusiness),
		v.Status,
		v.PerformanceScore,
		v.TotalContracts,
		v.TotalAwarded,
		created,
		updated,
	)
	if err != nil {
		return fmt.Errorf("inserting vendor: %w", err)
	}
	return nil
}

func (r *SQLiteVendorRepo) GetByID(ctx context.Context, id string) (*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors WHERE vendor_id = ?`
	v, err := scanVendor(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("vendor %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning vendor: %w", err)
	}
	return v, nil
}

// List returns every vendor ordered by name.
func (r *SQLiteVendorRepo) List(ctx context.Context) ([]*domain.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors ORDER BY vendor_name, vendor_id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing vendors: %w", err)
	}
	defer rows.Close()

	var vendors []*domain.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning vendor row: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vendors: %w", err)
	}
	return vendors, nil
}

func (r *SQLiteVendorRepo) Update(ctx context.Context, v *domain.Vendor) error {
	now := time.Now().UTC().Truncate(time.Second)
	query := `UPDATE vendors SET vendor_name = ?, vendor_type = ?, contact_name = ?, contact_email = ?,
		city = ?, state = ?, certification_status = ?, minority_owned = ?, woman_owned = ?,
		small_business = ?, local_business = ?, status = ?, updated_at = ?
		WHERE vendor_id = ?`
	res, err := r.db.ExecContext(ctx, query,
		v.VendorName,
		v.VendorType,
		v.ContactName,
		v.ContactEmail,
		v.City,
		v.State,
		v.CertificationStatus,
		boolToInt(v.MinorityOwned),
		boolToInt(v.WomanOwned),
		boolToInt(v.SmallBusiness),
		boolToInt(v.LocalBusiness),
		v.Status,
		now.Format(time.RFC3339),
		v.VendorID,
	)
	if err != nil {
		return fmt.Errorf("updating vendor: %w", err)
	}
	if err := expectOneRow(res, "vendor", v.VendorID); err != nil {
		return err
	}
	v.UpdatedAt = now
	return nil
}

// UpdatePerformance stores the recomputed rollup for a vendor.
func (r *SQLiteVendorRepo) UpdatePerformance(ctx context.Context, vendorID string, score float64, totalContracts int, totalAwarded float64) error {
	query := `UPDATE vendors SET performance_score = ?, total_contracts = ?, total_awarded = ?, updated_at = ?
		WHERE vendor_id = ?`
	res, err := r.db.ExecContext(ctx, query, score, totalContracts, totalAwarded, nowUTC(), vendorID)
	if err != nil {
		return fmt.Errorf("updating vendor performance: %w", err)
	}
	return expectOneRow(res, "vendor", vendorID)
}

// Delete removes a vendor. It fails while contracts still reference the vendor.
func (r *SQLiteVendorRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vendors WHERE vendor_id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting vendor: %w", err)
	}
	return expectOneRow(res, "vendor", id)
}

func scanVendor(s rowScanner) (*domain.Vendor, error) {
	var v domain.Vendor
	var minority, woman, small, local int
	var createdAt, updatedAt string

	err := s.Scan(
		&v.VendorID, &v.VendorName, &v.VendorType, &v.ContactName, &v.ContactEmail, &v.City, &v.State,
		&v.CertificationStatus, &minority, &woman, &small, &local,
		&v.Status, &v.PerformanceScore, &v.TotalContracts, &v.TotalAwarded, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	v.MinorityOwned = intToBool(minority)
	v.WomanOwned = intToBool(woman)
	v.SmallBusiness = intToBool(small)
	v.LocalBusiness = intToBool(local)
	v.CreatedAt = parseTimeOrZero(createdAt)
	v.UpdatedAt = parseTimeOrZero(updatedAt)
	return &v, nil
}
