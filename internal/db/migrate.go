package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := backfillChangeOrderCounts(db); err != nil {
		return fmt.Errorf("backfilling change order counts: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS vendors (
		vendor_id         TEXT PRIMARY KEY,
		vendor_name       TEXT NOT NULL,
		vendor_type       TEXT NOT NULL DEFAULT '',
		contact_name      TEXT NOT NULL DEFAULT '',
		contact_email     TEXT NOT NULL DEFAULT '',
		city              TEXT NOT NULL DEFAULT '',
		state             TEXT NOT NULL DEFAULT '',
		minority_owned    INTEGER NOT NULL DEFAULT 0,
		woman_owned       INTEGER NOT NULL DEFAULT 0,
		small_business    INTEGER NOT NULL DEFAULT 0,
		local_business    INTEGER NOT NULL DEFAULT 0,
		status            TEXT NOT NULL DEFAULT 'Active',
		performance_score REAL NOT NULL DEFAULT 50.0,
		total_contracts   INTEGER NOT NULL DEFAULT 0,
		total_awarded     REAL NOT NULL DEFAULT 0,
		created_at        TEXT NOT NULL,
		updated_at        TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS contracts (
		contract_id             TEXT PRIMARY KEY,
		contract_number         TEXT NOT NULL DEFAULT '',
		title                   TEXT NOT NULL,
		description             TEXT NOT NULL DEFAULT '',
		contract_type           TEXT NOT NULL DEFAULT '',
		department              TEXT NOT NULL DEFAULT '',
		fiscal_year             TEXT NOT NULL DEFAULT '',
		vendor_id               TEXT REFERENCES vendors(vendor_id),
		vendor_name             TEXT NOT NULL DEFAULT '',
		original_amount         REAL,
		current_amount          REAL,
		total_paid              REAL,
		solicitation_date       TEXT NOT NULL DEFAULT '',
		award_date              TEXT NOT NULL DEFAULT '',
		start_date              TEXT NOT NULL DEFAULT '',
		original_end_date       TEXT NOT NULL DEFAULT '',
		current_end_date        TEXT NOT NULL DEFAULT '',
		actual_end_date         TEXT NOT NULL DEFAULT '',
		board_approval_date     TEXT NOT NULL DEFAULT '',
		status                  TEXT NOT NULL DEFAULT 'Draft',
		phase                   TEXT NOT NULL DEFAULT '',
		percent_complete        REAL,
		procurement_method      TEXT NOT NULL DEFAULT '',
		bid_count               INTEGER NOT NULL DEFAULT 0,
		justification           TEXT NOT NULL DEFAULT '',
		change_order_count      INTEGER NOT NULL DEFAULT 0,
		is_emergency            INTEGER NOT NULL DEFAULT 0,
		is_sole_source          INTEGER NOT NULL DEFAULT 0,
		requires_insurance      INTEGER NOT NULL DEFAULT 0,
		insurance_verified      INTEGER NOT NULL DEFAULT 0,
		requires_bond           INTEGER NOT NULL DEFAULT 0,
		bond_verified           INTEGER NOT NULL DEFAULT 0,
		cost_variance_score     REAL,
		schedule_variance_score REAL,
		performance_score       REAL,
		compliance_score        REAL,
		overall_health_score    REAL,
		risk_level              TEXT NOT NULL DEFAULT '',
		created_at              TEXT NOT NULL,
		updated_at              TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_contracts_vendor ON contracts(vendor_id)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_status ON contracts(status)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_risk ON contracts(risk_level)`,

	`CREATE TABLE IF NOT EXISTS milestones (
		milestone_id     INTEGER PRIMARY KEY AUTOINCREMENT,
		contract_id      TEXT NOT NULL REFERENCES contracts(contract_id) ON DELETE CASCADE,
		milestone_number INTEGER NOT NULL DEFAULT 0,
		title            TEXT NOT NULL,
		status           TEXT NOT NULL DEFAULT 'Pending'
		                 CHECK(status IN ('Pending','In Progress','Completed','Overdue','Delayed')),
		due_date         TEXT NOT NULL DEFAULT '',
		completed_date   TEXT NOT NULL DEFAULT '',
		percent_complete REAL NOT NULL DEFAULT 0,
		payment_amount   REAL NOT NULL DEFAULT 0,
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_milestones_contract ON milestones(contract_id)`,

	`CREATE TABLE IF NOT EXISTS payments (
		payment_id     INTEGER PRIMARY KEY AUTOINCREMENT,
		contract_id    TEXT NOT NULL REFERENCES contracts(contract_id) ON DELETE CASCADE,
		vendor_id      TEXT NOT NULL DEFAULT '',
		invoice_number TEXT NOT NULL DEFAULT '',
		invoice_date   TEXT NOT NULL DEFAULT '',
		payment_date   TEXT NOT NULL DEFAULT '',
		amount         REAL NOT NULL DEFAULT 0 CHECK(amount >= 0),
		payment_type   TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_payments_contract ON payments(contract_id)`,

	`CREATE TABLE IF NOT EXISTS change_orders (
		change_order_id INTEGER PRIMARY KEY AUTOINCREMENT,
		contract_id     TEXT NOT NULL REFERENCES contracts(contract_id) ON DELETE CASCADE,
		number          TEXT NOT NULL DEFAULT '',
		description     TEXT NOT NULL DEFAULT '',
		reason          TEXT NOT NULL DEFAULT '',
		amount          REAL NOT NULL DEFAULT 0,
		days_added      INTEGER NOT NULL DEFAULT 0,
		status          TEXT NOT NULL DEFAULT '',
		requested_date  TEXT NOT NULL DEFAULT '',
		approved_date   TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_change_orders_contract ON change_orders(contract_id)`,

	`CREATE TABLE IF NOT EXISTS issues (
		issue_id    INTEGER PRIMARY KEY AUTOINCREMENT,
		contract_id TEXT NOT NULL REFERENCES contracts(contract_id) ON DELETE CASCADE,
		vendor_id   TEXT NOT NULL DEFAULT '',
		issue_type  TEXT NOT NULL,
		severity    TEXT NOT NULL DEFAULT 'Medium',
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'Open'
		            CHECK(status IN ('Open','Resolved')),
		reported_by TEXT NOT NULL DEFAULT '',
		reported_at TEXT NOT NULL,
		resolved_at TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_issues_contract ON issues(contract_id)`,
	`CREATE INDEX IF NOT EXISTS idx_issues_open ON issues(contract_id, issue_type) WHERE status = 'Open'`,

	// Vendor certification tracking
	`ALTER TABLE vendors ADD COLUMN certification_status TEXT NOT NULL DEFAULT ''`,
}

// backfillChangeOrderCounts raises contracts.change_order_count to the number
// of change order rows recorded for the contract. Counts imported ahead of
// their change order rows are left alone.
func backfillChangeOrderCounts(db *sql.DB) error {
	_, err := db.Exec(`UPDATE contracts
		SET change_order_count = (
			SELECT COUNT(*) FROM change_orders co WHERE co.contract_id = contracts.contract_id
		)
		WHERE change_order_count < (
			SELECT COUNT(*) FROM change_orders co WHERE co.contract_id = contracts.contract_id
		)`)
	return err
}
