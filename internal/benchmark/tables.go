package benchmark

// Direction says which way a KPI improves.
type Direction string

const (
	HigherIsBetter Direction = "higher"
	LowerIsBetter  Direction = "lower"
)

type Importance string

const (
	ImportanceCritical Importance = "critical"
	ImportanceHigh     Importance = "high"
	ImportanceMedium   Importance = "medium"
	ImportanceLow      Importance = "low"
)

// KPI is one industry benchmark target.
type KPI struct {
	ID          string
	Name        string
	Category    string
	Benchmark   float64
	Unit        string
	Direction   Direction
	Description string
	Importance  Importance
}

// Category groups KPIs for the health rollup.
type Category struct {
	ID     string
	Name   string
	Weight float64
}

// Tables is the static reference data an Engine scores against. KPIs and
// Categories are ordered; that order drives category iteration and output.
type Tables struct {
	Categories        []Category
	KPIs              []KPI
	ImportanceWeights map[Importance]float64
}

// DefaultImportanceWeights maps importance to its weight in category scores.
var DefaultImportanceWeights = map[Importance]float64{
	ImportanceCritical: 2.0,
	ImportanceHigh:     1.5,
	ImportanceMedium:   1.0,
	ImportanceLow:      0.5,
}

// DefaultTables returns the top-quartile procurement benchmarks.
func DefaultTables() Tables {
	return Tables{
		Categories: []Category{
			{ID: "spend_analysis", Name: "Spend Analysis", Weight: 1.0},
			{ID: "supplier_management", Name: "Supplier Risk & Performance Management", Weight: 1.0},
			{ID: "source_to_contract", Name: "Source-to-Contract", Weight: 1.5},
			{ID: "procurement", Name: "Procurement", Weight: 2.0},
			{ID: "cash_liquidity", Name: "Cash & Liquidity Management", Weight: 0.8},
			{ID: "e_invoicing", Name: "E-Invoicing", Weight: 1.2},
			{ID: "expenses", Name: "Expenses", Weight: 0.8},
			{ID: "payments", Name: "Payments", Weight: 1.0},
		},
		KPIs: []KPI{
			{"increase_visibility_managed_spend", "Increase in Visibility of Managed Spend", "spend_analysis", 24.4, "percent", HigherIsBetter,
				"Percentage increase in spend visibility after implementation", ImportanceHigh},

			{"supplier_info_mgmt_cycle_time", "Supplier Information Management Cycle Time", "supplier_management", 6.6, "business_hours", LowerIsBetter,
				"Time to complete supplier onboarding/updates", ImportanceMedium},
			{"spend_with_primary_suppliers", "Spend with Primary Suppliers", "supplier_management", 17.5, "percent", HigherIsBetter,
				"Percentage of spend concentrated with strategic suppliers", ImportanceMedium},

			{"contract_mgmt_cycle_time", "Contract Management Cycle Time", "source_to_contract", 11.3, "business_days", LowerIsBetter,
				"Days from contract request to execution", ImportanceHigh},
			{"on_contract_spend", "On-Contract Spend", "source_to_contract", 81.1, "percent", HigherIsBetter,
				"Percentage of spend under contract coverage", ImportanceHigh},

			{"structured_spend", "Structured Spend", "procurement", 55.3, "percent", HigherIsBetter,
				"Spend processed through structured procurement channels", ImportanceHigh},
			{"pre_approved_spend", "Pre-Approved Spend", "procurement", 96.4, "percent", HigherIsBetter,
				"Spend that goes through proper approval workflows", ImportanceCritical},
			{"electronic_po_processing", "Electronic PO Processing Rate", "procurement", 98.8, "percent", HigherIsBetter,
				"Purchase orders processed electronically", ImportanceMedium},
			{"requisition_to_order_cycle_time", "Requisition-to-Order Cycle Time", "procurement", 4.0, "business_hours", LowerIsBetter,
				"Hours from requisition submission to PO creation", ImportanceHigh},

			{"touchless_cash_reconciliation", "Touchless Cash Flow Reconciliation", "cash_liquidity", 99.97, "percent", HigherIsBetter,
				"Automated cash reconciliation rate", ImportanceMedium},
			{"cash_concentration_index", "Cash Concentration Index", "cash_liquidity", 76.0, "percent", HigherIsBetter,
				"Effectiveness of cash pooling and concentration", ImportanceMedium},

			{"electronic_invoice_processing", "Electronic Invoice Processing Rate", "e_invoicing", 86.2, "percent", HigherIsBetter,
				"Invoices processed electronically", ImportanceHigh},
			{"invoice_approval_cycle_time", "Invoice Approval Cycle Time", "e_invoicing", 10.5, "business_hours", LowerIsBetter,
				"Hours to approve an invoice", ImportanceHigh},
			{"first_time_match_rate", "First-Time Match Rate", "e_invoicing", 97.1, "percent", HigherIsBetter,
				"Invoices that match PO on first attempt", ImportanceHigh},

			{"expense_report_approval_cycle_time", "Expense Report Approval Cycle Time", "expenses", 7.5, "business_hours", LowerIsBetter,
				"Hours to approve expense reports", ImportanceMedium},
			{"expense_lines_within_policy", "Expense Lines Within Policy", "expenses", 98.9, "percent", HigherIsBetter,
				"Expense line items compliant with policy", ImportanceHigh},

			{"invoices_paid_digitally", "Invoices Paid Digitally", "payments", 96.0, "percent", HigherIsBetter,
				"Payments made through digital channels", ImportanceMedium},
			{"suppliers_using_digital_payments", "Suppliers Using Digital Payments", "payments", 96.2, "percent", HigherIsBetter,
				"Suppliers accepting digital payments", ImportanceMedium},
			{"payment_batch_approval_cycle_time", "Payment Batch Approval Cycle Time", "payments", 4.2, "business_hours", LowerIsBetter,
				"Hours to approve payment batches", ImportanceMedium},
		},
		ImportanceWeights: DefaultImportanceWeights,
	}
}
