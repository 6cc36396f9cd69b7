package domain

import "time"

// Contract is a procurement contract as held by the record store. Money and
// percentage inputs are optional; accessors resolve the documented defaults.
// Date fields keep their stored text so that malformed values surface as
// neutral scores rather than load failures.
type Contract struct {
	ContractID     string `json:"contract_id"`
	ContractNumber string `json:"contract_number"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	ContractType   string `json:"contract_type"`
	Department     string `json:"department"`
	FiscalYear     string `json:"fiscal_year"`
	VendorID       string `json:"vendor_id"`
	VendorName     string `json:"vendor_name"`

	// Financials
	OriginalAmount *float64 `json:"original_amount,omitempty"`
	CurrentAmount  *float64 `json:"current_amount,omitempty"`
	TotalPaid      *float64 `json:"total_paid,omitempty"`

	// Dates (YYYY-MM-DD, possibly with a trailing time part)
	SolicitationDate  string `json:"solicitation_date"`
	AwardDate         string `json:"award_date"`
	StartDate         string `json:"start_date"`
	OriginalEndDate   string `json:"original_end_date"`
	CurrentEndDate    string `json:"current_end_date"`
	ActualEndDate     string `json:"actual_end_date"`
	BoardApprovalDate string `json:"board_approval_date"`

	Status          ContractStatus `json:"status"`
	Phase           string         `json:"phase"`
	PercentComplete *float64       `json:"percent_complete,omitempty"`

	// Procurement
	ProcurementMethod string `json:"procurement_method"`
	BidCount          int    `json:"bid_count"`
	Justification     string `json:"justification"`

	// Flags
	ChangeOrderCount  int  `json:"change_order_count"`
	IsEmergency       bool `json:"is_emergency"`
	IsSoleSource      bool `json:"is_sole_source"`
	RequiresInsurance bool `json:"requires_insurance"`
	InsuranceVerified bool `json:"insurance_verified"`
	RequiresBond      bool `json:"requires_bond"`
	BondVerified      bool `json:"bond_verified"`

	// Derived; recomputed on every scoring pass.
	CostVarianceScore     *float64  `json:"cost_variance_score,omitempty"`
	ScheduleVarianceScore *float64  `json:"schedule_variance_score,omitempty"`
	PerformanceScore      *float64  `json:"performance_score,omitempty"`
	ComplianceScore       *float64  `json:"compliance_score,omitempty"`
	OverallHealthScore    *float64  `json:"overall_health_score,omitempty"`
	RiskLevel             RiskLevel `json:"risk_level"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (c *Contract) Original() float64 {
	return Float64FromPtrWithDefault(0, c.OriginalAmount)
}

func (c *Contract) Current() float64 {
	return Float64FromPtrWithDefault(0, c.CurrentAmount)
}

func (c *Contract) Paid() float64 {
	return Float64FromPtrWithDefault(0, c.TotalPaid)
}

func (c *Contract) Progress() float64 {
	return Float64FromPtrWithDefault(0, c.PercentComplete)
}

// RemainingBalance is the unpaid portion of the current amount.
func (c *Contract) RemainingBalance() float64 {
	return c.Current() - c.Paid()
}

// EffectiveEndDate returns the current end date, falling back to the original.
func (c *Contract) EffectiveEndDate() string {
	return CoalesceStr(c.CurrentEndDate, c.OriginalEndDate)
}

// HealthOr returns the stored overall health score or fallback when unset.
func (c *Contract) HealthOr(fallback float64) float64 {
	return Float64FromPtrWithDefault(fallback, c.OverallHealthScore)
}

// DisplayID returns the contract number when present, otherwise the ID.
func (c *Contract) DisplayID() string {
	return CoalesceStr(c.ContractNumber, c.ContractID)
}

// IsActive reports whether the contract is in the Active status.
func (c *Contract) IsActive() bool {
	return c.Status == ContractActive
}
