package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ImportSchema is the top-level JSON structure for a record import.
type ImportSchema struct {
	Vendors      []VendorImport      `json:"vendors" validate:"dive"`
	Contracts    []ContractImport    `json:"contracts" validate:"dive"`
	Milestones   []MilestoneImport   `json:"milestones,omitempty" validate:"dive"`
	Payments     []PaymentImport     `json:"payments,omitempty" validate:"dive"`
	ChangeOrders []ChangeOrderImport `json:"change_orders,omitempty" validate:"dive"`
}

type VendorImport struct {
	VendorID            string   `json:"vendor_id" validate:"required,max=64"`
	VendorName          string   `json:"vendor_name" validate:"required"`
	VendorType          string   `json:"vendor_type,omitempty"`
	ContactName         string   `json:"contact_name,omitempty"`
	ContactEmail        string   `json:"contact_email,omitempty" validate:"omitempty,email"`
	City                string   `json:"city,omitempty"`
	State               string   `json:"state,omitempty"`
	CertificationStatus string   `json:"certification_status,omitempty"`
	MinorityOwned       bool     `json:"minority_owned,omitempty"`
	WomanOwned          bool     `json:"woman_owned,omitempty"`
	SmallBusiness       bool     `json:"small_business,omitempty"`
	LocalBusiness       bool     `json:"local_business,omitempty"`
	Status              string   `json:"status,omitempty"`
	PerformanceScore    *float64 `json:"performance_score,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ContractImport carries raw contract fields. Derived scores are never
// imported; they are computed by the next scoring pass.
type ContractImport struct {
	ContractID        string   `json:"contract_id" validate:"omitempty,max=64"`
	ContractNumber    string   `json:"contract_number,omitempty"`
	Title             string   `json:"title" validate:"required"`
	Description       string   `json:"description,omitempty"`
	ContractType      string   `json:"contract_type,omitempty"`
	Department        string   `json:"department,omitempty"`
	FiscalYear        string   `json:"fiscal_year,omitempty"`
	VendorID          string   `json:"vendor_id,omitempty"`
	VendorName        string   `json:"vendor_name,omitempty"`
	OriginalAmount    *float64 `json:"original_amount,omitempty" validate:"omitempty,gte=0"`
	CurrentAmount     *float64 `json:"current_amount,omitempty" validate:"omitempty,gte=0"`
	TotalPaid         *float64 `json:"total_paid,omitempty" validate:"omitempty,gte=0"`
	SolicitationDate  string   `json:"solicitation_date,omitempty" validate:"omitempty,day"`
	AwardDate         string   `json:"award_date,omitempty" validate:"omitempty,day"`
	StartDate         string   `json:"start_date,omitempty" validate:"omitempty,day"`
	OriginalEndDate   string   `json:"original_end_date,omitempty" validate:"omitempty,day"`
	CurrentEndDate    string   `json:"current_end_date,omitempty" validate:"omitempty,day"`
	ActualEndDate     string   `json:"actual_end_date,omitempty" validate:"omitempty,day"`
	BoardApprovalDate string   `json:"board_approval_date,omitempty" validate:"omitempty,day"`
	Status            string   `json:"status,omitempty"`
	Phase             string   `json:"phase,omitempty"`
	PercentComplete   *float64 `json:"percent_complete,omitempty" validate:"omitempty,gte=0,lte=100"`
	ProcurementMethod string   `json:"procurement_method,omitempty"`
	BidCount          int      `json:"bid_count,omitempty" validate:"gte=0"`
	Justification     string   `json:"justification,omitempty"`
	ChangeOrderCount  int      `json:"change_order_count,omitempty" validate:"gte=0"`
	IsEmergency       bool     `json:"is_emergency,omitempty"`
	IsSoleSource      bool     `json:"is_sole_source,omitempty"`
	RequiresInsurance bool     `json:"requires_insurance,omitempty"`
	InsuranceVerified bool     `json:"insurance_verified,omitempty"`
	RequiresBond      bool     `json:"requires_bond,omitempty"`
	BondVerified      bool     `json:"bond_verified,omitempty"`
}

type MilestoneImport struct {
	ContractID      string  `json:"contract_id" validate:"required"`
	MilestoneNumber int     `json:"milestone_number,omitempty" validate:"gte=0"`
	Title           string  `json:"title" validate:"required"`
	Status          string  `json:"status,omitempty" validate:"omitempty,milestone_status"`
	DueDate         string  `json:"due_date,omitempty" validate:"omitempty,day"`
	CompletedDate   string  `json:"completed_date,omitempty" validate:"omitempty,day"`
	PercentComplete float64 `json:"percent_complete,omitempty" validate:"gte=0,lte=100"`
	PaymentAmount   float64 `json:"payment_amount,omitempty" validate:"gte=0"`
}

type PaymentImport struct {
	ContractID    string  `json:"contract_id" validate:"required"`
	VendorID      string  `json:"vendor_id,omitempty"`
	InvoiceNumber string  `json:"invoice_number,omitempty"`
	InvoiceDate   string  `json:"invoice_date,omitempty" validate:"omitempty,day"`
	PaymentDate   string  `json:"payment_date,omitempty" validate:"omitempty,day"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	PaymentType   string  `json:"payment_type,omitempty" validate:"omitempty,oneof=ACH Wire EFT Digital Check"`
	Status        string  `json:"status,omitempty"`
}

// ChangeOrderImport is historical: its amount is assumed to be reflected in the
// contract's current_amount and change_order_count already.
type ChangeOrderImport struct {
	ContractID    string  `json:"contract_id" validate:"required"`
	Number        string  `json:"number,omitempty"`
	Description   string  `json:"description,omitempty"`
	Reason        string  `json:"reason,omitempty"`
	Amount        float64 `json:"amount"`
	DaysAdded     int     `json:"days_added,omitempty"`
	Status        string  `json:"status,omitempty"`
	RequestedDate string  `json:"requested_date,omitempty" validate:"omitempty,day"`
	ApprovedDate  string  `json:"approved_date,omitempty" validate:"omitempty,day"`
}

// LoadImportSchema reads and parses a record import JSON file.
func LoadImportSchema(path string) (*ImportSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseImportSchema(data)
}

// ParseImportSchema parses import JSON already held in memory.
func ParseImportSchema(data []byte) (*ImportSchema, error) {
	var schema ImportSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &schema, nil
}
