package domain

import "time"

type Payment struct {
	PaymentID     int64     `json:"payment_id"`
	ContractID    string    `json:"contract_id"`
	VendorID      string    `json:"vendor_id"`
	InvoiceNumber string    `json:"invoice_number"`
	InvoiceDate   string    `json:"invoice_date"`
	PaymentDate   string    `json:"payment_date"`
	Amount        float64   `json:"amount"`
	PaymentType   string    `json:"payment_type"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// IsDigital reports whether the payment went through a digital channel.
func (p *Payment) IsDigital() bool {
	return DigitalPaymentTypes[p.PaymentType]
}

type ChangeOrder struct {
	ChangeOrderID int64     `json:"change_order_id"`
	ContractID    string    `json:"contract_id"`
	Number        string    `json:"change_order_number"`
	Description   string    `json:"description"`
	Reason        string    `json:"reason"`
	Amount        float64   `json:"amount"`
	DaysAdded     int       `json:"days_added"`
	Status        string    `json:"status"`
	RequestedDate string    `json:"requested_date"`
	ApprovedDate  string    `json:"approved_date"`
	CreatedAt     time.Time `json:"created_at"`
}

type Issue struct {
	IssueID     int64       `json:"issue_id"`
	ContractID  string      `json:"contract_id"`
	VendorID    string      `json:"vendor_id"`
	IssueType   string      `json:"issue_type"`
	Severity    Severity    `json:"severity"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Status      IssueStatus `json:"status"`
	ReportedBy  string      `json:"reported_by"`
	ReportedAt  time.Time   `json:"reported_at"`
	ResolvedAt  *time.Time  `json:"resolved_at,omitempty"`
}

// Alert is an ephemeral rule hit; it is regenerated on every evaluation.
type Alert struct {
	AlertID       string    `json:"alert_id"`
	ContractID    string    `json:"contract_id"`
	ContractTitle string    `json:"contract_title"`
	VendorName    string    `json:"vendor_name"`
	AlertType     string    `json:"alert_type"`
	Title         string    `json:"title"`
	Severity      Severity  `json:"severity"`
	GeneratedAt   time.Time `json:"generated_at"`
}
