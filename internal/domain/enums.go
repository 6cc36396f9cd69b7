package domain

type RiskLevel string

const (
	RiskCritical RiskLevel = "Critical"
	RiskHigh     RiskLevel = "High"
	RiskMedium   RiskLevel = "Medium"
	RiskLow      RiskLevel = "Low"
)

// Severity tags an alert. It shares its vocabulary with RiskLevel.
type Severity string

const (
	SeverityCritical Severity = "Critical"
	SeverityHigh     Severity = "High"
	SeverityMedium   Severity = "Medium"
	SeverityLow      Severity = "Low"
)

// Rank orders severities for sorting: Critical=0 through Low=3, anything else 4.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	default:
		return 4
	}
}

// ContractStatus is an open enumeration; unknown values round-trip untouched.
type ContractStatus string

const (
	ContractDraft     ContractStatus = "Draft"
	ContractActive    ContractStatus = "Active"
	ContractCompleted ContractStatus = "Completed"
	ContractOnHold    ContractStatus = "On Hold"
	ContractCancelled ContractStatus = "Cancelled"
)

type MilestoneStatus string

const (
	MilestonePending    MilestoneStatus = "Pending"
	MilestoneInProgress MilestoneStatus = "In Progress"
	MilestoneCompleted  MilestoneStatus = "Completed"
	MilestoneOverdue    MilestoneStatus = "Overdue"
	MilestoneDelayed    MilestoneStatus = "Delayed"
)

// ValidMilestoneStatuses is the canonical set of accepted milestone status strings.
var ValidMilestoneStatuses = map[string]bool{
	"Pending": true, "In Progress": true, "Completed": true,
	"Overdue": true, "Delayed": true,
}

type IssueStatus string

const (
	IssueOpen     IssueStatus = "Open"
	IssueResolved IssueStatus = "Resolved"
)

// DigitalPaymentTypes are the payment channels counted as digital.
var DigitalPaymentTypes = map[string]bool{
	"ACH": true, "Wire": true, "EFT": true, "Digital": true,
}

// FormalProcurementMethods are the procurement methods counted as structured spend.
var FormalProcurementMethods = map[string]bool{
	"Competitive Bid": true, "RFP": true, "ITB": true, "RFQ": true,
}
