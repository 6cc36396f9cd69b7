package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/google/uuid"
)

var testContractCounter atomic.Int64

// Vendor options
type VendorOption func(*domain.Vendor)

func WithVendorID(id string) VendorOption {
	return func(v *domain.Vendor) {
		v.VendorID = id
	}
}

func WithVendorType(t string) VendorOption {
	return func(v *domain.Vendor) {
		v.VendorType = t
	}
}

func WithSmallBusiness() VendorOption {
	return func(v *domain.Vendor) {
		v.SmallBusiness = true
	}
}

func NewTestVendor(name string, opts ...VendorOption) *domain.Vendor {
	now := time.Now().UTC().Truncate(time.Second)
	v := &domain.Vendor{
		VendorID:         uuid.New().String(),
		VendorName:       name,
		VendorType:       "Construction",
		Status:           "Active",
		PerformanceScore: 50,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Contract options
type ContractOption func(*domain.Contract)

func WithContractID(id string) ContractOption {
	return func(c *domain.Contract) {
		c.ContractID = id
	}
}

func WithVendor(v *domain.Vendor) ContractOption {
	return func(c *domain.Contract) {
		c.VendorID = v.VendorID
		c.VendorName = v.VendorName
	}
}

func WithAmounts(original, current float64) ContractOption {
	return func(c *domain.Contract) {
		c.OriginalAmount = &original
		c.CurrentAmount = &current
	}
}

func WithTotalPaid(paid float64) ContractOption {
	return func(c *domain.Contract) {
		c.TotalPaid = &paid
	}
}

func WithDates(start, originalEnd, currentEnd string) ContractOption {
	return func(c *domain.Contract) {
		c.StartDate = start
		c.OriginalEndDate = originalEnd
		c.CurrentEndDate = currentEnd
	}
}

func WithStatus(s domain.ContractStatus) ContractOption {
	return func(c *domain.Contract) {
		c.Status = s
	}
}

func WithPercentComplete(p float64) ContractOption {
	return func(c *domain.Contract) {
		c.PercentComplete = &p
	}
}

func WithDepartment(d string) ContractOption {
	return func(c *domain.Contract) {
		c.Department = d
	}
}

func WithProcurement(method string, bidCount int) ContractOption {
	return func(c *domain.Contract) {
		c.ProcurementMethod = method
		c.BidCount = bidCount
	}
}

func WithSoleSource(justification string) ContractOption {
	return func(c *domain.Contract) {
		c.IsSoleSource = true
		c.Justification = justification
	}
}

func WithBoardApproval(date string) ContractOption {
	return func(c *domain.Contract) {
		c.BoardApprovalDate = date
	}
}

func WithChangeOrderCount(n int) ContractOption {
	return func(c *domain.Contract) {
		c.ChangeOrderCount = n
	}
}

func WithHealth(score float64, risk domain.RiskLevel) ContractOption {
	return func(c *domain.Contract) {
		c.OverallHealthScore = &score
		c.RiskLevel = risk
	}
}

func WithUpdatedAt(t time.Time) ContractOption {
	return func(c *domain.Contract) {
		c.UpdatedAt = &t
	}
}

// NewTestContract builds an active, on-budget RFP contract running through 2025.
func NewTestContract(title string, opts ...ContractOption) *domain.Contract {
	n := testContractCounter.Add(1)
	now := time.Now().UTC().Truncate(time.Second)
	c := &domain.Contract{
		ContractID:        uuid.New().String(),
		ContractNumber:    fmt.Sprintf("C-%04d", n),
		Title:             title,
		Department:        "Public Works",
		FiscalYear:        "2025",
		OriginalAmount:    domain.Float64Ptr(100000),
		CurrentAmount:     domain.Float64Ptr(100000),
		TotalPaid:         domain.Float64Ptr(0),
		StartDate:         "2025-01-01",
		OriginalEndDate:   "2025-12-31",
		Status:            domain.ContractActive,
		PercentComplete:   domain.Float64Ptr(50),
		ProcurementMethod: "RFP",
		BidCount:          3,
		CreatedAt:         now,
		UpdatedAt:         &now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Milestone options
type MilestoneOption func(*domain.Milestone)

func WithMilestoneStatus(s domain.MilestoneStatus) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Status = s
	}
}

func WithDue(due string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.DueDate = due
	}
}

func WithCompleted(due, completed string) MilestoneOption {
	return func(m *domain.Milestone) {
		m.Status = domain.MilestoneCompleted
		m.DueDate = due
		m.CompletedDate = completed
		m.PercentComplete = 100
	}
}

func NewTestMilestone(contractID string, number int, opts ...MilestoneOption) *domain.Milestone {
	now := time.Now().UTC().Truncate(time.Second)
	m := &domain.Milestone{
		ContractID:      contractID,
		MilestoneNumber: number,
		Title:           fmt.Sprintf("Milestone %d", number),
		Status:          domain.MilestonePending,
		DueDate:         "2025-06-30",
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func NewTestPayment(contractID string, amount float64, paymentType string) *domain.Payment {
	return &domain.Payment{
		ContractID:    contractID,
		InvoiceNumber: "INV-" + uuid.New().String()[:8],
		InvoiceDate:   "2025-02-01",
		PaymentDate:   "2025-02-15",
		Amount:        amount,
		PaymentType:   paymentType,
		Status:        "Paid",
	}
}

func NewTestChangeOrder(contractID string, amount float64) *domain.ChangeOrder {
	return &domain.ChangeOrder{
		ContractID:    contractID,
		Number:        "CO-" + uuid.New().String()[:6],
		Description:   "Scope adjustment",
		Amount:        amount,
		Status:        "Approved",
		RequestedDate: "2025-03-01",
	}
}
