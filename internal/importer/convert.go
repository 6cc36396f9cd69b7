package importer

import (
	"time"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/google/uuid"
)

// defaultVendorScore is the neutral performance score for a vendor with no history.
const defaultVendorScore = 50.0

// Batch holds converted records ready for persistence, in insertion order.
type Batch struct {
	Vendors      []*domain.Vendor
	Contracts    []*domain.Contract
	Milestones   []*domain.Milestone
	Payments     []*domain.Payment
	ChangeOrders []*domain.ChangeOrder
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) *Batch {
	now := time.Now().UTC().Truncate(time.Second)
	batch := &Batch{}

	vendorNames := make(map[string]string, len(schema.Vendors))
	for _, v := range schema.Vendors {
		status := v.Status
		if status == "" {
			status = "Active"
		}
		vendorNames[v.VendorID] = v.VendorName
		batch.Vendors = append(batch.Vendors, &domain.Vendor{
			VendorID:            v.VendorID,
			VendorName:          v.VendorName,
			VendorType:          v.VendorType,
			ContactName:         v.ContactName,
			ContactEmail:        v.ContactEmail,
			City:                v.City,
			State:               v.State,
			CertificationStatus: v.CertificationStatus,
			MinorityOwned:       v.MinorityOwned,
			WomanOwned:          v.WomanOwned,
			SmallBusiness:       v.SmallBusiness,
			LocalBusiness:       v.LocalBusiness,
			Status:              status,
			PerformanceScore:    domain.Float64FromPtrWithDefault(defaultVendorScore, v.PerformanceScore),
			CreatedAt:           now,
			UpdatedAt:           now,
		})
	}

	contractVendor := make(map[string]string, len(schema.Contracts))
	for _, c := range schema.Contracts {
		id := c.ContractID
		if id == "" {
			id = uuid.New().String()
		}
		status := domain.ContractStatus(c.Status)
		if status == "" {
			status = domain.ContractDraft
		}
		contractVendor[id] = c.VendorID
		batch.Contracts = append(batch.Contracts, &domain.Contract{
			ContractID:        id,
			ContractNumber:    c.ContractNumber,
			Title:             c.Title,
			Description:       c.Description,
			ContractType:      c.ContractType,
			Department:        c.Department,
			FiscalYear:        c.FiscalYear,
			VendorID:          c.VendorID,
			VendorName:        domain.CoalesceStr(c.VendorName, vendorNames[c.VendorID]),
			OriginalAmount:    c.OriginalAmount,
			CurrentAmount:     c.CurrentAmount,
			TotalPaid:         c.TotalPaid,
			SolicitationDate:  c.SolicitationDate,
			AwardDate:         c.AwardDate,
			StartDate:         c.StartDate,
			OriginalEndDate:   c.OriginalEndDate,
			CurrentEndDate:    c.CurrentEndDate,
			ActualEndDate:     c.ActualEndDate,
			BoardApprovalDate: c.BoardApprovalDate,
			Status:            status,
			Phase:             c.Phase,
			PercentComplete:   c.PercentComplete,
			ProcurementMethod: c.ProcurementMethod,
			BidCount:          c.BidCount,
			Justification:     c.Justification,
			ChangeOrderCount:  c.ChangeOrderCount,
			IsEmergency:       c.IsEmergency,
			IsSoleSource:      c.IsSoleSource,
			RequiresInsurance: c.RequiresInsurance,
			InsuranceVerified: c.InsuranceVerified,
			RequiresBond:      c.RequiresBond,
			BondVerified:      c.BondVerified,
			CreatedAt:         now,
			UpdatedAt:         &now,
		})
	}

	for i, m := range schema.Milestones {
		batch.Milestones = append(batch.Milestones, ToMilestone(m, i+1, now))
	}

	for _, p := range schema.Payments {
		batch.Payments = append(batch.Payments, &domain.Payment{
			ContractID:    p.ContractID,
			VendorID:      domain.CoalesceStr(p.VendorID, contractVendor[p.ContractID]),
			InvoiceNumber: p.InvoiceNumber,
			InvoiceDate:   p.InvoiceDate,
			PaymentDate:   p.PaymentDate,
			Amount:        p.Amount,
			PaymentType:   p.PaymentType,
			Status:        p.Status,
			CreatedAt:     now,
		})
	}

	for _, co := range schema.ChangeOrders {
		batch.ChangeOrders = append(batch.ChangeOrders, &domain.ChangeOrder{
			ContractID:    co.ContractID,
			Number:        co.Number,
			Description:   co.Description,
			Reason:        co.Reason,
			Amount:        co.Amount,
			DaysAdded:     co.DaysAdded,
			Status:        co.Status,
			RequestedDate: co.RequestedDate,
			ApprovedDate:  co.ApprovedDate,
			CreatedAt:     now,
		})
	}

	return batch
}

// ToMilestone converts one milestone record. A missing status becomes Pending
// and a missing number becomes fallbackNumber.
func ToMilestone(m MilestoneImport, fallbackNumber int, now time.Time) *domain.Milestone {
	status := domain.MilestoneStatus(m.Status)
	if status == "" {
		status = domain.MilestonePending
	}
	number := m.MilestoneNumber
	if number == 0 {
		number = fallbackNumber
	}
	return &domain.Milestone{
		ContractID:      m.ContractID,
		MilestoneNumber: number,
		Title:           m.Title,
		Status:          status,
		DueDate:         m.DueDate,
		CompletedDate:   m.CompletedDate,
		PercentComplete: m.PercentComplete,
		PaymentAmount:   m.PaymentAmount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
