package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/importer"
)

var (
	// ErrNothingToUpdate is returned for an edit that sets no fields.
	ErrNothingToUpdate = errors.New("nothing to update")
	// ErrVendorHasContracts blocks deleting a vendor that contracts still reference.
	ErrVendorHasContracts = errors.New("vendor still has contracts")
)

// ContractChanges are the contract fields an operator may edit after award.
// Nil fields are left as stored.
type ContractChanges struct {
	Status            *domain.ContractStatus `json:"status,omitempty"`
	Phase             *string                `json:"phase,omitempty"`
	PercentComplete   *float64               `json:"percent_complete,omitempty" validate:"omitempty,gte=0,lte=100"`
	CurrentEndDate    *string                `json:"current_end_date,omitempty" validate:"omitempty,day"`
	ActualEndDate     *string                `json:"actual_end_date,omitempty" validate:"omitempty,day"`
	TotalPaid         *float64               `json:"total_paid,omitempty" validate:"omitempty,gte=0"`
	InsuranceVerified *bool                  `json:"insurance_verified,omitempty"`
	BondVerified      *bool                  `json:"bond_verified,omitempty"`
}

func (ch ContractChanges) validate() error {
	if ch == (ContractChanges{}) {
		return ErrNothingToUpdate
	}
	if ch.Status != nil && *ch.Status == "" {
		return fmt.Errorf("%w: status must not be empty", importer.ErrInvalidRecord)
	}
	return importer.ValidateRecord(ch)
}

func (ch ContractChanges) apply(c *domain.Contract) {
	if ch.Status != nil {
		c.Status = *ch.Status
	}
	if ch.Phase != nil {
		c.Phase = *ch.Phase
	}
	if ch.PercentComplete != nil {
		c.PercentComplete = domain.Float64Ptr(*ch.PercentComplete)
	}
	if ch.CurrentEndDate != nil {
		c.CurrentEndDate = *ch.CurrentEndDate
	}
	if ch.ActualEndDate != nil {
		c.ActualEndDate = *ch.ActualEndDate
	}
	if ch.TotalPaid != nil {
		c.TotalPaid = domain.Float64Ptr(*ch.TotalPaid)
	}
	if ch.InsuranceVerified != nil {
		c.InsuranceVerified = *ch.InsuranceVerified
	}
	if ch.BondVerified != nil {
		c.BondVerified = *ch.BondVerified
	}
}

// MilestoneChanges edit one milestone. Nil fields are left as stored.
type MilestoneChanges struct {
	Title           *string                 `json:"title,omitempty"`
	Status          *domain.MilestoneStatus `json:"status,omitempty" validate:"omitempty,milestone_status"`
	DueDate         *string                 `json:"due_date,omitempty" validate:"omitempty,day"`
	CompletedDate   *string                 `json:"completed_date,omitempty" validate:"omitempty,day"`
	PercentComplete *float64                `json:"percent_complete,omitempty" validate:"omitempty,gte=0,lte=100"`
	PaymentAmount   *float64                `json:"payment_amount,omitempty" validate:"omitempty,gte=0"`
}

func (ch MilestoneChanges) validate() error {
	if ch == (MilestoneChanges{}) {
		return ErrNothingToUpdate
	}
	if ch.Title != nil && *ch.Title == "" {
		return fmt.Errorf("%w: title must not be empty", importer.ErrInvalidRecord)
	}
	if ch.Status != nil && *ch.Status == "" {
		return fmt.Errorf("%w: status must not be empty", importer.ErrInvalidRecord)
	}
	return importer.ValidateRecord(ch)
}

func (ch MilestoneChanges) apply(m *domain.Milestone) {
	if ch.Title != nil {
		m.Title = *ch.Title
	}
	if ch.Status != nil {
		m.Status = *ch.Status
	}
	if ch.DueDate != nil {
		m.DueDate = *ch.DueDate
	}
	if ch.CompletedDate != nil {
		m.CompletedDate = *ch.CompletedDate
	}
	if ch.PercentComplete != nil {
		m.PercentComplete = *ch.PercentComplete
	}
	if ch.PaymentAmount != nil {
		m.PaymentAmount = *ch.PaymentAmount
	}
}

// stampCompletion fills in a completed milestone's missing completion date and
// progress.
func stampCompletion(m *domain.Milestone, today time.Time) {
	if m.Status != domain.MilestoneCompleted {
		return
	}
	if m.CompletedDate == "" {
		m.CompletedDate = today.Format(domain.DateLayout)
	}
	m.PercentComplete = 100
}

// VendorChanges edit a vendor's profile. The name is fixed because contracts
// carry a copy of it.
type VendorChanges struct {
	Status              *string `json:"status,omitempty"`
	VendorType          *string `json:"vendor_type,omitempty"`
	ContactName         *string `json:"contact_name,omitempty"`
	ContactEmail        *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	City                *string `json:"city,omitempty"`
	State               *string `json:"state,omitempty"`
	CertificationStatus *string `json:"certification_status,omitempty"`
}

func (ch VendorChanges) validate() error {
	if ch == (VendorChanges{}) {
		return ErrNothingToUpdate
	}
	if ch.Status != nil && *ch.Status == "" {
		return fmt.Errorf("%w: status must not be empty", importer.ErrInvalidRecord)
	}
	return importer.ValidateRecord(ch)
}

func (ch VendorChanges) apply(v *domain.Vendor) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&v.Status, ch.Status)
	set(&v.VendorType, ch.VendorType)
	set(&v.ContactName, ch.ContactName)
	set(&v.ContactEmail, ch.ContactEmail)
	set(&v.City, ch.City)
	set(&v.State, ch.State)
	set(&v.CertificationStatus, ch.CertificationStatus)
}
