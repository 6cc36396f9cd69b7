package repository

import (
	"context"

	"github.com/alexanderramin/contractwatch/internal/domain"
)

// ContractFilter narrows ContractRepo.List. Zero-valued fields match everything.
type ContractFilter struct {
	Status     domain.ContractStatus
	RiskLevel  domain.RiskLevel
	VendorID   string
	Department string
}

// IssueFilter narrows IssueRepo.List.
type IssueFilter struct {
	ContractID string
	Status     domain.IssueStatus
}

type ContractRepo interface {
	Create(ctx context.Context, c *domain.Contract) error
	GetByID(ctx context.Context, id string) (*domain.Contract, error)
	List(ctx context.Context, filter ContractFilter) ([]*domain.Contract, error)
	ListByVendor(ctx context.Context, vendorID string) ([]*domain.Contract, error)
	Update(ctx context.Context, c *domain.Contract) error
	UpdateScores(ctx context.Context, c *domain.Contract) error
	Delete(ctx context.Context, id string) error
}

type VendorRepo interface {
	Create(ctx context.Context, v *domain.Vendor) error
	GetByID(ctx context.Context, id string) (*domain.Vendor, error)
	List(ctx context.Context) ([]*domain.Vendor, error)
	Update(ctx context.Context, v *domain.Vendor) error
	UpdatePerformance(ctx context.Context, vendorID string, score float64, totalContracts int, totalAwarded float64) error
	Delete(ctx context.Context, id string) error
}

type MilestoneRepo interface {
	Create(ctx context.Context, m *domain.Milestone) error
	GetByID(ctx context.Context, id int64) (*domain.Milestone, error)
	ListByContract(ctx context.Context, contractID string) ([]domain.Milestone, error)
	ListAll(ctx context.Context) (map[string][]domain.Milestone, error)
	Update(ctx context.Context, m *domain.Milestone) error
	Delete(ctx context.Context, id int64) error
}

type PaymentRepo interface {
	Create(ctx context.Context, p *domain.Payment) error
	ListByContract(ctx context.Context, contractID string) ([]domain.Payment, error)
	ListAll(ctx context.Context) ([]domain.Payment, error)
}

type ChangeOrderRepo interface {
	Create(ctx context.Context, co *domain.ChangeOrder) error
	InsertHistorical(ctx context.Context, co *domain.ChangeOrder) error
	ListByContract(ctx context.Context, contractID string) ([]domain.ChangeOrder, error)
	Totals(ctx context.Context) (count int, amount float64, err error)
}

type IssueRepo interface {
	Create(ctx context.Context, i *domain.Issue) error
	List(ctx context.Context, filter IssueFilter) ([]domain.Issue, error)
	ExistsOpen(ctx context.Context, contractID, issueType string) (bool, error)
}
