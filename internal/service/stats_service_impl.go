package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/scoring"
)

type statsService struct {
	contracts    repository.ContractRepo
	vendors      repository.VendorRepo
	milestones   repository.MilestoneRepo
	issues       repository.IssueRepo
	changeOrders repository.ChangeOrderRepo
	engine       *scoring.ContractEngine
}

func NewStatsService(
	contracts repository.ContractRepo,
	vendors repository.VendorRepo,
	milestones repository.MilestoneRepo,
	issues repository.IssueRepo,
	changeOrders repository.ChangeOrderRepo,
	engine *scoring.ContractEngine,
) StatsService {
	return &statsService{
		contracts:    contracts,
		vendors:      vendors,
		milestones:   milestones,
		issues:       issues,
		changeOrders: changeOrders,
		engine:       engine,
	}
}

func (s *statsService) Overview(ctx context.Context) (*Overview, error) {
	scored, err := loadScored(ctx, s.contracts, s.milestones, s.engine, repository.ContractFilter{})
	if err != nil {
		return nil, err
	}

	o := &Overview{
		TotalContracts: len(scored),
		RiskDistribution: map[domain.RiskLevel]int{
			domain.RiskCritical: 0,
			domain.RiskHigh:     0,
			domain.RiskMedium:   0,
			domain.RiskLow:      0,
		},
	}
	var healthSum float64
	for _, c := range scored {
		o.TotalContractValue += c.Current()
		o.TotalPaid += c.Paid()
		if c.IsActive() {
			o.ActiveContracts++
		}
		o.RiskDistribution[c.RiskLevel]++
		healthSum += c.HealthOr(scoring.NeutralScore)
	}
	if len(scored) > 0 {
		o.AvgHealthScore = round1(healthSum / float64(len(scored)))
	}

	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vendors: %w", err)
	}
	o.TotalVendors = len(vendors)

	open, err := s.issues.List(ctx, repository.IssueFilter{Status: domain.IssueOpen})
	if err != nil {
		return nil, fmt.Errorf("loading issues: %w", err)
	}
	o.OpenIssues = len(open)
	for _, i := range open {
		if i.Severity == domain.SeverityCritical || i.Severity == domain.SeverityHigh {
			o.CriticalIssues++
		}
	}

	if o.TotalChangeOrders, o.TotalChangeOrderValue, err = s.changeOrders.Totals(ctx); err != nil {
		return nil, err
	}
	return o, nil
}
