package service

import (
	"context"
	"fmt"
	"math"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/scoring"
)

// loadScored reads the contracts matching filter and scores them in memory
// against the current milestone set. Nothing is written back.
func loadScored(
	ctx context.Context,
	contracts repository.ContractRepo,
	milestones repository.MilestoneRepo,
	engine *scoring.ContractEngine,
	filter repository.ContractFilter,
) ([]*domain.Contract, error) {
	list, err := contracts.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("loading contracts: %w", err)
	}
	byContract, err := milestones.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}
	return engine.BatchScore(list, byContract), nil
}

// groupByVendor buckets contracts by vendor ID, keeping input order.
func groupByVendor(contracts []*domain.Contract) map[string][]*domain.Contract {
	out := make(map[string][]*domain.Contract)
	for _, c := range contracts {
		out[c.VendorID] = append(out[c.VendorID], c)
	}
	return out
}

// totalAwarded sums the current amounts of contracts.
func totalAwarded(contracts []*domain.Contract) float64 {
	var total float64
	for _, c := range contracts {
		total += c.Current()
	}
	return total
}

func scorecardFor(v *domain.Vendor, contracts []*domain.Contract) VendorScorecard {
	return VendorScorecard{
		Vendor:    v,
		Score:     scoring.VendorScore(contracts),
		Metrics:   scoring.ComputeVendorMetrics(contracts),
		Contracts: contracts,
	}
}

// atLeast reports whether s is at least as severe as min. An empty min admits
// every severity.
func atLeast(s, min domain.Severity) bool {
	if min == "" {
		return true
	}
	return s.Rank() <= min.Rank()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
