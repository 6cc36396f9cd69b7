package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/contractwatch/internal/benchmark"
	"github.com/alexanderramin/contractwatch/internal/repository"
)

type benchmarkService struct {
	contracts repository.ContractRepo
	payments  repository.PaymentRepo
	vendors   repository.VendorRepo
	engine    *benchmark.Engine
	observer  UseCaseObserver
}

func NewBenchmarkService(
	contracts repository.ContractRepo,
	payments repository.PaymentRepo,
	vendors repository.VendorRepo,
	engine *benchmark.Engine,
	observers ...UseCaseObserver,
) BenchmarkService {
	return &benchmarkService{
		contracts: contracts,
		payments:  payments,
		vendors:   vendors,
		engine:    engine,
		observer:  useCaseObserverOrNoop(observers),
	}
}

// Evaluate grades KPI values estimated from the record store. overrides
// replace or add individual KPI values; an unknown override ID is an error.
func (s *benchmarkService) Evaluate(ctx context.Context, overrides map[string]float64, peers []float64) (report *BenchmarkReport, err error) {
	fields := map[string]any{"override_count": len(overrides), "peer_count": len(peers)}
	defer observe(ctx, s.observer, "evaluate-benchmarks", time.Now().UTC(), fields, &err)

	for id := range overrides {
		if _, ok := s.engine.KPI(id); !ok {
			return nil, fmt.Errorf("%w: %s", benchmark.ErrUnknownKPI, id)
		}
	}

	contracts, err := s.contracts.List(ctx, repository.ContractFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading contracts: %w", err)
	}
	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading payments: %w", err)
	}
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vendors: %w", err)
	}

	values := benchmark.EstimateKPIs(contracts, payments, vendors)
	estimated := make([]string, 0, len(values))
	for id := range values {
		if _, overridden := overrides[id]; !overridden {
			estimated = append(estimated, id)
		}
	}
	sort.Strings(estimated)
	for id, v := range overrides {
		values[id] = v
	}

	health, err := s.engine.HealthScore(values, peers)
	if err != nil {
		return nil, err
	}
	fields["overall_score"] = health.OverallScore
	fields["grade"] = health.Grade
	return &BenchmarkReport{Values: values, Estimated: estimated, Health: health}, nil
}

func (s *benchmarkService) Catalog() benchmark.Summary {
	return s.engine.Summary()
}
