package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/contractwatch/internal/export"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/scoring"
)

type exportService struct {
	contracts  repository.ContractRepo
	vendors    repository.VendorRepo
	milestones repository.MilestoneRepo
	engine     *scoring.ContractEngine
	generator  *scoring.AlertGenerator
	observer   UseCaseObserver
}

func NewExportService(
	contracts repository.ContractRepo,
	vendors repository.VendorRepo,
	milestones repository.MilestoneRepo,
	engine *scoring.ContractEngine,
	generator *scoring.AlertGenerator,
	observers ...UseCaseObserver,
) ExportService {
	return &exportService{
		contracts:  contracts,
		vendors:    vendors,
		milestones: milestones,
		engine:     engine,
		generator:  generator,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Export writes a workbook with Contracts, Vendors and Alerts sheets to path.
// Scores are computed fresh; the record store is not modified.
func (s *exportService) Export(ctx context.Context, path string) (result *ExportResult, err error) {
	fields := map[string]any{"path": path}
	defer observe(ctx, s.observer, "export", time.Now().UTC(), fields, &err)

	scored, err := loadScored(ctx, s.contracts, s.milestones, s.engine, repository.ContractFilter{})
	if err != nil {
		return nil, err
	}
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vendors: %w", err)
	}

	byVendor := groupByVendor(scored)
	rows := make([]export.VendorRow, 0, len(vendors))
	for _, v := range vendors {
		card := scorecardFor(v, byVendor[v.VendorID])
		rows = append(rows, export.VendorRow{Vendor: card.Vendor, Score: card.Score, Metrics: card.Metrics})
	}
	alerts := s.generator.Generate(scored)

	sheets := []export.Sheet{
		export.ContractsSheet(scored),
		export.VendorsSheet(rows),
		export.AlertsSheet(alerts),
	}
	if err := export.Save(path, sheets); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}

	result = &ExportResult{Path: path, Contracts: len(scored), Vendors: len(rows), Alerts: len(alerts)}
	fields["contract_count"] = result.Contracts
	fields["alert_count"] = result.Alerts
	return result, nil
}
