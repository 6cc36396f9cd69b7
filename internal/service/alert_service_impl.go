package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/scoring"
)

// alertReporter is recorded as the reporter of issues raised from alerts.
const alertReporter = "contractwatch"

type alertService struct {
	contracts  repository.ContractRepo
	milestones repository.MilestoneRepo
	engine     *scoring.ContractEngine
	generator  *scoring.AlertGenerator
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewAlertService(
	contracts repository.ContractRepo,
	milestones repository.MilestoneRepo,
	engine *scoring.ContractEngine,
	generator *scoring.AlertGenerator,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AlertService {
	return &alertService{
		contracts:  contracts,
		milestones: milestones,
		engine:     engine,
		generator:  generator,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// Generate evaluates the alert rules against freshly scored contracts. With
// Persist set, each alert without an open issue of the same type on the same
// contract is recorded as an Open issue.
func (s *alertService) Generate(ctx context.Context, req AlertRequest) (result *AlertResult, err error) {
	fields := map[string]any{"persist": req.Persist, "min_severity": string(req.MinSeverity)}
	defer observe(ctx, s.observer, "generate-alerts", time.Now().UTC(), fields, &err)

	scored, err := loadScored(ctx, s.contracts, s.milestones, s.engine, repository.ContractFilter{})
	if err != nil {
		return nil, err
	}

	result = &AlertResult{Alerts: []domain.Alert{}}
	for _, a := range s.generator.Generate(scored) {
		if atLeast(a.Severity, req.MinSeverity) {
			result.Alerts = append(result.Alerts, a)
		}
	}
	fields["alert_count"] = len(result.Alerts)

	if !req.Persist || len(result.Alerts) == 0 {
		return result, nil
	}

	vendorOf := make(map[string]string, len(scored))
	for _, c := range scored {
		vendorOf[c.ContractID] = c.VendorID
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		issues := repository.NewSQLiteIssueRepo(tx)
		for _, a := range result.Alerts {
			exists, err := issues.ExistsOpen(ctx, a.ContractID, a.AlertType)
			if err != nil {
				return fmt.Errorf("checking open issues: %w", err)
			}
			if exists {
				result.Skipped++
				continue
			}
			issue := &domain.Issue{
				ContractID:  a.ContractID,
				VendorID:    vendorOf[a.ContractID],
				IssueType:   a.AlertType,
				Severity:    a.Severity,
				Title:       a.Title,
				Description: fmt.Sprintf("%s raised on %s", a.Title, a.ContractTitle),
				ReportedBy:  alertReporter,
				ReportedAt:  a.GeneratedAt.Truncate(time.Second),
			}
			if err := issues.Create(ctx, issue); err != nil {
				return fmt.Errorf("recording alert %s: %w", a.AlertID, err)
			}
			result.Persisted++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["persisted"] = result.Persisted
	return result, nil
}
