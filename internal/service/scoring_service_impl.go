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

type scoringService struct {
	engine   *scoring.ContractEngine
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewScoringService persists engine results. Every pass runs in a single
// transaction obtained from uow.
func NewScoringService(engine *scoring.ContractEngine, uow db.UnitOfWork, observers ...UseCaseObserver) ScoringService {
	return &scoringService{
		engine:   engine,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *scoringService) RescoreAll(ctx context.Context) (scored []*domain.Contract, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "rescore-all", time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txContracts := repository.NewSQLiteContractRepo(tx)
		txVendors := repository.NewSQLiteVendorRepo(tx)

		var err error
		scored, err = loadScored(ctx, txContracts, repository.NewSQLiteMilestoneRepo(tx), s.engine, repository.ContractFilter{})
		if err != nil {
			return err
		}
		for _, c := range scored {
			if err := txContracts.UpdateScores(ctx, c); err != nil {
				return fmt.Errorf("saving scores for %s: %w", c.ContractID, err)
			}
		}

		vendors, err := txVendors.List(ctx)
		if err != nil {
			return fmt.Errorf("loading vendors: %w", err)
		}
		byVendor := groupByVendor(scored)
		for _, v := range vendors {
			if err := updateVendorRollup(ctx, txVendors, v.VendorID, byVendor[v.VendorID]); err != nil {
				return err
			}
		}
		fields["vendor_count"] = len(vendors)
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["contract_count"] = len(scored)
	return scored, nil
}

func (s *scoringService) RescoreContract(ctx context.Context, id string) (scored *domain.Contract, err error) {
	fields := map[string]any{"contract_id": id}
	defer observe(ctx, s.observer, "rescore-contract", time.Now().UTC(), fields, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var err error
		scored, err = rescoreOne(ctx, tx, s.engine, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["health"] = scored.HealthOr(scoring.NeutralScore)
	fields["risk_level"] = string(scored.RiskLevel)
	return scored, nil
}

// rescoreOne scores a single contract inside tx and refreshes its vendor's
// rollup. Sibling contracts are scored in memory so their stored derived
// fields never feed the vendor score.
func rescoreOne(ctx context.Context, tx db.DBTX, engine *scoring.ContractEngine, id string) (*domain.Contract, error) {
	txContracts := repository.NewSQLiteContractRepo(tx)
	txMilestones := repository.NewSQLiteMilestoneRepo(tx)

	c, err := txContracts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	milestones, err := txMilestones.ListByContract(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}
	engine.ScoreContract(c, milestones)
	if err := txContracts.UpdateScores(ctx, c); err != nil {
		return nil, fmt.Errorf("saving scores for %s: %w", id, err)
	}

	if c.VendorID == "" {
		return c, nil
	}
	siblings, err := loadScored(ctx, txContracts, txMilestones, engine, repository.ContractFilter{VendorID: c.VendorID})
	if err != nil {
		return nil, fmt.Errorf("scoring vendor contracts: %w", err)
	}
	if err := updateVendorRollup(ctx, repository.NewSQLiteVendorRepo(tx), c.VendorID, siblings); err != nil {
		return nil, err
	}
	return c, nil
}

func updateVendorRollup(ctx context.Context, vendors repository.VendorRepo, vendorID string, contracts []*domain.Contract) error {
	score := scoring.VendorScore(contracts)
	if err := vendors.UpdatePerformance(ctx, vendorID, score, len(contracts), totalAwarded(contracts)); err != nil {
		return fmt.Errorf("saving performance for vendor %s: %w", vendorID, err)
	}
	return nil
}
