package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/importer"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/scoring"
)

type contractService struct {
	contracts    repository.ContractRepo
	milestones   repository.MilestoneRepo
	payments     repository.PaymentRepo
	changeOrders repository.ChangeOrderRepo
	issues       repository.IssueRepo
	engine       *scoring.ContractEngine
	alerts       *scoring.AlertGenerator
	uow          db.UnitOfWork
	observer     UseCaseObserver
}

func NewContractService(
	contracts repository.ContractRepo,
	milestones repository.MilestoneRepo,
	payments repository.PaymentRepo,
	changeOrders repository.ChangeOrderRepo,
	issues repository.IssueRepo,
	engine *scoring.ContractEngine,
	alerts *scoring.AlertGenerator,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) ContractService {
	return &contractService{
		contracts:    contracts,
		milestones:   milestones,
		payments:     payments,
		changeOrders: changeOrders,
		issues:       issues,
		engine:       engine,
		alerts:       alerts,
		uow:          uow,
		observer:     useCaseObserverOrNoop(observers),
	}
}

// List returns matching contracts scored against their current records. A
// RiskLevel filter applies to the fresh scores, not the stored ones.
func (s *contractService) List(ctx context.Context, filter repository.ContractFilter) ([]*domain.Contract, error) {
	risk := filter.RiskLevel
	filter.RiskLevel = ""

	scored, err := loadScored(ctx, s.contracts, s.milestones, s.engine, filter)
	if err != nil {
		return nil, err
	}
	if risk == "" {
		return scored, nil
	}
	out := scored[:0]
	for _, c := range scored {
		if c.RiskLevel == risk {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *contractService) Get(ctx context.Context, id string) (*ContractDetail, error) {
	c, err := s.contracts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &ContractDetail{Contract: c}

	if detail.Milestones, err = s.milestones.ListByContract(ctx, id); err != nil {
		return nil, fmt.Errorf("loading milestones: %w", err)
	}
	if detail.Payments, err = s.payments.ListByContract(ctx, id); err != nil {
		return nil, fmt.Errorf("loading payments: %w", err)
	}
	if detail.ChangeOrders, err = s.changeOrders.ListByContract(ctx, id); err != nil {
		return nil, fmt.Errorf("loading change orders: %w", err)
	}
	if detail.Issues, err = s.issues.List(ctx, repository.IssueFilter{ContractID: id}); err != nil {
		return nil, fmt.Errorf("loading issues: %w", err)
	}

	s.engine.ScoreContract(c, detail.Milestones)
	detail.Alerts = s.alerts.Generate([]*domain.Contract{c})
	detail.MilestoneStats = domain.SummarizeMilestones(detail.Milestones, s.alerts.Now())
	return detail, nil
}

// RecordChangeOrder stores co, applies it to the contract amounts and
// rescores the contract, all in one transaction.
func (s *contractService) RecordChangeOrder(ctx context.Context, co *domain.ChangeOrder) (c *domain.Contract, err error) {
	fields := map[string]any{"contract_id": co.ContractID, "amount": co.Amount}
	defer observe(ctx, s.observer, "record-change-order", time.Now().UTC(), fields, &err)

	if co.Status == "" {
		co.Status = "Approved"
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteChangeOrderRepo(tx).Create(ctx, co); err != nil {
			return fmt.Errorf("creating change order: %w", err)
		}
		var err error
		c, err = rescoreOne(ctx, tx, s.engine, co.ContractID)
		return err
	})
	if err != nil {
		return nil, err
	}
	fields["change_order_count"] = c.ChangeOrderCount
	return c, nil
}

func (s *contractService) Delete(ctx context.Context, id string) (err error) {
	defer observe(ctx, s.observer, "delete-contract", time.Now().UTC(), map[string]any{"contract_id": id}, &err)
	return s.contracts.Delete(ctx, id)
}

// UpdateContract applies operator edits to a contract and rescores it in the
// same transaction.
func (s *contractService) UpdateContract(ctx context.Context, id string, ch ContractChanges) (c *domain.Contract, err error) {
	defer observe(ctx, s.observer, "update-contract", time.Now().UTC(), map[string]any{"contract_id": id}, &err)

	if err := ch.validate(); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		contracts := repository.NewSQLiteContractRepo(tx)
		current, err := contracts.GetByID(ctx, id)
		if err != nil {
			return err
		}
		ch.apply(current)
		if err := contracts.Update(ctx, current); err != nil {
			return err
		}
		c, err = rescoreOne(ctx, tx, s.engine, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// AddMilestone stores a new milestone and rescores its contract. A zero
// milestone number takes the next free number on the contract.
func (s *contractService) AddMilestone(ctx context.Context, in importer.MilestoneImport) (res *MilestoneResult, err error) {
	fields := map[string]any{"contract_id": in.ContractID}
	defer observe(ctx, s.observer, "add-milestone", time.Now().UTC(), fields, &err)

	if err := importer.ValidateRecord(in); err != nil {
		return nil, err
	}
	now := s.alerts.Now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if _, err := repository.NewSQLiteContractRepo(tx).GetByID(ctx, in.ContractID); err != nil {
			return err
		}
		milestones := repository.NewSQLiteMilestoneRepo(tx)
		existing, err := milestones.ListByContract(ctx, in.ContractID)
		if err != nil {
			return fmt.Errorf("loading milestones: %w", err)
		}
		next := 1
		for _, m := range existing {
			if m.MilestoneNumber >= next {
				next = m.MilestoneNumber + 1
			}
		}

		m := importer.ToMilestone(in, next, now)
		stampCompletion(m, now)
		if err := milestones.Create(ctx, m); err != nil {
			return err
		}
		c, err := rescoreOne(ctx, tx, s.engine, in.ContractID)
		if err != nil {
			return err
		}
		res = &MilestoneResult{Milestone: m, Contract: c}
		return nil
	})
	if err != nil {
		return nil, err
	}
	fields["milestone_id"] = res.Milestone.MilestoneID
	return res, nil
}

// UpdateMilestone edits one milestone and rescores its contract. Marking a
// milestone completed stamps today's date when none is given.
func (s *contractService) UpdateMilestone(ctx context.Context, id int64, ch MilestoneChanges) (res *MilestoneResult, err error) {
	defer observe(ctx, s.observer, "update-milestone", time.Now().UTC(), map[string]any{"milestone_id": id}, &err)

	if err := ch.validate(); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		milestones := repository.NewSQLiteMilestoneRepo(tx)
		m, err := milestones.GetByID(ctx, id)
		if err != nil {
			return err
		}
		ch.apply(m)
		stampCompletion(m, s.alerts.Now())
		if err := milestones.Update(ctx, m); err != nil {
			return err
		}
		c, err := rescoreOne(ctx, tx, s.engine, m.ContractID)
		if err != nil {
			return err
		}
		res = &MilestoneResult{Milestone: m, Contract: c}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// DeleteMilestone removes a milestone and rescores the contract it belonged to.
func (s *contractService) DeleteMilestone(ctx context.Context, id int64) (res *MilestoneResult, err error) {
	defer observe(ctx, s.observer, "delete-milestone", time.Now().UTC(), map[string]any{"milestone_id": id}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		milestones := repository.NewSQLiteMilestoneRepo(tx)
		m, err := milestones.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := milestones.Delete(ctx, id); err != nil {
			return err
		}
		c, err := rescoreOne(ctx, tx, s.engine, m.ContractID)
		if err != nil {
			return err
		}
		res = &MilestoneResult{Milestone: m, Contract: c}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
