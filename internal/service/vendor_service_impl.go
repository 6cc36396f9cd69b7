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

type vendorService struct {
	vendors    repository.VendorRepo
	contracts  repository.ContractRepo
	milestones repository.MilestoneRepo
	engine     *scoring.ContractEngine
	uow        db.UnitOfWork
	observer   UseCaseObserver
}

func NewVendorService(
	vendors repository.VendorRepo,
	contracts repository.ContractRepo,
	milestones repository.MilestoneRepo,
	engine *scoring.ContractEngine,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) VendorService {
	return &vendorService{
		vendors:    vendors,
		contracts:  contracts,
		milestones: milestones,
		engine:     engine,
		uow:        uow,
		observer:   useCaseObserverOrNoop(observers),
	}
}

// List returns a scorecard per vendor, ordered by vendor name. Scores come
// from freshly scored contracts, so they hold even before the first rescore.
func (s *vendorService) List(ctx context.Context) ([]VendorScorecard, error) {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading vendors: %w", err)
	}
	scored, err := loadScored(ctx, s.contracts, s.milestones, s.engine, repository.ContractFilter{})
	if err != nil {
		return nil, err
	}

	byVendor := groupByVendor(scored)
	cards := make([]VendorScorecard, 0, len(vendors))
	for _, v := range vendors {
		cards = append(cards, scorecardFor(v, byVendor[v.VendorID]))
	}
	return cards, nil
}

func (s *vendorService) Scorecard(ctx context.Context, vendorID string) (*VendorScorecard, error) {
	v, err := s.vendors.GetByID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	scored, err := loadScored(ctx, s.contracts, s.milestones, s.engine, repository.ContractFilter{VendorID: vendorID})
	if err != nil {
		return nil, err
	}
	card := scorecardFor(v, scored)
	return &card, nil
}

// Update edits a vendor's profile. Performance fields are owned by the
// scoring pass and are not touched.
func (s *vendorService) Update(ctx context.Context, vendorID string, ch VendorChanges) (v *domain.Vendor, err error) {
	defer observe(ctx, s.observer, "update-vendor", time.Now().UTC(), map[string]any{"vendor_id": vendorID}, &err)

	if err := ch.validate(); err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		vendors := repository.NewSQLiteVendorRepo(tx)
		current, err := vendors.GetByID(ctx, vendorID)
		if err != nil {
			return err
		}
		ch.apply(current)
		if err := vendors.Update(ctx, current); err != nil {
			return err
		}
		v = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Delete removes a vendor that no contract references.
func (s *vendorService) Delete(ctx context.Context, vendorID string) (err error) {
	defer observe(ctx, s.observer, "delete-vendor", time.Now().UTC(), map[string]any{"vendor_id": vendorID}, &err)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		owned, err := repository.NewSQLiteContractRepo(tx).ListByVendor(ctx, vendorID)
		if err != nil {
			return err
		}
		if len(owned) > 0 {
			return fmt.Errorf("vendor %s: %w (%d)", vendorID, ErrVendorHasContracts, len(owned))
		}
		return repository.NewSQLiteVendorRepo(tx).Delete(ctx, vendorID)
	})
}
