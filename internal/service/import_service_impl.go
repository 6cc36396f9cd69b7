package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/alexanderramin/contractwatch/internal/importer"
	"github.com/alexanderramin/contractwatch/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

// NewImportService loads seed files. Every import is all-or-nothing.
func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSchema(ctx, schema)
}

func (s *importService) ImportSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "import", time.Now().UTC(), fields, &err)

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		fields["validation_errors"] = len(errs)
		return nil, formatValidationErrors(errs)
	}
	batch := importer.Convert(schema)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txVendors := repository.NewSQLiteVendorRepo(tx)
		txContracts := repository.NewSQLiteContractRepo(tx)
		txMilestones := repository.NewSQLiteMilestoneRepo(tx)
		txPayments := repository.NewSQLitePaymentRepo(tx)
		txChangeOrders := repository.NewSQLiteChangeOrderRepo(tx)

		for _, v := range batch.Vendors {
			if err := txVendors.Create(ctx, v); err != nil {
				return fmt.Errorf("creating vendor %q: %w", v.VendorID, err)
			}
		}
		for _, c := range batch.Contracts {
			if err := txContracts.Create(ctx, c); err != nil {
				return fmt.Errorf("creating contract %q: %w", c.Title, err)
			}
		}
		for _, m := range batch.Milestones {
			if err := txMilestones.Create(ctx, m); err != nil {
				return fmt.Errorf("creating milestone %q: %w", m.Title, err)
			}
		}
		for _, p := range batch.Payments {
			if err := txPayments.Create(ctx, p); err != nil {
				return fmt.Errorf("creating payment for %s: %w", p.ContractID, err)
			}
		}
		// Imported contracts already carry the effect of their change orders.
		for _, co := range batch.ChangeOrders {
			if err := txChangeOrders.InsertHistorical(ctx, co); err != nil {
				return fmt.Errorf("creating change order for %s: %w", co.ContractID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result = &ImportResult{
		VendorCount:      len(batch.Vendors),
		ContractCount:    len(batch.Contracts),
		MilestoneCount:   len(batch.Milestones),
		PaymentCount:     len(batch.Payments),
		ChangeOrderCount: len(batch.ChangeOrders),
	}
	fields["vendor_count"] = result.VendorCount
	fields["contract_count"] = result.ContractCount
	return result, nil
}
