package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/importer"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVendorService(env *testEnv) VendorService {
	return NewVendorService(env.vendors, env.contracts, env.milestones, env.engine, env.uow)
}

func TestVendorService_ListBuildsScorecards(t *testing.T) {
	env := newTestEnv(t)
	seedPortfolio(t, env)
	ctx := context.Background()
	require.NoError(t, env.vendors.Create(ctx, testutil.NewTestVendor("Zephyr Electric", testutil.WithVendorID("V-Z"))))

	cards, err := newVendorService(env).List(ctx)
	require.NoError(t, err)
	require.Len(t, cards, 3)

	// Ordered by vendor name.
	assert.Equal(t, "Acme Paving", cards[0].Vendor.VendorName)
	assert.Equal(t, "Blue Ridge Builders", cards[1].Vendor.VendorName)
	assert.Equal(t, "Zephyr Electric", cards[2].Vendor.VendorName)

	a := cards[0]
	assert.Equal(t, 77.5, a.Score)
	assert.Equal(t, 2, a.Metrics.TotalContracts)
	assert.Equal(t, 225000.0, a.Metrics.TotalValue)
	assert.Equal(t, 78.5, a.Metrics.AvgHealthScore)
	assert.Equal(t, 100.0, a.Metrics.OnTimeRate)
	assert.Equal(t, 50.0, a.Metrics.BudgetAdherenceRate)
	assert.Equal(t, 2, a.Metrics.ActiveContracts)
	assert.Len(t, a.Contracts, 2)

	z := cards[2]
	assert.Equal(t, 50.0, z.Score)
	assert.Equal(t, 50.0, z.Metrics.AvgHealthScore)
	assert.Empty(t, z.Contracts)
}

func TestVendorService_Scorecard(t *testing.T) {
	env := newTestEnv(t)
	p := seedPortfolio(t, env)
	ctx := context.Background()
	require.NoError(t, env.contracts.Create(ctx, testutil.NewTestContract("Closed Out",
		testutil.WithVendor(p.vendorB), testutil.WithStatus(domain.ContractCompleted), testutil.WithPercentComplete(100))))

	card, err := newVendorService(env).Scorecard(ctx, p.vendorB.VendorID)
	require.NoError(t, err)
	assert.Equal(t, "Blue Ridge Builders", card.Vendor.VendorName)
	assert.Equal(t, 2, card.Metrics.TotalContracts)
	assert.Equal(t, 1, card.Metrics.ActiveContracts)
	assert.Equal(t, 1, card.Metrics.CompletedContracts)
	assert.Equal(t, 50.0, card.Metrics.OnTimeRate)
}

func TestVendorService_ScorecardNotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := newVendorService(env).Scorecard(context.Background(), "V-NONE")
	assert.True(t, errors.Is(err, repository.ErrNotFound))
}

func TestVendorService_UpdateKeepsPerformance(t *testing.T) {
	env := newTestEnv(t)
	p := seedPortfolio(t, env)
	ctx := context.Background()
	_, err := NewScoringService(env.engine, env.uow).RescoreAll(ctx)
	require.NoError(t, err)

	email := "ops@acme.example"
	city := "Dayton"
	v, err := newVendorService(env).Update(ctx, p.vendorA.VendorID, VendorChanges{ContactEmail: &email, City: &city})
	require.NoError(t, err)
	assert.Equal(t, "ops@acme.example", v.ContactEmail)

	stored, err := env.vendors.GetByID(ctx, p.vendorA.VendorID)
	require.NoError(t, err)
	assert.Equal(t, "Dayton", stored.City)
	assert.Equal(t, "Acme Paving", stored.VendorName)
	assert.Equal(t, 77.5, stored.PerformanceScore)
	assert.Equal(t, 2, stored.TotalContracts)
}

func TestVendorService_UpdateRejectsBadEdits(t *testing.T) {
	env := newTestEnv(t)
	p := seedPortfolio(t, env)
	ctx := context.Background()
	svc := newVendorService(env)

	_, err := svc.Update(ctx, p.vendorA.VendorID, VendorChanges{})
	assert.ErrorIs(t, err, ErrNothingToUpdate)

	email := "not-an-email"
	_, err = svc.Update(ctx, p.vendorA.VendorID, VendorChanges{ContactEmail: &email})
	assert.ErrorIs(t, err, importer.ErrInvalidRecord)

	city := "Akron"
	_, err = svc.Update(ctx, "V-NONE", VendorChanges{City: &city})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestVendorService_DeleteBlockedByContracts(t *testing.T) {
	env := newTestEnv(t)
	p := seedPortfolio(t, env)
	ctx := context.Background()

	err := newVendorService(env).Delete(ctx, p.vendorB.VendorID)
	require.ErrorIs(t, err, ErrVendorHasContracts)

	_, err = env.vendors.GetByID(ctx, p.vendorB.VendorID)
	assert.NoError(t, err)
}

func TestVendorService_DeleteUnreferenced(t *testing.T) {
	env := newTestEnv(t)
	seedPortfolio(t, env)
	ctx := context.Background()
	require.NoError(t, env.vendors.Create(ctx, testutil.NewTestVendor("Zephyr Electric", testutil.WithVendorID("V-Z"))))
	svc := newVendorService(env)

	require.NoError(t, svc.Delete(ctx, "V-Z"))
	_, err := env.vendors.GetByID(ctx, "V-Z")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "V-Z"), repository.ErrNotFound)
}
