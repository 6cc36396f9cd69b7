package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/contractwatch/internal/config"
	"github.com/alexanderramin/contractwatch/internal/db"
	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/scoring"
	"github.com/alexanderramin/contractwatch/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testNow keeps every fixture end date well outside the expiring window.
var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	db           *sql.DB
	contracts    *repository.SQLiteContractRepo
	vendors      *repository.SQLiteVendorRepo
	milestones   *repository.SQLiteMilestoneRepo
	payments     *repository.SQLitePaymentRepo
	changeOrders *repository.SQLiteChangeOrderRepo
	issues       *repository.SQLiteIssueRepo
	engine       *scoring.ContractEngine
	generator    *scoring.AlertGenerator
	uow          db.UnitOfWork
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	cfg := config.DefaultScoring()
	return &testEnv{
		db:           database,
		contracts:    repository.NewSQLiteContractRepo(database),
		vendors:      repository.NewSQLiteVendorRepo(database),
		milestones:   repository.NewSQLiteMilestoneRepo(database),
		payments:     repository.NewSQLitePaymentRepo(database),
		changeOrders: repository.NewSQLiteChangeOrderRepo(database),
		issues:       repository.NewSQLiteIssueRepo(database),
		engine:       scoring.NewContractEngine(cfg),
		generator:    scoring.NewAlertGenerator(scoring.DefaultAlertRules(cfg), scoring.FixedClock(testNow), nil),
		uow:          db.NewSQLiteUnitOfWork(database),
	}
}

// portfolio is the seeded data set shared by the service tests.
//
//	healthy   vendor A, on budget and on schedule          health 87.5 Low
//	overrun   vendor A, 25% over budget                    health 69.5 Medium
//	troubled  vendor B, 50% over, 181 days late, 3 COs     health 46.1 High
type portfolio struct {
	vendorA, vendorB           *domain.Vendor
	healthy, overrun, troubled *domain.Contract
}

func seedPortfolio(t *testing.T, env *testEnv) *portfolio {
	t.Helper()
	ctx := context.Background()
	updated := testNow.Add(-24 * time.Hour)

	p := &portfolio{
		vendorA: testutil.NewTestVendor("Acme Paving", testutil.WithVendorID("V-A")),
		vendorB: testutil.NewTestVendor("Blue Ridge Builders", testutil.WithVendorID("V-B")),
	}
	p.healthy = testutil.NewTestContract("Road Resurfacing",
		testutil.WithContractID("C1"), testutil.WithVendor(p.vendorA), testutil.WithUpdatedAt(updated))
	p.overrun = testutil.NewTestContract("Bridge Repair",
		testutil.WithContractID("C2"), testutil.WithVendor(p.vendorA), testutil.WithUpdatedAt(updated),
		testutil.WithAmounts(100000, 125000))
	p.troubled = testutil.NewTestContract("Transit Center",
		testutil.WithContractID("C3"), testutil.WithVendor(p.vendorB), testutil.WithUpdatedAt(updated),
		testutil.WithAmounts(100000, 150000),
		testutil.WithDates("2025-01-01", "2025-12-31", "2026-06-30"),
		testutil.WithChangeOrderCount(3))

	require.NoError(t, env.vendors.Create(ctx, p.vendorA))
	require.NoError(t, env.vendors.Create(ctx, p.vendorB))
	for _, c := range []*domain.Contract{p.healthy, p.overrun, p.troubled} {
		require.NoError(t, env.contracts.Create(ctx, c))
	}
	return p
}
