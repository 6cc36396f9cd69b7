package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/contractwatch/internal/benchmark"
	"github.com/alexanderramin/contractwatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBenchmarkService(env *testEnv) BenchmarkService {
	engine := benchmark.NewEngine(benchmark.DefaultTables(), benchmark.WithNow(func() time.Time { return testNow }))
	return NewBenchmarkService(env.contracts, env.payments, env.vendors, engine)
}

func TestBenchmarkService_EstimatesFromRecords(t *testing.T) {
	env := newTestEnv(t)
	seedPortfolio(t, env)

	report, err := newBenchmarkService(env).Evaluate(context.Background(), nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"electronic_po_processing",
		"on_contract_spend",
		"pre_approved_spend",
		"spend_with_primary_suppliers",
		"structured_spend",
	}, report.Estimated)
	assert.Equal(t, 100.0, report.Values["structured_spend"])
	assert.Equal(t, 0.0, report.Values["pre_approved_spend"])
	assert.InDelta(t, 60.0, report.Values["spend_with_primary_suppliers"], 1e-9)
	assert.Equal(t, testNow, report.Health.CalculatedAt)
	assert.Len(t, report.Health.CategoryScores, 8)
	assert.Nil(t, report.Health.PeerComparison)
}

func TestBenchmarkService_OverridesReplaceEstimates(t *testing.T) {
	env := newTestEnv(t)
	p := seedPortfolio(t, env)
	ctx := context.Background()
	require.NoError(t, env.payments.Create(ctx, testutil.NewTestPayment(p.healthy.ContractID, 100, "ACH")))

	report, err := newBenchmarkService(env).Evaluate(ctx,
		map[string]float64{"structured_spend": 50, "contract_mgmt_cycle_time": 5},
		[]float64{95, 40},
	)
	require.NoError(t, err)

	assert.Equal(t, 50.0, report.Values["structured_spend"])
	assert.Equal(t, 5.0, report.Values["contract_mgmt_cycle_time"])
	assert.Equal(t, 100.0, report.Values["invoices_paid_digitally"])
	assert.NotContains(t, report.Estimated, "structured_spend")
	assert.Contains(t, report.Estimated, "invoices_paid_digitally")
	require.NotNil(t, report.Health.PeerComparison)
	assert.Equal(t, 3, report.Health.PeerComparison.TotalPeers)
}

func TestBenchmarkService_UnknownOverride(t *testing.T) {
	env := newTestEnv(t)
	_, err := newBenchmarkService(env).Evaluate(context.Background(), map[string]float64{"made_up": 1}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, benchmark.ErrUnknownKPI))
}

func TestBenchmarkService_EmptyStoreGradesOverridesOnly(t *testing.T) {
	env := newTestEnv(t)
	report, err := newBenchmarkService(env).Evaluate(context.Background(), map[string]float64{"structured_spend": 55.3}, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Estimated)
	assert.Len(t, report.Values, 1)
}

func TestBenchmarkService_Catalog(t *testing.T) {
	env := newTestEnv(t)
	summary := newBenchmarkService(env).Catalog()
	assert.Equal(t, 19, summary.TotalKPIs)
	assert.Len(t, summary.Categories, 8)
}
