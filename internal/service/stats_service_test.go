package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStatsService(env *testEnv) StatsService {
	return NewStatsService(env.contracts, env.vendors, env.milestones, env.issues, env.changeOrders, env.engine)
}

func TestStatsService_Overview(t *testing.T) {
	env := newTestEnv(t)
	p := seedPortfolio(t, env)
	ctx := context.Background()

	require.NoError(t, env.contracts.Create(ctx, testutil.NewTestContract("Finished",
		testutil.WithStatus(domain.ContractCompleted), testutil.WithTotalPaid(40000))))
	require.NoError(t, env.changeOrders.InsertHistorical(ctx, testutil.NewTestChangeOrder(p.troubled.ContractID, 50000)))
	for _, sev := range []domain.Severity{domain.SeverityCritical, domain.SeverityHigh, domain.SeverityLow} {
		require.NoError(t, env.issues.Create(ctx, &domain.Issue{ContractID: p.troubled.ContractID, IssueType: "manual", Severity: sev, Title: "x"}))
	}
	require.NoError(t, env.issues.Create(ctx, &domain.Issue{
		ContractID: p.troubled.ContractID, IssueType: "closed", Severity: domain.SeverityCritical,
		Title: "done", Status: domain.IssueResolved,
	}))

	o, err := newStatsService(env).Overview(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, o.TotalContracts)
	assert.Equal(t, 3, o.ActiveContracts)
	assert.Equal(t, 475000.0, o.TotalContractValue)
	assert.Equal(t, 40000.0, o.TotalPaid)
	assert.Equal(t, 2, o.TotalVendors)
	assert.Equal(t, 3, o.OpenIssues)
	assert.Equal(t, 2, o.CriticalIssues)
	assert.Equal(t, 1, o.TotalChangeOrders)
	assert.Equal(t, 50000.0, o.TotalChangeOrderValue)
	assert.Equal(t, map[domain.RiskLevel]int{
		domain.RiskCritical: 0,
		domain.RiskHigh:     1,
		domain.RiskMedium:   1,
		domain.RiskLow:      2,
	}, o.RiskDistribution)
	// (87.5 + 69.5 + 46.1 + 87.5) / 4
	assert.Equal(t, 72.7, o.AvgHealthScore)
}

func TestStatsService_EmptyStore(t *testing.T) {
	env := newTestEnv(t)
	o, err := newStatsService(env).Overview(context.Background())
	require.NoError(t, err)
	assert.Zero(t, o.TotalContracts)
	assert.Zero(t, o.AvgHealthScore)
	assert.Len(t, o.RiskDistribution, 4)
}
