package scoring

import (
	"testing"

	"github.com/alexanderramin/contractwatch/internal/config"
	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine() *ContractEngine {
	return NewContractEngine(config.DefaultScoring())
}

func amounts(original, current float64) *domain.Contract {
	return &domain.Contract{
		ContractID:     "C-1",
		OriginalAmount: domain.Float64Ptr(original),
		CurrentAmount:  domain.Float64Ptr(current),
	}
}

func TestCostVarianceScore_Bands(t *testing.T) {
	e := newEngine()
	cases := []struct {
		current float64
		want    float64
	}{
		{90000, 100},
		{100000, 100},
		{105000, 95},
		{110000, 85},
		{112000, 70},
		{115000, 70},
		{120000, 55},
		{125000, 40},
		{130000, 40},
		{135000, 35},
		{145000, 25},
		{150000, 20},
		{300000, 20},
	}
	for _, tc := range cases {
		got := e.CostVarianceScore(amounts(100000, tc.current))
		assert.InDelta(t, tc.want, got, 1e-9, "current=%v", tc.current)
	}
}

func TestCostVarianceScore_NoBaselineIsNeutral(t *testing.T) {
	e := newEngine()
	for _, original := range []float64{0, -10, -100000} {
		assert.Equal(t, 50.0, e.CostVarianceScore(amounts(original, 250000)), "original=%v", original)
	}
	assert.Equal(t, 50.0, e.CostVarianceScore(&domain.Contract{}))
}

func TestCostVarianceScore_MonotoneNonIncreasing(t *testing.T) {
	e := newEngine()
	prev := e.CostVarianceScore(amounts(100000, 50000))
	for current := 50000.0; current <= 400000; current += 250 {
		got := e.CostVarianceScore(amounts(100000, current))
		require.LessOrEqual(t, got, prev, "score rose at current=%v", current)
		prev = got
	}
}

func TestScheduleVarianceScore_Example(t *testing.T) {
	e := newEngine()
	c := &domain.Contract{
		StartDate:       "2024-01-01",
		OriginalEndDate: "2024-07-01",
		CurrentEndDate:  "2024-08-15",
	}
	pct, ok := ScheduleExtensionPct(c)
	require.True(t, ok)
	assert.InDelta(t, 24.7, pct, 0.1)
	assert.Equal(t, 50.0, e.ScheduleVarianceScore(c))
}

func TestScheduleVarianceScore_Bands(t *testing.T) {
	e := newEngine()
	// 100-day baseline: 2024-01-01 .. 2024-04-10.
	cases := []struct {
		currentEnd string
		want       float64
	}{
		{"", 100},
		{"2024-04-01", 100},
		{"2024-04-15", 90},
		{"2024-04-20", 80},
		{"2024-04-30", 65},
		{"2024-05-10", 50},
		{"2024-05-20", 40},
		{"2024-12-31", 20},
	}
	for _, tc := range cases {
		c := &domain.Contract{StartDate: "2024-01-01", OriginalEndDate: "2024-04-10", CurrentEndDate: tc.currentEnd}
		assert.Equal(t, tc.want, e.ScheduleVarianceScore(c), "current_end=%q", tc.currentEnd)
	}
}

func TestScheduleVarianceScore_NeutralCases(t *testing.T) {
	e := newEngine()
	cases := map[string]*domain.Contract{
		"no start":          {OriginalEndDate: "2024-07-01"},
		"no original end":   {StartDate: "2024-01-01", CurrentEndDate: "2024-08-01"},
		"malformed start":   {StartDate: "01/01/2024", OriginalEndDate: "2024-07-01"},
		"malformed end":     {StartDate: "2024-01-01", OriginalEndDate: "2024-07-01", CurrentEndDate: "TBD"},
		"zero duration":     {StartDate: "2024-07-01", OriginalEndDate: "2024-07-01"},
		"negative duration": {StartDate: "2024-08-01", OriginalEndDate: "2024-07-01"},
	}
	for name, c := range cases {
		assert.Equal(t, 50.0, e.ScheduleVarianceScore(c), name)
	}
}

func TestPerformanceScore_NoMilestones(t *testing.T) {
	e := newEngine()
	assert.InDelta(t, 35.0, e.PerformanceScore(&domain.Contract{}, nil), 1e-9)

	c := &domain.Contract{PercentComplete: domain.Float64Ptr(100)}
	assert.InDelta(t, 65.0, e.PerformanceScore(c, nil), 1e-9)
}

func TestPerformanceScore_MixedMilestones(t *testing.T) {
	e := newEngine()
	c := &domain.Contract{PercentComplete: domain.Float64Ptr(40)}
	milestones := []domain.Milestone{
		{Status: domain.MilestoneCompleted, DueDate: "2024-02-01", CompletedDate: "2024-01-30"},
		{Status: domain.MilestoneCompleted},
		{Status: domain.MilestoneCompleted, DueDate: "2024-03-01", CompletedDate: "2024-03-10"},
		{Status: domain.MilestoneOverdue, DueDate: "2024-04-01"},
	}
	// on_time 50, late 25, overdue 25: base = 50 - 7.5 - 12.5 = 30.
	assert.InDelta(t, 30*0.7+40*0.3, e.PerformanceScore(c, milestones), 1e-9)
}

func TestPerformanceScore_BaseClampedAtZero(t *testing.T) {
	e := newEngine()
	milestones := []domain.Milestone{
		{Status: domain.MilestoneOverdue},
		{Status: domain.MilestoneOverdue},
	}
	assert.InDelta(t, 0.0, e.PerformanceScore(&domain.Contract{}, milestones), 1e-9)
}

func TestPerformanceScore_PendingMilestonesCountAgainstOnTime(t *testing.T) {
	e := newEngine()
	milestones := []domain.Milestone{
		{Status: domain.MilestoneCompleted},
		{Status: domain.MilestonePending},
	}
	assert.InDelta(t, 35.0, e.PerformanceScore(&domain.Contract{}, milestones), 1e-9)
}

func TestComplianceScore(t *testing.T) {
	e := newEngine()

	t.Run("insurance only", func(t *testing.T) {
		c := &domain.Contract{RequiresInsurance: true}
		assert.Equal(t, 80.0, e.ComplianceScore(c))
	})
	t.Run("verified insurance and bond", func(t *testing.T) {
		c := &domain.Contract{RequiresInsurance: true, InsuranceVerified: true, RequiresBond: true, BondVerified: true}
		assert.Equal(t, 100.0, e.ComplianceScore(c))
	})
	t.Run("bond missing", func(t *testing.T) {
		assert.Equal(t, 85.0, e.ComplianceScore(&domain.Contract{RequiresBond: true}))
	})
	t.Run("large award without board approval", func(t *testing.T) {
		c := amounts(60000, 60000)
		c.AwardDate = "2024-01-15"
		assert.Equal(t, 75.0, e.ComplianceScore(c))

		c.BoardApprovalDate = "2024-01-10"
		assert.Equal(t, 100.0, e.ComplianceScore(c))
	})
	t.Run("small award without board approval", func(t *testing.T) {
		c := amounts(50000, 50000)
		c.AwardDate = "2024-01-15"
		assert.Equal(t, 100.0, e.ComplianceScore(c))
	})
	t.Run("sole source", func(t *testing.T) {
		c := &domain.Contract{IsSoleSource: true}
		assert.Equal(t, 85.0, e.ComplianceScore(c))
		c.Justification = "Only licensed provider"
		assert.Equal(t, 100.0, e.ComplianceScore(c))
	})
	t.Run("all deductions are additive", func(t *testing.T) {
		c := amounts(100000, 100000)
		c.RequiresInsurance = true
		c.RequiresBond = true
		c.AwardDate = "2024-01-15"
		c.IsSoleSource = true
		assert.Equal(t, 25.0, e.ComplianceScore(c))
	})
}

func TestOverallHealth_WeightedSum(t *testing.T) {
	e := newEngine()
	c := amounts(100000, 112000)
	c.PercentComplete = domain.Float64Ptr(50)
	// cost 70, schedule 50, performance 50, compliance 100.
	assert.InDelta(t, 66.0, e.OverallHealth(c, nil), 1e-9)
}

func TestOverallHealth_RoundedToOneDecimal(t *testing.T) {
	e := newEngine()
	c := amounts(100000, 100000)
	c.PercentComplete = domain.Float64Ptr(33)
	// 30 + 12.5 + 44.9*0.25 + 20 = 73.725
	assert.InDelta(t, 73.7, e.OverallHealth(c, nil), 1e-9)
}

func TestRiskLevel_Partition(t *testing.T) {
	e := newEngine()
	cases := []struct {
		score float64
		want  domain.RiskLevel
	}{
		{0, domain.RiskCritical},
		{29.9, domain.RiskCritical},
		{30, domain.RiskHigh},
		{49.9, domain.RiskHigh},
		{50, domain.RiskMedium},
		{69.9, domain.RiskMedium},
		{70, domain.RiskLow},
		{100, domain.RiskLow},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, e.RiskLevel(tc.score), "score=%v", tc.score)
	}
}

func TestRiskLevel_EveryScoreHasExactlyOneTier(t *testing.T) {
	e := newEngine()
	order := map[domain.RiskLevel]int{domain.RiskCritical: 0, domain.RiskHigh: 1, domain.RiskMedium: 2, domain.RiskLow: 3}
	prev := 0
	for s := 0.0; s <= 100; s += 0.1 {
		rank, ok := order[e.RiskLevel(s)]
		require.True(t, ok)
		require.GreaterOrEqual(t, rank, prev, "tier went down at %v", s)
		prev = rank
	}
}

func TestScoreContract_WritesDerivedFields(t *testing.T) {
	e := newEngine()
	c := amounts(100000, 125000)
	c.StartDate = "2024-01-01"
	c.OriginalEndDate = "2024-07-01"
	c.RequiresInsurance = true

	e.ScoreContract(c, nil)

	require.NotNil(t, c.CostVarianceScore)
	require.NotNil(t, c.OverallHealthScore)
	assert.Equal(t, 40.0, *c.CostVarianceScore)
	assert.Equal(t, 100.0, *c.ScheduleVarianceScore)
	assert.InDelta(t, 35.0, *c.PerformanceScore, 1e-9)
	assert.Equal(t, 80.0, *c.ComplianceScore)
	assert.Equal(t, e.RiskLevel(*c.OverallHealthScore), c.RiskLevel)
}

func TestScoreContract_Idempotent(t *testing.T) {
	e := newEngine()
	c := amounts(100000, 140000)
	c.StartDate = "2024-01-01"
	c.OriginalEndDate = "2024-06-30"
	c.CurrentEndDate = "2024-09-30"
	c.PercentComplete = domain.Float64Ptr(65)
	c.IsSoleSource = true
	milestones := []domain.Milestone{{Status: domain.MilestoneCompleted}, {Status: domain.MilestoneOverdue}}

	first := *e.ScoreContract(c, milestones)
	second := *e.ScoreContract(c, milestones)

	assert.Equal(t, *first.CostVarianceScore, *second.CostVarianceScore)
	assert.Equal(t, *first.ScheduleVarianceScore, *second.ScheduleVarianceScore)
	assert.Equal(t, *first.PerformanceScore, *second.PerformanceScore)
	assert.Equal(t, *first.ComplianceScore, *second.ComplianceScore)
	assert.Equal(t, *first.OverallHealthScore, *second.OverallHealthScore)
	assert.Equal(t, first.RiskLevel, second.RiskLevel)
}

func TestScoreContract_IgnoresStaleDerivedValues(t *testing.T) {
	e := newEngine()
	fresh := amounts(100000, 100000)
	stale := amounts(100000, 100000)
	stale.OverallHealthScore = domain.Float64Ptr(3)
	stale.CostVarianceScore = domain.Float64Ptr(0)
	stale.RiskLevel = domain.RiskCritical

	e.ScoreContract(fresh, nil)
	e.ScoreContract(stale, nil)

	assert.Equal(t, *fresh.OverallHealthScore, *stale.OverallHealthScore)
	assert.Equal(t, fresh.RiskLevel, stale.RiskLevel)
}

func TestBatchScore(t *testing.T) {
	e := newEngine()
	a := amounts(100000, 100000)
	a.ContractID = "A"
	b := amounts(100000, 130000)
	b.ContractID = "B"

	milestones := map[string][]domain.Milestone{
		"A": {{Status: domain.MilestoneCompleted}},
	}
	out := e.BatchScore([]*domain.Contract{a, b}, milestones)

	require.Len(t, out, 2)
	assert.InDelta(t, 70.0, *a.PerformanceScore, 1e-9)
	assert.InDelta(t, 35.0, *b.PerformanceScore, 1e-9)
	assert.Equal(t, 40.0, *b.CostVarianceScore)

	single := amounts(100000, 130000)
	e.ScoreContract(single, nil)
	assert.Equal(t, *single.OverallHealthScore, *b.OverallHealthScore)
}

func TestBatchScore_Empty(t *testing.T) {
	assert.Empty(t, newEngine().BatchScore(nil, nil))
}

func TestRiskLevel_CustomThresholds(t *testing.T) {
	cfg := config.DefaultScoring()
	cfg.Risk = config.RiskThresholds{Critical: 20, High: 40, Medium: 60}
	e := NewContractEngine(cfg)
	assert.Equal(t, domain.RiskHigh, e.RiskLevel(25))
	assert.Equal(t, domain.RiskLow, e.RiskLevel(60))
}
