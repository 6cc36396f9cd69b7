package scoring

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/alexanderramin/contractwatch/internal/config"
	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/stretchr/testify/assert"
)

var milestoneStatuses = []domain.MilestoneStatus{
	domain.MilestonePending, domain.MilestoneInProgress, domain.MilestoneCompleted,
	domain.MilestoneOverdue, domain.MilestoneDelayed,
}

func randomContract(rng *rand.Rand, i int) (*domain.Contract, []domain.Milestone) {
	day := func(offset int) string {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset).Format("2006-01-02")
	}
	c := &domain.Contract{
		ContractID:        fmt.Sprintf("c-%d", i),
		Status:            domain.ContractActive,
		RequiresInsurance: rng.Intn(2) == 1,
		InsuranceVerified: rng.Intn(2) == 1,
		RequiresBond:      rng.Intn(2) == 1,
		BondVerified:      rng.Intn(2) == 1,
		IsSoleSource:      rng.Intn(3) == 0,
	}
	if rng.Intn(5) > 0 {
		original := float64(rng.Intn(500000))
		current := original * (0.8 + rng.Float64()*1.2)
		c.OriginalAmount, c.CurrentAmount = &original, &current
	}
	if rng.Intn(4) > 0 {
		c.StartDate = day(0)
		c.OriginalEndDate = day(rng.Intn(400) - 20)
		c.CurrentEndDate = day(rng.Intn(700) - 20)
	}
	if rng.Intn(2) == 1 {
		pct := rng.Float64() * 100
		c.PercentComplete = &pct
	}
	if rng.Intn(3) == 0 {
		c.AwardDate = day(-30)
	}

	milestones := make([]domain.Milestone, rng.Intn(6))
	for j := range milestones {
		milestones[j] = domain.Milestone{
			ContractID:    c.ContractID,
			Status:        milestoneStatuses[rng.Intn(len(milestoneStatuses))],
			DueDate:       day(rng.Intn(200)),
			CompletedDate: day(rng.Intn(220)),
		}
	}
	return c, milestones
}

// TestScoreContract_Invariants checks the sub-score and tier invariants over
// randomized contracts.
func TestScoreContract_Invariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := NewContractEngine(config.DefaultScoring())

	for trial := 0; trial < 500; trial++ {
		c, ms := randomContract(rng, trial)
		e.ScoreContract(c, ms)

		// Invariant 1: every sub-score and the health score lie in [0, 100]
		for name, v := range map[string]*float64{
			"cost": c.CostVarianceScore, "schedule": c.ScheduleVarianceScore,
			"performance": c.PerformanceScore, "compliance": c.ComplianceScore,
			"health": c.OverallHealthScore,
		} {
			assert.GreaterOrEqual(t, *v, 0.0, "trial %d: %s below 0", trial, name)
			assert.LessOrEqual(t, *v, 100.0, "trial %d: %s above 100", trial, name)
		}

		// Invariant 2: the stored tier is the tier of the stored health score
		assert.Equal(t, e.RiskLevel(*c.OverallHealthScore), c.RiskLevel, "trial %d", trial)

		// Invariant 3: rescoring is idempotent
		health, risk := *c.OverallHealthScore, c.RiskLevel
		e.ScoreContract(c, ms)
		assert.Equal(t, health, *c.OverallHealthScore, "trial %d: rescoring changed health", trial)
		assert.Equal(t, risk, c.RiskLevel, "trial %d", trial)

		// Invariant 4: no baseline means a neutral cost score
		if c.Original() <= 0 {
			assert.Equal(t, NeutralScore, *c.CostVarianceScore, "trial %d", trial)
		}
	}
}

// TestVendorScore_BoundedByContractHealth checks that a value-weighted mean
// never leaves the range of its inputs.
func TestVendorScore_BoundedByContractHealth(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 200; trial++ {
		n := rng.Intn(6) + 1
		contracts := make([]*domain.Contract, n)
		lo, hi := 100.0, 0.0
		for i := range contracts {
			health := float64(rng.Intn(1001)) / 10
			amount := float64(rng.Intn(100000))
			contracts[i] = &domain.Contract{CurrentAmount: &amount, OverallHealthScore: &health}
			lo, hi = min(lo, health), max(hi, health)
		}

		score := VendorScore(contracts)
		assert.GreaterOrEqual(t, score, lo-0.05, "trial %d", trial)
		assert.LessOrEqual(t, score, hi+0.05, "trial %d", trial)
	}
}
