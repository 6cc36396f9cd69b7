package scoring

import (
	"math"
	"time"

	"github.com/alexanderramin/contractwatch/internal/config"
	"github.com/alexanderramin/contractwatch/internal/domain"
)

// NeutralScore is returned whenever a sub-score has no usable baseline.
const NeutralScore = 50.0

// Compliance deductions.
const (
	insuranceDeduction     = 20.0
	bondDeduction          = 15.0
	boardApprovalDeduction = 25.0
	soleSourceDeduction    = 15.0
)

// Performance blend.
const (
	latePenalty     = 0.3
	overduePenalty  = 0.5
	milestoneWeight = 0.7
	progressWeight  = 0.3
)

// ContractEngine computes the four contract sub-scores, the weighted health
// score and the risk tier. It holds only read-only configuration and is safe
// for concurrent use.
type ContractEngine struct {
	cfg config.Scoring
}

func NewContractEngine(cfg config.Scoring) *ContractEngine {
	return &ContractEngine{cfg: cfg}
}

// CostVarianceScore grades cost growth over the original amount.
func (e *ContractEngine) CostVarianceScore(c *domain.Contract) float64 {
	pct, ok := CostVariancePct(c)
	if !ok {
		return NeutralScore
	}
	switch {
	case pct <= 0:
		return 100
	case pct <= 5:
		return 95
	case pct <= 10:
		return 85
	case pct <= 15:
		return 70
	case pct <= 20:
		return 55
	case pct <= 30:
		return 40
	default:
		return math.Max(20, 40-(pct-30))
	}
}

// ScheduleVarianceScore grades end-date extension relative to the original duration.
func (e *ContractEngine) ScheduleVarianceScore(c *domain.Contract) float64 {
	pct, ok := ScheduleExtensionPct(c)
	if !ok {
		return NeutralScore
	}
	switch {
	case pct <= 0:
		return 100
	case pct <= 5:
		return 90
	case pct <= 10:
		return 80
	case pct <= 20:
		return 65
	case pct <= 30:
		return 50
	default:
		return math.Max(20, 50-(pct-30))
	}
}

// PerformanceScore blends milestone discipline with reported percent complete.
func (e *ContractEngine) PerformanceScore(c *domain.Contract, milestones []domain.Milestone) float64 {
	base := NeutralScore

	if total := len(milestones); total > 0 {
		var onTime, late, overdue int
		for i := range milestones {
			switch milestones[i].Timing() {
			case domain.TimingOnTime:
				onTime++
			case domain.TimingLate:
				late++
			case domain.TimingOverdue:
				overdue++
			}
		}
		n := float64(total)
		onTimePct := float64(onTime) / n * 100
		latePct := float64(late) / n * 100
		overduePct := float64(overdue) / n * 100

		base = clamp(onTimePct-latePct*latePenalty-overduePct*overduePenalty, 0, 100)
	}

	return base*milestoneWeight + c.Progress()*progressWeight
}

// ComplianceScore starts at 100 and applies independent, additive deductions.
func (e *ContractEngine) ComplianceScore(c *domain.Contract) float64 {
	score := 100.0

	if c.RequiresInsurance && !c.InsuranceVerified {
		score -= insuranceDeduction
	}
	if c.RequiresBond && !c.BondVerified {
		score -= bondDeduction
	}
	if c.AwardDate != "" && c.BoardApprovalDate == "" && c.Current() > e.cfg.BoardApprovalThreshold {
		score -= boardApprovalDeduction
	}
	if c.IsSoleSource && c.Justification == "" {
		score -= soleSourceDeduction
	}

	return math.Max(0, score)
}

// OverallHealth is the weighted sum of the four sub-scores, rounded to one decimal.
func (e *ContractEngine) OverallHealth(c *domain.Contract, milestones []domain.Milestone) float64 {
	w := e.cfg.Weights
	health := e.CostVarianceScore(c)*w.Cost +
		e.ScheduleVarianceScore(c)*w.Schedule +
		e.PerformanceScore(c, milestones)*w.Performance +
		e.ComplianceScore(c)*w.Compliance
	return round1(health)
}

// RiskLevel maps a health score onto its tier. Each band includes its lower
// bound and excludes its upper bound.
func (e *ContractEngine) RiskLevel(health float64) domain.RiskLevel {
	switch {
	case health < e.cfg.Risk.Critical:
		return domain.RiskCritical
	case health < e.cfg.Risk.High:
		return domain.RiskHigh
	case health < e.cfg.Risk.Medium:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// ScoreContract overwrites every derived field of c from its raw inputs and
// returns c. Previous derived values are never read.
func (e *ContractEngine) ScoreContract(c *domain.Contract, milestones []domain.Milestone) *domain.Contract {
	cost := e.CostVarianceScore(c)
	schedule := e.ScheduleVarianceScore(c)
	performance := e.PerformanceScore(c, milestones)
	compliance := e.ComplianceScore(c)
	health := e.OverallHealth(c, milestones)

	c.CostVarianceScore = &cost
	c.ScheduleVarianceScore = &schedule
	c.PerformanceScore = &performance
	c.ComplianceScore = &compliance
	c.OverallHealthScore = &health
	c.RiskLevel = e.RiskLevel(health)
	return c
}

// BatchScore scores every contract in place. milestones is keyed by contract
// ID; a nil map scores every contract without milestone data.
func (e *ContractEngine) BatchScore(contracts []*domain.Contract, milestones map[string][]domain.Milestone) []*domain.Contract {
	for _, c := range contracts {
		e.ScoreContract(c, milestones[c.ContractID])
	}
	return contracts
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// daysBetween counts whole calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(math.Floor(b.Sub(a).Hours() / 24))
}
