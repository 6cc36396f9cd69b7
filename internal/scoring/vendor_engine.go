package scoring

import (
	"github.com/alexanderramin/contractwatch/internal/domain"
)

// adherenceThreshold is the sub-score at or above which a contract counts as
// on time (schedule) or on budget (cost).
const adherenceThreshold = 70.0

// VendorMetrics is the diagnostic bundle shown on a vendor scorecard.
type VendorMetrics struct {
	TotalContracts      int     `json:"total_contracts"`
	TotalValue          float64 `json:"total_value"`
	AvgHealthScore      float64 `json:"avg_health_score"`
	OnTimeRate          float64 `json:"on_time_rate"`
	BudgetAdherenceRate float64 `json:"budget_adherence_rate"`
	ActiveContracts     int     `json:"active_contracts"`
	CompletedContracts  int     `json:"completed_contracts"`
}

// VendorScore is the value-weighted mean of the contracts' health scores.
// Contracts without an amount weigh 1 and contracts without a health score
// count as neutral. A vendor with no contracts scores 50.
func VendorScore(contracts []*domain.Contract) float64 {
	if len(contracts) == 0 {
		return NeutralScore
	}

	var weighted, total float64
	for _, c := range contracts {
		amount := c.Current()
		if amount == 0 {
			amount = 1
		}
		weighted += c.HealthOr(NeutralScore) * amount
		total += amount
	}

	if total > 0 {
		return round1(weighted / total)
	}
	return NeutralScore
}

// ComputeVendorMetrics summarizes a vendor's contracts. The health average is
// unweighted. Empty input yields the neutral bundle.
func ComputeVendorMetrics(contracts []*domain.Contract) VendorMetrics {
	if len(contracts) == 0 {
		return VendorMetrics{AvgHealthScore: NeutralScore}
	}

	var m VendorMetrics
	var healthSum float64
	var onTime, onBudget int
	for _, c := range contracts {
		m.TotalValue += c.Current()
		healthSum += c.HealthOr(NeutralScore)
		if domain.Float64FromPtrWithDefault(NeutralScore, c.ScheduleVarianceScore) >= adherenceThreshold {
			onTime++
		}
		if domain.Float64FromPtrWithDefault(NeutralScore, c.CostVarianceScore) >= adherenceThreshold {
			onBudget++
		}
		switch c.Status {
		case domain.ContractActive:
			m.ActiveContracts++
		case domain.ContractCompleted:
			m.CompletedContracts++
		}
	}

	n := float64(len(contracts))
	m.TotalContracts = len(contracts)
	m.AvgHealthScore = round1(healthSum / n)
	m.OnTimeRate = round1(float64(onTime) / n * 100)
	m.BudgetAdherenceRate = round1(float64(onBudget) / n * 100)
	return m
}
