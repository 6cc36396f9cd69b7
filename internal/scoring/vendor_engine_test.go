package scoring

import (
	"testing"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/stretchr/testify/assert"
)

func scored(value, health float64) *domain.Contract {
	return &domain.Contract{
		CurrentAmount:      domain.Float64Ptr(value),
		OverallHealthScore: domain.Float64Ptr(health),
	}
}

func TestVendorScore_ValueWeighted(t *testing.T) {
	got := VendorScore([]*domain.Contract{scored(100, 80), scored(900, 40)})
	assert.Equal(t, 44.0, got)
}

func TestVendorScore_NoContracts(t *testing.T) {
	assert.Equal(t, 50.0, VendorScore(nil))
}

func TestVendorScore_MissingAmountWeighsOne(t *testing.T) {
	contracts := []*domain.Contract{
		{OverallHealthScore: domain.Float64Ptr(90)},
		{CurrentAmount: domain.Float64Ptr(0), OverallHealthScore: domain.Float64Ptr(30)},
	}
	assert.Equal(t, 60.0, VendorScore(contracts))
}

func TestVendorScore_MissingHealthIsNeutral(t *testing.T) {
	contracts := []*domain.Contract{
		{CurrentAmount: domain.Float64Ptr(100)},
		scored(100, 70),
	}
	assert.Equal(t, 60.0, VendorScore(contracts))
}

func TestComputeVendorMetrics(t *testing.T) {
	a := scored(100, 80)
	a.Status = domain.ContractActive
	a.ScheduleVarianceScore = domain.Float64Ptr(90)
	a.CostVarianceScore = domain.Float64Ptr(70)

	b := scored(900, 40)
	b.Status = domain.ContractCompleted
	b.ScheduleVarianceScore = domain.Float64Ptr(65)
	b.CostVarianceScore = domain.Float64Ptr(40)

	c := scored(0, 50)
	c.Status = domain.ContractOnHold

	m := ComputeVendorMetrics([]*domain.Contract{a, b, c})

	assert.Equal(t, 3, m.TotalContracts)
	assert.Equal(t, 1000.0, m.TotalValue)
	assert.Equal(t, 56.7, m.AvgHealthScore)
	assert.Equal(t, 33.3, m.OnTimeRate)
	assert.Equal(t, 33.3, m.BudgetAdherenceRate)
	assert.Equal(t, 1, m.ActiveContracts)
	assert.Equal(t, 1, m.CompletedContracts)
}

func TestComputeVendorMetrics_UnweightedAverageDiffersFromScore(t *testing.T) {
	contracts := []*domain.Contract{scored(100, 80), scored(900, 40)}
	assert.Equal(t, 60.0, ComputeVendorMetrics(contracts).AvgHealthScore)
	assert.Equal(t, 44.0, VendorScore(contracts))
}

func TestComputeVendorMetrics_Empty(t *testing.T) {
	m := ComputeVendorMetrics(nil)
	assert.Equal(t, 0, m.TotalContracts)
	assert.Equal(t, 0.0, m.TotalValue)
	assert.Equal(t, 50.0, m.AvgHealthScore)
	assert.Equal(t, 0.0, m.OnTimeRate)
	assert.Equal(t, 0.0, m.BudgetAdherenceRate)
}
