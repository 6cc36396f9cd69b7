package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/contractwatch/internal/domain"
)

func estContract(id, vendor string, amount float64, method, board, sol, award string) *domain.Contract {
	return &domain.Contract{
		ContractID:        id,
		VendorID:          vendor,
		CurrentAmount:     domain.Float64Ptr(amount),
		ProcurementMethod: method,
		BoardApprovalDate: board,
		SolicitationDate:  sol,
		AwardDate:         award,
	}
}

func TestEstimateKPIs_Empty(t *testing.T) {
	assert.Empty(t, EstimateKPIs(nil, nil, nil))
}

func TestEstimateKPIs_FromRecords(t *testing.T) {
	contracts := []*domain.Contract{
		estContract("c1", "v1", 600000, "RFP", "2024-01-10", "2024-01-01", "2024-01-21"),
		estContract("c2", "v2", 300000, "Sole Source", "", "2024-02-01", "2024-02-11"),
		estContract("c3", "v3", 100000, "Competitive Bid", "", "2024-03-05", "bad"),
		estContract("c4", "v2", 0, "", "2024-05-01", "2024-06-01", "2024-05-01"),
	}
	vendors := []*domain.Vendor{{VendorID: "v1"}, {VendorID: "v2"}, {VendorID: "v3"}}
	payments := []domain.Payment{
		{PaymentType: "ACH"},
		{PaymentType: "Check"},
		{PaymentType: "Wire"},
		{PaymentType: "EFT"},
	}

	est := EstimateKPIs(contracts, payments, vendors)

	assert.Equal(t, 75.0, est["on_contract_spend"])
	assert.Equal(t, 85.0, est["electronic_po_processing"])
	assert.Equal(t, 50.0, est["structured_spend"])
	assert.Equal(t, 50.0, est["pre_approved_spend"])
	// c3 has an unparseable award date and c4 awards before solicitation.
	assert.Equal(t, 15.0, est["contract_mgmt_cycle_time"])
	// three vendors, so only the single largest counts as primary
	assert.Equal(t, 60.0, est["spend_with_primary_suppliers"])
	assert.Equal(t, 75.0, est["invoices_paid_digitally"])

	_, err := newEngine().HealthScore(est, nil)
	require.NoError(t, err)
}

func TestEstimateKPIs_OmitsUnsupported(t *testing.T) {
	contracts := []*domain.Contract{estContract("c1", "v1", 1000, "RFQ", "", "", "")}

	est := EstimateKPIs(contracts, nil, nil)

	assert.Equal(t, 100.0, est["structured_spend"])
	assert.NotContains(t, est, "contract_mgmt_cycle_time")
	assert.NotContains(t, est, "spend_with_primary_suppliers")
	assert.NotContains(t, est, "invoices_paid_digitally")
}

func TestEstimateKPIs_PrimarySupplierNeedsPositiveTotal(t *testing.T) {
	contracts := []*domain.Contract{estContract("c1", "v1", 0, "", "", "", "")}
	vendors := []*domain.Vendor{{VendorID: "v1"}}

	est := EstimateKPIs(contracts, nil, vendors)

	assert.NotContains(t, est, "spend_with_primary_suppliers")
}
