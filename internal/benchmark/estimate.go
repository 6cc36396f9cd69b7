package benchmark

import (
	"sort"

	"github.com/alexanderramin/contractwatch/internal/domain"
)

// Placeholder estimates for KPIs the record store cannot observe directly.
const (
	assumedOnContractSpend  = 75.0
	assumedElectronicPORate = 85.0
)

// The top 1/primarySupplierDivisor of vendors by spend count as primary suppliers.
const primarySupplierDivisor = 5

// EstimateKPIs derives KPI values from contract, payment and vendor records.
// KPIs with no supporting data are omitted. No contracts yields an empty map.
func EstimateKPIs(contracts []*domain.Contract, payments []domain.Payment, vendors []*domain.Vendor) map[string]float64 {
	est := make(map[string]float64)
	if len(contracts) == 0 {
		return est
	}

	n := float64(len(contracts))
	var totalValue float64
	var formal, approved int
	var cycleDays []int
	for _, c := range contracts {
		totalValue += c.Current()
		if domain.FormalProcurementMethods[c.ProcurementMethod] {
			formal++
		}
		if c.BoardApprovalDate != "" {
			approved++
		}
		if days, ok := solicitationToAward(c); ok {
			cycleDays = append(cycleDays, days)
		}
	}

	est["on_contract_spend"] = assumedOnContractSpend
	est["structured_spend"] = float64(formal) / n * 100
	est["pre_approved_spend"] = float64(approved) / n * 100
	est["electronic_po_processing"] = assumedElectronicPORate

	if len(cycleDays) > 0 {
		var sum int
		for _, d := range cycleDays {
			sum += d
		}
		est["contract_mgmt_cycle_time"] = float64(sum) / float64(len(cycleDays))
	}

	if len(vendors) > 0 && totalValue > 0 {
		spend := make(map[string]float64)
		for _, c := range contracts {
			if c.VendorID != "" {
				spend[c.VendorID] += c.Current()
			}
		}
		values := make([]float64, 0, len(spend))
		for _, v := range spend {
			values = append(values, v)
		}
		sort.Sort(sort.Reverse(sort.Float64Slice(values)))

		top := max(1, len(values)/primarySupplierDivisor)
		var primary float64
		for i := 0; i < top && i < len(values); i++ {
			primary += values[i]
		}
		est["spend_with_primary_suppliers"] = primary / totalValue * 100
	}

	if len(payments) > 0 {
		var digital int
		for i := range payments {
			if payments[i].IsDigital() {
				digital++
			}
		}
		est["invoices_paid_digitally"] = float64(digital) / float64(len(payments)) * 100
	}

	return est
}

// solicitationToAward returns positive whole days from solicitation to award.
func solicitationToAward(c *domain.Contract) (int, bool) {
	if c.SolicitationDate == "" || c.AwardDate == "" {
		return 0, false
	}
	sol, ok := domain.ParseDay(c.SolicitationDate)
	if !ok {
		return 0, false
	}
	award, ok := domain.ParseDay(c.AwardDate)
	if !ok {
		return 0, false
	}
	days := int(award.Sub(sol).Hours() / 24)
	if days <= 0 {
		return 0, false
	}
	return days, true
}
