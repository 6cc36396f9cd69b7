package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/contractwatch/internal/service"
)

func FormatVendorList(cards []service.VendorScorecard) string {
	headers := []string{"VENDOR", "NAME", "TYPE", "CONTRACTS", "VALUE", "AVG HEALTH", "SCORE"}
	rows := make([][]string, 0, len(cards))
	for _, c := range cards {
		rows = append(rows, []string{
			c.Vendor.VendorID,
			Truncate(c.Vendor.VendorName, 32),
			OrDash(c.Vendor.VendorType),
			fmt.Sprintf("%d", c.Metrics.TotalContracts),
			Money(c.Metrics.TotalValue),
			ScoreColor(c.Metrics.AvgHealthScore),
			ScoreColor(c.Score),
		})
	}
	return RenderTable(headers, rows)
}

// FormatVendorScorecard renders one vendor's rollup and its contracts.
func FormatVendorScorecard(card *service.VendorScorecard) string {
	v := card.Vendor
	m := card.Metrics
	var b strings.Builder

	b.WriteString(RenderBox(v.VendorName, RenderKV([][2]string{
		{"Vendor", v.VendorID},
		{"Type", OrDash(v.VendorType)},
		{"Status", OrDash(v.Status)},
		{"Location", OrDash(strings.Trim(v.City+", "+v.State, ", "))},
		{"Score", ScoreColor(card.Score)},
		{"Contracts", fmt.Sprintf("%d (%d active, %d completed)", m.TotalContracts, m.ActiveContracts, m.CompletedContracts)},
		{"Total value", Money(m.TotalValue)},
		{"Avg health", ScoreColor(m.AvgHealthScore)},
		{"On time", Percent(m.OnTimeRate)},
		{"On budget", Percent(m.BudgetAdherenceRate)},
	})))
	b.WriteString("\n")

	if len(card.Contracts) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatContractList(card.Contracts))
	}
	return b.String()
}
