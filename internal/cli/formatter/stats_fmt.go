package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/service"
)

func FormatOverview(o *service.Overview) string {
	var b strings.Builder
	b.WriteString(RenderBox("Portfolio", RenderKV([][2]string{
		{"Contracts", fmt.Sprintf("%d (%d active)", o.TotalContracts, o.ActiveContracts)},
		{"Contract value", Money(o.TotalContractValue)},
		{"Paid", Money(o.TotalPaid)},
		{"Vendors", fmt.Sprintf("%d", o.TotalVendors)},
		{"Open issues", fmt.Sprintf("%d (%d critical)", o.OpenIssues, o.CriticalIssues)},
		{"Change orders", fmt.Sprintf("%d totalling %s", o.TotalChangeOrders, Money(o.TotalChangeOrderValue))},
		{"Avg health", ScoreColor(o.AvgHealthScore)},
	})))
	b.WriteString("\n\n")
	b.WriteString(Header("Risk"))
	b.WriteString("\n")
	for _, r := range []domain.RiskLevel{domain.RiskCritical, domain.RiskHigh, domain.RiskMedium, domain.RiskLow} {
		n := o.RiskDistribution[r]
		bar := strings.Repeat("█", min(n, 40))
		b.WriteString(fmt.Sprintf("%-10s %3d %s\n", strings.ToUpper(string(r)), n, RiskColor(r).Render(bar)))
	}
	return b.String()
}
