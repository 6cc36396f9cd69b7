package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/service"
)

// FormatContractList renders contracts as a table, one row per contract.
func FormatContractList(contracts []*domain.Contract) string {
	headers := []string{"CONTRACT", "TITLE", "VENDOR", "STATUS", "CURRENT", "PROGRESS", "HEALTH", "RISK"}
	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		rows = append(rows, []string{
			c.DisplayID(),
			Truncate(c.Title, 36),
			OrDash(Truncate(c.VendorName, 24)),
			string(c.Status),
			Money(c.Current()),
			Percent(c.Progress()),
			ScorePtr(c.OverallHealthScore),
			RiskIndicator(c.RiskLevel),
		})
	}
	return RenderTable(headers, rows)
}

// FormatScoreSummary renders the outcome of a scoring pass.
func FormatScoreSummary(contracts []*domain.Contract) string {
	counts := make(map[domain.RiskLevel]int)
	for _, c := range contracts {
		counts[c.RiskLevel]++
	}
	var parts []string
	for _, r := range []domain.RiskLevel{domain.RiskCritical, domain.RiskHigh, domain.RiskMedium, domain.RiskLow} {
		parts = append(parts, RiskColor(r).Render(fmt.Sprintf("%s %d", r, counts[r])))
	}
	return fmt.Sprintf("Scored %d contracts: %s\n", len(contracts), strings.Join(parts, Dim(" · ")))
}

// FormatContractDetail renders a contract with its scores and records.
func FormatContractDetail(d *service.ContractDetail) string {
	c := d.Contract
	var b strings.Builder

	b.WriteString(RenderBox(c.Title, RenderKV([][2]string{
		{"Contract", c.DisplayID()},
		{"ID", c.ContractID},
		{"Vendor", OrDash(c.VendorName)},
		{"Department", OrDash(c.Department)},
		{"Status", string(c.Status)},
		{"Procurement", OrDash(procurement(c))},
		{"Original", MoneyPtr(c.OriginalAmount)},
		{"Current", MoneyPtr(c.CurrentAmount)},
		{"Paid", Money(c.Paid())},
		{"Remaining", Money(c.RemainingBalance())},
		{"Term", fmt.Sprintf("%s → %s", OrDash(c.StartDate), OrDash(c.EffectiveEndDate()))},
		{"Progress", Percent(c.Progress())},
		{"Change orders", fmt.Sprintf("%d", c.ChangeOrderCount)},
	})))
	b.WriteString("\n\n")

	b.WriteString(Header("Scores"))
	b.WriteString("\n")
	b.WriteString(RenderKV([][2]string{
		{"Cost", ScorePtr(c.CostVarianceScore)},
		{"Schedule", ScorePtr(c.ScheduleVarianceScore)},
		{"Performance", ScorePtr(c.PerformanceScore)},
		{"Compliance", ScorePtr(c.ComplianceScore)},
		{"Health", ScorePtr(c.OverallHealthScore)},
		{"Risk", RiskIndicator(c.RiskLevel)},
	}))

	if len(d.Milestones) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Milestones"))
		b.WriteString("\n")
		b.WriteString(milestoneSummary(d.MilestoneStats))
		b.WriteString(milestoneTable(d.Milestones))
	}

	if len(d.Payments) > 0 {
		var total float64
		for _, p := range d.Payments {
			total += p.Amount
		}
		b.WriteString("\n")
		b.WriteString(Header("Payments"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d payments totalling %s\n", len(d.Payments), Money(total)))
	}

	if len(d.ChangeOrders) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Change Orders"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(d.ChangeOrders))
		for _, co := range d.ChangeOrders {
			rows = append(rows, []string{OrDash(co.Number), Money(co.Amount), fmt.Sprintf("%d", co.DaysAdded), OrDash(co.Status), Truncate(co.Reason, 40)})
		}
		b.WriteString(RenderTable([]string{"NUMBER", "AMOUNT", "DAYS", "STATUS", "REASON"}, rows))
	}

	if len(d.Issues) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Issues"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(d.Issues))
		for _, i := range d.Issues {
			rows = append(rows, []string{SeverityIndicator(i.Severity), string(i.Status), i.IssueType, Truncate(i.Title, 40)})
		}
		b.WriteString(RenderTable([]string{"SEVERITY", "STATUS", "TYPE", "TITLE"}, rows))
	}

	b.WriteString("\n")
	b.WriteString(Header("Alerts"))
	b.WriteString("\n")
	if len(d.Alerts) == 0 {
		b.WriteString(Dim("No alerts.") + "\n")
	}
	for _, a := range d.Alerts {
		b.WriteString(fmt.Sprintf("%s  %s\n", SeverityIndicator(a.Severity), a.Title))
	}
	return b.String()
}

func procurement(c *domain.Contract) string {
	if c.ProcurementMethod == "" {
		return ""
	}
	s := c.ProcurementMethod
	if c.BidCount > 0 {
		s += fmt.Sprintf(" (%d bids)", c.BidCount)
	}
	if c.IsSoleSource {
		s += ", sole source"
	}
	return s
}

// FormatMilestoneList renders a contract's milestones with their summary.
func FormatMilestoneList(d *service.ContractDetail) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Milestones: %s", d.Contract.DisplayID())))
	b.WriteString("\n")
	if len(d.Milestones) == 0 {
		b.WriteString("No milestones.\n")
		return b.String()
	}
	b.WriteString(milestoneSummary(d.MilestoneStats))
	b.WriteString(milestoneTable(d.Milestones))
	return b.String()
}

func milestoneSummary(st domain.MilestoneStats) string {
	next := Dim("-")
	if st.Next != nil {
		next = fmt.Sprintf("%s (%s)", st.Next.DueDate, Truncate(st.Next.Title, 30))
	}
	return RenderKV([][2]string{
		{"Completed", fmt.Sprintf("%d of %d", st.Completed, st.Total)},
		{"In progress", fmt.Sprintf("%d", st.InProgress)},
		{"Overdue", fmt.Sprintf("%d", st.Overdue)},
		{"Avg progress", Percent(st.AvgProgress)},
		{"Next due", next},
	}) + "\n"
}

func milestoneTable(ms []domain.Milestone) string {
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{
			fmt.Sprintf("%d", m.MilestoneID), fmt.Sprintf("%d", m.MilestoneNumber), Truncate(m.Title, 40),
			string(m.Status), OrDash(m.DueDate), OrDash(m.CompletedDate), Percent(m.PercentComplete),
		})
	}
	return RenderTable([]string{"ID", "#", "TITLE", "STATUS", "DUE", "COMPLETED", "PROGRESS"}, rows)
}
