package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/contractwatch/internal/service"
)

// FormatAlerts renders generated alerts, most severe first, followed by a
// persistence summary when issues were recorded.
func FormatAlerts(res *service.AlertResult, persisted bool) string {
	var b strings.Builder
	if len(res.Alerts) == 0 {
		b.WriteString(Dim("No alerts.") + "\n")
	} else {
		rows := make([][]string, 0, len(res.Alerts))
		for _, a := range res.Alerts {
			rows = append(rows, []string{
				SeverityIndicator(a.Severity),
				a.ContractID,
				Truncate(a.ContractTitle, 32),
				OrDash(Truncate(a.VendorName, 24)),
				a.Title,
			})
		}
		b.WriteString(RenderTable([]string{"SEVERITY", "CONTRACT", "TITLE", "VENDOR", "ALERT"}, rows))
	}
	if persisted {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Recorded %d issues, %d already open.\n", res.Persisted, res.Skipped))
	}
	return b.String()
}
