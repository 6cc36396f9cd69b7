package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/contractwatch/internal/cli/formatter"
	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func parseSeverity(s string) (domain.Severity, error) {
	if s == "" {
		return "", nil
	}
	for _, sev := range []domain.Severity{domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium, domain.SeverityLow} {
		if strings.EqualFold(s, string(sev)) {
			return sev, nil
		}
	}
	return "", fmt.Errorf("invalid severity %q (use critical, high, medium or low)", s)
}

// severityFlag validates a severity at flag-parse time.
type severityFlag domain.Severity

var _ pflag.Value = (*severityFlag)(nil)

func (f *severityFlag) String() string { return string(*f) }
func (f *severityFlag) Type() string   { return "severity" }

func (f *severityFlag) Set(s string) error {
	sev, err := parseSeverity(s)
	if err != nil {
		return err
	}
	*f = severityFlag(sev)
	return nil
}

func newAlertsCmd(app *App) *cobra.Command {
	var persist bool
	var minSeverity severityFlag

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Evaluate alert rules across all contracts",
		Long: `Scores every contract against its current records and evaluates the alert
rules. With --persist, each new alert is recorded as an open issue; alerts
that already have an open issue for the same contract and rule are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := service.AlertRequest{Persist: persist, MinSeverity: domain.Severity(minSeverity)}
			res, err := app.Alerts.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}
			return render(cmd, res, func() string {
				return formatter.FormatAlerts(res, persist)
			})
		},
	}

	cmd.Flags().BoolVar(&persist, "persist", false, "Record new alerts as open issues")
	cmd.Flags().Var(&minSeverity, "min-severity", "Only show alerts at or above this severity (critical, high, medium, low)")

	return cmd
}
