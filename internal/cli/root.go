package cli

import (
	"github.com/alexanderramin/contractwatch/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Contracts  service.ContractService
	Scoring    service.ScoringService
	Vendors    service.VendorService
	Alerts     service.AlertService
	Benchmarks service.BenchmarkService
	Stats      service.StatsService
	Import     service.ImportService
	Export     service.ExportService

	// IsInteractive reports whether stdin/stdout are attached to a terminal.
	// Nil means non-interactive.
	IsInteractive func() bool

	// Confirm asks a yes/no question. Nil uses a huh prompt.
	Confirm func(title string) (bool, error)
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "contractwatch" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "contractwatch",
		Short:         "Contract oversight scoring and alerting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool(jsonFlag, false, "Emit JSON instead of formatted text")

	root.AddCommand(
		newContractCmd(app),
		newVendorCmd(app),
		newMilestoneCmd(app),
		newAlertsCmd(app),
		newBenchmarkCmd(app),
		newStatsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newDashboardCmd(app),
	)

	return root
}
