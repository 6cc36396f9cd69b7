package cli

import (
	"fmt"

	"github.com/alexanderramin/contractwatch/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Portfolio overview",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := app.Stats.Overview(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, o, func() string {
				return formatter.FormatOverview(o)
			})
		},
	}
}

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import vendors, contracts and records from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Import.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, res, func() string {
				return fmt.Sprintf("Imported %d vendors, %d contracts, %d milestones, %d payments, %d change orders\n",
					res.VendorCount, res.ContractCount, res.MilestoneCount, res.PaymentCount, res.ChangeOrderCount)
			})
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write scored contracts, vendors and alerts to an XLSX workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Export.Export(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, res, func() string {
				return fmt.Sprintf("Wrote %s: %d contracts, %d vendors, %d alerts\n",
					res.Path, res.Contracts, res.Vendors, res.Alerts) + formatter.Dim("Scores in the workbook are not stored; run `contract score` to persist them.") + "\n"
			})
		},
	}
}
