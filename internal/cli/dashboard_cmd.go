package cli

import (
	"fmt"

	"github.com/alexanderramin/contractwatch/internal/cli/dashboard"
	"github.com/alexanderramin/contractwatch/internal/cli/formatter"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Browse scored contracts interactively",
		Long: `Opens an interactive contract table. Outside a terminal, or with --json,
prints the contract list instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() && !wantJSON(cmd) {
				return dashboard.Run(cmd.Context(), app.Contracts)
			}

			contracts, err := app.Contracts.List(cmd.Context(), repository.ContractFilter{})
			if err != nil {
				return err
			}
			return render(cmd, contracts, func() string {
				if len(contracts) == 0 {
					return "No contracts found.\n"
				}
				return formatter.FormatContractList(contracts) +
					fmt.Sprintf("\n%s\n", formatter.Dim("Not a terminal; showing the plain contract list."))
			})
		},
	}
}
