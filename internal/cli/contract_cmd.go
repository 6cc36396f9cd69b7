package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/contractwatch/internal/cli/formatter"
	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/repository"
	"github.com/alexanderramin/contractwatch/internal/service"
	"github.com/spf13/cobra"
)

var errConfirmRequired = errors.New("confirmation required: pass --yes in a non-interactive session")

// resolveContractID accepts a contract ID, a contract number, or an
// unambiguous ID prefix.
func resolveContractID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("contract ID is required")
	}

	contracts, err := app.Contracts.List(ctx, repository.ContractFilter{})
	if err != nil {
		return "", err
	}

	// 1. Exact ID match
	for _, c := range contracts {
		if c.ContractID == input {
			return c.ContractID, nil
		}
	}

	// 2. Contract number (case-insensitive)
	for _, c := range contracts {
		if c.ContractNumber != "" && strings.EqualFold(c.ContractNumber, input) {
			return c.ContractID, nil
		}
	}

	// 3. ID prefix
	var matches []string
	for _, c := range contracts {
		if strings.HasPrefix(c.ContractID, input) {
			matches = append(matches, c.ContractID)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("contract not found: %q", input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("contract ID prefix %q is ambiguous (%d matches)", input, len(matches))
	}
}

func newContractCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "contract",
		Aliases: []string{"contracts"},
		Short:   "Inspect and score contracts",
	}

	cmd.AddCommand(
		newContractListCmd(app),
		newContractShowCmd(app),
		newContractScoreCmd(app),
		newContractChangeOrderCmd(app),
		newContractUpdateCmd(app),
		newContractDeleteCmd(app),
	)

	return cmd
}

func newContractListCmd(app *App) *cobra.Command {
	var status, risk, vendor, department string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List contracts with fresh scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := repository.ContractFilter{
				Status:     domain.ContractStatus(status),
				RiskLevel:  domain.RiskLevel(risk),
				VendorID:   vendor,
				Department: department,
			}
			contracts, err := app.Contracts.List(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return render(cmd, contracts, func() string {
				if len(contracts) == 0 {
					return "No contracts found.\n"
				}
				return formatter.FormatContractList(contracts)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Filter by status (Active, Completed, ...)")
	cmd.Flags().StringVar(&risk, "risk", "", "Filter by risk level (Critical, High, Medium, Low)")
	cmd.Flags().StringVar(&vendor, "vendor", "", "Filter by vendor ID")
	cmd.Flags().StringVar(&department, "department", "", "Filter by department")

	return cmd
}

func newContractShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a contract with its scores, records and alerts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			detail, err := app.Contracts.Get(ctx, id)
			if err != nil {
				return err
			}
			return render(cmd, detail, func() string {
				return formatter.FormatContractDetail(detail)
			})
		},
	}
}

func newContractScoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "score [ID]",
		Short: "Recompute and store scores for one contract, or all when no ID is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 {
				contracts, err := app.Scoring.RescoreAll(ctx)
				if err != nil {
					return err
				}
				return render(cmd, contracts, func() string {
					return formatter.FormatScoreSummary(contracts)
				})
			}

			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Scoring.RescoreContract(ctx, id)
			if err != nil {
				return err
			}
			return render(cmd, c, func() string {
				return fmt.Sprintf("Scored %s: health %s %s\n",
					c.DisplayID(), formatter.ScorePtr(c.OverallHealthScore), formatter.RiskIndicator(c.RiskLevel))
			})
		},
	}
}

func newContractChangeOrderCmd(app *App) *cobra.Command {
	var amount float64
	var days int
	var number, reason, description string

	cmd := &cobra.Command{
		Use:   "change-order ID",
		Short: "Record an approved change order and rescore the contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			co := &domain.ChangeOrder{
				ContractID:    id,
				Number:        number,
				Description:   description,
				Reason:        reason,
				Amount:        amount,
				DaysAdded:     days,
				RequestedDate: time.Now().UTC().Format("2006-01-02"),
			}
			c, err := app.Contracts.RecordChangeOrder(ctx, co)
			if err != nil {
				return err
			}
			return render(cmd, c, func() string {
				return fmt.Sprintf("Recorded change order on %s: current %s, health %s %s\n",
					c.DisplayID(), formatter.MoneyPtr(c.CurrentAmount),
					formatter.ScorePtr(c.OverallHealthScore), formatter.RiskIndicator(c.RiskLevel))
			})
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "Change in contract value (negative for credits)")
	cmd.Flags().IntVar(&days, "days", 0, "Days added to the schedule")
	cmd.Flags().StringVar(&number, "number", "", "Change order number")
	cmd.Flags().StringVar(&reason, "reason", "", "Reason for the change")
	cmd.Flags().StringVar(&description, "description", "", "Description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

// changed returns &v when the named flag was set on the command line.
func changed[T any](cmd *cobra.Command, name string, v T) *T {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &v
}

func newContractUpdateCmd(app *App) *cobra.Command {
	var status, phase, endDate, actualEnd string
	var progress, paid float64
	var insurance, bond bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a contract's status, progress or dates and rescore it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ch := service.ContractChanges{
				Status:            changed(cmd, "status", domain.ContractStatus(status)),
				Phase:             changed(cmd, "phase", phase),
				PercentComplete:   changed(cmd, "percent-complete", progress),
				CurrentEndDate:    changed(cmd, "end-date", endDate),
				ActualEndDate:     changed(cmd, "actual-end-date", actualEnd),
				TotalPaid:         changed(cmd, "total-paid", paid),
				InsuranceVerified: changed(cmd, "insurance-verified", insurance),
				BondVerified:      changed(cmd, "bond-verified", bond),
			}
			c, err := app.Contracts.UpdateContract(ctx, id, ch)
			if err != nil {
				return err
			}
			return render(cmd, c, func() string {
				return fmt.Sprintf("Updated %s: health %s %s\n",
					c.DisplayID(), formatter.ScorePtr(c.OverallHealthScore), formatter.RiskIndicator(c.RiskLevel))
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Contract status")
	cmd.Flags().StringVar(&phase, "phase", "", "Contract phase")
	cmd.Flags().Float64Var(&progress, "percent-complete", 0, "Percent complete (0-100)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "Current end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&actualEnd, "actual-end-date", "", "Actual end date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&paid, "total-paid", 0, "Total paid to date")
	cmd.Flags().BoolVar(&insurance, "insurance-verified", false, "Insurance certificate verified")
	cmd.Flags().BoolVar(&bond, "bond-verified", false, "Performance bond verified")

	return cmd
}

func newContractDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a contract and its records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if !yes {
				ok, err := confirm(app, fmt.Sprintf("Delete contract %s and all of its records?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Contracts.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted contract %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// confirm asks through app.Confirm when set, otherwise through a huh form on
// an interactive terminal.
func confirm(app *App, title string) (bool, error) {
	if app.Confirm != nil {
		return app.Confirm(title)
	}
	if !app.interactive() {
		return false, errConfirmRequired
	}
	var ok bool
	if err := confirmForm(title, &ok).Run(); err != nil {
		return false, err
	}
	return ok, nil
}
