package cli

import (
	"fmt"
	"strconv"

	"github.com/alexanderramin/contractwatch/internal/cli/formatter"
	"github.com/alexanderramin/contractwatch/internal/domain"
	"github.com/alexanderramin/contractwatch/internal/importer"
	"github.com/alexanderramin/contractwatch/internal/service"
	"github.com/spf13/cobra"
)

func newMilestoneCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "milestone",
		Aliases: []string{"milestones"},
		Short:   "Track contract milestones",
	}

	cmd.AddCommand(
		newMilestoneListCmd(app),
		newMilestoneAddCmd(app),
		newMilestoneUpdateCmd(app),
		newMilestoneDeleteCmd(app),
	)

	return cmd
}

func parseMilestoneID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid milestone ID %q", s)
	}
	return id, nil
}

func milestoneResultText(verb string, res *service.MilestoneResult) string {
	c := res.Contract
	return fmt.Sprintf("%s milestone %d (#%d %s) on %s: health %s %s\n",
		verb, res.Milestone.MilestoneID, res.Milestone.MilestoneNumber, res.Milestone.Title,
		c.DisplayID(), formatter.ScorePtr(c.OverallHealthScore), formatter.RiskIndicator(c.RiskLevel))
}

func newMilestoneListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list CONTRACT",
		Short: "List a contract's milestones with progress and next due date",
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
			out := struct {
				ContractID string                `json:"contract_id"`
				Milestones []domain.Milestone    `json:"milestones"`
				Stats      domain.MilestoneStats `json:"stats"`
			}{id, detail.Milestones, detail.MilestoneStats}
			return render(cmd, out, func() string {
				return formatter.FormatMilestoneList(detail)
			})
		},
	}
}

func newMilestoneAddCmd(app *App) *cobra.Command {
	var in importer.MilestoneImport

	cmd := &cobra.Command{
		Use:   "add CONTRACT",
		Short: "Add a milestone and rescore the contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveContractID(ctx, app, args[0])
			if err != nil {
				return err
			}
			in.ContractID = id
			res, err := app.Contracts.AddMilestone(ctx, in)
			if err != nil {
				return err
			}
			return render(cmd, res, func() string {
				return milestoneResultText("Added", res)
			})
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Milestone title")
	cmd.Flags().IntVar(&in.MilestoneNumber, "number", 0, "Milestone number (default: next on the contract)")
	cmd.Flags().StringVar(&in.Status, "status", "", "Status (Pending, In Progress, Completed, Delayed, Overdue)")
	cmd.Flags().StringVar(&in.DueDate, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&in.CompletedDate, "completed", "", "Completion date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&in.PercentComplete, "percent", 0, "Percent complete (0-100)")
	cmd.Flags().Float64Var(&in.PaymentAmount, "amount", 0, "Payment tied to the milestone")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func newMilestoneUpdateCmd(app *App) *cobra.Command {
	var title, status, due, completed string
	var progress, amount float64

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a milestone and rescore its contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMilestoneID(args[0])
			if err != nil {
				return err
			}
			ch := service.MilestoneChanges{
				Title:           changed(cmd, "title", title),
				Status:          changed(cmd, "status", domain.MilestoneStatus(status)),
				DueDate:         changed(cmd, "due", due),
				CompletedDate:   changed(cmd, "completed", completed),
				PercentComplete: changed(cmd, "percent", progress),
				PaymentAmount:   changed(cmd, "amount", amount),
			}
			res, err := app.Contracts.UpdateMilestone(cmd.Context(), id, ch)
			if err != nil {
				return err
			}
			return render(cmd, res, func() string {
				return milestoneResultText("Updated", res)
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Milestone title")
	cmd.Flags().StringVar(&status, "status", "", "Status (Pending, In Progress, Completed, Delayed, Overdue)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&completed, "completed", "", "Completion date (YYYY-MM-DD)")
	cmd.Flags().Float64Var(&progress, "percent", 0, "Percent complete (0-100)")
	cmd.Flags().Float64Var(&amount, "amount", 0, "Payment tied to the milestone")

	return cmd
}

func newMilestoneDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a milestone and rescore its contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseMilestoneID(args[0])
			if err != nil {
				return err
			}
			if !yes {
				ok, err := confirm(app, fmt.Sprintf("Delete milestone %d?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			res, err := app.Contracts.DeleteMilestone(cmd.Context(), id)
			if err != nil {
				return err
			}
			return render(cmd, res, func() string {
				return milestoneResultText("Deleted", res)
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
