package cli

import (
	"fmt"

	"github.com/alexanderramin/contractwatch/internal/cli/formatter"
	"github.com/alexanderramin/contractwatch/internal/service"
	"github.com/spf13/cobra"
)

func newVendorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "vendor",
		Aliases: []string{"vendors"},
		Short:   "Vendor scorecards",
	}

	cmd.AddCommand(
		newVendorListCmd(app),
		newVendorShowCmd(app),
		newVendorUpdateCmd(app),
		newVendorDeleteCmd(app),
	)

	return cmd
}

func newVendorListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List vendors with their performance scores",
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := app.Vendors.List(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, cards, func() string {
				if len(cards) == 0 {
					return "No vendors found.\n"
				}
				return formatter.FormatVendorList(cards)
			})
		},
	}
}

func newVendorShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a vendor scorecard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			card, err := app.Vendors.Scorecard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, card, func() string {
				return formatter.FormatVendorScorecard(card)
			})
		},
	}
}

func newVendorUpdateCmd(app *App) *cobra.Command {
	var status, vendorType, contact, email, city, state, certification string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Edit a vendor's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ch := service.VendorChanges{
				Status:              changed(cmd, "status", status),
				VendorType:          changed(cmd, "type", vendorType),
				ContactName:         changed(cmd, "contact", contact),
				ContactEmail:        changed(cmd, "email", email),
				City:                changed(cmd, "city", city),
				State:               changed(cmd, "state", state),
				CertificationStatus: changed(cmd, "certification", certification),
			}
			v, err := app.Vendors.Update(cmd.Context(), args[0], ch)
			if err != nil {
				return err
			}
			return render(cmd, v, func() string {
				return fmt.Sprintf("Updated vendor %s (%s)\n", v.VendorID, v.VendorName)
			})
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Vendor status")
	cmd.Flags().StringVar(&vendorType, "type", "", "Vendor type")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&city, "city", "", "City")
	cmd.Flags().StringVar(&state, "state", "", "State")
	cmd.Flags().StringVar(&certification, "certification", "", "Certification status")

	return cmd
}

func newVendorDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a vendor with no contracts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]
			if !yes {
				ok, err := confirm(app, fmt.Sprintf("Delete vendor %s?", id))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}
			if err := app.Vendors.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted vendor %s\n", id)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
