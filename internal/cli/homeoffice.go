package cli

import (
	"fmt"

	"ledgerdesk/internal/model"
	"ledgerdesk/internal/tax"

	"github.com/spf13/cobra"
)

func newHomeOfficeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "homeoffice",
		Short: "Home office deduction commands",
	}
	cmd.AddCommand(newHomeOfficeSetCmd(app))
	cmd.AddCommand(newHomeOfficeShowCmd(app))
	return cmd
}

func newHomeOfficeSetCmd(app *App) *cobra.Command {
	var (
		method     string
		officeSqFt int
		homeSqFt   int
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Configure the home office (replaces any previous configuration)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ho := model.HomeOffice{OfficeSquareFeet: officeSqFt}
			switch model.HomeOfficeMethod(method) {
			case model.HomeOfficeSimplified:
				if officeSqFt <= 0 {
					return writeErr(cmd, fmt.Errorf("simplified method requires --office-sqft"))
				}
				ho.Method = model.HomeOfficeSimplified
				ho.AnnualDeductionCents = tax.SimplifiedHomeOffice(officeSqFt)
			case model.HomeOfficeActual:
				if officeSqFt <= 0 || homeSqFt <= 0 {
					return writeErr(cmd, fmt.Errorf("actual method requires --office-sqft and --home-sqft"))
				}
				ho.Method = model.HomeOfficeActual
				ho.HomeSquareFeet = homeSqFt
				ho.BusinessPercent = tax.ActualHomeOfficePercent(officeSqFt, homeSqFt)
				// Actual-method dollar amounts come from tracked utilities;
				// the configuration itself only fixes the business percentage.
			default:
				return writeErr(cmd, fmt.Errorf("invalid method %q (expected simplified|actual)", method))
			}

			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SetHomeOffice(cmd.Context(), ho); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ho})
		},
	}

	cmd.Flags().StringVar(&method, "method", "simplified", "Deduction method (simplified|actual)")
	cmd.Flags().IntVar(&officeSqFt, "office-sqft", 0, "Office square footage")
	cmd.Flags().IntVar(&homeSqFt, "home-sqft", 0, "Total home square footage (actual method)")
	_ = cmd.MarkFlagRequired("office-sqft")
	return cmd
}

func newHomeOfficeShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current home office configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ho, err := s.GetHomeOffice(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ho})
		},
	}
}
