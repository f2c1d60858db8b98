package cli

import (
	"strconv"
	"strings"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/store"
	"ledgerdesk/internal/tax"

	"github.com/spf13/cobra"
)

func newUtilitiesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "utilities",
		Short: "Home utility deduction commands",
	}
	cmd.AddCommand(newUtilitiesAddCmd(app))
	cmd.AddCommand(newUtilitiesListCmd(app))
	cmd.AddCommand(newUtilitiesEditCmd(app))
	cmd.AddCommand(newUtilitiesRmCmd(app))
	return cmd
}

func newUtilitiesAddCmd(app *App) *cobra.Command {
	var (
		utilityType string
		monthly     string
		percent     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Track a utility prorated by business use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cents, err := format.ParseMoney(monthly)
			if err != nil {
				return writeErr(cmd, err)
			}
			pct, err := format.ParsePercent(percent)
			if err != nil {
				return writeErr(cmd, err)
			}
			monthlyDed, annualDed := tax.UtilityDeduction(cents, pct)

			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			u, err := s.AddUtility(cmd.Context(), model.Utility{
				UtilityType:           strings.TrimSpace(utilityType),
				MonthlyAmountCents:    cents,
				BusinessPercent:       pct,
				MonthlyDeductionCents: monthlyDed,
				AnnualDeductionCents:  annualDed,
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": u})
		},
	}

	cmd.Flags().StringVar(&utilityType, "type", "", "Utility type (internet, electricity, phone, ...)")
	cmd.Flags().StringVar(&monthly, "monthly", "", "Monthly bill in dollars")
	cmd.Flags().StringVar(&percent, "percent", "", "Business-use percentage (0-100)")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("monthly")
	_ = cmd.MarkFlagRequired("percent")
	return cmd
}

func newUtilitiesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tracked utilities",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := s.ListUtilities(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}
}

func newUtilitiesEditCmd(app *App) *cobra.Command {
	var (
		utilityType string
		monthly     string
		percent     string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a tracked utility (flags you omit keep their value)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := s.ListUtilities(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			var rec model.Utility
			found := false
			for _, r := range recs {
				if r.ID == id {
					rec, found = r, true
					break
				}
			}
			if !found {
				return writeErr(cmd, store.ErrNotFound)
			}
			fl := cmd.Flags()
			if fl.Changed("type") {
				rec.UtilityType = strings.TrimSpace(utilityType)
			}
			if fl.Changed("monthly") {
				if rec.MonthlyAmountCents, err = format.ParseMoney(monthly); err != nil {
					return writeErr(cmd, err)
				}
			}
			if fl.Changed("percent") {
				if rec.BusinessPercent, err = format.ParsePercent(percent); err != nil {
					return writeErr(cmd, err)
				}
			}
			// Deductions are derived; recompute from the final bill and share.
			rec.MonthlyDeductionCents, rec.AnnualDeductionCents = tax.UtilityDeduction(rec.MonthlyAmountCents, rec.BusinessPercent)
			if err := s.UpdateUtility(cmd.Context(), rec); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().StringVar(&utilityType, "type", "", "Utility type")
	cmd.Flags().StringVar(&monthly, "monthly", "", "Monthly bill in dollars")
	cmd.Flags().StringVar(&percent, "percent", "", "Business-use percentage (0-100)")
	return cmd
}

func newUtilitiesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Stop tracking a utility",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.DeleteUtility(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}
