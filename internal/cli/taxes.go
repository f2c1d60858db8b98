package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/store"
	"ledgerdesk/internal/tax"

	"github.com/spf13/cobra"
)

func newTaxesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "taxes",
		Short: "Estimated tax commands",
	}
	cmd.AddCommand(newTaxesSettingsCmd(app))
	cmd.AddCommand(newTaxesPayCmd(app))
	cmd.AddCommand(newTaxesPaymentsCmd(app))
	cmd.AddCommand(newTaxesRemindersCmd(app))
	cmd.AddCommand(newTaxesEditCmd(app))
	cmd.AddCommand(newTaxesRmCmd(app))
	return cmd
}

func newTaxesEditCmd(app *App) *cobra.Command {
	var (
		quarter      string
		amount       string
		date         string
		method       string
		confirmation string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a recorded payment (flags you omit keep their value)",
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
			recs, err := s.ListTaxPayments(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			var rec model.TaxPayment
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
			if fl.Changed("quarter") {
				q := strings.ToUpper(strings.TrimSpace(quarter))
				switch q {
				case "Q1", "Q2", "Q3", "Q4":
				default:
					return writeErr(cmd, fmt.Errorf("invalid quarter %q (expected Q1..Q4)", quarter))
				}
				rec.Quarter = q
			}
			if fl.Changed("amount") {
				if rec.AmountCents, err = format.ParseMoney(amount); err != nil {
					return writeErr(cmd, err)
				}
			}
			if fl.Changed("date") {
				if rec.PaymentDate, err = format.ParseDate(date); err != nil {
					return writeErr(cmd, err)
				}
			}
			if fl.Changed("method") {
				rec.PaymentMethod = strings.TrimSpace(method)
			}
			if fl.Changed("confirmation") {
				rec.ConfirmationNumber = strings.TrimSpace(confirmation)
			}
			if err := s.UpdateTaxPayment(cmd.Context(), rec); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().StringVar(&quarter, "quarter", "", "Quarter (Q1..Q4)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in dollars")
	cmd.Flags().StringVar(&date, "date", "", "Payment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&method, "method", "", "Payment method")
	cmd.Flags().StringVar(&confirmation, "confirmation", "", "Confirmation number")
	return cmd
}

func newTaxesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a recorded payment",
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
			if err := s.DeleteTaxPayment(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}

func newTaxesSettingsCmd(app *App) *cobra.Command {
	var (
		businessName string
		taxYear      int
		filingStatus string
		otherIncome  string
		priorYearTax string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Set the tax profile (replaces any previous profile)",
		RunE: func(cmd *cobra.Command, args []string) error {
			other, err := format.ParseMoney(otherIncome)
			if err != nil {
				return writeErr(cmd, err)
			}
			prior, err := format.ParseMoney(priorYearTax)
			if err != nil {
				return writeErr(cmd, err)
			}
			ts := model.TaxSettings{
				BusinessName:      strings.TrimSpace(businessName),
				TaxYear:           taxYear,
				FilingStatus:      strings.TrimSpace(filingStatus),
				OtherIncomeCents:  other,
				PriorYearTaxCents: prior,
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := s.SetTaxSettings(cmd.Context(), ts); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ts})
		},
	}

	cmd.Flags().StringVar(&businessName, "business", "", "Business name")
	cmd.Flags().IntVar(&taxYear, "year", time.Now().Year(), "Tax year")
	cmd.Flags().StringVar(&filingStatus, "filing-status", "single", "Filing status")
	cmd.Flags().StringVar(&otherIncome, "other-income", "0", "Other household income in dollars")
	cmd.Flags().StringVar(&priorYearTax, "prior-year-tax", "0", "Prior year total tax in dollars")
	return cmd
}

func newTaxesPayCmd(app *App) *cobra.Command {
	var (
		quarter      string
		amount       string
		date         string
		method       string
		confirmation string
	)

	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Record an estimated quarterly payment",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.ToUpper(strings.TrimSpace(quarter))
			switch q {
			case "Q1", "Q2", "Q3", "Q4":
			default:
				return writeErr(cmd, fmt.Errorf("invalid quarter %q (expected Q1..Q4)", quarter))
			}
			cents, err := format.ParseMoney(amount)
			if err != nil {
				return writeErr(cmd, err)
			}
			d, err := format.ParseDate(date)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			p, err := s.AddTaxPayment(cmd.Context(), model.TaxPayment{
				Quarter:            q,
				AmountCents:        cents,
				PaymentDate:        d,
				PaymentMethod:      strings.TrimSpace(method),
				ConfirmationNumber: strings.TrimSpace(confirmation),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": p})
		},
	}

	cmd.Flags().StringVar(&quarter, "quarter", "", "Quarter (Q1..Q4)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in dollars")
	cmd.Flags().StringVar(&date, "date", "", "Payment date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&method, "method", "", "Payment method (EFTPS, check, ...)")
	cmd.Flags().StringVar(&confirmation, "confirmation", "", "Confirmation number")
	_ = cmd.MarkFlagRequired("quarter")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newTaxesPaymentsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "payments",
		Short: "List recorded payments, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := s.ListTaxPayments(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}
}

func newTaxesRemindersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reminders",
		Short: "Show this year's quarterly deadlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{"data": tax.Reminders(time.Now())})
		},
	}
}
