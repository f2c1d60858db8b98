package cli

import (
	"strconv"
	"strings"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/store"

	"github.com/spf13/cobra"
)

func newIncomeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Income commands",
	}
	cmd.AddCommand(newIncomeAddCmd(app))
	cmd.AddCommand(newIncomeListCmd(app))
	cmd.AddCommand(newIncomeEditCmd(app))
	cmd.AddCommand(newIncomeRmCmd(app))
	return cmd
}

func newIncomeAddCmd(app *App) *cobra.Command {
	var (
		client      string
		serviceType string
		amount      string
		date        string
		expects1099 bool
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a payment received",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			in, err := s.AddIncome(cmd.Context(), model.Income{
				Client:      strings.TrimSpace(client),
				ServiceType: strings.TrimSpace(serviceType),
				AmountCents: cents,
				Date:        d,
				Expects1099: expects1099,
				Notes:       strings.TrimSpace(notes),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": in})
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().StringVar(&serviceType, "service", "", "Service type (e.g. consulting, design)")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in dollars")
	cmd.Flags().StringVar(&date, "date", "", "Payment date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&expects1099, "expects-1099", false, "Client will issue a 1099")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	_ = cmd.MarkFlagRequired("client")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newIncomeListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List income, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := s.ListIncome(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}
}

func newIncomeEditCmd(app *App) *cobra.Command {
	var (
		client      string
		serviceType string
		amount      string
		date        string
		expects1099 bool
		notes       string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an income record (flags you omit keep their value)",
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
			recs, err := s.ListIncome(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			var rec model.Income
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
			if fl.Changed("client") {
				rec.Client = strings.TrimSpace(client)
			}
			if fl.Changed("service") {
				rec.ServiceType = strings.TrimSpace(serviceType)
			}
			if fl.Changed("amount") {
				if rec.AmountCents, err = format.ParseMoney(amount); err != nil {
					return writeErr(cmd, err)
				}
			}
			if fl.Changed("date") {
				if rec.Date, err = format.ParseDate(date); err != nil {
					return writeErr(cmd, err)
				}
			}
			if fl.Changed("expects-1099") {
				rec.Expects1099 = expects1099
			}
			if fl.Changed("notes") {
				rec.Notes = strings.TrimSpace(notes)
			}
			if err := s.UpdateIncome(cmd.Context(), rec); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().StringVar(&serviceType, "service", "", "Service type")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in dollars")
	cmd.Flags().StringVar(&date, "date", "", "Payment date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&expects1099, "expects-1099", false, "Client will issue a 1099")
	cmd.Flags().StringVar(&notes, "notes", "", "Free-form notes")
	return cmd
}

func newIncomeRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an income record",
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
			if err := s.DeleteIncome(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}
