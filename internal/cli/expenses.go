package cli

import (
	"strconv"
	"strings"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/store"

	"github.com/spf13/cobra"
)

func newExpensesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Expense commands",
	}
	cmd.AddCommand(newExpensesAddCmd(app))
	cmd.AddCommand(newExpensesListCmd(app))
	cmd.AddCommand(newExpensesEditCmd(app))
	cmd.AddCommand(newExpensesRmCmd(app))
	return cmd
}

func newExpensesAddCmd(app *App) *cobra.Command {
	var (
		category    string
		description string
		amount      string
		date        string
		purpose     string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a business expense",
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
			e, err := s.AddExpense(cmd.Context(), model.Expense{
				Category:        strings.TrimSpace(category),
				Description:     strings.TrimSpace(description),
				AmountCents:     cents,
				Date:            d,
				BusinessPurpose: strings.TrimSpace(purpose),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": e})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Expense category (software, equipment, travel, ...)")
	cmd.Flags().StringVar(&description, "description", "", "What was purchased")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in dollars")
	cmd.Flags().StringVar(&date, "date", "", "Expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&purpose, "purpose", "", "Business purpose")
	_ = cmd.MarkFlagRequired("category")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newExpensesListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List expenses, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := s.ListExpenses(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}
}

func newExpensesEditCmd(app *App) *cobra.Command {
	var (
		category    string
		description string
		amount      string
		date        string
		purpose     string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an expense (flags you omit keep their value)",
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
			recs, err := s.ListExpenses(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			var rec model.Expense
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
			if fl.Changed("category") {
				rec.Category = strings.TrimSpace(category)
			}
			if fl.Changed("description") {
				rec.Description = strings.TrimSpace(description)
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
			if fl.Changed("purpose") {
				rec.BusinessPurpose = strings.TrimSpace(purpose)
			}
			if err := s.UpdateExpense(cmd.Context(), rec); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Expense category")
	cmd.Flags().StringVar(&description, "description", "", "What was purchased")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in dollars")
	cmd.Flags().StringVar(&date, "date", "", "Expense date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&purpose, "purpose", "", "Business purpose")
	return cmd
}

func newExpensesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an expense",
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
			if err := s.DeleteExpense(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}
