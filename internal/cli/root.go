package cli

import (
	"fmt"
	"os"
	"strings"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/store"
	"ledgerdesk/internal/tax"
	"ledgerdesk/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Dir        string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "ledgerdesk",
		Short:        "Freelance bookkeeping (local-first) CLI + dashboard",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive dashboard
  ledgerdesk

  # Scriptable commands
  ledgerdesk income add --client "Acme Corp" --amount 2500 --date 2024-03-10
  ledgerdesk overview
  ledgerdesk taxes reminders
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive dashboard.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runDashboard(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("LEDGERDESK_DIR", ""), "Path to the workspace dir (default: ~/.ledgerdesk)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newIncomeCmd(app))
	cmd.AddCommand(newExpensesCmd(app))
	cmd.AddCommand(newMileageCmd(app))
	cmd.AddCommand(newUtilitiesCmd(app))
	cmd.AddCommand(newHomeOfficeCmd(app))
	cmd.AddCommand(newTaxesCmd(app))
	cmd.AddCommand(newGoalsCmd(app))
	cmd.AddCommand(newOverviewCmd(app))
	cmd.AddCommand(newReportCmd(app))
	cmd.AddCommand(newDashboardCmd(app))

	return cmd
}

func newDashboardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Start the interactive dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(app)
		},
	}
}

func runDashboard(app *App) error {
	s, err := openStore(app)
	if err != nil {
		return err
	}
	return tui.Run(s)
}

func openStore(app *App) (store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return store.Store{}, err
		}
		dir = d
	}
	return store.Store{Dir: dir}, nil
}

// loadBooks pulls the full snapshot for aggregate commands.
func loadBooks(cmd *cobra.Command, app *App) (tax.Books, error) {
	s, err := openStore(app)
	if err != nil {
		return tax.Books{}, err
	}
	snap, err := s.LoadAll(cmd.Context())
	if err != nil {
		return tax.Books{}, err
	}
	return booksFromSnapshot(snap), nil
}

func booksFromSnapshot(snap *store.DB) tax.Books {
	return tax.Books{
		Income:     snap.Income,
		Expenses:   snap.Expenses,
		Trips:      snap.Trips,
		Utilities:  snap.Utilities,
		HomeOffice: snap.HomeOffice,
		Settings:   snap.TaxSettings,
		Payments:   snap.TaxPayments,
		Goals:      snap.SavingsGoals,
	}
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
