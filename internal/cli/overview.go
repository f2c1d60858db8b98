package cli

import (
	"time"

	"ledgerdesk/internal/tax"

	"github.com/spf13/cobra"
)

func newOverviewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "overview",
		Short: "Year-to-date totals, estimated taxes, and deadlines",
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := loadBooks(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			o := tax.BuildOverview(books, time.Now())
			return writeOut(cmd, app, map[string]any{"data": o})
		},
	}
}
