package cli

import (
	"fmt"
	"strings"
	"time"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/tax"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the Schedule C summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := loadBooks(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			md := reportMarkdown(books, time.Now())
			if raw {
				fmt.Fprintln(cmd.OutOrStdout(), md)
				return nil
			}

			// Avoid WithAutoStyle() here: it can block waiting on terminal
			// queries in some setups.
			r, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle("dark"),
				glamour.WithWordWrap(100),
			)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), md)
				return nil
			}
			out, err := r.Render(md)
			if err != nil {
				fmt.Fprintln(cmd.OutOrStdout(), md)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print plain markdown without terminal styling")
	return cmd
}

func reportMarkdown(books tax.Books, today time.Time) string {
	o := tax.BuildOverview(books, today)

	var b strings.Builder
	title := "Schedule C Summary"
	if books.Settings != nil && books.Settings.BusinessName != "" {
		title = fmt.Sprintf("%s - %s", books.Settings.BusinessName, title)
	}
	year := today.Year()
	if books.Settings != nil && books.Settings.TaxYear != 0 {
		year = books.Settings.TaxYear
	}
	fmt.Fprintf(&b, "# %s (%d)\n\n", title, year)

	fmt.Fprintf(&b, "## Income\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Gross receipts | %s |\n\n", format.Money(o.TotalIncomeCents))

	fmt.Fprintf(&b, "## Deductions\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Business expenses | %s |\n", format.Money(o.TotalExpensesCents))
	fmt.Fprintf(&b, "| Standard mileage | %s |\n", format.Money(o.MileageDeductionCents))
	fmt.Fprintf(&b, "| Home office | %s |\n", format.Money(o.HomeOfficeDeductionCents))
	fmt.Fprintf(&b, "| Utilities (business share) | %s |\n", format.Money(o.UtilityDeductionCents))
	fmt.Fprintf(&b, "| **Total deductions** | **%s** |\n\n", format.Money(o.TotalDeductionsCents))

	fmt.Fprintf(&b, "## Bottom line\n\n")
	fmt.Fprintf(&b, "| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| Net profit | %s |\n", format.Money(o.NetProfitCents))
	fmt.Fprintf(&b, "| Self-employment tax | %s |\n", format.Money(o.SelfEmploymentTaxCents))
	fmt.Fprintf(&b, "| Estimated income tax | %s |\n", format.Money(o.IncomeTaxCents))
	fmt.Fprintf(&b, "| **Total estimated tax** | **%s** |\n", format.Money(o.TotalTaxCents))
	fmt.Fprintf(&b, "| Paid to date | %s |\n\n", format.Money(o.PaidToDateCents))

	fmt.Fprintf(&b, "## Quarterly deadlines\n\n")
	for _, r := range o.Reminders {
		fmt.Fprintf(&b, "- %s due %s (%s)\n", r.Quarter, r.DueDate, r.Status)
	}
	return b.String()
}
