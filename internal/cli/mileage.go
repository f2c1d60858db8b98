package cli

import (
	"fmt"
	"strconv"
	"strings"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/store"
	"ledgerdesk/internal/tax"

	"github.com/spf13/cobra"
)

func newMileageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mileage",
		Short: "Business mileage commands",
	}
	cmd.AddCommand(newMileageAddCmd(app))
	cmd.AddCommand(newMileageListCmd(app))
	cmd.AddCommand(newMileageEditCmd(app))
	cmd.AddCommand(newMileageRmCmd(app))
	return cmd
}

func newMileageAddCmd(app *App) *cobra.Command {
	var (
		from    string
		to      string
		miles   float64
		purpose string
		date    string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a business trip",
		RunE: func(cmd *cobra.Command, args []string) error {
			if miles <= 0 {
				return writeErr(cmd, fmt.Errorf("miles must be positive, got %v", miles))
			}
			d, err := format.ParseDate(date)
			if err != nil {
				return writeErr(cmd, err)
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			// The deduction is locked in at the rate in effect when recorded.
			t, err := s.AddTrip(cmd.Context(), model.Trip{
				StartLocation:   strings.TrimSpace(from),
				Destination:     strings.TrimSpace(to),
				Miles:           miles,
				BusinessPurpose: strings.TrimSpace(purpose),
				Date:            d,
				DeductionCents:  tax.MileageDeduction(miles),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start location")
	cmd.Flags().StringVar(&to, "to", "", "Destination")
	cmd.Flags().Float64Var(&miles, "miles", 0, "Miles driven")
	cmd.Flags().StringVar(&purpose, "purpose", "", "Business purpose")
	cmd.Flags().StringVar(&date, "date", "", "Trip date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("miles")
	_ = cmd.MarkFlagRequired("date")
	return cmd
}

func newMileageListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List trips, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := s.ListTrips(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}
}

func newMileageEditCmd(app *App) *cobra.Command {
	var (
		from    string
		to      string
		miles   float64
		purpose string
		date    string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a trip (flags you omit keep their value)",
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
			recs, err := s.ListTrips(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			var rec model.Trip
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
			if fl.Changed("from") {
				rec.StartLocation = strings.TrimSpace(from)
			}
			if fl.Changed("to") {
				rec.Destination = strings.TrimSpace(to)
			}
			if fl.Changed("miles") {
				if miles <= 0 {
					return writeErr(cmd, fmt.Errorf("miles must be positive, got %v", miles))
				}
				rec.Miles = miles
				// Changing the distance re-prices the deduction.
				rec.DeductionCents = tax.MileageDeduction(miles)
			}
			if fl.Changed("purpose") {
				rec.BusinessPurpose = strings.TrimSpace(purpose)
			}
			if fl.Changed("date") {
				if rec.Date, err = format.ParseDate(date); err != nil {
					return writeErr(cmd, err)
				}
			}
			if err := s.UpdateTrip(cmd.Context(), rec); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start location")
	cmd.Flags().StringVar(&to, "to", "", "Destination")
	cmd.Flags().Float64Var(&miles, "miles", 0, "Miles driven")
	cmd.Flags().StringVar(&purpose, "purpose", "", "Business purpose")
	cmd.Flags().StringVar(&date, "date", "", "Trip date (YYYY-MM-DD)")
	return cmd
}

func newMileageRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a trip",
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
			if err := s.DeleteTrip(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}
