package cli

import (
	"strconv"
	"strings"

	"ledgerdesk/internal/format"
	"ledgerdesk/internal/model"
	"ledgerdesk/internal/store"

	"github.com/spf13/cobra"
)

func newGoalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Savings goal commands",
	}
	cmd.AddCommand(newGoalsAddCmd(app))
	cmd.AddCommand(newGoalsListCmd(app))
	cmd.AddCommand(newGoalsEditCmd(app))
	cmd.AddCommand(newGoalsRmCmd(app))
	return cmd
}

func newGoalsAddCmd(app *App) *cobra.Command {
	var (
		name       string
		target     string
		current    string
		targetDate string
		goalType   string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a savings goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetCents, err := format.ParseMoney(target)
			if err != nil {
				return writeErr(cmd, err)
			}
			currentCents := int64(0)
			if strings.TrimSpace(current) != "" {
				if currentCents, err = format.ParseMoney(current); err != nil {
					return writeErr(cmd, err)
				}
			}
			td := ""
			if strings.TrimSpace(targetDate) != "" {
				if td, err = format.ParseDate(targetDate); err != nil {
					return writeErr(cmd, err)
				}
			}
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			g, err := s.AddSavingsGoal(cmd.Context(), model.SavingsGoal{
				Name:         strings.TrimSpace(name),
				TargetCents:  targetCents,
				CurrentCents: currentCents,
				TargetDate:   td,
				GoalType:     strings.TrimSpace(goalType),
			})
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": g})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Goal name")
	cmd.Flags().StringVar(&target, "target", "", "Target amount in dollars")
	cmd.Flags().StringVar(&current, "current", "", "Amount saved so far in dollars")
	cmd.Flags().StringVar(&targetDate, "by", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&goalType, "type", "general", "Goal type (taxes, equipment, general)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}

func newGoalsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			recs, err := s.ListSavingsGoals(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": recs})
		},
	}
}

func newGoalsEditCmd(app *App) *cobra.Command {
	var (
		name       string
		target     string
		current    string
		targetDate string
		goalType   string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update a savings goal (flags you omit keep their value)",
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
			recs, err := s.ListSavingsGoals(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			var rec model.SavingsGoal
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
			if fl.Changed("name") {
				rec.Name = strings.TrimSpace(name)
			}
			if fl.Changed("target") {
				if rec.TargetCents, err = format.ParseMoney(target); err != nil {
					return writeErr(cmd, err)
				}
			}
			if fl.Changed("current") {
				if rec.CurrentCents, err = format.ParseMoney(current); err != nil {
					return writeErr(cmd, err)
				}
			}
			if fl.Changed("by") {
				if rec.TargetDate, err = format.ParseDate(targetDate); err != nil {
					return writeErr(cmd, err)
				}
			}
			if fl.Changed("type") {
				rec.GoalType = strings.TrimSpace(goalType)
			}
			if err := s.UpdateSavingsGoal(cmd.Context(), rec); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": rec})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Goal name")
	cmd.Flags().StringVar(&target, "target", "", "Target amount in dollars")
	cmd.Flags().StringVar(&current, "current", "", "Amount saved so far in dollars")
	cmd.Flags().StringVar(&targetDate, "by", "", "Target date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&goalType, "type", "", "Goal type (taxes, equipment, general)")
	return cmd
}

func newGoalsRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a savings goal",
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
			if err := s.DeleteSavingsGoal(cmd.Context(), id); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": id}})
		},
	}
}
