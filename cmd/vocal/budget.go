package main

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/voxpense/vocal/internal/common"
	"github.com/voxpense/vocal/internal/model"
)

func budgetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Manage monthly spending budgets",
	}

	cmd.AddCommand(budgetSetCmd())
	cmd.AddCommand(budgetStatusCmd())

	return cmd
}

func budgetSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <period> <amount>",
		Short: "Set the budget for a period (e.g. 2025-04 500)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			period := args[0]
			if _, _, err := model.PeriodRange(period); err != nil {
				return fmt.Errorf("period must be in YYYY-MM format: %w", err)
			}

			amount, err := strconv.ParseFloat(args[1], 64)
			if err != nil || amount <= 0 {
				return fmt.Errorf("amount must be a positive number")
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			budget := &model.Budget{
				UserID: viper.GetString("user"),
				Period: period,
				Amount: amount,
			}
			if err := store.SetBudget(ctx, budget); err != nil {
				return fmt.Errorf("failed to set budget: %w", err)
			}

			fmt.Printf("Budget for %s set to %.2f\n", period, amount)
			return nil
		},
	}
}

func budgetStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [period]",
		Short: "Show spend against the budget (default: current month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			period := model.PeriodOf(time.Now())
			if len(args) == 1 {
				period = args[0]
				if _, _, err := model.PeriodRange(period); err != nil {
					return fmt.Errorf("period must be in YYYY-MM format: %w", err)
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			userID := viper.GetString("user")

			spent, err := store.SumExpenses(ctx, userID, period)
			if err != nil {
				return fmt.Errorf("failed to sum expenses: %w", err)
			}

			budget, err := store.GetBudget(ctx, userID, period)
			if err != nil {
				if errors.Is(err, common.ErrNotFound) {
					fmt.Printf("No budget set for %s (spent: %.2f)\n", period, spent)
					return nil
				}
				return fmt.Errorf("failed to get budget: %w", err)
			}

			percent := 0
			if budget.Amount > 0 {
				percent = int(math.Round(spent / budget.Amount * 100))
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "PERIOD\tBUDGET\tSPENT\tUSED")
			_, _ = fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%d%%\n", period, budget.Amount, spent, percent)
			return w.Flush()
		},
	}
}
