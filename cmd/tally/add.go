package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/service"
)

func addCmd() *cobra.Command {
	var (
		amount      float64
		description string
		category    string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a new expense",
		Long:  `Record a new expense with an amount, description, category and date.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			when, err := parseDate(date)
			if err != nil {
				return err
			}

			st, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			expense, err := st.AddExpense(ctx, service.ExpenseData{
				Amount:      amount,
				Description: description,
				CategoryID:  category,
				Date:        when,
			})
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Recorded %.2f for %q (%s)", expense.Amount, expense.Description, expense.ID)))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "expense amount (required, must be positive)")
	cmd.Flags().StringVarP(&description, "description", "m", "", "what the money went to (required)")
	cmd.Flags().StringVarP(&category, "category", "c", "other", "category id")
	cmd.Flags().StringVarP(&date, "date", "d", "", "date as YYYY-MM-DD (default: today)")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}
