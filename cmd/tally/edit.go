package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/model"
	"github.com/tallyhq/tally/internal/service"
)

func editCmd() *cobra.Command {
	var (
		amount      float64
		description string
		category    string
		date        string
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update an existing expense",
		Long:  `Update one or more fields of an expense. Unspecified flags keep their current value.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			st, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var current *model.Expense
			for _, exp := range st.State().Expenses {
				if exp.ID == id {
					found := exp
					current = &found
					break
				}
			}
			if current == nil {
				return fmt.Errorf("expense %s not found", id)
			}

			data := service.ExpenseData{
				Amount:      current.Amount,
				Description: current.Description,
				CategoryID:  current.CategoryID,
				Date:        current.Date,
			}
			if cmd.Flags().Changed("amount") {
				data.Amount = amount
			}
			if cmd.Flags().Changed("description") {
				data.Description = description
			}
			if cmd.Flags().Changed("category") {
				data.CategoryID = category
			}
			if cmd.Flags().Changed("date") {
				when, err := parseDate(date)
				if err != nil {
					return err
				}
				data.Date = when
			}

			updated, err := st.UpdateExpense(ctx, id, data)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Updated %q: %.2f on %s", updated.Description, updated.Amount,
				updated.Date.Format("2006-01-02"))))
			return nil
		},
	}

	cmd.Flags().Float64VarP(&amount, "amount", "a", 0, "new amount")
	cmd.Flags().StringVarP(&description, "description", "m", "", "new description")
	cmd.Flags().StringVarP(&category, "category", "c", "", "new category id")
	cmd.Flags().StringVarP(&date, "date", "d", "", "new date as YYYY-MM-DD")

	return cmd
}
