package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/store"
)

func listCmd() *cobra.Command {
	var (
		category string
		search   string
		sortBy   string
		order    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List expenses",
		Long:  `Display expenses with optional category filter, substring search and sorting.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			state := st.State()
			expenses := st.Filtered(store.ListOptions{
				CategoryID: category,
				Search:     search,
				SortBy:     store.SortField(sortBy),
				Order:      store.SortOrder(order),
			})

			if len(expenses) == 0 {
				fmt.Println(cli.InfoStyle.Render("No expenses found. Use 'tally add' to record one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Description"),
				cli.HeaderStyle.Render("Category"),
				cli.HeaderStyle.Render("ID"))

			for _, exp := range expenses {
				fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\t%s\n",
					exp.Date.Format("2006-01-02"),
					exp.Amount,
					exp.Description,
					categoryName(state.Categories, exp.CategoryID),
					cli.SubtleStyle.Render(exp.ID))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Printf("\n%s %.2f (%d of %d expenses)\n",
				cli.InfoStyle.Render("Total:"),
				store.Total(expenses), len(expenses), len(state.Expenses))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only expenses in this category id")
	cmd.Flags().StringVarP(&search, "search", "s", "", "substring match against description or amount")
	cmd.Flags().StringVar(&sortBy, "sort", "date", "sort field (date, amount, description, category)")
	cmd.Flags().StringVar(&order, "order", "desc", "sort order (asc, desc)")

	return cmd
}
