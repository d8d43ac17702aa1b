package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/cli"
)

func summaryCmd() *cobra.Command {
	var recent int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show spending totals per category and recent expenses",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			state := st.State()
			totals := st.TotalsByCategory()

			fmt.Println(cli.TitleStyle.Render("Spending by category"))

			// Stable output: categories in catalog order, dangling ids last.
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			seen := make(map[string]bool, len(totals))
			for _, cat := range state.Categories {
				if amount, ok := totals[cat.ID]; ok {
					fmt.Fprintf(w, "%s\t%.2f\n", cat.Name, amount)
					seen[cat.ID] = true
				}
			}
			dangling := make([]string, 0)
			for id := range totals {
				if !seen[id] {
					dangling = append(dangling, id)
				}
			}
			sort.Strings(dangling)
			for _, id := range dangling {
				fmt.Fprintf(w, "%s\t%.2f\n", id, totals[id])
			}
			fmt.Fprintf(w, "%s\t%.2f\n", cli.HeaderStyle.Render("Total"), st.Total())
			if err := w.Flush(); err != nil {
				return err
			}

			expenses := st.Recent(recent)
			if len(expenses) == 0 {
				return nil
			}

			fmt.Println()
			fmt.Println(cli.TitleStyle.Render("Recent expenses"))
			for _, exp := range expenses {
				fmt.Printf("%s  %8.2f  %s\n",
					exp.Date.Format("2006-01-02"), exp.Amount, exp.Description)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&recent, "recent", "n", 5, "number of recent expenses to show")

	return cmd
}
