package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/cli"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage expense categories",
		Long:  `List, add, and delete the categories used to classify expenses.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			state := st.State()
			totals := st.TotalsByCategory()

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Color"),
				cli.HeaderStyle.Render("Total"))

			for _, cat := range state.Categories {
				name := cat.Name
				if cat.IsDefault {
					name += cli.SubtleStyle.Render(" (default)")
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", cat.ID, name, cat.Color, totals[cat.ID])
			}

			return nil
		},
	}
}

func addCategoryCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			st, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			cat, err := st.AddCategory(ctx, args[0], color)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created category %q (%s)", cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "#64748b", "display color as #hex")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a category",
		Long: `Delete a category. Expenses that reference it are reassigned to the
"other" category rather than deleted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]

			st, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var referencing int
			for _, exp := range st.State().Expenses {
				if exp.CategoryID == id {
					referencing++
				}
			}

			if !force {
				prompt := fmt.Sprintf("Delete category %q?", id)
				if referencing > 0 {
					prompt = fmt.Sprintf("Delete category %q and reassign %d expense(s) to \"other\"?", id, referencing)
				}
				ok, err := cli.Confirm(ctx, os.Stdin, os.Stdout, prompt)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := st.DeleteCategory(ctx, id); err != nil {
				return err
			}

			msg := fmt.Sprintf("Deleted category %q", id)
			if referencing > 0 {
				msg += fmt.Sprintf(", reassigned %d expense(s) to \"other\"", referencing)
			}
			fmt.Println(cli.FormatSuccess(msg))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	return cmd
}
