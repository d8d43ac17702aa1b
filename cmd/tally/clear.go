package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/cli"
)

func clearCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all data",
		Long: `Wipe every expense, category and setting, then restore the default
category catalog. This cannot be undone; consider 'tally export' first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			state := st.State()
			if !force {
				prompt := fmt.Sprintf(
					"Permanently delete %d expense(s) and %d categorie(s)?",
					len(state.Expenses), len(state.Categories))
				ok, err := cli.Confirm(ctx, os.Stdin, os.Stdout, prompt)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Clear cancelled.")
					return nil
				}
			}

			if err := st.ClearAllData(ctx); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess("All data cleared; default categories restored"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	return cmd
}
