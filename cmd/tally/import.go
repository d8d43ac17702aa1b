package main

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/cli"
	"github.com/tallyhq/tally/internal/model"
)

func importCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Restore data from a backup file",
		Long: `Replace the entire store contents with the given backup document.

Existing data is cleared before the new data is inserted. If the insert fails
partway, the store is left empty and the import must be retried.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read backup file: %w", err)
			}

			doc, err := model.ParseBackup(data)
			if err != nil {
				return err
			}

			st, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if !force {
				prompt := fmt.Sprintf(
					"Replace ALL current data with %d expense(s) and %d categorie(s) from %s?",
					len(doc.Expenses), len(doc.Categories), args[0])
				ok, err := cli.Confirm(ctx, os.Stdin, os.Stdout, prompt)
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println("Import cancelled.")
					return nil
				}
			}

			bar := progressbar.NewOptions(-1,
				progressbar.OptionSetDescription("importing"),
				progressbar.OptionSpinnerType(14),
				progressbar.OptionSetWriter(os.Stderr),
			)

			importErr := st.ImportData(ctx, doc)
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)

			if importErr != nil {
				fmt.Println(cli.FormatError("Import failed; the store is now empty. Fix the backup file and re-import."))
				return importErr
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Imported %d expense(s) and %d categorie(s)",
				len(doc.Expenses), len(doc.Categories))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "skip confirmation prompt")

	return cmd
}
