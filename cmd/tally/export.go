package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tallyhq/tally/internal/cli"
)

func exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all data to a backup file",
		Long:  `Write every expense, category and setting to a single portable JSON document.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, cleanup, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			doc, err := st.ExportData(ctx)
			if err != nil {
				return err
			}

			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode backup: %w", err)
			}

			if output == "" {
				output = fmt.Sprintf("tally-backup-%s.json", time.Now().Format("2006-01-02"))
			}
			if err := os.WriteFile(output, data, 0600); err != nil {
				return fmt.Errorf("failed to write backup file: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Exported %d expense(s) and %d categorie(s) to %s",
				len(doc.Expenses), len(doc.Categories), output)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: tally-backup-YYYY-MM-DD.json)")

	return cmd
}
