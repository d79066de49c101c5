package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"bindery/internal/ledger"
	"bindery/internal/registrar"
)

func newImportCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "import <csv-file>",
		Short: "Import a registrar CSV export into the ledger",
		Long: `Import seeds the ledger from a registrar export. Rows that cannot be
parsed are reported and skipped; the rest of the file still imports.
Column names come from the [import] section of the configuration.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer file.Close()

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *ledger.Store) error {
				result, err := registrar.New(store, cfg, ctx.logger()).Import(file)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, result)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Rows: %d total, %d imported, %d skipped\n", result.Total, result.Imported, result.Skipped)
				fmt.Fprintf(out, "Available %d, assigned %d, published %d\n", result.Available, result.Assigned, result.Published)
				for _, rowErr := range result.Errors {
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", rowErr)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}
