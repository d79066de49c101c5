package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"bindery/internal/ledger"
)

func newAddBlockCommand(ctx *commandContext) *cobra.Command {
	var publisherID string
	var imprintCode string

	cmd := &cobra.Command{
		Use:   "add-block <prefix> <range-start> <range-end>",
		Short: "Register a contiguous identifier block",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			rangeStart, err := strconv.ParseInt(args[1], 10, 64)
			if err != nil {
				return fmt.Errorf("parse range start %q: %w", args[1], err)
			}
			rangeEnd, err := strconv.ParseInt(args[2], 10, 64)
			if err != nil {
				return fmt.Errorf("parse range end %q: %w", args[2], err)
			}
			return ctx.withStore(func(store *ledger.Store) error {
				block, err := store.AddBlock(args[0], publisherID, imprintCode, rangeStart, rangeEnd)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Registered block %s\n", block.ID)
				fmt.Fprintf(out, "Prefix %s, range %d-%d (%d identifiers)\n", block.Prefix, block.RangeStart, block.RangeEnd, block.Capacity())
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&publisherID, "publisher", "", "Publisher that owns the block")
	cmd.Flags().StringVar(&imprintCode, "imprint", "", "Imprint code for the block")
	return cmd
}

func newBlocksCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "blocks",
		Short: "List registered identifier blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *ledger.Store) error {
				blocks := store.Blocks()
				if jsonOutput {
					return writeJSON(cmd, blocks)
				}
				out := cmd.OutOrStdout()
				if len(blocks) == 0 {
					fmt.Fprintln(out, "No blocks registered")
					return nil
				}
				rows := make([][]string, 0, len(blocks))
				for _, block := range blocks {
					rows = append(rows, []string{
						block.Prefix,
						block.PublisherID,
						block.ImprintCode,
						strconv.FormatInt(block.RangeStart, 10),
						strconv.FormatInt(block.RangeEnd, 10),
						strconv.FormatInt(block.Capacity(), 10),
					})
				}
				headers := []string{"Prefix", "Publisher", "Imprint", "Start", "End", "Capacity"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}
