package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"bindery/internal/ledger"
	"bindery/internal/planner"
)

func newUpcomingCommand(ctx *commandContext) *cobra.Command {
	var days int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "upcoming",
		Short: "List scheduled identifiers due within a window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *ledger.Store) error {
				entries := planner.Upcoming(store, days)
				if jsonOutput {
					return writeJSON(cmd, entries)
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintf(out, "Nothing scheduled in the next %d days\n", days)
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, rec := range entries {
					rows = append(rows, []string{
						string(rec.Identifier),
						rec.Schedule.BookTitle,
						rec.Schedule.ScheduledDate.Format(dateLayout),
						strconv.Itoa(rec.Schedule.Priority),
					})
				}
				headers := []string{"Identifier", "Title", "Date", "Priority"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&days, "days", 30, "Window size in days")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of a table")
	return cmd
}

func newReportCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize capacity and lifecycle counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *ledger.Store) error {
				report := planner.Availability(store)
				if jsonOutput {
					return writeJSON(cmd, report)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Blocks:      %d\n", report.TotalBlocks)
				fmt.Fprintf(out, "Identifiers: %d total, %d used, %d available\n",
					report.TotalIdentifiers, report.UsedIdentifiers, report.AvailableIdentifiers)
				writeCountSection(cmd, "By status", statusCounts(report.ByStatus))
				writeCountSection(cmd, "By publisher", report.ByPublisher)
				writeCountSection(cmd, "By format", report.ByFormat)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}

func statusCounts(in map[ledger.Status]int) map[string]int {
	out := make(map[string]int, len(in))
	for status, count := range in {
		out[string(status)] = count
	}
	return out
}

func writeCountSection(cmd *cobra.Command, label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for key := range counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s:\n", label)
	for _, key := range keys {
		fmt.Fprintf(out, "  %-12s %d\n", key, counts[key])
	}
}
