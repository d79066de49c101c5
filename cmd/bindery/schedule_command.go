package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"bindery/internal/ledger"
)

const dateLayout = "2006-01-02"

func newScheduleCommand(ctx *commandContext) *cobra.Command {
	var bookID string
	var publisherID string
	var priority int

	cmd := &cobra.Command{
		Use:   "schedule <title> <date>",
		Short: "Allocate the next identifier for a planned release",
		Long: `Schedule allocates the lowest available identifier and commits it to a
future title. The date must be in the future, formatted as YYYY-MM-DD.
Lower priority numbers sort first when dates tie.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := time.ParseInLocation(dateLayout, args[1], time.Local)
			if err != nil {
				return fmt.Errorf("parse date %q: %w", args[1], err)
			}
			return ctx.withStore(func(store *ledger.Store) error {
				rec, err := store.Schedule(args[0], bookID, date, priority, publisherID)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Scheduled %s for %q on %s (priority %d)\n",
					rec.Identifier, rec.Schedule.BookTitle, rec.Schedule.ScheduledDate.Format(dateLayout), rec.Schedule.Priority)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&bookID, "book-id", "", "External catalog identifier for the title")
	cmd.Flags().StringVar(&publisherID, "publisher", "", "Restrict allocation to this publisher's blocks")
	cmd.Flags().IntVar(&priority, "priority", 1, "Schedule priority (lower sorts first)")
	return cmd
}
