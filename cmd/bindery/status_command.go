package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/isbn"
	"bindery/internal/ledger"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status <identifier>",
		Short: "Show the lifecycle status of an identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := isbn.Parse(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *ledger.Store) error {
				status, rec, err := store.StatusOf(id)
				if err != nil {
					return err
				}
				if jsonOutput {
					payload := map[string]any{
						"identifier": id,
						"status":     status,
					}
					if rec != nil {
						payload["record"] = rec
					}
					return writeJSON(cmd, payload)
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "%s: %s\n", id, status)
				if rec == nil {
					return nil
				}
				if title := rec.Title(); title != "" {
					fmt.Fprintf(out, "  Title:     %s\n", title)
				}
				if rec.PublisherID != "" {
					fmt.Fprintf(out, "  Publisher: %s\n", rec.PublisherID)
				}
				if rec.Format != "" {
					fmt.Fprintf(out, "  Format:    %s\n", rec.Format)
				}
				if rec.Schedule != nil {
					fmt.Fprintf(out, "  Scheduled: %s (priority %d)\n",
						rec.Schedule.ScheduledDate.Format(dateLayout), rec.Schedule.Priority)
				}
				if rec.Assignment != nil {
					fmt.Fprintf(out, "  Assigned:  %s\n", rec.Assignment.AssignedDate.Format(dateLayout))
					if rec.Assignment.PublicationDate != nil {
						fmt.Fprintf(out, "  Published: %s\n", rec.Assignment.PublicationDate.Format(dateLayout))
					}
				}
				if rec.Notes != "" {
					fmt.Fprintf(out, "  Notes:     %s\n", rec.Notes)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit JSON instead of text")
	return cmd
}
