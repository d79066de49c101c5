package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"bindery/internal/isbn"
	"bindery/internal/ledger"
)

func newReserveCommand(ctx *commandContext) *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "reserve <identifier>",
		Short: "Hold an identifier for future use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := isbn.Parse(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *ledger.Store) error {
				rec, err := store.Reserve(id, notes)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Reserved %s\n", rec.Identifier)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&notes, "notes", "", "Free-form note stored with the reservation")
	return cmd
}

func newAssignCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <identifier>",
		Short: "Move an identifier into active use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := isbn.Parse(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *ledger.Store) error {
				rec, err := store.AssignNow(id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if title := rec.Title(); title != "" {
					fmt.Fprintf(out, "Assigned %s to %q\n", rec.Identifier, title)
				} else {
					fmt.Fprintf(out, "Assigned %s\n", rec.Identifier)
				}
				return nil
			})
		},
	}
}

func newPublishCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publish <identifier>",
		Short: "Mark an assigned identifier as published",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := isbn.Parse(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *ledger.Store) error {
				rec, err := store.MarkPublished(id)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Published %s on %s\n",
					rec.Identifier, rec.Assignment.PublicationDate.Format(dateLayout))
				return nil
			})
		},
	}
}

func newReleaseCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "release <identifier>",
		Short: "Return a reserved or assigned identifier to the pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := isbn.Parse(args[0])
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *ledger.Store) error {
				if err := store.Release(id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Released %s\n", id)
				return nil
			})
		},
	}
}

func newUpdateCommand(ctx *commandContext) *cobra.Command {
	var title string
	var notes string

	cmd := &cobra.Command{
		Use:   "update <identifier>",
		Short: "Edit the title or notes on a tracked identifier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := isbn.Parse(args[0])
			if err != nil {
				return err
			}
			var update ledger.MetadataUpdate
			if cmd.Flags().Changed("title") {
				update.BookTitle = &title
			}
			if cmd.Flags().Changed("notes") {
				update.Notes = &notes
			}
			if update.BookTitle == nil && update.Notes == nil {
				return fmt.Errorf("nothing to update: pass --title or --notes")
			}
			return ctx.withStore(func(store *ledger.Store) error {
				rec, err := store.UpdateMetadata(id, update)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", rec.Identifier)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New book title")
	cmd.Flags().StringVar(&notes, "notes", "", "New notes")
	return cmd
}
