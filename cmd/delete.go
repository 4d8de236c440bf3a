package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an event by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Println("Event ID must be an integer")
				return nil
			}

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			deleted, err := rt.events.Delete(rt.ctx, id)
			if err != nil {
				fmt.Printf("Could not delete event: %v\n", err)
				return nil
			}
			if !deleted {
				fmt.Println("Event not found.")
				return nil
			}
			fmt.Printf("Event %d deleted.\n", id)
			return nil
		},
	}
}

func newDeleteTitleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-title TITLE",
		Short: "Delete all events with an exact title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			deleted, err := rt.events.DeleteByTitle(rt.ctx, args[0])
			if err != nil {
				fmt.Printf("Could not delete events: %v\n", err)
				return nil
			}
			if !deleted {
				fmt.Printf("No event found with title '%s'\n", args[0])
				return nil
			}
			fmt.Printf("Event(s) with title '%s' deleted\n", args[0])
			return nil
		},
	}
}

func newClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all events for the user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			if err := rt.events.DeleteAll(rt.ctx); err != nil {
				fmt.Printf("Could not delete events: %v\n", err)
				return nil
			}
			fmt.Println("All events deleted.")
			return nil
		},
	}
}
