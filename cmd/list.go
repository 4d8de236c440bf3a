package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/agendum/agendum/pkg/event"
)

func newListAllCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-all",
		Short: "List all events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			events, err := rt.events.GetAll(rt.ctx)
			if err != nil {
				fmt.Printf("Could not list events: %v\n", err)
				return nil
			}
			printEvents(events, "No events found.")
			return nil
		},
	}
}

func newListDateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-date DATE",
		Short: "List events on a date (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			events, err := rt.events.GetOnDate(rt.ctx, args[0])
			if err != nil {
				fmt.Printf("Could not list events: %v\n", err)
				return nil
			}
			printEvents(events, fmt.Sprintf("No events on %s", args[0]))
			return nil
		},
	}
}

func newListTitleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-title TITLE",
		Short: "List events with an exact title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			events, err := rt.events.GetByTitle(rt.ctx, args[0])
			if err != nil {
				fmt.Printf("Could not list events: %v\n", err)
				return nil
			}
			printEvents(events, fmt.Sprintf("No events with title '%s'", args[0]))
			return nil
		},
	}
}

func newListNextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-next N",
		Short: "List events in the next N days (N=0 means today only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Println("Number of days must be an integer")
				return nil
			}

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			events, err := rt.events.GetNextNDays(rt.ctx, days)
			if err != nil {
				fmt.Printf("Could not list events: %v\n", err)
				return nil
			}
			printEvents(events, fmt.Sprintf("No events in next %d days.", days))
			return nil
		},
	}
}

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search KEYWORD",
		Short: "List events whose title contains a keyword (case-insensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			events, err := rt.events.GetByKeyword(rt.ctx, args[0])
			if err != nil {
				fmt.Printf("Could not search events: %v\n", err)
				return nil
			}
			printEvents(events, fmt.Sprintf("No events found with keyword '%s'", args[0]))
			return nil
		},
	}
}

func printEvents(events []event.Event, emptyMessage string) {
	if len(events) == 0 {
		fmt.Println(emptyMessage)
		return
	}
	for _, e := range events {
		fmt.Printf("[%d] %s on %s %s-%s\n", e.ID, e.Title, e.Date, e.StartTime, e.EndTime)
	}
}
