package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/agendum/agendum/pkg/event"
)

func newUpdateCmd() *cobra.Command {
	var title, date, startTime, endTime string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an event by ID",
		Long:  "Update an event by ID. Only the supplied flags are changed; the rest keep their current value.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Println("Event ID must be an integer")
				return nil
			}
			if cmd.Flags().Changed("title") && strings.TrimSpace(title) == "" {
				fmt.Println("Title cannot be empty")
				return nil
			}

			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			updated, err := rt.events.Update(rt.ctx, id, event.Patch{
				Title:     title,
				Date:      date,
				StartTime: startTime,
				EndTime:   endTime,
			})
			if err != nil {
				fmt.Printf("Could not update event: %v\n", err)
				return nil
			}
			if !updated {
				fmt.Println("Event not found.")
				return nil
			}
			fmt.Println("Event updated successfully.")
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVar(&date, "date", "", "new date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&startTime, "start", "", "new start time (HH:MM)")
	cmd.Flags().StringVar(&endTime, "end", "", "new end time (HH:MM)")
	return cmd
}
