package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agendum/agendum/pkg/event"
)

func newAddCmd() *cobra.Command {
	var startTime, endTime string

	cmd := &cobra.Command{
		Use:   "add TITLE DATE",
		Short: "Add a new event",
		Long:  "Add a new event. Title and date (YYYY-MM-DD) are required, start/end time (HH:MM) optional.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			created, err := rt.events.Create(rt.ctx, event.Draft{
				Title:     args[0],
				Date:      args[1],
				StartTime: startTime,
				EndTime:   endTime,
			})
			if err != nil {
				fmt.Printf("Could not add event: %v\n", err)
				return nil
			}

			fmt.Printf("Event added: [ID: %d] %s on %s %s-%s\n",
				created.ID, created.Title, created.Date, orDash(created.StartTime), orDash(created.EndTime))
			return nil
		},
	}

	cmd.Flags().StringVar(&startTime, "start", "", "start time in HH:MM format")
	cmd.Flags().StringVar(&endTime, "end", "", "end time in HH:MM format")
	return cmd
}

func orDash(t string) string {
	if t == "" {
		return "--"
	}
	return t
}
