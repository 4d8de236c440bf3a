package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newChatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat MESSAGE...",
		Short: "Send a natural-language message to the calendar assistant",
		Long: `Send a natural-language message to the calendar assistant, e.g.:

  agendum chat add title=Doctor, date=2025-09-21, start=14:00
  agendum chat "what's on tomorrow?"
  agendum chat delete event 3

The exchange is appended to the conversation log.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			result, err := rt.assistant.HandleMessage(rt.ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Println(result.Message)
			return nil
		},
	}
}
