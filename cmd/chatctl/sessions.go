package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionsCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List sessions, most recently updated first",
		Args:  cobra.NoArgs,
		RunE: c.withApp(func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			sessions := c.app.Chat.Sessions()
			activeID := c.app.Chat.ActiveSessionID()

			fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%d session(s)", len(sessions))))
			for _, s := range sessions {
				marker := " "
				if s.ID == activeID {
					marker = "*"
				}
				fmt.Fprintf(out, "%s %s %s\n", marker, titleStyle.Render(s.Title), idStyle.Render(s.ID))
				fmt.Fprintf(out, "    %s  %s\n",
					countStyle.Render(fmt.Sprintf("%d messages", len(s.Messages))),
					dateStyle.Render(s.UpdatedAt.Local().Format("2006-01-02 15:04")),
				)
			}
			return nil
		}),
	}
}
