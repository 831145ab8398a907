package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Rrens/docchat/internal/domain"
)

func newExportCmd(c *cli) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export <session-id>",
		Short: "Print a session transcript",
		Args:  cobra.ExactArgs(1),
		RunE: c.withApp(func(cmd *cobra.Command, args []string) error {
			session, err := c.app.Chat.Session(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			switch format {
			case "md", "markdown":
				return writeMarkdown(cmd.OutOrStdout(), session)
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(session)
			default:
				return fmt.Errorf("unsupported format %q (use md or json)", format)
			}
		}),
	}

	cmd.Flags().StringVarP(&format, "format", "f", "md", "Output format: md or json")
	return cmd
}

func writeMarkdown(w io.Writer, s domain.ChatSession) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", s.Title)
	fmt.Fprintf(&b, "_Updated %s_\n", s.UpdatedAt.Local().Format("2006-01-02 15:04"))

	for _, m := range s.Messages {
		speaker := "User"
		if m.Role == domain.RoleAssistant {
			speaker = "Assistant"
		}
		if m.IsError {
			speaker += " (error)"
		}

		fmt.Fprintf(&b, "\n## %s · %s\n\n", speaker, m.CreatedAt.Local().Format("15:04"))
		if att, ok := m.Attachment(); ok {
			fmt.Fprintf(&b, "> Attachment: %s (%d characters)\n\n", att.Name, len([]rune(att.Content)))
		}
		if m.Text != "" {
			b.WriteString(m.Text)
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
